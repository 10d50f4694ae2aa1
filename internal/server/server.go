package server

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/TobiSchelling/geodash/internal/database"
	"github.com/TobiSchelling/geodash/internal/metricreg"
	"github.com/TobiSchelling/geodash/internal/querystate"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	// Registry decides low-sample warnings; defaults to metricreg.Default().
	Registry *metricreg.Registry
	Logger   *zerolog.Logger
	// Origin prefixes share links.
	Origin string
	// Now is the clock used to resolve relative time ranges.
	Now func() time.Time
}

// Server is the HTTP server for the dashboard.
type Server struct {
	db     *database.DB
	reg    *metricreg.Registry
	logger *zerolog.Logger
	origin string
	now    func() time.Time
	pages  map[string]*template.Template
	router chi.Router
}

// New creates a new Server.
func New(db *database.DB, opts Options) (*Server, error) {
	s := &Server{
		db:     db,
		reg:    opts.Registry,
		logger: opts.Logger,
		origin: opts.Origin,
		now:    opts.Now,
	}
	if s.reg == nil {
		s.reg = metricreg.Default()
	}
	if s.logger == nil {
		nop := zerolog.Nop()
		s.logger = &nop
	}
	if s.now == nil {
		s.now = time.Now
	}

	// Parse base template first
	base, err := template.New("base.html").Funcs(s.funcMap()).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	// Each page gets its own clone of the base so their {{define}} blocks
	// do not collide.
	pageNames := []string{"topics.html", "questions.html", "suggestions.html", "assets.html"}
	s.pages = make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base for %s: %w", name, err)
		}
		if _, err := clone.ParseFS(templateFS, "templates/"+name); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		s.pages[name] = clone
	}

	s.routes()
	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	staticSub, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	r.Get("/", s.handleIndex)
	r.Get("/topics", s.handleTopics)
	r.Get("/questions", s.handleQuestions)
	r.Get("/suggestions", s.handleSuggestions)
	r.Get("/assets", s.handleAssets)
	r.Get("/share/*", s.handleShare)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	s.router = r
}

// render executes a page into a buffer first so a failing template yields a
// clean 500 instead of a truncated page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	tmpl, ok := s.pages[name]
	if !ok {
		s.logger.Error().Str("template", name).Msg("Template not found")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		RenderErrorsTotal.WithLabelValues(name).Inc()
		s.logger.Error().Err(err).Str("template", name).Str("path", r.URL.Path).Msg("Error rendering template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// Serve runs srv on addr until ctx is cancelled.
func Serve(ctx context.Context, srv *Server, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	srv.logger.Info().Str("addr", addr).Msg("Server listening")

	if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// decodeState reads the filter state from r. Ignored parameters are logged
// and counted; they never fail the request.
func (s *Server) decodeState(r *http.Request) querystate.State {
	state, fallbacks := querystate.DecodeReport(r.URL.RawQuery)
	for _, f := range fallbacks {
		DecodeFallbacksTotal.WithLabelValues(f.Key).Inc()
		s.logger.Debug().Str("param", f.Key).Str("raw", f.Raw).Str("path", r.URL.Path).Msg("Ignoring malformed filter parameter")
	}
	return state
}
