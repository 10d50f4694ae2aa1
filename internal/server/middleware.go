package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// unmatchedRoute labels requests no route matched, keeping the label set
// bounded.
const unmatchedRoute = "unmatched"

// requestLogger logs one line per request and records its latency.
func requestLogger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			elapsed := time.Since(start)
			RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())

			logger.Debug().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("route", route).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("elapsed", elapsed).
				Msg("Request")
		})
	}
}
