package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TobiSchelling/geodash/internal/assets"
	"github.com/TobiSchelling/geodash/internal/database"
	"github.com/TobiSchelling/geodash/internal/metricreg"
	"github.com/TobiSchelling/geodash/internal/querystate"
)

type link struct {
	Label  string
	Href   string
	Active bool
}

// MetricCell is one metric value as shown on a page.
type MetricCell struct {
	Metric  string
	Label   string
	BrandID string
	Display string
	Sample  metricreg.Sample
}

type topicRow struct {
	Topic database.Topic
	Cells []MetricCell
}

var navPages = []struct{ path, label string }{
	{"/topics", "Topics"},
	{"/questions", "Questions"},
	{"/suggestions", "Suggestions"},
	{"/assets", "Assets"},
}

// basePage holds what every page template needs: navigation that carries
// the current filters, filter pickers and the share link.
func (s *Server) basePage(r *http.Request, state querystate.State, title string) map[string]any {
	query := querystate.Encode(state)
	path := r.URL.Path

	nav := make([]link, 0, len(navPages))
	for _, p := range navPages {
		nav = append(nav, link{Label: p.label, Href: querystate.BuildHref(p.path, query), Active: p.path == path})
	}

	var brandLinks []link
	if brands, err := s.db.GetBrands(); err != nil {
		s.logger.Warn().Err(err).Msg("Loading brands for picker")
	} else {
		for _, b := range brands {
			if b.Competitor {
				continue
			}
			brandLinks = append(brandLinks, link{
				Label:  b.Name,
				Href:   withParam(path, query, querystate.KeyBrand, b.ID),
				Active: b.ID == state.Brand(),
			})
		}
	}

	var rangeLinks []link
	for _, p := range querystate.Presets() {
		tr := querystate.PresetRange(p)
		rangeLinks = append(rangeLinks, link{
			Label:  tr.Label(),
			Href:   withParam(path, query, querystate.KeyRange, string(p)),
			Active: state.TimeRange != nil && state.TimeRange.Preset == p,
		})
	}

	rangeLabel := "All time"
	if state.TimeRange != nil {
		rangeLabel = state.TimeRange.Label()
	}

	return map[string]any{
		"Title":      title,
		"Path":       path,
		"Query":      query,
		"State":      state,
		"Nav":        nav,
		"Brands":     brandLinks,
		"Ranges":     rangeLinks,
		"RangeLabel": rangeLabel,
		"ShareURL":   querystate.ShareURL(s.origin, path, query),
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, querystate.BuildHref("/topics", r.URL.RawQuery), http.StatusFound)
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	state := s.decodeState(r)
	f := database.FilterFrom(state, s.now())

	topics, err := s.db.GetTopics(f)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	summaries, err := s.db.GetMetricSummaries(f)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	rows := make([]topicRow, 0, len(topics))
	for _, t := range topics {
		row := topicRow{Topic: t}
		for _, m := range summaries {
			if m.TopicID == t.ID && m.BrandID == t.BrandID {
				row.Cells = append(row.Cells, s.cell(m.Metric, m.BrandID, m.Value, m.Sample))
			}
		}
		rows = append(rows, row)
	}

	var competitors []MetricCell
	for _, m := range summaries {
		if f.BrandID != "" && m.BrandID != f.BrandID {
			competitors = append(competitors, s.cell(m.Metric, m.BrandID, m.Value, m.Sample))
		}
	}

	data := s.basePage(r, state, "Topics")
	data["Rows"] = rows
	data["Competitors"] = competitors
	s.render(w, r, "topics.html", data)
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	state := s.decodeState(r)
	f := database.FilterFrom(state, s.now())

	answers, err := s.db.GetAnswers(f)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	mentioned := 0
	for _, a := range answers {
		if a.Mentioned {
			mentioned++
		}
	}
	sample := metricreg.SampleOf(len(answers))
	summary := []MetricCell{
		s.cell(metricreg.AnswerCount.String(), f.BrandID, float64(len(answers)), sample),
	}
	if len(answers) > 0 {
		rate := float64(mentioned) / float64(len(answers))
		summary = append(summary, s.cell(metricreg.MentionRate.String(), f.BrandID, rate, sample))
	}

	data := s.basePage(r, state, "Questions")
	data["Answers"] = answers
	data["Summary"] = summary
	s.render(w, r, "questions.html", data)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	state := s.decodeState(r)

	suggestions, err := s.db.GetSuggestions(database.FilterFrom(state, s.now()))
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	data := s.basePage(r, state, "Suggestions")
	data["Suggestions"] = suggestions
	s.render(w, r, "suggestions.html", data)
}

// handleAssets lists the assets matching the filters. The opaque "asset",
// "brief" and "spec" parameters select and narrow the list; they pass
// through the query state untouched.
func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	state := s.decodeState(r)

	list, err := s.db.GetAssets()
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	list = assets.FilterByQuery(list, state)

	params := r.URL.Query()
	if brief := params.Get("brief"); brief != "" {
		list = assets.ForBrief(list, brief)
	}
	if spec := params.Get("spec"); spec != "" {
		list = assets.ForSpec(list, spec)
	}

	data := s.basePage(r, state, "Assets")
	data["Assets"] = list
	if selected, ok := assets.Select(list, params.Get("asset")); ok {
		data["Selected"] = selected
	}
	s.render(w, r, "assets.html", data)
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	path := "/" + chi.URLParam(r, "*")

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"url": querystate.ShareURL(s.origin, path, r.URL.RawQuery),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// cell formats a metric value for display.
func (s *Server) cell(metric, brandID string, value float64, sample metricreg.Sample) MetricCell {
	c := MetricCell{Metric: metric, Label: metric, BrandID: brandID, Sample: sample}
	if d, err := s.reg.Lookup(metric); err == nil {
		c.Label = d.Label
	}

	id, _ := metricreg.ParseID(metric)
	switch id {
	case metricreg.MentionRate, metricreg.ShareOfVoice, metricreg.CitationRate, metricreg.TopicCoverage:
		c.Display = formatPercent(value)
	case metricreg.AnswerCount:
		c.Display = formatInt(value)
	default:
		c.Display = formatDecimal(value)
	}
	return c
}
