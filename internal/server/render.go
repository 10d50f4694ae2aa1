package server

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/TobiSchelling/geodash/internal/metricreg"
	"github.com/TobiSchelling/geodash/internal/querystate"
)

var (
	md        = goldmark.New()
	sanitizer = bluemonday.UGCPolicy()
)

func (s *Server) funcMap() template.FuncMap {
	return template.FuncMap{
		"markdown": renderMarkdown,
		"deref": func(p *string) string {
			if p == nil {
				return ""
			}
			return *p
		},
		"href":       querystate.BuildHref,
		"withParam":  withParam,
		"clearParam": clearParam,
		"check":      s.check,
		"percent":    formatPercent,
		"decimal":    formatDecimal,
	}
}

// check decorates a metric value with its sample warning. A strict registry
// turns an unknown metric into a template error, failing the render.
func (s *Server) check(metric string, sample metricreg.Sample) (metricreg.Verdict, error) {
	v := s.reg.Check(metric, sample)
	if v.Err != nil {
		return v, v.Err
	}
	return v, nil
}

// withParam links to target with one filter replaced.
func withParam(target, query, key, value string) string {
	return querystate.BuildHrefPatch(target, query, patchFor(key, value))
}

// clearParam links to target with one filter removed.
func clearParam(target, query, key string) string {
	return querystate.BuildHrefPatch(target, query, patchFor(key, ""))
}

// patchFor maps a query parameter name to the Patch that sets it. An empty
// value clears the field.
func patchFor(key, value string) querystate.Patch {
	var p querystate.Patch
	switch key {
	case querystate.KeyBrand:
		p.BrandID = querystate.Set(value)
	case querystate.KeyTopic:
		p.TopicID = querystate.Set(value)
	case querystate.KeyRegion:
		p.RegionID = querystate.Set(value)
	case querystate.KeyModel:
		p.ModelIDs = querystate.Set(splitIDs(value))
	case querystate.KeyCompetitor:
		p.CompetitorIDs = querystate.Set(splitIDs(value))
	case querystate.KeyRange:
		p.TimeRange = querystate.Set(querystate.TimeRange{Preset: querystate.Preset(value)})
	}
	return p
}

func splitIDs(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, ",")
}

func formatPercent(v float64) string { return fmt.Sprintf("%.0f%%", v*100) }

func formatDecimal(v float64) string { return fmt.Sprintf("%.2f", v) }

func formatInt(v float64) string { return fmt.Sprintf("%.0f", v) }

func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes())) //nolint: gosec
}
