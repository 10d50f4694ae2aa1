// Package fixtures loads the dashboard dataset from YAML. A Set is passed
// explicitly to whatever needs it; there is no package-level dataset.
package fixtures

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/TobiSchelling/geodash/internal/assets"
	"github.com/TobiSchelling/geodash/internal/metricreg"
)

//go:embed demo.yaml
var DemoYAML []byte

type Brand struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Competitor bool   `yaml:"competitor"`
}

type Topic struct {
	ID      string `yaml:"id"`
	BrandID string `yaml:"brand_id"`
	Name    string `yaml:"name"`
}

type Answer struct {
	ID        string `yaml:"id"`
	BrandID   string `yaml:"brand_id"`
	ModelID   string `yaml:"model_id"`
	TopicID   string `yaml:"topic_id"`
	RegionID  string `yaml:"region_id"`
	Date      string `yaml:"date"`
	Question  string `yaml:"question"`
	Answer    string `yaml:"answer"`
	Mentioned bool   `yaml:"mentioned"`
	Position  *int   `yaml:"position"`
}

type Suggestion struct {
	ID      string `yaml:"id"`
	BrandID string `yaml:"brand_id"`
	TopicID string `yaml:"topic_id"`
	Title   string `yaml:"title"`
	Body    string `yaml:"body"`
	Impact  string `yaml:"impact"`
}

// MetricValue is one pre-computed metric observation.
type MetricValue struct {
	Metric     string  `yaml:"metric"`
	BrandID    string  `yaml:"brand_id"`
	TopicID    string  `yaml:"topic_id"`
	ModelID    string  `yaml:"model_id"`
	RegionID   string  `yaml:"region_id"`
	Date       string  `yaml:"date"`
	Value      float64 `yaml:"value"`
	SampleSize *int    `yaml:"sample_size"`
}

// Set is a complete dataset.
type Set struct {
	Brands      []Brand        `yaml:"brands"`
	Topics      []Topic        `yaml:"topics"`
	Answers     []Answer       `yaml:"answers"`
	Suggestions []Suggestion   `yaml:"suggestions"`
	Assets      []assets.Asset `yaml:"assets"`
	Metrics     []MetricValue  `yaml:"metrics"`
}

// Load reads a fixture file. An empty path loads the embedded demo set.
func Load(path string) (*Set, error) {
	if path == "" {
		return Parse(DemoYAML)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a fixture document. Assets and answers
// without an id are given a random one.
func Parse(data []byte) (*Set, error) {
	var s Set
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing fixtures: %w", err)
	}

	for i := range s.Assets {
		if s.Assets[i].ID == "" {
			s.Assets[i].ID = uuid.NewString()
		}
	}
	for i := range s.Answers {
		if s.Answers[i].ID == "" {
			s.Answers[i].ID = uuid.NewString()
		}
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Set) validate() error {
	brands := make(map[string]bool, len(s.Brands))
	for _, b := range s.Brands {
		if b.ID == "" {
			return fmt.Errorf("brand %q: missing id", b.Name)
		}
		if brands[b.ID] {
			return fmt.Errorf("duplicate brand %q", b.ID)
		}
		brands[b.ID] = true
	}
	for _, m := range s.Metrics {
		if _, ok := metricreg.ParseID(m.Metric); !ok {
			return fmt.Errorf("metric value for %s: %w", m.BrandID, &metricreg.UnknownMetricError{Name: m.Metric})
		}
		if m.SampleSize != nil && *m.SampleSize < 0 {
			return fmt.Errorf("metric %s for %s: negative sample size", m.Metric, m.BrandID)
		}
	}
	return nil
}
