package database

import "github.com/TobiSchelling/geodash/internal/metricreg"

// Brand is a tracked brand or one of its competitors.
type Brand struct {
	ID         string
	Name       string
	Competitor bool
}

// Topic groups questions asked about a brand.
type Topic struct {
	ID      string
	BrandID string
	Name    string
}

// Answer is one AI-generated answer to a tracked question.
type Answer struct {
	ID        string
	BrandID   string
	ModelID   string
	TopicID   *string
	RegionID  *string
	Date      string
	Question  string
	Answer    string
	Mentioned bool
	Position  *int
}

// Suggestion is an improvement proposed for a brand.
type Suggestion struct {
	ID      string
	BrandID string
	TopicID *string
	Title   string
	Body    string
	Impact  *string
}

// MetricSummary aggregates the values of one metric for one brand and topic.
type MetricSummary struct {
	Metric  string
	BrandID string
	TopicID string
	Value   float64
	Sample  metricreg.Sample
}

// Stats contains aggregate database statistics.
type Stats struct {
	Brands       int
	Topics       int
	Answers      int
	Suggestions  int
	Assets       int
	MetricValues int
}
