// Package assets narrows content assets to the ones relevant for the current
// filter selection and picks the asset a page opens by default.
package assets

import (
	"strings"

	"github.com/TobiSchelling/geodash/internal/querystate"
)

// Status values seen in practice. Any status starting with "Published" is
// treated as published, e.g. "Published (stub)".
const (
	StatusDraft     = "Draft"
	StatusInReview  = "In review"
	StatusPublished = "Published"
)

// Provenance records which brief or spec an asset was generated from.
type Provenance struct {
	BriefID string `yaml:"brief_id" json:"brief_id,omitempty"`
	SpecID  string `yaml:"spec_id" json:"spec_id,omitempty"`
}

// Asset is a piece of content produced from a brief or spec.
type Asset struct {
	ID          string     `yaml:"id" json:"id"`
	Title       string     `yaml:"title" json:"title"`
	Status      string     `yaml:"status" json:"status"`
	CreatedFrom Provenance `yaml:"created_from" json:"created_from"`
	BrandID     string     `yaml:"brand_id" json:"brand_id,omitempty"`
	TopicID     string     `yaml:"topic_id" json:"topic_id,omitempty"`
	Body        string     `yaml:"body" json:"body,omitempty"`
}

// Published reports whether the asset's status is a published variant.
func (a Asset) Published() bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(a.Status)), "published")
}

// FilterByQuery keeps the assets compatible with s. Assets that carry no
// brand or topic metadata are never filtered out on that dimension.
func FilterByQuery(list []Asset, s querystate.State) []Asset {
	brand, topic := s.Brand(), s.Topic()
	if brand == "" && topic == "" {
		return list
	}

	var out []Asset
	for _, a := range list {
		if brand != "" && a.BrandID != "" && a.BrandID != brand {
			continue
		}
		if topic != "" && a.TopicID != "" && a.TopicID != topic {
			continue
		}
		out = append(out, a)
	}
	return out
}

// ForBrief returns the assets created from briefID, in input order.
func ForBrief(list []Asset, briefID string) []Asset {
	return filter(list, func(a Asset) bool { return a.CreatedFrom.BriefID == briefID })
}

// ForSpec returns the assets created from specID, in input order.
func ForSpec(list []Asset, specID string) []Asset {
	return filter(list, func(a Asset) bool { return a.CreatedFrom.SpecID == specID })
}

// DefaultAssetID returns the first published asset, else the first asset.
func DefaultAssetID(list []Asset) (string, bool) {
	for _, a := range list {
		if a.Published() {
			return a.ID, true
		}
	}
	if len(list) > 0 {
		return list[0].ID, true
	}
	return "", false
}

// Select returns the asset with id if it is in list, else the default.
func Select(list []Asset, id string) (Asset, bool) {
	if id != "" {
		for _, a := range list {
			if a.ID == id {
				return a, true
			}
		}
	}
	def, ok := DefaultAssetID(list)
	if !ok {
		return Asset{}, false
	}
	for _, a := range list {
		if a.ID == def {
			return a, true
		}
	}
	return Asset{}, false
}

func filter(list []Asset, keep func(Asset) bool) []Asset {
	var out []Asset
	for _, a := range list {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
