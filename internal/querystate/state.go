// Package querystate maps the dashboard's filter selection to and from URL
// query strings.
//
// Decoding never fails: a malformed value for one field leaves that field
// unset and does not affect the others. Parameters the codec does not know
// are carried through untouched, so links generated from a page keep every
// parameter the page was opened with.
package querystate

import (
	"slices"
	"strings"
)

// Query parameter names.
const (
	KeyBrand      = "brand"
	KeyCompetitor = "competitor"
	KeyModel      = "model"
	KeyRange      = "range"
	KeyStart      = "start"
	KeyEnd        = "end"
	KeyTopic      = "topic"
	KeyRegion     = "region"
)

// State is the filter selection a page is showing. Every field is optional;
// an unset field means no filter on that dimension.
//
// States are values. Use Merge to derive a changed state.
type State struct {
	BrandID *string
	// CompetitorIDs is kept in display order.
	CompetitorIDs []string
	// ModelIDs is a set, kept sorted.
	ModelIDs  []string
	TimeRange *TimeRange
	TopicID   *string
	RegionID  *string
	// Extra holds unrecognized parameters as raw "key=value" segments in
	// the order they appeared.
	Extra []string
}

// IsZero reports whether no filter and no extra parameter is set.
func (s State) IsZero() bool {
	return s.BrandID == nil && s.CompetitorIDs == nil && s.ModelIDs == nil &&
		s.TimeRange == nil && s.TopicID == nil && s.RegionID == nil && len(s.Extra) == 0
}

// Equal reports whether s and o describe the same selection.
func (s State) Equal(o State) bool {
	return eqPtr(s.BrandID, o.BrandID) &&
		slices.Equal(s.CompetitorIDs, o.CompetitorIDs) &&
		slices.Equal(s.ModelIDs, o.ModelIDs) &&
		eqPtr(s.TimeRange, o.TimeRange) &&
		eqPtr(s.TopicID, o.TopicID) &&
		eqPtr(s.RegionID, o.RegionID) &&
		slices.Equal(s.Extra, o.Extra)
}

// Brand returns the brand filter or "".
func (s State) Brand() string { return deref(s.BrandID) }

// Topic returns the topic filter or "".
func (s State) Topic() string { return deref(s.TopicID) }

// Region returns the region filter or "".
func (s State) Region() string { return deref(s.RegionID) }

// HasModel reports whether id is selected, or no model filter is set.
func (s State) HasModel(id string) bool {
	if s.ModelIDs == nil {
		return true
	}
	_, found := slices.BinarySearch(s.ModelIDs, id)
	return found
}

// validID reports whether id can be carried in a comma-separated list.
func validID(id string) bool {
	return id != "" && id == strings.TrimSpace(id) && !strings.Contains(id, ",")
}

// orderedIDs drops invalid and repeated ids, keeping first occurrences.
// An empty result is nil.
func orderedIDs(ids []string) []string {
	var out []string
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if !validID(id) || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// idSet is orderedIDs in canonical sorted order.
func idSet(ids []string) []string {
	out := orderedIDs(ids)
	slices.Sort(out)
	return out
}

func optID(id string) *string {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	return &id
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
