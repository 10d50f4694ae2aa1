package database

import (
	"strings"
	"time"

	"github.com/TobiSchelling/geodash/internal/querystate"
)

// Filter is a query state resolved against a point in time.
type Filter struct {
	BrandID       string
	CompetitorIDs []string
	ModelIDs      []string
	TopicID       string
	RegionID      string
	Start         string // inclusive YYYY-MM-DD, empty when unbounded
	End           string
}

// FilterFrom resolves s relative to now. Relative presets become concrete
// dates; an unset time range is unbounded.
func FilterFrom(s querystate.State, now time.Time) Filter {
	f := Filter{
		BrandID:       s.Brand(),
		CompetitorIDs: s.CompetitorIDs,
		ModelIDs:      s.ModelIDs,
		TopicID:       s.Topic(),
		RegionID:      s.Region(),
	}
	if s.TimeRange != nil {
		f.Start, f.End = s.TimeRange.DateBounds(now)
	}
	return f
}

// brands is the brand filter plus its competitors.
func (f Filter) brands() []string {
	if f.BrandID == "" {
		return nil
	}
	return append([]string{f.BrandID}, f.CompetitorIDs...)
}

// where collects SQL conditions joined with AND.
type where struct {
	conds []string
	args  []any
}

func (w *where) eq(col, v string) {
	if v == "" {
		return
	}
	w.conds = append(w.conds, col+" = ?")
	w.args = append(w.args, v)
}

func (w *where) in(col string, vs []string) {
	if len(vs) == 0 {
		return
	}
	w.conds = append(w.conds, col+" IN (?"+strings.Repeat(", ?", len(vs)-1)+")")
	for _, v := range vs {
		w.args = append(w.args, v)
	}
}

func (w *where) dates(col string, f Filter) {
	if f.Start != "" {
		w.conds = append(w.conds, col+" >= ?")
		w.args = append(w.args, f.Start)
	}
	if f.End != "" {
		w.conds = append(w.conds, col+" <= ?")
		w.args = append(w.args, f.End)
	}
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}
