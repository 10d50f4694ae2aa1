package querystate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Preset is a named, relative time window.
type Preset string

const (
	Last7Days    Preset = "7d"
	Last14Days   Preset = "14d"
	Last30Days   Preset = "30d"
	Last90Days   Preset = "90d"
	MonthToDate  Preset = "mtd"
	YearToDate   Preset = "ytd"
	DefaultRange        = Last30Days
)

var presetLabels = map[Preset]string{
	Last7Days:   "Last 7 days",
	Last14Days:  "Last 14 days",
	Last30Days:  "Last 30 days",
	Last90Days:  "Last 90 days",
	MonthToDate: "Month to date",
	YearToDate:  "Year to date",
}

// Presets lists the known presets, shortest window first.
func Presets() []Preset {
	return []Preset{Last7Days, Last14Days, Last30Days, Last90Days, MonthToDate, YearToDate}
}

// normalizePreset folds a preset token to its canonical spelling.
func normalizePreset(s string) Preset {
	return Preset(strings.ToLower(strings.TrimSpace(s)))
}

// Valid reports whether p is a known preset.
func (p Preset) Valid() bool {
	_, ok := presetLabels[p]
	return ok
}

// TimeRange is either a preset or an explicit inclusive date pair. Exactly
// one of Preset and Start/End is set.
type TimeRange struct {
	Preset Preset
	Start  string // YYYY-MM-DD
	End    string // YYYY-MM-DD
}

// PresetRange returns a range for p, or nil if p is unknown.
func PresetRange(p Preset) *TimeRange {
	if !p.Valid() {
		return nil
	}
	return &TimeRange{Preset: p}
}

// Between returns an explicit range, or nil if the dates do not parse or
// start is after end.
func Between(start, end string) *TimeRange {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil
	}
	if e.Before(s) {
		return nil
	}
	return &TimeRange{Start: s.Format(dateLayout), End: e.Format(dateLayout)}
}

// valid reports whether r is in one of its two canonical shapes.
func (r TimeRange) valid() bool {
	if r.Preset != "" {
		return r.Start == "" && r.End == "" && r.Preset.Valid()
	}
	b := Between(r.Start, r.End)
	return b != nil && *b == r
}

// Bounds resolves r to inclusive calendar dates relative to now.
func (r TimeRange) Bounds(now time.Time) (start, end time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch r.Preset {
	case "":
		start, _ = time.ParseInLocation(dateLayout, r.Start, now.Location())
		end, _ = time.ParseInLocation(dateLayout, r.End, now.Location())
		return start, end
	case MonthToDate:
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()), today
	case YearToDate:
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location()), today
	}

	days, err := strconv.Atoi(strings.TrimSuffix(string(r.Preset), "d"))
	if err != nil || days <= 0 {
		days = 30
	}
	return today.AddDate(0, 0, -(days - 1)), today
}

// DateBounds is Bounds formatted as YYYY-MM-DD.
func (r TimeRange) DateBounds(now time.Time) (start, end string) {
	s, e := r.Bounds(now)
	return s.Format(dateLayout), e.Format(dateLayout)
}

// Label formats r for display.
// Preset: "Last 7 days"
// Single day: "Feb 06, 2026"
// Range: "Feb 01 - Feb 06, 2026"
func (r TimeRange) Label() string {
	if r.Preset != "" {
		if l, ok := presetLabels[r.Preset]; ok {
			return l
		}
		return string(r.Preset)
	}

	start, err := time.Parse(dateLayout, r.Start)
	if err != nil {
		return r.Start + ".." + r.End
	}
	end, err := time.Parse(dateLayout, r.End)
	if err != nil {
		return r.Start + ".." + r.End
	}
	if start.Equal(end) {
		return start.Format("Jan 02, 2006")
	}
	if start.Year() != end.Year() {
		return fmt.Sprintf("%s - %s", start.Format("Jan 02, 2006"), end.Format("Jan 02, 2006"))
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 02"), end.Format("Jan 02, 2006"))
}
