package querystate

import "slices"

// Change is one field of a Patch. The zero Change leaves the field alone.
// A Change set to the zero value of T clears the field.
type Change[T any] struct {
	set   bool
	value T
}

// Set returns a Change that replaces the field with v.
func Set[T any](v T) Change[T] {
	return Change[T]{set: true, value: v}
}

// Clear returns a Change that removes the field's filter.
func Clear[T any]() Change[T] {
	return Change[T]{set: true}
}

// IsSet reports whether the change touches its field.
func (c Change[T]) IsSet() bool { return c.set }

// Value returns the replacement value.
func (c Change[T]) Value() T { return c.value }

// Patch is a partial update to a State, typically produced by a single
// filter control.
type Patch struct {
	BrandID       Change[string]
	CompetitorIDs Change[[]string]
	ModelIDs      Change[[]string]
	TimeRange     Change[TimeRange]
	TopicID       Change[string]
	RegionID      Change[string]
	Extra         Change[[]string]
}

// Merge returns base with every field set in patch replaced. Values in the
// patch are normalized the same way Decode normalizes them; a value that
// normalizes to nothing clears the field.
func Merge(base State, patch Patch) State {
	out := base.clone()

	if patch.BrandID.set {
		out.BrandID = optID(patch.BrandID.value)
	}
	if patch.CompetitorIDs.set {
		out.CompetitorIDs = orderedIDs(patch.CompetitorIDs.value)
	}
	if patch.ModelIDs.set {
		out.ModelIDs = idSet(patch.ModelIDs.value)
	}
	if patch.TimeRange.set {
		out.TimeRange = nil
		tr := patch.TimeRange.value
		tr.Preset = normalizePreset(string(tr.Preset))
		if tr.valid() {
			out.TimeRange = &tr
		}
	}
	if patch.TopicID.set {
		out.TopicID = optID(patch.TopicID.value)
	}
	if patch.RegionID.set {
		out.RegionID = optID(patch.RegionID.value)
	}
	if patch.Extra.set {
		out.Extra = nil
		for _, seg := range patch.Extra.value {
			if seg != "" {
				out.Extra = append(out.Extra, seg)
			}
		}
	}

	return out
}

// PatchFrom turns every field present in s into a Change. Extra parameters
// are not included; see overlayExtra.
func PatchFrom(s State) Patch {
	var p Patch
	if s.BrandID != nil {
		p.BrandID = Set(*s.BrandID)
	}
	if s.CompetitorIDs != nil {
		p.CompetitorIDs = Set(s.CompetitorIDs)
	}
	if s.ModelIDs != nil {
		p.ModelIDs = Set(s.ModelIDs)
	}
	if s.TimeRange != nil {
		p.TimeRange = Set(*s.TimeRange)
	}
	if s.TopicID != nil {
		p.TopicID = Set(*s.TopicID)
	}
	if s.RegionID != nil {
		p.RegionID = Set(*s.RegionID)
	}
	return p
}

// clone copies s so the result shares no memory with it.
func (s State) clone() State {
	out := State{
		CompetitorIDs: slices.Clone(s.CompetitorIDs),
		ModelIDs:      slices.Clone(s.ModelIDs),
		Extra:         slices.Clone(s.Extra),
	}
	if s.BrandID != nil {
		v := *s.BrandID
		out.BrandID = &v
	}
	if s.TimeRange != nil {
		v := *s.TimeRange
		out.TimeRange = &v
	}
	if s.TopicID != nil {
		v := *s.TopicID
		out.TopicID = &v
	}
	if s.RegionID != nil {
		v := *s.RegionID
		out.RegionID = &v
	}
	return out
}
