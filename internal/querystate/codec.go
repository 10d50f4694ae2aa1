package querystate

import (
	"net/url"
	"strings"
)

// Fallback records a recognized parameter whose value could not be used.
// The field it feeds was left unset.
type Fallback struct {
	Key string
	Raw string
}

// Decode parses a raw query string (with or without a leading "?").
func Decode(rawQuery string) State {
	s, _ := DecodeReport(rawQuery)
	return s
}

// DecodeReport is Decode that also lists the parameters it had to ignore.
func DecodeReport(rawQuery string) (State, []Fallback) {
	var (
		s         State
		fallbacks []Fallback
		values    = make(map[string][]string)
		rawByKey  = make(map[string]string)
	)

	for _, seg := range strings.Split(strings.TrimPrefix(rawQuery, "?"), "&") {
		if seg == "" {
			continue
		}
		rawKey, rawVal, _ := strings.Cut(seg, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil || !recognized(key) {
			s.Extra = append(s.Extra, seg)
			continue
		}
		val, err := url.QueryUnescape(rawVal)
		if err != nil {
			fallbacks = append(fallbacks, Fallback{Key: key, Raw: rawVal})
			continue
		}
		values[key] = append(values[key], val)
		if _, ok := rawByKey[key]; !ok {
			rawByKey[key] = rawVal
		}
	}

	scalar := func(key string) *string {
		vals, ok := values[key]
		if !ok {
			return nil
		}
		id := optID(vals[0])
		if id == nil {
			fallbacks = append(fallbacks, Fallback{Key: key, Raw: rawByKey[key]})
		}
		return id
	}
	list := func(key string) []string {
		var ids []string
		for _, v := range values[key] {
			ids = append(ids, strings.Split(v, ",")...)
		}
		return ids
	}

	s.BrandID = scalar(KeyBrand)
	s.TopicID = scalar(KeyTopic)
	s.RegionID = scalar(KeyRegion)

	if _, ok := values[KeyCompetitor]; ok {
		s.CompetitorIDs = orderedIDs(list(KeyCompetitor))
		if s.CompetitorIDs == nil {
			fallbacks = append(fallbacks, Fallback{Key: KeyCompetitor, Raw: rawByKey[KeyCompetitor]})
		}
	}
	if _, ok := values[KeyModel]; ok {
		s.ModelIDs = idSet(list(KeyModel))
		if s.ModelIDs == nil {
			fallbacks = append(fallbacks, Fallback{Key: KeyModel, Raw: rawByKey[KeyModel]})
		}
	}

	var tr *TimeRange
	start, hasStart := values[KeyStart]
	end, hasEnd := values[KeyEnd]
	if hasStart || hasEnd {
		if hasStart && hasEnd {
			tr = Between(start[0], end[0])
		}
		if tr == nil {
			fallbacks = append(fallbacks, Fallback{Key: KeyStart, Raw: rawByKey[KeyStart] + ".." + rawByKey[KeyEnd]})
		}
	}
	if preset, ok := values[KeyRange]; ok && tr == nil {
		tr = PresetRange(normalizePreset(preset[0]))
		if tr == nil {
			fallbacks = append(fallbacks, Fallback{Key: KeyRange, Raw: rawByKey[KeyRange]})
		}
	}
	s.TimeRange = tr

	return s, fallbacks
}

// Encode renders s as a query string without the leading "?". Filters come
// first in a fixed order, followed by the extra parameters as they were
// received. Unset fields are omitted.
func Encode(s State) string {
	var segs []string
	add := func(key, val string) {
		segs = append(segs, key+"="+val)
	}
	addList := func(key string, ids []string) {
		if len(ids) == 0 {
			return
		}
		escaped := make([]string, len(ids))
		for i, id := range ids {
			escaped[i] = url.QueryEscape(id)
		}
		add(key, strings.Join(escaped, ","))
	}

	if s.BrandID != nil {
		add(KeyBrand, url.QueryEscape(*s.BrandID))
	}
	addList(KeyCompetitor, s.CompetitorIDs)
	addList(KeyModel, s.ModelIDs)
	if tr := s.TimeRange; tr != nil {
		if tr.Preset != "" {
			add(KeyRange, url.QueryEscape(string(tr.Preset)))
		} else {
			add(KeyStart, url.QueryEscape(tr.Start))
			add(KeyEnd, url.QueryEscape(tr.End))
		}
	}
	if s.TopicID != nil {
		add(KeyTopic, url.QueryEscape(*s.TopicID))
	}
	if s.RegionID != nil {
		add(KeyRegion, url.QueryEscape(*s.RegionID))
	}
	for _, seg := range s.Extra {
		if seg != "" {
			segs = append(segs, seg)
		}
	}

	return strings.Join(segs, "&")
}

// Canonical decodes and re-encodes rawQuery.
func Canonical(rawQuery string) string {
	return Encode(Decode(rawQuery))
}

func recognized(key string) bool {
	switch key {
	case KeyBrand, KeyCompetitor, KeyModel, KeyRange, KeyStart, KeyEnd, KeyTopic, KeyRegion:
		return true
	}
	return false
}
