package querystate

import "strings"

// BuildHref returns targetPath with the filters and extra parameters of
// currentQuery attached. Parameters already present in targetPath win over
// the carried ones, field by field. A fragment on targetPath is kept.
//
// Following generated links from page A to B and back to A yields the state
// A started with.
func BuildHref(targetPath, currentQuery string) string {
	return BuildHrefPatch(targetPath, currentQuery, Patch{})
}

// BuildHrefPatch is BuildHref with patch applied to the carried state after
// the target's own parameters.
func BuildHrefPatch(targetPath, currentQuery string, patch Patch) string {
	path, fragment, hasFragment := strings.Cut(targetPath, "#")
	path, targetQuery, _ := strings.Cut(path, "?")

	s := Decode(currentQuery)
	if targetQuery != "" {
		target := Decode(targetQuery)
		s = Merge(s, PatchFrom(target))
		s.Extra = overlayExtra(s.Extra, target.Extra)
	}
	s = Merge(s, patch)

	href := path
	if q := Encode(s); q != "" {
		href += "?" + q
	}
	if hasFragment {
		href += "#" + fragment
	}
	return href
}

// ShareURL returns an absolute link to pathname carrying the canonical form
// of query. An empty query leaves no trailing "?".
func ShareURL(origin, pathname, query string) string {
	if pathname == "" || pathname[0] != '/' {
		pathname = "/" + pathname
	}
	u := strings.TrimRight(origin, "/") + pathname
	if q := Canonical(query); q != "" {
		u += "?" + q
	}
	return u
}

// overlayExtra replaces segments of base whose key appears in top, then
// appends top's segments in order.
func overlayExtra(base, top []string) []string {
	if len(top) == 0 {
		return base
	}
	replaced := make(map[string]bool, len(top))
	for _, seg := range top {
		replaced[segmentKey(seg)] = true
	}
	var out []string
	for _, seg := range base {
		if !replaced[segmentKey(seg)] {
			out = append(out, seg)
		}
	}
	return append(out, top...)
}

func segmentKey(seg string) string {
	k, _, _ := strings.Cut(seg, "=")
	return k
}
