package querystate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeEmptyPatchIsNoop(t *testing.T) {
	for name, s := range sampleStates() {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, s, Merge(s, Patch{}))
		})
	}
}

func TestMergeFieldwise(t *testing.T) {
	base := Decode("brand=acme&competitor=b,a&model=gpt4&range=7d&topic=pricing&foo=bar")

	got := Merge(base, Patch{BrandID: Set("globex")})
	assert.Equal(t, "brand=globex&competitor=b,a&model=gpt4&range=7d&topic=pricing&foo=bar", Encode(got))

	got = Merge(base, Patch{TopicID: Clear[string]()})
	assert.Nil(t, got.TopicID)
	assert.Equal(t, base.BrandID, got.BrandID)

	got = Merge(base, Patch{ModelIDs: Set([]string{"gpt4", "claude", "gpt4"})})
	assert.Equal(t, []string{"claude", "gpt4"}, got.ModelIDs)

	got = Merge(base, Patch{CompetitorIDs: Clear[[]string]()})
	assert.Nil(t, got.CompetitorIDs)

	got = Merge(base, Patch{TimeRange: Set(TimeRange{Start: "2026-01-01", End: "2026-01-07"})})
	assert.Equal(t, Between("2026-01-01", "2026-01-07"), got.TimeRange)

	got = Merge(base, Patch{Extra: Clear[[]string]()})
	assert.Nil(t, got.Extra)
}

func TestMergeNormalizesInvalidValues(t *testing.T) {
	base := Decode("brand=acme&range=7d")

	got := Merge(base, Patch{TimeRange: Set(TimeRange{Start: "2026-02-01", End: "2026-01-01"})})
	assert.Nil(t, got.TimeRange)

	got = Merge(base, Patch{TimeRange: Set(TimeRange{Preset: "7d", Start: "2026-01-01"})})
	assert.Nil(t, got.TimeRange)

	got = Merge(base, Patch{BrandID: Set("   ")})
	assert.Nil(t, got.BrandID)

	got = Merge(base, Patch{CompetitorIDs: Set([]string{"", "a,b"})})
	assert.Nil(t, got.CompetitorIDs)
}

func TestMergeNormalizesPresetLikeDecode(t *testing.T) {
	base := Decode("brand=acme")

	got := Merge(base, Patch{TimeRange: Set(TimeRange{Preset: " 7D "})})
	require.NotNil(t, got.TimeRange)
	assert.Equal(t, Decode("range=7D").TimeRange, got.TimeRange)
	assert.Equal(t, "brand=acme&range=7d", Encode(got))
}

func TestMergeDoesNotAliasBase(t *testing.T) {
	base := Decode("brand=acme&competitor=b,a&foo=bar")
	got := Merge(base, Patch{})

	got.CompetitorIDs[0] = "changed"
	got.Extra[0] = "changed"
	*got.BrandID = "changed"

	assert.Equal(t, "brand=acme&competitor=b,a&foo=bar", Encode(base))
}

func TestBuildHrefCarriesState(t *testing.T) {
	start := "/topics?brand=acme&model=gpt4"
	path, query, _ := strings.Cut(start, "?")

	toQuestions := BuildHref("/questions", query)
	assert.Equal(t, "/questions?brand=acme&model=gpt4", toQuestions)

	_, questionsQuery, _ := strings.Cut(toQuestions, "?")
	back := BuildHref(path, questionsQuery)
	assert.Equal(t, start, back)

	_, backQuery, _ := strings.Cut(back, "?")
	assert.Equal(t, Decode(query), Decode(backQuery))
}

func TestBuildHrefRoundTripAcrossPages(t *testing.T) {
	for name, s := range sampleStates() {
		t.Run(name, func(t *testing.T) {
			q := Encode(s)
			hrefB := BuildHref("/suggestions", q)
			_, qb, _ := strings.Cut(hrefB, "?")
			hrefA := BuildHref("/topics", qb)
			_, qa, _ := strings.Cut(hrefA, "?")
			assert.Equal(t, s, Decode(qa))
		})
	}
}

func TestBuildHrefTargetParamsWin(t *testing.T) {
	got := BuildHref("/assets?asset=a2&brand=globex#top", "brand=acme&asset=a1&x=1&range=7d")
	assert.Equal(t, "/assets?brand=globex&range=7d&x=1&asset=a2#top", got)
}

func TestBuildHrefEmptyState(t *testing.T) {
	assert.Equal(t, "/questions", BuildHref("/questions", ""))
	assert.Equal(t, "/questions#list", BuildHref("/questions#list", "?"))
}

func TestBuildHrefPatch(t *testing.T) {
	got := BuildHrefPatch("/questions", "brand=acme&topic=pricing", Patch{TopicID: Set("support")})
	assert.Equal(t, "/questions?brand=acme&topic=support", got)

	got = BuildHrefPatch("/questions", "brand=acme&topic=pricing", Patch{TopicID: Clear[string]()})
	assert.Equal(t, "/questions?brand=acme", got)
}

func TestShareURL(t *testing.T) {
	assert.Equal(t, "https://geo.example.com/topics", ShareURL("https://geo.example.com/", "/topics", ""))
	assert.Equal(t, "https://geo.example.com/topics", ShareURL("https://geo.example.com", "topics", "?"))
	assert.Equal(t,
		"https://geo.example.com/topics?brand=x&model=a,b&utm=1",
		ShareURL("https://geo.example.com", "/topics", "utm=1&model=b,a&brand=x"),
	)
}
