package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TobiSchelling/geodash/internal/querystate"
)

func TestDefaultAssetID(t *testing.T) {
	tests := []struct {
		name   string
		assets []Asset
		want   string
		wantOK bool
	}{
		{
			name:   "published stub preferred",
			assets: []Asset{{ID: "a1", Status: "Draft"}, {ID: "a2", Status: "Published (stub)"}},
			want:   "a2",
			wantOK: true,
		},
		{
			name:   "all drafts picks first",
			assets: []Asset{{ID: "a1", Status: "Draft"}, {ID: "a2", Status: "Draft"}},
			want:   "a1",
			wantOK: true,
		},
		{
			name:   "first published wins",
			assets: []Asset{{ID: "a1", Status: "published"}, {ID: "a2", Status: "Published"}},
			want:   "a1",
			wantOK: true,
		},
		{
			name:   "empty",
			assets: nil,
			want:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DefaultAssetID(tt.assets)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterByQuery(t *testing.T) {
	list := []Asset{
		{ID: "a1", BrandID: "acme", TopicID: "pricing"},
		{ID: "a2", BrandID: "globex", TopicID: "pricing"},
		{ID: "a3", BrandID: "acme", TopicID: "support"},
		{ID: "a4"},
	}

	ids := func(as []Asset) []string {
		var out []string
		for _, a := range as {
			out = append(out, a.ID)
		}
		return out
	}

	assert.Equal(t, []string{"a1", "a2", "a3", "a4"}, ids(FilterByQuery(list, querystate.State{})))
	assert.Equal(t, []string{"a1", "a3", "a4"}, ids(FilterByQuery(list, querystate.Decode("brand=acme"))))
	assert.Equal(t, []string{"a1", "a4"}, ids(FilterByQuery(list, querystate.Decode("brand=acme&topic=pricing"))))
	assert.Equal(t, []string{"a4"}, ids(FilterByQuery(list, querystate.Decode("brand=initech"))))
}

func TestProvenance(t *testing.T) {
	list := []Asset{
		{ID: "a1", CreatedFrom: Provenance{BriefID: "b1"}},
		{ID: "a2", CreatedFrom: Provenance{BriefID: "b1", SpecID: "s1"}},
		{ID: "a3", CreatedFrom: Provenance{SpecID: "s2"}},
	}

	assert.Len(t, ForBrief(list, "b1"), 2)
	assert.Len(t, ForSpec(list, "s2"), 1)
	assert.Empty(t, ForSpec(list, "missing"))
}

func TestSelect(t *testing.T) {
	list := []Asset{{ID: "a1", Status: "Draft"}, {ID: "a2", Status: "Published"}}

	a, ok := Select(list, "a1")
	assert.True(t, ok)
	assert.Equal(t, "a1", a.ID)

	a, ok = Select(list, "nope")
	assert.True(t, ok)
	assert.Equal(t, "a2", a.ID)

	_, ok = Select(nil, "a1")
	assert.False(t, ok)
}
