package fixtures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDemo(t *testing.T) {
	s, err := Parse(DemoYAML)
	require.NoError(t, err)

	assert.NotEmpty(t, s.Brands)
	assert.NotEmpty(t, s.Topics)
	assert.NotEmpty(t, s.Answers)
	assert.NotEmpty(t, s.Assets)
	assert.NotEmpty(t, s.Metrics)
	assert.Equal(t, "brief-pricing", s.Assets[1].CreatedFrom.BriefID)
	assert.Nil(t, s.Metrics[3].SampleSize, "sentiment fixture has no recorded sample")
}

func TestParseAssignsIDs(t *testing.T) {
	s, err := Parse([]byte(`
assets:
  - title: No id
    status: Draft
answers:
  - question: q
`))
	require.NoError(t, err)
	assert.NotEmpty(t, s.Assets[0].ID)
	assert.NotEmpty(t, s.Answers[0].ID)
}

func TestParseRejectsUnknownMetric(t *testing.T) {
	_, err := Parse([]byte(`
metrics:
  - metric: bogus_rate
    brand_id: acme
    value: 1
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus_rate")
}

func TestParseRejectsDuplicateBrand(t *testing.T) {
	_, err := Parse([]byte(`
brands:
  - id: acme
  - id: acme
`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, s.Brands)

	path := filepath.Join(t.TempDir(), "fx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("brands:\n  - id: x\n    name: X\n"), 0o644))
	s, err = Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Brands, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
