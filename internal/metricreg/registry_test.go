package metricreg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCoversEveryID(t *testing.T) {
	r := Default()
	require.Len(t, IDs(), len(idNames))
	for _, id := range IDs() {
		d, err := r.Definition(id)
		require.NoError(t, err, "metric %s", id)
		assert.Equal(t, id, d.ID)
		assert.NotEmpty(t, d.Label)
	}
	assert.Len(t, r.Definitions(), len(idNames))
}

func TestIsLowSampleThreshold(t *testing.T) {
	r := Default()

	assert.True(t, r.IsLowSample(MentionRate, SampleOf(29)))
	assert.False(t, r.IsLowSample(MentionRate, SampleOf(30)))
	assert.False(t, r.IsLowSample(MentionRate, SampleOf(31)))
	assert.True(t, r.IsLowSample(MentionRate, SampleOf(0)))
	assert.False(t, r.IsLowSample(MentionRate, UnknownSample))
}

func TestIsLowSampleWithoutSpec(t *testing.T) {
	r := Default()

	assert.False(t, r.IsLowSample(AnswerCount, SampleOf(0)))
	assert.False(t, r.IsLowSample(TopicCoverage, SampleOf(1)))
}

func TestIsLowSampleIsStable(t *testing.T) {
	r := Default()
	strict := r.With(Strict(true))

	for n := 0; n < 60; n++ {
		for _, d := range r.Definitions() {
			s := SampleOf(n)
			assert.Equal(t, r.IsLowSample(d.ID, s), strict.IsLowSample(d.ID, s))
			assert.Equal(t, r.IsLowSample(d.ID, s), r.IsLowSample(d.ID, s))
		}
	}
}

func TestNegativeSampleIsUnknown(t *testing.T) {
	_, known := SampleOf(-1).Size()
	assert.False(t, known)

	n := 12
	size, known := SampleFromPtr(&n).Size()
	assert.True(t, known)
	assert.Equal(t, 12, size)

	_, known = SampleFromPtr(nil).Size()
	assert.False(t, known)
}

func TestNewRejectsBadTables(t *testing.T) {
	_, err := New(
		Definition{ID: MentionRate, Label: "a"},
		Definition{ID: MentionRate, Label: "b"},
	)
	assert.Error(t, err)

	_, err = New(Definition{ID: CitationRate, Label: "c", Sample: &SampleSpec{MinSample: 0}})
	assert.Error(t, err)
}

func TestCustomTable(t *testing.T) {
	r, err := New(Definition{
		ID:     MentionRate,
		Label:  "Mentions",
		Sample: &SampleSpec{MinSample: 5, LowSampleLabel: "thin", LowSampleTooltip: "tip"},
	})
	require.NoError(t, err)

	assert.True(t, r.IsLowSample(MentionRate, SampleOf(4)))
	assert.False(t, r.IsLowSample(MentionRate, SampleOf(5)))

	// Not part of this table.
	_, err = r.Definition(ShareOfVoice)
	assert.True(t, IsUnknownMetric(err))
	assert.False(t, r.IsLowSample(ShareOfVoice, SampleOf(0)))
}

func TestLookup(t *testing.T) {
	r := Default()

	d, err := r.Lookup("citation_rate")
	require.NoError(t, err)
	assert.Equal(t, CitationRate, d.ID)

	_, err = r.Lookup("bogus")
	require.Error(t, err)
	var unknown *UnknownMetricError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "bogus", unknown.Name)
}

func TestCheck(t *testing.T) {
	r := Default()

	v := r.Check("mention_rate", SampleOf(10))
	assert.True(t, v.Low)
	assert.Equal(t, "Low sample", v.Label)
	assert.NotEmpty(t, v.Tooltip)
	assert.NoError(t, v.Err)

	v = r.Check("mention_rate", SampleOf(100))
	assert.False(t, v.Low)
	assert.Empty(t, v.Label)

	v = r.Check("answer_count", SampleOf(0))
	assert.False(t, v.Low)
}

func TestCheckUnknownMetric(t *testing.T) {
	lenient := Default()
	v := lenient.Check("nope", SampleOf(1))
	assert.False(t, v.Low)
	assert.NoError(t, v.Err)

	strict := lenient.With(Strict(true))
	v = strict.Check("nope", SampleOf(1))
	assert.False(t, v.Low)
	assert.True(t, IsUnknownMetric(v.Err))
}

func TestParseIDRoundTrip(t *testing.T) {
	for id, name := range idNames {
		got, ok := ParseID(name)
		require.True(t, ok)
		assert.Equal(t, id, got)
		assert.Equal(t, name, id.String())
	}
	_, ok := ParseID("")
	assert.False(t, ok)
	assert.Equal(t, "metric(200)", ID(200).String())
}
