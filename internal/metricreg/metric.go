package metricreg

import "fmt"

// ID identifies one metric. The set of ids is closed: every value below has
// a definition in the built-in table.
type ID uint8

const (
	MentionRate ID = iota + 1
	ShareOfVoice
	AvgPosition
	SentimentScore
	CitationRate
	VisibilityScore
	AnswerCount
	TopicCoverage
)

var idNames = map[ID]string{
	MentionRate:     "mention_rate",
	ShareOfVoice:    "share_of_voice",
	AvgPosition:     "avg_position",
	SentimentScore:  "sentiment_score",
	CitationRate:    "citation_rate",
	VisibilityScore: "visibility_score",
	AnswerCount:     "answer_count",
	TopicCoverage:   "topic_coverage",
}

var namesToID = func() map[string]ID {
	m := make(map[string]ID, len(idNames))
	for id, name := range idNames {
		m[name] = id
	}
	return m
}()

// String returns the wire name of the metric, e.g. "mention_rate".
func (id ID) String() string {
	if name, ok := idNames[id]; ok {
		return name
	}
	return fmt.Sprintf("metric(%d)", uint8(id))
}

// IDs lists every metric id in declaration order.
func IDs() []ID {
	ids := make([]ID, 0, len(idNames))
	for id := MentionRate; id <= TopicCoverage; id++ {
		ids = append(ids, id)
	}
	return ids
}

// ParseID maps a wire name to its ID.
func ParseID(name string) (ID, bool) {
	id, ok := namesToID[name]
	return id, ok
}

// SampleSpec describes when a metric value is too thin to trust.
type SampleSpec struct {
	MinSample        int
	LowSampleLabel   string
	LowSampleTooltip string
}

// Definition is the static description of one metric.
type Definition struct {
	ID     ID
	Label  string
	Sample *SampleSpec // nil: never sample-gated
}

// Sample is an observed sample size. The zero value is an unknown size,
// which is distinct from a known size of 0.
type Sample struct {
	n     int
	known bool
}

// UnknownSample is the sample attached to values whose backing count was
// not recorded.
var UnknownSample = Sample{}

// SampleOf returns a known sample of size n. Negative sizes are not valid
// observations and yield UnknownSample.
func SampleOf(n int) Sample {
	if n < 0 {
		return UnknownSample
	}
	return Sample{n: n, known: true}
}

// SampleFromPtr converts a nullable column value into a Sample.
func SampleFromPtr(n *int) Sample {
	if n == nil {
		return UnknownSample
	}
	return SampleOf(*n)
}

// Size returns the sample size and whether it is known.
func (s Sample) Size() (int, bool) {
	return s.n, s.known
}

func (s Sample) String() string {
	if !s.known {
		return "n=?"
	}
	return fmt.Sprintf("n=%d", s.n)
}

// UnknownMetricError is returned when a caller references a metric that was
// never registered.
type UnknownMetricError struct {
	Name string
}

func (e *UnknownMetricError) Error() string {
	return fmt.Sprintf("unknown metric %q", e.Name)
}
