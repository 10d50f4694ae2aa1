package metricreg

const lowSampleLabel = "Low sample"

func builtin() []Definition {
	return []Definition{
		{
			ID:    MentionRate,
			Label: "Mention rate",
			Sample: &SampleSpec{
				MinSample:        30,
				LowSampleLabel:   lowSampleLabel,
				LowSampleTooltip: "Fewer than 30 answers were sampled; the mention rate may swing widely.",
			},
		},
		{
			ID:    ShareOfVoice,
			Label: "Share of voice",
			Sample: &SampleSpec{
				MinSample:        30,
				LowSampleLabel:   lowSampleLabel,
				LowSampleTooltip: "Fewer than 30 answers mention any tracked brand.",
			},
		},
		{
			ID:    AvgPosition,
			Label: "Average position",
			Sample: &SampleSpec{
				MinSample:        20,
				LowSampleLabel:   lowSampleLabel,
				LowSampleTooltip: "Position is averaged over fewer than 20 mentions.",
			},
		},
		{
			ID:    SentimentScore,
			Label: "Sentiment",
			Sample: &SampleSpec{
				MinSample:        25,
				LowSampleLabel:   "Few mentions",
				LowSampleTooltip: "Sentiment is scored from fewer than 25 mentions.",
			},
		},
		{
			ID:    CitationRate,
			Label: "Citation rate",
			Sample: &SampleSpec{
				MinSample:        30,
				LowSampleLabel:   lowSampleLabel,
				LowSampleTooltip: "Fewer than 30 answers were checked for citations.",
			},
		},
		{
			ID:    VisibilityScore,
			Label: "Visibility score",
			Sample: &SampleSpec{
				MinSample:        50,
				LowSampleLabel:   "Preliminary",
				LowSampleTooltip: "The visibility score combines fewer than 50 answers.",
			},
		},
		{ID: AnswerCount, Label: "Answers"},
		{ID: TopicCoverage, Label: "Topic coverage"},
	}
}
