package sentiment

import (
	"github.com/pscheid92/moodlens/internal/domain"
)

// Trend descriptions returned by the aggregator. These are human-facing
// narration only; callers must not branch on them.
const (
	TrendNoMessages       = "No messages to analyze"
	TrendInsufficientData = "Insufficient data for trend analysis"
	TrendStable           = "Stable mood throughout the conversation"
	TrendImprovedStrongly = "Mood improved significantly during the conversation"
	TrendImprovedSlightly = "Slight improvement in mood over the conversation"
	TrendDeclinedStrongly = "Mood declined significantly during the conversation"
	TrendDeclinedSlightly = "Slight decline in mood over the conversation"
	TrendFluctuating      = "Fluctuating mood throughout the conversation"
	TrendMinorVariations  = "Relatively stable mood with minor variations"
)

// TextScorer is the subset of the Scorer needed by the aggregator.
type TextScorer interface {
	Score(text string) domain.Score
}

// Aggregator computes conversation-level sentiment from ordered message
// lists. It is stateless and safe for concurrent use.
type Aggregator struct {
	scorer     TextScorer
	thresholds domain.Thresholds
}

// NewAggregator creates an aggregator that classifies the conversation mean
// with the same thresholds used for individual messages.
func NewAggregator(scorer TextScorer, thresholds domain.Thresholds) *Aggregator {
	return &Aggregator{scorer: scorer, thresholds: thresholds}
}

// AnalyzeConversation scores every text independently in chronological order
// and derives aggregate counts, the mean compound score and a mood trend.
// An empty input yields a well-defined neutral summary, never an error.
func (a *Aggregator) AnalyzeConversation(texts []string) domain.Summary {
	if len(texts) == 0 {
		return domain.Summary{
			OverallLabel: domain.LabelNeutral,
			PerMessage:   []domain.MessageScore{},
			MoodTrend:    TrendNoMessages,
		}
	}

	perMessage := make([]domain.MessageScore, 0, len(texts))
	compounds := make([]float64, 0, len(texts))
	var counts domain.Counts

	for _, text := range texts {
		score := a.scorer.Score(text)
		perMessage = append(perMessage, domain.MessageScore{Text: text, Score: score})
		compounds = append(compounds, score.Compound)

		switch score.Label {
		case domain.LabelPositive:
			counts.Positive++
		case domain.LabelNegative:
			counts.Negative++
		default:
			counts.Neutral++
		}
	}

	average := mean(compounds)

	return domain.Summary{
		OverallLabel:    a.thresholds.Classify(average),
		AverageCompound: average,
		PerMessage:      perMessage,
		Counts:          counts,
		MoodTrend:       moodTrend(compounds),
	}
}

// moodTrend compares the first and second half of the compound sequence and
// the start against the end. The ladder is evaluated top to bottom with
// first-match semantics; the thresholds overlap on purpose (a small halves
// difference can still read as significant via a large start-to-end jump),
// so the order of the branches must not be rearranged.
func moodTrend(scores []float64) string {
	if len(scores) < 2 {
		return TrendInsufficientData
	}

	mid := len(scores) / 2
	halvesDiff := mean(scores[mid:]) - mean(scores[:mid])
	startEndDiff := scores[len(scores)-1] - scores[0]

	switch {
	case abs(halvesDiff) < 0.1 && abs(startEndDiff) < 0.1:
		return TrendStable
	case halvesDiff > 0.2 || startEndDiff > 0.3:
		return TrendImprovedStrongly
	case halvesDiff > 0.1 || startEndDiff > 0.15:
		return TrendImprovedSlightly
	case halvesDiff < -0.2 || startEndDiff < -0.3:
		return TrendDeclinedStrongly
	case halvesDiff < -0.1 || startEndDiff < -0.15:
		return TrendDeclinedSlightly
	}

	if variance(scores) > 0.2 {
		return TrendFluctuating
	}
	return TrendMinorVariations
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// variance is the population variance of the scores.
func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(values))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
