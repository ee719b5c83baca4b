package analysis

import (
	"math"
	"strings"

	"github.com/pscheid92/moodlens/internal/domain"
)

// engagementNormalizer is the average word count at which engagement
// saturates at 1.0.
const engagementNormalizer = 20.0

// Insights summarizes engagement and sentiment dynamics of a conversation.
type Insights struct {
	TotalMessages     int          `json:"total_messages"`
	AverageSentiment  float64      `json:"average_sentiment"`
	SentimentVariance float64      `json:"sentiment_variance"`
	DominantLabel     domain.Label `json:"dominant_label"`
	AverageWordCount  float64      `json:"average_word_count"`
	SentimentShifts   int          `json:"sentiment_shifts"`
	PositiveRatio     float64      `json:"positive_ratio"`
	NegativeRatio     float64      `json:"negative_ratio"`
	EngagementScore   float64      `json:"engagement_score"`
}

// Analyzer computes insights over scored conversations.
type Analyzer struct {
	scorer sentimentScorer
}

// sentimentScorer is the subset of the sentiment core needed here.
type sentimentScorer interface {
	Score(text string) domain.Score
}

// NewAnalyzer creates an insights analyzer over the given scorer.
func NewAnalyzer(scorer sentimentScorer) *Analyzer {
	return &Analyzer{scorer: scorer}
}

// Insights scores every message and derives aggregate engagement metrics.
// An empty conversation yields zero-valued insights with a neutral dominant
// label.
func (a *Analyzer) Insights(messages []string) Insights {
	if len(messages) == 0 {
		return Insights{DominantLabel: domain.LabelNeutral}
	}

	scores := make([]domain.Score, len(messages))
	compounds := make([]float64, len(messages))
	totalWords := 0
	var counts domain.Counts

	for i, msg := range messages {
		scores[i] = a.scorer.Score(msg)
		compounds[i] = scores[i].Compound
		totalWords += len(strings.Fields(msg))

		switch scores[i].Label {
		case domain.LabelPositive:
			counts.Positive++
		case domain.LabelNegative:
			counts.Negative++
		default:
			counts.Neutral++
		}
	}

	total := float64(len(messages))
	avg := 0.0
	for _, c := range compounds {
		avg += c
	}
	avg /= total

	variance := 0.0
	for _, c := range compounds {
		d := c - avg
		variance += d * d
	}
	variance /= total

	shifts := 0
	for i := 1; i < len(scores); i++ {
		if scores[i].Label != scores[i-1].Label {
			shifts++
		}
	}

	avgWords := float64(totalWords) / total

	return Insights{
		TotalMessages:     len(messages),
		AverageSentiment:  avg,
		SentimentVariance: variance,
		DominantLabel:     dominantLabel(counts),
		AverageWordCount:  avgWords,
		SentimentShifts:   shifts,
		PositiveRatio:     float64(counts.Positive) / total,
		NegativeRatio:     float64(counts.Negative) / total,
		EngagementScore:   math.Min(1.0, avgWords/engagementNormalizer),
	}
}

// dominantLabel picks the most frequent label; ties resolve positive, then
// negative, then neutral.
func dominantLabel(counts domain.Counts) domain.Label {
	switch {
	case counts.Positive >= counts.Negative && counts.Positive >= counts.Neutral:
		return domain.LabelPositive
	case counts.Negative >= counts.Neutral:
		return domain.LabelNegative
	default:
		return domain.LabelNeutral
	}
}
