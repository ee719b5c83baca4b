package sentiment

import (
	"fmt"
	"testing"

	"github.com/pscheid92/moodlens/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubScorer maps texts directly to compound scores so ladder branches can be
// driven precisely.
type stubScorer struct {
	thresholds domain.Thresholds
	scores     map[string]float64
}

func (s stubScorer) Score(text string) domain.Score {
	compound := s.scores[text]
	return domain.Score{
		Compound: compound,
		Neutral:  1.0,
		Label:    s.thresholds.Classify(compound),
	}
}

func newStubAggregator(scores map[string]float64) *Aggregator {
	thresholds := domain.DefaultThresholds()
	return NewAggregator(stubScorer{thresholds: thresholds, scores: scores}, thresholds)
}

// stubTexts builds one message per score, keyed "m0", "m1", ...
func stubTexts(scores ...float64) (*Aggregator, []string) {
	texts := make([]string, len(scores))
	mapped := make(map[string]float64, len(scores))
	for i, s := range scores {
		texts[i] = fmt.Sprintf("m%d", i)
		mapped[texts[i]] = s
	}
	return newStubAggregator(mapped), texts
}

func TestAnalyzeConversation_Empty(t *testing.T) {
	agg := NewAggregator(NewDefaultScorer(), domain.DefaultThresholds())
	summary := agg.AnalyzeConversation(nil)

	assert.Equal(t, domain.LabelNeutral, summary.OverallLabel)
	assert.Equal(t, 0.0, summary.AverageCompound)
	assert.Empty(t, summary.PerMessage)
	assert.Equal(t, domain.Counts{}, summary.Counts)
	assert.Equal(t, TrendNoMessages, summary.MoodTrend)
}

func TestAnalyzeConversation_SingleMessage(t *testing.T) {
	agg := NewAggregator(NewDefaultScorer(), domain.DefaultThresholds())
	summary := agg.AnalyzeConversation([]string{"this is great"})

	assert.Equal(t, domain.LabelPositive, summary.OverallLabel)
	assert.Len(t, summary.PerMessage, 1)
	assert.Equal(t, TrendInsufficientData, summary.MoodTrend)
}

func TestAnalyzeConversation_CountsSumToMessageCount(t *testing.T) {
	agg := NewAggregator(NewDefaultScorer(), domain.DefaultThresholds())
	texts := []string{"great", "terrible", "the table", "love it", "awful day"}
	summary := agg.AnalyzeConversation(texts)

	assert.Equal(t, len(texts), summary.Counts.Total())
	assert.Len(t, summary.PerMessage, len(texts))
}

func TestAnalyzeConversation_OrderPreserved(t *testing.T) {
	agg := NewAggregator(NewDefaultScorer(), domain.DefaultThresholds())
	texts := []string{"first", "second", "third"}
	summary := agg.AnalyzeConversation(texts)

	require.Len(t, summary.PerMessage, 3)
	for i, pm := range summary.PerMessage {
		assert.Equal(t, texts[i], pm.Text)
	}
}

func TestAnalyzeConversation_OrderSensitiveTrend(t *testing.T) {
	agg := NewAggregator(NewDefaultScorer(), domain.DefaultThresholds())

	improving := agg.AnalyzeConversation([]string{"bad", "bad", "great", "great"})
	declining := agg.AnalyzeConversation([]string{"great", "great", "bad", "bad"})

	// Same multiset of scores, different sequence, different trend.
	assert.NotEqual(t, improving.MoodTrend, declining.MoodTrend)
	assert.Equal(t, TrendImprovedStrongly, improving.MoodTrend)
	assert.Equal(t, TrendDeclinedStrongly, declining.MoodTrend)
	assert.InDelta(t, improving.AverageCompound, declining.AverageCompound, 1e-12)
}

func TestAnalyzeConversation_OverallLabelFromMean(t *testing.T) {
	agg, texts := stubTexts(0.8, 0.8, -0.1)
	summary := agg.AnalyzeConversation(texts)

	assert.Equal(t, domain.LabelPositive, summary.OverallLabel)
	assert.InDelta(t, 0.5, summary.AverageCompound, 1e-9)
}

func TestMoodTrend_Stable(t *testing.T) {
	agg, texts := stubTexts(0.02, 0.03, 0.01, 0.02)
	assert.Equal(t, TrendStable, agg.AnalyzeConversation(texts).MoodTrend)
}

func TestMoodTrend_ImprovedSignificantly(t *testing.T) {
	agg, texts := stubTexts(-0.4, -0.3, 0.3, 0.4)
	assert.Equal(t, TrendImprovedStrongly, agg.AnalyzeConversation(texts).MoodTrend)
}

func TestMoodTrend_ImprovedViaStartEndOnly(t *testing.T) {
	// Halves differ barely, but the start-to-end jump is large: the
	// "significant" branch must win because the ladder checks it first.
	agg, texts := stubTexts(-0.2, 0.3, -0.1, 0.25)
	summary := agg.AnalyzeConversation(texts)

	assert.Equal(t, TrendImprovedStrongly, summary.MoodTrend)
}

func TestMoodTrend_SlightImprovement(t *testing.T) {
	agg, texts := stubTexts(0.0, 0.0, 0.12, 0.12)
	assert.Equal(t, TrendImprovedSlightly, agg.AnalyzeConversation(texts).MoodTrend)
}

func TestMoodTrend_DeclinedSignificantly(t *testing.T) {
	agg, texts := stubTexts(0.4, 0.3, -0.3, -0.4)
	assert.Equal(t, TrendDeclinedStrongly, agg.AnalyzeConversation(texts).MoodTrend)
}

func TestMoodTrend_SlightDecline(t *testing.T) {
	agg, texts := stubTexts(0.12, 0.12, 0.0, 0.0)
	assert.Equal(t, TrendDeclinedSlightly, agg.AnalyzeConversation(texts).MoodTrend)
}

func TestMoodTrend_Fluctuating(t *testing.T) {
	// Halves and endpoints nearly cancel out, variance stays high.
	agg, texts := stubTexts(0.78, -0.9, -0.9, 0.9)
	assert.Equal(t, TrendFluctuating, agg.AnalyzeConversation(texts).MoodTrend)
}

func TestMoodTrend_MinorVariations(t *testing.T) {
	agg, texts := stubTexts(0.0, 0.05, 0.05, 0.12)
	assert.Equal(t, TrendMinorVariations, agg.AnalyzeConversation(texts).MoodTrend)
}

func TestMoodTrend_OddMessageCount(t *testing.T) {
	// mid = 2: first half is two messages, second half three.
	agg, texts := stubTexts(-0.5, -0.5, 0.5, 0.5, 0.5)
	assert.Equal(t, TrendImprovedStrongly, agg.AnalyzeConversation(texts).MoodTrend)
}

func TestAnalyzeConversation_SupportScenario(t *testing.T) {
	agg := NewAggregator(NewDefaultScorer(), domain.DefaultThresholds())
	summary := agg.AnalyzeConversation([]string{
		"Your service disappoints me",
		"Last experience was better",
		"I hope things improve",
		"Thank you for listening to my concerns",
	})

	assert.GreaterOrEqual(t, summary.Counts.Negative, 1)
	assert.Len(t, summary.PerMessage, 4)
	assert.Equal(t, "Your service disappoints me", summary.PerMessage[0].Text)
	assert.Contains(t, []string{
		TrendStable, TrendImprovedStrongly, TrendImprovedSlightly,
		TrendDeclinedStrongly, TrendDeclinedSlightly,
		TrendFluctuating, TrendMinorVariations,
	}, summary.MoodTrend)
}
