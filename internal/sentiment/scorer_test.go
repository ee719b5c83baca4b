package sentiment

import (
	"testing"

	"github.com/pscheid92/moodlens/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_EmptyText(t *testing.T) {
	scorer := NewDefaultScorer()
	score := scorer.Score("")

	assert.Equal(t, domain.LabelNeutral, score.Label)
	assert.Equal(t, 0.0, score.Compound)
	assert.Equal(t, 1.0, score.Neutral)
}

func TestScore_WhitespaceOnly(t *testing.T) {
	scorer := NewDefaultScorer()
	score := scorer.Score("   \t\n  ")

	assert.Equal(t, domain.LabelNeutral, score.Label)
	assert.Equal(t, 0.0, score.Compound)
	assert.Equal(t, 1.0, score.Neutral)
}

func TestScore_PositiveText(t *testing.T) {
	scorer := NewDefaultScorer()
	score := scorer.Score("This is a great service")

	assert.Equal(t, domain.LabelPositive, score.Label)
	assert.Greater(t, score.Compound, 0.05)
}

func TestScore_NegativeText(t *testing.T) {
	scorer := NewDefaultScorer()
	score := scorer.Score("This is a terrible experience")

	assert.Equal(t, domain.LabelNegative, score.Label)
	assert.Less(t, score.Compound, -0.05)
}

func TestScore_NeutralText(t *testing.T) {
	scorer := NewDefaultScorer()
	score := scorer.Score("The meeting is at three on Tuesday")

	assert.Equal(t, domain.LabelNeutral, score.Label)
	assert.InDelta(t, 0.0, score.Compound, 0.05)
}

func TestScore_UnknownTokensContributeZero(t *testing.T) {
	scorer := NewDefaultScorer()
	score := scorer.Score("qwyjibo flurble znork")

	assert.Equal(t, domain.LabelNeutral, score.Label)
	assert.Equal(t, 0.0, score.Compound)
	assert.Equal(t, 1.0, score.Neutral)
}

func TestScore_UnicodeDoesNotPanic(t *testing.T) {
	scorer := NewDefaultScorer()

	for _, text := range []string{
		"これはテストです",
		"Это великолепно",
		"🎉🎉🎉",
		"good 🎉 day",
		"héllo wörld",
	} {
		assert.NotPanics(t, func() { scorer.Score(text) }, "text: %q", text)
	}
}

func TestScore_Deterministic(t *testing.T) {
	scorer := NewDefaultScorer()

	for _, text := range []string{"", "good", "not bad at all!!!", "I love this, but it fails sometimes"} {
		first := scorer.Score(text)
		second := scorer.Score(text)
		assert.Equal(t, first, second, "text: %q", text)
	}
}

func TestScore_ProportionsSumToOne(t *testing.T) {
	scorer := NewDefaultScorer()

	for _, text := range []string{
		"",
		"good",
		"bad",
		"good and bad",
		"not great, not terrible",
		"the weather report mentions rain",
		"AMAZING!!! but also awful",
	} {
		score := scorer.Score(text)
		sum := score.Positive + score.Negative + score.Neutral
		assert.InDelta(t, 1.0, sum, 1e-6, "text: %q", text)
		assert.GreaterOrEqual(t, score.Positive, 0.0)
		assert.GreaterOrEqual(t, score.Negative, 0.0)
		assert.GreaterOrEqual(t, score.Neutral, 0.0)
	}
}

func TestScore_LabelMatchesThresholds(t *testing.T) {
	scorer := NewDefaultScorer()
	thresholds := domain.DefaultThresholds()

	for _, text := range []string{"great", "terrible", "table", "not good", "love it!!!", ""} {
		score := scorer.Score(text)
		assert.Equal(t, thresholds.Classify(score.Compound), score.Label, "text: %q", text)
	}
}

func TestScore_ExclamationNeverDecreasesMagnitude(t *testing.T) {
	scorer := NewDefaultScorer()

	assert.LessOrEqual(t, scorer.Score("good").Compound, scorer.Score("good!!!").Compound)
	assert.GreaterOrEqual(t, scorer.Score("awful").Compound, scorer.Score("awful!!!").Compound)
}

func TestScore_CapsNeverDecreaseMagnitude(t *testing.T) {
	scorer := NewDefaultScorer()

	assert.LessOrEqual(t, scorer.Score("great").Compound, scorer.Score("GREAT").Compound)
	assert.GreaterOrEqual(t, scorer.Score("awful").Compound, scorer.Score("AWFUL").Compound)
}

func TestScore_ExclamationCapped(t *testing.T) {
	scorer := NewDefaultScorer()

	four := scorer.Score("good!!!!")
	ten := scorer.Score("good!!!!!!!!!!")
	assert.Equal(t, four.Compound, ten.Compound)
}

func TestScore_NegationFlipsAndDampens(t *testing.T) {
	scorer := NewDefaultScorer()

	plain := scorer.Score("good")
	negated := scorer.Score("not good")

	assert.Less(t, negated.Compound, plain.Compound)
	assert.Less(t, negated.Compound, 0.0)
	// Dampened inversion, not a mirror image.
	assert.NotEqual(t, -plain.Compound, negated.Compound)
	assert.Greater(t, negated.Compound, -plain.Compound)
}

func TestScore_NegationWindow(t *testing.T) {
	scorer := NewDefaultScorer()

	// Negation three tokens back still applies.
	within := scorer.Score("not at all good")
	assert.Less(t, within.Compound, 0.0)

	// A sentiment word far past the window is unaffected.
	beyond := scorer.Score("no one saw the movie but it was good")
	assert.Greater(t, beyond.Compound, 0.0)
}

func TestScore_BoosterIntensifies(t *testing.T) {
	scorer := NewDefaultScorer()

	assert.Greater(t, scorer.Score("very good").Compound, scorer.Score("good").Compound)
	assert.Less(t, scorer.Score("slightly good").Compound, scorer.Score("good").Compound)
	assert.Less(t, scorer.Score("very bad").Compound, scorer.Score("bad").Compound)
}

func TestScore_ContrastiveBut(t *testing.T) {
	scorer := NewDefaultScorer()

	// The clause after "but" dominates.
	negTurn := scorer.Score("the food was great but the service was terrible")
	posTurn := scorer.Score("the service was terrible but the food was great")

	assert.Less(t, negTurn.Compound, posTurn.Compound)
	assert.Less(t, negTurn.Compound, 0.0)
	assert.Greater(t, posTurn.Compound, 0.0)
}

func TestScore_Emoticons(t *testing.T) {
	scorer := NewDefaultScorer()

	assert.Greater(t, scorer.Score("that went well :)").Compound, scorer.Score("that went well").Compound)
	assert.Less(t, scorer.Score(":(").Compound, 0.0)
}

func TestScore_CompoundBounded(t *testing.T) {
	scorer := NewDefaultScorer()

	// Pile on sentiment words; damping must keep the result inside [-1, 1].
	long := "great great great amazing wonderful love love fantastic excellent superb best win happy joy"
	score := scorer.Score(long)
	assert.LessOrEqual(t, score.Compound, 1.0)
	assert.GreaterOrEqual(t, score.Compound, -1.0)
	assert.Less(t, score.Compound, 1.0, "damping should prevent trivial saturation")
}

func TestScore_SyntheticLexicon(t *testing.T) {
	lex := MapLexicon{"blorf": 3.0, "zilch": -3.0}
	scorer := NewScorer(lex, domain.DefaultThresholds())

	assert.Equal(t, domain.LabelPositive, scorer.Score("blorf").Label)
	assert.Equal(t, domain.LabelNegative, scorer.Score("zilch").Label)
	assert.Equal(t, domain.LabelNeutral, scorer.Score("good").Label)
}

func TestDefaultLexicon_Loaded(t *testing.T) {
	lex := DefaultLexicon()

	v, ok := lex.Valence("good")
	require.True(t, ok)
	assert.Greater(t, v, 0.0)

	v, ok = lex.Valence("terrible")
	require.True(t, ok)
	assert.Less(t, v, 0.0)

	_, ok = lex.Valence("qwyjibo")
	assert.False(t, ok)
}

func TestParseLexicon_SkipsMalformedLines(t *testing.T) {
	lex := parseLexicon("good\t1.5\n# comment\n\nbroken line\nbad\tnotanumber\nfine\t0.8\n")

	assert.Len(t, lex, 2)
	v, ok := lex.Valence("fine")
	require.True(t, ok)
	assert.Equal(t, 0.8, v)
}
