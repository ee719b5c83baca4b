package sentiment

import (
	"math"
	"strings"
	"unicode"

	"github.com/pscheid92/moodlens/internal/domain"
)

const (
	// negationWindow is how many tokens back a negation still applies.
	negationWindow = 3
	// negationScalar flips and dampens a negated valence ("not great" reads
	// less negative than "terrible").
	negationScalar = -0.74
	// capsBoost is added toward a sentiment word's sign when it is written
	// in ALL CAPS.
	capsBoost = 0.733
	// exclamationBoost is added toward the aggregate sign per trailing '!'.
	exclamationBoost = 0.292
	// maxExclamations caps how many exclamation marks count for emphasis.
	maxExclamations = 4
	// normalizationAlpha is the damping constant of the square-root
	// normalization curve x/sqrt(x^2+alpha). It keeps the compound score
	// sub-linear in the raw valence sum and bounded to (-1, 1).
	normalizationAlpha = 15.0
	// butClause weights: valence before a contrastive "but" is discounted,
	// valence after it is amplified.
	preButWeight  = 0.5
	postButWeight = 1.5
)

// Scorer computes polarity scores for single texts. It holds only read-only
// tables and is safe for concurrent use.
type Scorer struct {
	lexicon    domain.Lexicon
	thresholds domain.Thresholds
}

// NewScorer creates a scorer over the given lexicon and classification
// thresholds.
func NewScorer(lexicon domain.Lexicon, thresholds domain.Thresholds) *Scorer {
	return &Scorer{lexicon: lexicon, thresholds: thresholds}
}

// NewDefaultScorer creates a scorer with the built-in lexicon and the
// standard ±0.05 thresholds.
func NewDefaultScorer() *Scorer {
	return NewScorer(DefaultLexicon(), domain.DefaultThresholds())
}

// Score analyzes a single text. It never panics, handles empty and
// non-lexicon (including non-Latin) input, and is fully deterministic:
// identical input always yields an identical result.
func (s *Scorer) Score(text string) domain.Score {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return neutralScore()
	}

	butIdx := -1
	for i, tok := range tokens {
		if tok.normalized == "but" {
			butIdx = i
			break
		}
	}

	var (
		valences []float64
		posSum   float64
		negSum   float64
		neutral  int
	)

	for i, tok := range tokens {
		valence, hit := s.lookup(tok)
		if !hit {
			neutral++
			valences = append(valences, 0)
			continue
		}

		// ALL-CAPS emphasis pushes the valence away from zero.
		if tok.allCaps {
			if valence > 0 {
				valence += capsBoost
			} else if valence < 0 {
				valence -= capsBoost
			}
		}

		// Degree adverb immediately before the sentiment word.
		if i > 0 {
			prev := tokens[i-1].normalized
			if b, ok := boosters[prev]; ok && !isNegation(prev) {
				if valence > 0 {
					valence += b
				} else if valence < 0 {
					valence -= b
				}
			}
		}

		// Negation within the look-back window flips and dampens.
		for back := 1; back <= negationWindow && i-back >= 0; back++ {
			if isNegation(tokens[i-back].normalized) {
				valence *= negationScalar
				break
			}
		}

		// Contrastive conjunction shifts weight to the later clause.
		if butIdx >= 0 {
			if i < butIdx {
				valence *= preButWeight
			} else if i > butIdx {
				valence *= postButWeight
			}
		}

		valences = append(valences, valence)
		switch {
		case valence > 0:
			posSum += valence + 1 // +1 keeps single weak hits from saturating the proportion
		case valence < 0:
			negSum += -valence + 1
		default:
			neutral++
		}
	}

	raw := 0.0
	for _, v := range valences {
		raw += v
	}

	// Exclamation emphasis strengthens the aggregate without changing sign.
	if bangs := countExclamations(text); bangs > 0 && raw != 0 {
		emphasis := float64(bangs) * exclamationBoost
		if raw > 0 {
			raw += emphasis
		} else {
			raw -= emphasis
		}
	}

	compound := normalize(raw)

	positive, negative, neutralProp := proportions(posSum, negSum, neutral)

	return domain.Score{
		Positive: positive,
		Negative: negative,
		Neutral:  neutralProp,
		Compound: compound,
		Label:    s.thresholds.Classify(compound),
	}
}

func (s *Scorer) lookup(tok token) (float64, bool) {
	// Raw form first so emoticons like ":)" survive punctuation stripping.
	if v, ok := s.lexicon.Valence(tok.raw); ok {
		return v, true
	}
	if v, ok := s.lexicon.Valence(strings.ToLower(tok.raw)); ok {
		return v, true
	}
	if tok.normalized == "" {
		return 0, false
	}
	return s.lexicon.Valence(tok.normalized)
}

func neutralScore() domain.Score {
	return domain.Score{Neutral: 1.0, Label: domain.LabelNeutral}
}

// normalize maps the raw valence sum through a square-root-damped curve
// bounded to [-1, 1], so long texts with many sentiment words do not
// trivially saturate.
func normalize(raw float64) float64 {
	if raw == 0 {
		return 0
	}
	norm := raw / math.Sqrt(raw*raw+normalizationAlpha)
	return math.Max(-1, math.Min(1, norm))
}

// proportions attributes lexical content to the three polarity classes.
// The result always sums to 1.0; an empty token set resolves to fully
// neutral rather than dividing by zero.
func proportions(posSum, negSum float64, neutralCount int) (positive, negative, neutral float64) {
	total := posSum + negSum + float64(neutralCount)
	if total == 0 {
		return 0, 0, 1
	}
	return posSum / total, negSum / total, float64(neutralCount) / total
}

// --- Tokenization ---

type token struct {
	raw        string
	normalized string
	allCaps    bool
}

func tokenize(text string) []token {
	fields := strings.Fields(text)
	tokens := make([]token, 0, len(fields))
	for _, f := range fields {
		stripped := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
		})
		tokens = append(tokens, token{
			raw:        f,
			normalized: strings.ToLower(stripped),
			allCaps:    isAllCaps(stripped),
		})
	}
	return tokens
}

// isAllCaps reports whether a word is written entirely in upper case and
// contains at least two letters (so "I" and "A" do not count as emphasis).
func isAllCaps(word string) bool {
	letters := 0
	for _, r := range word {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		letters++
	}
	return letters >= 2
}

func countExclamations(text string) int {
	count := strings.Count(text, "!")
	if count > maxExclamations {
		return maxExclamations
	}
	return count
}
