package sentiment

import (
	_ "embed"
	"strconv"
	"strings"
	"sync"
)

//go:embed data/lexicon.tsv
var lexiconData string

// MapLexicon is an immutable word-to-valence lookup table.
// Construct it once and treat it as read-only; lookups are then safe for
// concurrent use.
type MapLexicon map[string]float64

// Valence returns the context-independent valence for a token.
func (m MapLexicon) Valence(token string) (float64, bool) {
	v, ok := m[token]
	return v, ok
}

var (
	defaultLexiconOnce sync.Once
	defaultLexicon     MapLexicon
)

// DefaultLexicon returns the built-in valence lexicon, parsed from the
// embedded table on first use. The returned map must not be modified.
func DefaultLexicon() MapLexicon {
	defaultLexiconOnce.Do(func() {
		defaultLexicon = parseLexicon(lexiconData)
	})
	return defaultLexicon
}

func parseLexicon(data string) MapLexicon {
	m := make(MapLexicon)
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, rest, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}
		valence, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
		if err != nil {
			continue
		}
		m[strings.ToLower(word)] = valence
	}
	return m
}

// Degree adverbs scale the valence of the sentiment word they precede.
// Positive entries intensify, negative entries diminish.
var boosters = map[string]float64{
	"absolutely":   0.293,
	"amazingly":    0.293,
	"completely":   0.293,
	"considerably": 0.293,
	"deeply":       0.293,
	"enormously":   0.293,
	"entirely":     0.293,
	"especially":   0.293,
	"exceptionally": 0.293,
	"extremely":    0.293,
	"highly":       0.293,
	"hugely":       0.293,
	"incredibly":   0.293,
	"majorly":      0.293,
	"particularly": 0.293,
	"purely":       0.293,
	"really":       0.293,
	"remarkably":   0.293,
	"so":           0.293,
	"substantially": 0.293,
	"thoroughly":   0.293,
	"totally":      0.293,
	"tremendously": 0.293,
	"truly":        0.293,
	"unbelievably": 0.293,
	"utterly":      0.293,
	"very":         0.293,
	"almost":       -0.293,
	"barely":       -0.293,
	"hardly":       -0.293,
	"kinda":        -0.293,
	"less":         -0.293,
	"little":       -0.293,
	"marginally":   -0.293,
	"occasionally": -0.293,
	"partly":       -0.293,
	"scarcely":     -0.293,
	"slightly":     -0.293,
	"somewhat":     -0.293,
	"sorta":        -0.293,
}

// Negation words flip and dampen the valence of a following sentiment word.
var negations = map[string]struct{}{
	"ain't":    {},
	"aint":     {},
	"aren't":   {},
	"arent":    {},
	"can't":    {},
	"cannot":   {},
	"cant":     {},
	"couldn't": {},
	"couldnt":  {},
	"didn't":   {},
	"didnt":    {},
	"doesn't":  {},
	"doesnt":   {},
	"don't":    {},
	"dont":     {},
	"hardly":   {},
	"isn't":    {},
	"isnt":     {},
	"lack":     {},
	"lacking":  {},
	"neither":  {},
	"never":    {},
	"no":       {},
	"nobody":   {},
	"none":     {},
	"nope":     {},
	"nor":      {},
	"not":      {},
	"nothing":  {},
	"nowhere":  {},
	"rarely":   {},
	"seldom":   {},
	"shouldn't": {},
	"shouldnt": {},
	"wasn't":   {},
	"wasnt":    {},
	"without":  {},
	"won't":    {},
	"wont":     {},
	"wouldn't": {},
	"wouldnt":  {},
}

func isNegation(token string) bool {
	if _, ok := negations[token]; ok {
		return true
	}
	return strings.HasSuffix(token, "n't")
}
