package analysis

// DefaultTurningPointThreshold is the minimum absolute compound-score jump
// between consecutive messages that counts as a turning point.
const DefaultTurningPointThreshold = 0.3

// turningPointExcerptLen bounds the text excerpt carried in a TurningPoint.
const turningPointExcerptLen = 50

// TurningPoint marks a significant sentiment change between two consecutive
// messages.
type TurningPoint struct {
	Index    int     `json:"index"`
	Excerpt  string  `json:"excerpt"`
	Compound float64 `json:"compound"`
	Delta    float64 `json:"delta"`
}

// TurningPoints finds positions where the compound score jumps by at least
// threshold relative to the previous message. Fewer than two messages yield
// no turning points.
func (a *Analyzer) TurningPoints(messages []string, threshold float64) []TurningPoint {
	if len(messages) < 2 {
		return nil
	}

	prev := a.scorer.Score(messages[0]).Compound
	var points []TurningPoint

	for i := 1; i < len(messages); i++ {
		compound := a.scorer.Score(messages[i]).Compound
		delta := compound - prev
		if abs(delta) >= threshold {
			points = append(points, TurningPoint{
				Index:    i,
				Excerpt:  excerpt(messages[i], turningPointExcerptLen),
				Compound: compound,
				Delta:    delta,
			})
		}
		prev = compound
	}

	return points
}

func excerpt(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
