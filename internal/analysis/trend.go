package analysis

import "math"

// Direction classifies the directional tendency of a score sequence.
type Direction string

const (
	DirectionRising   Direction = "rising"
	DirectionFalling  Direction = "falling"
	DirectionStable   Direction = "stable"
	DirectionVolatile Direction = "volatile"
)

// volatilityCutoff is the standard deviation above which a sequence reads as
// volatile regardless of its net change.
const volatilityCutoff = 0.3

// Trend is the result of directional trend analysis over a compound-score
// sequence.
type Trend struct {
	Direction  Direction `json:"direction"`
	Change     float64   `json:"change"`
	Volatility float64   `json:"volatility"`
	Average    float64   `json:"average"`
	Min        float64   `json:"min"`
	Max        float64   `json:"max"`
	DataPoints int       `json:"data_points"`
}

// TrendAnalyzer classifies score sequences by direction. Sensitivity is the
// half-to-half mean change below which the sequence reads as stable.
type TrendAnalyzer struct {
	sensitivity float64
}

// NewTrendAnalyzer creates a trend analyzer. A sensitivity of 0.1 works well
// for compound scores.
func NewTrendAnalyzer(sensitivity float64) *TrendAnalyzer {
	return &TrendAnalyzer{sensitivity: sensitivity}
}

// Analyze classifies the sequence. It returns ok=false for fewer than two
// points, where no direction is defined.
func (t *TrendAnalyzer) Analyze(values []float64) (Trend, bool) {
	if len(values) < 2 {
		return Trend{}, false
	}

	sum, min, max := values[0], values[0], values[0]
	for _, v := range values[1:] {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	avg := sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - avg
		variance += d * d
	}
	variance /= float64(len(values))
	volatility := math.Sqrt(variance)

	mid := len(values) / 2
	change := sliceMean(values[mid:]) - sliceMean(values[:mid])

	direction := DirectionStable
	switch {
	case volatility > volatilityCutoff:
		direction = DirectionVolatile
	case change > t.sensitivity:
		direction = DirectionRising
	case change < -t.sensitivity:
		direction = DirectionFalling
	}

	return Trend{
		Direction:  direction,
		Change:     change,
		Volatility: volatility,
		Average:    avg,
		Min:        min,
		Max:        max,
		DataPoints: len(values),
	}, true
}

func sliceMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
