package stats

import (
	"fmt"
	"math"

	"go-vulndash/types"
)

// DegenerateIndicatorError means an indicator has zero variance across the
// departments that carry it, so z-scoring is undefined. The caller decides
// whether to drop the indicator from a composite or substitute 0; this
// package never divides by the zero.
type DegenerateIndicatorError struct {
	Indicator string
	Value     float64
	N         int
}

func (e *DegenerateIndicatorError) Error() string {
	return fmt.Sprintf("indicator %q is degenerate: all %d present values equal %g, z-score undefined",
		e.Indicator, e.N, e.Value)
}

// ZScoreResult carries the normalized column together with the moments it
// was normalized with, so callers and tests can see exactly what happened.
type ZScoreResult struct {
	Indicator string             `json:"indicator"`
	Scores    map[string]float64 `json:"scores"`
	Mean      float64            `json:"mean"`
	StdDev    float64            `json:"stddev"`
	N         int                `json:"n"`
}

// ZScores normalizes one indicator column to mean 0 and unit variance over
// the departments with a present value, using the population standard
// deviation (divide by n, not n-1 — this matches the reference scaler).
// For a higher_is_better indicator every z is negated, so that after
// normalization higher always means more vulnerable.
func ZScores(indicator string, values map[string]float64, polarity types.Polarity) (*ZScoreResult, error) {
	n := len(values)
	if n == 0 {
		return nil, fmt.Errorf("indicator %q has no present values", indicator)
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(n)
	std := math.Sqrt(variance)

	if std == 0 {
		var any float64
		for _, v := range values {
			any = v
			break
		}
		return nil, &DegenerateIndicatorError{Indicator: indicator, Value: any, N: n}
	}

	sign := 1.0
	if polarity == types.HigherIsBetter {
		sign = -1.0
	}

	scores := make(map[string]float64, n)
	for code, v := range values {
		scores[code] = sign * (v - mean) / std
	}
	return &ZScoreResult{Indicator: indicator, Scores: scores, Mean: mean, StdDev: std, N: n}, nil
}
