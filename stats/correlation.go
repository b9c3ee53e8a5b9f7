package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Pearson computes the Pearson correlation between two indicator columns
// over the departments where both values are present. The pair count is
// returned alongside r so callers can report how much data backed it.
func Pearson(x, y map[string]float64) (r float64, n int, err error) {
	codes := make([]string, 0, len(x))
	for code := range x {
		if _, ok := y[code]; ok {
			codes = append(codes, code)
		}
	}
	// Deterministic pairing order; stat.Correlation is order-insensitive
	// but the determinism costs nothing and makes debugging sane.
	sort.Strings(codes)

	if len(codes) < 2 {
		return 0, len(codes), fmt.Errorf("correlation needs at least 2 paired values, have %d", len(codes))
	}

	xs := make([]float64, len(codes))
	ys := make([]float64, len(codes))
	for i, code := range codes {
		xs[i] = x[code]
		ys[i] = y[code]
	}

	r = stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return 0, len(codes), fmt.Errorf("correlation undefined: at least one column is constant over the %d paired values", len(codes))
	}
	return r, len(codes), nil
}
