package scoring

// CompositeResult is a composite score per department plus the transparency
// counts: which departments were left out for missing a constituent, and
// which constituents were dropped as degenerate before summing.
type CompositeResult struct {
	Name     string             `json:"name"`
	Scores   map[string]float64 `json:"scores"`
	Excluded int                `json:"excluded"`
	// Constituents dropped by the caller (zero-variance columns).
	DroppedIndicators []string `json:"droppedIndicators,omitempty"`
}

// SumColumns builds a composite as the unweighted sum of the given
// normalized columns — equal weighting is a deliberate design of the source
// dashboard, not a configurable default. A department gets a score only if
// every column carries it (inner join on availability); the rest are
// counted, never defaulted.
func SumColumns(name string, universe []string, columns ...map[string]float64) CompositeResult {
	res := CompositeResult{Name: name, Scores: make(map[string]float64, len(universe))}

	for _, code := range universe {
		sum := 0.0
		complete := true
		for _, col := range columns {
			v, ok := col[code]
			if !ok {
				complete = false
				break
			}
			sum += v
		}
		if complete && len(columns) > 0 {
			res.Scores[code] = sum
		} else {
			res.Excluded++
		}
	}
	return res
}
