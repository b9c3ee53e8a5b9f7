package views

import (
	"errors"
	"fmt"
	"sort"

	"go-vulndash/config"
	"go-vulndash/dataset"
	"go-vulndash/scoring"
	"go-vulndash/stats"
	"go-vulndash/types"
)

// composite recomputes a configured composite over the given universe of
// department codes. Each constituent is z-scored (with its configured
// polarity) over the universe members that carry it; zero-variance
// constituents are dropped from the sum and reported, per the recoverable
// path of the degenerate-indicator contract. Integrity errors propagate.
func composite(t *dataset.Table, cfg *config.IndicatorConfig, name string, universe []string) (scoring.CompositeResult, error) {
	spec, ok := cfg.Composites[name]
	if !ok {
		return scoring.CompositeResult{}, fmt.Errorf("unknown composite %q", name)
	}

	inUniverse := make(map[string]bool, len(universe))
	for _, c := range universe {
		inUniverse[c] = true
	}

	var columns []map[string]float64
	var dropped []string
	for _, ind := range spec.Constituents {
		indSpec, ok := cfg.Indicator(ind)
		if !ok {
			return scoring.CompositeResult{}, fmt.Errorf("composite %q uses unconfigured indicator %q", name, ind)
		}
		col, err := t.Column(ind)
		if err != nil {
			return scoring.CompositeResult{}, err
		}
		for code := range col {
			if !inUniverse[code] {
				delete(col, code)
			}
		}
		z, err := stats.ZScores(ind, col, indSpec.Polarity)
		if err != nil {
			var degen *stats.DegenerateIndicatorError
			if errors.As(err, &degen) {
				dropped = append(dropped, ind)
				continue
			}
			return scoring.CompositeResult{}, err
		}
		columns = append(columns, z.Scores)
	}

	if len(columns) == 0 {
		return scoring.CompositeResult{}, fmt.Errorf("composite %q: every constituent is degenerate or empty", name)
	}

	res := scoring.SumColumns(name, universe, columns...)
	res.DroppedIndicators = dropped
	return res, nil
}

// compositeSeries turns a composite result into the payload form: sorted
// rows plus the tier classification under the configured cut points.
func compositeSeries(t *dataset.Table, cfg *config.IndicatorConfig, name string, res scoring.CompositeResult) (CompositeSeries, error) {
	cuts := cfg.Composites[name].TierCuts
	tiers, err := scoring.ClassifyTiers(res.Scores, cuts)
	if err != nil {
		return CompositeSeries{}, err
	}

	series := CompositeSeries{
		Name:              name,
		Excluded:          res.Excluded,
		DroppedIndicators: res.DroppedIndicators,
		TierCuts:          cuts,
		Tiers:             make(map[string]string, len(tiers)),
	}
	for code, tier := range tiers {
		series.Tiers[code] = tier.Label()
	}
	for code, score := range res.Scores {
		name := ""
		if rec, ok := t.Lookup(code); ok {
			name = rec.Name
		}
		series.Rows = append(series.Rows, ChoroplethRow{Code: code, Name: name, Value: score})
	}
	sort.Slice(series.Rows, func(i, j int) bool { return series.Rows[i].Code < series.Rows[j].Code })
	return series, nil
}

// mapSeries assembles a choropleth series for one indicator over the given
// records. Thresholds and palette come from the indicator config for
// discrete maps; continuous maps pass them empty with an explicit palette.
func mapSeries(records []types.DepartmentRecord, indicator, label, palette string, thresholds []float64) MapSeries {
	series := MapSeries{Indicator: indicator, Label: label, Palette: palette, Thresholds: thresholds}
	for _, r := range records {
		v, ok := r.Value(indicator)
		if !ok {
			series.Missing++
			continue
		}
		series.Rows = append(series.Rows, ChoroplethRow{Code: r.Code, Name: r.Name, Value: v})
	}
	sort.Slice(series.Rows, func(i, j int) bool { return series.Rows[i].Code < series.Rows[j].Code })
	return series
}

// meanOf averages the present values of an indicator over the records.
func meanOf(records []types.DepartmentRecord, indicator string) (float64, int) {
	sum := 0.0
	n := 0
	for _, r := range records {
		if v, ok := r.Value(indicator); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}

// withAll filters records down to those carrying every listed indicator.
func withAll(records []types.DepartmentRecord, indicators ...string) (kept []types.DepartmentRecord, excluded int) {
	for _, r := range records {
		complete := true
		for _, ind := range indicators {
			if _, ok := r.Value(ind); !ok {
				complete = false
				break
			}
		}
		if complete {
			kept = append(kept, r)
		} else {
			excluded++
		}
	}
	return kept, excluded
}

func codesOf(records []types.DepartmentRecord) []string {
	codes := make([]string, len(records))
	for i, r := range records {
		codes[i] = r.Code
	}
	return codes
}
