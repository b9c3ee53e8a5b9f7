package views

import (
	"errors"

	"go-vulndash/config"
	"go-vulndash/dataset"
	"go-vulndash/ranking"
	"go-vulndash/stats"
	"go-vulndash/types"
)

// Senior mortality rates above this threshold flag a department in the KPI
// strip (per mille).
const seniorAlertThreshold = 40.0

// Senior assembles the 65+ mortality page: KPI strip, top-5 ranking, mean
// mortality per vulnerability tier, the correlation with the global score,
// the map series, and the recomputed senior composite.
func Senior(t *dataset.Table, cfg *config.IndicatorConfig) (*SeniorPayload, error) {
	pageIndicators := []string{types.Mortalite65, types.APLMed, types.APLInf, types.TauxPauvrete}
	if err := t.RequireColumns(pageIndicators...); err != nil {
		return nil, err
	}

	// The whole page works on rows complete in its four indicators.
	included, excluded := withAll(t.Records, pageIndicators...)
	if len(included) == 0 {
		return nil, errors.New("no department carries all four senior-page indicators")
	}

	payload := &SeniorPayload{ExcludedRows: excluded}
	avg, _ := meanOf(included, types.Mortalite65)
	payload.AvgMortality = avg

	top := ranking.TopN(included, types.Mortalite65, 1)
	bottom := ranking.BottomN(included, types.Mortalite65, 1)
	payload.MaxDept = DeptValue(top.Entries[0])
	payload.MinDept = DeptValue(bottom.Entries[0])
	payload.Gap = payload.MaxDept.Value - payload.MinDept.Value

	for _, r := range included {
		v, _ := r.Value(types.Mortalite65)
		if v > seniorAlertThreshold {
			payload.CountAbove40++
		}
		if r.VulnClass == types.TierTresElevee.Label() {
			payload.VeryHighCount++
		}
	}

	payload.Top5 = ranking.TopN(included, types.Mortalite65, 5)
	payload.TierMeans = tierMeans(included, types.Mortalite65)

	// Correlation between the precomputed global score and senior
	// mortality, over the same complete rows as the rest of the page;
	// reported as a note when the table cannot support it.
	if t.HasColumn(types.ScoreVulnGlobal) {
		scoreCol := make(map[string]float64, len(included))
		mortCol := make(map[string]float64, len(included))
		for _, rec := range included {
			if s, ok := rec.Value(types.ScoreVulnGlobal); ok {
				scoreCol[rec.Code] = s
			}
			m, _ := rec.Value(types.Mortalite65)
			mortCol[rec.Code] = m
		}
		r, n, corrErr := stats.Pearson(scoreCol, mortCol)
		if corrErr != nil {
			payload.CorrelationNote = corrErr.Error()
		} else {
			payload.Correlation = &Correlation{X: types.ScoreVulnGlobal, Y: types.Mortalite65, R: r, N: n}
		}
	} else {
		payload.CorrelationNote = "score_vuln_global not present in the source table"
	}

	mortSpec, _ := cfg.Indicator(types.Mortalite65)
	payload.MortalityMap = mapSeries(included, types.Mortalite65, mortSpec.Label, "YlOrRd", nil)

	for _, ind := range []string{types.APLMed, types.APLInf, types.TauxPauvrete} {
		spec, _ := cfg.Indicator(ind)
		payload.SelectableMaps = append(payload.SelectableMaps,
			mapSeries(included, ind, spec.Label, spec.PaletteName, spec.ColorThresholds))
	}

	// Combined senior vulnerability score over the complete rows, exactly
	// the subset the rest of the page describes.
	res, err := composite(t, cfg, types.ScoreSenior, codesOf(included))
	if err != nil {
		return nil, err
	}
	series, err := compositeSeries(t, cfg, types.ScoreSenior, res)
	if err != nil {
		return nil, err
	}
	payload.SeniorScore = series

	return payload, nil
}

// tierMeans averages a metric within each vulnerability tier, in the fixed
// display order. Tiers with no classified department are skipped.
func tierMeans(records []types.DepartmentRecord, metric string) []TierMean {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range records {
		if r.VulnClass == "" {
			continue
		}
		v, ok := r.Value(metric)
		if !ok {
			continue
		}
		sums[r.VulnClass] += v
		counts[r.VulnClass]++
	}

	var out []TierMean
	for _, label := range types.TierLabels() {
		if counts[label] == 0 {
			continue
		}
		out = append(out, TierMean{
			Tier:  label,
			Mean:  sums[label] / float64(counts[label]),
			Count: counts[label],
		})
	}
	return out
}
