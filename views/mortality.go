package views

import (
	"sort"

	"go-vulndash/config"
	"go-vulndash/dataset"
	"go-vulndash/scoring"
	"go-vulndash/types"
)

// Mortality assembles the premature-mortality page: raw mortality and GP
// accessibility choropleths, national averages, and the bar chart of the
// departments classed Très élevée.
func Mortality(t *dataset.Table, cfg *config.IndicatorConfig) (*MortalityPayload, error) {
	if err := t.RequireColumns(types.Mortalite064, types.APLMed); err != nil {
		return nil, err
	}

	// The global score comes from the source table when it is there;
	// otherwise it is rebuilt from its constituents.
	scoreSource := "precomputed"
	var scores map[string]float64
	if t.HasColumn(types.ScoreVulnGlobal) {
		var err error
		scores, err = t.Column(types.ScoreVulnGlobal)
		if err != nil {
			return nil, err
		}
	} else {
		scoreSource = "recomputed"
		res, err := composite(t, cfg, types.ScoreVulnGlobal, t.Codes())
		if err != nil {
			return nil, err
		}
		scores = res.Scores
	}
	cuts := cfg.Composites[types.ScoreVulnGlobal].TierCuts

	// A row takes part only with both a score and a tier, mirroring the
	// source page's dropna on those two columns.
	var included []types.DepartmentRecord
	tierOf := make(map[string]types.VulnerabilityTier)
	excluded := 0
	for _, r := range t.Records {
		score, hasScore := scores[r.Code]
		if !hasScore {
			excluded++
			continue
		}
		if tier, ok := types.ParseTier(r.VulnClass); ok {
			tierOf[r.Code] = tier
		} else {
			tier, err := scoring.ClassifyTier(score, cuts)
			if err != nil {
				return nil, err
			}
			tierOf[r.Code] = tier
		}
		included = append(included, r)
	}

	avgMort, _ := meanOf(included, types.Mortalite064)
	avgAPL, _ := meanOf(included, types.APLMed)

	mortSpec, _ := cfg.Indicator(types.Mortalite064)
	aplSpec, _ := cfg.Indicator(types.APLMed)

	payload := &MortalityPayload{
		AvgMortality: avgMort,
		AvgAPLMed:    avgAPL,
		MortalityMap: mapSeries(included, types.Mortalite064, mortSpec.Label, "Reds", nil),
		APLMedMap:    mapSeries(included, types.APLMed, aplSpec.Label, "Blues", nil),
		ExcludedRows: excluded,
		ScoreSource:  scoreSource,
	}

	for _, r := range included {
		if tierOf[r.Code] != types.TierTresElevee {
			continue
		}
		mort, ok := r.Value(types.Mortalite064)
		if !ok {
			continue
		}
		row := VulnBarRow{
			Code:        r.Code,
			Name:        r.Name,
			Mortality:   mort,
			GlobalScore: scores[r.Code],
		}
		if apl, ok := r.Value(types.APLMed); ok {
			apl := apl
			row.APLMed = &apl
		}
		payload.VeryHighVuln = append(payload.VeryHighVuln, row)
	}
	sort.Slice(payload.VeryHighVuln, func(i, j int) bool {
		a, b := payload.VeryHighVuln[i], payload.VeryHighVuln[j]
		if a.Mortality != b.Mortality {
			return a.Mortality > b.Mortality
		}
		return a.Code < b.Code
	})

	return payload, nil
}
