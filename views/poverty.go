package views

import (
	"go-vulndash/config"
	"go-vulndash/dataset"
	"go-vulndash/ranking"
	"go-vulndash/stats"
	"go-vulndash/types"
)

// povertyPageIndicators is the fixed tab order of the poverty/APL page.
var povertyPageIndicators = []string{types.APLMed, types.APLInf, types.TauxPauvrete}

// Poverty assembles the accessibility/poverty page: one KPI block per
// indicator (direction-aware best/worst and vulnerable counts) and the
// poverty-vs-nurse-accessibility correlation.
func Poverty(t *dataset.Table, cfg *config.IndicatorConfig) (*PovertyPayload, error) {
	if err := t.RequireColumns(povertyPageIndicators...); err != nil {
		return nil, err
	}

	payload := &PovertyPayload{}
	for _, ind := range povertyPageIndicators {
		spec, _ := cfg.Indicator(ind)
		block, err := kpiBlock(t, ind, spec)
		if err != nil {
			return nil, err
		}
		payload.Blocks = append(payload.Blocks, block)
	}

	aplInf, err := t.Column(types.APLInf)
	if err != nil {
		return nil, err
	}
	pauvrete, err := t.Column(types.TauxPauvrete)
	if err != nil {
		return nil, err
	}
	r, n, corrErr := stats.Pearson(aplInf, pauvrete)
	if corrErr != nil {
		payload.CorrelationNote = corrErr.Error()
	} else {
		payload.Correlation = &Correlation{X: types.APLInf, Y: types.TauxPauvrete, R: r, N: n}
	}

	return payload, nil
}

// kpiBlock computes one indicator tab. For higher_is_better indicators the
// best department holds the maximum and vulnerability sits below the alert
// threshold; for higher_is_worse it is the mirror image.
func kpiBlock(t *dataset.Table, ind string, spec config.IndicatorSpec) (IndicatorKPIBlock, error) {
	block := IndicatorKPIBlock{
		Indicator: ind,
		Label:     spec.Label,
		Unit:      spec.Unit,
		Precision: spec.Precision,
	}

	avg, n := meanOf(t.Records, ind)
	if n == 0 {
		return block, integrityNote(ind)
	}
	block.Average = avg

	largest := ranking.TopN(t.Records, ind, 1)
	smallest := ranking.BottomN(t.Records, ind, 1)
	if spec.Polarity == types.HigherIsBetter {
		block.Best = DeptValue(largest.Entries[0])
		block.Worst = DeptValue(smallest.Entries[0])
		block.Top5 = ranking.BottomN(t.Records, ind, 5)
	} else {
		block.Best = DeptValue(smallest.Entries[0])
		block.Worst = DeptValue(largest.Entries[0])
		block.Top5 = ranking.TopN(t.Records, ind, 5)
	}
	block.Gap = block.Best.Value - block.Worst.Value
	block.Missing = block.Top5.Excluded

	if spec.HasAlert {
		for _, r := range t.Records {
			v, ok := r.Value(ind)
			if !ok {
				continue
			}
			if spec.Polarity == types.HigherIsBetter && v < spec.Alert {
				block.VulnerableCount++
			}
			if spec.Polarity == types.HigherIsWorse && v > spec.Alert {
				block.VulnerableCount++
			}
		}
	}

	return block, nil
}

func integrityNote(ind string) error {
	return &dataset.DataIntegrityError{Reason: "column " + ind + " has no numeric values"}
}
