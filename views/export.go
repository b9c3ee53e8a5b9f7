package views

import (
	"sort"

	"go-vulndash/config"
	"go-vulndash/dataset"
	"go-vulndash/types"
)

// ScoredRow is one department with everything derived attached: source
// indicators, the recomputed composites, and their tiers. Absent scores
// stay absent — a department missing a constituent gets no score, not 0.
type ScoredRow struct {
	Code      string             `json:"code_dep"`
	Name      string             `json:"departement"`
	Values    map[string]float64 `json:"values"`
	VulnClass string             `json:"classe_vuln,omitempty"`

	ScoreVulnGlobal *float64 `json:"score_vuln_global,omitempty"`
	GlobalTier      string   `json:"classe_vuln_global,omitempty"`
	ScoreSenior     *float64 `json:"score_senior,omitempty"`
	SeniorTier      string   `json:"classe_senior,omitempty"`
}

// ScoredTablePayload is the export form of the whole dataset.
type ScoredTablePayload struct {
	Rows           []ScoredRow `json:"rows"`
	GlobalExcluded int         `json:"globalExcluded"`
	SeniorExcluded int         `json:"seniorExcluded"`
	Dropped        []string    `json:"droppedIndicators,omitempty"`
}

// ScoredTable recomputes both composites over the full table and attaches
// them, with tiers, to every department row.
func ScoredTable(t *dataset.Table, cfg *config.IndicatorConfig) (*ScoredTablePayload, error) {
	universe := t.Codes()

	global, err := composite(t, cfg, types.ScoreVulnGlobal, universe)
	if err != nil {
		return nil, err
	}
	globalSeries, err := compositeSeries(t, cfg, types.ScoreVulnGlobal, global)
	if err != nil {
		return nil, err
	}

	senior, err := composite(t, cfg, types.ScoreSenior, universe)
	if err != nil {
		return nil, err
	}
	seniorSeries, err := compositeSeries(t, cfg, types.ScoreSenior, senior)
	if err != nil {
		return nil, err
	}

	payload := &ScoredTablePayload{
		GlobalExcluded: global.Excluded,
		SeniorExcluded: senior.Excluded,
	}
	payload.Dropped = append(payload.Dropped, global.DroppedIndicators...)
	payload.Dropped = append(payload.Dropped, senior.DroppedIndicators...)

	for _, rec := range t.Records {
		row := ScoredRow{
			Code:      rec.Code,
			Name:      rec.Name,
			Values:    rec.Values,
			VulnClass: rec.VulnClass,
		}
		if s, ok := global.Scores[rec.Code]; ok {
			s := s
			row.ScoreVulnGlobal = &s
			row.GlobalTier = globalSeries.Tiers[rec.Code]
		}
		if s, ok := senior.Scores[rec.Code]; ok {
			s := s
			row.ScoreSenior = &s
			row.SeniorTier = seniorSeries.Tiers[rec.Code]
		}
		payload.Rows = append(payload.Rows, row)
	}
	sort.Slice(payload.Rows, func(i, j int) bool { return payload.Rows[i].Code < payload.Rows[j].Code })

	return payload, nil
}
