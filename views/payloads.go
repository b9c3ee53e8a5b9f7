package views

import (
	"go-vulndash/dataset"
	"go-vulndash/geo"
	"go-vulndash/ranking"
	"go-vulndash/types"
)

// DeptValue is a single department/value pair used by KPIs and charts.
type DeptValue struct {
	Code  string  `json:"code_dep"`
	Name  string  `json:"departement"`
	Value float64 `json:"value"`
}

// ChoroplethRow is one department in a map series.
type ChoroplethRow struct {
	Code  string  `json:"code_dep"`
	Name  string  `json:"departement"`
	Value float64 `json:"value"`
}

// MapSeries is everything the frontend needs to draw one choropleth:
// the rows, the palette name, and for discrete maps the threshold scale.
// Missing counts departments in scope that lack the indicator.
type MapSeries struct {
	Indicator  string          `json:"indicator"`
	Label      string          `json:"label"`
	Palette    string          `json:"palette"`
	Thresholds []float64       `json:"thresholds,omitempty"`
	Rows       []ChoroplethRow `json:"rows"`
	Missing    int             `json:"missing"`
}

// Correlation is a Pearson r with the pair count that backed it.
type Correlation struct {
	X string  `json:"x"`
	Y string  `json:"y"`
	R float64 `json:"r"`
	N int     `json:"n"`
}

// OverviewPayload backs the introduction page.
type OverviewPayload struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Departments int                    `json:"departments"`
	Indicators  []string               `json:"indicators"`
	Warnings    []dataset.ParseWarning `json:"warnings,omitempty"`
}

// VulnBarRow is one department in the "very high vulnerability" bar chart.
// APLMed is nil when the department has no accessibility value; it is never
// substituted with 0.
type VulnBarRow struct {
	Code        string   `json:"code_dep"`
	Name        string   `json:"departement"`
	Mortality   float64  `json:"mortalite_0_64"`
	APLMed      *float64 `json:"apl_med,omitempty"`
	GlobalScore float64  `json:"score_vuln_global"`
}

// MortalityPayload backs the premature-mortality page.
type MortalityPayload struct {
	AvgMortality float64 `json:"avgMortality"`
	AvgAPLMed    float64 `json:"avgAplMed"`

	MortalityMap MapSeries `json:"mortalityMap"`
	APLMedMap    MapSeries `json:"aplMedMap"`

	// Departments classed Très élevée, mortality descending.
	VeryHighVuln []VulnBarRow `json:"veryHighVuln"`

	// Rows dropped for lacking a vulnerability class or global score.
	ExcludedRows int `json:"excludedRows"`
	// "precomputed" when the source table carried score_vuln_global,
	// "recomputed" when it was rebuilt from the constituents.
	ScoreSource string `json:"scoreSource"`
}

// TierMean is the mean of a metric within one vulnerability tier.
type TierMean struct {
	Tier  string  `json:"classe_vuln"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// CompositeSeries is a recomputed composite score column with its
// transparency counts.
type CompositeSeries struct {
	Name              string            `json:"name"`
	Rows              []ChoroplethRow   `json:"rows"`
	Excluded          int               `json:"excluded"`
	DroppedIndicators []string          `json:"droppedIndicators,omitempty"`
	TierCuts          []float64         `json:"tierCuts"`
	Tiers             map[string]string `json:"tiers"`
}

// SeniorPayload backs the senior-mortality page.
type SeniorPayload struct {
	AvgMortality  float64   `json:"avgMortality"`
	MaxDept       DeptValue `json:"maxDept"`
	MinDept       DeptValue `json:"minDept"`
	Gap           float64   `json:"gap"`
	CountAbove40  int       `json:"countAbove40"`
	VeryHighCount int       `json:"veryHighCount"`

	Top5      ranking.Result `json:"top5"`
	TierMeans []TierMean     `json:"tierMeans"`

	Correlation *Correlation `json:"correlation,omitempty"`
	// Set when the correlation could not be computed.
	CorrelationNote string `json:"correlationNote,omitempty"`

	MortalityMap   MapSeries   `json:"mortalityMap"`
	SelectableMaps []MapSeries `json:"selectableMaps"`

	SeniorScore CompositeSeries `json:"seniorScore"`

	// Rows dropped for missing one of the page's four indicators.
	ExcludedRows int `json:"excludedRows"`
}

// IndicatorKPIBlock backs one tab of the poverty/APL page.
type IndicatorKPIBlock struct {
	Indicator string `json:"indicator"`
	Label     string `json:"label"`
	Unit      string `json:"unit"`
	Precision int    `json:"precision"`

	Average float64   `json:"average"`
	Best    DeptValue `json:"best"`
	Worst   DeptValue `json:"worst"`
	Gap     float64   `json:"gap"`

	// Count of departments past the alert threshold on the bad side.
	VulnerableCount int `json:"vulnerableCount"`

	Top5    ranking.Result `json:"top5"`
	Missing int            `json:"missing"`
}

// PovertyPayload backs the poverty/APL page.
type PovertyPayload struct {
	Blocks          []IndicatorKPIBlock `json:"blocks"`
	Correlation     *Correlation        `json:"correlation,omitempty"`
	CorrelationNote string              `json:"correlationNote,omitempty"`
}

// SyntheseFeature is one department on the synthesis map: discrete surface
// color for the chosen indicator plus a mortality bar anchored at the
// polygon centroid.
type SyntheseFeature struct {
	Code         string     `json:"code_dep"`
	Name         string     `json:"departement"`
	SurfaceValue *float64   `json:"surfaceValue,omitempty"`
	Bucket       int        `json:"bucket"`
	FillColor    types.RGBA `json:"fill_color"`
	Mortality    *float64   `json:"mortalite_0_64,omitempty"`
	BarElevation float64    `json:"bar_elev"`
	Lon          float64    `json:"lon"`
	Lat          float64    `json:"lat"`
}

// SynthesePayload backs the multi-factor synthesis map.
type SynthesePayload struct {
	Surface      string            `json:"surface"`
	Label        string            `json:"label"`
	Palette      string            `json:"palette"`
	Thresholds   []float64         `json:"thresholds"`
	MaxElevation float64           `json:"maxElevation"`
	Features     []SyntheseFeature `json:"features"`
	JoinStats    geo.JoinStats     `json:"joinStats"`
}
