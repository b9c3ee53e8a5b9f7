package types

import "strings"

// Canonical column names of the department indicator table.
const (
	ColCode         = "code_dep"
	ColName         = "departement"
	ColVulnClass    = "classe_vuln"
	Mortalite064    = "mortalite_0_64"
	Mortalite65     = "mortalite_65_plus"
	APLMed          = "apl_med"
	APLInf          = "apl_inf"
	TauxPauvrete    = "taux_pauvrete"
	ScoreVulnGlobal = "score_vuln_global"
	ScoreSenior     = "score_senior"
)

// NormalizeCode brings a department code to the canonical 2-character form
// used as the join key everywhere: whitespace stripped, uppercased, single
// digits zero-padded ("1" -> "01"). Corsican codes like "2A" and overseas
// codes like "971" pass through.
func NormalizeCode(raw string) string {
	code := strings.ToUpper(strings.Join(strings.Fields(raw), ""))
	if len(code) == 1 && code[0] >= '0' && code[0] <= '9' {
		code = "0" + code
	}
	return code
}

// Polarity declares whether higher raw values of an indicator mean better
// or worse conditions. It is static configuration, never derived from data.
type Polarity string

const (
	HigherIsWorse  Polarity = "higher_is_worse"
	HigherIsBetter Polarity = "higher_is_better"
)

// DepartmentRecord is one row of the indicator table. Values holds only the
// cells that parsed as numbers; a missing key means the department has no
// usable value for that indicator.
type DepartmentRecord struct {
	Code      string             `json:"code_dep"`
	Name      string             `json:"departement"`
	VulnClass string             `json:"classe_vuln,omitempty"`
	Values    map[string]float64 `json:"values"`
}

// Value returns the indicator value and whether it is present.
func (r DepartmentRecord) Value(indicator string) (float64, bool) {
	v, ok := r.Values[indicator]
	return v, ok
}
