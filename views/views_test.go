package views

import (
	"math"
	"testing"

	"go-vulndash/config"
	"go-vulndash/dataset"
	"go-vulndash/geo"
	"go-vulndash/types"
)

// Three departments, GP accessibility declared higher_is_better: the
// department with the worst mortality and the worst accessibility must come
// out as the most vulnerable end to end.
const toyCSV = `code_dep,departement,mortalite_0_64,apl_med
01,A,10,5
02,B,20,3
03,C,30,1
`

func toyTable(t *testing.T) *dataset.Table {
	t.Helper()
	table, err := dataset.BuildTable([]byte(toyCSV))
	if err != nil {
		t.Fatalf("building toy table: %v", err)
	}
	return table
}

func TestCompositeRoundTrip(t *testing.T) {
	table := toyTable(t)
	cfg := config.Default()

	res, err := composite(table, cfg, types.ScoreVulnGlobal, table.Codes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Excluded != 0 {
		t.Errorf("excluded = %d, want 0", res.Excluded)
	}

	a, b, c := res.Scores["01"], res.Scores["02"], res.Scores["03"]
	if !(c > b && b > a) {
		t.Errorf("composite order wrong: A=%g B=%g C=%g, want C > B > A", a, b, c)
	}
	// Symmetric inputs: B sits exactly on the mean of both constituents.
	if math.Abs(b) > 1e-9 {
		t.Errorf("score(B) = %g, want 0", b)
	}
	// Both z-columns contribute equally: C = z_mort + inverted z_apl.
	want := 2 * (10 / math.Sqrt(200.0/3.0))
	if math.Abs(c-want) > 1e-9 {
		t.Errorf("score(C) = %g, want %g", c, want)
	}
}

func TestMortalityViewRecomputed(t *testing.T) {
	table := toyTable(t)
	cfg := config.Default()

	payload, err := Mortality(table, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.ScoreSource != "recomputed" {
		t.Errorf("score source = %q, want recomputed without a score column", payload.ScoreSource)
	}
	if payload.ExcludedRows != 0 {
		t.Errorf("excluded rows = %d, want 0", payload.ExcludedRows)
	}
	if math.Abs(payload.AvgMortality-20) > 1e-9 {
		t.Errorf("avg mortality = %g, want 20", payload.AvgMortality)
	}

	// C scores ~2.45 against cuts [-1, 0, 1.5]: the only Très élevée.
	if len(payload.VeryHighVuln) != 1 || payload.VeryHighVuln[0].Code != "03" {
		t.Fatalf("very high vulnerability rows = %+v, want exactly department 03", payload.VeryHighVuln)
	}
	if payload.VeryHighVuln[0].Mortality != 30 {
		t.Errorf("mortality of top row = %g, want 30", payload.VeryHighVuln[0].Mortality)
	}
}

func TestMortalityViewPrecomputedScore(t *testing.T) {
	csv := `code_dep,departement,mortalite_0_64,apl_med,score_vuln_global,classe_vuln
01,A,10,5,-2.0,Faible
02,B,20,3,0.1,Moyenne
03,C,30,1,2.6,Très élevée
04,D,25,2,,
`
	table, err := dataset.BuildTable([]byte(csv))
	if err != nil {
		t.Fatalf("building table: %v", err)
	}
	payload, err := Mortality(table, config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.ScoreSource != "precomputed" {
		t.Errorf("score source = %q, want precomputed", payload.ScoreSource)
	}
	// 04 has no score: dropped from the view, not defaulted.
	if payload.ExcludedRows != 1 {
		t.Errorf("excluded rows = %d, want 1", payload.ExcludedRows)
	}
	if len(payload.VeryHighVuln) != 1 || payload.VeryHighVuln[0].Code != "03" {
		t.Errorf("very high rows = %+v, want department 03 only", payload.VeryHighVuln)
	}
}

func TestMortalityBarRowMissingAPLStaysAbsent(t *testing.T) {
	csv := `code_dep,departement,mortalite_0_64,apl_med,score_vuln_global,classe_vuln
01,A,10,5.0,-2.0,Faible
02,B,35,,2.6,Très élevée
03,C,30,1.2,2.1,Très élevée
`
	table, err := dataset.BuildTable([]byte(csv))
	if err != nil {
		t.Fatalf("building table: %v", err)
	}
	payload, err := Mortality(table, config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(payload.VeryHighVuln) != 2 {
		t.Fatalf("very high rows = %+v, want 02 and 03", payload.VeryHighVuln)
	}

	b := payload.VeryHighVuln[0]
	if b.Code != "02" {
		t.Fatalf("first bar = %s, want 02 (highest mortality)", b.Code)
	}
	if b.APLMed != nil {
		t.Errorf("apl_med(02) = %g, want absent, never 0", *b.APLMed)
	}
	c := payload.VeryHighVuln[1]
	if c.APLMed == nil || *c.APLMed != 1.2 {
		t.Errorf("apl_med(03) = %v, want 1.2", c.APLMed)
	}
}

const seniorCSV = `code_dep,departement,mortalite_65_plus,apl_med,apl_inf,taux_pauvrete,score_vuln_global,classe_vuln
01,Ain,30,4.0,120,11,-1.2,Faible
02,Aisne,44,2.1,80,21,2.3,Très élevée
03,Allier,41,2.8,95,16,0.8,Élevée
04,Alpes,35,3.1,110,14,-0.2,Moyenne
05,Sans-APL,50,,100,30,3.0,Très élevée
`

func TestSeniorView(t *testing.T) {
	table, err := dataset.BuildTable([]byte(seniorCSV))
	if err != nil {
		t.Fatalf("building table: %v", err)
	}
	payload, err := Senior(table, config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 05 misses apl_med and drops out of the whole page.
	if payload.ExcludedRows != 1 {
		t.Errorf("excluded rows = %d, want 1", payload.ExcludedRows)
	}
	if math.Abs(payload.AvgMortality-37.5) > 1e-9 {
		t.Errorf("avg mortality = %g, want 37.5", payload.AvgMortality)
	}
	if payload.MaxDept.Code != "02" || payload.MinDept.Code != "01" {
		t.Errorf("extremes = %s/%s, want 02/01", payload.MaxDept.Code, payload.MinDept.Code)
	}
	if math.Abs(payload.Gap-14) > 1e-9 {
		t.Errorf("gap = %g, want 14", payload.Gap)
	}
	if payload.CountAbove40 != 2 {
		t.Errorf("count above 40 = %d, want 2", payload.CountAbove40)
	}
	if payload.VeryHighCount != 1 {
		t.Errorf("very high count = %d, want 1", payload.VeryHighCount)
	}
	if len(payload.Top5.Entries) != 4 || payload.Top5.Entries[0].Code != "02" {
		t.Errorf("top5 = %+v, want 4 entries led by 02", payload.Top5.Entries)
	}

	wantTiers := []string{"Faible", "Moyenne", "Élevée", "Très élevée"}
	if len(payload.TierMeans) != 4 {
		t.Fatalf("tier means = %+v, want 4 tiers", payload.TierMeans)
	}
	for i, tm := range payload.TierMeans {
		if tm.Tier != wantTiers[i] {
			t.Errorf("tier[%d] = %q, want %q (fixed display order)", i, tm.Tier, wantTiers[i])
		}
	}
	if math.Abs(payload.TierMeans[3].Mean-44) > 1e-9 {
		t.Errorf("Très élevée mean = %g, want 44", payload.TierMeans[3].Mean)
	}

	if payload.Correlation == nil {
		t.Fatalf("correlation missing: %s", payload.CorrelationNote)
	}
	// 05 carries both columns but misses apl_med, so it stays out of the
	// correlation just like it stays out of every other page number.
	if payload.Correlation.N != 4 {
		t.Errorf("correlation pairs = %d, want the 4 complete rows", payload.Correlation.N)
	}
	if payload.Correlation.R <= 0 {
		t.Errorf("r = %g, want positive", payload.Correlation.R)
	}

	if payload.SeniorScore.Excluded != 0 {
		t.Errorf("senior composite excluded = %d, want 0 over the complete rows", payload.SeniorScore.Excluded)
	}
	if len(payload.SeniorScore.Rows) != 4 {
		t.Errorf("senior composite rows = %d, want 4", len(payload.SeniorScore.Rows))
	}
	// 02 is worst on every constituent of the page subset.
	worst := payload.SeniorScore.Rows[0]
	for _, row := range payload.SeniorScore.Rows {
		if row.Value > worst.Value {
			worst = row
		}
	}
	if worst.Code != "02" {
		t.Errorf("highest senior score = %s, want 02", worst.Code)
	}
}

func TestPovertyView(t *testing.T) {
	csv := `code_dep,departement,apl_med,apl_inf,taux_pauvrete
01,Ain,3.2,140,14
02,Aisne,2.1,90,25
03,Allier,1.9,120,19
04,Alpes,2.6,60,21
`
	table, err := dataset.BuildTable([]byte(csv))
	if err != nil {
		t.Fatalf("building table: %v", err)
	}
	payload, err := Poverty(table, config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(payload.Blocks) != 3 {
		t.Fatalf("blocks = %d, want 3", len(payload.Blocks))
	}

	apl := payload.Blocks[0]
	if apl.Indicator != types.APLMed {
		t.Fatalf("first block = %s, want apl_med", apl.Indicator)
	}
	// higher_is_better: best is the maximum, vulnerability below 2.5.
	if apl.Best.Code != "01" || apl.Worst.Code != "03" {
		t.Errorf("best/worst = %s/%s, want 01/03", apl.Best.Code, apl.Worst.Code)
	}
	if apl.VulnerableCount != 2 {
		t.Errorf("apl_med vulnerable count = %d, want 2 below 2.5", apl.VulnerableCount)
	}
	if apl.Top5.Entries[0].Code != "03" {
		t.Errorf("most vulnerable = %s, want 03 (lowest accessibility)", apl.Top5.Entries[0].Code)
	}

	pauvrete := payload.Blocks[2]
	// higher_is_worse: best is the minimum, vulnerability above 20.
	if pauvrete.Best.Code != "01" || pauvrete.Worst.Code != "02" {
		t.Errorf("best/worst = %s/%s, want 01/02", pauvrete.Best.Code, pauvrete.Worst.Code)
	}
	if pauvrete.VulnerableCount != 2 {
		t.Errorf("poverty vulnerable count = %d, want 2 above 20%%", pauvrete.VulnerableCount)
	}

	if payload.Correlation == nil {
		t.Fatalf("correlation missing: %s", payload.CorrelationNote)
	}
	if payload.Correlation.N != 4 {
		t.Errorf("correlation pairs = %d, want 4", payload.Correlation.N)
	}
}

const syntheseGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"code": "01", "nom": "A"},
      "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]}
    },
    {
      "type": "Feature",
      "properties": {"code": "02", "nom": "B"},
      "geometry": {"type": "Polygon", "coordinates": [[[2,2],[3,2],[3,3],[2,3],[2,2]]]}
    },
    {
      "type": "Feature",
      "properties": {"code": "04", "nom": "NoRow"},
      "geometry": {"type": "Polygon", "coordinates": [[[5,5],[6,5],[6,6],[5,6],[5,5]]]}
    }
  ]
}`

func TestSyntheseView(t *testing.T) {
	csv := `code_dep,departement,mortalite_0_64,apl_med
01,A,10,5.0
02,B,30,1.5
03,C,20,2.0
`
	table, err := dataset.BuildTable([]byte(csv))
	if err != nil {
		t.Fatalf("building table: %v", err)
	}
	bounds, err := geo.ParseBoundaries([]byte(syntheseGeoJSON))
	if err != nil {
		t.Fatalf("parsing boundaries: %v", err)
	}
	cfg := config.Default()

	payload, err := Synthese(table, bounds, cfg, types.APLMed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 03 has indicators but no polygon; 04 has a polygon but no row.
	if payload.JoinStats.Matched != 2 || payload.JoinStats.IndicatorOnly != 1 || payload.JoinStats.BoundaryOnly != 1 {
		t.Errorf("join stats = %+v, want 2/1/1", payload.JoinStats)
	}
	if len(payload.Features) != 2 {
		t.Fatalf("features = %d, want only the matched departments", len(payload.Features))
	}

	a, b := payload.Features[0], payload.Features[1]
	if a.Code != "01" || b.Code != "02" {
		t.Fatalf("features out of code order: %s, %s", a.Code, b.Code)
	}

	aplSpec, _ := cfg.Indicator(types.APLMed)
	// 5.0 lands in the next-to-last class, 1.5 in the first.
	if a.Bucket != 5 {
		t.Errorf("bucket(5.0) = %d, want 5", a.Bucket)
	}
	if b.Bucket != 0 {
		t.Errorf("bucket(1.5) = %d, want 0", b.Bucket)
	}
	if a.FillColor != aplSpec.PaletteSteps[5] || b.FillColor != aplSpec.PaletteSteps[0] {
		t.Errorf("fill colors %v/%v do not match the palette steps", a.FillColor, b.FillColor)
	}

	// Bars scale between the national extremes of the joined departments.
	if a.BarElevation != 0 {
		t.Errorf("elevation(min mortality) = %g, want 0", a.BarElevation)
	}
	if math.Abs(b.BarElevation-100_000) > 1e-9 {
		t.Errorf("elevation(max mortality) = %g, want 100000", b.BarElevation)
	}

	// Centroid of the unit square anchors the first bar.
	if math.Abs(a.Lon-0.5) > 1e-9 || math.Abs(a.Lat-0.5) > 1e-9 {
		t.Errorf("anchor = (%g, %g), want the polygon centroid (0.5, 0.5)", a.Lon, a.Lat)
	}
}

func TestSyntheseRejectsUnknownSurface(t *testing.T) {
	table := toyTable(t)
	bounds, err := geo.ParseBoundaries([]byte(syntheseGeoJSON))
	if err != nil {
		t.Fatalf("parsing boundaries: %v", err)
	}
	if _, err := Synthese(table, bounds, config.Default(), "mortalite_0_64"); err == nil {
		t.Error("mortality is a bar metric, not a surface; expected rejection")
	}
	if _, err := Synthese(table, bounds, config.Default(), "nope"); err == nil {
		t.Error("expected rejection of an unknown surface indicator")
	}
}

func TestScoredTable(t *testing.T) {
	csv := `code_dep,departement,mortalite_0_64,mortalite_65_plus,apl_med,apl_inf,taux_pauvrete
01,A,10,30,4.0,120,11
02,B,20,44,2.1,80,21
03,C,30,41,2.8,95,16
04,D,,35,3.1,110,14
`
	table, err := dataset.BuildTable([]byte(csv))
	if err != nil {
		t.Fatalf("building table: %v", err)
	}
	payload, err := ScoredTable(table, config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(payload.Rows) != 4 {
		t.Fatalf("rows = %d, want every department", len(payload.Rows))
	}
	for i := 1; i < len(payload.Rows); i++ {
		if payload.Rows[i-1].Code >= payload.Rows[i].Code {
			t.Fatalf("rows not sorted by code: %s before %s", payload.Rows[i-1].Code, payload.Rows[i].Code)
		}
	}

	// 04 lacks premature mortality: no global score, never a default.
	if payload.GlobalExcluded != 1 {
		t.Errorf("global excluded = %d, want 1", payload.GlobalExcluded)
	}
	d := payload.Rows[3]
	if d.Code != "04" || d.ScoreVulnGlobal != nil || d.GlobalTier != "" {
		t.Errorf("row 04 = %+v, want no global score or tier", d)
	}
	if d.ScoreSenior == nil || d.SeniorTier == "" {
		t.Errorf("row 04 should still carry a senior score, got %+v", d)
	}

	if payload.SeniorExcluded != 0 {
		t.Errorf("senior excluded = %d, want 0", payload.SeniorExcluded)
	}
	for _, row := range payload.Rows[:3] {
		if row.ScoreVulnGlobal == nil || row.GlobalTier == "" {
			t.Errorf("row %s missing global score or tier", row.Code)
		}
	}
}

func TestOverview(t *testing.T) {
	table := toyTable(t)
	payload := Overview(table, config.Default())
	if payload.Departments != 3 {
		t.Errorf("departments = %d, want 3", payload.Departments)
	}
	want := []string{types.APLMed, types.Mortalite064}
	if len(payload.Indicators) != 2 || payload.Indicators[0] != want[0] || payload.Indicators[1] != want[1] {
		t.Errorf("indicators = %v, want %v (only columns the file carries)", payload.Indicators, want)
	}
}
