package dataset

import (
	"math"
	"os"
	"strconv"

	"go-vulndash/types"
)

// Table is the loaded indicator table: one record per department, indexed
// by the normalized department code. It is immutable once built; every
// derived table is computed from it fresh. Headers keeps the source file's
// column order.
type Table struct {
	Records  []types.DepartmentRecord
	Headers  []string
	Warnings []ParseWarning

	byCode    map[string]int
	headerSet map[string]bool
}

// LoadIndicatorTable reads and builds the table from a CSV file.
func LoadIndicatorTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return BuildTable(data)
}

// BuildTable parses CSV bytes into a Table. The code_dep column is the join
// key: it must exist and be unique. A duplicated code aborts the build, a
// row with an empty code is dropped with a warning. Numeric cells that fail
// to parse (or parse to NaN/Inf) are recorded as missing, never as zero.
func BuildTable(data []byte) (*Table, error) {
	headers, rows, warnings, err := parseCSV(data)
	if err != nil {
		return nil, err
	}

	headerSet := make(map[string]bool, len(headers))
	for _, h := range headers {
		headerSet[h] = true
	}
	if !headerSet[types.ColCode] {
		return nil, integrityErrorf("required join key column %q is absent", types.ColCode)
	}

	t := &Table{
		Headers:   headers,
		Warnings:  warnings,
		byCode:    make(map[string]int, len(rows)),
		headerSet: headerSet,
	}

	for i, row := range rows {
		code := types.NormalizeCode(row[types.ColCode])
		if code == "" {
			t.Warnings = append(t.Warnings, ParseWarning{
				Row:     i + 2,
				Message: "row has no usable department code, dropped",
			})
			continue
		}
		if _, dup := t.byCode[code]; dup {
			return nil, integrityErrorf("duplicate department code %q", code)
		}

		rec := types.DepartmentRecord{
			Code:   code,
			Name:   row[types.ColName],
			Values: make(map[string]float64),
		}
		for col, cell := range row {
			if col == types.ColCode || col == types.ColName {
				continue
			}
			if col == types.ColVulnClass {
				if _, ok := types.ParseTier(cell); ok {
					rec.VulnClass = cell
				}
				continue
			}
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			rec.Values[col] = v
		}

		t.byCode[code] = len(t.Records)
		t.Records = append(t.Records, rec)
	}

	if len(t.Records) == 0 {
		return nil, integrityErrorf("no rows with a usable %s value", types.ColCode)
	}
	return t, nil
}

// Lookup returns the record for a normalized code.
func (t *Table) Lookup(code string) (types.DepartmentRecord, bool) {
	i, ok := t.byCode[code]
	if !ok {
		return types.DepartmentRecord{}, false
	}
	return t.Records[i], true
}

// Codes returns every department code in table order.
func (t *Table) Codes() []string {
	codes := make([]string, len(t.Records))
	for i, r := range t.Records {
		codes[i] = r.Code
	}
	return codes
}

// HasColumn reports whether the source file carried the column at all,
// independent of how many cells parsed.
func (t *Table) HasColumn(name string) bool {
	return t.headerSet[name]
}

// RequireColumns fails with a DataIntegrityError naming the first column
// the source table does not carry.
func (t *Table) RequireColumns(names ...string) error {
	for _, n := range names {
		if !t.headerSet[n] {
			return integrityErrorf("required column %q is absent from the source table", n)
		}
	}
	return nil
}

// Column extracts the present values of one indicator, keyed by department
// code. Departments with a missing cell are simply not in the map.
func (t *Table) Column(name string) (map[string]float64, error) {
	if err := t.RequireColumns(name); err != nil {
		return nil, err
	}
	col := make(map[string]float64)
	for _, r := range t.Records {
		if v, ok := r.Values[name]; ok {
			col[r.Code] = v
		}
	}
	return col, nil
}
