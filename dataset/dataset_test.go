package dataset

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"go-vulndash/types"
)

const sampleCSV = `code_dep,departement,mortalite_0_64,apl_med,classe_vuln
1,Ain,1.8,3.2,Faible
2A,Corse-du-Sud,2.1,2.9,Moyenne
23,Creuse,3.4,1.8,Très élevée
75,Paris,1.5,,Faible
`

func TestBuildTableNormalizesCodes(t *testing.T) {
	table, err := BuildTable([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Records) != 4 {
		t.Fatalf("record count = %d, want 4", len(table.Records))
	}
	if _, ok := table.Lookup("01"); !ok {
		t.Error("single-digit code should be zero-padded to 01")
	}
	if _, ok := table.Lookup("2A"); !ok {
		t.Error("Corsican code 2A should survive normalization")
	}
}

func TestBuildTableHeadersKeepFileOrder(t *testing.T) {
	table, err := BuildTable([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"code_dep", "departement", "mortalite_0_64", "apl_med", "classe_vuln"}
	if !reflect.DeepEqual(table.Headers, want) {
		t.Errorf("headers = %v, want file order %v", table.Headers, want)
	}
}

func TestBuildTableMissingCells(t *testing.T) {
	table, err := BuildTable([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	paris, _ := table.Lookup("75")
	if _, ok := paris.Value(types.APLMed); ok {
		t.Error("empty apl_med cell must be missing, not a number")
	}
	if v, ok := paris.Value(types.Mortalite064); !ok || v != 1.5 {
		t.Errorf("mortalite_0_64(75) = %v/%v, want 1.5/present", v, ok)
	}
}

func TestBuildTableVulnClass(t *testing.T) {
	table, err := BuildTable([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	creuse, _ := table.Lookup("23")
	if creuse.VulnClass != "Très élevée" {
		t.Errorf("VulnClass(23) = %q, want Très élevée", creuse.VulnClass)
	}
}

func TestBuildTableDuplicateCodeAborts(t *testing.T) {
	csv := "code_dep,departement,mortalite_0_64\n01,Ain,1.8\n1,Ain bis,2.0\n"
	_, err := BuildTable([]byte(csv))
	if err == nil {
		t.Fatal("expected DataIntegrityError for duplicate code")
	}
	var integrity *DataIntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected DataIntegrityError, got %T: %v", err, err)
	}
	if !strings.Contains(integrity.Error(), "01") {
		t.Errorf("error should name the duplicated code: %v", integrity)
	}
}

func TestBuildTableMissingJoinKey(t *testing.T) {
	csv := "departement,mortalite_0_64\nAin,1.8\n"
	_, err := BuildTable([]byte(csv))
	var integrity *DataIntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected DataIntegrityError for absent code_dep, got %v", err)
	}
}

func TestBuildTableUnparsableNumberIsMissing(t *testing.T) {
	csv := "code_dep,departement,taux_pauvrete\n01,Ain,n/a\n02,Aisne,14.1\n"
	table, err := BuildTable([]byte(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ain, _ := table.Lookup("01")
	if _, ok := ain.Value(types.TauxPauvrete); ok {
		t.Error("unparsable cell must be missing, never coerced to a number")
	}
	col, err := table.Column(types.TauxPauvrete)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(col) != 1 {
		t.Errorf("column size = %d, want 1 present value", len(col))
	}
}

func TestRequireColumns(t *testing.T) {
	table, err := BuildTable([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := table.RequireColumns(types.Mortalite064, types.APLMed); err != nil {
		t.Errorf("present columns should pass: %v", err)
	}
	err = table.RequireColumns(types.APLInf)
	var integrity *DataIntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected DataIntegrityError for absent column, got %v", err)
	}
	if !strings.Contains(err.Error(), types.APLInf) {
		t.Errorf("error should name the absent column: %v", err)
	}
}

func TestColumnOnAbsentHeader(t *testing.T) {
	table, err := BuildTable([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := table.Column("score_vuln_global"); err == nil {
		t.Error("expected error for a column the file never carried")
	}
}
