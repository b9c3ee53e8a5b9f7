package dataset

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseCSVShortRowPadded(t *testing.T) {
	data := "code_dep,departement,apl_med\n01,Ain\n02,Aisne,2.9\n"
	_, rows, warnings, err := parseCSV([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("row count = %d, want 2", len(rows))
	}
	if rows[0]["apl_med"] != "" {
		t.Errorf("padded cell = %q, want empty", rows[0]["apl_med"])
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "padding") {
		t.Errorf("warnings = %v, want one padding warning", warnings)
	}
}

func TestParseCSVLongRowTruncated(t *testing.T) {
	data := "code_dep,departement\n01,Ain,extra,cells\n"
	_, rows, warnings, err := parseCSV([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows[0]) != 2 {
		t.Errorf("cell count = %d, want 2 after truncation", len(rows[0]))
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "truncating") {
		t.Errorf("warnings = %v, want one truncation warning", warnings)
	}
}

func TestParseCSVEmptyFile(t *testing.T) {
	if _, _, _, err := parseCSV([]byte("")); err == nil {
		t.Error("expected error for empty file")
	}
	if _, _, _, err := parseCSV([]byte("code_dep,departement\n")); err == nil {
		t.Error("expected error for header-only file")
	}
}

func TestParseCSVStripsBOM(t *testing.T) {
	data := "\xEF\xBB\xBFcode_dep,departement\n01,Ain\n"
	headers, rows, _, err := parseCSV([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if headers[0] != "code_dep" {
		t.Errorf("first header = %q, want code_dep with BOM stripped", headers[0])
	}
	if rows[0]["code_dep"] != "01" {
		t.Errorf("code_dep = %q, want 01 with BOM stripped", rows[0]["code_dep"])
	}
}

func TestParseCSVHeaderOrder(t *testing.T) {
	data := "code_dep,departement,apl_med,taux_pauvrete\n01,Ain,3.2,14\n"
	headers, _, _, err := parseCSV([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"code_dep", "departement", "apl_med", "taux_pauvrete"}
	if !reflect.DeepEqual(headers, want) {
		t.Errorf("headers = %v, want file order %v", headers, want)
	}
}
