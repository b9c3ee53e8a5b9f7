package stats

import (
	"math"
	"testing"
)

func TestPearsonPerfectCorrelation(t *testing.T) {
	x := map[string]float64{"01": 1, "02": 2, "03": 3, "04": 4}
	y := map[string]float64{"01": 10, "02": 20, "03": 30, "04": 40}
	r, n, err := Pearson(x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 4 {
		t.Errorf("pair count = %d, want 4", n)
	}
	if math.Abs(r-1) > 1e-12 {
		t.Errorf("r = %g, want 1", r)
	}
}

func TestPearsonAntiCorrelation(t *testing.T) {
	x := map[string]float64{"01": 1, "02": 2, "03": 3}
	y := map[string]float64{"01": 6, "02": 4, "03": 2}
	r, _, err := Pearson(x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(r+1) > 1e-12 {
		t.Errorf("r = %g, want -1", r)
	}
}

func TestPearsonPairwisePresence(t *testing.T) {
	// "03" is missing from y and must not take part.
	x := map[string]float64{"01": 1, "02": 2, "03": 100}
	y := map[string]float64{"01": 2, "02": 4}
	r, n, err := Pearson(x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("pair count = %d, want 2", n)
	}
	if math.Abs(r-1) > 1e-12 {
		t.Errorf("r = %g, want 1 over the two shared pairs", r)
	}
}

func TestPearsonTooFewPairs(t *testing.T) {
	x := map[string]float64{"01": 1}
	y := map[string]float64{"01": 2}
	if _, _, err := Pearson(x, y); err == nil {
		t.Error("expected error for a single pair")
	}
}

func TestPearsonConstantColumn(t *testing.T) {
	x := map[string]float64{"01": 5, "02": 5, "03": 5}
	y := map[string]float64{"01": 1, "02": 2, "03": 3}
	if _, _, err := Pearson(x, y); err == nil {
		t.Error("expected error for a constant column, not a silent NaN")
	}
}
