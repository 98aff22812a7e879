package testutil

import (
	"math"
	"testing"
)

func TestMaxAbsDiff(t *testing.T) {
	a := []float64{1.0, 2.0, 3.0}
	b := []float64{1.0, 2.1, 3.0}

	d, err := MaxAbsDiff(a, b)
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if math.Abs(d-0.1) > 1e-15 {
		t.Fatalf("MaxAbsDiff = %v, want 0.1", d)
	}
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	_, err := MaxAbsDiff([]float64{1}, []float64{1, 2})
	if err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestMaxAbsInt(t *testing.T) {
	if got := MaxAbsInt([]int{3, -7, 5}); got != 7 {
		t.Fatalf("MaxAbsInt = %d, want 7", got)
	}
	if got := MaxAbsInt(nil); got != 0 {
		t.Fatalf("MaxAbsInt(nil) = %d, want 0", got)
	}
}

func TestRequireIntsWithin(t *testing.T) {
	RequireIntsWithin(t, []int{1, 2, 3}, []int{2, 2, 2}, 1)
}
