package testutil

import "testing"

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 2})
	if err != nil {
		t.Fatal(err)
	}
	if d != 1 {
		t.Fatalf("diff = %v, want 1", d)
	}
	if _, err := MaxAbsDiff([]float64{1}, nil); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestRequireHelpersPass(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2}, []float64{1.0001, 2}, 1e-3)
	RequireFinite(t, []float64{0, -1, 1e300})
	RequireWithin(t, "value", 1.01, 1, 0.02)
}
