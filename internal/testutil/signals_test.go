package testutil

import (
	"math"
	"testing"
)

func TestSine(t *testing.T) {
	s := Sine(10, 256, 1.0, 256)
	if len(s) != 256 {
		t.Fatalf("len = %d, want 256", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	if rms := RMS(s); math.Abs(rms-1/math.Sqrt2) > 1e-12 {
		t.Fatalf("rms = %v, want 1/sqrt(2)", rms)
	}
}

func TestNoiseReproducible(t *testing.T) {
	a := Noise(42, 1.0, 64)
	b := Noise(42, 1.0, 64)
	c := Noise(43, 1.0, 64)
	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if a[i] != c[i] {
			same = false
		}
		if a[i] < -1 || a[i] >= 1 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestGaussianAndWalk(t *testing.T) {
	g := Gaussian(7, 2, 20000)
	if v := Variance(g); math.Abs(v-4) > 0.2 {
		t.Fatalf("variance = %v, want about 4", v)
	}
	w := RandomWalk(7, 100)
	g = Gaussian(7, 1, 100)
	if math.Abs(w[99]-sum(g)) > 1e-9 {
		t.Fatalf("walk end = %v, want %v", w[99], sum(g))
	}
}

func TestRampAddDC(t *testing.T) {
	r := Ramp(1, 0.5, 4)
	want := []float64{1, 1.5, 2, 2.5}
	RequireSliceNearlyEqual(t, r, want, 0)

	got := Add(r, DC(-1, 4))
	RequireSliceNearlyEqual(t, got, []float64{0, 0.5, 1, 1.5}, 0)

	if Add() != nil {
		t.Fatal("Add() should be nil")
	}
}

func TestPeakLag(t *testing.T) {
	a := Sine(3, 256, 1, 512)
	b := make([]float64, len(a))
	copy(b[5:], a)
	if lag := PeakLag(a, b, 20); lag != 5 {
		t.Fatalf("lag = %d, want 5", lag)
	}
	if lag := PeakLag(a, a, 20); lag != 0 {
		t.Fatalf("self lag = %d, want 0", lag)
	}
}

func sum(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v
	}
	return s
}
