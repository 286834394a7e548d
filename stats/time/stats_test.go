package time

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-biosignal/dsp/core"
	"github.com/cwbudde/algo-biosignal/internal/testutil"
)

const tolerance = 1e-10

func almostEqual(a, b, tol float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return math.Abs(a-b) <= tol
}

func TestDescribe_Basic(t *testing.T) {
	s := Describe([]float64{1, -1, 3, -3})
	want := Summary{
		Length:        4,
		Mean:          0,
		Variance:      5,
		Std:           math.Sqrt(5),
		SampleStd:     math.Sqrt(20.0 / 3),
		Min:           -3,
		MinPos:        3,
		Max:           3,
		MaxPos:        2,
		RMS:           math.Sqrt(5),
		ZeroCrossings: 3,
	}
	if s.Length != want.Length || s.MinPos != want.MinPos || s.MaxPos != want.MaxPos || s.ZeroCrossings != want.ZeroCrossings {
		t.Fatalf("got %+v, want %+v", s, want)
	}
	for _, c := range []struct {
		name      string
		got, want float64
	}{
		{"mean", s.Mean, want.Mean},
		{"variance", s.Variance, want.Variance},
		{"std", s.Std, want.Std},
		{"sample std", s.SampleStd, want.SampleStd},
		{"min", s.Min, want.Min},
		{"max", s.Max, want.Max},
		{"rms", s.RMS, want.RMS},
		{"skewness", s.Skewness, 0},
	} {
		if !almostEqual(c.got, c.want, tolerance) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestDescribe_Empty(t *testing.T) {
	s := Describe(nil)
	if s.Length != 0 || !math.IsNaN(s.Mean) || !math.IsNaN(s.Std) || !math.IsNaN(s.SampleStd) || !math.IsNaN(s.Max) {
		t.Fatalf("empty summary = %+v", s)
	}
}

func TestDescribe_MatchesGonum(t *testing.T) {
	x := testutil.Gaussian(4, 3, 5000)
	s := Describe(x)
	if !almostEqual(s.Std, StdDev(x), 1e-9) {
		t.Fatalf("std %v vs gonum %v", s.Std, StdDev(x))
	}
	if math.Abs(s.Kurtosis) > 0.3 || math.Abs(s.Skewness) > 0.15 {
		t.Fatalf("gaussian skew=%v kurt=%v", s.Skewness, s.Kurtosis)
	}

	u := make([]float64, 1001)
	for i := range u {
		u[i] = -1 + 2*float64(i)/1000
	}
	// Uniform distribution excess kurtosis is -1.2.
	if k := Describe(u).Kurtosis; math.Abs(k+1.2) > 0.01 {
		t.Fatalf("uniform kurtosis = %v", k)
	}
}

func TestAbsDiffRMS(t *testing.T) {
	testutil.RequireSliceNearlyEqual(t, Abs([]float64{-2, 0, 3}), []float64{2, 0, 3}, 0)
	testutil.RequireSliceNearlyEqual(t, Diff([]float64{1, 4, 9, 16}), []float64{3, 5, 7}, 0)
	if Diff([]float64{1}) != nil {
		t.Fatal("diff of one sample should be nil")
	}
	if RMS(nil) != 0 || !almostEqual(RMS([]float64{3, -3}), 3, tolerance) {
		t.Fatal("rms mismatch")
	}
	if !math.IsNaN(StdDev(nil)) {
		t.Fatal("std of empty should be NaN")
	}
}

func TestHjorth_Sine(t *testing.T) {
	// For a sampled sine, mobility is 2*sin(w/2) and complexity is 1.
	const fs, f = 256.0, 8.0
	x := testutil.Sine(f, fs, 1, 4096)
	h, err := HjorthParams(x)
	if err != nil {
		t.Fatal(err)
	}
	w := 2 * math.Pi * f / fs
	if !almostEqual(h.Mobility, 2*math.Sin(w/2), 1e-3) {
		t.Fatalf("mobility = %v, want %v", h.Mobility, 2*math.Sin(w/2))
	}
	if !almostEqual(h.Complexity, 1, 1e-3) {
		t.Fatalf("complexity = %v, want 1", h.Complexity)
	}
	if !almostEqual(h.Activity, 0.5, 1e-3) {
		t.Fatalf("activity = %v, want 0.5", h.Activity)
	}
}

func TestHjorth_NoiseMoreComplexThanSine(t *testing.T) {
	noise, err := HjorthParams(testutil.Gaussian(2, 1, 4096))
	if err != nil {
		t.Fatal(err)
	}
	sine, _ := HjorthParams(testutil.Sine(8, 256, 1, 4096))
	if !(noise.Mobility > sine.Mobility) || !(noise.Complexity > sine.Complexity) {
		t.Fatalf("noise %+v not above sine %+v", noise, sine)
	}
}

func TestHjorth_Errors(t *testing.T) {
	if _, err := HjorthParams([]float64{1, 2}); !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("short: err = %v", err)
	}
	if _, err := HjorthParams(testutil.DC(3, 50)); !errors.Is(err, core.ErrNumericInstability) {
		t.Fatalf("flat: err = %v", err)
	}
	if _, err := HjorthParams(testutil.Ramp(0, 1, 50)); !errors.Is(err, core.ErrNumericInstability) {
		t.Fatalf("ramp: err = %v", err)
	}
}
