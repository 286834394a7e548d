package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-biosignal/dsp/core"
	"github.com/cwbudde/algo-biosignal/internal/testutil"
)

func TestBandPower_Sine(t *testing.T) {
	const fs = 256.0
	p, err := Periodogram(testutil.Sine(10, fs, 1, 1024), fs)
	if err != nil {
		t.Fatal(err)
	}

	alpha, err := BandPower(p, 8, 12)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireWithin(t, "alpha power", alpha, 0.5, 0.15)

	beta, _ := BandPower(p, 12.5, 30)
	if beta > 1e-6*alpha {
		t.Fatalf("beta power = %v leaks from alpha %v", beta, alpha)
	}
}

func TestBandPower_FlatDensity(t *testing.T) {
	// Constant density 2 over 0..10 Hz, 1 Hz bins: the band 2..6 integrates to 8.
	p := PSD{Resolution: 1}
	for f := 0; f <= 10; f++ {
		p.Frequencies = append(p.Frequencies, float64(f))
		p.Power = append(p.Power, 2)
	}
	tests := []struct {
		low, high float64
		want      float64
	}{
		{2, 6, 8},
		{2, 3, 2},
		{2.5, 3.5, 0},
		{20, 30, 0},
	}
	for _, tc := range tests {
		got, err := BandPower(p, tc.low, tc.high)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("BandPower(%v, %v) = %v, want %v", tc.low, tc.high, got, tc.want)
		}
	}
}

func TestBandPower_InvalidEdges(t *testing.T) {
	p := PSD{Frequencies: []float64{0, 1, 2}, Power: []float64{1, 1, 1}, Resolution: 1}
	for _, b := range [][2]float64{{4, 2}, {-1, 2}, {1, 1}, {0, math.Inf(1)}} {
		if _, err := BandPower(p, b[0], b[1]); !errors.Is(err, core.ErrConfiguration) {
			t.Errorf("band %v: err = %v", b, err)
		}
	}
}

func TestBandPowers_Default(t *testing.T) {
	p, _ := Periodogram(testutil.Gaussian(3, 1, 2048), 128)
	vals, err := BandPowers(p, DefaultBands())
	if err != nil {
		t.Fatal(err)
	}
	if len(vals) != 5 {
		t.Fatalf("len = %d", len(vals))
	}
	for i, v := range vals {
		if v < 0 || math.IsNaN(v) {
			t.Fatalf("band %d power = %v", i, v)
		}
	}
	for _, b := range DefaultBands() {
		if err := b.Validate(); err != nil {
			t.Fatalf("default band %s invalid: %v", b.Name, err)
		}
	}
}
