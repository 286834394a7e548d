package fractal

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-biosignal/dsp/core"
	"github.com/cwbudde/algo-biosignal/internal/testutil"
)

func TestHiguchi(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		want float64
		tol  float64
	}{
		{"line", testutil.Ramp(1, 0.3, 500), 1, 1e-9},
		{"white noise", testutil.Gaussian(3, 1, 4000), 2, 0.05},
		{"random walk", testutil.RandomWalk(3, 4000), 1.5, 0.15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Higuchi(tt.x, DefaultKmax)
			if err != nil {
				t.Fatalf("Higuchi: %v", err)
			}
			if math.Abs(got-tt.want) > tt.tol {
				t.Fatalf("Higuchi = %.4f, want %.2f +/- %g", got, tt.want, tt.tol)
			}
		})
	}
}

func TestHiguchiErrors(t *testing.T) {
	if _, err := Higuchi(testutil.Gaussian(1, 1, 100), 1); !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("kmax=1 err = %v", err)
	}
	if _, err := Higuchi(testutil.Gaussian(1, 1, 19), 10); !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("short err = %v", err)
	}
	if _, err := Higuchi(testutil.DC(4, 100), 10); !errors.Is(err, core.ErrNumericInstability) {
		t.Fatalf("flat err = %v", err)
	}
}

func TestKatz(t *testing.T) {
	line, err := Katz(testutil.Ramp(0, 2, 100))
	if err != nil {
		t.Fatalf("line: %v", err)
	}
	if math.Abs(line-1) > 1e-12 {
		t.Fatalf("Katz(line) = %g, want 1", line)
	}

	noise, err := Katz(testutil.Gaussian(9, 1, 1000))
	if err != nil {
		t.Fatalf("noise: %v", err)
	}
	if math.IsNaN(noise) || math.IsInf(noise, 0) || noise <= 1 {
		t.Fatalf("Katz(noise) = %g, want finite > 1", noise)
	}

	if _, err := Katz(testutil.DC(1, 10)); !errors.Is(err, core.ErrNumericInstability) {
		t.Fatalf("flat err = %v", err)
	}
	if _, err := Katz([]float64{1, 2}); !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("short err = %v", err)
	}
}

func TestPetrosian(t *testing.T) {
	line, err := Petrosian(testutil.Ramp(0, 1, 100))
	if err != nil {
		t.Fatalf("line: %v", err)
	}
	if math.Abs(line-1) > 1e-12 {
		t.Fatalf("Petrosian(line) = %g, want 1", line)
	}

	noise, err := Petrosian(testutil.Gaussian(9, 1, 1000))
	if err != nil {
		t.Fatalf("noise: %v", err)
	}
	if noise <= line || math.IsInf(noise, 0) {
		t.Fatalf("Petrosian(noise) = %g, want finite > %g", noise, line)
	}

	if _, err := Petrosian([]float64{1, 2}); !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("short err = %v", err)
	}
}

func TestBoxSizes(t *testing.T) {
	p := DefaultDFAParams()
	got := p.BoxSizes(100)
	want := []int{4, 5, 6, 8, 9}
	if len(got) != len(want) {
		t.Fatalf("BoxSizes(100) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("BoxSizes(100) = %v, want %v", got, want)
		}
	}
	if sizes := p.BoxSizes(40); sizes != nil {
		t.Fatalf("BoxSizes(40) = %v, want nil", sizes)
	}
}

func TestDFA(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		want float64
		tol  float64
	}{
		{"white noise", testutil.Gaussian(21, 1, 8192), 0.5, 0.1},
		{"random walk", testutil.RandomWalk(21, 8192), 1.5, 0.15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DFA(tt.x, DefaultDFAParams())
			if err != nil {
				t.Fatalf("DFA: %v", err)
			}
			if math.Abs(got-tt.want) > tt.tol {
				t.Fatalf("DFA alpha = %.3f, want %.2f +/- %g", got, tt.want, tt.tol)
			}
		})
	}
}

func TestDFAErrors(t *testing.T) {
	if _, err := DFA(testutil.Gaussian(1, 1, 40), DefaultDFAParams()); !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("short err = %v", err)
	}
	if _, err := DFA(testutil.DC(3, 500), DefaultDFAParams()); !errors.Is(err, core.ErrNumericInstability) {
		t.Fatalf("flat err = %v", err)
	}
	bad := DefaultDFAParams()
	bad.Factor = 1
	if _, err := DFA(testutil.Gaussian(1, 1, 500), bad); !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("factor=1 err = %v", err)
	}
}
