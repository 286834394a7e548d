package chaos

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-biosignal/dsp/core"
	"github.com/cwbudde/algo-biosignal/internal/testutil"
)

func TestLyapunovSpectrumLogisticMap(t *testing.T) {
	p := SpectrumParams{EmbeddingDim: 3, MatrixDim: 2, MinNeighbours: 4}
	exps, err := LyapunovSpectrum(logistic(0.1234, 2000), p)
	if err != nil {
		t.Fatalf("LyapunovSpectrum: %v", err)
	}
	if len(exps) != 2 {
		t.Fatalf("len = %d, want 2", len(exps))
	}
	// ln 2 per iteration; the second direction has no dynamics.
	if exps[0] < 0.3 || exps[0] > 1.2 {
		t.Fatalf("leading exponent = %.3f, want near %.3f", exps[0], math.Ln2)
	}
	if !(exps[1] < exps[0]) {
		t.Errorf("exponents not ordered: %v", exps)
	}
	if PositiveCount(exps) < 1 {
		t.Errorf("PositiveCount(%v) = 0", exps)
	}
}

func TestSpectrumParamsMinLength(t *testing.T) {
	if got := DefaultSpectrumParams().MinLength(); got != 21 {
		t.Fatalf("MinLength = %d, want 21", got)
	}
	p := DefaultSpectrumParams()
	if _, err := LyapunovSpectrum(testutil.Noise(5, 1, 21), p); err != nil {
		t.Fatalf("at MinLength: %v", err)
	}
	if _, err := LyapunovSpectrum(testutil.Noise(5, 1, 20), p); !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("below MinLength: err = %v", err)
	}
}

func TestLyapunovSpectrumErrors(t *testing.T) {
	noise := testutil.Noise(1, 1, 500)
	tests := []struct {
		name string
		x    []float64
		p    SpectrumParams
		kind error
	}{
		{"matrix one", noise, SpectrumParams{EmbeddingDim: 10, MatrixDim: 1, MinNeighbours: 8}, core.ErrConfiguration},
		{"embedding below matrix", noise, SpectrumParams{EmbeddingDim: 3, MatrixDim: 4, MinNeighbours: 8}, core.ErrConfiguration},
		{"embedding not a multiple", noise, SpectrumParams{EmbeddingDim: 9, MatrixDim: 4, MinNeighbours: 8}, core.ErrConfiguration},
		{"few neighbours", noise, SpectrumParams{EmbeddingDim: 10, MatrixDim: 4, MinNeighbours: 3}, core.ErrConfiguration},
		{"negative separation", noise, SpectrumParams{EmbeddingDim: 10, MatrixDim: 4, MinNeighbours: 8, MinTimeSep: -1}, core.ErrConfiguration},
		{"short input", testutil.Noise(1, 1, 15), DefaultSpectrumParams(), core.ErrInsufficientData},
		{"flat", testutil.DC(1, 500), DefaultSpectrumParams(), core.ErrNumericInstability},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LyapunovSpectrum(tt.x, tt.p)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("err = %v, want kind %v", err, tt.kind)
			}
		})
	}
}

func TestLyapunovSpectrumDeterministic(t *testing.T) {
	x := testutil.Gaussian(8, 1, 800)
	a, errA := LyapunovSpectrum(x, DefaultSpectrumParams())
	b, errB := LyapunovSpectrum(x, DefaultSpectrumParams())
	if errA != nil || errB != nil {
		t.Fatalf("errors: %v %v", errA, errB)
	}
	for i := range a {
		if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
			t.Fatalf("exponent %d not deterministic: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestPositiveCount(t *testing.T) {
	if got := PositiveCount([]float64{0.4, 0, -1, math.NaN(), 1e-9}); got != 2 {
		t.Fatalf("PositiveCount = %d, want 2", got)
	}
}

func TestKNearestKeepsClosest(t *testing.T) {
	s := &kNearest{k: 3}
	for j, d := range []float64{5, 1, 4, 1, 0.5, 9} {
		s.offer(j, d)
	}
	want := []int{4, 1, 3}
	for i := range want {
		if s.idx[i] != want[i] {
			t.Fatalf("idx = %v, want %v", s.idx, want)
		}
	}
}
