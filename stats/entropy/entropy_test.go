package entropy

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-biosignal/dsp/core"
	"github.com/cwbudde/algo-biosignal/internal/testutil"
)

func TestSampleMinLength(t *testing.T) {
	tests := []struct {
		m    int
		want int
	}{
		{1, 10},
		{2, 100},
		{3, 1000},
		{19, math.MaxInt},
		{25, math.MaxInt},
	}
	for _, tt := range tests {
		if got := SampleMinLength(tt.m); got != tt.want {
			t.Errorf("SampleMinLength(%d) = %d, want %d", tt.m, got, tt.want)
		}
	}
}

func TestSampleEntropySineBelowNoise(t *testing.T) {
	sine := testutil.Sine(10, 256, 1, 1024)
	noise := testutil.Noise(7, 1, 1024)

	sSine, err := SampleEntropy(sine, 2, 1, 0.2*testutil.RMS(sine))
	if err != nil {
		t.Fatalf("sine: %v", err)
	}
	sNoise, err := SampleEntropy(noise, 2, 1, 0.2*math.Sqrt(testutil.Variance(noise)))
	if err != nil {
		t.Fatalf("noise: %v", err)
	}
	if sSine >= sNoise {
		t.Fatalf("sample entropy sine=%g should be below noise=%g", sSine, sNoise)
	}
	if sNoise < 1 {
		t.Fatalf("sample entropy of uniform noise = %g, expected > 1", sNoise)
	}
}

func TestSampleEntropyPeriodicIsZero(t *testing.T) {
	x := make([]float64, 200)
	for i := range x {
		x[i] = float64(i % 2)
	}
	got, err := SampleEntropy(x, 2, 1, 0.1)
	if err != nil {
		t.Fatalf("SampleEntropy: %v", err)
	}
	if math.Abs(got) > 1e-12 {
		t.Fatalf("SampleEntropy(periodic) = %g, want 0", got)
	}
}

func TestSampleEntropyErrors(t *testing.T) {
	x := testutil.Noise(1, 1, 200)
	tests := []struct {
		name  string
		x     []float64
		m     int
		delay int
		r     float64
		kind  error
	}{
		{"m zero", x, 0, 1, 0.2, core.ErrConfiguration},
		{"delay zero", x, 2, 0, 0.2, core.ErrConfiguration},
		{"negative r", x, 2, 1, -1, core.ErrConfiguration},
		{"nan r", x, 2, 1, math.NaN(), core.ErrConfiguration},
		{"short", x[:99], 2, 1, 0.2, core.ErrInsufficientData},
		{"no matches", testutil.Ramp(0, 1, 200), 2, 1, 0.5, core.ErrNumericInstability},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SampleEntropy(tt.x, tt.m, tt.delay, tt.r)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("err = %v, want kind %v", err, tt.kind)
			}
		})
	}
}

func TestApproximateEntropy(t *testing.T) {
	sine := testutil.Sine(10, 256, 1, 512)
	noise := testutil.Noise(3, 1, 512)

	aSine, err := ApproximateEntropy(sine, 2, 0.2*testutil.RMS(sine))
	if err != nil {
		t.Fatalf("sine: %v", err)
	}
	aNoise, err := ApproximateEntropy(noise, 2, 0.2*math.Sqrt(testutil.Variance(noise)))
	if err != nil {
		t.Fatalf("noise: %v", err)
	}
	if aSine >= aNoise {
		t.Fatalf("approximate entropy sine=%g should be below noise=%g", aSine, aNoise)
	}

	flat, err := ApproximateEntropy(testutil.DC(1, 50), 2, 0)
	if err != nil {
		t.Fatalf("flat: %v", err)
	}
	if math.Abs(flat) > 1e-12 {
		t.Fatalf("ApproximateEntropy(flat) = %g, want 0", flat)
	}

	if _, err := ApproximateEntropy([]float64{1, 2, 3}, 2, 0.1); !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("short input err = %v", err)
	}
}

func TestPermutationEntropy(t *testing.T) {
	ramp, err := PermutationEntropy(testutil.Ramp(0, 0.5, 100), 3, 1, true)
	if err != nil {
		t.Fatalf("ramp: %v", err)
	}
	if ramp != 0 {
		t.Fatalf("PermutationEntropy(ramp) = %g, want 0", ramp)
	}

	noise, err := PermutationEntropy(testutil.Noise(11, 1, 4096), 3, 1, true)
	if err != nil {
		t.Fatalf("noise: %v", err)
	}
	if noise < 0.95 || noise > 1 {
		t.Fatalf("normalized permutation entropy of noise = %g, want in [0.95, 1]", noise)
	}

	raw, err := PermutationEntropy(testutil.Noise(11, 1, 4096), 3, 1, false)
	if err != nil {
		t.Fatalf("raw: %v", err)
	}
	if math.Abs(raw-noise*math.Log2(6)) > 1e-12 {
		t.Fatalf("unnormalized = %g, want %g", raw, noise*math.Log2(6))
	}

	if _, err := PermutationEntropy([]float64{1, 2, 3}, 3, 1, true); !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("short err = %v", err)
	}
	if _, err := PermutationEntropy(testutil.Ramp(0, 1, 10), 1, 1, true); !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("order 1 err = %v", err)
	}
}

func TestSpectralEntropy(t *testing.T) {
	flat := testutil.DC(2, 64)
	got, err := SpectralEntropy(flat, true)
	if err != nil {
		t.Fatalf("flat: %v", err)
	}
	if math.Abs(got-1) > 1e-12 {
		t.Fatalf("SpectralEntropy(flat) = %g, want 1", got)
	}

	line := make([]float64, 64)
	line[5] = 3
	got, err = SpectralEntropy(line, true)
	if err != nil {
		t.Fatalf("line: %v", err)
	}
	if got != 0 {
		t.Fatalf("SpectralEntropy(line) = %g, want 0", got)
	}

	if _, err := SpectralEntropy(make([]float64, 8), true); !errors.Is(err, core.ErrNumericInstability) {
		t.Fatalf("zero power err = %v", err)
	}
	if _, err := SpectralEntropy([]float64{1, -1}, true); !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("negative power err = %v", err)
	}
	if _, err := SpectralEntropy([]float64{1}, true); !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("single bin err = %v", err)
	}
}

func TestSVDEntropy(t *testing.T) {
	sine, err := SVDEntropy(testutil.Sine(2, 256, 1, 1024), 3, 1, true)
	if err != nil {
		t.Fatalf("sine: %v", err)
	}
	noise, err := SVDEntropy(testutil.Noise(5, 1, 1024), 3, 1, true)
	if err != nil {
		t.Fatalf("noise: %v", err)
	}
	if sine >= noise {
		t.Fatalf("svd entropy sine=%g should be below noise=%g", sine, noise)
	}
	if noise < 0.9 || noise > 1 {
		t.Fatalf("normalized svd entropy of noise = %g", noise)
	}

	if _, err := SVDEntropy(make([]float64, 16), 3, 1, true); !errors.Is(err, core.ErrNumericInstability) {
		t.Fatalf("zeros err = %v", err)
	}
	if _, err := SVDEntropy([]float64{1, 2, 3, 4}, 3, 1, true); !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("short err = %v", err)
	}
}

func TestDeterministic(t *testing.T) {
	x := testutil.Noise(42, 1, 300)
	a, errA := SampleEntropy(x, 2, 1, 0.2)
	b, errB := SampleEntropy(x, 2, 1, 0.2)
	if errA != nil || errB != nil {
		t.Fatalf("errors: %v %v", errA, errB)
	}
	if a != b {
		t.Fatalf("SampleEntropy not deterministic: %g vs %g", a, b)
	}
}

func TestPermutationEntropyRepeatable(t *testing.T) {
	x := testutil.Noise(11, 1, 2000)
	want, err := PermutationEntropy(x, 5, 1, true)
	if err != nil {
		t.Fatal(err)
	}
	for i := range 200 {
		got, err := PermutationEntropy(x, 5, 1, true)
		if err != nil {
			t.Fatal(err)
		}
		if math.Float64bits(got) != math.Float64bits(want) {
			t.Fatalf("call %d: %v, want bit-identical %v", i, got, want)
		}
	}
}

func TestSampleEntropyHugeOrderIsInsufficient(t *testing.T) {
	_, err := SampleEntropy(testutil.Noise(3, 1, 100), 19, 1, 0.2)
	if !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}
