package spectrum

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestMagnitudePower(t *testing.T) {
	in := []complex128{complex(3, 4), complex(0, -2), 0}
	mag := Magnitude(in)
	pow := Power(in)
	want := []float64{5, 2, 0}
	for i := range want {
		if math.Abs(mag[i]-want[i]) > 1e-12 {
			t.Fatalf("mag[%d] = %v, want %v", i, mag[i], want[i])
		}
		if math.Abs(pow[i]-want[i]*want[i]) > 1e-12 {
			t.Fatalf("pow[%d] = %v, want %v", i, pow[i], want[i]*want[i])
		}
	}
	if Magnitude(nil) != nil || Power(nil) != nil {
		t.Fatal("expected nil for empty input")
	}

	dst := make([]float64, 2)
	PowerFromParts(dst, []float64{1, 2}, []float64{1, 0})
	if dst[0] != 2 || dst[1] != 4 {
		t.Fatalf("PowerFromParts = %v", dst)
	}
}

func naiveDFT(x []float64) []complex128 {
	n := len(x)
	out := make([]complex128, n/2+1)
	for k := range out {
		var s complex128
		for i, v := range x {
			s += complex(v, 0) * cmplx.Exp(complex(0, -2*math.Pi*float64(k*i)/float64(n)))
		}
		out[k] = s
	}
	return out
}

func TestRealFFT_MatchesDFT(t *testing.T) {
	for _, n := range []int{1, 2, 8, 64, 12, 15, 100} {
		x := make([]float64, n)
		for i := range x {
			x[i] = math.Sin(0.37*float64(i)) + 0.25*float64(i%3)
		}
		got, err := RealFFT(x)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		want := naiveDFT(x)
		if len(got) != len(want) {
			t.Fatalf("n=%d: %d bins, want %d", n, len(got), len(want))
		}
		for k := range want {
			if cmplx.Abs(got[k]-want[k]) > 1e-9*float64(n) {
				t.Fatalf("n=%d bin %d: got %v, want %v", n, k, got[k], want[k])
			}
		}
	}

	if _, err := RealFFT(nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestMagnitudeSpectrum(t *testing.T) {
	x := make([]float64, 16)
	for i := range x {
		x[i] = 1
	}
	mag, err := MagnitudeSpectrum(x)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(mag[0]-16) > 1e-12 {
		t.Fatalf("DC = %v, want 16", mag[0])
	}
	for k := 1; k < len(mag); k++ {
		if mag[k] > 1e-12 {
			t.Fatalf("bin %d = %v, want 0", k, mag[k])
		}
	}
}
