package biquad

import (
	"math"
	"testing"
)

func testCoeffs() []Coefficients {
	return []Coefficients{
		smoothing(),
		{B0: 0.9, B1: -1.8, B2: 0.9, A1: -1.79, A2: 0.81},
		{B0: 0.2, B1: 0.2, A1: -0.6},
	}
}

func TestChain_ProcessSample_MatchesManualCascade(t *testing.T) {
	coeffs := testCoeffs()
	chain := NewChain(coeffs, WithGain(0.5))
	manual := make([]*Section, len(coeffs))
	for i := range coeffs {
		manual[i] = NewSection(coeffs[i])
	}

	for n := range 100 {
		x := math.Sin(float64(n) * 0.17)
		want := 0.5 * x
		for _, s := range manual {
			want = s.ProcessSample(want)
		}
		if got := chain.ProcessSample(x); !almostEqual(got, want, eps) {
			t.Fatalf("sample %d: got %v, want %v", n, got, want)
		}
	}
}

func TestChain_ProcessBlock_MatchesSample(t *testing.T) {
	input := make([]float64, 33)
	for i := range input {
		input[i] = math.Cos(float64(i) * 0.4)
	}

	ref := NewChain(testCoeffs(), WithGain(2))
	want := make([]float64, len(input))
	for i, x := range input {
		want[i] = ref.ProcessSample(x)
	}

	c := NewChain(testCoeffs(), WithGain(2))
	buf := append([]float64(nil), input...)
	c.ProcessBlock(buf)
	for i := range buf {
		if !almostEqual(buf[i], want[i], 1e-12) {
			t.Fatalf("index %d: got %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestChain_OrderAndSections(t *testing.T) {
	c := NewChain(testCoeffs())
	if c.NumSections() != 3 {
		t.Fatalf("NumSections() = %d, want 3", c.NumSections())
	}
	if c.Order() != 5 {
		t.Fatalf("Order() = %d, want 5", c.Order())
	}
	if c.Gain() != 1 {
		t.Fatalf("Gain() = %v, want 1", c.Gain())
	}
	if c.Section(2).B0 != 0.2 {
		t.Fatalf("Section(2).B0 = %v", c.Section(2).B0)
	}
}

func TestChain_PrimeSteadyState(t *testing.T) {
	const u = -1.25
	c := NewChain(testCoeffs(), WithGain(0.8))
	c.PrimeSteadyState(u)

	want := 0.8 * u
	for _, co := range testCoeffs() {
		want *= co.DCGain()
	}
	for n := range 40 {
		if got := c.ProcessSample(u); !almostEqual(got, want, 1e-9) {
			t.Fatalf("sample %d: got %v, want %v", n, got, want)
		}
	}
}

func TestChain_StateRoundTrip(t *testing.T) {
	c := NewChain(testCoeffs())
	c.ProcessSample(1)
	c.ProcessSample(-0.5)
	saved := c.State()
	a := c.ProcessSample(0.25)

	c.SetState(saved)
	if b := c.ProcessSample(0.25); a != b {
		t.Fatalf("restored chain produced %v, want %v", b, a)
	}

	c.Reset()
	for i, st := range c.State() {
		if st != [2]float64{} {
			t.Fatalf("section %d state %v after Reset", i, st)
		}
	}
}

func TestChain_Stable(t *testing.T) {
	if !NewChain(testCoeffs()).Stable() {
		t.Fatal("expected stable chain")
	}
	bad := append(testCoeffs(), Coefficients{B0: 1, A1: -2.1, A2: 1.1})
	if NewChain(bad).Stable() {
		t.Fatal("expected unstable chain")
	}
}
