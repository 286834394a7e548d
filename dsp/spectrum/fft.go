package spectrum

import (
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-biosignal/dsp/core"
)

// Plans are not safe for concurrent use, so each size keeps a pool of them.
var (
	planMu    sync.Mutex
	planPools = map[int]*sync.Pool{}
)

type pow2Plan struct {
	plan    *algofft.Plan[complex128]
	in, out []complex128
}

type mixedPlan struct {
	fft *fourier.FFT
	out []complex128
}

func poolFor(n int) *sync.Pool {
	planMu.Lock()
	defer planMu.Unlock()

	p, ok := planPools[n]
	if !ok {
		p = &sync.Pool{}
		planPools[n] = p
	}
	return p
}

// minPlanSize is the smallest length sent to algo-fft.
const minPlanSize = 8

func usePlan(n int) bool {
	return n >= minPlanSize && n&(n-1) == 0
}

// RealFFT returns the non-negative frequency bins X[0..N/2] of the DFT of x.
//
// Power-of-two lengths of at least eight points run on an algo-fft plan. Other lengths use gonum's
// mixed-radix FFT, so the bin spacing is always exactly fs/N.
func RealFFT(x []float64) ([]complex128, error) {
	n := len(x)
	if n == 0 {
		return nil, core.Insufficientf("spectrum.RealFFT", "empty input")
	}
	bins := n/2 + 1
	out := make([]complex128, bins)
	if n == 1 {
		out[0] = complex(x[0], 0)
		return out, nil
	}

	pool := poolFor(n)
	if usePlan(n) {
		p, _ := pool.Get().(*pow2Plan)
		if p == nil {
			plan, err := algofft.NewPlan64(n)
			if err != nil {
				return nil, core.Instabilityf("spectrum.RealFFT", "fft plan for %d points: %v", n, err)
			}
			p = &pow2Plan{plan: plan, in: make([]complex128, n), out: make([]complex128, n)}
		}
		defer pool.Put(p)

		for i, v := range x {
			p.in[i] = complex(v, 0)
		}
		if err := p.plan.Forward(p.out, p.in); err != nil {
			return nil, core.Instabilityf("spectrum.RealFFT", "forward transform: %v", err)
		}
		copy(out, p.out[:bins])
		return out, nil
	}

	p, _ := pool.Get().(*mixedPlan)
	if p == nil {
		p = &mixedPlan{fft: fourier.NewFFT(n)}
	}
	defer pool.Put(p)

	p.out = p.fft.Coefficients(p.out, x)
	copy(out, p.out)
	return out, nil
}

// MagnitudeSpectrum returns |X[k]| for k = 0..N/2 of the untapered input.
func MagnitudeSpectrum(x []float64) ([]float64, error) {
	bins, err := RealFFT(x)
	if err != nil {
		return nil, err
	}
	return Magnitude(bins), nil
}
