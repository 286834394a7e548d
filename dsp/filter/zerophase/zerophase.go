// Package zerophase runs a biquad cascade forward and backward over a finite
// signal so that the result has no phase shift and a squared magnitude
// response.
//
// Both ends of the input are extended by odd reflection and the cascade
// starts from its steady state for the first sample of each pass, matching
// the filtfilt convention of common scientific toolkits.
package zerophase

import (
	"github.com/cwbudde/algo-biosignal/dsp/core"
	"github.com/cwbudde/algo-biosignal/dsp/filter/biquad"
)

// Option configures a Filter.
type Option func(*config)

type config struct {
	padLen int
	gain   float64
}

// WithPadLen overrides the reflection length. Negative values are ignored;
// zero disables padding.
func WithPadLen(n int) Option {
	return func(cfg *config) {
		if n >= 0 {
			cfg.padLen = n
		}
	}
}

// WithGain sets the cascade input gain used on each pass.
func WithGain(g float64) Option {
	return func(cfg *config) { cfg.gain = g }
}

// Filter is a reusable zero-phase runner for one cascade design. It holds no
// per-signal state, so one Filter may be applied from several goroutines.
type Filter struct {
	coeffs []biquad.Coefficients
	padLen int
	gain   float64
	order  int
}

// PadLen returns the default reflection length for a cascade of the given
// total order.
func PadLen(order int) int {
	return 3 * (order + 1)
}

// New returns a Filter for the given cascade. It rejects an empty cascade.
func New(coeffs []biquad.Coefficients, opts ...Option) (*Filter, error) {
	if len(coeffs) == 0 {
		return nil, core.Configf("zerophase.New", "empty cascade")
	}

	cp := make([]biquad.Coefficients, len(coeffs))
	copy(cp, coeffs)
	order := biquad.NewChain(cp).Order()

	cfg := config{padLen: PadLen(order), gain: 1}
	for _, o := range opts {
		o(&cfg)
	}

	return &Filter{coeffs: cp, padLen: cfg.padLen, gain: cfg.gain, order: order}, nil
}

// Order returns the total order of the cascade.
func (f *Filter) Order() int { return f.order }

// PadLen returns the number of reflected samples added to each end.
func (f *Filter) PadLen() int { return f.padLen }

// MinLength returns the shortest input Apply accepts.
func (f *Filter) MinLength() int { return f.padLen + 1 }

// MagnitudeDB returns the effective magnitude response at freqHz. The
// forward and backward passes square the single-pass magnitude, so the
// result is twice the cascade response in dB.
func (f *Filter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 2 * biquad.NewChain(f.coeffs, biquad.WithGain(f.gain)).MagnitudeDB(freqHz, sampleRate)
}

// Apply returns the zero-phase filtered copy of x. The input is not
// modified. Inputs not longer than PadLen yield an ErrInsufficientData
// error.
func (f *Filter) Apply(x []float64) ([]float64, error) {
	n := len(x)
	if n <= f.padLen {
		return nil, core.Insufficientf("zerophase.Apply",
			"signal length %d must exceed pad length %d", n, f.padLen)
	}

	ext := oddExtend(x, f.padLen)
	chain := biquad.NewChain(f.coeffs, biquad.WithGain(f.gain))

	chain.PrimeSteadyState(ext[0])
	chain.ProcessBlock(ext)

	reverse(ext)
	chain.PrimeSteadyState(ext[0])
	chain.ProcessBlock(ext)
	reverse(ext)

	out := make([]float64, n)
	copy(out, ext[f.padLen:f.padLen+n])
	return out, nil
}

// oddExtend reflects pad samples about each endpoint: the left extension is
// 2*x[0] - x[pad..1] and the right one 2*x[n-1] - x[n-2..n-1-pad].
func oddExtend(x []float64, pad int) []float64 {
	n := len(x)
	ext := make([]float64, n+2*pad)
	first, last := x[0], x[n-1]
	for i := 0; i < pad; i++ {
		ext[i] = 2*first - x[pad-i]
		ext[pad+n+i] = 2*last - x[n-2-i]
	}
	copy(ext[pad:], x)
	return ext
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
