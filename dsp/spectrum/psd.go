package spectrum

import (
	"github.com/cwbudde/algo-biosignal/dsp/core"
	"github.com/cwbudde/algo-biosignal/dsp/window"
)

// PSD is a one-sided power spectrum. Power[k] is the power carried by the
// bin at Frequencies[k], so the sum over all bins approximates the variance
// of the analysed samples.
type PSD struct {
	Frequencies []float64 // Hz, ascending from 0 to at most Nyquist
	Power       []float64 // per bin, >= 0
	Resolution  float64   // bin spacing in Hz
}

// Len returns the bin count.
func (p PSD) Len() int { return len(p.Power) }

// Total returns the summed power of all bins.
func (p PSD) Total() float64 {
	var s float64
	for _, v := range p.Power {
		s += v
	}
	return s
}

// Density returns the power spectral density (power per Hz).
func (p PSD) Density() []float64 {
	out := make([]float64, len(p.Power))
	if p.Resolution <= 0 {
		return out
	}
	inv := 1 / p.Resolution
	for i, v := range p.Power {
		out[i] = v * inv
	}
	return out
}

// Peak returns the index and frequency of the strongest bin, ignoring DC.
// It returns -1 when the spectrum has no bins beyond DC.
func (p PSD) Peak() (int, float64) {
	best, idx := -1.0, -1
	for i := 1; i < len(p.Power); i++ {
		if p.Power[i] > best {
			best, idx = p.Power[i], i
		}
	}
	if idx < 0 {
		return -1, 0
	}
	return idx, p.Frequencies[idx]
}

// Periodogram estimates the power spectrum of samples taken at sampleRate.
//
// The mean is removed and a periodic Hann taper applied before the FFT. Bin
// k has frequency k*fs/N for k = 0..N/2. Each bin holds |X_k|^2/(N*sum(w^2)),
// doubled everywhere except DC and, for even N, the Nyquist bin.
func Periodogram(samples []float64, sampleRate float64) (PSD, error) {
	const op = "spectrum.Periodogram"
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return PSD{}, core.ParamError(op, "sample_rate", sampleRate, "must be a positive finite number")
	}
	n := len(samples)
	if n == 0 {
		return PSD{}, core.Insufficientf(op, "empty input")
	}

	taper := window.Generate(window.TypeHann, n, window.WithPeriodic())
	gain, err := window.Measure(taper)
	if err != nil {
		// A one-sample Hann taper is all zeros.
		return PSD{}, core.Insufficientf(op, "%d samples are too few for a tapered estimate", n)
	}

	x := demean(samples)
	if err := window.ApplyCoefficientsInPlace(x, taper); err != nil {
		return PSD{}, err
	}

	bins, err := RealFFT(x)
	if err != nil {
		return PSD{}, err
	}

	power := Power(bins)
	scale := 1 / (float64(n) * gain.PowerSum)
	for k := range power {
		power[k] *= scale
		if k != 0 && !(n%2 == 0 && k == n/2) {
			power[k] *= 2
		}
	}

	return PSD{
		Frequencies: binFrequencies(len(power), sampleRate, n),
		Power:       power,
		Resolution:  sampleRate / float64(n),
	}, nil
}

// Welch averages Hann periodograms of segments of segmentLen samples that
// overlap by overlap samples. A segmentLen of zero or one at least as long
// as the input falls back to a single periodogram of the whole input.
func Welch(samples []float64, sampleRate float64, segmentLen, overlap int) (PSD, error) {
	const op = "spectrum.Welch"
	if segmentLen < 0 {
		return PSD{}, core.ParamError(op, "segment_len", segmentLen, "must be >= 0")
	}
	if segmentLen == 0 || segmentLen >= len(samples) {
		return Periodogram(samples, sampleRate)
	}
	if overlap < 0 || overlap >= segmentLen {
		return PSD{}, core.ParamError(op, "overlap", overlap, "must be in [0, %d)", segmentLen)
	}

	step := segmentLen - overlap
	count := (len(samples)-segmentLen)/step + 1

	var avg PSD
	for s := 0; s < count; s++ {
		start := s * step
		p, err := Periodogram(samples[start:start+segmentLen], sampleRate)
		if err != nil {
			return PSD{}, err
		}
		if s == 0 {
			avg = p
			continue
		}
		for k, v := range p.Power {
			avg.Power[k] += v
		}
	}

	inv := 1 / float64(count)
	for k := range avg.Power {
		avg.Power[k] *= inv
	}
	return avg, nil
}

func demean(samples []float64) []float64 {
	var mean float64
	for _, v := range samples {
		mean += v
	}
	mean /= float64(len(samples))

	out := make([]float64, len(samples))
	for i, v := range samples {
		out[i] = v - mean
	}
	return out
}

func binFrequencies(bins int, sampleRate float64, n int) []float64 {
	out := make([]float64, bins)
	df := sampleRate / float64(n)
	for k := range out {
		out[k] = float64(k) * df
	}
	if n%2 == 0 {
		out[bins-1] = sampleRate / 2
	}
	return out
}
