// Package testutil holds deterministic signals and comparison helpers shared
// by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// Sine generates amplitude*sin(2*pi*freqHz*t) sampled at sampleRate.
func Sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Noise generates uniform white noise in [-amplitude, amplitude) from a fixed
// seed.
func Noise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Gaussian generates zero-mean normal noise with standard deviation sigma.
func Gaussian(seed int64, sigma float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = rng.NormFloat64() * sigma
	}
	return out
}

// RandomWalk returns the cumulative sum of Gaussian steps.
func RandomWalk(seed int64, length int) []float64 {
	out := Gaussian(seed, 1, length)
	for i := 1; i < length; i++ {
		out[i] += out[i-1]
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ramp generates offset + slope*i.
func Ramp(offset, slope float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = offset + slope*float64(i)
	}
	return out
}

// Add returns the element-wise sum of equally long signals.
func Add(parts ...[]float64) []float64 {
	if len(parts) == 0 {
		return nil
	}
	out := make([]float64, len(parts[0]))
	for _, p := range parts {
		for i := range out {
			out[i] += p[i]
		}
	}
	return out
}

// Variance returns the population variance of x.
func Variance(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var mean float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(len(x))
	var s float64
	for _, v := range x {
		d := v - mean
		s += d * d
	}
	return s / float64(len(x))
}

// RMS returns the root mean square of x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var s float64
	for _, v := range x {
		s += v * v
	}
	return math.Sqrt(s / float64(len(x)))
}

// PeakLag returns the lag in [-maxLag, maxLag] that maximizes the
// cross-correlation sum(a[i] * b[i+lag]).
func PeakLag(a, b []float64, maxLag int) int {
	n := min(len(a), len(b))
	best, bestLag := math.Inf(-1), 0
	for lag := -maxLag; lag <= maxLag; lag++ {
		var s float64
		for i := 0; i < n; i++ {
			j := i + lag
			if j < 0 || j >= n {
				continue
			}
			s += a[i] * b[j]
		}
		if s > best {
			best, bestLag = s, lag
		}
	}
	return bestLag
}
