// Package time computes time-domain statistics of a sample block, including
// the Hjorth activity, mobility and complexity parameters.
package time

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary holds the descriptive statistics of a sample block.
type Summary struct {
	Length        int
	Mean          float64
	Variance      float64 // population
	Std           float64 // population
	SampleStd     float64 // n-1 denominator; NaN for a single sample
	Min           float64
	MinPos        int
	Max           float64
	MaxPos        int
	RMS           float64
	Skewness      float64
	Kurtosis      float64 // excess
	ZeroCrossings int
}

// Describe computes all statistics in a single pass using Welford's online
// algorithm for the higher-order moments. An empty block yields NaN for every
// value statistic.
func Describe(signal []float64) Summary {
	n := len(signal)
	if n == 0 {
		nan := math.NaN()
		return Summary{Mean: nan, Variance: nan, Std: nan, SampleStd: nan, Min: nan, Max: nan, RMS: nan, Skewness: nan, Kurtosis: nan}
	}

	var (
		mean, m2, m3, m4 float64
		sumSq            float64
		s                = Summary{Length: n, Min: signal[0], Max: signal[0]}
	)
	for i, x := range signal {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 before M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		sumSq += x * x
		if x > s.Max {
			s.Max, s.MaxPos = x, i
		}
		if x < s.Min {
			s.Min, s.MinPos = x, i
		}
		if i > 0 && signal[i-1]*x < 0 {
			s.ZeroCrossings++
		}
	}

	nf := float64(n)
	s.Mean = mean
	s.Variance = m2 / nf
	s.Std = math.Sqrt(s.Variance)
	s.SampleStd = math.NaN()
	if n > 1 {
		s.SampleStd = math.Sqrt(m2 / (nf - 1))
	}
	s.RMS = math.Sqrt(sumSq / nf)
	if s.Variance > 0 {
		s.Skewness = (m3 / nf) / (s.Variance * s.Std)
		s.Kurtosis = (m4/nf)/(s.Variance*s.Variance) - 3
	}
	return s
}

// Abs returns |x| element-wise.
func Abs(signal []float64) []float64 {
	out := make([]float64, len(signal))
	for i, x := range signal {
		out[i] = math.Abs(x)
	}
	return out
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}
	return math.Sqrt(sumSq / float64(len(signal)))
}

// StdDev returns the population standard deviation.
func StdDev(signal []float64) float64 {
	if len(signal) == 0 {
		return math.NaN()
	}
	_, std := stat.PopMeanStdDev(signal, nil)
	return std
}

// Diff returns the first difference x[i+1]-x[i].
func Diff(signal []float64) []float64 {
	if len(signal) < 2 {
		return nil
	}
	out := make([]float64, len(signal)-1)
	for i := range out {
		out[i] = signal[i+1] - signal[i]
	}
	return out
}
