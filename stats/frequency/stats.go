// Package frequency computes shape descriptors of a one-sided power
// spectrum given as parallel frequency and power slices.
package frequency

import (
	"math"

	"github.com/cwbudde/algo-biosignal/dsp/core"
)

// MinBins is the shortest spectrum the descriptors accept.
const MinBins = 2

// DefaultRolloff is the energy fraction used by [Calculate].
const DefaultRolloff = 0.85

// Stats holds spectral shape descriptors.
type Stats struct {
	Bins          int
	Total         float64 // summed power
	PeakFrequency float64 // Hz, DC excluded
	Centroid      float64 // power-weighted mean frequency (Hz)
	Spread        float64 // power-weighted standard deviation around the centroid (Hz)
	Flatness      float64 // geometric / arithmetic mean of power, DC excluded, 0..1
	Rolloff       float64 // frequency below which DefaultRolloff of the power lies (Hz)
}

func check(op string, freqs, power []float64) (float64, error) {
	if len(freqs) != len(power) {
		return 0, core.Configf(op, "frequency (%d) and power (%d) lengths differ", len(freqs), len(power))
	}
	if len(power) < MinBins {
		return 0, core.Insufficientf(op, "need %d bins, got %d", MinBins, len(power))
	}
	var total float64
	for _, v := range power {
		total += v
	}
	if !(total > 0) {
		return 0, core.Instabilityf(op, "spectrum has no power")
	}
	return total, nil
}

// Calculate computes every descriptor.
func Calculate(freqs, power []float64) (Stats, error) {
	total, err := check("frequency.Calculate", freqs, power)
	if err != nil {
		return Stats{}, err
	}

	s := Stats{Bins: len(power), Total: total}
	s.Centroid = centroid(freqs, power, total)
	s.Spread = spread(freqs, power, s.Centroid, total)
	s.Flatness = flatness(power)
	s.Rolloff = rolloff(freqs, power, DefaultRolloff, total)

	best := -1.0
	for i := 1; i < len(power); i++ {
		if power[i] > best {
			best, s.PeakFrequency = power[i], freqs[i]
		}
	}
	return s, nil
}

// Centroid returns the spectral centroid in Hz.
//
//	centroid = sum(f_i * P_i) / sum(P_i)
func Centroid(freqs, power []float64) (float64, error) {
	total, err := check("frequency.Centroid", freqs, power)
	if err != nil {
		return 0, err
	}
	return centroid(freqs, power, total), nil
}

func centroid(freqs, power []float64, total float64) float64 {
	var weighted float64
	for i, v := range power {
		weighted += freqs[i] * v
	}
	return weighted / total
}

func spread(freqs, power []float64, cent, total float64) float64 {
	var weighted float64
	for i, v := range power {
		d := freqs[i] - cent
		weighted += d * d * v
	}
	return math.Sqrt(weighted / total)
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1.
//
//	flatness = exp(mean(log(P_i))) / mean(P_i)
//
// The DC bin is excluded. A zero bin makes the geometric mean, and so the
// flatness, zero.
func Flatness(power []float64) (float64, error) {
	const op = "frequency.Flatness"
	if len(power) < MinBins {
		return 0, core.Insufficientf(op, "need %d bins, got %d", MinBins, len(power))
	}
	var sum float64
	for _, v := range power[1:] {
		sum += v
	}
	if !(sum > 0) {
		return 0, core.Instabilityf(op, "spectrum has no power above DC")
	}
	return flatness(power), nil
}

func flatness(power []float64) float64 {
	bins := power[1:]
	var sumLin, sumLog float64
	for _, v := range bins {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}
	n := float64(len(bins))
	meanLin := sumLin / n
	if meanLin == 0 {
		return 0
	}
	return math.Exp(sumLog/n) / meanLin
}

// Rolloff returns the lowest frequency at which the cumulative power reaches
// fraction (0..1] of the total.
func Rolloff(freqs, power []float64, fraction float64) (float64, error) {
	const op = "frequency.Rolloff"
	if !(fraction > 0 && fraction <= 1) {
		return 0, core.ParamError(op, "fraction", fraction, "must be in (0, 1]")
	}
	total, err := check(op, freqs, power)
	if err != nil {
		return 0, err
	}
	return rolloff(freqs, power, fraction, total), nil
}

func rolloff(freqs, power []float64, fraction, total float64) float64 {
	threshold := fraction * total
	var cum float64
	for i, v := range power {
		cum += v
		if cum >= threshold {
			return freqs[i]
		}
	}
	return freqs[len(freqs)-1]
}
