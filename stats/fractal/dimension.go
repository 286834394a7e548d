package fractal

import (
	"math"

	"github.com/cwbudde/algo-biosignal/dsp/core"
	"gonum.org/v1/gonum/stat"
)

// DefaultKmax is the largest Higuchi interval used by the feature extractor.
const DefaultKmax = 10

// MinLength is the shortest input Katz and Petrosian accept.
const MinLength = 3

// HiguchiMinLength returns the shortest input Higuchi accepts for kmax.
func HiguchiMinLength(kmax int) int {
	return 2 * kmax
}

// Higuchi returns the Higuchi fractal dimension: the negated slope of
// log L(k) against log k for curve lengths L(k), k = 1..kmax.
func Higuchi(x []float64, kmax int) (float64, error) {
	const op = "fractal.Higuchi"
	if kmax < 2 {
		return 0, core.ParamError(op, "kmax", kmax, "must be >= 2")
	}
	if minLen := HiguchiMinLength(kmax); len(x) < minLen {
		return 0, core.Insufficientf(op, "need %d samples for kmax=%d, got %d", minLen, kmax, len(x))
	}

	n := len(x)
	logK := make([]float64, 0, kmax)
	logL := make([]float64, 0, kmax)
	for k := 1; k <= kmax; k++ {
		var sum float64
		for m := 0; m < k; m++ {
			steps := (n - m - 1) / k
			var length float64
			for j := 1; j <= steps; j++ {
				length += math.Abs(x[m+j*k] - x[m+(j-1)*k])
			}
			sum += length * float64(n-1) / float64(steps*k) / float64(k)
		}
		lk := sum / float64(k)
		if lk <= 0 {
			return 0, core.Instabilityf(op, "curve length is zero at k=%d", k)
		}
		logK = append(logK, math.Log(1/float64(k)))
		logL = append(logL, math.Log(lk))
	}

	_, slope := stat.LinearRegression(logK, logL, nil, false)
	return slope, nil
}

// Katz returns the Katz fractal dimension log10(n) / (log10(n) + log10(d/L)),
// where L is the total curve length, d the largest distance from the first
// sample and n the number of steps.
func Katz(x []float64) (float64, error) {
	const op = "fractal.Katz"
	if len(x) < MinLength {
		return 0, core.Insufficientf(op, "need %d samples, got %d", MinLength, len(x))
	}

	var total, extent float64
	for i := 1; i < len(x); i++ {
		total += math.Abs(x[i] - x[i-1])
		extent = math.Max(extent, math.Abs(x[i]-x[0]))
	}
	if total == 0 || extent == 0 {
		return 0, core.Instabilityf(op, "signal is constant")
	}

	steps := math.Log10(float64(len(x) - 1))
	return steps / (steps + math.Log10(extent/total)), nil
}

// Petrosian returns the Petrosian fractal dimension computed from the number
// of sign changes in the first difference.
func Petrosian(x []float64) (float64, error) {
	const op = "fractal.Petrosian"
	if len(x) < MinLength {
		return 0, core.Insufficientf(op, "need %d samples, got %d", MinLength, len(x))
	}

	changes := 0
	prev := x[1] - x[0]
	for i := 2; i < len(x); i++ {
		d := x[i] - x[i-1]
		if d*prev < 0 {
			changes++
		}
		prev = d
	}

	n := float64(len(x))
	logN := math.Log10(n)
	return logN / (logN + math.Log10(n/(n+0.4*float64(changes)))), nil
}
