package entropy

import (
	"math"

	"github.com/cwbudde/algo-biosignal/dsp/core"
)

// SampleMinLength returns the shortest input SampleEntropy accepts for
// embedding dimension m: the larger of 10^m and m+2. Lengths that do not
// fit an int saturate at math.MaxInt.
func SampleMinLength(m int) int {
	p := math.Pow(10, float64(m))
	if p >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return max(int(p), m+2)
}

// SampleEntropy returns -ln(A/B), where B counts pairs of length-m templates
// within Chebyshev distance r and A counts the same pairs extended to m+1.
// Self-matches are excluded and both counts use the same N-m*delay
// templates. No A or B matches yield ErrNumericInstability.
func SampleEntropy(x []float64, m, delay int, r float64) (float64, error) {
	const op = "entropy.SampleEntropy"
	if err := checkEmbedding(op, m, delay); err != nil {
		return 0, err
	}
	if r < 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, core.ParamError(op, "r", r, "must be a finite value >= 0")
	}
	if minLen := SampleMinLength(m); len(x) < minLen {
		return 0, core.Insufficientf(op, "need %d samples for m=%d, got %d", minLen, m, len(x))
	}

	templates := len(x) - m*delay
	var a, b int
	for i := 0; i < templates-1; i++ {
		for j := i + 1; j < templates; j++ {
			k := 0
			for ; k < m; k++ {
				if math.Abs(x[i+k*delay]-x[j+k*delay]) > r {
					break
				}
			}
			if k < m {
				continue
			}
			b++
			if math.Abs(x[i+m*delay]-x[j+m*delay]) <= r {
				a++
			}
		}
	}

	if a == 0 || b == 0 {
		return 0, core.Instabilityf(op, "no template matches (A=%d, B=%d) at r=%g", a, b, r)
	}
	return -math.Log(float64(a) / float64(b)), nil
}

// ApproximateMinLength returns the shortest input ApproximateEntropy accepts.
func ApproximateMinLength(m int) int {
	return m + 2
}

// ApproximateEntropy returns phi(m) - phi(m+1), where phi(k) is the mean log
// fraction of length-k templates within Chebyshev distance r of each
// template, self-matches included.
func ApproximateEntropy(x []float64, m int, r float64) (float64, error) {
	const op = "entropy.ApproximateEntropy"
	if err := checkEmbedding(op, m, 1); err != nil {
		return 0, err
	}
	if r < 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, core.ParamError(op, "r", r, "must be a finite value >= 0")
	}
	if minLen := ApproximateMinLength(m); len(x) < minLen {
		return 0, core.Insufficientf(op, "need %d samples for m=%d, got %d", minLen, m, len(x))
	}

	return apPhi(x, m, r) - apPhi(x, m+1, r), nil
}

func apPhi(x []float64, m int, r float64) float64 {
	n := len(x) - m + 1
	counts := make([]int, n)
	for i := 0; i < n; i++ {
		counts[i]++ // self-match
		for j := i + 1; j < n; j++ {
			match := true
			for k := 0; k < m; k++ {
				if math.Abs(x[i+k]-x[j+k]) > r {
					match = false
					break
				}
			}
			if match {
				counts[i]++
				counts[j]++
			}
		}
	}

	var phi float64
	for _, c := range counts {
		phi += math.Log(float64(c) / float64(n))
	}
	return phi / float64(n)
}

func checkEmbedding(op string, m, delay int) error {
	if m < 1 {
		return core.ParamError(op, "m", m, "must be >= 1")
	}
	if delay < 1 {
		return core.ParamError(op, "delay", delay, "must be >= 1")
	}
	return nil
}
