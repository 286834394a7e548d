package entropy

import (
	"maps"
	"math"
	"slices"
	"sort"

	"github.com/cwbudde/algo-biosignal/dsp/core"
	"gonum.org/v1/gonum/mat"
)

// PermutationMinLength returns the shortest input PermutationEntropy accepts.
func PermutationMinLength(order, delay int) int {
	return (order-1)*delay + 2
}

// PermutationEntropy returns the Shannon entropy (bits) of the ordinal
// patterns of length order. Ties keep their index order. With normalize the
// result is divided by log2(order!).
func PermutationEntropy(x []float64, order, delay int, normalize bool) (float64, error) {
	const op = "entropy.PermutationEntropy"
	if err := checkOrder(op, order, delay); err != nil {
		return 0, err
	}
	if minLen := PermutationMinLength(order, delay); len(x) < minLen {
		return 0, core.Insufficientf(op, "need %d samples for order=%d delay=%d, got %d", minLen, order, delay, len(x))
	}

	n := len(x) - (order-1)*delay
	counts := make(map[int]int)
	idx := make([]int, order)
	for i := 0; i < n; i++ {
		for k := range idx {
			idx[k] = k
		}
		sort.SliceStable(idx, func(a, b int) bool {
			return x[i+idx[a]*delay] < x[i+idx[b]*delay]
		})
		counts[patternCode(idx)]++
	}

	// Summed in pattern order so repeated calls round identically.
	h := 0.0
	for _, code := range slices.Sorted(maps.Keys(counts)) {
		p := float64(counts[code]) / float64(n)
		h += p * math.Log2(1/p)
	}
	if normalize {
		h /= math.Log2(factorial(order))
	}
	return h, nil
}

// SpectralEntropy returns the Shannon entropy (bits) of a power spectrum
// treated as a probability mass. With normalize the result is divided by
// log2 of the bin count.
func SpectralEntropy(power []float64, normalize bool) (float64, error) {
	const op = "entropy.SpectralEntropy"
	if len(power) < 2 {
		return 0, core.Insufficientf(op, "need at least 2 bins, got %d", len(power))
	}

	total := 0.0
	for i, p := range power {
		if p < 0 || !core.IsFinite(p) {
			return 0, core.Configf(op, "bin %d has invalid power %g", i, p)
		}
		total += p
	}
	if total == 0 {
		return 0, core.Instabilityf(op, "spectrum has zero total power")
	}

	h := 0.0
	for _, p := range power {
		if p == 0 {
			continue
		}
		q := p / total
		h += q * math.Log2(1/q)
	}
	if normalize {
		h /= math.Log2(float64(len(power)))
	}
	return h, nil
}

// SVDMinLength returns the shortest input SVDEntropy accepts.
func SVDMinLength(order, delay int) int {
	return (order-1)*delay + order
}

// SVDEntropy returns the Shannon entropy (bits) of the normalized singular
// values of the delay-embedding matrix. With normalize the result is divided
// by log2(order).
func SVDEntropy(x []float64, order, delay int, normalize bool) (float64, error) {
	const op = "entropy.SVDEntropy"
	if err := checkOrder(op, order, delay); err != nil {
		return 0, err
	}
	if minLen := SVDMinLength(order, delay); len(x) < minLen {
		return 0, core.Insufficientf(op, "need %d samples for order=%d delay=%d, got %d", minLen, order, delay, len(x))
	}

	rows := len(x) - (order-1)*delay
	embedded := mat.NewDense(rows, order, nil)
	for i := 0; i < rows; i++ {
		for k := 0; k < order; k++ {
			embedded.Set(i, k, x[i+k*delay])
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(embedded, mat.SVDNone); !ok {
		return 0, core.Instabilityf(op, "SVD factorization failed")
	}
	values := svd.Values(nil)

	total := 0.0
	for _, s := range values {
		total += s
	}
	if total == 0 {
		return 0, core.Instabilityf(op, "embedding matrix is all zeros")
	}

	h := 0.0
	for _, s := range values {
		if s <= 0 {
			continue
		}
		q := s / total
		h += q * math.Log2(1/q)
	}
	if normalize {
		h /= math.Log2(float64(order))
	}
	return h, nil
}

func checkOrder(op string, order, delay int) error {
	if order < 2 {
		return core.ParamError(op, "order", order, "must be >= 2")
	}
	if delay < 1 {
		return core.ParamError(op, "delay", delay, "must be >= 1")
	}
	return nil
}

// patternCode encodes a permutation of 0..len(p)-1 as a base-len(p) integer.
func patternCode(p []int) int {
	code := 0
	for _, v := range p {
		code = code*len(p) + v
	}
	return code
}

func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}
