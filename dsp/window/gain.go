package window

// Gain summarizes how a window scales a spectrum.
type Gain struct {
	// Coherent is sum(w)/N, the amplitude gain for a bin-centered tone.
	Coherent float64
	// PowerSum is sum(w^2), the divisor of a power spectral estimate.
	PowerSum float64
	// ENBW is the equivalent noise bandwidth in bins.
	ENBW float64
}

// Measure computes the gain figures of a coefficient set.
func Measure(coeffs []float64) (Gain, error) {
	if len(coeffs) == 0 {
		return Gain{}, errEmptyCoeffs
	}

	var sum, sumSquares float64
	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}
	if sum == 0 {
		return Gain{}, errZeroCoherentGain
	}

	n := float64(len(coeffs))
	return Gain{
		Coherent: sum / n,
		PowerSum: sumSquares,
		ENBW:     n * sumSquares / (sum * sum),
	}, nil
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	g, err := Measure(coeffs)
	return g.ENBW, err
}
