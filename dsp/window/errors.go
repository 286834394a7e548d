package window

import "github.com/cwbudde/algo-biosignal/dsp/core"

var (
	errEmptyCoeffs      = core.Configf("window", "coefficients must not be empty")
	errZeroCoherentGain = core.Instabilityf("window", "coherent gain is zero")
)

func errMismatchedLength(samples, coeffs int) error {
	return core.Configf("window", "samples (%d) and coefficients (%d) must have same length", samples, coeffs)
}

func validateLength(size int) error {
	if size <= 0 {
		return core.ParamError("window", "size", size, "must be > 0")
	}
	return nil
}

func validateKaiser(size int, beta float64) error {
	if err := validateLength(size); err != nil {
		return err
	}
	if beta < 0 {
		return core.ParamError("window", "beta", beta, "must be >= 0")
	}
	return nil
}

func validateTukey(size int, alpha float64) error {
	if err := validateLength(size); err != nil {
		return err
	}
	if alpha < 0 || alpha > 1 {
		return core.ParamError("window", "alpha", alpha, "must be in [0,1]")
	}
	return nil
}
