package time

import (
	"math"

	"github.com/cwbudde/algo-biosignal/dsp/core"
	"gonum.org/v1/gonum/stat"
)

// HjorthMinLength is the shortest block with a defined second difference.
const HjorthMinLength = 3

// Hjorth holds the Hjorth parameters of a block.
type Hjorth struct {
	Activity   float64 // var(x)
	Mobility   float64 // sqrt(var(x') / var(x))
	Complexity float64 // mobility(x') / mobility(x)
}

// HjorthParams computes the Hjorth parameters using first differences as
// derivatives. A flat block or a block whose first difference is constant
// has no defined mobility ratio and yields ErrNumericInstability.
func HjorthParams(signal []float64) (Hjorth, error) {
	const op = "hjorth"
	if len(signal) < HjorthMinLength {
		return Hjorth{}, core.Insufficientf(op, "need %d samples, got %d", HjorthMinLength, len(signal))
	}

	d1 := Diff(signal)
	d2 := Diff(d1)
	v0 := stat.PopVariance(signal, nil)
	v1 := stat.PopVariance(d1, nil)
	v2 := stat.PopVariance(d2, nil)
	if v0 == 0 || v1 == 0 {
		return Hjorth{}, core.Instabilityf(op, "zero variance in signal or its derivative")
	}

	mob := math.Sqrt(v1 / v0)
	return Hjorth{
		Activity:   v0,
		Mobility:   mob,
		Complexity: math.Sqrt(v2/v1) / mob,
	}, nil
}
