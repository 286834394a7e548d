package fractal

import (
	"math"

	"github.com/cwbudde/algo-biosignal/dsp/core"
	"gonum.org/v1/gonum/stat"
)

// Box-size defaults for DFA: sizes grow geometrically by DefaultBoxFactor
// from DefaultMinBox up to DefaultMaxBoxFraction of the input length.
const (
	DefaultMinBox         = 4
	DefaultMaxBoxFraction = 0.1
	DefaultBoxFactor      = 1.2
)

// DFAParams selects the box sizes of a detrended fluctuation analysis.
type DFAParams struct {
	MinBox         int     `yaml:"min_box"`
	MaxBoxFraction float64 `yaml:"max_box_fraction"`
	Factor         float64 `yaml:"factor"`
}

// DefaultDFAParams returns box sizes 4 ... 0.1*N growing by 1.2.
func DefaultDFAParams() DFAParams {
	return DFAParams{
		MinBox:         DefaultMinBox,
		MaxBoxFraction: DefaultMaxBoxFraction,
		Factor:         DefaultBoxFactor,
	}
}

// Validate reports invalid box parameters.
func (p DFAParams) Validate() error {
	const op = "fractal.DFAParams"
	switch {
	case p.MinBox < 2:
		return core.ParamError(op, "min_box", p.MinBox, "must be >= 2")
	case !(p.MaxBoxFraction > 0 && p.MaxBoxFraction <= 1):
		return core.ParamError(op, "max_box_fraction", p.MaxBoxFraction, "must lie in (0, 1]")
	case !(p.Factor > 1) || math.IsInf(p.Factor, 0):
		return core.ParamError(op, "factor", p.Factor, "must be a finite value > 1")
	}
	return nil
}

// BoxSizes returns the distinct integer box sizes for an input of length n.
// The sequence is floor(MinBox * Factor^i) for i = 0.. while it stays at or
// below MaxBoxFraction*n.
func (p DFAParams) BoxSizes(n int) []int {
	maxBox := p.MaxBoxFraction * float64(n)
	if maxBox <= float64(p.MinBox) {
		return nil
	}
	steps := int(math.Floor(math.Log(maxBox/float64(p.MinBox)) / math.Log(p.Factor)))
	sizes := []int{p.MinBox}
	for i := 0; i <= steps; i++ {
		s := int(math.Floor(float64(p.MinBox) * math.Pow(p.Factor, float64(i))))
		if s > sizes[len(sizes)-1] {
			sizes = append(sizes, s)
		}
	}
	return sizes
}

// DFA returns the detrended fluctuation analysis exponent alpha. The
// integrated profile is split into non-overlapping boxes, each box is
// detrended by a least-squares line, and alpha is the slope of log F(n)
// against log n. White noise gives about 0.5, a random walk about 1.5.
func DFA(x []float64, p DFAParams) (float64, error) {
	const op = "fractal.DFA"
	if err := p.Validate(); err != nil {
		return 0, err
	}
	sizes := p.BoxSizes(len(x))
	if len(sizes) < 2 {
		return 0, core.Insufficientf(op, "%d samples give %d box sizes, need 2", len(x), len(sizes))
	}

	profile := make([]float64, len(x))
	mean := stat.Mean(x, nil)
	var acc float64
	for i, v := range x {
		acc += v - mean
		profile[i] = acc
	}

	logN := make([]float64, 0, len(sizes))
	logF := make([]float64, 0, len(sizes))
	for _, n := range sizes {
		f := fluctuation(profile, n)
		if f <= 0 || math.IsNaN(f) {
			continue
		}
		logN = append(logN, math.Log(float64(n)))
		logF = append(logF, math.Log(f))
	}
	if len(logN) < 2 {
		return 0, core.Instabilityf(op, "fluctuation is zero for all but %d box sizes", len(logN))
	}

	_, alpha := stat.LinearRegression(logN, logF, nil, false)
	return alpha, nil
}

// fluctuation returns the root mean square residual of the profile after a
// linear fit per box of length n.
func fluctuation(profile []float64, n int) float64 {
	boxes := len(profile) / n
	t := make([]float64, n)
	for i := range t {
		t[i] = float64(i)
	}

	var sum float64
	for b := 0; b < boxes; b++ {
		seg := profile[b*n : (b+1)*n]
		intercept, slope := stat.LinearRegression(t, seg, nil, false)
		for i, v := range seg {
			r := v - (intercept + slope*t[i])
			sum += r * r
		}
	}
	return math.Sqrt(sum / float64(boxes*n))
}
