package spectrum

import (
	"gonum.org/v1/gonum/integrate"

	"github.com/cwbudde/algo-biosignal/dsp/core"
)

// Band is a named frequency range in Hz. Both edges are inclusive.
type Band struct {
	Name string  `yaml:"name"`
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// DefaultBands returns the classic EEG rhythm bands.
func DefaultBands() []Band {
	return []Band{
		{Name: "low", Low: 0, High: 0.5},
		{Name: "delta", Low: 0.5, High: 4},
		{Name: "theta", Low: 4, High: 8},
		{Name: "alpha", Low: 8, High: 12},
		{Name: "beta", Low: 12, High: 30},
	}
}

// Validate rejects negative, non-finite or inverted edges.
func (b Band) Validate() error {
	if !core.IsFinite(b.Low) || b.Low < 0 {
		return core.ParamError("spectrum.Band", b.Name+".low", b.Low, "must be a finite value >= 0")
	}
	if !core.IsFinite(b.High) || b.High <= b.Low {
		return core.ParamError("spectrum.Band", b.Name+".high", b.High, "must be finite and above %g", b.Low)
	}
	return nil
}

// BandPower integrates the power spectral density of psd over [low, high]
// with Simpson's rule. Two bins fall back to the trapezoid rule and a band
// holding fewer bins yields zero.
func BandPower(psd PSD, low, high float64) (float64, error) {
	if err := (Band{Low: low, High: high}).Validate(); err != nil {
		return 0, err
	}

	first, last := -1, -1
	for k, f := range psd.Frequencies {
		if f < low {
			continue
		}
		if f > high {
			break
		}
		if first < 0 {
			first = k
		}
		last = k
	}
	if first < 0 || last-first+1 < 2 {
		return 0, nil
	}

	x := psd.Frequencies[first : last+1]
	density := psd.Density()[first : last+1]
	if len(x) == 2 {
		return integrate.Trapezoidal(x, density), nil
	}
	return integrate.Simpsons(x, density), nil
}

// BandPowers returns BandPower for each band, in order.
func BandPowers(psd PSD, bands []Band) ([]float64, error) {
	out := make([]float64, len(bands))
	for i, b := range bands {
		v, err := BandPower(psd, b.Low, b.High)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
