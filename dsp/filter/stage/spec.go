package stage

import (
	"fmt"

	"github.com/cwbudde/algo-biosignal/dsp/core"
	"github.com/cwbudde/algo-biosignal/dsp/filter/biquad"
	"github.com/cwbudde/algo-biosignal/dsp/filter/design"
)

// Kind names a filter shape.
type Kind string

const (
	Bandpass Kind = "bandpass"
	Lowpass  Kind = "lowpass"
	Highpass Kind = "highpass"
	Notch    Kind = "notch"
)

// Spec describes one filter of the conditioning chain. Which fields apply
// depends on Kind:
//
//	bandpass  Low, High, Order
//	lowpass   Cutoff, Order
//	highpass  Cutoff, Order
//	notch     Center, Q
type Spec struct {
	Kind   Kind    `yaml:"kind"`
	Low    float64 `yaml:"low,omitempty"`
	High   float64 `yaml:"high,omitempty"`
	Cutoff float64 `yaml:"cutoff,omitempty"`
	Center float64 `yaml:"center,omitempty"`
	Q      float64 `yaml:"q,omitempty"`
	Order  int     `yaml:"order,omitempty"`
}

// DefaultSpecs returns the standard conditioning chain: a 60 Hz mains notch
// followed by a 0.05-32 Hz fourth-order band-pass.
func DefaultSpecs() []Spec {
	return []Spec{
		{Kind: Notch, Center: 60, Q: 10},
		{Kind: Bandpass, Low: 0.05, High: 32, Order: 4},
	}
}

func (s Spec) String() string {
	switch s.Kind {
	case Bandpass:
		return fmt.Sprintf("bandpass %g-%g Hz order %d", s.Low, s.High, s.Order)
	case Lowpass, Highpass:
		return fmt.Sprintf("%s %g Hz order %d", s.Kind, s.Cutoff, s.Order)
	case Notch:
		return fmt.Sprintf("notch %g Hz Q %g", s.Center, s.Q)
	default:
		return fmt.Sprintf("filter kind %q", string(s.Kind))
	}
}

// Validate checks s against the sample rate. Parameters are never clamped:
// any missing, non-finite or out-of-range value is an ErrConfiguration.
func (s Spec) Validate(sampleRate float64) error {
	const op = "stage.Validate"
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return core.ParamError(op, "sample_rate", sampleRate, "must be a positive finite number")
	}
	nyq := sampleRate / 2

	switch s.Kind {
	case Bandpass:
		if err := checkFreq(op, "low", s.Low, nyq); err != nil {
			return err
		}
		if err := checkFreq(op, "high", s.High, nyq); err != nil {
			return err
		}
		if s.Low >= s.High {
			return core.ParamError(op, "low", s.Low, "must be below high edge %g Hz", s.High)
		}
		return checkOrder(op, s.Order)
	case Lowpass, Highpass:
		if err := checkFreq(op, "cutoff", s.Cutoff, nyq); err != nil {
			return err
		}
		return checkOrder(op, s.Order)
	case Notch:
		if err := checkFreq(op, "center", s.Center, nyq); err != nil {
			return err
		}
		if s.Q <= 0 || !core.IsFinite(s.Q) {
			return core.ParamError(op, "q", s.Q, "must be a positive finite number")
		}
		return nil
	case "":
		return core.Configf(op, "filter kind is required")
	default:
		return core.ParamError(op, "kind", string(s.Kind), "unknown filter kind")
	}
}

// Design validates s and returns its biquad cascade. Unstable designs, which
// can appear for very narrow bands at high sample rates, are reported as
// ErrNumericInstability.
func (s Spec) Design(sampleRate float64) ([]biquad.Coefficients, error) {
	if err := s.Validate(sampleRate); err != nil {
		return nil, err
	}

	var coeffs []biquad.Coefficients
	switch s.Kind {
	case Bandpass:
		coeffs = design.ButterworthBandpass(s.Low, s.High, s.Order, sampleRate)
	case Lowpass:
		coeffs = design.ButterworthLP(s.Cutoff, s.Order, sampleRate)
	case Highpass:
		coeffs = design.ButterworthHP(s.Cutoff, s.Order, sampleRate)
	case Notch:
		if c := design.Notch(s.Center, s.Q, sampleRate); !c.IsZero() {
			coeffs = []biquad.Coefficients{c}
		}
	}
	if len(coeffs) == 0 {
		return nil, core.Configf("stage.Design", "%s: design failed", s)
	}
	if !biquad.NewChain(coeffs).Stable() {
		return nil, core.Instabilityf("stage.Design", "%s: cascade has poles on or outside the unit circle", s)
	}
	return coeffs, nil
}

func checkFreq(op, name string, f, nyquist float64) error {
	if !core.IsFinite(f) || f <= 0 || f >= nyquist {
		return core.ParamError(op, name, f, "must lie strictly inside (0, %g) Hz", nyquist)
	}
	return nil
}

func checkOrder(op string, order int) error {
	if order < 1 || order > design.MaxOrder {
		return core.ParamError(op, "order", order, "must be in [1, %d]", design.MaxOrder)
	}
	return nil
}
