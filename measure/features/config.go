package features

import (
	"fmt"
	"math"
	"regexp"

	"github.com/cwbudde/algo-biosignal/dsp/core"
	"github.com/cwbudde/algo-biosignal/dsp/spectrum"
	"github.com/cwbudde/algo-biosignal/stats/chaos"
	"github.com/cwbudde/algo-biosignal/stats/fractal"
)

// TemplateParams configures sample and approximate entropy. The match radius
// is Tolerance times the population standard deviation of the window.
type TemplateParams struct {
	Order     int     `yaml:"order"`
	Tolerance float64 `yaml:"tolerance"`
	Delay     int     `yaml:"delay,omitempty"`
}

// OrdinalParams configures permutation and SVD entropy.
type OrdinalParams struct {
	Order     int  `yaml:"order"`
	Delay     int  `yaml:"delay"`
	Normalize bool `yaml:"normalize"`
}

// SpectralParams configures spectral entropy.
type SpectralParams struct {
	Normalize bool `yaml:"normalize"`
}

// HiguchiParams configures the Higuchi fractal dimension.
type HiguchiParams struct {
	Kmax int `yaml:"kmax"`
}

// Config selects the parameters of every measure and the column set.
type Config struct {
	SampleEntropy      TemplateParams       `yaml:"sample_entropy"`
	ApproximateEntropy TemplateParams       `yaml:"approximate_entropy"`
	PermutationEntropy OrdinalParams        `yaml:"permutation_entropy"`
	SpectralEntropy    SpectralParams       `yaml:"spectral_entropy"`
	SVDEntropy         OrdinalParams        `yaml:"svd_entropy"`
	Higuchi            HiguchiParams        `yaml:"higuchi"`
	DFA                fractal.DFAParams    `yaml:"dfa"`
	Lyapunov           chaos.Params         `yaml:"lyapunov"`
	LyapunovSpectrum   chaos.SpectrumParams `yaml:"lyapunov_spectrum"`
	Bands              []spectrum.Band      `yaml:"bands"`
	// Disable lists feature names to leave out of the schema.
	Disable []string `yaml:"disable,omitempty"`
}

// DefaultConfig returns the default parameters for every measure.
func DefaultConfig() Config {
	return Config{
		SampleEntropy:      TemplateParams{Order: 2, Tolerance: 0.2, Delay: 1},
		ApproximateEntropy: TemplateParams{Order: 2, Tolerance: 0.2},
		PermutationEntropy: OrdinalParams{Order: 3, Delay: 1, Normalize: true},
		SpectralEntropy:    SpectralParams{Normalize: true},
		SVDEntropy:         OrdinalParams{Order: 3, Delay: 1, Normalize: true},
		Higuchi:            HiguchiParams{Kmax: fractal.DefaultKmax},
		DFA:                fractal.DefaultDFAParams(),
		Lyapunov:           chaos.DefaultParams(),
		LyapunovSpectrum:   chaos.DefaultSpectrumParams(),
		Bands:              spectrum.DefaultBands(),
	}
}

var bandNameRE = regexp.MustCompile(`^[a-z0-9_]+$`)

// Validate reports the first invalid parameter for signals sampled at
// sampleRate.
func (c Config) Validate(sampleRate float64) error {
	const op = "features.Config"
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return core.ParamError(op, "sample_rate", sampleRate, "must be a finite value > 0")
	}

	if err := validateTemplate("sample_entropy", c.SampleEntropy, true); err != nil {
		return err
	}
	if err := validateTemplate("approximate_entropy", c.ApproximateEntropy, false); err != nil {
		return err
	}
	if err := validateOrdinal("permutation_entropy", c.PermutationEntropy); err != nil {
		return err
	}
	if err := validateOrdinal("svd_entropy", c.SVDEntropy); err != nil {
		return err
	}
	if c.Higuchi.Kmax < 2 {
		return core.ParamError(op, "higuchi.kmax", c.Higuchi.Kmax, "must be >= 2")
	}
	if err := c.DFA.Validate(); err != nil {
		return fmt.Errorf("dfa: %w", err)
	}
	if err := c.Lyapunov.Validate(); err != nil {
		return fmt.Errorf("lyapunov: %w", err)
	}
	if err := c.LyapunovSpectrum.Validate(); err != nil {
		return fmt.Errorf("lyapunov_spectrum: %w", err)
	}

	nyquist := sampleRate / 2
	seen := make(map[string]bool, len(c.Bands))
	for i, b := range c.Bands {
		if !bandNameRE.MatchString(b.Name) {
			return core.ParamError(op, fmt.Sprintf("bands[%d].name", i), b.Name, "must match %s", bandNameRE)
		}
		if seen[b.Name] {
			return core.ParamError(op, fmt.Sprintf("bands[%d].name", i), b.Name, "duplicate band name")
		}
		seen[b.Name] = true
		if err := b.Validate(); err != nil {
			return err
		}
		if b.High > nyquist {
			return core.ParamError(op, b.Name+".high", b.High, "exceeds the Nyquist frequency %g Hz", nyquist)
		}
	}

	known := make(map[string]bool)
	for _, name := range c.allNames() {
		known[name] = true
	}
	for _, name := range c.Disable {
		if !known[name] {
			return core.ParamError(op, "disable", name, "unknown feature")
		}
	}
	return nil
}

func validateTemplate(measure string, p TemplateParams, withDelay bool) error {
	const op = "features.Config"
	if p.Order < 1 {
		return core.ParamError(op, measure+".order", p.Order, "must be >= 1")
	}
	if !(p.Tolerance > 0) || math.IsInf(p.Tolerance, 0) {
		return core.ParamError(op, measure+".tolerance", p.Tolerance, "must be a finite value > 0")
	}
	if withDelay && p.Delay < 1 {
		return core.ParamError(op, measure+".delay", p.Delay, "must be >= 1")
	}
	return nil
}

func validateOrdinal(measure string, p OrdinalParams) error {
	const op = "features.Config"
	if p.Order < 2 {
		return core.ParamError(op, measure+".order", p.Order, "must be >= 2")
	}
	if p.Delay < 1 {
		return core.ParamError(op, measure+".delay", p.Delay, "must be >= 1")
	}
	return nil
}
