// Package stage is the filter stage of the conditioning pipeline: it applies
// an ordered list of zero-phase filters to a raw channel.
package stage

import (
	"fmt"

	"github.com/cwbudde/algo-biosignal/dsp/core"
	"github.com/cwbudde/algo-biosignal/dsp/filter/zerophase"
	"github.com/cwbudde/algo-biosignal/dsp/signal"
)

// Chain is a validated, designed filter sequence for one sample rate.
type Chain struct {
	specs   []Spec
	filters []*zerophase.Filter
	rate    float64
}

// Build validates every spec and designs its cascade. No filter is designed
// unless all specs are valid.
func Build(specs []Spec, sampleRate float64) (*Chain, error) {
	for i, s := range specs {
		if err := s.Validate(sampleRate); err != nil {
			return nil, fmt.Errorf("filter %d: %w", i, err)
		}
	}

	c := &Chain{specs: append([]Spec(nil), specs...), rate: sampleRate}
	for i, s := range specs {
		coeffs, err := s.Design(sampleRate)
		if err != nil {
			return nil, fmt.Errorf("filter %d: %w", i, err)
		}
		f, err := zerophase.New(coeffs)
		if err != nil {
			return nil, fmt.Errorf("filter %d: %w", i, err)
		}
		c.filters = append(c.filters, f)
	}
	return c, nil
}

// Specs returns a copy of the filter specs in application order.
func (c *Chain) Specs() []Spec { return append([]Spec(nil), c.specs...) }

// SampleRate returns the rate the chain was designed for.
func (c *Chain) SampleRate() float64 { return c.rate }

// ResponseDB returns the magnitude response of the whole chain at freqHz.
func (c *Chain) ResponseDB(freqHz float64) float64 {
	var db float64
	for _, f := range c.filters {
		db += f.MagnitudeDB(freqHz, c.rate)
	}
	return db
}

// Filters returns the designed zero-phase filters in application order.
func (c *Chain) Filters() []*zerophase.Filter {
	return append([]*zerophase.Filter(nil), c.filters...)
}

// MinLength returns the shortest signal every filter of the chain accepts.
func (c *Chain) MinLength() int {
	n := 0
	for _, f := range c.filters {
		n = max(n, f.MinLength())
	}
	return n
}

// Filter runs every filter in order over a copy of samples.
func (c *Chain) Filter(samples []float64) ([]float64, error) {
	if n := c.MinLength(); len(samples) < n {
		return nil, core.Insufficientf("stage.Apply",
			"signal has %d samples, filter chain needs at least %d", len(samples), n)
	}

	out := append([]float64(nil), samples...)
	for i, f := range c.filters {
		y, err := f.Apply(out)
		if err != nil {
			return nil, fmt.Errorf("filter %d (%s): %w", i, c.specs[i], err)
		}
		out = y
	}
	return out, nil
}

// Apply validates raw and specs, then filters raw with each spec in order.
// An empty spec list returns an unfiltered copy.
func Apply(raw signal.Raw, specs []Spec) (signal.Cleaned, error) {
	if err := raw.Validate(); err != nil {
		return signal.Cleaned{}, err
	}
	c, err := Build(specs, raw.SampleRate)
	if err != nil {
		return signal.Cleaned{}, err
	}
	return c.Apply(raw)
}

// Apply filters raw, which must have the chain's sample rate.
func (c *Chain) Apply(raw signal.Raw) (signal.Cleaned, error) {
	if raw.SampleRate != c.rate {
		return signal.Cleaned{}, core.ParamError("stage.Apply", "sample_rate", raw.SampleRate,
			"chain was designed for %g Hz", c.rate)
	}
	out, err := c.Filter(raw.Samples)
	if err != nil {
		return signal.Cleaned{}, err
	}
	return signal.NewCleaned(raw, out), nil
}
