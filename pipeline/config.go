package pipeline

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-biosignal/dsp/core"
	"github.com/cwbudde/algo-biosignal/dsp/filter/stage"
	"github.com/cwbudde/algo-biosignal/dsp/segment"
	"github.com/cwbudde/algo-biosignal/measure/features"
)

// DefaultWelchSegmentLen is the segment length of the whole-signal Welch
// estimate. Segments overlap by half.
const DefaultWelchSegmentLen = 256

// Config is the complete, validated-up-front description of a run.
type Config struct {
	Filters   []stage.Spec `yaml:"filters"`
	WindowLen int          `yaml:"window_len"`
	Stride    int          `yaml:"stride"`
	// Workers bounds the window worker pool; 0 selects GOMAXPROCS.
	Workers int `yaml:"workers"`
	// WelchSegmentLen of 0 estimates the whole-signal PSD with a single
	// periodogram.
	WelchSegmentLen int             `yaml:"welch_segment_len"`
	Features        features.Config `yaml:"features"`
}

// DefaultConfig returns the default filter chain and feature set with
// one-minute windows overlapping by one third at sampleRate. A sample rate
// too low for a one-minute window leaves WindowLen zero, which Validate
// rejects.
func DefaultConfig(sampleRate float64) Config {
	cfg := Config{
		Filters:         stage.DefaultSpecs(),
		WelchSegmentLen: DefaultWelchSegmentLen,
		Features:        features.DefaultConfig(),
	}
	if l, s, err := segment.FromDuration(sampleRate, segment.DefaultWindowSeconds, segment.DefaultOverlap); err == nil {
		cfg.WindowLen, cfg.Stride = l, s
	}
	return cfg
}

// Validate reports every configuration problem detectable without data,
// starting with the filters.
func (c Config) Validate(sampleRate float64) error {
	const op = "pipeline.Config"
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return core.ParamError(op, "sample_rate", sampleRate, "must be a finite value > 0")
	}
	for i, s := range c.Filters {
		if err := s.Validate(sampleRate); err != nil {
			return fmt.Errorf("filter %d: %w", i, err)
		}
	}
	if err := segment.Validate(c.WindowLen, c.Stride); err != nil {
		return err
	}
	if c.Workers < 0 {
		return core.ParamError(op, "workers", c.Workers, "must be >= 0")
	}
	if c.WelchSegmentLen < 0 || c.WelchSegmentLen == 1 {
		return core.ParamError(op, "welch_segment_len", c.WelchSegmentLen, "must be 0 or >= 2")
	}
	if err := c.Features.Validate(sampleRate); err != nil {
		return fmt.Errorf("features: %w", err)
	}
	return nil
}
