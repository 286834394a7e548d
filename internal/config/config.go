// Package config reads pipeline configuration files.
//
// Files are YAML and decode strictly over pipeline.DefaultConfig: unknown
// keys are an error and omitted keys keep their defaults. Window geometry
// may be given in samples (window_len, stride) or as window_seconds with an
// optional overlap fraction, but not both.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-biosignal/dsp/core"
	"github.com/cwbudde/algo-biosignal/dsp/segment"
	"github.com/cwbudde/algo-biosignal/pipeline"
)

// File is the on-disk layout.
type File struct {
	pipeline.Config `yaml:",inline"`

	WindowSeconds float64  `yaml:"window_seconds,omitempty"`
	Overlap       *float64 `yaml:"overlap,omitempty"`
}

// Load reads and validates the configuration at path for sampleRate.
func Load(path string, sampleRate float64) (pipeline.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Decode(bytes.NewReader(data), sampleRate)
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a configuration from r, resolves window_seconds and
// validates the result. An empty document yields the defaults.
func Decode(r io.Reader, sampleRate float64) (pipeline.Config, error) {
	f := File{Config: pipeline.DefaultConfig(sampleRate)}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return pipeline.Config{}, core.Configf("config", "decode: %v", err)
	}

	cfg, err := f.Resolve(sampleRate)
	if err != nil {
		return pipeline.Config{}, err
	}
	if err := cfg.Validate(sampleRate); err != nil {
		return pipeline.Config{}, err
	}
	return cfg, nil
}

// Resolve converts window_seconds and overlap into sample counts.
func (f File) Resolve(sampleRate float64) (pipeline.Config, error) {
	cfg := f.Config
	if f.WindowSeconds == 0 {
		if f.Overlap != nil {
			return cfg, core.ParamError("config", "overlap", *f.Overlap, "requires window_seconds")
		}
		return cfg, nil
	}

	defaults := pipeline.DefaultConfig(sampleRate)
	if cfg.WindowLen != defaults.WindowLen || cfg.Stride != defaults.Stride {
		return cfg, core.Configf("config", "window_seconds conflicts with window_len/stride")
	}
	overlap := segment.DefaultOverlap
	if f.Overlap != nil {
		overlap = *f.Overlap
	}
	l, s, err := segment.FromDuration(sampleRate, f.WindowSeconds, overlap)
	if err != nil {
		return cfg, err
	}
	cfg.WindowLen, cfg.Stride = l, s
	return cfg, nil
}

// Encode writes cfg as YAML.
func Encode(w io.Writer, cfg pipeline.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
