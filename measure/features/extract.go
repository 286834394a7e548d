package features

import (
	"math"

	"github.com/cwbudde/algo-biosignal/dsp/core"
	"github.com/cwbudde/algo-biosignal/dsp/segment"
	"github.com/cwbudde/algo-biosignal/dsp/spectrum"
	"github.com/cwbudde/algo-biosignal/stats/chaos"
	"github.com/cwbudde/algo-biosignal/stats/entropy"
	"github.com/cwbudde/algo-biosignal/stats/fractal"
	"github.com/cwbudde/algo-biosignal/stats/frequency"
	timestats "github.com/cwbudde/algo-biosignal/stats/time"
)

type measureFunc func(f *frame) (float64, error)

// Extractor computes feature vectors for windows of one signal. It holds no
// mutable state and may be shared between goroutines.
type Extractor struct {
	cfg        Config
	sampleRate float64
	schema     Schema
	measures   []measureFunc
}

// NewExtractor validates cfg for sampleRate and fixes the schema.
func NewExtractor(cfg Config, sampleRate float64) (*Extractor, error) {
	if err := cfg.Validate(sampleRate); err != nil {
		return nil, err
	}

	e := &Extractor{cfg: cfg, sampleRate: sampleRate, schema: cfg.Schema()}
	all := e.measureTable()
	e.measures = make([]measureFunc, len(e.schema))
	for i, name := range e.schema {
		e.measures[i] = all[name]
	}
	return e, nil
}

// Schema returns the ordered feature names of every Vector e returns.
func (e *Extractor) Schema() Schema { return e.schema }

// SampleRate returns the rate the extractor was built for.
func (e *Extractor) SampleRate() float64 { return e.sampleRate }

// Extract computes the feature vector of w, estimating the window PSD with
// spectrum.Periodogram.
func (e *Extractor) Extract(w segment.Window) Vector {
	psd, err := spectrum.Periodogram(w.Samples, e.sampleRate)
	return e.extract(w, psd, err)
}

// ExtractWithPSD computes the feature vector of w using a PSD the caller
// already estimated for it.
func (e *Extractor) ExtractWithPSD(w segment.Window, psd spectrum.PSD) Vector {
	return e.extract(w, psd, nil)
}

func (e *Extractor) extract(w segment.Window, psd spectrum.PSD, psdErr error) Vector {
	f := &frame{x: w.Samples, psd: psd, psdErr: psdErr}
	v := Vector{
		Window: w.Index,
		Start:  w.Start,
		Schema: e.schema,
		Values: make([]float64, len(e.schema)),
	}
	for i, m := range e.measures {
		value, err := m(f)
		if err == nil && !core.IsFinite(value) {
			err = core.Instabilityf("features.Extract", "non-finite result %g", value)
		}
		if err != nil {
			v.Values[i] = math.NaN()
			v.setError(e.schema[i], err)
			continue
		}
		v.Values[i] = value
	}
	return v
}

func (e *Extractor) measureTable() map[string]measureFunc {
	cfg := e.cfg
	table := map[string]measureFunc{
		SampleEntropy: func(f *frame) (float64, error) {
			r, err := f.radius(cfg.SampleEntropy.Tolerance)
			if err != nil {
				return 0, err
			}
			return entropy.SampleEntropy(f.x, cfg.SampleEntropy.Order, cfg.SampleEntropy.Delay, r)
		},
		ApproximateEntropy: func(f *frame) (float64, error) {
			r, err := f.radius(cfg.ApproximateEntropy.Tolerance)
			if err != nil {
				return 0, err
			}
			return entropy.ApproximateEntropy(f.x, cfg.ApproximateEntropy.Order, r)
		},
		PermutationEntropy: func(f *frame) (float64, error) {
			p := cfg.PermutationEntropy
			return entropy.PermutationEntropy(f.x, p.Order, p.Delay, p.Normalize)
		},
		SpectralEntropy: func(f *frame) (float64, error) {
			psd, err := f.spectrum()
			if err != nil {
				return 0, err
			}
			return entropy.SpectralEntropy(psd.Power, cfg.SpectralEntropy.Normalize)
		},
		SVDEntropy: func(f *frame) (float64, error) {
			p := cfg.SVDEntropy
			return entropy.SVDEntropy(f.x, p.Order, p.Delay, p.Normalize)
		},
		HiguchiFD: func(f *frame) (float64, error) {
			return fractal.Higuchi(f.x, cfg.Higuchi.Kmax)
		},
		KatzFD: func(f *frame) (float64, error) {
			return fractal.Katz(f.x)
		},
		PetrosianFD: func(f *frame) (float64, error) {
			return fractal.Petrosian(f.x)
		},
		DFAAlpha: func(f *frame) (float64, error) {
			return fractal.DFA(f.x, cfg.DFA)
		},
		LyapunovMax: func(f *frame) (float64, error) {
			est, err := chaos.LargestLyapunov(f.x, cfg.Lyapunov)
			return est.Exponent, err
		},
		LyapunovPositiveCount: func(f *frame) (float64, error) {
			exps, err := chaos.LyapunovSpectrum(f.x, cfg.LyapunovSpectrum)
			return float64(chaos.PositiveCount(exps)), err
		},
		HjorthMobility: func(f *frame) (float64, error) {
			h, err := f.hjorthParams()
			return h.Mobility, err
		},
		HjorthComplexity: func(f *frame) (float64, error) {
			h, err := f.hjorthParams()
			return h.Complexity, err
		},
		SpectralCentroid: func(f *frame) (float64, error) {
			psd, err := f.spectrum()
			if err != nil {
				return 0, err
			}
			return frequency.Centroid(psd.Frequencies, psd.Power)
		},
		SpectralFlatness: func(f *frame) (float64, error) {
			psd, err := f.spectrum()
			if err != nil {
				return 0, err
			}
			return frequency.Flatness(psd.Power)
		},
	}

	for _, b := range cfg.Bands {
		table[BandPowerPrefix+b.Name] = func(f *frame) (float64, error) {
			psd, err := f.spectrum()
			if err != nil {
				return 0, err
			}
			return spectrum.BandPower(psd, b.Low, b.High)
		}
	}

	describe := map[string]func(f *frame) (timestats.Summary, error){
		FFTGroup:       (*frame).fftSummary,
		PSDGroup:       (*frame).psdSummary,
		AmplitudeGroup: (*frame).amplitudeSummary,
	}
	for group, summary := range describe {
		table[group+"_mean"] = func(f *frame) (float64, error) {
			s, err := summary(f)
			return s.Mean, err
		}
		table[group+"_min"] = func(f *frame) (float64, error) {
			s, err := summary(f)
			return s.Min, err
		}
		table[group+"_max"] = func(f *frame) (float64, error) {
			s, err := summary(f)
			return s.Max, err
		}
		table[group+"_std"] = func(f *frame) (float64, error) {
			s, err := summary(f)
			if err == nil && s.Length < 2 {
				err = core.Insufficientf("features.Extract", "%s_std needs 2 values, got %d", group, s.Length)
			}
			return s.SampleStd, err
		}
	}
	return table
}
