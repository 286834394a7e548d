package features

import (
	"github.com/cwbudde/algo-biosignal/dsp/core"
	"github.com/cwbudde/algo-biosignal/dsp/spectrum"
	timestats "github.com/cwbudde/algo-biosignal/stats/time"
)

// frame caches intermediate results shared by several measures of one
// window. It is confined to a single Extract call.
type frame struct {
	x      []float64
	psd    spectrum.PSD
	psdErr error

	sigma    float64
	sigmaSet bool

	hjorth    timestats.Hjorth
	hjorthErr error
	hjorthSet bool

	fft, power, amplitude          timestats.Summary
	fftErr                         error
	fftSet, powerSet, amplitudeSet bool
}

func (f *frame) spectrum() (spectrum.PSD, error) {
	return f.psd, f.psdErr
}

// radius returns tolerance times the population standard deviation.
func (f *frame) radius(tolerance float64) (float64, error) {
	if !f.sigmaSet {
		f.sigma = timestats.StdDev(f.x)
		f.sigmaSet = true
	}
	if len(f.x) == 0 {
		return 0, core.Insufficientf("features.Extract", "empty window")
	}
	if f.sigma == 0 {
		return 0, core.Instabilityf("features.Extract", "zero variance, tolerance radius is 0")
	}
	return tolerance * f.sigma, nil
}

func (f *frame) hjorthParams() (timestats.Hjorth, error) {
	if !f.hjorthSet {
		f.hjorth, f.hjorthErr = timestats.HjorthParams(f.x)
		f.hjorthSet = true
	}
	return f.hjorth, f.hjorthErr
}

func (f *frame) fftSummary() (timestats.Summary, error) {
	if !f.fftSet {
		var mag []float64
		mag, f.fftErr = spectrum.MagnitudeSpectrum(f.x)
		if f.fftErr == nil {
			f.fft = timestats.Describe(mag)
		}
		f.fftSet = true
	}
	return f.fft, f.fftErr
}

func (f *frame) psdSummary() (timestats.Summary, error) {
	if f.psdErr != nil {
		return timestats.Summary{}, f.psdErr
	}
	if !f.powerSet {
		f.power = timestats.Describe(f.psd.Power)
		f.powerSet = true
	}
	return f.power, nil
}

func (f *frame) amplitudeSummary() (timestats.Summary, error) {
	if len(f.x) == 0 {
		return timestats.Summary{}, core.Insufficientf("features.Extract", "empty window")
	}
	if !f.amplitudeSet {
		f.amplitude = timestats.Describe(timestats.Abs(f.x))
		f.amplitudeSet = true
	}
	return f.amplitude, nil
}
