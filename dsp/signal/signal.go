// Package signal defines the single-channel sample containers passed through
// the conditioning pipeline, plus deterministic generators for synthetic input.
package signal

import (
	"math"
	"time"

	"github.com/cwbudde/algo-biosignal/dsp/core"
)

// Raw is one recorded channel as supplied by a loader. The pipeline treats it
// as read-only and copies Samples before any transform.
type Raw struct {
	Channel    string
	SampleRate float64 // Hz
	Samples    []float64
	// Start is the wall-clock time of the first sample, zero when unknown.
	Start time.Time
}

// Cleaned is the output of the filter stage. It always has the same channel,
// sample rate, start time and length as the Raw signal it was derived from.
type Cleaned struct {
	raw Raw
}

// Validate checks the input contract: a positive finite sample rate and
// finite samples.
func (r Raw) Validate() error {
	if r.SampleRate <= 0 || !core.IsFinite(r.SampleRate) {
		return core.ParamError("signal", "sample_rate", r.SampleRate, "must be a positive finite number")
	}
	if i := core.FirstNonFinite(r.Samples); i >= 0 {
		return core.Configf("signal", "channel %q: sample %d is not finite", r.Channel, i)
	}
	return nil
}

// Len returns the sample count.
func (r Raw) Len() int { return len(r.Samples) }

// Nyquist returns half the sample rate.
func (r Raw) Nyquist() float64 { return r.SampleRate / 2 }

// Duration returns the recording length.
func (r Raw) Duration() time.Duration {
	if r.SampleRate <= 0 {
		return 0
	}
	return secondsToDuration(float64(len(r.Samples)) / r.SampleRate)
}

// NewCleaned wraps filtered samples with the metadata of the raw signal they
// came from. It is intended for the filter stage; samples must have the raw
// signal's length.
func NewCleaned(from Raw, samples []float64) Cleaned {
	from.Samples = samples
	return Cleaned{raw: from}
}

// Channel returns the channel identifier.
func (c Cleaned) Channel() string { return c.raw.Channel }

// SampleRate returns the sample rate in Hz.
func (c Cleaned) SampleRate() float64 { return c.raw.SampleRate }

// Start returns the recording start time, zero when unknown.
func (c Cleaned) Start() time.Time { return c.raw.Start }

// Len returns the sample count.
func (c Cleaned) Len() int { return len(c.raw.Samples) }

// Samples returns the filtered samples. Callers must not modify the slice.
func (c Cleaned) Samples() []float64 { return c.raw.Samples }

// TimeAt returns the wall-clock time of sample i, or the zero time when the
// recording start is unknown.
func (c Cleaned) TimeAt(i int) time.Time {
	if c.raw.Start.IsZero() || c.raw.SampleRate <= 0 {
		return time.Time{}
	}
	return c.raw.Start.Add(secondsToDuration(float64(i) / c.raw.SampleRate))
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
