// Package segment splits a cleaned signal into fixed-length, possibly
// overlapping analysis windows.
package segment

import (
	"math"

	"github.com/cwbudde/algo-biosignal/dsp/core"
)

// Default window geometry: one-minute windows overlapping by one third.
const (
	DefaultWindowSeconds = 60.0
	DefaultOverlap       = 1.0 / 3.0
)

// Window is one analysis segment. Samples is a view into the segmented
// signal and must be treated as read-only.
type Window struct {
	Index   int
	Start   int // sample offset of the first sample
	Samples []float64
}

// Len returns the window length in samples.
func (w Window) Len() int { return len(w.Samples) }

// End returns the offset one past the last sample.
func (w Window) End() int { return w.Start + len(w.Samples) }

// Time returns the window start in seconds.
func (w Window) Time(sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return float64(w.Start) / sampleRate
}

// Count returns how many complete windows of length windowLen with the given
// stride fit in n samples. Invalid geometry yields 0.
func Count(n, windowLen, stride int) int {
	if windowLen <= 0 || stride <= 0 || windowLen > n {
		return 0
	}
	return (n-windowLen)/stride + 1
}

// Validate checks window geometry without looking at any data.
func Validate(windowLen, stride int) error {
	const op = "segment"
	if windowLen <= 0 {
		return core.ParamError(op, "window_len", windowLen, "must be positive")
	}
	if stride <= 0 || stride > windowLen {
		return core.ParamError(op, "stride", stride, "must be in (0, %d]", windowLen)
	}
	return nil
}

// Segment cuts samples into windows [i*stride, i*stride+windowLen). The
// trailing partial window is dropped. A signal shorter than one window is
// an ErrInsufficientData error; it is never truncated or padded.
func Segment(samples []float64, windowLen, stride int) ([]Window, error) {
	if err := Validate(windowLen, stride); err != nil {
		return nil, err
	}
	n := Count(len(samples), windowLen, stride)
	if n == 0 {
		return nil, core.Insufficientf("segment",
			"signal has %d samples, window needs %d", len(samples), windowLen)
	}

	windows := make([]Window, n)
	for i := range windows {
		start := i * stride
		windows[i] = Window{
			Index:   i,
			Start:   start,
			Samples: samples[start : start+windowLen : start+windowLen],
		}
	}
	return windows, nil
}

// FromDuration converts a window duration and an overlap fraction in [0, 1)
// into a window length and stride in samples.
func FromDuration(sampleRate, seconds, overlap float64) (windowLen, stride int, err error) {
	const op = "segment.FromDuration"
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return 0, 0, core.ParamError(op, "sample_rate", sampleRate, "must be a positive finite number")
	}
	if seconds <= 0 || !core.IsFinite(seconds) {
		return 0, 0, core.ParamError(op, "window_seconds", seconds, "must be a positive finite number")
	}
	if overlap < 0 || overlap >= 1 || math.IsNaN(overlap) {
		return 0, 0, core.ParamError(op, "overlap", overlap, "must be in [0, 1)")
	}

	windowLen = int(math.Round(seconds * sampleRate))
	stride = int(math.Round(float64(windowLen) * (1 - overlap)))
	if windowLen < 1 {
		return 0, 0, core.ParamError(op, "window_seconds", seconds, "shorter than one sample at %g Hz", sampleRate)
	}
	stride = max(stride, 1)
	return windowLen, stride, nil
}
