// Package design provides digital IIR filter coefficient designers.
//
// The functions in this package produce biquad coefficients consumable by
// dsp/filter/biquad for runtime processing: RBJ-style second-order lowpass
// and highpass sections, Butterworth cascades built from them, and a
// second-order IIR notch for mains interference.
//
// Designers never panic on bad input. Single-section designers return zero
// Coefficients and cascade designers return nil; callers validate with
// [biquad.Coefficients.IsZero] or a nil check.
package design
