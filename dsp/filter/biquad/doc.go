// Package biquad provides the second-order IIR section runtime used by the
// filter stage.
//
// A [Section] implements Direct Form II Transposed processing for one
// section defined by [Coefficients]. Sections are cascaded via [Chain] for
// higher-order designs. [Chain.PrimeSteadyState] loads the delay lines with
// the state the cascade would settle into under a constant input, which is
// how forward-backward filtering avoids edge transients.
//
// Coefficient design lives in dsp/filter/design.
package biquad
