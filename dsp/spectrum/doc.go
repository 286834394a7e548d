// Package spectrum is the spectral estimator of the feature pipeline.
//
// [Periodogram] turns one analysis window into a one-sided power spectrum
// using a periodic Hann taper. [Welch] averages periodograms of overlapping
// segments for whole-signal estimates. [BandPower] integrates the density
// over a frequency band. [RealFFT] dispatches to algo-fft for power-of-two
// lengths and to gonum's mixed-radix transform otherwise, so any window length
// keeps an exact fs/N resolution.
package spectrum
