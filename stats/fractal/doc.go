// Package fractal estimates fractal dimensions and scaling exponents of a
// sampled signal: Higuchi, Katz and Petrosian dimensions and the
// detrended fluctuation analysis exponent.
package fractal
