// Package features turns analysis windows into fixed-schema feature vectors
// and collects them into a table.
//
// An Extractor computes entropy, fractal, chaos, Hjorth, spectral-shape,
// band-power and descriptive measures for one window. The column order is
// fixed when the Extractor is built and shared by every Vector it returns.
// A measure that cannot be computed on a window (too short, no template
// matches, zero variance) leaves a NaN cell and records the reason in
// Vector.Errors; configuration problems are reported by NewExtractor.
//
// Aggregate validates that all vectors share one schema and orders them by
// window index into a Table.
package features
