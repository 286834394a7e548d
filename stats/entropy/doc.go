// Package entropy estimates the regularity of a sampled signal.
//
// Sample and approximate entropy count template matches under the Chebyshev
// distance. Permutation entropy works on ordinal patterns, spectral entropy on
// a power spectrum, and SVD entropy on the singular values of the delay
// embedding. Results are in nats for sample and approximate entropy and
// normalized to [0, 1] for the others when requested.
//
// Every estimator is a pure function of its input. Short inputs return
// core.ErrInsufficientData and undefined logarithms return
// core.ErrNumericInstability.
package entropy
