package features

import "slices"

// Feature names in schema order. Band powers follow SpectralFlatness as
// BandPowerPrefix+band name, then the descriptor groups.
const (
	SampleEntropy         = "sample_entropy"
	ApproximateEntropy    = "approximate_entropy"
	PermutationEntropy    = "permutation_entropy"
	SpectralEntropy       = "spectral_entropy"
	SVDEntropy            = "svd_entropy"
	HiguchiFD             = "higuchi_fd"
	KatzFD                = "katz_fd"
	PetrosianFD           = "petrosian_fd"
	DFAAlpha              = "dfa_alpha"
	LyapunovMax           = "lyapunov_max"
	LyapunovPositiveCount = "lyapunov_positive_count"
	HjorthMobility        = "hjorth_mobility"
	HjorthComplexity      = "hjorth_complexity"
	SpectralCentroid      = "spectral_centroid"
	SpectralFlatness      = "spectral_flatness"

	BandPowerPrefix = "band_power_"
)

// Descriptor groups. Each expands to <group>_mean, _min, _max and _std.
const (
	FFTGroup       = "fft"
	PSDGroup       = "psd"
	AmplitudeGroup = "amplitude"
)

var descriptorStats = []string{"mean", "min", "max", "std"}

// Schema is the ordered list of feature names of a Vector. It is shared
// between vectors and must not be modified.
type Schema []string

// Index returns the column of name, or -1.
func (s Schema) Index(name string) int {
	return slices.Index(s, name)
}

// Equal reports whether s and other name the same columns in the same order.
func (s Schema) Equal(other Schema) bool {
	return slices.Equal(s, other)
}

// allNames returns every feature name c can produce, ignoring Disable.
func (c Config) allNames() []string {
	names := []string{
		SampleEntropy, ApproximateEntropy, PermutationEntropy, SpectralEntropy, SVDEntropy,
		HiguchiFD, KatzFD, PetrosianFD, DFAAlpha, LyapunovMax, LyapunovPositiveCount,
		HjorthMobility, HjorthComplexity, SpectralCentroid, SpectralFlatness,
	}
	for _, b := range c.Bands {
		names = append(names, BandPowerPrefix+b.Name)
	}
	for _, g := range []string{FFTGroup, PSDGroup, AmplitudeGroup} {
		for _, s := range descriptorStats {
			names = append(names, g+"_"+s)
		}
	}
	return names
}

// Schema returns the column set of an Extractor built from c.
func (c Config) Schema() Schema {
	names := c.allNames()
	if len(c.Disable) == 0 {
		return names
	}
	return slices.DeleteFunc(names, func(n string) bool {
		return slices.Contains(c.Disable, n)
	})
}
