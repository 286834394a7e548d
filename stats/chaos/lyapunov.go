// Package chaos estimates Lyapunov exponents of a scalar time series: the
// largest exponent with the Rosenstein method and the leading spectrum with
// the Eckmann method.
package chaos

import (
	"math"

	"github.com/cwbudde/algo-biosignal/dsp/core"
	"github.com/cwbudde/algo-biosignal/dsp/spectrum"
	"gonum.org/v1/gonum/stat"
)

// Params configures LargestLyapunov. A zero Lag or MinTimeSep is estimated
// from the data.
type Params struct {
	EmbeddingDim  int `yaml:"embedding_dim"`
	Lag           int `yaml:"lag"`
	MinTimeSep    int `yaml:"min_time_sep"`
	TrajectoryLen int `yaml:"trajectory_len"`
}

// DefaultParams returns embedding dimension 10, trajectory length 20 and
// automatic lag and temporal separation.
func DefaultParams() Params {
	return Params{EmbeddingDim: 10, TrajectoryLen: 20}
}

// Validate reports invalid parameters.
func (p Params) Validate() error {
	const op = "chaos.Params"
	switch {
	case p.EmbeddingDim < 1:
		return core.ParamError(op, "embedding_dim", p.EmbeddingDim, "must be >= 1")
	case p.Lag < 0:
		return core.ParamError(op, "lag", p.Lag, "must be >= 0 (0 selects automatic)")
	case p.MinTimeSep < 0:
		return core.ParamError(op, "min_time_sep", p.MinTimeSep, "must be >= 0 (0 selects automatic)")
	case p.TrajectoryLen < 2:
		return core.ParamError(op, "trajectory_len", p.TrajectoryLen, "must be >= 2")
	}
	return nil
}

// Estimate is the result of LargestLyapunov.
type Estimate struct {
	// Exponent is the divergence rate per sample.
	Exponent   float64
	Lag        int
	MinTimeSep int
	// Divergence holds the mean log distance of neighbour pairs after k
	// steps; -Inf where every pair coincides.
	Divergence []float64
}

// maxTimeSepFraction caps the automatic temporal separation.
const maxTimeSepFraction = 0.25

// LargestLyapunov estimates the largest Lyapunov exponent. The series is
// delay-embedded, every trajectory is paired with its nearest neighbour at
// least MinTimeSep samples away, and the exponent is the least-squares slope
// of the mean log divergence over TrajectoryLen steps.
func LargestLyapunov(x []float64, p Params) (Estimate, error) {
	const op = "chaos.LargestLyapunov"
	if err := p.Validate(); err != nil {
		return Estimate{}, err
	}
	if minLen := (p.EmbeddingDim-1)*max(p.Lag, 1) + p.TrajectoryLen + 1; len(x) < minLen {
		return Estimate{}, core.Insufficientf(op, "need at least %d samples, got %d", minLen, len(x))
	}

	lag := p.Lag
	if lag == 0 {
		lag = autoLag(x, p.EmbeddingDim, p.TrajectoryLen)
	}
	sep := p.MinTimeSep
	if sep == 0 {
		var err error
		if sep, err = autoTimeSep(x); err != nil {
			return Estimate{}, err
		}
	}

	orbit := len(x) - (p.EmbeddingDim-1)*lag
	trajectories := orbit - p.TrajectoryLen + 1
	if trajectories < 2*sep+2 {
		return Estimate{}, core.Insufficientf(op,
			"%d trajectories for lag=%d min_time_sep=%d, need %d", trajectories, lag, sep, 2*sep+2)
	}

	emb := embedding{x: x, dim: p.EmbeddingDim, lag: lag}
	neighbours := make([]int, trajectories)
	for i := range neighbours {
		neighbours[i] = emb.nearest(i, trajectories, sep)
	}

	est := Estimate{Lag: lag, MinTimeSep: sep, Divergence: make([]float64, p.TrajectoryLen)}
	ks := make([]float64, 0, p.TrajectoryLen)
	logs := make([]float64, 0, p.TrajectoryLen)
	for k := range est.Divergence {
		var sum float64
		count := 0
		for i, j := range neighbours {
			d := math.Sqrt(emb.dist2(i+k, j+k, math.Inf(1)))
			if d == 0 {
				continue
			}
			sum += math.Log(d)
			count++
		}
		if count == 0 {
			est.Divergence[k] = math.Inf(-1)
			continue
		}
		est.Divergence[k] = sum / float64(count)
		ks = append(ks, float64(k))
		logs = append(logs, est.Divergence[k])
	}
	if len(ks) < 2 {
		return est, core.Instabilityf(op, "divergence curve has %d finite points", len(ks))
	}

	_, est.Exponent = stat.LinearRegression(ks, logs, nil, false)
	return est, nil
}

type embedding struct {
	x   []float64
	dim int
	lag int
}

// dist2 returns the squared Euclidean distance between embedded points a and
// b, or a value above limit as soon as the partial sum exceeds it.
func (e embedding) dist2(a, b int, limit float64) float64 {
	var sum float64
	for k := 0; k < e.dim; k++ {
		d := e.x[a+k*e.lag] - e.x[b+k*e.lag]
		sum += d * d
		if sum > limit {
			return sum
		}
	}
	return sum
}

// nearest returns the index in [0, n) closest to i with |i-j| > sep.
func (e embedding) nearest(i, n, sep int) int {
	best, bestDist := -1, math.Inf(1)
	for j := 0; j < n; j++ {
		if j >= i-sep && j <= i+sep {
			continue
		}
		if d := e.dist2(i, j, bestDist); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best
}

// autoLag returns the first lag at which the autocorrelation of the
// demeaned series falls below 1-1/e of its zero-lag value. The lag shrinks
// until the embedding leaves at least trajLen points.
func autoLag(x []float64, dim, trajLen int) int {
	mean := stat.Mean(x, nil)
	centered := make([]float64, len(x))
	for i, v := range x {
		centered[i] = v - mean
	}

	r0 := autocorr(centered, 0)
	lag := 1
	if r0 > 0 {
		threshold := r0 * (1 - 1/math.E)
		for k := 1; k < len(x); k++ {
			if autocorr(centered, k) < threshold {
				lag = k
				break
			}
		}
	}
	for lag > 1 && len(x)-(dim-1)*lag < trajLen+1 {
		lag--
	}
	return lag
}

func autocorr(x []float64, k int) float64 {
	var sum float64
	for i := 0; i+k < len(x); i++ {
		sum += x[i] * x[i+k]
	}
	return sum
}

// autoTimeSep returns ceil(1/f) for the magnitude-weighted mean frequency f
// (cycles per sample) of the zero-padded spectrum, capped at a quarter of
// the input length.
func autoTimeSep(x []float64) (int, error) {
	n := len(x)
	padded := make([]float64, 2*n-1)
	copy(padded, x)

	mag, err := spectrum.MagnitudeSpectrum(padded)
	if err != nil {
		return 0, err
	}
	var weighted, total float64
	for k := 1; k < len(mag); k++ {
		weighted += float64(k) / float64(len(padded)) * mag[k]
		total += mag[k]
	}
	if total == 0 {
		return 0, core.Instabilityf("chaos.LargestLyapunov", "spectrum is zero above DC")
	}

	sep := int(math.Ceil(total / weighted))
	return min(sep, int(maxTimeSepFraction*float64(n))), nil
}
