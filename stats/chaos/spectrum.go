package chaos

import (
	"math"

	"github.com/cwbudde/algo-biosignal/dsp/core"
	"gonum.org/v1/gonum/mat"
)

// SpectrumParams configures LyapunovSpectrum. The local Jacobian is fitted
// in MatrixDim dimensions on a reduced embedding whose sample spacing is
// (EmbeddingDim-1)/(MatrixDim-1).
type SpectrumParams struct {
	EmbeddingDim  int `yaml:"embedding_dim"`
	MatrixDim     int `yaml:"matrix_dim"`
	MinNeighbours int `yaml:"min_neighbours"`
	MinTimeSep    int `yaml:"min_time_sep"`
}

// DefaultSpectrumParams returns embedding dimension 10, a 4x4 Jacobian fitted
// on 8 neighbours and no temporal separation beyond the point itself.
func DefaultSpectrumParams() SpectrumParams {
	return SpectrumParams{EmbeddingDim: 10, MatrixDim: 4, MinNeighbours: 8}
}

// Validate reports invalid parameters.
func (p SpectrumParams) Validate() error {
	const op = "chaos.SpectrumParams"
	switch {
	case p.MatrixDim < 2:
		return core.ParamError(op, "matrix_dim", p.MatrixDim, "must be >= 2")
	case p.EmbeddingDim < p.MatrixDim:
		return core.ParamError(op, "embedding_dim", p.EmbeddingDim, "must be >= matrix_dim (%d)", p.MatrixDim)
	case (p.EmbeddingDim-1)%(p.MatrixDim-1) != 0:
		return core.ParamError(op, "embedding_dim", p.EmbeddingDim,
			"embedding_dim-1 must be a multiple of matrix_dim-1 (%d)", p.MatrixDim-1)
	case p.MinNeighbours < p.MatrixDim:
		return core.ParamError(op, "min_neighbours", p.MinNeighbours, "must be >= matrix_dim (%d)", p.MatrixDim)
	case p.MinTimeSep < 0:
		return core.ParamError(op, "min_time_sep", p.MinTimeSep, "must be >= 0")
	}
	return nil
}

func (p SpectrumParams) step() int { return (p.EmbeddingDim - 1) / (p.MatrixDim - 1) }

// MinLength returns the shortest input LyapunovSpectrum accepts. p must be
// valid.
func (p SpectrumParams) MinLength() int {
	return p.EmbeddingDim - 1 + p.step() + p.MinNeighbours + 2*p.MinTimeSep + 1
}

// LyapunovSpectrum estimates MatrixDim Lyapunov exponents per sample with
// the Eckmann method. Around every point of the delay embedding a linear map
// is fitted by least squares to the MinNeighbours nearest points (Chebyshev
// distance); the maps are chained through QR decompositions and each
// exponent is the mean log of its diagonal entry of R. An exponent whose
// diagonal was never positive is NaN.
func LyapunovSpectrum(x []float64, p SpectrumParams) ([]float64, error) {
	const op = "chaos.LyapunovSpectrum"
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if minLen := p.MinLength(); len(x) < minLen {
		return nil, core.Insufficientf(op, "need at least %d samples, got %d", minLen, len(x))
	}

	d, m := p.MatrixDim, p.step()
	orbit := len(x) - m - p.EmbeddingDim + 1
	emb := embedding{x: x, dim: p.EmbeddingDim, lag: 1}

	jac := mat.NewDense(d, d, nil)
	for r := 0; r < d-1; r++ {
		jac.Set(r, r+1, 1)
	}
	q := mat.NewDense(d, d, nil)
	for r := 0; r < d; r++ {
		q.Set(r, r, 1)
	}

	var (
		diffs = mat.NewDense(p.MinNeighbours, d, nil)
		next  = mat.NewVecDense(p.MinNeighbours, nil)
		beta  mat.VecDense
		prod  mat.Dense
		rmat  mat.Dense
		lsq   mat.QR
		step  mat.QR
	)
	sums := make([]float64, d)
	counts := make([]int, d)
	fitted := 0
	nb := &kNearest{k: p.MinNeighbours}

	for i := 0; i < orbit; i++ {
		emb.kNearestChebyshev(nb, i, orbit, p.MinTimeSep)
		for r, j := range nb.idx {
			for c := 0; c < d; c++ {
				diffs.Set(r, c, x[j+c*m]-x[i+c*m])
			}
			next.SetVec(r, x[j+d*m]-x[i+d*m])
		}
		lsq.Factorize(diffs)
		if err := lsq.SolveVecTo(&beta, false, next); err != nil {
			continue
		}
		fitted++

		for c := 0; c < d; c++ {
			jac.Set(d-1, c, beta.AtVec(c))
		}
		prod.Mul(jac, q)
		step.Factorize(&prod)
		step.QTo(q)
		step.RTo(&rmat)

		for c := 0; c < d; c++ {
			diag := rmat.At(c, c)
			if diag < 0 {
				diag = -diag
				for r := 0; r < d; r++ {
					q.Set(r, c, -q.At(r, c))
				}
			}
			if diag > 0 {
				sums[c] += math.Log(diag)
				counts[c]++
			}
		}
	}
	if fitted == 0 {
		return nil, core.Instabilityf(op, "no neighbourhood of %d points admits a linear fit", orbit)
	}

	exps := make([]float64, d)
	for c := range exps {
		if counts[c] == 0 {
			exps[c] = math.NaN()
			continue
		}
		exps[c] = sums[c] / float64(counts[c]) / float64(m)
	}
	return exps, nil
}

// PositiveCount returns the number of exponents above zero. NaN entries are
// not counted.
func PositiveCount(exps []float64) int {
	n := 0
	for _, e := range exps {
		if e > 0 {
			n++
		}
	}
	return n
}

// kNearest holds the k closest candidates found so far, nearest first. Ties
// keep the lower index.
type kNearest struct {
	k    int
	idx  []int
	dist []float64
}

func (s *kNearest) reset() {
	s.idx, s.dist = s.idx[:0], s.dist[:0]
}

func (s *kNearest) limit() float64 {
	if len(s.idx) < s.k {
		return math.Inf(1)
	}
	return s.dist[len(s.dist)-1]
}

func (s *kNearest) offer(j int, d float64) {
	if d >= s.limit() {
		return
	}
	if len(s.idx) == s.k {
		s.idx, s.dist = s.idx[:s.k-1], s.dist[:s.k-1]
	}
	pos := len(s.idx)
	for pos > 0 && s.dist[pos-1] > d {
		pos--
	}
	s.idx = append(s.idx, 0)
	s.dist = append(s.dist, 0)
	copy(s.idx[pos+1:], s.idx[pos:])
	copy(s.dist[pos+1:], s.dist[pos:])
	s.idx[pos], s.dist[pos] = j, d
}

// kNearestChebyshev fills s with the points in [0, n) closest to i under the
// Chebyshev distance, skipping |i-j| <= sep.
func (e embedding) kNearestChebyshev(s *kNearest, i, n, sep int) {
	s.reset()
	for j := 0; j < n; j++ {
		if j >= i-sep && j <= i+sep {
			continue
		}
		if d := e.chebyshev(i, j, s.limit()); d < s.limit() {
			s.offer(j, d)
		}
	}
}

// chebyshev returns the largest coordinate difference between embedded
// points a and b, or a value at or above limit once one is reached.
func (e embedding) chebyshev(a, b int, limit float64) float64 {
	var worst float64
	for k := 0; k < e.dim; k++ {
		d := math.Abs(e.x[a+k*e.lag] - e.x[b+k*e.lag])
		if d > worst {
			worst = d
			if worst >= limit {
				return worst
			}
		}
	}
	return worst
}
