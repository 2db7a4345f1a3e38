package sim

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/mat"

	"photonic/fock"
	"photonic/qmat"
)

// An Analysis summarizes the diagnostic view of a circuit's current state.
type Analysis struct {
	// Purity is Re tr(ρ²): 1 for pure states, smaller for mixed ones.
	Purity float64

	// PhotonDistribution holds the first MaxPhotons+1 diagonal entries of
	// the state, the occupation view of the reference mode. Entries are
	// unnormalized once noise has drained trace from the state.
	PhotonDistribution []float64
}

// Analyze computes the purity and photon-number distribution of the
// circuit's current state. It has no side effects and draws no randomness.
func (c *Circuit) Analyze() Analysis {
	return Analysis{
		Purity:             Purity(c.state),
		PhotonDistribution: PhotonDistribution(c.state, c.space),
	}
}

// Purity returns the real part of tr(state²).
func Purity(state *mat.CDense) float64 {
	// gonum's mat package has no complex-matrix product, so the square goes
	// through cblas128.Gemm directly.
	r, c := state.Dims()
	sq := mat.NewCDense(r, c, nil)
	cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1, state.RawCMatrix(), state.RawCMatrix(), 0, sq.RawCMatrix())
	return real(qmat.Trace(sq))
}

// PhotonDistribution returns the real parts of the state's first
// MaxPhotons+1 diagonal entries. This is the leading diagonal block, not a
// traced-out marginal; for multi-mode states it reads the occupation of the
// reference (last) mode with all others at vacuum.
func PhotonDistribution(state *mat.CDense, space fock.Space) []float64 {
	dist := make([]float64, space.PerModeDim())
	for n := range dist {
		dist[n] = real(state.At(n, n))
	}
	return dist
}
