package sim

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/mat"

	"photonic/fock"
	"photonic/qmat"
)

func space(t *testing.T, numModes, maxPhotons int) fock.Space {
	t.Helper()
	s, err := fock.New(numModes, maxPhotons)
	if err != nil {
		t.Fatalf("fock.New(%d, %d): %v", numModes, maxPhotons, err)
	}
	return s
}

func TestPhaseOperatorEmbeddingsAgree(t *testing.T) {
	// The Kronecker fold and the direct diagonal placement are two
	// constructions of the same operator and must agree exactly.
	tcs := []struct {
		numModes   int
		maxPhotons int
		mode       int
		theta      float64
	}{
		{numModes: 1, maxPhotons: 3, mode: 0, theta: math.Pi / 4},
		{numModes: 2, maxPhotons: 3, mode: 0, theta: 0.7},
		{numModes: 2, maxPhotons: 3, mode: 1, theta: -1.3},
		{numModes: 3, maxPhotons: 1, mode: 1, theta: 2.9},
		{numModes: 3, maxPhotons: 2, mode: 2, theta: 0},
	}
	for _, tc := range tcs {
		s := space(t, tc.numModes, tc.maxPhotons)
		kron := PhaseOperator(s, tc.mode, tc.theta)
		diag := phaseDiagonal(s, tc.mode, tc.theta)
		if d := qmat.MaxAbsDiff(kron, diag); d > 1e-15 {
			t.Errorf("space %dx%d mode %d theta %g: embeddings differ by %g",
				tc.numModes, tc.maxPhotons, tc.mode, tc.theta, d)
		}
	}
}

func TestPhaseOperatorDimensions(t *testing.T) {
	s := space(t, 2, 3)
	op := PhaseOperator(s, 1, 0.5)
	r, c := op.Dims()
	if r != s.Dim() || c != s.Dim() {
		t.Errorf("operator dims = %dx%d, want %dx%d", r, c, s.Dim(), s.Dim())
	}
}

func TestPhaseOperatorUnitary(t *testing.T) {
	s := space(t, 2, 2)
	op := PhaseOperator(s, 0, 1.234)
	prod := mat.NewCDense(s.Dim(), s.Dim(), nil)
	cblas128.Gemm(blas.NoTrans, blas.ConjTrans, 1, op.RawCMatrix(), op.RawCMatrix(), 0, prod.RawCMatrix())
	if d := qmat.MaxAbsDiff(prod, qmat.Eye(s.Dim())); d > 1e-14 {
		t.Errorf("op·op† misses identity by %g", d)
	}
}

func TestPhaseOperatorVacuumInvariant(t *testing.T) {
	// The vacuum carries zero photons everywhere, so any phase shift
	// fixes it.
	s := space(t, 2, 3)
	rho := qmat.Vacuum(s.Dim())
	if err := qmat.Conjugate(rho, PhaseOperator(s, 1, 2.2)); err != nil {
		t.Fatal(err)
	}
	if d := qmat.MaxAbsDiff(rho, qmat.Vacuum(s.Dim())); d > 1e-15 {
		t.Errorf("phase shift moved the vacuum by %g", d)
	}
}
