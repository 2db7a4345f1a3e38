package sim

import (
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"photonic/fock"
	"photonic/qmat"
)

// PhaseOperator returns the composite-space unitary applying a phase shift
// of theta radians to the given mode: the single-mode diagonal exp(i·theta·n)
// tensored with the identity on every other mode.
func PhaseOperator(space fock.Space, mode int, theta float64) *mat.CDense {
	single := singleModePhase(space, theta)
	op := mat.NewCDense(1, 1, []complex128{1})
	for m := 0; m < space.NumModes; m++ {
		if m == mode {
			op = qmat.Kron(op, single)
		} else {
			op = qmat.Kron(op, qmat.Eye(space.PerModeDim()))
		}
	}
	return op
}

// singleModePhase returns the per-mode phase operator, diagonal with entries
// exp(i·theta·n) for photon numbers n = 0..MaxPhotons.
func singleModePhase(space fock.Space, theta float64) *mat.CDense {
	d := space.PerModeDim()
	op := mat.NewCDense(d, d, nil)
	for n := 0; n < d; n++ {
		op.Set(n, n, cmplx.Exp(complex(0, theta*float64(n))))
	}
	return op
}

// phaseDiagonal builds the same operator as PhaseOperator by placing
// exp(i·theta·n) directly on the composite diagonal, reading each basis
// index's photon number for the mode. The two constructions must agree
// exactly; tests rely on that.
func phaseDiagonal(space fock.Space, mode int, theta float64) *mat.CDense {
	dim := space.Dim()
	op := mat.NewCDense(dim, dim, nil)
	for i := 0; i < dim; i++ {
		n := space.PhotonNumber(i, mode)
		op.Set(i, i, cmplx.Exp(complex(0, theta*float64(n))))
	}
	return op
}
