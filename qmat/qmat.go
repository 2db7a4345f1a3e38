// Package qmat provides the small set of complex-matrix operations needed to
// evolve truncated-Fock-space density matrices: vacuum construction,
// Kronecker embedding, unitary conjugation, traces and scaling.
//
// Matrices are gonum mat.CDense values. The Kronecker product, trace and
// scaling are implemented directly because gonum only ships real-valued
// versions of them.
package qmat

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/mat"
)

// ErrDimensionMismatch indicates an operator/state size disagreement. It
// points at an operator construction bug, not a recoverable condition.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// Vacuum returns a dim×dim density matrix with all probability mass on the
// all-zero-photon basis state.
func Vacuum(dim int) *mat.CDense {
	rho := mat.NewCDense(dim, dim, nil)
	rho.Set(0, 0, 1)
	return rho
}

// Eye returns the n×n complex identity matrix.
func Eye(n int) *mat.CDense {
	m := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// Kron returns the Kronecker product a ⊗ b.
func Kron(a, b *mat.CDense) *mat.CDense {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	out := mat.NewCDense(ar*br, ac*bc, nil)
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			aij := a.At(i, j)
			if aij == 0 {
				continue
			}
			for k := 0; k < br; k++ {
				for l := 0; l < bc; l++ {
					out.Set(i*br+k, j*bc+l, aij*b.At(k, l))
				}
			}
		}
	}
	return out
}

// Conjugate overwrites rho with u·rho·u†. The products run through a scratch
// matrix, so on error rho is left untouched.
func Conjugate(rho, u *mat.CDense) error {
	rr, rc := rho.Dims()
	ur, uc := u.Dims()
	if rr != rc || ur != uc || rr != ur {
		return fmt.Errorf("%w: state is %dx%d, operator is %dx%d", ErrDimensionMismatch, rr, rc, ur, uc)
	}
	// gonum's mat package has no complex-matrix product, so the two
	// multiplications go through cblas128.Gemm directly.
	tmp := mat.NewCDense(rr, rc, nil)
	cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1, u.RawCMatrix(), rho.RawCMatrix(), 0, tmp.RawCMatrix())
	cblas128.Gemm(blas.NoTrans, blas.ConjTrans, 1, tmp.RawCMatrix(), u.RawCMatrix(), 0, rho.RawCMatrix())
	return nil
}

// Trace returns the trace of a square matrix.
func Trace(a *mat.CDense) complex128 {
	r, _ := a.Dims()
	var tr complex128
	for i := 0; i < r; i++ {
		tr += a.At(i, i)
	}
	return tr
}

// Scale multiplies every entry of a by f, in place.
func Scale(f complex128, a *mat.CDense) {
	r, c := a.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			a.Set(i, j, f*a.At(i, j))
		}
	}
}

// Clone returns a deep copy of a.
func Clone(a *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(r, c, nil)
	out.Copy(a)
	return out
}

// IsHermitian reports whether a equals its own conjugate transpose to within
// tol, entrywise.
func IsHermitian(a *mat.CDense, tol float64) bool {
	r, c := a.Dims()
	if r != c {
		return false
	}
	for i := 0; i < r; i++ {
		for j := i; j < c; j++ {
			d := a.At(i, j) - cmplx.Conj(a.At(j, i))
			if math.Abs(real(d)) > tol || math.Abs(imag(d)) > tol {
				return false
			}
		}
	}
	return true
}

// MaxAbsDiff returns the largest entrywise absolute difference between a and
// b, or +Inf if their dimensions disagree.
func MaxAbsDiff(a, b *mat.CDense) float64 {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return math.Inf(1)
	}
	var max float64
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			d := a.At(i, j) - b.At(i, j)
			if abs := cmplx.Abs(d); abs > max {
				max = abs
			}
		}
	}
	return max
}

// AllFinite reports whether every entry of a is free of NaNs and infinities.
func AllFinite(a *mat.CDense) bool {
	r, c := a.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := a.At(i, j)
			if math.IsNaN(real(v)) || math.IsInf(real(v), 0) ||
				math.IsNaN(imag(v)) || math.IsInf(imag(v), 0) {
				return false
			}
		}
	}
	return true
}
