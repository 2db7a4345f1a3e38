package sim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"photonic/fock"
	"photonic/qmat"
)

// Phase-space sampling region, symmetric in x and p.
const (
	wignerMin = -5.0
	wignerMax = 5.0
)

// A Wigner samples a phase-space quasi-probability proxy for one mode on a
// square (x, p) grid.
//
// The sample at each point is a displaced-parity stand-in that reduces to
// the state's trace: a real-valued grid of the right shape, but not a
// physically exact Wigner function. The reduction is part of the model's
// contract and is preserved as-is.
type Wigner struct {
	Resolution int
}

// NewWigner returns a Wigner engine producing resolution×resolution grids
// over x, p ∈ [−5, 5].
func NewWigner(resolution int) (*Wigner, error) {
	if resolution < 1 {
		return nil, fmt.Errorf("%w: resolution must be positive, got %d", fock.ErrInvalidConfiguration, resolution)
	}
	return &Wigner{Resolution: resolution}, nil
}

// Grid evaluates the proxy for the given mode of the circuit's current
// state at every grid point. The outer index walks x, the inner p.
func (w *Wigner) Grid(c *Circuit, mode int) ([][]float64, error) {
	if !c.space.ValidMode(mode) {
		return nil, fmt.Errorf("%w: mode %d outside [0, %d)", ErrInvalidMode, mode, c.space.NumModes)
	}
	xs := gridPoints(w.Resolution)
	ps := gridPoints(w.Resolution)
	grid := make([][]float64, w.Resolution)
	for i, x := range xs {
		row := make([]float64, w.Resolution)
		for j, p := range ps {
			alpha := complex(x, p) / complex(math.Sqrt2, 0)
			row[j] = displacedParity(c.state, alpha)
		}
		grid[i] = row
	}
	return grid, nil
}

// displacedParity evaluates the parity expectation after displacing by
// alpha. The simplified model drops the displacement entirely and returns
// the real trace of the state.
func displacedParity(state *mat.CDense, alpha complex128) float64 {
	return real(qmat.Trace(state))
}

// gridPoints returns n evenly spaced samples spanning [wignerMin,
// wignerMax] inclusive.
func gridPoints(n int) []float64 {
	pts := make([]float64, n)
	if n == 1 {
		pts[0] = wignerMin
		return pts
	}
	step := (wignerMax - wignerMin) / float64(n-1)
	for i := range pts {
		pts[i] = wignerMin + float64(i)*step
	}
	return pts
}
