package sim

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DefaultTomographyMeasurements is the measurement count per phase setting
// used when a Tomography does not specify one.
var DefaultTomographyMeasurements = 1000

// The four canonical phase settings sampled during reconstruction.
var tomographyPhases = [4]float64{0, math.Pi / 4, math.Pi / 2, 3 * math.Pi / 4}

// A Tomography reconstructs an approximate 2×2 single-mode density matrix
// from repeated phase-shifted measurements.
//
// The estimator is a minimal linear inversion over four measurement means;
// the result is Hermitian with trace 1 by construction, but no fidelity to
// the true state is guaranteed.
type Tomography struct {
	// NumMeasurements is the number of measurements averaged per phase
	// setting. Defaults to DefaultTomographyMeasurements.
	NumMeasurements int
}

// Reconstruct measures the given mode of the circuit under each canonical
// phase and linearly inverts the four means into a 2×2 matrix. Each phase
// setting runs against a clone of the circuit, so the caller's state is
// never disturbed; the clones share the circuit's random source.
func (tg Tomography) Reconstruct(c *Circuit, mode int) (*mat.CDense, error) {
	if !c.space.ValidMode(mode) {
		return nil, fmt.Errorf("%w: mode %d outside [0, %d)", ErrInvalidMode, mode, c.space.NumModes)
	}
	num := tg.NumMeasurements
	if num <= 0 {
		num = DefaultTomographyMeasurements
	}

	var means [4]float64
	for k, phase := range tomographyPhases {
		clone := c.Clone()
		if err := clone.AddPhaseShifter(mode, phase); err != nil {
			return nil, err
		}
		outcomes := make([]float64, num)
		for i := range outcomes {
			o, err := clone.Measure(mode)
			if err != nil {
				return nil, err
			}
			outcomes[i] = float64(o)
		}
		means[k] = stat.Mean(outcomes, nil)
	}

	rho := mat.NewCDense(2, 2, nil)
	rho.Set(0, 0, complex((means[0]+means[2])/2, 0))
	rho.Set(0, 1, complex(means[1]/2, means[3]/2))
	rho.Set(1, 0, cmplx.Conj(rho.At(0, 1)))
	rho.Set(1, 1, 1-rho.At(0, 0))
	return rho, nil
}
