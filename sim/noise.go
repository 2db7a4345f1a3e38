package sim

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"photonic/fock"
	"photonic/qmat"
)

// A NoiseChannel perturbs a density matrix with stochastic loss and
// dephasing. Loss attenuates the entire matrix by (1 − LossRate) without
// renormalizing, so repeated loss events drain the trace below 1; that
// trace deficit models photons leaving the system and is kept deliberately.
type NoiseChannel struct {
	lossRate      float64
	dephasingRate float64
	rng           *rand.Rand
}

// NewNoiseChannel returns a NoiseChannel drawing its Bernoulli trials from
// rng. Rates outside [0, 1] are rejected.
func NewNoiseChannel(opts NoiseOpts, rng *rand.Rand) (NoiseChannel, error) {
	if opts.LossRate < 0 || opts.LossRate > 1 {
		return NoiseChannel{}, fmt.Errorf("%w: loss rate %v outside [0, 1]", fock.ErrInvalidConfiguration, opts.LossRate)
	}
	if opts.DephasingRate < 0 || opts.DephasingRate > 1 {
		return NoiseChannel{}, fmt.Errorf("%w: dephasing rate %v outside [0, 1]", fock.ErrInvalidConfiguration, opts.DephasingRate)
	}
	if rng == nil {
		return NoiseChannel{}, fmt.Errorf("%w: must provide rng", fock.ErrInvalidConfiguration)
	}
	return NoiseChannel{
		lossRate:      opts.LossRate,
		dephasingRate: opts.DephasingRate,
		rng:           rng,
	}, nil
}

// LossRate returns the channel's loss trigger probability.
func (nc NoiseChannel) LossRate() float64 { return nc.lossRate }

// DephasingRate returns the channel's dephasing trigger probability.
func (nc NoiseChannel) DephasingRate() float64 { return nc.dephasingRate }

// Apply perturbs state in place. It always consumes exactly two random
// draws, one per trigger, plus a third for the random phase when dephasing
// fires; seeded reproducibility depends on that order.
func (nc NoiseChannel) Apply(state *mat.CDense, space fock.Space, mode int) error {
	if nc.rng.Float64() < nc.lossRate {
		qmat.Scale(complex(1-nc.lossRate, 0), state)
	}
	if nc.rng.Float64() < nc.dephasingRate {
		phi := nc.rng.Float64() * 2 * math.Pi
		return qmat.Conjugate(state, PhaseOperator(space, mode, phi))
	}
	return nil
}
