// Package sim simulates a noisy multi-mode photonic circuit over a truncated
// Fock space. A Circuit owns a density matrix, evolves it by phase-shift
// operators coupled to a stochastic loss/dephasing channel, and exposes
// simplified photon-number measurement, from which it can extract a random
// bit stream.
//
// The model is a demonstration, not a physically exact one: loss attenuates
// the whole density matrix without renormalization, measurement does not
// collapse the state, and the extracted bits are not certified entropy.
package sim

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"photonic/fock"
	"photonic/qmat"
	"photonic/randomness"
)

var (
	DefaultLossRate           = 0.1
	DefaultDephasingRate      = 0.05
	DefaultDetectorEfficiency = 0.9
)

// ErrInvalidMode indicates a mode index outside [0, NumModes).
var ErrInvalidMode = errors.New("invalid mode index")

// A NoiseOpts fixes the per-application trigger probabilities of the noise
// channel. Both rates must lie in [0, 1]; zero rates silence the channel.
type NoiseOpts struct {
	LossRate      float64
	DephasingRate float64
}

// A CircuitOpts packages together the arguments necessary to construct a new
// Circuit.
type CircuitOpts struct {
	// NumModes and MaxPhotons fix the truncated Fock space. NumModes must
	// be positive and MaxPhotons non-negative.
	NumModes   int
	MaxPhotons int

	// Rand provides the circuit's sole source of randomness, shared by
	// the noise channel and the detector. Seed it for reproducible runs.
	// Must be non-nil.
	Rand *rand.Rand

	// Noise configures the loss/dephasing channel coupled to every
	// circuit operation. Nil selects DefaultLossRate and
	// DefaultDephasingRate.
	Noise *NoiseOpts

	// DetectorEfficiency is the probability that a measurement registers
	// at all; a missed detection reports zero photons. Must be in (0, 1].
	// Defaults to DefaultDetectorEfficiency.
	DetectorEfficiency float64
}

// A Circuit holds one density matrix, initialized to the vacuum state, and
// evolves it in place. A Circuit is not safe for concurrent use, and its
// state must never be shared with another circuit.
type Circuit struct {
	space fock.Space
	state *mat.CDense
	noise NoiseChannel
	eff   float64
	rng   *rand.Rand
}

// NewCircuit returns a Circuit configured in accordance with opts, or an
// error if the options are nonsensical.
func NewCircuit(opts CircuitOpts) (*Circuit, error) {
	space, err := fock.New(opts.NumModes, opts.MaxPhotons)
	if err != nil {
		return nil, err
	}
	if opts.Rand == nil {
		return nil, fmt.Errorf("%w: must provide Rand", fock.ErrInvalidConfiguration)
	}
	noiseOpts := NoiseOpts{LossRate: DefaultLossRate, DephasingRate: DefaultDephasingRate}
	if opts.Noise != nil {
		noiseOpts = *opts.Noise
	}
	noise, err := NewNoiseChannel(noiseOpts, opts.Rand)
	if err != nil {
		return nil, err
	}
	eff := opts.DetectorEfficiency
	if eff == 0 {
		eff = DefaultDetectorEfficiency
	}
	if eff < 0 || eff > 1 {
		return nil, fmt.Errorf("%w: detector efficiency %v outside (0, 1]", fock.ErrInvalidConfiguration, eff)
	}
	return &Circuit{
		space: space,
		state: qmat.Vacuum(space.Dim()),
		noise: noise,
		eff:   eff,
		rng:   opts.Rand,
	}, nil
}

// Space returns the circuit's Fock space.
func (c *Circuit) Space() fock.Space {
	return c.space
}

// State returns the circuit's density matrix. The matrix is owned by the
// circuit; callers must treat it as read-only.
func (c *Circuit) State() *mat.CDense {
	return c.state
}

// AddPhaseShifter applies a phase shift of phase radians to mode, then
// applies the circuit's noise channel to the same mode. The noise step is
// part of the operation's contract: coherent operations cannot be composed
// without it.
func (c *Circuit) AddPhaseShifter(mode int, phase float64) error {
	if !c.space.ValidMode(mode) {
		return fmt.Errorf("%w: mode %d outside [0, %d)", ErrInvalidMode, mode, c.space.NumModes)
	}
	op := PhaseOperator(c.space, mode, phase)
	if err := qmat.Conjugate(c.state, op); err != nil {
		return err
	}
	return c.noise.Apply(c.state, c.space, mode)
}

// GenerateRandomBits measures numBits photon counts, each on a uniformly
// chosen mode, and returns their parities as a bit stream. The state is not
// re-prepared between draws: successive measurements resample the same
// evolved state.
func (c *Circuit) GenerateRandomBits(numBits int) (randomness.BitStream, error) {
	var bits randomness.BitStream
	for i := 0; i < numBits; i++ {
		mode := c.rng.Intn(c.space.NumModes)
		outcome, err := c.Measure(mode)
		if err != nil {
			return randomness.BitStream{}, err
		}
		bits.AppendBit(byte(outcome & 1))
	}
	return bits, nil
}

// Clone returns a circuit with a deep copy of this circuit's state. The
// clone shares the parent's random source, so its draws advance the same
// seeded sequence.
func (c *Circuit) Clone() *Circuit {
	return &Circuit{
		space: c.space,
		state: qmat.Clone(c.state),
		noise: c.noise,
		eff:   c.eff,
		rng:   c.rng,
	}
}
