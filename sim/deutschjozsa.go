package sim

import (
	"fmt"
	"math"
	"math/rand"

	"photonic/fock"
)

// An Oracle is the black-box function interrogated by the Deutsch-Jozsa
// demonstration. It is either constant or balanced over its one-bit input;
// any non-zero return counts as 1.
type Oracle func(x int) int

// A DeutschJozsaOpts packages together the arguments necessary to construct
// a new DeutschJozsa.
type DeutschJozsaOpts struct {
	// Oracle is the function under test. Must be non-nil.
	Oracle Oracle

	// Rand provides the underlying circuit's source of randomness. Must
	// be non-nil.
	Rand *rand.Rand

	// Noise configures the underlying circuit's noise channel. Nil
	// selects the circuit defaults.
	Noise *NoiseOpts
}

// A DeutschJozsa runs the Deutsch-Jozsa algorithm on photonic components:
// three modes (input, ancilla, output), with the oracle compiled down to a
// single conditional phase shift.
//
// Like the rest of the engine this is a demonstration: phase shifters alone
// leave the vacuum's photon statistics fixed, so with a perfect noiseless
// detector the measurement always reads 0 and the oracle is reported
// constant. Noise and detector misses supply the only variation.
type DeutschJozsa struct {
	oracle  Oracle
	circuit *Circuit
}

// NewDeutschJozsa returns a DeutschJozsa configured in accordance with
// opts, or an error if the options are nonsensical.
func NewDeutschJozsa(opts DeutschJozsaOpts) (*DeutschJozsa, error) {
	if opts.Oracle == nil {
		return nil, fmt.Errorf("%w: must provide Oracle", fock.ErrInvalidConfiguration)
	}
	circuit, err := NewCircuit(CircuitOpts{
		NumModes:   3,
		MaxPhotons: 3,
		Rand:       opts.Rand,
		Noise:      opts.Noise,
	})
	if err != nil {
		return nil, err
	}
	return &DeutschJozsa{oracle: opts.Oracle, circuit: circuit}, nil
}

// Run executes one pass of the algorithm and reports whether the oracle
// looks constant: superpose the input mode, prepare the ancilla, apply the
// oracle's phase to the output mode, undo the superposition, and measure
// the input mode. A zero-photon reading means constant.
func (dj *DeutschJozsa) Run() (bool, error) {
	steps := []struct {
		mode  int
		phase float64
	}{
		{mode: 0, phase: math.Pi / 2},
		{mode: 1, phase: math.Pi},
		{mode: 2, phase: dj.oraclePhase()},
		{mode: 0, phase: -math.Pi / 2},
	}
	for _, s := range steps {
		if err := dj.circuit.AddPhaseShifter(s.mode, s.phase); err != nil {
			return false, err
		}
	}
	result, err := dj.circuit.Measure(0)
	if err != nil {
		return false, err
	}
	return result == 0, nil
}

// oraclePhase compiles the oracle to a phase: pi when it maps 0 to 1,
// nothing otherwise.
func (dj *DeutschJozsa) oraclePhase() float64 {
	if dj.oracle(0) != 0 {
		return math.Pi
	}
	return 0
}
