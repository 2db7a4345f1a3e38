package sim

import (
	"fmt"
)

// Measure performs a simplified projective measurement of the given mode's
// photon number, sampling from the state's diagonal marginal. The detector
// is imperfect: with probability 1 − DetectorEfficiency the measurement
// registers nothing, which is reported as outcome 0 rather than a distinct
// sentinel. Measurement does not collapse the state.
//
// Exactly one random draw is consumed on a missed detection, two otherwise:
// the efficiency trial first, then the marginal sample. The sample draw is
// consumed even when the marginal has fully drained, so the draw count
// depends only on the efficiency trial, never on the state.
func (c *Circuit) Measure(mode int) (int, error) {
	if !c.space.ValidMode(mode) {
		return 0, fmt.Errorf("%w: mode %d outside [0, %d)", ErrInvalidMode, mode, c.space.NumModes)
	}
	if c.rng.Float64() >= c.eff {
		return 0, nil
	}
	u := c.rng.Float64()

	probs := c.marginal(mode)
	var total float64
	for _, p := range probs {
		total += p
	}
	// A fully drained state has nothing left to detect.
	if total <= 0 {
		return 0, nil
	}

	u *= total
	var acc float64
	for n, p := range probs {
		acc += p
		if u < acc {
			return n, nil
		}
	}
	return len(probs) - 1, nil
}

// marginal returns the mode's unnormalized photon-number distribution,
// summing the state's diagonal over all basis states sharing each photon
// count. Small negative diagonal entries from accumulated floating error
// contribute zero.
func (c *Circuit) marginal(mode int) []float64 {
	probs := make([]float64, c.space.PerModeDim())
	dim := c.space.Dim()
	for i := 0; i < dim; i++ {
		p := real(c.state.At(i, i))
		if p <= 0 {
			continue
		}
		probs[c.space.PhotonNumber(i, mode)] += p
	}
	return probs
}
