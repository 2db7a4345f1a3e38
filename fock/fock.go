// Package fock models a truncated multi-mode Fock space: each optical mode
// carries at most MaxPhotons photons, and the composite state space is the
// tensor product of the per-mode spaces.
package fock

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration indicates that a Space was requested with a
// nonsensical mode count or photon truncation.
var ErrInvalidConfiguration = errors.New("invalid space configuration")

// A Space describes the truncated Hilbert space of a multi-mode photonic
// system. It is a pure value: construct it with New and never mutate it.
type Space struct {
	NumModes   int
	MaxPhotons int
}

// New returns a Space with numModes optical modes, each truncated at
// maxPhotons photons.
func New(numModes, maxPhotons int) (Space, error) {
	if numModes < 1 {
		return Space{}, fmt.Errorf("%w: num modes must be positive, got %d", ErrInvalidConfiguration, numModes)
	}
	if maxPhotons < 0 {
		return Space{}, fmt.Errorf("%w: max photons must be non-negative, got %d", ErrInvalidConfiguration, maxPhotons)
	}
	return Space{NumModes: numModes, MaxPhotons: maxPhotons}, nil
}

// PerModeDim returns the dimension of a single mode's truncated Fock space.
func (s Space) PerModeDim() int {
	return s.MaxPhotons + 1
}

// Dim returns the dimension of the composite space, PerModeDim^NumModes.
func (s Space) Dim() int {
	d := 1
	for i := 0; i < s.NumModes; i++ {
		d *= s.PerModeDim()
	}
	return d
}

// ValidMode reports whether mode indexes one of this space's modes.
func (s Space) ValidMode(mode int) bool {
	return mode >= 0 && mode < s.NumModes
}

// PhotonNumber returns the photon count of the given mode within the
// composite basis state index. Basis indexes decompose in base PerModeDim
// with mode 0 as the most significant digit, matching a left-to-right
// Kronecker product over the modes.
func (s Space) PhotonNumber(index, mode int) int {
	p := s.PerModeDim()
	// Divide away the digits of all less significant modes.
	for m := s.NumModes - 1; m > mode; m-- {
		index /= p
	}
	return index % p
}
