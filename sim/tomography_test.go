package sim

import (
	"errors"
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"photonic/qmat"
)

func TestTomographyVacuum(t *testing.T) {
	// Noiseless vacuum with a perfect detector: every measurement reads
	// zero photons, so the reconstruction is diag(0, 1).
	c := quiet(t, 21)
	tg := Tomography{NumMeasurements: 200}
	rho, err := tg.Reconstruct(c, 0)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	r, cols := rho.Dims()
	if r != 2 || cols != 2 {
		t.Fatalf("reconstruction dims = %dx%d, want 2x2", r, cols)
	}
	if tr := rho.At(0, 0) + rho.At(1, 1); cmplx.Abs(tr-1) > tol {
		t.Errorf("diagonal sum = %v, want 1", tr)
	}
	if off := cmplx.Abs(rho.At(0, 1)); off > tol {
		t.Errorf("|rho[0,1]| = %g, want ~0", off)
	}
	if !qmat.IsHermitian(rho, tol) {
		t.Error("reconstruction is not Hermitian")
	}
}

func TestTomographyStructuralProperties(t *testing.T) {
	// Under default noise only the structure is guaranteed: Hermitian,
	// trace exactly 1 by construction.
	c, err := NewCircuit(CircuitOpts{
		NumModes:   2,
		MaxPhotons: 3,
		Rand:       rand.New(rand.NewSource(23)),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.AddPhaseShifter(0, math.Pi/4); err != nil {
		t.Fatal(err)
	}
	rho, err := Tomography{NumMeasurements: 100}.Reconstruct(c, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !qmat.IsHermitian(rho, tol) {
		t.Error("reconstruction is not Hermitian")
	}
	if tr := rho.At(0, 0) + rho.At(1, 1); cmplx.Abs(tr-1) > tol {
		t.Errorf("trace = %v, want 1", tr)
	}
	if !qmat.AllFinite(rho) {
		t.Error("reconstruction contains non-finite entries")
	}
}

func TestTomographyLeavesCircuitUntouched(t *testing.T) {
	c := quiet(t, 29)
	if err := c.AddPhaseShifter(1, 0.8); err != nil {
		t.Fatal(err)
	}
	snapshot := qmat.Clone(c.State())
	if _, err := (Tomography{NumMeasurements: 50}).Reconstruct(c, 1); err != nil {
		t.Fatal(err)
	}
	if d := qmat.MaxAbsDiff(c.State(), snapshot); d != 0 {
		t.Errorf("tomography moved the caller's state by %g", d)
	}
}

func TestTomographyDefaultMeasurements(t *testing.T) {
	old := DefaultTomographyMeasurements
	DefaultTomographyMeasurements = 10
	defer func() { DefaultTomographyMeasurements = old }()

	c := quiet(t, 31)
	if _, err := (Tomography{}).Reconstruct(c, 0); err != nil {
		t.Fatalf("Reconstruct with default count: %v", err)
	}
}

func TestTomographyInvalidMode(t *testing.T) {
	c := quiet(t, 1)
	if _, err := (Tomography{NumMeasurements: 10}).Reconstruct(c, 4); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("Reconstruct mode 4 error = %v, want ErrInvalidMode", err)
	}
}
