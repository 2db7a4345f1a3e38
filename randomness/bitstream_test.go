package randomness

import (
	"math"
	"testing"
)

func TestBitStreamAppendAt(t *testing.T) {
	pattern := []byte{1, 0, 1, 1, 0, 0, 0, 1, 1, 0, 1}
	var s BitStream
	for _, b := range pattern {
		s.AppendBit(b)
	}
	if s.Len() != len(pattern) {
		t.Fatalf("Len() = %d, want %d", s.Len(), len(pattern))
	}
	for i, want := range pattern {
		if got := s.At(i); got != int(want) {
			t.Errorf("At(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestBitStreamOnes(t *testing.T) {
	var s BitStream
	for i := 0; i < 100; i++ {
		s.AppendBit(byte(i % 2))
	}
	if got := s.Ones(); got != 50 {
		t.Errorf("Ones() = %d, want 50", got)
	}
	if bias := s.Bias(); bias != 0 {
		t.Errorf("Bias() = %g, want 0", bias)
	}
}

func TestBitStreamBias(t *testing.T) {
	tcs := []struct {
		name string
		bits []byte
		want float64
	}{
		{name: "empty", bits: nil, want: 0},
		{name: "all ones", bits: []byte{1, 1, 1, 1}, want: 0.5},
		{name: "all zeros", bits: []byte{0, 0, 0, 0}, want: 0.5},
		{name: "three quarters", bits: []byte{1, 1, 1, 0}, want: 0.25},
	}
	for _, tc := range tcs {
		var s BitStream
		for _, b := range tc.bits {
			s.AppendBit(b)
		}
		if got := s.Bias(); math.Abs(got-tc.want) > 1e-15 {
			t.Errorf("%s: Bias() = %g, want %g", tc.name, got, tc.want)
		}
	}
}

func TestBitStreamData(t *testing.T) {
	var s BitStream
	for _, b := range []byte{1, 0, 1, 1, 0, 0, 0, 1, 1, 1} {
		s.AppendBit(b)
	}
	// Low bit first within each byte, trailing bits zero.
	want := []byte{0b10001101, 0b00000011}
	got := s.Data()
	if len(got) != len(want) {
		t.Fatalf("Data() length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Data()[%d] = %08b, want %08b", i, got[i], want[i])
		}
	}
}

func TestBitStreamAppendOnlyLowBit(t *testing.T) {
	var s BitStream
	s.AppendBit(0xFE) // low bit 0
	s.AppendBit(0x03) // low bit 1
	if got := s.At(0); got != 0 {
		t.Errorf("At(0) = %d, want 0", got)
	}
	if got := s.At(1); got != 1 {
		t.Errorf("At(1) = %d, want 1", got)
	}
}
