// Package randomness collects the bit streams produced by photonic
// measurements and runs simple statistical tests against them.
package randomness

import (
	"math"
	"math/bits"
)

const blockSize = 8

// A BitStream is an append-only, densely-packed sequence of bits. The zero
// value is an empty stream ready for use.
type BitStream struct {
	bits []byte
	len  int
}

// AppendBit appends the low bit of b to the stream.
func (s *BitStream) AppendBit(b byte) {
	if s.len%blockSize == 0 {
		s.bits = append(s.bits, 0)
	}
	if b&1 == 1 {
		s.bits[s.len/blockSize] |= 1 << (s.len % blockSize)
	}
	s.len++
}

// Len returns the number of bits in the stream.
func (s BitStream) Len() int {
	return s.len
}

// At returns the i-th bit as 0 or 1. It panics if i is out of range.
func (s BitStream) At(i int) int {
	if i < 0 || i >= s.len {
		panic("randomness: bit index out of range")
	}
	return int(s.bits[i/blockSize]>>(i%blockSize)) & 1
}

// Ones returns the number of set bits in the stream.
func (s BitStream) Ones() int {
	var n int
	for _, b := range s.bits {
		n += bits.OnesCount8(b)
	}
	return n
}

// Bias returns |0.5 − ones/len|, the stream's deviation from a balanced
// source. An empty stream has bias 0.
func (s BitStream) Bias() float64 {
	if s.len == 0 {
		return 0
	}
	return math.Abs(0.5 - float64(s.Ones())/float64(s.len))
}

// Data returns a view of the bytes underlying the stream, low bit first
// within each byte. Trailing bits of the final byte are zero.
func (s BitStream) Data() []byte {
	return s.bits
}
