package rabin

import (
	"fmt"
	"math/bits"
)

const (
	DefaultBase    = 256 // Radix of the polynomial, one digit per character
	DefaultModulus = 101 // Small prime; collisions are expected and must be verified
)

// PolynomialHasher computes hashes of fixed-length rune windows as
// Σ code(c_i)·base^(k-1-i) mod modulus, and rolls them one position at a time.
// Products are taken at 128 bits, so any positive int64 base and modulus work.
// It holds no per-search state and is safe for concurrent use.
type PolynomialHasher struct {
	base    int64
	modulus int64

	b, m uint64 // base mod modulus, modulus
}

// New creates a PolynomialHasher with the given base and modulus.
func New(base, modulus int64) (*PolynomialHasher, error) {
	if base <= 0 {
		return nil, fmt.Errorf("hash base must be positive, got %d", base)
	}
	if modulus <= 0 {
		return nil, fmt.Errorf("hash modulus must be positive, got %d", modulus)
	}
	return newHasher(base, modulus), nil
}

// Default returns a hasher using DefaultBase and DefaultModulus.
func Default() *PolynomialHasher {
	return newHasher(DefaultBase, DefaultModulus)
}

func newHasher(base, modulus int64) *PolynomialHasher {
	m := uint64(modulus)
	return &PolynomialHasher{base: base, modulus: modulus, b: uint64(base) % m, m: m}
}

func (h *PolynomialHasher) Base() int64    { return h.base }
func (h *PolynomialHasher) Modulus() int64 { return h.modulus }

// mul returns x*y mod m for x, y < m.
func (h *PolynomialHasher) mul(x, y uint64) uint64 {
	hi, lo := bits.Mul64(x, y)
	return bits.Rem64(hi, lo, h.m)
}

// add returns x+y mod m for x, y < m. Both are below 2^63, so the sum fits.
func (h *PolynomialHasher) add(x, y uint64) uint64 {
	return (x + y) % h.m
}

// code reduces a rune into [0, modulus).
func (h *PolynomialHasher) code(r rune) uint64 {
	return uint64(uint32(r)) % h.m
}

// reduce maps any int64 into [0, modulus).
func (h *PolynomialHasher) reduce(v int64) uint64 {
	v %= h.modulus
	if v < 0 {
		v += h.modulus
	}
	return uint64(v)
}

// Hash computes the hash of window directly (Horner's rule).
func (h *PolynomialHasher) Hash(window []rune) int64 {
	var sum uint64
	for _, r := range window {
		sum = h.add(h.mul(sum, h.b), h.code(r))
	}
	return int64(sum)
}

// Multiplier returns base^(m-1) mod modulus, the weight of the leading
// character of an m-character window. For m < 1 it returns 0.
func (h *PolynomialHasher) Multiplier(m int) int64 {
	if m < 1 {
		return 0
	}
	mult := uint64(1) % h.m
	b := h.b
	for e := m - 1; e > 0; e >>= 1 {
		if e&1 != 0 {
			mult = h.mul(mult, b)
		}
		b = h.mul(b, b)
	}
	return int64(mult)
}

// Roll turns the hash of window [i, i+m) into the hash of [i+1, i+1+m),
// given the character leaving on the left, the one entering on the right,
// and mult = Multiplier(m). The result is always in [0, modulus).
func (h *PolynomialHasher) Roll(hash int64, leaving, entering rune, mult int64) int64 {
	cur := h.reduce(hash)
	drop := h.mul(h.code(leaving), h.reduce(mult))
	// cur - drop mod m, without going negative
	cur = h.add(cur, (h.m-drop)%h.m)
	return int64(h.add(h.mul(cur, h.b), h.code(entering)))
}
