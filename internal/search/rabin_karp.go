package search

import (
	"slices"

	"github.com/Anish-Chanda/textsearch-bench/internal/rabin"
)

// RabinKarp compares rolling hashes of each text window with the pattern's
// hash and confirms every hash hit by comparing characters. With the default
// modulus of 101 hits are frequently false, which is what makes it slow on
// long natural-language texts.
type RabinKarp struct {
	hasher *rabin.PolynomialHasher
}

// NewRabinKarp returns a RabinKarp using h, or rabin.Default() when h is nil.
func NewRabinKarp(h *rabin.PolynomialHasher) *RabinKarp {
	if h == nil {
		h = rabin.Default()
	}
	return &RabinKarp{hasher: h}
}

func (rk *RabinKarp) String() string {
	return "rabin-karp"
}

func (rk *RabinKarp) Hasher() *rabin.PolynomialHasher {
	return rk.hasher
}

func (rk *RabinKarp) Find(text, pattern []rune) int {
	n, m := len(text), len(pattern)
	if m == 0 || m > n {
		return NotFound
	}

	h := rk.hasher
	patternHash := h.Hash(pattern)
	windowHash := h.Hash(text[:m])
	mult := h.Multiplier(m)

	for i := 0; i <= n-m; i++ {
		if windowHash == patternHash && slices.Equal(text[i:i+m], pattern) {
			return i
		}
		if i < n-m {
			windowHash = h.Roll(windowHash, text[i], text[i+m], mult)
		}
	}
	return NotFound
}

