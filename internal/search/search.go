// Package search implements single-pattern substring search with
// Boyer-Moore (bad-character rule), Knuth-Morris-Pratt and Rabin-Karp.
//
// All three index text by Unicode code point, so the positions they return
// are directly comparable. None of them keeps state between calls.
package search

import (
	"errors"
	"fmt"
	"strings"
)

// NotFound is returned by Find when the pattern does not occur in the text.
const NotFound = -1

// ErrEmptyPattern is returned for a zero-length pattern, which no algorithm
// here defines a result for.
var ErrEmptyPattern = errors.New("search: empty pattern")

// Searcher finds the first occurrence of pattern in text and returns its
// code-point index, or NotFound. Callers must reject empty patterns first
// (see Validate); a pattern longer than the text is simply NotFound.
type Searcher interface {
	Find(text, pattern []rune) int
	String() string
}

// Validate checks that pattern can be searched for.
func Validate(pattern []rune) error {
	if len(pattern) == 0 {
		return ErrEmptyPattern
	}
	return nil
}

// FindString decodes text and pattern to code points and runs s.
func FindString(s Searcher, text, pattern string) (int, error) {
	p := []rune(pattern)
	if err := Validate(p); err != nil {
		return NotFound, err
	}
	return s.Find([]rune(text), p), nil
}

// All returns one of each searcher, configured with default parameters.
func All() []Searcher {
	return []Searcher{
		NewBoyerMoore(),
		NewKnuthMorrisPratt(),
		NewRabinKarp(nil),
	}
}

// ByName picks a searcher from list by its String() name, case-insensitively.
func ByName(list []Searcher, name string) (Searcher, error) {
	for _, s := range list {
		if strings.EqualFold(s.String(), name) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("search: unknown algorithm %q", name)
}
