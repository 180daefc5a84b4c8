package corpus

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/aclements/go-rabin/rabin"
	"github.com/bits-and-blooms/bloom/v3"
)

const (
	FingerprintWindow = 64   // Rabin window in bytes
	GramSize          = 3    // code points per bloom filter entry
	FilterFPRate      = 0.01 // target false-positive rate of MayContain

	fnvPrime = 0x100000001b3
)

// ErrInvalidEncoding is returned for text that is not valid UTF-8.
var ErrInvalidEncoding = errors.New("corpus: text is not valid UTF-8")

var fingerprintTable = rabin.NewTable(rabin.Poly64, FingerprintWindow)

// Document is one decoded text. It is read-only once built and may be
// searched from many goroutines.
type Document struct {
	Name string
	// Text is the content as code points; every search index refers to it.
	Text []rune
	// Fingerprint folds the Rabin fingerprints of every FingerprintWindow
	// block of the raw content; it tells document versions apart.
	Fingerprint uint64
	Bytes       int

	filter *bloom.BloomFilter
}

// NewDocument decodes text and builds its fingerprint and gram filter.
func NewDocument(name, text string) (*Document, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%s: %w", name, ErrInvalidEncoding)
	}
	runes := []rune(text)

	grams := len(runes) - GramSize + 1
	if grams < 1 {
		grams = 1
	}
	filter := bloom.NewWithEstimates(uint(grams), FilterFPRate)
	for i := 0; i+GramSize <= len(runes); i++ {
		filter.AddString(string(runes[i : i+GramSize]))
	}

	return &Document{
		Name:        name,
		Text:        runes,
		Fingerprint: fingerprint([]byte(text)),
		Bytes:       len(text),
		filter:      filter,
	}, nil
}

func fingerprint(data []byte) uint64 {
	h := rabin.New(fingerprintTable)
	var fp uint64
	for off := 0; off < len(data); off += FingerprintWindow {
		end := min(off+FingerprintWindow, len(data))
		_, _ = h.Write(data[off:end]) // never fails
		fp = fp*fnvPrime ^ h.Sum64()
	}
	return fp
}

// Len is the document length in code points.
func (d *Document) Len() int {
	return len(d.Text)
}

// MayContain reports false only when pattern certainly does not occur in the
// document: some GramSize-long piece of it never appears in the text.
// Patterns shorter than GramSize always return true.
func (d *Document) MayContain(pattern []rune) bool {
	if len(pattern) > len(d.Text) {
		return false
	}
	for i := 0; i+GramSize <= len(pattern); i++ {
		if !d.filter.TestString(string(pattern[i : i+GramSize])) {
			return false
		}
	}
	return true
}
