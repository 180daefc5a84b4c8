package search

// BuildLPS returns the failure table for pattern: lps[i] is the length of the
// longest proper prefix of pattern[:i+1] that is also its suffix.
func BuildLPS(pattern []rune) []int {
	lps := make([]int, len(pattern))
	length := 0
	for i := 1; i < len(pattern); {
		switch {
		case pattern[i] == pattern[length]:
			length++
			lps[i] = length
			i++
		case length != 0:
			length = lps[length-1]
		default:
			lps[i] = 0
			i++
		}
	}
	return lps
}

// KnuthMorrisPratt never moves backwards in the text: after a mismatch it
// resumes from the longest prefix already matched. O(n+m).
type KnuthMorrisPratt struct{}

func NewKnuthMorrisPratt() *KnuthMorrisPratt {
	return new(KnuthMorrisPratt)
}

func (kmp *KnuthMorrisPratt) String() string {
	return "knuth-morris-pratt"
}

func (kmp *KnuthMorrisPratt) Find(text, pattern []rune) int {
	if len(pattern) == 0 {
		return NotFound
	}
	return kmp.FindWith(BuildLPS(pattern), text, pattern)
}

// FindWith searches using an lps table already built for pattern.
func (kmp *KnuthMorrisPratt) FindWith(lps []int, text, pattern []rune) int {
	n, m := len(text), len(pattern)
	if m == 0 {
		return NotFound
	}
	i, j := 0, 0
	for i < n {
		switch {
		case pattern[j] == text[i]:
			i++
			j++
		case j != 0:
			j = lps[j-1]
		default:
			i++
		}
		if j == m {
			return i - j
		}
	}
	return NotFound
}
