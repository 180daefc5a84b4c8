package search_test

import (
	"testing"

	"github.com/Anish-Chanda/textsearch-bench/internal/search"
)

func TestBuildShiftTable(t *testing.T) {
	testCases := []struct {
		pattern string
		want    map[rune]int
	}{
		// rightmost occurrence wins; the final 'b' keeps its earlier shift
		{"abcab", map[rune]int{'a': 1, 'b': 3, 'c': 2}},
		// final character seen only at the end maps to m
		{"abcd", map[rune]int{'a': 3, 'b': 2, 'c': 1, 'd': 4}},
		{"x", map[rune]int{'x': 1}},
		{"aaaa", map[rune]int{'a': 1}},
		{"рішень", map[rune]int{'р': 5, 'і': 4, 'ш': 3, 'е': 2, 'н': 1, 'ь': 6}},
	}

	for _, tc := range testCases {
		t.Run(tc.pattern, func(t *testing.T) {
			table := search.BuildShiftTable([]rune(tc.pattern))
			if table.Len() != len([]rune(tc.pattern)) {
				t.Errorf("Len() = %d, want %d", table.Len(), len([]rune(tc.pattern)))
			}
			for r, want := range tc.want {
				if got := table.Shift(r); got != want {
					t.Errorf("Shift(%q) = %d, want %d", r, got, want)
				}
			}
		})
	}
}

func TestShiftTable_DefaultIsPatternLength(t *testing.T) {
	table := search.BuildShiftTable([]rune("needle"))
	for _, r := range []rune{'z', 'Ж', ' ', 0} {
		if got := table.Shift(r); got != 6 {
			t.Errorf("Shift(%q) = %d, want 6", r, got)
		}
	}
}

func TestShiftTable_ShiftAtLeastOne(t *testing.T) {
	for _, p := range []string{"a", "ab", "aba", "abab", "mississippi", "сума оптимальних рішень"} {
		pattern := []rune(p)
		table := search.BuildShiftTable(pattern)
		for _, r := range pattern {
			if table.Shift(r) < 1 {
				t.Errorf("pattern %q: Shift(%q) = %d, want >= 1", p, r, table.Shift(r))
			}
		}
	}
}

func TestBoyerMoore_FindWithPrebuiltTable(t *testing.T) {
	bm := search.NewBoyerMoore()
	pattern := []rune("ABABCABAB")
	table := search.BuildShiftTable(pattern)
	if got := bm.FindWith(table, []rune("ABABDABACDABABCABAB"), pattern); got != 10 {
		t.Errorf("FindWith = %d, want 10", got)
	}
	if got := bm.FindWith(table, []rune("ABABDABACD"), pattern); got != search.NotFound {
		t.Errorf("FindWith = %d, want NotFound", got)
	}
}
