package search

// ShiftTable is the bad-character table for one pattern. Characters missing
// from the table shift by the full pattern length.
type ShiftTable struct {
	shifts map[rune]int
	m      int
}

// BuildShiftTable maps every character of pattern except the last to its
// distance from the end, keeping the rightmost occurrence. The last character
// gets m unless it also appears earlier. Every shift is therefore at least 1.
// pattern must not be empty.
func BuildShiftTable(pattern []rune) ShiftTable {
	m := len(pattern)
	shifts := make(map[rune]int, m)
	for i := 0; i < m-1; i++ {
		shifts[pattern[i]] = m - i - 1
	}
	if m > 0 {
		if _, ok := shifts[pattern[m-1]]; !ok {
			shifts[pattern[m-1]] = m
		}
	}
	return ShiftTable{shifts: shifts, m: m}
}

// Shift returns how far to move the window when its last character is r.
func (t ShiftTable) Shift(r rune) int {
	if s, ok := t.shifts[r]; ok {
		return s
	}
	return t.m
}

// Len is the pattern length the table was built for.
func (t ShiftTable) Len() int { return t.m }

// BoyerMoore compares right to left and, on a mismatch, shifts by the table
// entry for the window's last character (Horspool's variant of the
// bad-character rule). No good-suffix rule. Sub-linear on natural text,
// O(n·m) in the worst case.
type BoyerMoore struct{}

func NewBoyerMoore() *BoyerMoore {
	return new(BoyerMoore)
}

func (bm *BoyerMoore) String() string {
	return "boyer-moore"
}

func (bm *BoyerMoore) Find(text, pattern []rune) int {
	if len(pattern) == 0 {
		return NotFound
	}
	return bm.FindWith(BuildShiftTable(pattern), text, pattern)
}

// FindWith searches using a shift table already built for pattern.
func (bm *BoyerMoore) FindWith(table ShiftTable, text, pattern []rune) int {
	n, m := len(text), len(pattern)
	if m == 0 {
		return NotFound
	}
	for i := 0; i <= n-m; {
		j := m - 1
		for j >= 0 && text[i+j] == pattern[j] {
			j--
		}
		if j < 0 {
			return i
		}
		i += table.Shift(text[i+m-1])
	}
	return NotFound
}
