package search_test

import (
	"math"
	"testing"

	"github.com/Anish-Chanda/textsearch-bench/internal/rabin"
	"github.com/Anish-Chanda/textsearch-bench/internal/search"
)

func TestRabinKarp_DefaultHasher(t *testing.T) {
	rk := search.NewRabinKarp(nil)
	if rk.Hasher().Base() != rabin.DefaultBase || rk.Hasher().Modulus() != rabin.DefaultModulus {
		t.Errorf("unexpected default hasher params (%d, %d)", rk.Hasher().Base(), rk.Hasher().Modulus())
	}
}

// "AA" and "Bp" share a hash under base 256, modulus 101; the literal
// comparison must reject the false hit.
func TestRabinKarp_CollisionIsNotAMatch(t *testing.T) {
	rk := search.NewRabinKarp(nil)
	h := rk.Hasher()
	if h.Hash([]rune("AA")) != h.Hash([]rune("Bp")) {
		t.Fatal("test strings no longer collide")
	}

	if got := rk.Find([]rune("Bp"), []rune("AA")); got != search.NotFound {
		t.Errorf("Find(Bp, AA) = %d, want NotFound", got)
	}
	if got := rk.Find([]rune("xBpBpAA"), []rune("AA")); got != 5 {
		t.Errorf("Find(xBpBpAA, AA) = %d, want 5", got)
	}
}

func TestRabinKarp_CustomHasher(t *testing.T) {
	h, err := rabin.New(31, 1_000_000_007)
	if err != nil {
		t.Fatalf("rabin.New: %v", err)
	}
	rk := search.NewRabinKarp(h)
	if got := rk.Find([]rune("ABABDABACDABABCABAB"), []rune("ABABCABAB")); got != 10 {
		t.Errorf("Find = %d, want 10", got)
	}
}

// With modulus 1 every window collides, so correctness rests entirely on
// verification.
func TestRabinKarp_DegenerateModulus(t *testing.T) {
	h, err := rabin.New(256, 1)
	if err != nil {
		t.Fatalf("rabin.New: %v", err)
	}
	rk := search.NewRabinKarp(h)
	if got := rk.Find([]rune("abcabd"), []rune("abd")); got != 3 {
		t.Errorf("Find = %d, want 3", got)
	}
	if got := rk.Find([]rune("abcabc"), []rune("abd")); got != search.NotFound {
		t.Errorf("Find = %d, want NotFound", got)
	}
}

func TestRabinKarp_LargeHashParams(t *testing.T) {
	text := []rune("the quick brown fox jumps over the lazy dog")
	params := [][2]int64{
		{1 << 62, 101},
		{1<<62 + 7, 1<<61 - 1},
		{math.MaxInt64, math.MaxInt64 - 24},
	}
	for _, p := range params {
		h, err := rabin.New(p[0], p[1])
		if err != nil {
			t.Fatalf("rabin.New(%d, %d): %v", p[0], p[1], err)
		}
		rk := search.NewRabinKarp(h)
		for _, pattern := range []string{"lazy dog", "the", "fox jumps", "dog"} {
			want := search.NewKnuthMorrisPratt().Find(text, []rune(pattern))
			if got := rk.Find(text, []rune(pattern)); got != want {
				t.Errorf("base %d mod %d: Find(%q) = %d, want %d", p[0], p[1], pattern, got, want)
			}
		}
	}
}
