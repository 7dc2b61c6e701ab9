package textutil

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello world"},
		{"Да\nопитаме...", "да опитаме"},
		{"  spaced   out  ", "spaced out"},
		{"?!—", ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLetterCount(t *testing.T) {
	if got := LetterCount("ъ"); got != 1 {
		t.Fatalf("LetterCount(ъ) = %d, want 1", got)
	}
	if got := LetterCount("Да опитаме"); got != 9 {
		t.Fatalf("LetterCount = %d, want 9", got)
	}
}

func TestWordOverlap(t *testing.T) {
	if got := WordOverlap("the quick fox", "the quick fox"); got != 1.0 {
		t.Fatalf("identical overlap = %v, want 1.0", got)
	}
	if got := WordOverlap("the quick fox", "a lazy dog"); got != 0 {
		t.Fatalf("disjoint overlap = %v, want 0", got)
	}
	if got := WordOverlap("", "anything"); got != 0 {
		t.Fatalf("empty overlap = %v, want 0", got)
	}
	got := WordOverlap("the quick brown fox", "quick fox")
	if got != 1.0 {
		t.Fatalf("subset overlap = %v, want 1.0 (smaller set denominator)", got)
	}
}
