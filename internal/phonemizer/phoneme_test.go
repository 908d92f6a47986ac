package phonemizer_test

import (
	"testing"

	"github.com/MrWong99/zhcorrect/internal/phonemizer"
)

func TestPhonemizeChinese(t *testing.T) {
	t.Parallel()

	seq := phonemizer.Phonemize("你好")
	if len(seq) == 0 {
		t.Fatal("expected non-empty phoneme sequence")
	}
	for _, a := range seq {
		if a.Lang != phonemizer.LangZH {
			t.Errorf("atom %+v: want LangZH", a)
		}
	}
	if !seq[0].IsWordStart {
		t.Errorf("first atom of 你 should be word start: %+v", seq[0])
	}
}

func TestPhonemizeLatinSplitsPerCharacter(t *testing.T) {
	t.Parallel()

	seq := phonemizer.Phonemize("abc")
	if len(seq) != 3 {
		t.Fatalf("want 3 atoms for 3-letter token, got %d: %+v", len(seq), seq)
	}
	if !seq[0].IsWordStart || seq[0].IsWordEnd {
		t.Errorf("first atom should be word-start only: %+v", seq[0])
	}
	if seq[2].IsWordStart || !seq[2].IsWordEnd {
		t.Errorf("last atom should be word-end only: %+v", seq[2])
	}
}

func TestPhonemizeCamelCaseBoundary(t *testing.T) {
	t.Parallel()

	seq := phonemizer.Phonemize("iPhone")
	// lower 'i' then upper 'P' breaks the run into two tokens: "i", "phone"
	if len(seq) != 6 {
		t.Fatalf("want 6 atoms (i + phone), got %d: %+v", len(seq), seq)
	}
	if !seq[0].IsWordStart || !seq[0].IsWordEnd {
		t.Errorf("'i' should be a single-character word: %+v", seq[0])
	}
	if !seq[1].IsWordStart {
		t.Errorf("'p' of phone should start a new word: %+v", seq[1])
	}
}

func TestPhonemizeDigitLetterBoundary(t *testing.T) {
	t.Parallel()

	seq := phonemizer.Phonemize("5g")
	if len(seq) != 2 {
		t.Fatalf("want 2 atoms, got %d: %+v", len(seq), seq)
	}
	if seq[0].Lang != phonemizer.LangNum {
		t.Errorf("'5' should be LangNum: %+v", seq[0])
	}
	if seq[1].Lang != phonemizer.LangEN {
		t.Errorf("'g' should be LangEN: %+v", seq[1])
	}
}

func TestCostIdentical(t *testing.T) {
	t.Parallel()

	a := phonemizer.Atom{Value: "zh", Lang: phonemizer.LangZH}
	if got := phonemizer.Cost(a, a); got != 0.0 {
		t.Errorf("identical atoms cost = %v, want 0.0", got)
	}
}

func TestCostDifferentLanguage(t *testing.T) {
	t.Parallel()

	a := phonemizer.Atom{Value: "a", Lang: phonemizer.LangZH}
	b := phonemizer.Atom{Value: "a", Lang: phonemizer.LangEN}
	if got := phonemizer.Cost(a, b); got != 1.0 {
		t.Errorf("cross-language cost = %v, want 1.0", got)
	}
}

func TestCostSimilarPhonemes(t *testing.T) {
	t.Parallel()

	cases := []struct{ a, b string }{
		{"z", "zh"}, {"an", "ang"}, {"l", "n"}, {"p", "b"},
	}
	for _, c := range cases {
		a := phonemizer.Atom{Value: c.a, Lang: phonemizer.LangZH}
		b := phonemizer.Atom{Value: c.b, Lang: phonemizer.LangZH}
		if got := phonemizer.Cost(a, b); got != 0.5 {
			t.Errorf("Cost(%q,%q) = %v, want 0.5", c.a, c.b, got)
		}
	}
}

func TestCostUnrelatedPhonemes(t *testing.T) {
	t.Parallel()

	a := phonemizer.Atom{Value: "b", Lang: phonemizer.LangZH}
	b := phonemizer.Atom{Value: "x", Lang: phonemizer.LangZH}
	if got := phonemizer.Cost(a, b); got != 1.0 {
		t.Errorf("Cost(b,x) = %v, want 1.0", got)
	}
}

func TestCostToneMismatchIsCheap(t *testing.T) {
	t.Parallel()

	a := phonemizer.Atom{Value: "1", Lang: phonemizer.LangZH}
	b := phonemizer.Atom{Value: "4", Lang: phonemizer.LangZH}
	if got := phonemizer.Cost(a, b); got != 0.5 {
		t.Errorf("tone mismatch cost = %v, want 0.5", got)
	}
}

func TestCostEnglishLCS(t *testing.T) {
	t.Parallel()

	a := phonemizer.Atom{Value: "abc", Lang: phonemizer.LangEN}
	b := phonemizer.Atom{Value: "axc", Lang: phonemizer.LangEN}
	got := phonemizer.Cost(a, b)
	want := 1.0 - 2.0/3.0
	if got < want-1e-9 || got > want+1e-9 {
		t.Errorf("Cost(abc,axc) = %v, want %v", got, want)
	}
}
