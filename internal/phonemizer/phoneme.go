// Package phonemizer decomposes Mandarin and Latin text into a sequence of
// phoneme atoms used by [github.com/MrWong99/zhcorrect/internal/matcher] for
// fuzzy phonetic comparison.
//
// Chinese runs are decomposed per Han character into up to three atoms
// (initial, final, tone digit) using pinyin.mozillazg's Initials/FinalsTone3
// styles. Latin/digit runs are split into one atom per character by default,
// matching the teacher's conservative "split_char" behaviour so that
// character-level edit-cost comparisons (see Cost) remain meaningful for
// short brand-name-like tokens. Any other rune is a word boundary and is
// dropped from the sequence.
package phonemizer

import (
	"log/slog"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

// Lang identifies which cost rules apply to an [Atom].
type Lang string

const (
	LangZH    Lang = "zh"
	LangEN    Lang = "en"
	LangNum   Lang = "num"
	LangOther Lang = "other"
)

// Atom is a single phoneme unit: a Chinese initial/final/tone, or one
// character of a Latin/digit run.
type Atom struct {
	Value       string
	Lang        Lang
	IsWordStart bool
	IsWordEnd   bool
	CharStart   int
	CharEnd     int
}

// IsTone reports whether the atom carries a tone digit rather than an
// initial/final/letter value.
func (a Atom) IsTone() bool {
	if len(a.Value) != 1 {
		return false
	}
	return a.Value[0] >= '0' && a.Value[0] <= '9'
}

// Sequence is an ordered list of phoneme atoms extracted from one span of
// text.
type Sequence []Atom

var pinyinInitials = func() pinyin.Args {
	a := pinyin.NewArgs()
	a.Style = pinyin.Initials
	a.Heteronym = false
	return a
}()

var pinyinFinals = func() pinyin.Args {
	a := pinyin.NewArgs()
	a.Style = pinyin.FinalsTone3
	a.Heteronym = false
	return a
}()

// Phonemize decomposes text into a [Sequence] of atoms. It never returns an
// error: on any pinyin resolution failure for a Han run, it falls back to
// one atom per character for that run (word-start and word-end both true),
// logging the degradation at debug level, per the module's policy that
// user-content-driven failures never propagate from content-processing
// calls.
func Phonemize(text string) Sequence {
	runes := []rune(text)
	seq := make(Sequence, 0, len(runes))
	n := len(runes)

	for i := 0; i < n; {
		c := runes[i]
		switch {
		case isHan(c):
			start := i
			i++
			for i < n && isHan(runes[i]) {
				i++
			}
			seq = append(seq, phonemizeHan(runes[start:i], start)...)
		case isLatinOrDigit(c):
			start := i
			i++
			for i < n && continuesToken(runes, i) {
				i++
			}
			seq = append(seq, phonemizeToken(runes[start:i], start)...)
		default:
			i++
		}
	}
	return seq
}

func continuesToken(runes []rune, i int) bool {
	cur := runes[i]
	if !isLatinOrDigit(cur) {
		return false
	}
	prev := runes[i-1]
	prevLower := unicode.IsLower(prev)
	if prevLower && unicode.IsUpper(cur) {
		return false
	}
	if isLetter(prev) && unicode.IsDigit(cur) {
		return false
	}
	if unicode.IsDigit(prev) && isLetter(cur) {
		return false
	}
	return true
}

func isHan(r rune) bool {
	return r >= 0x4e00 && r <= 0x9fff
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isLatinOrDigit(r rune) bool {
	return isLetter(r) || (r >= '0' && r <= '9')
}

func phonemizeHan(frag []rune, charStart int) (seq Sequence) {
	text := string(frag)
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("phonemizer: pinyin resolution panicked, falling back to raw characters", "text", text, "panic", r)
			seq = rawHanFallback(frag, charStart)
		}
	}()

	pi := pinyin.Pinyin(text, pinyinInitials)
	pf := pinyin.Pinyin(text, pinyinFinals)

	if len(pi) != len(frag) || len(pf) != len(frag) {
		slog.Debug("phonemizer: pinyin result length mismatch, falling back to raw characters", "text", text)
		return rawHanFallback(frag, charStart)
	}

	out := make(Sequence, 0, len(frag)*2)
	for i := range frag {
		idx := charStart + i
		init := firstOrEmpty(pi[i])
		finTone := firstOrEmpty(pf[i])

		fin, tone := splitFinalTone(finTone)

		if init != "" {
			out = append(out, Atom{
				Value:       init,
				Lang:        LangZH,
				IsWordStart: true,
				CharStart:   idx,
				CharEnd:     idx + 1,
			})
		}
		if fin != "" {
			out = append(out, Atom{
				Value:       fin,
				Lang:        LangZH,
				IsWordStart: init == "",
				CharStart:   idx,
				CharEnd:     idx + 1,
			})
		}
		if tone != "" {
			out = append(out, Atom{
				Value:     tone,
				Lang:      LangZH,
				IsWordEnd: true,
				CharStart: idx,
				CharEnd:   idx + 1,
			})
		}
		if init == "" && fin == "" && tone == "" {
			out = append(out, Atom{
				Value:       string(frag[i]),
				Lang:        LangZH,
				IsWordStart: true,
				IsWordEnd:   true,
				CharStart:   idx,
				CharEnd:     idx + 1,
			})
		}
	}
	return out
}

func rawHanFallback(frag []rune, charStart int) Sequence {
	seq := make(Sequence, 0, len(frag))
	for i, r := range frag {
		idx := charStart + i
		seq = append(seq, Atom{
			Value:       string(r),
			Lang:        LangZH,
			IsWordStart: true,
			IsWordEnd:   true,
			CharStart:   idx,
			CharEnd:     idx + 1,
		})
	}
	return seq
}

// splitFinalTone splits a FinalsTone3-style reading ("ang1", "a5") into its
// final text and trailing tone digit. Neutral tone is reported as "5".
func splitFinalTone(s string) (final, tone string) {
	if s == "" {
		return "", ""
	}
	last := s[len(s)-1]
	if last >= '0' && last <= '9' {
		return s[:len(s)-1], string(last)
	}
	return s, ""
}

func firstOrEmpty(readings []string) string {
	if len(readings) == 0 {
		return ""
	}
	return readings[0]
}

func phonemizeToken(token []rune, charStart int) Sequence {
	lower := make([]rune, len(token))
	allDigits := true
	for i, r := range token {
		lower[i] = unicode.ToLower(r)
		if !unicode.IsDigit(r) {
			allDigits = false
		}
	}
	lang := LangEN
	if allDigits {
		lang = LangNum
	}

	seq := make(Sequence, 0, len(lower))
	for i, r := range lower {
		idx := charStart + i
		seq = append(seq, Atom{
			Value:       string(r),
			Lang:        lang,
			IsWordStart: i == 0,
			IsWordEnd:   i == len(lower)-1,
			CharStart:   idx,
			CharEnd:     idx + 1,
		})
	}
	return seq
}
