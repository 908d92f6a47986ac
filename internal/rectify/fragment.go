package rectify

import (
	"github.com/pmezard/go-difflib/difflib"

	"github.com/MrWong99/zhcorrect/internal/phonemizer"
)

// DefaultZhMinPhonemes is the phoneme-count threshold at or above which a
// fragment is kept as-is rather than expanded; it mirrors zh_min_phonemes
// from the reference implementation.
const DefaultZhMinPhonemes = 4

// DefaultExpandWords is the number of additional tokens grafted onto each
// side of a too-short, all-Chinese fragment.
const DefaultExpandWords = 1

// Record is one ingested wrong/right correction pair plus the fragments
// extracted from their diff, each carrying its own phoneme sequence for
// retrieval scoring.
type Record struct {
	Wrong     string
	Right     string
	Fragments []Fragment
}

// Fragment is a phonemizable span extracted from a Record's wrong/right
// diff, expanded if it was too short to phonemize reliably on its own.
type Fragment struct {
	Text     string
	Phonemes phonemizer.Sequence
}

// extractFragments tokenizes wrong and right, diffs the token sequences,
// and collects the raw text backing every non-equal opcode: delete/replace
// spans come from the wrong side, insert/replace spans from the right
// side. Each fragment is then filtered/expanded per
// zhMinPhonemes/expandWords and deduplicated preserving first-seen order.
func extractFragments(wrong, right string, zhMinPhonemes, expandWords int) []Fragment {
	wrongTokens := tokenize(wrong)
	rightTokens := tokenize(right)

	matcher := difflib.NewMatcher(texts(wrongTokens), texts(rightTokens))
	opcodes := matcher.GetOpCodes()

	var raw []string
	for _, op := range opcodes {
		switch op.Tag {
		case 'd', 'r':
			if frag := fragmentText(wrong, wrongTokens, op.I1, op.I2, zhMinPhonemes, expandWords); frag != "" {
				raw = append(raw, frag)
			}
			if op.Tag == 'r' {
				if frag := fragmentText(right, rightTokens, op.J1, op.J2, zhMinPhonemes, expandWords); frag != "" {
					raw = append(raw, frag)
				}
			}
		case 'i':
			if frag := fragmentText(right, rightTokens, op.J1, op.J2, zhMinPhonemes, expandWords); frag != "" {
				raw = append(raw, frag)
			}
		}
	}

	seen := make(map[string]bool, len(raw))
	var out []Fragment
	for _, text := range raw {
		if seen[text] {
			continue
		}
		seen[text] = true
		out = append(out, Fragment{Text: text, Phonemes: phonemizer.Phonemize(text)})
	}
	return out
}

// fragmentText returns the raw text slice for tokens[i1:i2], widened by
// expandWords tokens on each side when the core span's phoneme sequence is
// short and entirely zh (no non-zh atom present).
func fragmentText(source string, tokens []token, i1, i2, zhMinPhonemes, expandWords int) string {
	if i1 >= i2 || i1 < 0 || i2 > len(tokens) {
		return ""
	}
	core := source[tokens[i1].Start:tokens[i2-1].End]
	phs := phonemizer.Phonemize(core)
	if hasNonZhAtom(phs) || len(phs) >= zhMinPhonemes {
		return core
	}

	lo := i1 - expandWords
	if lo < 0 {
		lo = 0
	}
	hi := i2 + expandWords
	if hi > len(tokens) {
		hi = len(tokens)
	}
	if lo == i1 && hi == i2 {
		return core
	}
	return source[tokens[lo].Start:tokens[hi-1].End]
}

// hasNonZhAtom reports whether any atom in phs is not phonemized from a Han
// character (e.g. Latin letters or digits kept as raw fallback atoms).
func hasNonZhAtom(phs phonemizer.Sequence) bool {
	for _, a := range phs {
		if a.Lang != phonemizer.LangZH {
			return true
		}
	}
	return false
}
