package phonemizer

// similarPhonemes groups Mandarin initials/finals that Mandarin ASR commonly
// confuses for one another (nasal finals, retroflex/dental sibilants,
// lateral/nasal initials, aspirated/unaspirated stop pairs, and a handful of
// commonly-confused finals). Two atoms whose values both appear in the same
// group cost 0.5 instead of 1.0 in [Cost].
var similarPhonemes = []map[string]struct{}{
	setOf("an", "ang"),
	setOf("en", "eng"),
	setOf("in", "ing"),
	setOf("ian", "iang"),
	setOf("uan", "uang"),
	setOf("z", "zh"),
	setOf("c", "ch"),
	setOf("s", "sh"),
	setOf("l", "n"),
	setOf("f", "h"),
	setOf("ai", "ei"),
	setOf("o", "uo"),
	setOf("e", "ie"),
	setOf("p", "b"),
	setOf("t", "d"),
	setOf("k", "g"),
}

func setOf(vals ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		m[v] = struct{}{}
	}
	return m
}

// AreSimilar reports whether a and b belong to the same confusable-phoneme
// group (see similarPhonemes). Exported for callers, such as
// [github.com/MrWong99/zhcorrect/internal/hotword], that implement their own
// variant of the substitution-cost rule instead of using [Cost] directly.
func AreSimilar(a, b string) bool {
	return areSimilar(a, b)
}

func areSimilar(a, b string) bool {
	for _, group := range similarPhonemes {
		_, okA := group[a]
		_, okB := group[b]
		if okA && okB {
			return true
		}
	}
	return false
}

// Cost returns the substitution cost of matching atom a against atom b, in
// [0.0, 1.0]:
//
//   - different language families: 1.0 (no match)
//   - identical value and language: 0.0
//   - two Mandarin tone atoms: 0.5 (tone mismatches are cheap — ASR frequently
//     drops or confuses tone)
//   - two Mandarin initials/finals from the same confusable group: 0.5
//   - two Latin/English atoms: 1 minus the longest-common-subsequence ratio
//     of their values (both are single characters once phonemized with
//     splitting enabled, so this degrades to an exact-match check in
//     practice; it is kept general for callers that phonemize with
//     word-level English tokens)
//   - anything else, including two "num" atoms that differ: 1.0
func Cost(a, b Atom) float64 {
	if a.Lang != b.Lang {
		return 1.0
	}
	if a.Value == b.Value {
		return 0.0
	}
	if a.Lang == LangZH {
		if a.IsTone() && b.IsTone() {
			return 0.5
		}
		if areSimilar(a.Value, b.Value) {
			return 0.5
		}
	}
	if a.Lang == LangEN {
		l1, l2 := len(a.Value), len(b.Value)
		maxLen := l1
		if l2 > maxLen {
			maxLen = l2
		}
		if maxLen == 0 {
			return 1.0
		}
		lcs := lcsLength(a.Value, b.Value)
		return 1.0 - float64(lcs)/float64(maxLen)
	}
	return 1.0
}

// lcsLength computes the length of the longest common subsequence of s1 and
// s2 using a rolling two-row DP table (O(min(len(s1),len(s2))) space).
func lcsLength(s1, s2 string) int {
	if len(s1) < len(s2) {
		s1, s2 = s2, s1
	}
	m, n := len(s1), len(s2)
	if n == 0 {
		return 0
	}

	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if s1[i-1] == s2[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] > curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[n]
}
