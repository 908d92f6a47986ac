package hotword

import (
	"sort"

	"github.com/MrWong99/zhcorrect/internal/matcher"
	"github.com/MrWong99/zhcorrect/internal/phonemizer"
)

// Corrector applies phoneme-based hotword correction to ASR transcripts. It
// wraps a [Store] so dictionary reloads (triggered by
// [github.com/MrWong99/zhcorrect/internal/config]'s file watcher) are picked
// up by every subsequent [Corrector.Correct] call without reconstructing the
// corrector.
type Corrector struct {
	store *Store
	topK  int
}

// New returns a [Corrector] backed by store. topK bounds how many
// near-miss candidates are returned for diagnostics; values <= 0 default to
// 10.
func New(store *Store, topK int) *Corrector {
	if topK <= 0 {
		topK = 10
	}
	return &Corrector{store: store, topK: topK}
}

// Correct scans text for windows that phonetically resemble a known
// hotword and rewrites the highest-scoring, non-overlapping ones in place.
//
// The algorithm:
//  1. Phonemize text and run it through the store's [matcher.FastIndex] to
//     get up to 100 coarse hotword candidates.
//  2. For each candidate, slide a same-length window over the input
//     phoneme sequence (only at word-start offsets) and score it with a
//     substitution-only cost (no insertions/deletions — this is
//     deliberately cheaper and stricter than [phonemizer.Cost]-based
//     matching used elsewhere; see the package-level note in corrector.go
//     of the original implementation this is ported from).
//  3. Matches scoring at or above the store's threshold are candidates for
//     replacement; matches above the lower similarity threshold are
//     recorded as near-misses even if not applied.
//  4. Candidates are resolved by (score, span length) descending, greedily
//     keeping non-overlapping spans, then spliced into the text from right
//     to left so earlier offsets stay valid.
func (c *Corrector) Correct(text string) Result {
	if text == "" {
		return Result{}
	}

	snap := c.store.snapshot()
	inputPhs := phonemizer.Phonemize(text)
	if len(inputPhs) == 0 {
		return Result{Text: text}
	}

	candidates := snap.index.Search(inputPhs, 100)

	matches, nearMisses := c.findMatches(snap, candidates, inputPhs)
	newText, applied := c.resolveAndReplace(text, matches)

	if len(nearMisses) > c.topK {
		nearMisses = nearMisses[:c.topK]
	}

	return Result{Text: newText, Applied: applied, NearMisses: nearMisses}
}

func (c *Corrector) findMatches(
	snap snapshot,
	candidates []matcher.ScoredHotword,
	input phonemizer.Sequence,
) ([]match, []Candidate) {
	var matches []match
	var all []match
	inputLen := len(input)

	for _, cand := range candidates {
		hwPhs := snap.hotwords[cand.Hotword]
		targetLen := len(hwPhs)
		if targetLen == 0 || targetLen > inputLen {
			continue
		}

		for i := 0; i+targetLen <= inputLen; i++ {
			if !input[i].IsWordStart {
				continue
			}
			window := input[i : i+targetLen]
			score := substitutionScore(hwPhs, window)

			m := match{
				start:   window[0].CharStart,
				end:     window[len(window)-1].CharEnd,
				score:   score,
				hotword: cand.Hotword,
			}
			all = append(all, m)
			if score >= c.store.threshold {
				matches = append(matches, m)
			}
		}
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].score > all[j].score })
	seen := make(map[string]bool, len(all))
	similarThreshold := c.store.threshold - c.store.similarityDelta
	var nearMisses []Candidate
	for _, m := range all {
		if m.score < similarThreshold || seen[m.hotword] {
			continue
		}
		seen[m.hotword] = true
		nearMisses = append(nearMisses, Candidate{Hotword: m.hotword, Score: round3(m.score)})
	}

	return matches, nearMisses
}

// substitutionScore computes 1 - (total substitution cost / n), where each
// position contributes 0 when values match, 0.5 when both atoms are Mandarin
// and in the same confusable group, and 1.0 otherwise. Unlike
// [phonemizer.Cost], two Mandarin tone atoms that differ are NOT treated as
// similar here — this mirrors the reference corrector's stricter, cheaper
// fixed-window comparison, preserved as-is per design decision.
func substitutionScore(target, source phonemizer.Sequence) float64 {
	n := len(target)
	if n == 0 {
		return 0
	}
	var totalCost float64
	limit := n
	if len(source) < limit {
		limit = len(source)
	}
	for i := 0; i < limit; i++ {
		t, s := target[i], source[i]
		if t.Value == s.Value {
			continue
		}
		if t.Lang == phonemizer.LangZH && s.Lang == phonemizer.LangZH && phonemizer.AreSimilar(t.Value, s.Value) {
			totalCost += 0.5
			continue
		}
		totalCost += 1.0
	}
	return 1.0 - totalCost/float64(n)
}

func (c *Corrector) resolveAndReplace(text string, matches []match) (string, []Correction) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return (matches[i].end - matches[i].start) > (matches[j].end - matches[j].start)
	})

	runes := []rune(text)

	type span struct{ start, end int }
	var occupied []span
	var final []match

	for _, m := range matches {
		overlaps := false
		for _, o := range occupied {
			if !(m.end <= o.start || m.start >= o.end) {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}
		occupied = append(occupied, span{m.start, m.end})

		if m.start < 0 || m.end > len(runes) || string(runes[m.start:m.end]) == m.hotword {
			continue
		}
		final = append(final, m)
	}

	sort.SliceStable(final, func(i, j int) bool { return final[i].start > final[j].start })
	for _, m := range final {
		hw := []rune(m.hotword)
		tail := append([]rune{}, runes[m.end:]...)
		runes = append(runes[:m.start:m.start], append(hw, tail...)...)
	}

	sort.SliceStable(final, func(i, j int) bool { return final[i].start < final[j].start })
	applied := make([]Correction, 0, len(final))
	for _, m := range final {
		applied = append(applied, Correction{Hotword: m.hotword, Score: round3(m.score)})
	}

	return string(runes), applied
}

func round3(f float64) float64 {
	return float64(int(f*1000+0.5)) / 1000
}
