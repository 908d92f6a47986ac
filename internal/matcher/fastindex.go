package matcher

import (
	"sort"
	"strings"
	"sync"

	"github.com/antzucaro/matchr"

	"github.com/MrWong99/zhcorrect/internal/phonemizer"
)

// ScoredHotword is one ranked result of [FastIndex.Search].
type ScoredHotword struct {
	Hotword string
	Score   float64
}

type indexEntry struct {
	hotword string
	codes   []int32
	// metaCode is the Double Metaphone encoding of hotword, used only to
	// break ties among candidates that land on the same integer-code score.
	metaCode string
}

// FastIndex is a coarse inverted-index candidate filter over hotword
// phoneme sequences, mirroring the reference FastRAG: phoneme values are
// interned to small integers, each hotword is indexed under the codes of
// its first two atoms, and [FastIndex.Search] computes an exact-match-only
// edit distance (no similar-phoneme partial credit — that refinement is
// reserved for the precise [FuzzySubstringSearch] pass that follows) over
// only the candidates that share a code with the query.
//
// Atoms are interned as "lang:value" rather than bare value, so that a
// Chinese initial and an English letter that happen to share a spelling
// never collide in the index.
//
// All methods are safe for concurrent use.
type FastIndex struct {
	mu           sync.RWMutex
	codeID       map[string]int32
	index        map[int32][]indexEntry
	hotwordCount int
	threshold    float64
}

// NewFastIndex returns an empty [FastIndex]. threshold is the minimum
// 1-distance/len(codes) score a candidate must reach to be returned by
// [FastIndex.Search].
func NewFastIndex(threshold float64) *FastIndex {
	idx := &FastIndex{
		codeID: make(map[string]int32),
		index:  make(map[int32][]indexEntry),
	}
	return idx.withThreshold(threshold)
}

func (idx *FastIndex) withThreshold(t float64) *FastIndex {
	idx.threshold = t
	return idx
}

// Reset clears the index, discarding all hotwords.
func (idx *FastIndex) Reset() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.codeID = make(map[string]int32)
	idx.index = make(map[int32][]indexEntry)
	idx.hotwordCount = 0
}

// AddHotwords indexes hotword -> phoneme sequence pairs, appending to
// whatever is already indexed. Call [FastIndex.Reset] first to replace the
// index wholesale (the pattern used by hotword store reloads).
func (idx *FastIndex) AddHotwords(hotwords map[string]phonemizer.Sequence) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for hw, seq := range hotwords {
		if len(seq) == 0 {
			continue
		}
		codes := idx.encodeLocked(seq)
		primaryMeta, _ := matchr.DoubleMetaphone(hw)
		entry := indexEntry{hotword: hw, codes: codes, metaCode: primaryMeta}

		limit := 2
		if len(codes) < limit {
			limit = len(codes)
		}
		for i := 0; i < limit; i++ {
			idx.index[codes[i]] = append(idx.index[codes[i]], entry)
		}
		idx.hotwordCount++
	}
}

func (idx *FastIndex) encodeLocked(seq phonemizer.Sequence) []int32 {
	codes := make([]int32, len(seq))
	for i, a := range seq {
		key := string(a.Lang) + ":" + a.Value
		id, ok := idx.codeID[key]
		if !ok {
			id = int32(len(idx.codeID) + 1)
			idx.codeID[key] = id
		}
		codes[i] = id
	}
	return codes
}

// Search returns up to topK hotwords whose indexed code sequence
// fuzzy-matches input, ordered by descending score. Candidates whose code
// length exceeds len(input)+3 are rejected outright (they cannot possibly
// fit), matching the reference implementation's cheap pre-filter.
func (idx *FastIndex) Search(input phonemizer.Sequence, topK int) []ScoredHotword {
	if len(input) == 0 {
		return nil
	}

	idx.mu.RLock()
	inputCodes := idx.lookupCodesLocked(input)
	unique := uniqueInts(inputCodes)

	var candidates []indexEntry
	for _, c := range unique {
		candidates = append(candidates, idx.index[c]...)
	}
	threshold := idx.threshold
	idx.mu.RUnlock()

	inputStr := atomsToString(input)

	seen := make(map[string]bool, len(candidates))
	results := make([]ScoredHotword, 0, len(candidates))

	for _, cand := range candidates {
		if seen[cand.hotword] || len(cand.codes) > len(inputCodes)+3 {
			continue
		}
		seen[cand.hotword] = true

		dist := codeEditDistance(inputCodes, cand.codes)
		score := 1.0 - dist/float64(len(cand.codes))
		if score < threshold {
			continue
		}
		results = append(results, ScoredHotword{Hotword: cand.hotword, Score: round3(score)})
	}

	// Break score ties with Jaro-Winkler similarity against the raw input
	// string, so the coarse integer-code distance resolves in favour of the
	// phonetically closer candidate before the precise DP pass runs.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return matchr.JaroWinkler(results[i].Hotword, inputStr, false) >
			matchr.JaroWinkler(results[j].Hotword, inputStr, false)
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results
}

// lookupCodesLocked must be called with idx.mu held (read or write).
func (idx *FastIndex) lookupCodesLocked(seq phonemizer.Sequence) []int32 {
	codes := make([]int32, 0, len(seq))
	for _, a := range seq {
		key := string(a.Lang) + ":" + a.Value
		if id, ok := idx.codeID[key]; ok {
			codes = append(codes, id)
		} else {
			codes = append(codes, 0) // unseen phoneme: distinct sentinel code
		}
	}
	return codes
}

func uniqueInts(in []int32) []int32 {
	seen := make(map[int32]bool, len(in))
	out := make([]int32, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// codeEditDistance is the integer-alphabet analogue of
// [FuzzySubstringDistance]: an exact-match-only (cost 0 or 1) Levenshtein
// substring search, used only as the coarse filter's ranking signal.
func codeEditDistance(main, sub []int32) float64 {
	n, m := len(sub), len(main)
	if n == 0 || m == 0 {
		return float64(n)
	}

	dp := make([][]float64, n+1)
	for i := range dp {
		dp[i] = make([]float64, m+1)
	}
	for i := 1; i <= n; i++ {
		dp[i][0] = float64(i)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			cost := 1.0
			if sub[i-1] == main[j-1] {
				cost = 0.0
			}
			dp[i][j] = minOf3(dp[i-1][j]+1.0, dp[i][j-1]+1.0, dp[i-1][j-1]+cost)
		}
	}

	min := dp[n][1]
	for _, v := range dp[n][1:] {
		if v < min {
			min = v
		}
	}
	return min
}

func atomsToString(seq phonemizer.Sequence) string {
	var sb strings.Builder
	for _, a := range seq {
		sb.WriteString(a.Value)
	}
	return sb.String()
}

func round3(f float64) float64 {
	return float64(int(f*1000+0.5)) / 1000
}
