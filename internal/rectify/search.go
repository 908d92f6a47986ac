package rectify

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/MrWong99/zhcorrect/internal/matcher"
	"github.com/MrWong99/zhcorrect/internal/phonemizer"
)

// Result is one scored retrieval hit.
type Result struct {
	Wrong string
	Right string
	Score float64
}

// Search phonemizes query and scores every loaded record by the best
// (highest-scoring) fragment match, keeping records at or above threshold
// and returning the top-K sorted by score descending. Fragment scoring
// across records runs concurrently via an errgroup.
func (s *Store) Search(query string, topK int, threshold float64) []Result {
	records := s.snapshot()
	if len(records) == 0 || query == "" || topK <= 0 {
		return nil
	}

	queryPhonemes := phonemizer.Phonemize(query)
	scores := make([]float64, len(records))

	g, _ := errgroup.WithContext(context.Background())
	for i := range records {
		i := i
		g.Go(func() error {
			scores[i] = bestFragmentScore(records[i].Fragments, queryPhonemes)
			return nil
		})
	}
	_ = g.Wait() // scoring never returns an error; Wait only for completion

	results := make([]Result, 0, len(records))
	for i, rec := range records {
		if scores[i] < threshold {
			continue
		}
		results = append(results, Result{
			Wrong: rec.Wrong,
			Right: rec.Right,
			Score: round3(scores[i]),
		})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

func bestFragmentScore(fragments []Fragment, query phonemizer.Sequence) float64 {
	best := 0.0
	for _, frag := range fragments {
		if len(frag.Phonemes) == 0 {
			continue
		}
		dist := matcher.FuzzySubstringDistance(frag.Phonemes, query)
		score := 1 - dist/float64(len(frag.Phonemes))
		if score > best {
			best = score
		}
	}
	return best
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

// FormatPrompt runs Search and renders the result as an LLM-ready context
// block: "prefix\n- wrong => right\n...". Returns the empty string when
// there are no matches at or above threshold.
func (s *Store) FormatPrompt(query string, topK int, threshold float64, prefix string) string {
	results := s.Search(query, topK, threshold)
	if len(results) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(prefix)
	for _, r := range results {
		b.WriteByte('\n')
		fmt.Fprintf(&b, "- %s => %s", r.Wrong, r.Right)
	}
	return b.String()
}
