package matcher_test

import (
	"testing"

	"github.com/MrWong99/zhcorrect/internal/matcher"
	"github.com/MrWong99/zhcorrect/internal/phonemizer"
)

func TestFastIndexSearchFindsExactHotword(t *testing.T) {
	t.Parallel()

	idx := matcher.NewFastIndex(0.5)
	idx.AddHotwords(map[string]phonemizer.Sequence{
		"北京烤鸭": phonemizer.Phonemize("北京烤鸭"),
		"上海滩":  phonemizer.Phonemize("上海滩"),
	})

	results := idx.Search(phonemizer.Phonemize("我喜欢北京烤鸭"), 5)
	if len(results) == 0 {
		t.Fatal("expected at least one candidate")
	}
	found := false
	for _, r := range results {
		if r.Hotword == "北京烤鸭" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 北京烤鸭 among results, got %+v", results)
	}
}

func TestFastIndexResetClearsCandidates(t *testing.T) {
	t.Parallel()

	idx := matcher.NewFastIndex(0.1)
	idx.AddHotwords(map[string]phonemizer.Sequence{
		"热词": phonemizer.Phonemize("热词"),
	})
	idx.Reset()

	results := idx.Search(phonemizer.Phonemize("热词"), 5)
	if len(results) != 0 {
		t.Errorf("expected no results after reset, got %+v", results)
	}
}

func TestFastIndexSearchEmptyInput(t *testing.T) {
	t.Parallel()

	idx := matcher.NewFastIndex(0.5)
	if got := idx.Search(nil, 5); got != nil {
		t.Errorf("expected nil for empty input, got %+v", got)
	}
}
