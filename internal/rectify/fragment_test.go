package rectify

import "testing"

func TestExtractFragments_SimpleReplace(t *testing.T) {
	frags := extractFragments("曹草来了", "曹操来了", DefaultZhMinPhonemes, DefaultExpandWords)
	if len(frags) == 0 {
		t.Fatal("expected at least one fragment")
	}
	found := false
	for _, f := range frags {
		// "草"/"操" phonemize to 3 atoms, below DefaultZhMinPhonemes, so
		// each is widened by one token on either side.
		if f.Text == "曹草来" || f.Text == "曹操来" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a fragment containing the replaced character, got %+v", frags)
	}
}

func TestExtractFragments_ShortFragmentExpanded(t *testing.T) {
	// "他" differs, but a single-character zh fragment has far fewer than
	// DefaultZhMinPhonemes phonemes, so it should be widened by
	// DefaultExpandWords tokens on each side rather than kept bare.
	frags := extractFragments("他来了北京", "她来了北京", DefaultZhMinPhonemes, DefaultExpandWords)
	if len(frags) == 0 {
		t.Fatal("expected at least one fragment")
	}
	for _, f := range frags {
		if len([]rune(f.Text)) < 2 {
			t.Errorf("fragment %q should have been expanded beyond a single character", f.Text)
		}
	}
}

func TestExtractFragments_IdenticalStringsProduceNoFragments(t *testing.T) {
	frags := extractFragments("完全相同", "完全相同", DefaultZhMinPhonemes, DefaultExpandWords)
	if len(frags) != 0 {
		t.Errorf("expected no fragments for identical strings, got %+v", frags)
	}
}

func TestExtractFragments_RepeatedIdenticalStringsProduceNoFragments(t *testing.T) {
	frags := extractFragments("测试测试", "测试测试", DefaultZhMinPhonemes, DefaultExpandWords)
	if len(frags) != 0 {
		t.Errorf("expected no fragments, got %+v", frags)
	}
}

func TestExtractFragments_NonZhFragmentKeptBare(t *testing.T) {
	frags := extractFragments("使用API接口", "使用SDK接口", DefaultZhMinPhonemes, DefaultExpandWords)
	found := false
	for _, f := range frags {
		if f.Text == "API" || f.Text == "SDK" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a bare non-zh fragment, got %+v", frags)
	}
}
