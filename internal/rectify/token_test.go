package rectify

import "testing"

func TestTokenize_HanPerCharacter(t *testing.T) {
	toks := tokenize("你好世界")
	if len(toks) != 4 {
		t.Fatalf("tokenize returned %d tokens, want 4", len(toks))
	}
	want := []string{"你", "好", "世", "界"}
	for i, tok := range toks {
		if tok.Text != want[i] {
			t.Errorf("token[%d] = %q, want %q", i, tok.Text, want[i])
		}
	}
}

func TestTokenize_AsciiRunBrokenOnCaseTransition(t *testing.T) {
	toks := tokenize("FooBar12")
	want := []string{"Foo", "Bar12"}
	if len(toks) != len(want) {
		t.Fatalf("tokenize returned %v, want %v", texts(toks), want)
	}
	for i, tok := range toks {
		if tok.Text != want[i] {
			t.Errorf("token[%d] = %q, want %q", i, tok.Text, want[i])
		}
	}
}

func TestTokenize_MixedCJKAndAscii(t *testing.T) {
	toks := tokenize("这是test123")
	want := []string{"这", "是", "test123"}
	if len(toks) != len(want) {
		t.Fatalf("tokenize returned %v, want %v", texts(toks), want)
	}
}

func TestTokenize_PunctuationSkipped(t *testing.T) {
	toks := tokenize("你好，世界！")
	if len(toks) != 4 {
		t.Fatalf("tokenize returned %d tokens, want 4 (punctuation skipped)", len(toks))
	}
}

func TestTokenize_OffsetsRoundTrip(t *testing.T) {
	s := "你好world"
	toks := tokenize(s)
	for _, tok := range toks {
		if s[tok.Start:tok.End] != tok.Text {
			t.Errorf("s[%d:%d] = %q, want %q", tok.Start, tok.End, s[tok.Start:tok.End], tok.Text)
		}
	}
}
