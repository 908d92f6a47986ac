package postproc

import "testing"

func TestAddSpacing_CJKAlnumBoundary(t *testing.T) {
	got := AddSpacing("共有3个apple和2个banana")
	want := "共有 3 个 apple 和 2 个 banana"
	if got != want {
		t.Errorf("AddSpacing = %q, want %q", got, want)
	}
}

func TestAddSpacing_NoChangeForPureCJK(t *testing.T) {
	got := AddSpacing("今天天气很好")
	if got != "今天天气很好" {
		t.Errorf("AddSpacing = %q, want unchanged", got)
	}
}

func TestAddSpacing_CollapsesExistingWhitespace(t *testing.T) {
	got := AddSpacing("hello    world")
	if got != "hello world" {
		t.Errorf("AddSpacing = %q, want %q", got, "hello world")
	}
}

func TestAddSpacing_EmptyInput(t *testing.T) {
	got := AddSpacing("")
	if got != "" {
		t.Errorf("AddSpacing(\"\") = %q, want empty", got)
	}
}

func TestAddSpacing_PunctuationNotSpaced(t *testing.T) {
	got := AddSpacing("价格是100元，谢谢")
	want := "价格是 100 元，谢谢"
	if got != want {
		t.Errorf("AddSpacing = %q, want %q", got, want)
	}
}
