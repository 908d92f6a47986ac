package postproc

import "testing"

func TestNormalizeFullwidth_Digits(t *testing.T) {
	got := NormalizeFullwidth("价格是１２３元", Options{NormalizeFullwidthDigits: true})
	if got != "价格是123元" {
		t.Errorf("NormalizeFullwidth = %q, want %q", got, "价格是123元")
	}
}

func TestNormalizeFullwidth_Letters(t *testing.T) {
	got := NormalizeFullwidth("Ｈｅｌｌｏ", Options{NormalizeFullwidthLetters: true})
	if got != "Hello" {
		t.Errorf("NormalizeFullwidth = %q, want %q", got, "Hello")
	}
}

func TestNormalizeFullwidth_Space(t *testing.T) {
	got := NormalizeFullwidth("a　b", Options{NormalizeFullwidthSpace: true})
	if got != "a b" {
		t.Errorf("NormalizeFullwidth = %q, want %q", got, "a b")
	}
}

func TestNormalizeFullwidth_DisabledCategoryUntouched(t *testing.T) {
	got := NormalizeFullwidth("１２３ＡＢＣ", Options{NormalizeFullwidthDigits: true})
	if got != "123ＡＢＣ" {
		t.Errorf("NormalizeFullwidth = %q, want digits converted but letters untouched", got)
	}
}

func TestNormalizeFullwidth_NoFlagsIsNoOp(t *testing.T) {
	got := NormalizeFullwidth("１２３", Options{})
	if got != "１２３" {
		t.Errorf("NormalizeFullwidth = %q, want unchanged with no flags set", got)
	}
}

func TestNormalizeFullwidth_EmptyInput(t *testing.T) {
	got := NormalizeFullwidth("", Options{NormalizeFullwidthDigits: true})
	if got != "" {
		t.Errorf("NormalizeFullwidth(\"\") = %q, want empty", got)
	}
}
