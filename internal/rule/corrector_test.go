package rule_test

import (
	"testing"

	"github.com/MrWong99/zhcorrect/internal/rule"
)

func TestSubstituteAppliesRules(t *testing.T) {
	t.Parallel()

	c := rule.New()
	c.Load("毫安时 = mAh\n赫兹 = Hz\n")

	got := c.Substitute("这款手机有5000毫安时")
	want := "这款手机有5000mAh"
	if got != want {
		t.Errorf("Substitute() = %q, want %q", got, want)
	}
}

func TestSubstituteSkipsInvalidPattern(t *testing.T) {
	t.Parallel()

	c := rule.New()
	c.Load("( = open\n伏特 = V\n")

	got := c.Substitute("这是5伏特")
	if got != "这是5V" {
		t.Errorf("Substitute() = %q, want valid rule applied despite bad pattern before it", got)
	}
}

func TestSubstituteEmptyText(t *testing.T) {
	t.Parallel()

	c := rule.New()
	c.Load("a = b")
	if got := c.Substitute(""); got != "" {
		t.Errorf("Substitute(\"\") = %q, want \"\"", got)
	}
}

func TestSubstituteWithInfoReportsChanges(t *testing.T) {
	t.Parallel()

	c := rule.New()
	c.Load("赫兹 = Hz")

	result, subs := c.SubstituteWithInfo("国内交流电50赫兹")
	if result != "国内交流电50Hz" {
		t.Errorf("result = %q", result)
	}
	if len(subs) != 1 || subs[0].Original != "赫兹" || subs[0].Replaced != "Hz" {
		t.Errorf("subs = %+v", subs)
	}
}

func TestLoadDuplicatePatternKeepsPositionUsesLatestReplacement(t *testing.T) {
	t.Parallel()

	c := rule.New()
	c.Load("a = 1\nb = 2\na = 3\n")

	got := c.Substitute("ab")
	if got != "32" {
		t.Errorf("Substitute() = %q, want %q (a re-bound to 3, applied first by position)", got, "32")
	}
}
