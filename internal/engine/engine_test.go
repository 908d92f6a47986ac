package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/MrWong99/zhcorrect/internal/hotword"
	"github.com/MrWong99/zhcorrect/internal/merger"
	"github.com/MrWong99/zhcorrect/internal/postproc"
	"github.com/MrWong99/zhcorrect/internal/rectify"
	"github.com/MrWong99/zhcorrect/internal/rule"
)

func newTestOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()

	hwStore := hotword.NewStore(0.8, 0.15)
	hwStore.LoadText("葛瑞丰")
	hw := hotword.New(hwStore, 5)

	rl := rule.New()
	rl.Load("毫安时 = mAh")

	pp := postproc.NewProcessor(postproc.Options{
		FillerRemoveEnable: true,
		PuncConvertEnable:  true,
	}, nil)

	rs := rectify.NewStore(0, 0)
	rs.LoadText("曹草率领大军\n曹操率领大军\n---\n")

	return New(hw, rl, pp, rs, nil, merger.Options{
		OverlapChars:      10,
		MaxOverlapCheck:   50,
		ErrorTolerance:    1,
		MaxSkipNew:        3,
		FinalReplaceRatio: 0.8,
	}, 0.3)
}

func TestApplyCorrections_EmptyTextShortCircuits(t *testing.T) {
	o := newTestOrchestrator(t)
	if got := o.ApplyCorrections(""); got != "" {
		t.Errorf("ApplyCorrections(\"\") = %q, want empty", got)
	}
}

func TestApplyCorrections_RunsRuleStage(t *testing.T) {
	o := newTestOrchestrator(t)
	got := o.ApplyCorrections("电池容量是5000毫安时")
	if !strings.Contains(got, "mAh") {
		t.Errorf("ApplyCorrections = %q, want it to contain the rule substitution", got)
	}
}

func TestApplySentences_PreservesOrder(t *testing.T) {
	o := newTestOrchestrator(t)
	in := []string{"5000毫安时", "你好"}
	got := o.ApplySentences(in)
	if len(got) != 2 {
		t.Fatalf("ApplySentences returned %d results, want 2", len(got))
	}
	if !strings.Contains(got[0], "mAh") {
		t.Errorf("sentence 0 = %q, want rule substitution applied", got[0])
	}
}

func TestApplySentences_EmptySliceReturnsEmpty(t *testing.T) {
	o := newTestOrchestrator(t)
	got := o.ApplySentences(nil)
	if len(got) != 0 {
		t.Errorf("ApplySentences(nil) = %v, want empty", got)
	}
}

func TestCorrectStreamingOnline_MergesBeforeApplying(t *testing.T) {
	o := newTestOrchestrator(t)
	first := o.CorrectStreamingOnline(context.Background(), "电池容量是5000", "conn-1")
	if first == "" {
		t.Fatal("expected first chunk to seed the stream buffer")
	}
	second := o.CorrectStreamingOnline(context.Background(), "5000毫安时", "conn-1")
	if !strings.Contains(second, "mAh") {
		t.Errorf("second chunk = %q, want the merged suffix to contain the rule substitution", second)
	}
}

func TestCorrectStreamingOnline_DistinctStreamsAreIndependent(t *testing.T) {
	o := newTestOrchestrator(t)
	o.CorrectStreamingOnline(context.Background(), "今天天气很好", "conn-a")
	// A fresh stream ID should not see conn-a's buffer at all.
	got := o.CorrectStreamingOnline(context.Background(), "你好", "conn-b")
	if got != "你好" {
		t.Errorf("CorrectStreamingOnline on a new stream = %q, want %q", got, "你好")
	}
}

func TestCorrectStreamingFinal_DropsStreamAfterward(t *testing.T) {
	o := newTestOrchestrator(t)
	o.CorrectStreamingOnline(context.Background(), "今天天气很好", "conn-1")
	final := o.CorrectStreamingFinal(context.Background(), "今天天气很好呀", "conn-1")
	if final == "" {
		t.Fatal("expected a non-empty final merge result")
	}

	o.streamsMu.Lock()
	_, exists := o.streams["conn-1"]
	o.streamsMu.Unlock()
	if exists {
		t.Error("expected stream state to be dropped after CorrectStreamingFinal")
	}
}

func TestResetStream_DropsStreamWithoutFinalizing(t *testing.T) {
	o := newTestOrchestrator(t)
	o.CorrectStreamingOnline(context.Background(), "你好", "conn-1")
	o.ResetStream("conn-1")

	o.streamsMu.Lock()
	_, exists := o.streams["conn-1"]
	o.streamsMu.Unlock()
	if exists {
		t.Error("expected stream state to be dropped after ResetStream")
	}
}

func TestRetrieveRectifyPrompt_ReturnsFormattedFragment(t *testing.T) {
	o := newTestOrchestrator(t)
	got := o.RetrieveRectifyPrompt(context.Background(), "曹草率领大军", 3)
	if got == "" {
		t.Fatal("expected a non-empty rectify prompt for a close phonetic match")
	}
	if !strings.Contains(got, "曹操率领大军") {
		t.Errorf("RetrieveRectifyPrompt = %q, want it to mention the corrected reading", got)
	}
}

func TestRetrieveRectifyPrompt_NilStoreReturnsEmpty(t *testing.T) {
	hwStore := hotword.NewStore(0.8, 0.15)
	hw := hotword.New(hwStore, 5)
	o := New(hw, rule.New(), postproc.NewProcessor(postproc.Options{}, nil), nil, nil, merger.DefaultOptions(), 0.3)
	if got := o.RetrieveRectifyPrompt(context.Background(), "无所谓", 3); got != "" {
		t.Errorf("RetrieveRectifyPrompt with nil store = %q, want empty", got)
	}
}
