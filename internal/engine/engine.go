// Package engine composes the hotword, rule, and post-processing stages
// into the single-pass correction pipeline that the HTTP/WebSocket layer
// drives, and owns the per-stream [merger.Merger] state used by the
// streaming operations.
//
// Data flow: ASR → [Orchestrator.ApplyCorrections] → hotword correction →
// rule correction → text post-processing → out. [merger.Merger] is
// advanced per chunk by the streaming producer before the orchestrator
// runs; [rectify.Store] is queried separately by the LLM prompt builder
// via [Orchestrator.RetrieveRectifyPrompt].
package engine

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrWong99/zhcorrect/internal/hotword"
	"github.com/MrWong99/zhcorrect/internal/merger"
	"github.com/MrWong99/zhcorrect/internal/observe"
	"github.com/MrWong99/zhcorrect/internal/postproc"
	"github.com/MrWong99/zhcorrect/internal/rectify"
	"github.com/MrWong99/zhcorrect/internal/rule"
)

// Orchestrator applies the hotword → rule → post-processor chain to ASR
// output, and multiplexes [merger.Merger] instances across concurrent
// streaming connections by stream_id.
//
// Safe for concurrent use: the correction stages are each individually
// safe for concurrent use (see [hotword.Corrector], [rule.Corrector],
// [postproc.Processor]), and the stream_id -> merger map is guarded by its
// own mutex. The mutex is held only for the map lookup, so independent
// streams never block each other; calls sharing a stream_id must be
// serialized by the caller.
type Orchestrator struct {
	hotword  *hotword.Corrector
	rule     *rule.Corrector
	postproc *postproc.Processor
	rectify  *rectify.Store
	metrics  *observe.Metrics

	mergerOpts       merger.Options
	rectifyThreshold float64

	streamsMu sync.Mutex
	streams   map[string]*merger.Merger
}

// New returns an [Orchestrator] wired to the given stage implementations.
// rectifyStore may be nil if retrieval-augmented rectification is
// disabled; [Orchestrator.RetrieveRectifyPrompt] then always returns "".
// rectifyThreshold is the minimum [rectify.Store.Search] score a record
// must reach to be included in a retrieved prompt. metrics may be nil to
// disable instrumentation entirely.
func New(hw *hotword.Corrector, rl *rule.Corrector, pp *postproc.Processor, rectifyStore *rectify.Store, metrics *observe.Metrics, mergerOpts merger.Options, rectifyThreshold float64) *Orchestrator {
	return &Orchestrator{
		hotword:          hw,
		rule:             rl,
		postproc:         pp,
		rectify:          rectifyStore,
		metrics:          metrics,
		mergerOpts:       mergerOpts,
		rectifyThreshold: rectifyThreshold,
		streams:          make(map[string]*merger.Merger),
	}
}

// ApplyCorrections runs the fixed hotword → rule → post-processor chain
// over text. It is used both for whole-utterance text and, by callers
// that split transcripts into sentences, once per sentence.
func (o *Orchestrator) ApplyCorrections(text string) string {
	if text == "" {
		return text
	}

	out := text
	if o.hotword != nil {
		out = o.hotword.Correct(out).Text
	}
	if o.rule != nil {
		out = o.rule.Substitute(out)
	}
	if o.postproc != nil {
		out = o.postproc.Process(out)
	}
	return out
}

// ApplySentences runs [Orchestrator.ApplyCorrections] over each sentence
// independently, preserving their order.
func (o *Orchestrator) ApplySentences(sentences []string) []string {
	if len(sentences) == 0 {
		return sentences
	}
	out := make([]string, len(sentences))
	for i, s := range sentences {
		out[i] = o.ApplyCorrections(s)
	}
	return out
}

// CorrectStreamingOnline advances streamID's merger with delta and runs
// the correction chain over the newly merged suffix. It is safe to call
// concurrently for distinct stream IDs; calls sharing a stream ID must be
// serialized by the caller, matching [merger.Merger]'s own concurrency
// contract.
//
// After the merge-and-correct work, the metrics bookkeeping (the merge
// duration histogram and the overlap counter) runs as two arms of an
// [errgroup.Group]; neither arm errors, and the call waits for both before
// returning.
func (o *Orchestrator) CorrectStreamingOnline(ctx context.Context, delta, streamID string) string {
	m := o.streamFor(streamID)
	start := time.Now()

	merged := m.Merge(delta)
	out := o.ApplyCorrections(merged)

	if o.metrics != nil {
		// Merge returns only the non-overlapping suffix, so a shorter
		// result than the raw delta means an overlap was trimmed off.
		foundOverlap := merged != "" && len([]rune(merged)) < len([]rune(delta))
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			o.metrics.MergeDuration.Record(gctx, time.Since(start).Seconds())
			return nil
		})
		g.Go(func() error {
			if foundOverlap {
				o.metrics.MergeOverlaps.Add(gctx, 1)
			}
			return nil
		})
		g.Wait()
	}

	return out
}

// CorrectStreamingFinal reconciles streamID's merger against finalText via
// [merger.Merger.MergeFinal] and runs the correction chain over the
// result, then drops the stream's merger state so a later call with the
// same stream_id starts a fresh utterance.
func (o *Orchestrator) CorrectStreamingFinal(ctx context.Context, finalText, streamID string) string {
	m := o.streamFor(streamID)
	start := time.Now()

	merged := m.MergeFinal(finalText)
	out := o.ApplyCorrections(merged)

	if o.metrics != nil {
		o.metrics.MergeDuration.Record(ctx, time.Since(start).Seconds())
	}

	o.streamsMu.Lock()
	delete(o.streams, streamID)
	o.streamsMu.Unlock()

	return out
}

// RetrieveRectifyPrompt returns a prompt fragment of up to topK
// rectification examples relevant to query, for the LLM prompt builder to
// splice into its context. Returns "" if rectification is disabled or no
// record reaches the rectifyThreshold passed to [New].
func (o *Orchestrator) RetrieveRectifyPrompt(ctx context.Context, query string, topK int) string {
	if o.rectify == nil {
		return ""
	}
	start := time.Now()
	prompt := o.rectify.FormatPrompt(query, topK, o.rectifyThreshold, rectifyPromptPrefix)
	if o.metrics != nil {
		o.metrics.RectifyDuration.Record(ctx, time.Since(start).Seconds())
		if prompt != "" {
			o.metrics.RectifyRetrievals.Add(ctx, 1)
		}
	}
	return prompt
}

const rectifyPromptPrefix = "The ASR transcript may contain the following recognition errors; prefer the corrected reading when it fits the context:"

// ResetStream discards streamID's merger state without running a final
// merge, e.g. when a connection drops mid-utterance.
func (o *Orchestrator) ResetStream(streamID string) {
	o.streamsMu.Lock()
	delete(o.streams, streamID)
	o.streamsMu.Unlock()
}

// streamFor returns streamID's merger, creating one with o.mergerOpts on
// first use.
func (o *Orchestrator) streamFor(streamID string) *merger.Merger {
	o.streamsMu.Lock()
	defer o.streamsMu.Unlock()

	m, ok := o.streams[streamID]
	if !ok {
		m = merger.New(o.mergerOpts)
		o.streams[streamID] = m
	}
	return m
}
