// Package observe provides application-wide observability primitives for
// zhcorrect: OpenTelemetry metrics and distributed tracing.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can still be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all zhcorrect metrics.
const meterName = "github.com/MrWong99/zhcorrect"

// Metrics holds all OpenTelemetry metric instruments for the correction
// pipeline. All fields are safe for concurrent use — the underlying OTel
// types handle their own synchronisation.
type Metrics struct {
	// --- Latency histograms per pipeline stage ---

	// HotwordDuration tracks phoneme-fuzzy hotword correction latency.
	HotwordDuration metric.Float64Histogram

	// RuleDuration tracks regex rule substitution latency.
	RuleDuration metric.Float64Histogram

	// ITNDuration tracks inverse text normalization latency.
	ITNDuration metric.Float64Histogram

	// PostProcDuration tracks the full post-processing chain latency.
	PostProcDuration metric.Float64Histogram

	// RectifyDuration tracks retrieval-augmented rectification latency.
	RectifyDuration metric.Float64Histogram

	// MergeDuration tracks streaming transcript merge latency.
	MergeDuration metric.Float64Histogram

	// --- Counters ---

	// HotwordCorrections counts applied hotword corrections. Use with
	// attribute: attribute.String("hotword", ...)
	HotwordCorrections metric.Int64Counter

	// RuleSubstitutions counts applied rule substitutions. Use with
	// attribute: attribute.String("pattern", ...)
	RuleSubstitutions metric.Int64Counter

	// ITNConversions counts spans rewritten by the ITN classifier chain.
	ITNConversions metric.Int64Counter

	// RectifyRetrievals counts rectification fragments retrieved and
	// injected into a prompt.
	RectifyRetrievals metric.Int64Counter

	// MergeOverlaps counts streaming merges that found a suffix/prefix
	// overlap (as opposed to a plain concatenation).
	MergeOverlaps metric.Int64Counter

	// --- Error counters ---

	// StoreReloadErrors counts failed hotword/rule/rectify store reloads.
	// Use with attribute: attribute.String("store", ...)
	StoreReloadErrors metric.Int64Counter

	// --- Gauges ---

	// HotwordDictSize tracks the number of loaded hotword entries.
	HotwordDictSize metric.Int64UpDownCounter

	// RuleCount tracks the number of loaded rule entries.
	RuleCount metric.Int64UpDownCounter
}

// latencyBuckets defines histogram bucket boundaries (in seconds) optimised
// for single-utterance text-correction latencies.
var latencyBuckets = []float64{
	0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.HotwordDuration, err = m.Float64Histogram("zhcorrect.hotword.duration",
		metric.WithDescription("Latency of phoneme-fuzzy hotword correction."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.RuleDuration, err = m.Float64Histogram("zhcorrect.rule.duration",
		metric.WithDescription("Latency of regex rule substitution."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ITNDuration, err = m.Float64Histogram("zhcorrect.itn.duration",
		metric.WithDescription("Latency of inverse text normalization."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.PostProcDuration, err = m.Float64Histogram("zhcorrect.postproc.duration",
		metric.WithDescription("Latency of the full text post-processing chain."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.RectifyDuration, err = m.Float64Histogram("zhcorrect.rectify.duration",
		metric.WithDescription("Latency of retrieval-augmented rectification."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.MergeDuration, err = m.Float64Histogram("zhcorrect.merge.duration",
		metric.WithDescription("Latency of streaming transcript merge."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	if met.HotwordCorrections, err = m.Int64Counter("zhcorrect.hotword.corrections",
		metric.WithDescription("Total hotword corrections applied."),
	); err != nil {
		return nil, err
	}
	if met.RuleSubstitutions, err = m.Int64Counter("zhcorrect.rule.substitutions",
		metric.WithDescription("Total rule substitutions applied."),
	); err != nil {
		return nil, err
	}
	if met.ITNConversions, err = m.Int64Counter("zhcorrect.itn.conversions",
		metric.WithDescription("Total spans rewritten by ITN."),
	); err != nil {
		return nil, err
	}
	if met.RectifyRetrievals, err = m.Int64Counter("zhcorrect.rectify.retrievals",
		metric.WithDescription("Total rectification fragments retrieved."),
	); err != nil {
		return nil, err
	}
	if met.MergeOverlaps, err = m.Int64Counter("zhcorrect.merge.overlaps",
		metric.WithDescription("Total streaming merges that found an overlap."),
	); err != nil {
		return nil, err
	}

	if met.StoreReloadErrors, err = m.Int64Counter("zhcorrect.store.reload_errors",
		metric.WithDescription("Total failed store reloads by store name."),
	); err != nil {
		return nil, err
	}

	if met.HotwordDictSize, err = m.Int64UpDownCounter("zhcorrect.hotword.dict_size",
		metric.WithDescription("Number of loaded hotword entries."),
	); err != nil {
		return nil, err
	}
	if met.RuleCount, err = m.Int64UpDownCounter("zhcorrect.rule.count",
		metric.WithDescription("Number of loaded rule entries."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordHotwordCorrection is a convenience method that records a hotword
// correction counter increment with the standard attribute set.
func (m *Metrics) RecordHotwordCorrection(ctx context.Context, hotword string) {
	m.HotwordCorrections.Add(ctx, 1,
		metric.WithAttributes(attribute.String("hotword", hotword)),
	)
}

// RecordRuleSubstitution is a convenience method that records a rule
// substitution counter increment.
func (m *Metrics) RecordRuleSubstitution(ctx context.Context, pattern string) {
	m.RuleSubstitutions.Add(ctx, 1,
		metric.WithAttributes(attribute.String("pattern", pattern)),
	)
}

// RecordStoreReloadError is a convenience method that records a store
// reload error counter increment.
func (m *Metrics) RecordStoreReloadError(ctx context.Context, store string) {
	m.StoreReloadErrors.Add(ctx, 1,
		metric.WithAttributes(attribute.String("store", store)),
	)
}
