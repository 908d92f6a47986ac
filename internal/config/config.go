// Package config provides the configuration schema, loader, and file
// watcher for the zhcorrect text-correction pipeline.
package config

// Config is the root configuration structure for zhcorrect.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Hotword  HotwordConfig  `yaml:"hotword"`
	Rule     RuleConfig     `yaml:"rule"`
	ITN      ITNConfig      `yaml:"itn"`
	PostProc PostProcConfig `yaml:"postproc"`
	Rectify  RectifyConfig  `yaml:"rectify"`
	Merger   MergerConfig   `yaml:"merger"`
}

// LogLevel controls log verbosity.
type LogLevel string

// Valid log levels.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// IsValid reports whether l is one of the recognised log levels.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, "":
		return true
	}
	return false
}

// ServerConfig holds logging and metrics settings.
type ServerConfig struct {
	// LogLevel controls verbosity. Valid values: "debug", "info", "warn", "error".
	LogLevel LogLevel `yaml:"log_level"`

	// MetricsAddr, if non-empty, is the address the Prometheus metrics
	// endpoint listens on (e.g., ":9090"). Leave empty to disable.
	MetricsAddr string `yaml:"metrics_addr"`
}

// HotwordConfig configures the phoneme-fuzzy hotword corrector.
type HotwordConfig struct {
	// DictPath is a text file with one hotword per line (blank lines and
	// lines starting with "#" are ignored).
	DictPath string `yaml:"dict_path"`

	// Threshold is the minimum phoneme-similarity score (0-1) a candidate
	// must reach to be applied as a correction.
	Threshold float64 `yaml:"threshold"`

	// SimilarityDelta widens the coarse FastIndex filter below Threshold
	// so near-miss candidates are still surfaced for inspection.
	SimilarityDelta float64 `yaml:"similarity_delta"`

	// TopK bounds how many near-miss candidates Correct reports per call.
	TopK int `yaml:"top_k"`
}

// RuleConfig configures the literal/regex rule corrector.
type RuleConfig struct {
	// RulesPath is a text file with "pattern = replacement" lines.
	RulesPath string `yaml:"rules_path"`
}

// ITNConfig configures inverse text normalization.
type ITNConfig struct {
	Enabled bool `yaml:"enabled"`

	// Strict also converts standalone "一" in digit runs.
	Strict bool `yaml:"strict"`
}

// PostProcConfig configures the text post-processing stage chain.
type PostProcConfig struct {
	RemoveFillers      bool `yaml:"remove_fillers"`
	RemoveErhua        bool `yaml:"remove_erhua"`
	NormalizeFullwidth bool `yaml:"normalize_fullwidth"`
	SpaceCJKASCII      bool `yaml:"space_cjk_ascii"`

	// ZhVariantDictPath is a JSON file mapping variant phrases to their
	// canonical form (simplified/traditional or regional lexical variants).
	ZhVariantDictPath string `yaml:"zh_variant_dict_path"`
}

// RectifyConfig configures the retrieval-augmented rectification store.
type RectifyConfig struct {
	// KnowledgePath is a "---"-delimited text file of reference passages.
	KnowledgePath string `yaml:"knowledge_path"`

	// PostgresDSN, if set, adds the records of a pgvector-indexed Postgres
	// table to the knowledge base loaded at startup; retrieval still runs
	// against the in-memory store.
	PostgresDSN string `yaml:"postgres_dsn"`

	EmbeddingDimensions int     `yaml:"embedding_dimensions"`
	Threshold           float64 `yaml:"threshold"`
}

// MergerConfig configures streaming transcript merging.
type MergerConfig struct {
	// OverlapChars is the maximum suffix/prefix length considered when
	// looking for an overlap between the buffered text and an incoming
	// delta.
	OverlapChars int `yaml:"overlap_chars"`

	// MaxOverlapCheck caps how far back into the buffer an overlap search
	// looks, independent of OverlapChars, bounding worst-case cost on long
	// buffers.
	MaxOverlapCheck int `yaml:"max_overlap_check"`

	// ErrorTolerance is the maximum Levenshtein distance allowed between a
	// candidate buffer suffix and delta prefix for a fuzzy (non-exact)
	// overlap to be accepted.
	ErrorTolerance int `yaml:"error_tolerance"`

	// MaxSkipNew bounds how many leading characters of an incoming chunk
	// MergeByText may skip over as noise before it gives up looking for a
	// stitch point.
	MaxSkipNew int `yaml:"max_skip_new"`

	// FinalReplaceRatio is the |final|/|buffer| ratio at or above which
	// MergeFinal replaces the buffer outright rather than splicing.
	FinalReplaceRatio float64 `yaml:"final_replace_ratio"`
}
