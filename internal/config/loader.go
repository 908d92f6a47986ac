package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated [Config].
// It is a convenience wrapper around [LoadFromReader] and [Validate].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	if cfg.Hotword.Threshold < 0 || cfg.Hotword.Threshold > 1 {
		errs = append(errs, fmt.Errorf("hotword.threshold %.2f must be in [0, 1]", cfg.Hotword.Threshold))
	}
	if cfg.Hotword.SimilarityDelta < 0 {
		errs = append(errs, fmt.Errorf("hotword.similarity_delta %.2f must be >= 0", cfg.Hotword.SimilarityDelta))
	}
	if cfg.Hotword.DictPath == "" {
		slog.Warn("hotword.dict_path is empty; hotword correction will be a no-op")
	}

	if cfg.Rule.RulesPath == "" {
		slog.Warn("rule.rules_path is empty; rule correction will be a no-op")
	}

	if cfg.Rectify.PostgresDSN != "" && cfg.Rectify.EmbeddingDimensions <= 0 {
		slog.Warn("rectify.postgres_dsn is configured but rectify.embedding_dimensions is not set; defaulting to 1536")
	}

	if cfg.Merger.FinalReplaceRatio < 0 || cfg.Merger.FinalReplaceRatio > 1 {
		errs = append(errs, fmt.Errorf("merger.final_replace_ratio %.2f must be in [0, 1]", cfg.Merger.FinalReplaceRatio))
	}
	if cfg.Merger.OverlapChars < 0 {
		errs = append(errs, fmt.Errorf("merger.overlap_chars %d must be >= 0", cfg.Merger.OverlapChars))
	}
	if cfg.Merger.ErrorTolerance < 0 {
		errs = append(errs, fmt.Errorf("merger.error_tolerance %d must be >= 0", cfg.Merger.ErrorTolerance))
	}

	return errors.Join(errs...)
}
