package config_test

import (
	"testing"

	"github.com/MrWong99/zhcorrect/internal/config"
)

func TestDiff_NoChanges(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{
		Server:  config.ServerConfig{LogLevel: config.LogLevelInfo},
		Hotword: config.HotwordConfig{DictPath: "./hotwords.txt", Threshold: 0.8},
	}
	d := config.Diff(cfg, cfg)
	if d.LogLevelChanged {
		t.Error("expected LogLevelChanged=false for identical configs")
	}
	if d.HotwordChanged {
		t.Error("expected HotwordChanged=false for identical configs")
	}
}

func TestDiff_LogLevelChanged(t *testing.T) {
	t.Parallel()
	old := &config.Config{Server: config.ServerConfig{LogLevel: config.LogLevelInfo}}
	newCfg := &config.Config{Server: config.ServerConfig{LogLevel: config.LogLevelDebug}}

	d := config.Diff(old, newCfg)
	if !d.LogLevelChanged {
		t.Error("expected LogLevelChanged=true")
	}
	if d.NewLogLevel != config.LogLevelDebug {
		t.Errorf("expected NewLogLevel=debug, got %q", d.NewLogLevel)
	}
}

func TestDiff_HotwordChanged(t *testing.T) {
	t.Parallel()
	old := &config.Config{Hotword: config.HotwordConfig{Threshold: 0.8}}
	newCfg := &config.Config{Hotword: config.HotwordConfig{Threshold: 0.9}}

	d := config.Diff(old, newCfg)
	if !d.HotwordChanged {
		t.Error("expected HotwordChanged=true")
	}
	if d.RuleChanged {
		t.Error("expected RuleChanged=false")
	}
}

func TestDiff_RuleChanged(t *testing.T) {
	t.Parallel()
	old := &config.Config{Rule: config.RuleConfig{RulesPath: "a.txt"}}
	newCfg := &config.Config{Rule: config.RuleConfig{RulesPath: "b.txt"}}

	d := config.Diff(old, newCfg)
	if !d.RuleChanged {
		t.Error("expected RuleChanged=true")
	}
}

func TestDiff_ITNChanged(t *testing.T) {
	t.Parallel()
	old := &config.Config{ITN: config.ITNConfig{Enabled: false}}
	newCfg := &config.Config{ITN: config.ITNConfig{Enabled: true}}

	d := config.Diff(old, newCfg)
	if !d.ITNChanged {
		t.Error("expected ITNChanged=true")
	}
}

func TestDiff_RectifyChanged(t *testing.T) {
	t.Parallel()
	old := &config.Config{Rectify: config.RectifyConfig{KnowledgePath: "a.txt"}}
	newCfg := &config.Config{Rectify: config.RectifyConfig{KnowledgePath: "b.txt"}}

	d := config.Diff(old, newCfg)
	if !d.RectifyChanged {
		t.Error("expected RectifyChanged=true")
	}
}
