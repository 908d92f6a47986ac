package config

// ConfigDiff describes what changed between two configs.
// Only fields that can be safely hot-reloaded are tracked.
type ConfigDiff struct {
	LogLevelChanged bool
	NewLogLevel     LogLevel

	HotwordChanged bool
	RuleChanged    bool
	ITNChanged     bool
	RectifyChanged bool
}

// Diff compares old and new configs and returns what changed.
// Only tracks changes that are safe to apply without restart — a changed
// DictPath or RulesPath means the caller should reload that store, not
// that the process needs to restart.
func Diff(old, new *Config) ConfigDiff {
	d := ConfigDiff{}

	if old.Server.LogLevel != new.Server.LogLevel {
		d.LogLevelChanged = true
		d.NewLogLevel = new.Server.LogLevel
	}

	if old.Hotword != new.Hotword {
		d.HotwordChanged = true
	}
	if old.Rule != new.Rule {
		d.RuleChanged = true
	}
	if old.ITN != new.ITN {
		d.ITNChanged = true
	}
	if old.Rectify != new.Rectify {
		d.RectifyChanged = true
	}

	return d
}
