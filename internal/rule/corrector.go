// Package rule implements exact regular-expression rule substitution for
// fixed-format corrections (units, symbols, formatting) that don't need
// phoneme-level fuzziness — e.g. "毫安时 = mAh".
package rule

import (
	"log/slog"
	"os"
	"regexp"
	"strings"
	"sync"
)

type ruleEntry struct {
	pattern     string
	replacement string
	re          *regexp.Regexp // nil if pattern failed to compile
}

// Substitution is one itemised replacement performed by
// [Corrector.SubstituteWithInfo].
type Substitution struct {
	Original string
	Replaced string
	Pattern  string
}

// Corrector applies an ordered set of regexp-based rules to text. Rules are
// tried in the order they were declared in the loaded rule text; a rule
// whose pattern fails to compile is skipped (logged once at load time) so
// that one bad line in a user-edited rule file doesn't take down the whole
// set.
//
// Safe for concurrent use: [Corrector.Load]/[Corrector.LoadFile] swap in a
// new rule set atomically under a write lock.
type Corrector struct {
	mu        sync.RWMutex
	entries   []ruleEntry
	byPattern map[string]int // pattern -> index in entries, for insertion-order-preserving overwrite
}

// New returns an empty [Corrector].
func New() *Corrector {
	return &Corrector{byPattern: make(map[string]int)}
}

// Load replaces the rule set from ruleText: one rule per line, formatted as
// "pattern = replacement" (the first " = " separator splits the line;
// replacement text may itself contain "="). Blank lines and lines starting
// with '#' are ignored. Loading the same pattern twice keeps its original
// position but uses the latest replacement, matching a Python dict's
// update-in-place semantics. Returns the number of rules loaded.
func (c *Corrector) Load(ruleText string) int {
	var entries []ruleEntry
	byPattern := make(map[string]int)

	for _, line := range strings.Split(ruleText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, " = ", 2)
		if len(parts) != 2 {
			continue
		}
		pattern := strings.TrimSpace(parts[0])
		replacement := strings.TrimSpace(parts[1])
		if pattern == "" {
			continue
		}

		re, err := regexp.Compile(pattern)
		if err != nil {
			slog.Warn("rule: skipping invalid regexp pattern", "pattern", pattern, "error", err)
			re = nil
		}

		if idx, ok := byPattern[pattern]; ok {
			entries[idx] = ruleEntry{pattern: pattern, replacement: replacement, re: re}
			continue
		}
		byPattern[pattern] = len(entries)
		entries = append(entries, ruleEntry{pattern: pattern, replacement: replacement, re: re})
	}

	c.mu.Lock()
	c.entries = entries
	c.byPattern = byPattern
	c.mu.Unlock()

	slog.Info("rule: dictionary reloaded", "count", len(entries))
	return len(entries)
}

// LoadFile reads path and calls [Corrector.Load]. A missing file logs a
// warning and leaves the current rule set untouched.
func (c *Corrector) LoadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("rule: file does not exist, rules unchanged", "path", path)
			return 0, nil
		}
		return 0, err
	}
	return c.Load(string(data)), nil
}

// Substitute applies every loaded rule, in order, to text and returns the
// result. Rules that failed to compile are silently skipped, matching the
// reference corrector's try/except-and-continue behaviour.
func (c *Corrector) Substitute(text string) string {
	if text == "" {
		return text
	}

	c.mu.RLock()
	entries := c.entries
	c.mu.RUnlock()
	if len(entries) == 0 {
		return text
	}

	result := text
	for _, e := range entries {
		if e.re == nil {
			continue
		}
		result = e.re.ReplaceAllString(result, e.replacement)
	}
	return result
}

// SubstituteWithInfo is [Corrector.Substitute] plus an itemised audit trail
// of every non-trivial match (original span, its replacement, and the
// pattern responsible), useful for correction logging alongside
// [github.com/MrWong99/zhcorrect/internal/hotword]'s Correction records.
func (c *Corrector) SubstituteWithInfo(text string) (string, []Substitution) {
	if text == "" {
		return text, nil
	}

	c.mu.RLock()
	entries := c.entries
	c.mu.RUnlock()
	if len(entries) == 0 {
		return text, nil
	}

	result := text
	var subs []Substitution
	for _, e := range entries {
		if e.re == nil {
			continue
		}
		matches := e.re.FindAllString(result, -1)
		for _, original := range matches {
			replaced := e.re.ReplaceAllString(original, e.replacement)
			if original != replaced {
				subs = append(subs, Substitution{Original: original, Replaced: replaced, Pattern: e.pattern})
			}
		}
		result = e.re.ReplaceAllString(result, e.replacement)
	}
	return result, subs
}
