package rectify

import (
	"bufio"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Store holds the current set of ingested rectification records. It is
// safe for concurrent use: readers take [Store.snapshot] while a reload
// swaps in a freshly built slice under the write lock, so in-flight
// searches never observe a half-loaded knowledge base.
type Store struct {
	mu      sync.RWMutex
	records []Record

	zhMinPhonemes int
	expandWords   int
}

// NewStore returns an empty [Store]. zhMinPhonemes and expandWords are
// forwarded to fragment extraction on every load; pass <= 0 for either to
// use the package defaults.
func NewStore(zhMinPhonemes, expandWords int) *Store {
	if zhMinPhonemes <= 0 {
		zhMinPhonemes = DefaultZhMinPhonemes
	}
	if expandWords <= 0 {
		expandWords = DefaultExpandWords
	}
	return &Store{zhMinPhonemes: zhMinPhonemes, expandWords: expandWords}
}

// LoadText replaces the record set from text: records are separated by
// lines containing only "---"; within a record, lines starting with '#'
// or blank are ignored, and the first two remaining lines are wrong,
// right. A record with fewer than two non-comment lines is skipped.
// Returns the number of records loaded.
func (s *Store) LoadText(text string) int {
	var records []Record

	var blocks, cur []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "---" {
			blocks = append(blocks, strings.Join(cur, "\n"))
			cur = nil
			continue
		}
		cur = append(cur, line)
	}
	blocks = append(blocks, strings.Join(cur, "\n"))

	for _, block := range blocks {
		wrong, right, ok := parseRecordBlock(block)
		if !ok {
			continue
		}
		fragments := extractFragments(wrong, right, s.zhMinPhonemes, s.expandWords)
		records = append(records, Record{Wrong: wrong, Right: right, Fragments: fragments})
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	slog.Info("rectify: knowledge base reloaded", "count", len(records))
	return len(records)
}

// parseRecordBlock extracts the wrong/right pair from one "---"-delimited
// block, skipping comment ('#') and blank lines. ok is false when the
// block has fewer than two content lines.
func parseRecordBlock(block string) (wrong, right string, ok bool) {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(block))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
		if len(lines) == 2 {
			break
		}
	}
	if len(lines) < 2 {
		return "", "", false
	}
	return lines[0], lines[1], true
}

// LoadFile reads path and calls [Store.LoadText]. A missing file is not an
// error: it logs a warning and leaves the current knowledge base
// untouched.
func (s *Store) LoadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("rectify: file does not exist, knowledge base unchanged", "path", path)
			return 0, nil
		}
		return 0, err
	}
	return s.LoadText(string(data)), nil
}

func (s *Store) snapshot() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}
