package itn

import "strings"

// idiomBlacklist holds fixed-expression substrings that contain numeral
// characters but must never be rewritten, because they're idioms rather
// than spoken numbers (e.g. 乱七八糟 is "a mess", not "7 8").
var idiomBlacklist = []string{
	"乱七八糟",
	"三十六计",
	"九九八十一",
	"七上八下",
	"五花八门",
	"不三不四",
	"丢三落四",
	"四面八方",
	"十万火急",
	"三心二意",
	"五湖四海",
	"一五一十",
	"三令五申",
	"三三两两",
	"一六八",
}

// idiomOccurrence is a byte-offset span of an idiom match within text.
type idiomOccurrence struct {
	start, end int
}

// findIdiomOccurrences returns every (possibly overlapping) byte-offset
// span in text where an idiomBlacklist entry occurs.
func findIdiomOccurrences(text string) []idiomOccurrence {
	var occs []idiomOccurrence
	for _, idiom := range idiomBlacklist {
		offset := 0
		for {
			idx := strings.Index(text[offset:], idiom)
			if idx < 0 {
				break
			}
			start := offset + idx
			end := start + len(idiom)
			occs = append(occs, idiomOccurrence{start, end})
			offset = start + 1
		}
	}
	return occs
}

// withinIdiom reports whether the byte range [start, end) overlaps any
// blacklisted idiom occurrence in occs. A candidate span that merely
// overlaps (rather than is fully contained by) an idiom is still left
// unchanged — this is deliberately conservative: it can produce a
// false negative (leaving a genuine number unconverted) when a number
// happens to sit right at an idiom's edge, but never a false positive.
func withinIdiom(occs []idiomOccurrence, start, end int) bool {
	for _, o := range occs {
		if start < o.end && end > o.start {
			return true
		}
	}
	return false
}
