package itn

import (
	"regexp"
	"strconv"
	"strings"
)

// Options controls Convert's behaviour.
type Options struct {
	// Strict, when set, also converts standalone "一" in digit runs
	// (normally left as the word "one").
	Strict bool
}

// fuzzyMarkers are quantity hedges ("几" "多" "来") that make a following
// numeral approximate rather than exact; a candidate that contains "几", or
// is immediately preceded or followed by one of these, is left unchanged,
// since "十几" ("ten-odd") has no single Arabic-numeral rendering.
var (
	fuzzyMarkerBeforeRe = regexp.MustCompile(`[几多来]$`)
	fuzzyMarkerAfterRe  = regexp.MustCompile(`^[几多来]`)
)

// candidateRe is the high-recall outer scan: any maximal run built from
// numeral runes, magnitude units, and the contextual characters used by
// the time/date/percent/fraction/ratio classifiers.
var candidateRe = regexp.MustCompile(
	`[` + digitRunes + `两零十百千万亿点分秒之比几年月日号天时钟人层楼倍块次克米每小只]+`)

// Convert rewrites every spoken-form numeral expression in text into its
// formatted Arabic-numeral rendering, trying classifiers in order and
// taking the first one that matches a given candidate span: idiom
// blacklist, fuzzy-marker guard, range expression, time, pure digit run,
// consecutive compound values, value number, percent, fraction, ratio,
// date, and finally leaving the span unchanged if nothing recognises it.
func Convert(text string, opts Options) string {
	idiomOccs := findIdiomOccurrences(text)

	var out []byte
	last := 0
	for _, loc := range candidateRe.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		out = append(out, text[last:start]...)

		if withinIdiom(idiomOccs, start, end) {
			out = append(out, text[start:end]...)
			last = end
			continue
		}

		if strings.ContainsRune(text[start:end], '几') ||
			fuzzyMarkerBeforeRe.MatchString(text[:start]) || fuzzyMarkerAfterRe.MatchString(text[end:]) {
			out = append(out, text[start:end]...)
			last = end
			continue
		}

		span := text[start:end]
		out = append(out, convertSpan(span, opts)...)
		last = end
	}
	out = append(out, text[last:]...)
	return string(out)
}

// convertSpan applies the ordered classifier chain to a single high-recall
// candidate span, greedily converting from its start and re-scanning any
// unconverted tail (a candidate span can contain more than one numeral
// expression, e.g. two clock times run together).
func convertSpan(span string, opts Options) string {
	var out []byte
	s := span
	for len(s) > 0 {
		if converted, n, ok := tryClassifiers(s, opts); ok && n > 0 {
			out = append(out, converted...)
			s = string([]rune(s)[n:])
			continue
		}
		r := []rune(s)[0]
		out = append(out, string(r)...)
		s = string([]rune(s)[1:])
	}
	return string(out)
}

func tryClassifiers(s string, opts Options) (string, int, bool) {
	if out, n, ok := matchRange(s); ok {
		return out, n, true
	}
	if out, n, ok := matchTime(s); ok {
		return out, n, true
	}
	// A numeral directly followed by 分之 or 比 is an operand of a fraction,
	// percent or ratio, so the plain-number classifiers leave it to those.
	rest := s[len(numeralPrefix(s)):]
	operand := strings.HasPrefix(rest, "分之") || strings.HasPrefix(rest, "比")
	if out, n, ok := matchDigitRun(s, opts.Strict); ok && !operand {
		return out, n, true
	}
	if groups, ok := SplitCompound(numeralPrefix(s)); ok && !operand {
		n := len([]rune(numeralPrefix(s)))
		out := ""
		for i, v := range groups {
			if i > 0 {
				out += " "
			}
			out += strconv.FormatInt(v, 10)
		}
		return out, n, true
	}
	if prefix := numeralPrefix(s); len(prefix) > 0 && !operand {
		prefixRunes := []rune(prefix)
		// A standalone "一" with no magnitude marker is preserved unless
		// strict, matching matchDigitRun's guard above — "一" alone reads
		// as the word "one", not the digit "1".
		standaloneYi := len(prefixRunes) == 1 && prefixRunes[0] == '一' && !opts.Strict
		if !standaloneYi {
			if v, ok := ParseValue(prefix); ok {
				return strconv.FormatInt(v, 10), len(prefixRunes), true
			}
		}
	}
	if out, n, ok := matchPercent(s); ok {
		return out, n, true
	}
	if out, n, ok := matchFraction(s); ok {
		return out, n, true
	}
	if out, n, ok := matchRatio(s); ok {
		return out, n, true
	}
	if out, n, ok := matchDate(s); ok {
		return out, n, true
	}
	return "", 0, false
}

// numeralPrefix returns the longest leading run of s consisting solely of
// numeral-alphabet runes (digits, 零, and 十/百/千/万/亿).
func numeralPrefix(s string) string {
	runes := []rune(s)
	n := 0
	for n < len(runes) && isNumeralRune(runes[n]) {
		n++
	}
	return string(runes[:n])
}
