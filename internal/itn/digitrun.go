package itn

import "strings"

// matchDigitRun converts a run of bare Chinese digits, read digit-by-digit
// rather than folded through magnitude units (e.g. a phone or room number:
// "三零二" -> "302"). A lone "一" is left unconverted unless strict is set,
// since standalone "一" is usually the word "one/a" rather than a digit the
// speaker is reading out; runs of two or more digits always convert.
func matchDigitRun(s string, strict bool) (string, int, bool) {
	runes := []rune(s)
	n := 0
	for n < len(runes) && (isDigitRune(runes[n]) || isZero(runes[n])) {
		n++
	}
	if n == 0 {
		return "", 0, false
	}
	if n < len(runes) && isMagnitudeUnit(runes[n]) {
		return "", 0, false
	}
	if n == 1 && runes[0] == '一' && !strict {
		return "", 0, false
	}

	var b strings.Builder
	for _, r := range runes[:n] {
		if isZero(r) {
			b.WriteByte('0')
		} else {
			b.WriteByte(byte('0' + digitValues[r]))
		}
	}
	return b.String(), n, true
}
