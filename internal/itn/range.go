package itn

import "fmt"

// matchRange recognises a two-digit range expression such as "三五百人"
// (digit a, digit b, optional magnitude multiplier, optional trailing
// unit) and rewrites it to "a*mult~b*mult[unit]", e.g. "300~500人". A bare
// "<digit><digit>" with no multiplier (e.g. "三五") is also accepted and
// produces "3~5".
func matchRange(s string) (string, int, bool) {
	runes := []rune(s)
	if len(runes) < 2 {
		return "", 0, false
	}
	a, ok := digitValues[runes[0]]
	if !ok {
		return "", 0, false
	}
	b, ok := digitValues[runes[1]]
	if !ok || b <= a {
		return "", 0, false
	}

	pos := 2
	mult := int64(1)
	if pos < len(runes) {
		switch runes[pos] {
		case '十':
			mult = 10
			pos++
		case '百':
			mult = 100
			pos++
		case '千':
			mult = 1000
			pos++
		}
	}

	rest := runes[pos:]
	unit := ""
	consumed := pos
	for _, key := range unitKeysByLengthDesc {
		keyRunes := []rune(key)
		if len(keyRunes) <= len(rest) && string(rest[:len(keyRunes)]) == key {
			unit = unitMap[key]
			consumed += len(keyRunes)
			break
		}
	}

	out := fmt.Sprintf("%d~%d%s", a*mult, b*mult, unit)
	return out, consumed, true
}
