package itn

import (
	"fmt"
	"regexp"
)

var timeRe = regexp.MustCompile(`^([` + digitRunes + `零十]+)点([` + digitRunes + `零十]+)分(?:([` + digitRunes + `零十]+)秒)?`)

// matchTime recognises "HH点MM分[SS秒]" and rewrites it to a zero-padded
// "HH:MM[:SS]".
func matchTime(s string) (string, int, bool) {
	loc := timeRe.FindStringSubmatchIndex(s)
	if loc == nil {
		return "", 0, false
	}
	hour, ok := ParseValue(s[loc[2]:loc[3]])
	if !ok {
		return "", 0, false
	}
	minute, ok := ParseValue(s[loc[4]:loc[5]])
	if !ok {
		return "", 0, false
	}
	out := fmt.Sprintf("%02d:%02d", hour, minute)
	if loc[6] >= 0 {
		second, ok := ParseValue(s[loc[6]:loc[7]])
		if !ok {
			return "", 0, false
		}
		out += fmt.Sprintf(":%02d", second)
	}
	return out, len([]rune(s[:loc[1]])), true
}

var dateRe = regexp.MustCompile(
	`^(?:([` + digitRunes + `零]+)年)?(?:([` + digitRunes + `零十]+)月)?(?:([` + digitRunes + `零十]+)[日号])?`)

// matchDate recognises any non-empty combination of "[Y年][M月][D日|号]" and
// rewrites the numeral portions to Arabic numerals, keeping 年/月/日/号 in
// place. Years are read digit-by-digit (2024 is 二零二四, not a magnitude
// expression) while month/day use the ordinary numeral accumulator.
func matchDate(s string) (string, int, bool) {
	loc := dateRe.FindStringSubmatchIndex(s)
	if loc == nil || loc[1] == 0 {
		return "", 0, false
	}
	var out string
	matchedAny := false

	if loc[2] >= 0 {
		year := s[loc[2]:loc[3]]
		digits, ok := parseDigitRun(year)
		if !ok {
			return "", 0, false
		}
		out += digits + "年"
		matchedAny = true
	}
	if loc[4] >= 0 {
		month, ok := ParseValue(s[loc[4]:loc[5]])
		if !ok {
			return "", 0, false
		}
		out += fmt.Sprintf("%d月", month)
		matchedAny = true
	}
	if loc[6] >= 0 {
		day, ok := ParseValue(s[loc[6]:loc[7]])
		if !ok {
			return "", 0, false
		}
		suffix := []rune(s[loc[6]:loc[1]])
		marker := string(suffix[len(suffix)-1])
		out += fmt.Sprintf("%d%s", day, marker)
		matchedAny = true
	}

	if !matchedAny {
		return "", 0, false
	}
	return out, len([]rune(s[:loc[1]])), true
}

// parseDigitRun converts a run of bare Chinese digits (no 十/百/千/万/亿
// folding) into Arabic numerals one character at a time, as used for year
// expressions like 二零二四 -> "2024".
func parseDigitRun(s string) (string, bool) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		switch {
		case isZero(r):
			out = append(out, '0')
		case isDigitRune(r):
			out = append(out, byte('0'+digitValues[r]))
		default:
			return "", false
		}
	}
	if len(out) == 0 {
		return "", false
	}
	return string(out), true
}
