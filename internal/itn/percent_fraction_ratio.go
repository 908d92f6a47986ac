package itn

import (
	"regexp"
	"strconv"
)

var percentRe = regexp.MustCompile(`^百分之([` + digitRunes + `零十百千万亿]+)`)

// matchPercent recognises "百分之X" ("X percent") and rewrites it to "X%".
func matchPercent(s string) (string, int, bool) {
	loc := percentRe.FindStringSubmatchIndex(s)
	if loc == nil {
		return "", 0, false
	}
	numeral := s[loc[2]:loc[3]]
	v, ok := ParseValue(numeral)
	if !ok {
		return "", 0, false
	}
	return strconv.FormatInt(v, 10) + "%", len([]rune(s[:loc[1]])), true
}

var fractionRe = regexp.MustCompile(`^([` + digitRunes + `零十百千万亿]+)分之([` + digitRunes + `零十百千万亿]+)`)

// matchFraction recognises "X分之Y" (denominator-then-numerator order) and
// rewrites it to "Y/X".
func matchFraction(s string) (string, int, bool) {
	loc := fractionRe.FindStringSubmatchIndex(s)
	if loc == nil {
		return "", 0, false
	}
	denomStr := s[loc[2]:loc[3]]
	numStr := s[loc[4]:loc[5]]
	denom, ok := ParseValue(denomStr)
	if !ok {
		return "", 0, false
	}
	num, ok := ParseValue(numStr)
	if !ok {
		return "", 0, false
	}
	return strconv.FormatInt(num, 10) + "/" + strconv.FormatInt(denom, 10), len([]rune(s[:loc[1]])), true
}

var ratioRe = regexp.MustCompile(`^([` + digitRunes + `零十百千万亿]+)比([` + digitRunes + `零十百千万亿]+)`)

// matchRatio recognises "X比Y" and rewrites it to "X:Y".
func matchRatio(s string) (string, int, bool) {
	loc := ratioRe.FindStringSubmatchIndex(s)
	if loc == nil {
		return "", 0, false
	}
	aStr := s[loc[2]:loc[3]]
	bStr := s[loc[4]:loc[5]]
	a, ok := ParseValue(aStr)
	if !ok {
		return "", 0, false
	}
	b, ok := ParseValue(bStr)
	if !ok {
		return "", 0, false
	}
	return strconv.FormatInt(a, 10) + ":" + strconv.FormatInt(b, 10), len([]rune(s[:loc[1]])), true
}
