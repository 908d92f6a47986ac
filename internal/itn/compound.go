package itn

import "regexp"

// groupPattern is one recognised "single Chinese number" shape, tried in
// order from most specific (longest possible match) to least, anchored at
// the current scan position.
type groupPattern struct {
	re   *regexp.Regexp
	eval func(m []string) int64
}

var groupPatterns = []groupPattern{
	{
		// qian-bai-shi-ge, e.g. 一千零一百二十三
		re: regexp.MustCompile(`^([一二三四五六七八九])千零?([一二三四五六七八九])?百零?([一二三四五六七八九])?十([一二三四五六七八九])?`),
		eval: func(m []string) int64 {
			v := digitOrOne(m[1]) * 1000
			v += digitOrZero(m[2]) * 100
			v += digitOrOne(m[3]) * 10
			v += digitOrZero(m[4])
			return v
		},
	},
	{
		// qian-ge, e.g. 一千零一
		re: regexp.MustCompile(`^([一二三四五六七八九])千零?([一二三四五六七八九])`),
		eval: func(m []string) int64 {
			return digitOrOne(m[1])*1000 + digitOrZero(m[2])
		},
	},
	{
		re: regexp.MustCompile(`^([一二三四五六七八九])千`),
		eval: func(m []string) int64 {
			return digitOrOne(m[1]) * 1000
		},
	},
	{
		// bai-shi-ge, e.g. 三百二十一
		re: regexp.MustCompile(`^([一二三四五六七八九])?百零?([一二三四五六七八九])十([一二三四五六七八九])?`),
		eval: func(m []string) int64 {
			v := digitOrOne(m[1]) * 100
			v += digitOrOne(m[2]) * 10
			v += digitOrZero(m[3])
			return v
		},
	},
	{
		// bai-ge, e.g. 一百零一
		re: regexp.MustCompile(`^([一二三四五六七八九])?百零?([一二三四五六七八九])`),
		eval: func(m []string) int64 {
			return digitOrOne(m[1])*100 + digitOrZero(m[2])
		},
	},
	{
		re: regexp.MustCompile(`^([一二三四五六七八九])?百`),
		eval: func(m []string) int64 {
			return digitOrOne(m[1]) * 100
		},
	},
	{
		// shi-ge, e.g. 十一, 二十三
		re: regexp.MustCompile(`^([一二三四五六七八九])?十([一二三四五六七八九])?`),
		eval: func(m []string) int64 {
			return digitOrOne(m[1])*10 + digitOrZero(m[2])
		},
	},
	{
		re: regexp.MustCompile(`^([一二三四五六七八九])`),
		eval: func(m []string) int64 {
			return digitOrZero(m[1])
		},
	},
}

func digitOrOne(s string) int64 {
	if s == "" {
		return 1
	}
	return digitValues[[]rune(s)[0]]
}

func digitOrZero(s string) int64 {
	if s == "" {
		return 0
	}
	return digitValues[[]rune(s)[0]]
}

// SplitCompound detects a run of consecutive, unseparated Chinese numbers
// (e.g. "十一十二十三" or "一百零一一百零二") and returns their decimal
// values as independent groups. ok is false unless at least two groups
// were found and they account for the entire input with no leftover
// characters — a single matched group is an ordinary value, not a
// compound, and is left to the value-number classifier.
func SplitCompound(s string) ([]int64, bool) {
	runes := []rune(s)
	pos := 0
	var values []int64

	for pos < len(runes) {
		remaining := string(runes[pos:])
		matched := false
		for _, gp := range groupPatterns {
			loc := gp.re.FindStringSubmatchIndex(remaining)
			if loc == nil || loc[0] != 0 {
				continue
			}
			matchEnd := loc[1]
			groups := submatchStrings(remaining, loc)
			values = append(values, gp.eval(groups))
			pos += len([]rune(remaining[:matchEnd]))
			matched = true
			break
		}
		if !matched {
			return nil, false
		}
	}

	return values, len(values) >= 2
}

func submatchStrings(s string, loc []int) []string {
	out := make([]string, len(loc)/2)
	for i := range out {
		start, end := loc[2*i], loc[2*i+1]
		if start < 0 {
			out[i] = ""
			continue
		}
		out[i] = s[start:end]
	}
	return out
}
