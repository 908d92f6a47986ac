package itn

import "sort"

// unitMap translates a trailing Chinese unit/classifier into its normalized
// form. Most units are identity-mapped (they're kept as-is; only their
// presence matters, to know where the numeral portion of a candidate
// ends) — 克, 千克, and 千米每小时 are the exceptions, rewritten to their
// Latin abbreviations.
var unitMap = map[string]string{
	"个": "个", "只": "只", "分": "分", "万": "万", "亿": "亿",
	"秒": "秒", "年": "年", "月": "月", "日": "日", "天": "天",
	"时": "时", "钟": "钟", "人": "人", "层": "层", "楼": "楼",
	"倍": "倍", "块": "块", "次": "次",
	"克":      "g",
	"千克":     "kg",
	"米":      "米",
	"千米":     "千米",
	"千米每小时":  "km/h",
}

// unitKeysByLengthDesc is unitMap's keys sorted longest-first, so
// [splitTrailingUnit] tries multi-character units ("千米每小时") before their
// single-character substrings ("米") would otherwise shadow them.
var unitKeysByLengthDesc = func() []string {
	keys := make([]string, 0, len(unitMap))
	for k := range unitMap {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return len([]rune(keys[i])) > len([]rune(keys[j]))
	})
	return keys
}()

// splitTrailingUnit peels a recognised unit off the end of s, returning the
// remaining numeral portion and the unit's normalized form. If s has no
// recognised trailing unit, unit is "" and numeral == s.
func splitTrailingUnit(s string) (numeral, unit string) {
	runes := []rune(s)
	for _, key := range unitKeysByLengthDesc {
		keyRunes := []rune(key)
		if len(keyRunes) >= len(runes) {
			continue
		}
		if string(runes[len(runes)-len(keyRunes):]) == key {
			return string(runes[:len(runes)-len(keyRunes)]), unitMap[key]
		}
	}
	return s, ""
}
