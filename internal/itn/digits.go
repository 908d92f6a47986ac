// Package itn implements inverse text normalization: rewriting spoken-form
// Mandarin numerals, times, dates, percentages, fractions, and ratios that
// ASR emits as Chinese characters back into their formatted Arabic-numeral
// form, via a high-recall outer span scan followed by an ordered,
// first-match-wins classifier chain.
package itn

// digitValues maps a Chinese digit character to its numeric value. 零 (zero)
// is handled separately by callers since it plays the special role of
// resetting the running local value rather than contributing a value of its
// own in the accumulator algorithm.
var digitValues = map[rune]int64{
	'一': 1, '二': 2, '两': 2, '三': 3, '四': 4,
	'五': 5, '六': 6, '七': 7, '八': 8, '九': 9,
}

// digitRunes is the ordered set of single-digit characters accepted
// wherever a bare Chinese digit may appear (excludes 零, 十/百/千/万/亿).
const digitRunes = "一二三四五六七八九"

func isDigitRune(r rune) bool {
	_, ok := digitValues[r]
	return ok
}

func isZero(r rune) bool {
	return r == '零'
}

func isMagnitudeUnit(r rune) bool {
	switch r {
	case '十', '百', '千', '万', '亿':
		return true
	}
	return false
}

// isNumeralRune reports whether r can appear inside a Chinese numeral
// expression recognised by this package (digits, zero, and magnitude
// units). It does not include contextual characters like 点/年/月/日 — those
// are added to the outer candidate-span character class separately.
func isNumeralRune(r rune) bool {
	return isDigitRune(r) || isZero(r) || isMagnitudeUnit(r)
}
