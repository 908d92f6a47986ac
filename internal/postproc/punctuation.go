package postproc

import "strings"

// fullwidthPunct maps ASCII punctuation to its fullwidth Chinese counterpart,
// used when PuncPreferChinese is set.
var fullwidthPunct = map[rune]rune{
	',': '，', '.': '。', '!': '！', '?': '？', ';': '；', ':': '：',
	'(': '（', ')': '）',
}

// halfwidthPunct is the inverse mapping, used to normalize fullwidth
// punctuation down to ASCII when PuncPreferChinese is not set.
var halfwidthPunct = map[rune]rune{
	'，': ',', '。': '.', '！': '!', '？': '?', '；': ';', '：': ':',
	'（': '(', '）': ')',
}

// asciiPunctSet is consulted to decide whether PuncAddSpace should insert a
// trailing space after a punctuation mark.
var asciiPunctSet = map[rune]bool{
	',': true, '.': true, '!': true, '?': true, ';': true, ':': true,
}

// NormalizePunctuation converts between fullwidth and halfwidth punctuation
// per opts.PuncPreferChinese, collapses runs of duplicate/mixed punctuation
// down to a single mark, and optionally inserts a space after ASCII
// punctuation.
func NormalizePunctuation(text string, opts Options) string {
	if text == "" {
		return text
	}

	runes := []rune(text)
	var out []rune
	i := 0
	for i < len(runes) {
		r := runes[i]
		converted, isPunct := convertPunct(r, opts.PuncPreferChinese)
		if !isPunct {
			out = append(out, r)
			i++
			continue
		}

		j := i + 1
		for j < len(runes) {
			_, nextIsPunct := convertPunct(runes[j], opts.PuncPreferChinese)
			if !nextIsPunct {
				break
			}
			j++
		}
		out = append(out, converted)
		if opts.PuncAddSpace && asciiPunctSet[converted] {
			out = append(out, ' ')
		}
		i = j
	}
	return strings.TrimRight(string(out), " ")
}

// convertPunct reports whether r is a recognized punctuation mark and
// returns its normalized form per preferChinese.
func convertPunct(r rune, preferChinese bool) (rune, bool) {
	if preferChinese {
		if repl, ok := fullwidthPunct[r]; ok {
			return repl, true
		}
		if _, ok := halfwidthPunct[r]; ok {
			return r, true
		}
		return r, false
	}
	if repl, ok := halfwidthPunct[r]; ok {
		return repl, true
	}
	if _, ok := fullwidthPunct[r]; ok {
		return r, true
	}
	return r, false
}
