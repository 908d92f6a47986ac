package postproc

import (
	"strings"
)

// multiCharFillers are interjections removed whenever they appear at the
// start of a sentence or immediately after punctuation, regardless of
// aggressive mode.
var multiCharFillers = []string{
	"那个那个", "这个这个", "然后呢", "就是说", "怎么说呢", "你知道吗",
}

// singleCharFillers are only stripped in aggressive mode, and only when
// standalone (sentence-start/after-punctuation) rather than mid-word.
var singleCharFillers = []string{"嗯", "啊", "呃", "哦", "呐", "那个", "这个"}

// RemoveFillers strips filler interjections from text per opts. Multi-char
// fillers and any entries in opts.FillerCustom are always removed at
// sentence boundaries; aggressive mode additionally removes standalone
// single-char fillers and runs of 3+ repeated characters.
func RemoveFillers(text string, opts Options) string {
	if text == "" {
		return text
	}

	fillers := make([]string, 0, len(multiCharFillers)+len(opts.FillerCustom))
	fillers = append(fillers, multiCharFillers...)
	fillers = append(fillers, opts.FillerCustom...)
	if opts.FillerAggressive {
		fillers = append(fillers, singleCharFillers...)
	}

	out := text
	for _, f := range fillers {
		out = stripAtBoundary(out, f)
	}

	if opts.FillerAggressive {
		out = stripRepeatedChars(out)
	}
	return out
}

// stripAtBoundary removes every occurrence of filler that sits immediately
// at the start of the string or right after a sentence-boundary
// punctuation mark.
func stripAtBoundary(text, filler string) string {
	if filler == "" {
		return text
	}
	var b strings.Builder
	i := 0
	runes := []rune(text)
	fillerRunes := []rune(filler)

	atBoundary := true
	for i < len(runes) {
		if atBoundary && matchesAt(runes, i, fillerRunes) {
			i += len(fillerRunes)
			continue
		}
		r := runes[i]
		b.WriteRune(r)
		atBoundary = isBoundaryRune(r)
		i++
	}
	return b.String()
}

func matchesAt(runes []rune, pos int, needle []rune) bool {
	if pos+len(needle) > len(runes) {
		return false
	}
	for j, r := range needle {
		if runes[pos+j] != r {
			return false
		}
	}
	return true
}

func isBoundaryRune(r rune) bool {
	switch r {
	case '，', '。', '！', '？', '；', ',', '.', '!', '?', ';', '\n':
		return true
	}
	return false
}

// stripRepeatedChars collapses runs of 3 or more identical runes (a common
// ASR disfluency artefact, e.g. "啊啊啊") down to nothing.
func stripRepeatedChars(text string) string {
	runes := []rune(text)
	var out []rune
	i := 0
	for i < len(runes) {
		j := i + 1
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		if j-i >= 3 {
			i = j
			continue
		}
		out = append(out, runes[i:j]...)
		i = j
	}
	return string(out)
}
