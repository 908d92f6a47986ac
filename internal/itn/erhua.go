package itn

import (
	"fmt"
	"regexp"
	"strings"
)

// erhuaWhitelist holds "X儿" bigrams where 儿 is a real lexical morpheme
// (女儿, 儿童, ...) and must be preserved rather than stripped as the
// colloquial 儿化 (erhua) suffix.
var erhuaWhitelist = map[string]bool{
	"女儿": true,
	"儿童": true,
	"儿子": true,
	"婴儿": true,
	"幼儿": true,
	"孤儿": true,
	"儿歌": true,
}

// erhuaLeadingWhitelist is the subset of erhuaWhitelist whose 儿 is the
// FIRST character of the word (儿童, 儿子, 儿歌). Those need masking before
// the suffix-stripping scan runs, or a preceding, unrelated character
// could be mistaken for the thing 儿 is attached to (e.g. "这儿童" would
// otherwise read as 这儿 + 童 instead of 这 + 儿童).
var erhuaLeadingWhitelist = []string{"儿童", "儿子", "儿歌"}

var erhuaRe = regexp.MustCompile(`.儿`)

// RemoveErhua strips the colloquial 儿化 suffix (e.g. 玩儿 -> 玩, 花儿 -> 花)
// from text, leaving whitelisted bigrams where 儿 carries its own meaning
// intact.
func RemoveErhua(text string) string {
	masked := text
	placeholders := make(map[string]string, len(erhuaLeadingWhitelist))
	for i, word := range erhuaLeadingWhitelist {
		if !strings.Contains(masked, word) {
			continue
		}
		ph := fmt.Sprintf("\x00ERHUA%d\x00", i)
		placeholders[ph] = word
		masked = strings.ReplaceAll(masked, word, ph)
	}

	stripped := erhuaRe.ReplaceAllStringFunc(masked, func(match string) string {
		if erhuaWhitelist[match] {
			return match
		}
		runes := []rune(match)
		return string(runes[:len(runes)-1])
	})

	for ph, word := range placeholders {
		stripped = strings.ReplaceAll(stripped, ph, word)
	}
	return stripped
}
