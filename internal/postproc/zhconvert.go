package postproc

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
)

// zhVariantDict holds the raw dictionary sections as loaded from JSON. Each
// section is either a mapping (character/phrase -> replacement) or a set
// (character/phrase -> true), per the on-disk schema.
type zhVariantDict struct {
	Zh2Hans  map[string]string `json:"zh2Hans"`
	Zh2Hant  map[string]string `json:"zh2Hant"`
	Zh2CN    map[string]string `json:"zh2CN"`
	Zh2TW    map[string]string `json:"zh2TW"`
	Zh2HK    map[string]string `json:"zh2HK"`
	Zh2SG    map[string]string `json:"zh2SG"`
	SimpOnly map[string]bool   `json:"SIMPONLY"`
	TradOnly map[string]bool   `json:"TRADONLY"`
}

// ZhConverter rewrites text between Chinese script variants using a
// longest-match dictionary lookup with a locale-specific fallback chain.
type ZhConverter struct {
	dict *zhVariantDict
	// chains maps each locale to the ordered list of dictionary sections
	// consulted when converting into it, longest-match within each.
	chains map[Locale][]map[string]string
}

// fallbackChains defines, for every supported locale, which dictionary
// sections are tried and in what order. Earlier sections take priority.
func fallbackChains(d *zhVariantDict) map[Locale][]map[string]string {
	return map[Locale][]map[string]string{
		LocaleZHCN:   {d.Zh2CN, d.Zh2Hans},
		LocaleZHHans: {d.Zh2Hans},
		LocaleZHTW:   {d.Zh2TW, d.Zh2Hant},
		LocaleZHHK:   {d.Zh2HK, d.Zh2Hant},
		LocaleZHMO:   {d.Zh2HK, d.Zh2Hant},
		LocaleZHSG:   {d.Zh2SG, d.Zh2Hans},
		LocaleZHMY:   {d.Zh2SG, d.Zh2Hans},
		LocaleZHHant: {d.Zh2Hant},
	}
}

// LoadZhConverter reads a zh-variant dictionary from path. When path does
// not exist or fails to parse, it returns a nil *ZhConverter and logs the
// reason; callers should treat a nil converter as "stage disabled" rather
// than an error, per the degrade-to-no-change failure model.
func LoadZhConverter(path string) *ZhConverter {
	if path == "" {
		slog.Warn("zh-variant dictionary path not configured, disabling zh-convert stage")
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("zh-variant dictionary unavailable, disabling zh-convert stage",
			slog.String("path", path), slog.Any("error", err))
		return nil
	}
	var d zhVariantDict
	if err := json.Unmarshal(data, &d); err != nil {
		slog.Warn("zh-variant dictionary malformed, disabling zh-convert stage",
			slog.String("path", path), slog.Any("error", err))
		return nil
	}
	return &ZhConverter{dict: &d, chains: fallbackChains(&d)}
}

// Convert rewrites text into the given locale's script variant using a
// longest-match lookup over the locale's fallback chain. Unknown locales
// and a nil receiver are no-ops.
func (c *ZhConverter) Convert(text string, locale Locale) string {
	if c == nil || text == "" {
		return text
	}
	chain, ok := c.chains[locale]
	if !ok {
		return text
	}

	maxKeyLen := maxKeyRuneLen(chain)
	if maxKeyLen == 0 {
		return text
	}

	runes := []rune(text)
	var out []rune
	for i := 0; i < len(runes); {
		matched := false
		for l := maxKeyLen; l >= 1; l-- {
			if i+l > len(runes) {
				continue
			}
			key := string(runes[i : i+l])
			for _, section := range chain {
				if repl, found := section[key]; found {
					out = append(out, []rune(repl)...)
					i += l
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if !matched {
			out = append(out, runes[i])
			i++
		}
	}
	return string(out)
}

func maxKeyRuneLen(chain []map[string]string) int {
	max := 0
	for _, section := range chain {
		for k := range section {
			if n := len([]rune(k)); n > max {
				max = n
			}
		}
	}
	return max
}

// String is a debugging aid listing the loaded section sizes.
func (c *ZhConverter) String() string {
	if c == nil {
		return "<nil ZhConverter>"
	}
	sizes := []string{
		fmt.Sprintf("zh2Hans=%d", len(c.dict.Zh2Hans)),
		fmt.Sprintf("zh2Hant=%d", len(c.dict.Zh2Hant)),
		fmt.Sprintf("zh2CN=%d", len(c.dict.Zh2CN)),
		fmt.Sprintf("zh2TW=%d", len(c.dict.Zh2TW)),
		fmt.Sprintf("zh2HK=%d", len(c.dict.Zh2HK)),
		fmt.Sprintf("zh2SG=%d", len(c.dict.Zh2SG)),
	}
	sort.Strings(sizes)
	return fmt.Sprintf("ZhConverter{%v}", sizes)
}
