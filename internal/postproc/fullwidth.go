package postproc

// NormalizeFullwidth converts fullwidth ASCII-range characters (U+FF01-U+FF5E)
// and the fullwidth/ideographic space (U+3000) to their halfwidth ASCII
// equivalents, gated per-category by opts.
func NormalizeFullwidth(text string, opts Options) string {
	if text == "" {
		return text
	}
	if !opts.NormalizeFullwidthLetters && !opts.NormalizeFullwidthDigits && !opts.NormalizeFullwidthSpace {
		return text
	}

	runes := []rune(text)
	for i, r := range runes {
		switch {
		case r == '　':
			if opts.NormalizeFullwidthSpace {
				runes[i] = ' '
			}
		case r >= 0xFF01 && r <= 0xFF5E:
			halfwidth := r - 0xFEE0
			switch {
			case halfwidth >= '0' && halfwidth <= '9':
				if opts.NormalizeFullwidthDigits {
					runes[i] = halfwidth
				}
			case (halfwidth >= 'A' && halfwidth <= 'Z') || (halfwidth >= 'a' && halfwidth <= 'z'):
				if opts.NormalizeFullwidthLetters {
					runes[i] = halfwidth
				}
			default:
				// Fullwidth punctuation/symbols are left for the punctuation
				// stage, which runs later and knows about PuncPreferChinese.
			}
		}
	}
	return string(runes)
}
