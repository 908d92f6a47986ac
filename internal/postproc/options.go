// Package postproc composes the fixed-order text post-processing chain that
// runs after hotword and rule correction: filler removal, fullwidth
// normalization, inverse text normalization, CJK/ASCII spacing,
// zh-variant conversion, and punctuation normalization.
package postproc

// Locale selects the zh-variant conversion target.
type Locale string

// Supported zh-variant locales.
const (
	LocaleZHCN   Locale = "zh-cn"
	LocaleZHHans Locale = "zh-hans"
	LocaleZHTW   Locale = "zh-tw"
	LocaleZHHK   Locale = "zh-hk"
	LocaleZHMO   Locale = "zh-mo"
	LocaleZHSG   Locale = "zh-sg"
	LocaleZHMY   Locale = "zh-my"
	LocaleZHHant Locale = "zh-hant"
)

// Options configures which stages of the chain run and how.
type Options struct {
	FillerRemoveEnable bool
	FillerAggressive   bool
	FillerCustom       []string

	NormalizeFullwidthLetters bool
	NormalizeFullwidthDigits  bool
	NormalizeFullwidthSpace   bool

	ITNEnable      bool
	ITNErhuaRemove bool
	ITNStrict      bool

	SpacingEnable bool

	ZhConvertEnable bool
	ZhConvertLocale Locale

	PuncConvertEnable bool
	PuncAddSpace      bool
	PuncPreferChinese bool
}
