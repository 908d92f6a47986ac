package postproc

import (
	"github.com/MrWong99/zhcorrect/internal/itn"
)

// Processor runs the fixed-order text post-processing chain: filler removal,
// fullwidth normalization, inverse text normalization, CJK/ASCII spacing,
// zh-variant conversion, and punctuation normalization. The order is fixed
// and not configurable; only whether each stage runs is.
type Processor struct {
	opts        Options
	zhConverter *ZhConverter
}

// NewProcessor builds a Processor with the given options. zhConverter may be
// nil, in which case the zh-convert stage is a no-op regardless of
// opts.ZhConvertEnable (degrade-to-no-change on missing dictionary).
func NewProcessor(opts Options, zhConverter *ZhConverter) *Processor {
	return &Processor{opts: opts, zhConverter: zhConverter}
}

// Process runs text through every enabled stage in fixed order:
// filler -> fullwidth -> ITN -> spacing -> zh-convert -> punctuation.
// Empty input short-circuits to empty.
func (p *Processor) Process(text string) string {
	if text == "" {
		return text
	}

	out := text

	if p.opts.FillerRemoveEnable {
		out = RemoveFillers(out, p.opts)
	}

	out = NormalizeFullwidth(out, p.opts)

	if p.opts.ITNEnable {
		out = itn.Convert(out, itn.Options{Strict: p.opts.ITNStrict})
		if p.opts.ITNErhuaRemove {
			out = itn.RemoveErhua(out)
		}
	}

	if p.opts.SpacingEnable {
		out = AddSpacing(out)
	}

	if p.opts.ZhConvertEnable && p.zhConverter != nil {
		out = p.zhConverter.Convert(out, p.opts.ZhConvertLocale)
	}

	if p.opts.PuncConvertEnable {
		out = NormalizePunctuation(out, p.opts)
	}

	return out
}
