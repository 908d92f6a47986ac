package merger

// MergeByText is the long-audio chunk-stitching alternative to Merge: it
// searches a tail window of the buffer (sized OverlapChars) for where new
// picks up, tolerating up to MaxSkipNew leading noise characters in new
// before giving up, exact match first and then fuzzy. The stitched output
// preserves original punctuation; punctuation is stripped only for the
// matching view used to locate the stitch point.
func (m *Merger) MergeByText(new string) string {
	if new == "" {
		return ""
	}
	if len(m.buffer) == 0 {
		m.buffer = []rune(new)
		return new
	}

	newRunes := []rune(new)

	windowSize := m.opts.OverlapChars
	if windowSize <= 0 || windowSize > len(m.buffer) {
		windowSize = len(m.buffer)
	}
	tailWindow := m.buffer[len(m.buffer)-windowSize:]
	tailView := []rune(stripPunctuation(string(tailWindow)))

	maxSkip := m.opts.MaxSkipNew
	if maxSkip < 0 {
		maxSkip = 0
	}
	lastSkip := minInt(maxSkip, len(newRunes)-1)

	// headViews[skip] is the punctuation-stripped view of newRunes with its
	// first skip runes dropped, precomputed once so both passes below can
	// share it.
	headViews := make([][]rune, lastSkip+1)
	maxHeadLen := 0
	for skip := 0; skip <= lastSkip; skip++ {
		headViews[skip] = []rune(stripPunctuation(string(newRunes[skip:])))
		if len(headViews[skip]) > maxHeadLen {
			maxHeadLen = len(headViews[skip])
		}
	}
	limit := minInt(len(tailView), maxHeadLen)

	// Exact match: match_len outer (longer match wins), skip_new inner
	// (least skipping wins among equal-length matches).
	for l := limit; l >= 1; l-- {
		for skip := 0; skip <= lastSkip; skip++ {
			headView := headViews[skip]
			if len(headView) < l {
				continue
			}
			if equalRunes(tailView[len(tailView)-l:], headView[:l]) {
				suffix := appendByView(newRunes, skip, headView, l)
				m.buffer = append(m.buffer, suffix...)
				return string(suffix)
			}
		}
	}

	// Fuzzy match fallback, same match_len-outer/skip_new-inner priority.
	// min_fuzzy_len = tolerance + 2 so a genuine match always has more
	// correct characters than the errors it's allowed to contain.
	if m.opts.ErrorTolerance > 0 {
		minFuzzyLen := m.opts.ErrorTolerance + 2
		for l := limit; l >= minFuzzyLen; l-- {
			for skip := 0; skip <= lastSkip; skip++ {
				headView := headViews[skip]
				if len(headView) < l {
					continue
				}
				if levenshteinDistance(tailView[len(tailView)-l:], headView[:l]) <= m.opts.ErrorTolerance {
					suffix := appendByView(newRunes, skip, headView, l)
					m.buffer = append(m.buffer, suffix...)
					return string(suffix)
				}
			}
		}
	}

	// No stitch point found within tolerance: treat the whole (unskipped)
	// chunk as new material, same as Merge's no-overlap fallback.
	m.buffer = append(m.buffer, newRunes...)
	return string(newRunes)
}

// appendByView maps a match length found against the punctuation-stripped
// head view back onto the original (punctuated) newRunes slice, returning
// the suffix of newRunes (from skip onward) that should be appended to the
// buffer -- i.e. newRunes with its first matchLen "view runes" worth of
// prefix, measured on the stripped view, consumed.
func appendByView(newRunes []rune, skip int, headView []rune, matchLen int) []rune {
	remaining := matchLen
	i := skip
	for i < len(newRunes) && remaining > 0 {
		if isPunct(newRunes[i]) {
			i++
			continue
		}
		i++
		remaining--
	}
	return newRunes[i:]
}
