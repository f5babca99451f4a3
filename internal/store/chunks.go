package store

import (
	"strings"
	"unicode/utf8"
)

// Bound is one chunk's half-open [Start, End) offset range into the
// document text.
type Bound struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// PlanChunks partitions text into contiguous, non-overlapping bounds that
// cover [0, len(text)) in ascending order. No chunk exceeds maxChars; a
// single word longer than maxChars is hard-cut at maxChars, backed up to
// the nearest rune boundary so no chunk ends mid-rune. When a space exists
// in the last 40% of a proposed chunk, the cut snaps back to it so words
// stay whole and trailing fragments stay large. Identical (text, maxChars)
// always produce identical bounds.
func PlanChunks(text string, maxChars int) []Bound {
	n := len(text)
	if n == 0 || maxChars <= 0 {
		return nil
	}

	bounds := make([]Bound, 0, n/maxChars+1)
	i := 0
	for i < n {
		j := i + maxChars
		if j >= n {
			bounds = append(bounds, Bound{Start: i, End: n})
			break
		}
		if k := strings.LastIndexByte(text[i:j], ' '); k >= 0 {
			pos := i + k
			if float64(pos) > float64(i)+0.6*float64(maxChars) {
				j = pos
			}
		}
		for j > i && !utf8.RuneStart(text[j]) {
			j--
		}
		if j == i {
			// a single rune wider than maxChars; tearing it is the
			// only option
			j = i + maxChars
		}
		bounds = append(bounds, Bound{Start: i, End: j})
		i = j
	}
	return bounds
}
