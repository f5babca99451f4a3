package engine

// TranscriptSegment is a single timed caption unit. Immutable once fetched.
type TranscriptSegment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}
