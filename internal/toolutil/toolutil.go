// Package toolutil provides shared helper functions for go_transcript MCP tools.
package toolutil

import (
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// NormTargetLanguage normalises a target language field: empty → "en".
func NormTargetLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return "en"
	}
	return lang
}

// PageSize validates a requested page size, falling back to the configured
// default when unset.
func PageSize(maxChars int) (int, error) {
	if maxChars < 0 {
		return 0, engine.Errorf(engine.ErrValidation, "maxChars must be positive, got %d", maxChars)
	}
	if maxChars == 0 {
		return engine.Cfg.PageSizeChars, nil
	}
	return maxChars, nil
}
