package engine

import (
	"net/http"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	FetchTimeout         time.Duration
	PageSizeChars        int     // default chunk size for transcript_load
	MaxTextChars         int     // hard ceiling on flattened transcript length
	MinTranscriptWords   int     // below this the transcript counts as unavailable
	InnertubeRateLimit   float64 // requests/second against YouTube endpoints
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	HTTPClient           *http.Client
	BrowserClient        *stealth.BrowserClient // nil = browser-grade egress disabled
	ProxyEnabled         bool                   // an outbound proxy pool was supplied
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (sources, store).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}
