package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	TranscriptRequests atomic.Int64
	TranscriptErrors   atomic.Int64
	PlayerRequests     atomic.Int64
	PageScrapeRequests atomic.Int64
	PanelRequests      atomic.Int64
	TimedTextRequests  atomic.Int64
	Translations       atomic.Int64
	MetadataRequests   atomic.Int64
	DocumentLoads      atomic.Int64
	LoadConflicts      atomic.Int64
	ChunkReads         atomic.Int64
	Releases           atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"transcript_requests":  metrics.TranscriptRequests.Load(),
		"transcript_errors":    metrics.TranscriptErrors.Load(),
		"player_requests":      metrics.PlayerRequests.Load(),
		"page_scrape_requests": metrics.PageScrapeRequests.Load(),
		"panel_requests":       metrics.PanelRequests.Load(),
		"timedtext_requests":   metrics.TimedTextRequests.Load(),
		"translations":         metrics.Translations.Load(),
		"metadata_requests":    metrics.MetadataRequests.Load(),
		"document_loads":       metrics.DocumentLoads.Load(),
		"load_conflicts":       metrics.LoadConflicts.Load(),
		"chunk_reads":          metrics.ChunkReads.Load(),
		"releases":             metrics.Releases.Load(),
		"cache_hits":           hits,
		"cache_misses":         misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"transcript_requests", "transcript_errors",
		"player_requests", "page_scrape_requests", "panel_requests",
		"timedtext_requests", "translations", "metadata_requests",
		"document_loads", "load_conflicts", "chunk_reads", "releases",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the sources/ sub-package.
func IncrTranscriptRequests() { metrics.TranscriptRequests.Add(1) }
func IncrTranscriptErrors()   { metrics.TranscriptErrors.Add(1) }
func IncrPlayerRequests()     { metrics.PlayerRequests.Add(1) }
func IncrPageScrapeRequests() { metrics.PageScrapeRequests.Add(1) }
func IncrPanelRequests()      { metrics.PanelRequests.Add(1) }
func IncrTimedTextRequests()  { metrics.TimedTextRequests.Add(1) }
func IncrTranslations()       { metrics.Translations.Add(1) }
func IncrMetadataRequests()   { metrics.MetadataRequests.Add(1) }

// Incrementors for the tool layer.
func IncrDocumentLoads() { metrics.DocumentLoads.Add(1) }
func IncrLoadConflicts() { metrics.LoadConflicts.Add(1) }
func IncrChunkReads()    { metrics.ChunkReads.Add(1) }
func IncrReleases()      { metrics.Releases.Add(1) }
