package sources

// YouTube caption access is split across files by responsibility:
//   videoid.go    — video ID extraction from URL shapes
//   innertube.go  — Innertube API types, constants, and low-level HTTP primitives
//   tracklist.go  — enumeration-capable source (/player captionTracks, timedtext, translation)
//   panel.go      — direct-fetch source (/next → /get_transcript, no track control)
//   resolver.go   — capability probing and the language/quality fallback chain
//   metadata.go   — best-effort watch-page title/channel scrape
