package sources

import (
	"context"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// The caption source's capability surface varies across deployments. Two
// shapes exist; the resolver probes for them once at construction and never
// branches on capability per call.

// TrackLister is the enumeration-capable shape: tracks can be listed,
// fetched individually, and (when supported) translated.
type TrackLister interface {
	ListTracks(ctx context.Context, videoID string) ([]CaptionTrack, error)
	FetchTrack(ctx context.Context, track CaptionTrack) ([]engine.TranscriptSegment, error)
	Translate(ctx context.Context, track CaptionTrack, lang string) (CaptionTrack, error)
}

// DirectFetcher is the direct-fetch shape: the collaborator picks "the
// best" track itself and returns its segments. Language metadata is
// best-effort.
type DirectFetcher interface {
	FetchBest(ctx context.Context, videoID string, langs []string) ([]engine.TranscriptSegment, string, error)
}

// NewCaptionSource selects the caption source implementation for this
// deployment. "innertube" (default) is enumeration-capable; "panel" is the
// direct-fetch shape for egress environments where /player is blocked.
func NewCaptionSource(mode string) any {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "panel":
		return &PanelSource{}
	default:
		return &InnertubeSource{}
	}
}

// Resolution is the outcome of a transcript resolution.
type Resolution struct {
	Segments   []engine.TranscriptSegment
	Language   string // language actually used, best-effort on the direct path
	Translated bool
}

// Resolver applies the language/quality fallback chain against whichever
// caption-source shape is available.
type Resolver struct {
	lister TrackLister   // nil when the source cannot enumerate
	direct DirectFetcher // nil when the source cannot direct-fetch
}

// NewResolver probes source for its capability shapes. A source may
// implement both; enumeration is preferred at resolve time.
func NewResolver(source any) *Resolver {
	r := &Resolver{}
	if l, ok := source.(TrackLister); ok {
		r.lister = l
	}
	if d, ok := source.(DirectFetcher); ok {
		r.direct = d
	}
	return r
}

// PreferenceList builds the ordered language preference list for a target:
// the target first, then the English variants, deduplicated in order.
func PreferenceList(target string) []string {
	candidates := []string{target, "en", "en-GB", "en-US"}
	seen := make(map[string]bool, len(candidates))
	prefs := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		prefs = append(prefs, c)
	}
	return prefs
}

// Resolve obtains one concrete set of caption segments for the video.
//
// Enumeration path, in order: human-authored track matching a preference,
// auto-generated track matching a preference, first listed track with a
// best-effort translation to the target. Direct path: preference list
// first, then unconstrained. Intermediate failures drive the chain and are
// never surfaced; the call fails only when every step is exhausted.
func (r *Resolver) Resolve(ctx context.Context, videoID, targetLang string) (Resolution, error) {
	engine.IncrTranscriptRequests()
	prefs := PreferenceList(targetLang)

	if r.lister != nil {
		res, err := r.resolveFromListing(ctx, videoID, targetLang, prefs)
		if err != nil {
			engine.IncrTranscriptErrors()
		}
		return res, err
	}

	if r.direct != nil {
		res, err := r.resolveDirect(ctx, videoID, prefs)
		if err != nil {
			engine.IncrTranscriptErrors()
		}
		return res, err
	}

	engine.IncrTranscriptErrors()
	return Resolution{}, engine.Errorf(engine.ErrInternal, "caption source exposes no known capability")
}

func (r *Resolver) resolveFromListing(ctx context.Context, videoID, targetLang string, prefs []string) (Resolution, error) {
	tracks, err := r.lister.ListTracks(ctx, videoID)
	if err != nil {
		if engine.IsKind(err, engine.ErrNotFound) {
			return Resolution{}, err
		}
		return Resolution{}, engine.WrapErr(engine.ErrUpstream, err, "list caption tracks")
	}
	if len(tracks) == 0 {
		return Resolution{}, engine.Errorf(engine.ErrNotFound, "no caption tracks listed for video")
	}

	// 1) human-authored track in preference order
	if track, ok := findTrack(tracks, prefs, false); ok {
		if segs, err := r.lister.FetchTrack(ctx, track); err == nil {
			return Resolution{Segments: segs, Language: track.Language}, nil
		} else {
			slog.Debug("youtube: manual track fetch failed, trying generated",
				slog.String("id", videoID), slog.String("lang", track.Language), slog.Any("err", err))
		}
	}

	// 2) auto-generated track in preference order
	if track, ok := findTrack(tracks, prefs, true); ok {
		if segs, err := r.lister.FetchTrack(ctx, track); err == nil {
			return Resolution{Segments: segs, Language: track.Language}, nil
		} else {
			slog.Debug("youtube: generated track fetch failed, trying first listed",
				slog.String("id", videoID), slog.String("lang", track.Language), slog.Any("err", err))
		}
	}

	// 3) first listed track, translated to the target when possible
	track := tracks[0]
	lang := track.Language
	translated := false
	if targetLang != "" && !strings.HasPrefix(lang, targetLang) {
		if tt, err := r.lister.Translate(ctx, track, targetLang); err == nil {
			track = tt
			lang = targetLang
			translated = true
		} else {
			// translation not available; keep original
			slog.Debug("youtube: translation unavailable, keeping original language",
				slog.String("id", videoID), slog.String("lang", lang), slog.Any("err", err))
		}
	}

	segs, err := r.lister.FetchTrack(ctx, track)
	if err != nil {
		return Resolution{}, engine.WrapErr(engine.ErrUpstream, err, "fetch caption track")
	}
	return Resolution{Segments: segs, Language: lang, Translated: translated}, nil
}

func (r *Resolver) resolveDirect(ctx context.Context, videoID string, prefs []string) (Resolution, error) {
	segs, lang, err := r.direct.FetchBest(ctx, videoID, prefs)
	if err != nil {
		slog.Warn("youtube: direct fetch with preferences failed, retrying unconstrained",
			slog.String("id", videoID), slog.Any("err", err))
		segs, lang, err = r.direct.FetchBest(ctx, videoID, nil)
	}
	if err != nil {
		if engine.IsKind(err, engine.ErrNotFound) {
			return Resolution{}, err
		}
		return Resolution{}, engine.WrapErr(engine.ErrUpstream, err, "direct transcript fetch")
	}
	return Resolution{Segments: segs, Language: lang}, nil
}

// findTrack returns the first track matching any preference, scanning
// preferences in order. generated selects between auto-generated and
// human-authored tracks.
func findTrack(tracks []CaptionTrack, prefs []string, generated bool) (CaptionTrack, bool) {
	for _, lang := range prefs {
		for _, t := range tracks {
			if t.Language == lang && t.Generated() == generated {
				return t, true
			}
		}
	}
	return CaptionTrack{}, false
}
