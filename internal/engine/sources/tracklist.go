package sources

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// CaptionTrack is a handle to one available caption source for a video.
type CaptionTrack struct {
	BaseURL        string
	Language       string
	Kind           string // "asr" = auto-generated
	IsTranslatable bool
}

// Generated reports whether the track is auto-generated rather than
// human-authored.
func (t CaptionTrack) Generated() bool { return t.Kind == "asr" }

// InnertubeSource is the enumeration-capable caption source: it can list a
// video's caption tracks, fetch any of them, and request server-side
// translation of translatable tracks.
//
// Track listing goes through the ANDROID Innertube /player endpoint first
// (works from non-blocked IPs) and falls back to scraping the watch page's
// ytInitialPlayerResponse (works from any IP).
type InnertubeSource struct{}

// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// ListTracks enumerates the usable caption tracks for a video, in YouTube's
// own order. Tracks that require a PoToken are dropped — they only work in
// a browser.
func (s *InnertubeSource) ListTracks(ctx context.Context, videoID string) ([]CaptionTrack, error) {
	raw, err := s.listViaPlayer(ctx, videoID)
	if err != nil {
		slog.Warn("youtube: player listing failed, trying watch page",
			slog.String("id", videoID), slog.Any("err", err))
		raw, err = s.listViaPageScrape(ctx, videoID)
		if err != nil {
			return nil, err
		}
	}

	tracks := make([]CaptionTrack, 0, len(raw))
	for _, t := range raw {
		if needsPoToken(t.BaseURL) {
			continue
		}
		tracks = append(tracks, CaptionTrack{
			BaseURL:        t.BaseURL,
			Language:       t.LanguageCode,
			Kind:           t.Kind,
			IsTranslatable: t.IsTranslatable,
		})
	}
	return tracks, nil
}

// listViaPlayer uses the ANDROID Innertube /player endpoint.
func (s *InnertubeSource) listViaPlayer(ctx context.Context, videoID string) ([]ytCaptionTrack, error) {
	engine.IncrPlayerRequests()
	if err := waitTurn(ctx); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, engine.Cfg.FetchTimeout)
	defer cancel()

	reqBody, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, ytInnertubeURL+"?prettyPrint=false", strings.NewReader(string(reqBody)))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", ytAndroidUA)
		req.Header.Set("X-Youtube-Client-Name", "3")
		req.Header.Set("X-Youtube-Client-Version", ytAndroidVersion)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("android innertube: %w", err)
	}
	defer resp.Body.Close()

	var playerResp innertubePlayerResp
	if err := json.NewDecoder(resp.Body).Decode(&playerResp); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	return tracksFromPlayerResp(&playerResp)
}

// listViaPageScrape scrapes the YouTube watch page HTML and extracts caption
// tracks from ytInitialPlayerResponse. Works from any IP.
func (s *InnertubeSource) listViaPageScrape(ctx context.Context, videoID string) ([]ytCaptionTrack, error) {
	engine.IncrPageScrapeRequests()
	if err := waitTurn(ctx); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, engine.Cfg.FetchTimeout)
	defer cancel()
	watchURL := "https://www.youtube.com/watch?v=" + videoID

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.RandomUserAgent())
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read watch page: %w", err)
	}

	idx := strings.Index(string(body), ytInitialPlayerResponseMarker)
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var playerResp innertubePlayerResp
	if err := json.Unmarshal(jsonData, &playerResp); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return tracksFromPlayerResp(&playerResp)
}

// tracksFromPlayerResp maps a player response to raw caption tracks.
// Captions disabled for the video is a not-found condition, not an
// upstream failure.
func tracksFromPlayerResp(playerResp *innertubePlayerResp) ([]ytCaptionTrack, error) {
	if playerResp.Captions == nil {
		reason := ""
		if playerResp.PlayabilityStatus != nil {
			reason = playerResp.PlayabilityStatus.Reason
		}
		if reason != "" {
			return nil, engine.Errorf(engine.ErrNotFound, "captions unavailable: %s", reason)
		}
		return nil, engine.Errorf(engine.ErrNotFound, "no captions in player response")
	}
	return playerResp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks, nil
}

// FetchTrack downloads and parses a track's timedtext XML into segments.
func (s *InnertubeSource) FetchTrack(ctx context.Context, track CaptionTrack) ([]engine.TranscriptSegment, error) {
	engine.IncrTimedTextRequests()
	if err := waitTurn(ctx); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, engine.Cfg.FetchTimeout)
	defer cancel()

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, track.BaseURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return nil, err
	}

	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	segments := make([]engine.TranscriptSegment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := engine.CleanCaptionText(line.Text)
		if text == "" {
			continue
		}
		segments = append(segments, engine.TranscriptSegment{
			Text:     text,
			Start:    line.Start,
			Duration: line.Duration,
		})
	}
	if len(segments) == 0 {
		return nil, errors.New("empty timedtext track")
	}
	return segments, nil
}

// Translate derives a track translated to lang. The timedtext endpoint does
// the translation server-side via the tlang parameter; only translatable
// tracks support it.
func (s *InnertubeSource) Translate(ctx context.Context, track CaptionTrack, lang string) (CaptionTrack, error) {
	if !track.IsTranslatable {
		return CaptionTrack{}, fmt.Errorf("track %q is not translatable", track.Language)
	}
	if lang == "" {
		return CaptionTrack{}, errors.New("empty translation language")
	}
	engine.IncrTranslations()
	translated := track
	translated.BaseURL = track.BaseURL + "&tlang=" + lang
	translated.Language = lang
	translated.IsTranslatable = false
	return translated, nil
}
