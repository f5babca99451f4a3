package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// PanelSource is the direct-fetch caption source: it asks YouTube's
// engagement panel for the transcript of whatever track YouTube itself
// considers best. No enumeration, no translation control. This is the
// shape deployed where the /player endpoint answers LOGIN_REQUIRED
// (datacenter IPs).
//
// Flow: POST /next → extract getTranscriptEndpoint continuation token →
// POST /get_transcript → segments.
type PanelSource struct{}

// getTranscriptRE extracts the continuation token from a raw /next JSON response.
var getTranscriptRE = regexp.MustCompile(`"getTranscriptEndpoint":\{"params":"([^"]+)"`)

func extractTranscriptToken(data []byte) (string, error) {
	if m := getTranscriptRE.FindSubmatch(data); len(m) >= 2 {
		// The params value in the /next JSON response is URL-encoded.
		// /get_transcript expects the decoded (raw base64) form.
		decoded, err := url.QueryUnescape(string(m[1]))
		if err != nil {
			return string(m[1]), nil
		}
		return decoded, nil
	}
	return "", errors.New("getTranscriptEndpoint not found in engagement panels")
}

// FetchBest fetches the transcript of YouTube's own chosen track. langs is
// advisory: the first preference is passed as the interface language, which
// nudges but does not guarantee track selection. The reported language is
// best-effort and may be empty.
func (s *PanelSource) FetchBest(ctx context.Context, videoID string, langs []string) ([]engine.TranscriptSegment, string, error) {
	engine.IncrPanelRequests()

	hl := ""
	if len(langs) > 0 {
		hl = langs[0]
	}
	visitorData := generateVisitorData()

	nextData, err := postInnertubeWEB(ctx, ytNextURL, map[string]any{
		"videoId": videoID,
		"context": ytWebContext(visitorData, hl),
	}, visitorData)
	if err != nil {
		return nil, "", fmt.Errorf("/next: %w", err)
	}

	token, err := extractTranscriptToken(nextData)
	if err != nil {
		return nil, "", engine.Errorf(engine.ErrNotFound, "no transcript panel for video: %v", err)
	}

	clientHl := hl
	if clientHl == "" {
		clientHl = "en"
	}
	transcriptData, err := postInnertubeWEB(ctx, ytGetTranscriptURL, map[string]any{
		"params": token,
		"context": map[string]any{
			"client": ytWebClientCtx{
				ClientName:    "WEB",
				ClientVersion: ytWebVersion,
				VisitorData:   visitorData,
				Hl:            clientHl,
				Gl:            "US",
			},
		},
	}, visitorData)
	if err != nil {
		return nil, "", fmt.Errorf("/get_transcript: %w", err)
	}

	var transcriptResp ytGetTranscriptResp
	if err := json.Unmarshal(transcriptData, &transcriptResp); err != nil {
		return nil, "", fmt.Errorf("decode transcript: %w", err)
	}

	segments := panelSegments(transcriptResp)
	if len(segments) == 0 {
		return nil, "", errors.New("empty transcript segments")
	}
	return segments, hl, nil
}

// panelSegments extracts timed segments from a /get_transcript JSON response.
func panelSegments(resp ytGetTranscriptResp) []engine.TranscriptSegment {
	var segments []engine.TranscriptSegment
	for _, action := range resp.Actions {
		if action.UpdateEngagementPanelAction == nil {
			continue
		}
		segs := action.UpdateEngagementPanelAction.Content.
			TranscriptRenderer.Content.
			TranscriptSearchPanelRenderer.Body.
			TranscriptSegmentListRenderer.InitialSegments
		for _, seg := range segs {
			r := seg.TranscriptSegmentRenderer
			if r == nil {
				continue
			}
			var text string
			for _, run := range r.Snippet.Runs {
				if run.Text == "" {
					continue
				}
				if text != "" {
					text += " "
				}
				text += run.Text
			}
			if text == "" {
				continue
			}
			startMs, _ := strconv.ParseFloat(r.StartMs, 64)
			endMs, _ := strconv.ParseFloat(r.EndMs, 64)
			duration := (endMs - startMs) / 1000
			if duration < 0 {
				duration = 0
			}
			segments = append(segments, engine.TranscriptSegment{
				Text:     text,
				Start:    startMs / 1000,
				Duration: duration,
			})
		}
	}
	return segments
}
