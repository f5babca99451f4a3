package transcriptserver

import (
	"context"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type GetInput struct {
	URL            string `json:"url" jsonschema:"YouTube video URL (watch, youtu.be, shorts, or embed form)"`
	TargetLanguage string `json:"targetLanguage,omitempty" jsonschema:"Preferred transcript language code (default: en)"`
}

type GetOutput struct {
	VideoID      string                     `json:"videoId"`
	Language     string                     `json:"language"`
	TranslatedTo string                     `json:"translatedTo,omitempty"`
	Text         string                     `json:"text"`
	Segments     []engine.TranscriptSegment `json:"segments"`
}

// registerGet registers the one-shot path: resolve and return the whole
// transcript in a single response, bypassing the document slot. Suited to
// short videos; long transcripts belong in transcript_load.
func registerGet(server *mcp.Server, resolver *sources.Resolver) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "transcript_get",
		Description: "Fetch the full transcript of a YouTube video in one response (flattened text plus timed segments), without loading it into the paged document slot. For long videos prefer transcript_load + transcript_read.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input GetInput) (*mcp.CallToolResult, GetOutput, error) {
		if input.URL == "" {
			return nil, GetOutput{}, engine.Errorf(engine.ErrValidation, "url is required")
		}
		videoID, ok := sources.ExtractVideoID(input.URL)
		if !ok {
			return nil, GetOutput{}, engine.Errorf(engine.ErrValidation, "could not parse video id from %q", input.URL)
		}
		targetLang := toolutil.NormTargetLanguage(input.TargetLanguage)

		cacheKey := engine.CacheKey("transcript_get", videoID, targetLang)
		if out, ok := engine.CacheLoadJSON[GetOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		res, err := resolver.Resolve(ctx, videoID, targetLang)
		if err != nil {
			return nil, GetOutput{}, err
		}

		text := engine.FlattenSegments(res.Segments)
		if text == "" || engine.CountWords(text) < engine.Cfg.MinTranscriptWords {
			return nil, GetOutput{}, engine.Errorf(engine.ErrNotFound, "no transcript available for video %s", videoID)
		}

		out := GetOutput{
			VideoID:  videoID,
			Language: res.Language,
			Text:     text,
			Segments: res.Segments,
		}
		if res.Translated {
			out.TranslatedTo = targetLang
		}

		engine.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}
