package transcriptserver

import (
	"context"
	"log/slog"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/anatolykoptev/go_transcript/internal/store"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type LoadInput struct {
	URL            string `json:"url" jsonschema:"YouTube video URL (watch, youtu.be, shorts, or embed form)"`
	TargetLanguage string `json:"targetLanguage,omitempty" jsonschema:"Preferred transcript language code (default: en)"`
	MaxChars       int    `json:"maxChars,omitempty" jsonschema:"Page size in characters for chunked reads (default: 20000)"`
	Force          bool   `json:"force,omitempty" jsonschema:"Replace the currently loaded document if one exists"`
}

type LoadOutput = DocumentInfo

func registerLoad(server *mcp.Server, docs *store.Store, resolver *sources.Resolver) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "transcript_load",
		Description: "Resolve and load the transcript of a YouTube video into the single document slot, split into pages of at most maxChars characters. Returns the document handle and paging metadata; read pages with transcript_read. Fails with a conflict if a document is already loaded (pass force=true to replace) or a build is in progress.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input LoadInput) (*mcp.CallToolResult, LoadOutput, error) {
		if input.URL == "" {
			return nil, LoadOutput{}, engine.Errorf(engine.ErrValidation, "url is required")
		}
		videoID, ok := sources.ExtractVideoID(input.URL)
		if !ok {
			return nil, LoadOutput{}, engine.Errorf(engine.ErrValidation, "could not parse video id from %q", input.URL)
		}
		targetLang := toolutil.NormTargetLanguage(input.TargetLanguage)
		maxChars, err := toolutil.PageSize(input.MaxChars)
		if err != nil {
			return nil, LoadOutput{}, err
		}

		if err := docs.Begin(input.Force); err != nil {
			engine.IncrLoadConflicts()
			return nil, LoadOutput{}, err
		}

		doc, err := buildDocument(ctx, resolver, videoID, targetLang, maxChars)
		if err != nil {
			docs.Abort()
			slog.Warn("transcript_load: build failed",
				slog.String("video", videoID), slog.Any("error", err))
			return nil, LoadOutput{}, err
		}

		docs.Commit(doc)
		engine.IncrDocumentLoads()
		slog.Info("transcript_load: document ready",
			slog.String("doc", doc.ID),
			slog.String("video", videoID),
			slog.String("language", doc.Language),
			slog.Int("chars", len(doc.Text)),
			slog.Int("chunks", doc.TotalChunks()),
		)
		return nil, documentInfo(doc), nil
	})
}

// buildDocument runs the resolve → flatten → validate → plan pipeline and
// assembles the document. It does not touch the store; the caller owns the
// commit/abort decision.
func buildDocument(ctx context.Context, resolver *sources.Resolver, videoID, targetLang string, maxChars int) (*store.Document, error) {
	res, err := resolver.Resolve(ctx, videoID, targetLang)
	if err != nil {
		return nil, err
	}

	text := engine.FlattenSegments(res.Segments)
	words := engine.CountWords(text)
	if text == "" || words < engine.Cfg.MinTranscriptWords {
		return nil, engine.Errorf(engine.ErrNotFound, "no transcript available for video %s", videoID)
	}
	if max := engine.Cfg.MaxTextChars; max > 0 && len(text) > max {
		return nil, engine.Errorf(engine.ErrPayloadTooLarge,
			"transcript is %d chars, exceeds the %d char ceiling", len(text), max)
	}

	doc := &store.Document{
		ID:        store.NewDocumentID(videoID),
		VideoID:   videoID,
		Text:      text,
		Language:  res.Language,
		ProxyUsed: engine.Cfg.ProxyEnabled,
		MaxChars:  maxChars,
		WordCount: words,
		Bounds:    store.PlanChunks(text, maxChars),
		LoadedAt:  time.Now(),
	}
	if res.Translated {
		doc.TranslatedTo = targetLang
	}

	// Title/channel are decoration; a failed scrape never fails the build.
	if meta, err := sources.FetchVideoMeta(ctx, videoID); err == nil {
		doc.Title = meta.Title
		doc.Channel = meta.Channel
	} else {
		slog.Debug("transcript_load: metadata scrape failed",
			slog.String("video", videoID), slog.Any("error", err))
	}

	return doc, nil
}
