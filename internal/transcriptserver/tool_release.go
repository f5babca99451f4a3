package transcriptserver

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ReleaseInput struct {
	DocumentID string `json:"documentId" jsonschema:"Handle returned by transcript_load"`
}

type ReleaseOutput struct {
	Released bool `json:"released"`
}

func registerRelease(server *mcp.Server, docs *store.Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "transcript_release",
		Description: "Release the loaded transcript document, freeing the slot for the next load. The documentId must match the currently loaded document.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input ReleaseInput) (*mcp.CallToolResult, ReleaseOutput, error) {
		if err := docs.Release(input.DocumentID); err != nil {
			return nil, ReleaseOutput{}, err
		}
		engine.IncrReleases()
		slog.Info("transcript_release: slot freed", slog.String("doc", input.DocumentID))
		return nil, ReleaseOutput{Released: true}, nil
	})
}
