package transcriptserver

import (
	"context"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ReadInput struct {
	DocumentID string `json:"documentId" jsonschema:"Handle returned by transcript_load"`
	Cursor     int    `json:"cursor" jsonschema:"Zero-based chunk index in [0, totalChunks)"`
}

type ReadMetadata struct {
	VideoID  string `json:"videoId"`
	Title    string `json:"title,omitempty"`
	Channel  string `json:"channel,omitempty"`
	Language string `json:"language"`
}

type ReadOutput struct {
	DocumentID  string       `json:"documentId"`
	ChunkIndex  int          `json:"chunkIndex"`
	TotalChunks int          `json:"totalChunks"`
	MaxChars    int          `json:"maxChars"`
	ChunkText   string       `json:"chunkText"`
	Metadata    ReadMetadata `json:"metadata"`
}

func registerRead(server *mcp.Server, docs *store.Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "transcript_read",
		Description: "Read one page of the loaded transcript by zero-based cursor. Pages are bounded by the maxChars set at load time; iterate the cursor up to totalChunks-1 to read the whole document.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input ReadInput) (*mcp.CallToolResult, ReadOutput, error) {
		// An empty documentId is just an id that matches no document;
		// the store classifies it as not found.
		doc, bound, err := docs.Chunk(input.DocumentID, input.Cursor)
		if err != nil {
			return nil, ReadOutput{}, err
		}

		engine.IncrChunkReads()
		return nil, ReadOutput{
			DocumentID:  doc.ID,
			ChunkIndex:  input.Cursor,
			TotalChunks: doc.TotalChunks(),
			MaxChars:    doc.MaxChars,
			ChunkText:   doc.Text[bound.Start:bound.End],
			Metadata: ReadMetadata{
				VideoID:  doc.VideoID,
				Title:    doc.Title,
				Channel:  doc.Channel,
				Language: doc.Language,
			},
		}, nil
	})
}
