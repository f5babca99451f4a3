package transcriptserver

import (
	"context"

	"github.com/anatolykoptev/go_transcript/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type StatusInput struct{}

type StatusOutput struct {
	Building bool          `json:"building"`
	Loaded   bool          `json:"loaded"`
	Document *DocumentInfo `json:"document,omitempty"`
}

func registerStatus(server *mcp.Server, docs *store.Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "transcript_status",
		Description: "Report the document slot state: whether a build is in progress and, when a transcript is loaded, its handle and paging metadata.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		doc, building := docs.Snapshot()
		out := StatusOutput{Building: building, Loaded: doc != nil}
		if doc != nil {
			info := documentInfo(doc)
			out.Document = &info
		}
		return nil, out, nil
	})
}
