// Package transcriptserver registers the MCP tools exposed by
// go_transcript: transcript_load, transcript_status, transcript_read,
// transcript_release, and transcript_get.
package transcriptserver

import (
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/anatolykoptev/go_transcript/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DocumentInfo is the metadata block shared by load and status responses.
type DocumentInfo struct {
	DocumentID    string `json:"documentId"`
	VideoID       string `json:"videoId"`
	Language      string `json:"language"`
	TranslatedTo  string `json:"translatedTo,omitempty"`
	ProxyUsed     bool   `json:"proxyUsed"`
	WordCount     int    `json:"wordCount"`
	CharCount     int    `json:"charCount"`
	PageSizeChars int    `json:"pageSizeChars"`
	TotalChunks   int    `json:"totalChunks"`
	Title         string `json:"title,omitempty"`
	Channel       string `json:"channel,omitempty"`
}

func documentInfo(doc *store.Document) DocumentInfo {
	return DocumentInfo{
		DocumentID:    doc.ID,
		VideoID:       doc.VideoID,
		Language:      doc.Language,
		TranslatedTo:  doc.TranslatedTo,
		ProxyUsed:     doc.ProxyUsed,
		WordCount:     doc.WordCount,
		CharCount:     len(doc.Text),
		PageSizeChars: doc.MaxChars,
		TotalChunks:   doc.TotalChunks(),
		Title:         doc.Title,
		Channel:       doc.Channel,
	}
}

// RegisterTools registers all transcript tools on the given MCP server.
// The document store and resolver are injected rather than ambient so the
// slot has exactly one owner.
func RegisterTools(server *mcp.Server, docs *store.Store, resolver *sources.Resolver) {
	registerLoad(server, docs, resolver)
	registerStatus(server, docs)
	registerRead(server, docs)
	registerRelease(server, docs)
	registerGet(server, resolver)
}
