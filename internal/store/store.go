// Package store holds the single-slot chunked document store: at most one
// fully built transcript document, guarded by a mutex-backed build state
// machine (Idle → Building → Ready).
package store

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// State is the build state of the slot.
type State int

const (
	Idle State = iota
	Building
	Ready
)

func (s State) String() string {
	switch s {
	case Building:
		return "building"
	case Ready:
		return "ready"
	default:
		return "idle"
	}
}

// Document is a fully built, immutable transcript document. It is replaced
// wholesale, never mutated in place.
type Document struct {
	ID           string
	VideoID      string
	Text         string
	Language     string
	TranslatedTo string // empty when no translation occurred
	Title        string
	Channel      string
	ProxyUsed    bool
	MaxChars     int
	WordCount    int
	Bounds       []Bound
	LoadedAt     time.Time
}

// TotalChunks returns the number of pages in the document.
func (d *Document) TotalChunks() int { return len(d.Bounds) }

// NewDocumentID derives a unique document handle for a video load.
func NewDocumentID(videoID string) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%d", videoID, time.Now().UnixNano()))
	return fmt.Sprintf("doc-%x", sum[:8])
}

// Store is the process-wide single slot. One build runs at a time; a forced
// rebuild keeps the prior document in place until the new one commits, so a
// failed rebuild never loses the previous document.
type Store struct {
	mu       sync.Mutex
	building bool
	doc      *Document
}

// New creates an empty store in the idle state.
func New() *Store {
	return &Store{}
}

// State reports the current build state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.building {
		return Building
	}
	if s.doc != nil {
		return Ready
	}
	return Idle
}

// Begin claims the slot for a build. A build in progress is always a
// conflict. An existing document without force is a conflict that names the
// document, so callers can discover and reuse it.
func (s *Store) Begin(force bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.building {
		return engine.Errorf(engine.ErrConflict, "a transcript build is already in progress")
	}
	if s.doc != nil && !force {
		return engine.Errorf(engine.ErrConflict,
			"document %s (video %s) is already loaded; pass force=true to replace it", s.doc.ID, s.doc.VideoID)
	}
	s.building = true
	return nil
}

// Commit installs the built document, replacing any prior one atomically.
func (s *Store) Commit(doc *Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.building = false
}

// Abort ends a failed build, leaving the slot exactly as before Begin.
func (s *Store) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.building = false
}

// Snapshot returns the current document (nil when empty) and whether a
// build is in progress. Never mutates state.
func (s *Store) Snapshot() (*Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc, s.building
}

// Release clears the slot if documentID matches the held document.
// A mismatched or absent ID is a not-found error and leaves the slot alone.
func (s *Store) Release(documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil || s.doc.ID != documentID {
		return engine.Errorf(engine.ErrNotFound, "no loaded document with id %q", documentID)
	}
	s.doc = nil
	return nil
}

// Chunk returns the document and the bounds of the chunk at cursor.
// Unknown document IDs and out-of-range cursors are not-found errors;
// the read never mutates state.
func (s *Store) Chunk(documentID string, cursor int) (*Document, Bound, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil || s.doc.ID != documentID {
		return nil, Bound{}, engine.Errorf(engine.ErrNotFound, "no loaded document with id %q", documentID)
	}
	if cursor < 0 || cursor >= len(s.doc.Bounds) {
		return nil, Bound{}, engine.Errorf(engine.ErrNotFound,
			"cursor %d out of range [0, %d)", cursor, len(s.doc.Bounds))
	}
	return s.doc, s.doc.Bounds[cursor], nil
}
