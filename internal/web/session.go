package web

import (
	"archive/zip"
	"bytes"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chatmd/chatmd/internal"
	"github.com/chatmd/chatmd/internal/export"
)

// MaxSessionAge is how long an upload stays available before it is
// dropped from the store.
const MaxSessionAge = time.Hour

// outputBase is the top-level directory inside generated result ZIPs.
const outputBase = "claude_import"

// ErrNoResult is returned when a download is requested before a
// conversion has produced a result ZIP.
var ErrNoResult = errors.New("no conversion result found")

// Session holds the state of one in-progress conversion. All data
// stays in memory; nothing touches disk.
type Session struct {
	ID        string
	CreatedAt time.Time

	raw        []internal.RawConversation
	metadata   []*internal.ConversationMeta
	statistics *internal.ExportStatistics

	mu     sync.Mutex
	result []byte
}

// newSession parses an uploaded export and runs the metadata fast path.
func newSession(data []byte) (*Session, error) {
	raw, err := internal.ExtractConversationsFromBytes(data)
	if err != nil {
		return nil, err
	}

	metadata := internal.ParseMetadata(raw)
	return &Session{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now(),
		raw:        raw,
		metadata:   metadata,
		statistics: internal.ComputeMetaStatistics(metadata),
	}, nil
}

// Metadata returns the per-conversation preview records.
func (s *Session) Metadata() []*internal.ConversationMeta { return s.metadata }

// Statistics returns the aggregate statistics of the upload.
func (s *Session) Statistics() *internal.ExportStatistics { return s.statistics }

// Preview fully parses and renders a single conversation. The second
// return is false when the conversation id is unknown.
func (s *Session) Preview(conversationID string) (string, bool) {
	for i := range s.raw {
		if s.raw[i].ID == conversationID {
			conv := internal.ParseConversation(&s.raw[i])
			return export.ConversationToMarkdown(conv, export.DefaultOptions()), true
		}
	}
	return "", false
}

// Convert renders the selected conversations (all of them when ids is
// empty) into an in-memory ZIP and retains it for download.
func (s *Session) Convert(ids []string, mode internal.OrganizeMode, frontmatter bool) error {
	selected := s.raw
	if len(ids) > 0 {
		idSet := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			idSet[id] = struct{}{}
		}
		selected = nil
		for i := range s.raw {
			if _, ok := idSet[s.raw[i].ID]; ok {
				selected = append(selected, s.raw[i])
			}
		}
	}

	opts := export.DefaultOptions()
	opts.Frontmatter = frontmatter

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	var converted []*internal.Conversation
	usedPaths := make(map[string]int)

	for _, conv := range internal.ParseConversations(selected) {
		if len(conv.Messages) == 0 {
			continue
		}

		for _, part := range export.MaybeSplit(conv, export.DefaultMaxSize) {
			doc := export.ConversationToMarkdown(part, opts)
			outPath := internal.ResolveOutputPath(part, mode, outputBase)
			outPath = internal.DeduplicatePath(outPath, usedPaths)

			w, err := zw.Create(filepath.ToSlash(outPath))
			if err != nil {
				_ = zw.Close()
				return err
			}
			if _, err := w.Write([]byte(doc)); err != nil {
				_ = zw.Close()
				return err
			}
		}
		converted = append(converted, conv)
	}

	for name, content := range map[string]string{
		outputBase + "/_INDEX.md":        export.GenerateIndex(converted),
		outputBase + "/_UPLOAD_GUIDE.md": export.UploadGuide,
	} {
		w, err := zw.Create(name)
		if err != nil {
			_ = zw.Close()
			return err
		}
		if _, err := w.Write([]byte(content)); err != nil {
			_ = zw.Close()
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return err
	}

	s.mu.Lock()
	s.result = buf.Bytes()
	s.mu.Unlock()
	return nil
}

// Result returns the generated ZIP, or ErrNoResult when Convert has
// not completed yet.
func (s *Session) Result() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return nil, ErrNoResult
	}
	return s.result, nil
}

// Store keeps active sessions in memory with a fixed TTL.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      MaxSessionAge,
		now:      time.Now,
	}
}

// Create parses uploaded ZIP bytes into a new session.
func (st *Store) Create(data []byte) (*Session, error) {
	session, err := newSession(data)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.cleanupLocked()
	st.sessions[session.ID] = session
	return session, nil
}

// Get returns an active session, dropping it if expired.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	session, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	if st.now().Sub(session.CreatedAt) > st.ttl {
		delete(st.sessions, id)
		return nil, false
	}
	return session, true
}

func (st *Store) cleanupLocked() {
	now := st.now()
	for id, session := range st.sessions {
		if now.Sub(session.CreatedAt) > st.ttl {
			delete(st.sessions, id)
		}
	}
}
