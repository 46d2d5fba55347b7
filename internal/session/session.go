package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"resumeiq-backend/internal/ai"
	"resumeiq-backend/internal/ingest"
	"resumeiq-backend/internal/profile"
)

// Phase is the session's lifecycle state. A Session is always in exactly
// one phase; the transitions are Empty -> Loading -> {Ready, Error},
// Error -> Loading (retry), Ready -> Loading (re-upload), Ready -> Empty
// (reset).
type Phase string

const (
	PhaseEmpty   Phase = "empty"
	PhaseLoading Phase = "loading"
	PhaseError   Phase = "error"
	PhaseReady   Phase = "ready"
)

// Fixed assistant greeting seeded into every new conversation. It is never
// replayed to the remote service.
const greetingText = "Hello! I've analyzed the resume. Ask me anything about the candidate's experience, skills, or suitability for a role."

var (
	// ErrBusy rejects a second upload while one is loading, or a second
	// question while one is in flight.
	ErrBusy = errors.New("request already in flight")
	// ErrNotReady rejects chat before a profile exists.
	ErrNotReady = errors.New("no resume loaded")
	// ErrSuperseded reports that the session was reset or its document
	// replaced while a question was in flight; the stale answer is dropped.
	ErrSuperseded = errors.New("session changed while answering")
)

// Message is one entry in the append-only conversation log.
type Message struct {
	ID        string    `json:"id"`
	Role      ai.Role   `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session holds the single user session: one document, one profile, one
// conversation. All fields share a lifecycle and are cleared together on
// reset. Methods maintain the phase invariants so no impossible flag
// combination (loading and errored at once, say) can be observed.
type Session struct {
	mu       sync.Mutex
	phase    Phase
	errMsg   string
	payload  *ingest.DocumentPayload
	prof     *profile.CandidateProfile
	messages []Message
	askBusy  bool
	// gen advances whenever the conversation is cleared or replaced, so a
	// chat reply that resolves after a reset or re-upload cannot land in a
	// conversation it does not belong to.
	gen uint64
}

// New returns an empty session.
func New() *Session {
	return &Session{phase: PhaseEmpty}
}

// BeginUpload claims the Loading phase. It fails with ErrBusy when an
// ingestion+extraction pair is already in flight. The returned phase and
// message are the pre-claim state, used to roll back on local validation
// failures that must not disturb the session.
func (s *Session) BeginUpload() (Phase, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseLoading {
		return "", "", ErrBusy
	}
	prev, prevMsg := s.phase, s.errMsg
	s.phase = PhaseLoading
	s.errMsg = ""
	return prev, prevMsg, nil
}

// RollbackUpload restores the pre-claim state after a validation failure.
// Validation errors are local and terminal for the attempt; the session
// stays where it was.
func (s *Session) RollbackUpload(prev Phase, prevMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = prev
	s.errMsg = prevMsg
}

// FailUpload transitions Loading -> Error. The message is user-visible;
// the user may retry ingestion. Any prior document and profile are
// discarded, never exposed as Ready.
func (s *Session) FailUpload(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseError
	s.errMsg = message
	s.payload = nil
	s.prof = nil
	s.messages = nil
	s.askBusy = false
	s.gen++
}

// CompleteUpload transitions Loading -> Ready, replacing the document,
// profile, and conversation wholesale. The conversation restarts with the
// fixed greeting.
func (s *Session) CompleteUpload(payload *ingest.DocumentPayload, prof *profile.CandidateProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseReady
	s.errMsg = ""
	s.payload = payload
	s.prof = prof
	s.askBusy = false
	s.gen++
	s.messages = []Message{newMessage(ai.RoleAssistant, greetingText)}
}

// BeginAsk claims the single chat slot, appends the user's message
// optimistically, and returns the document plus the history to replay:
// everything before this question, greeting excluded. The returned
// generation ties the eventual reply to this conversation.
func (s *Session) BeginAsk(question string) (*ingest.DocumentPayload, []ai.Turn, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseReady {
		return nil, nil, 0, ErrNotReady
	}
	if s.askBusy {
		return nil, nil, 0, ErrBusy
	}
	s.askBusy = true

	// messages[0] is always the synthetic greeting in Ready phase.
	history := make([]ai.Turn, 0, len(s.messages)-1)
	for _, m := range s.messages[1:] {
		history = append(history, ai.Turn{Role: m.Role, Text: m.Text})
	}
	s.messages = append(s.messages, newMessage(ai.RoleUser, question))

	return s.payload, history, s.gen, nil
}

// FinishAsk appends the assistant's reply and releases the chat slot. The
// reply is the remote answer on success or the caller's error placeholder
// on failure; either way the transcript stays ordered and intact. A reply
// whose generation has been superseded by a reset or re-upload is dropped:
// it belongs to a conversation that no longer exists, and the chat slot it
// held was already released with that conversation.
func (s *Session) FinishAsk(gen uint64, reply string) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return Message{}, false
	}
	msg := newMessage(ai.RoleAssistant, reply)
	s.messages = append(s.messages, msg)
	s.askBusy = false
	return msg, true
}

// Reset clears the document, profile, and conversation together, returning
// the session to Empty.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseEmpty
	s.errMsg = ""
	s.payload = nil
	s.prof = nil
	s.messages = nil
	s.askBusy = false
	s.gen++
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Messages returns a copy of the conversation log.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Snapshot is the read-only session view served to the UI.
type Snapshot struct {
	Phase    Phase                     `json:"state"`
	Error    string                    `json:"error,omitempty"`
	Document *DocumentInfo             `json:"document,omitempty"`
	Profile  *profile.CandidateProfile `json:"profile,omitempty"`
	Score    *ScoreInfo                `json:"score,omitempty"`
	Messages []Message                 `json:"messages,omitempty"`
}

// DocumentInfo is document metadata without the raw bytes.
type DocumentInfo struct {
	FileName  string `json:"fileName"`
	MediaType string `json:"mediaType"`
	SizeBytes int64  `json:"sizeBytes"`
	Text      string `json:"textExcerpt,omitempty"`
}

// ScoreInfo pairs the overall score with its dashboard color band.
type ScoreInfo struct {
	Overall float64 `json:"overall"`
	Band    string  `json:"band"`
}

// Snapshot returns the current session view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Phase: s.phase, Error: s.errMsg}
	if s.payload != nil {
		snap.Document = &DocumentInfo{
			FileName:  s.payload.FileName,
			MediaType: s.payload.MediaType,
			SizeBytes: s.payload.SizeBytes,
			Text:      s.payload.Text,
		}
	}
	if s.prof != nil {
		p := *s.prof
		snap.Profile = &p
		snap.Score = &ScoreInfo{
			Overall: p.OverallScore,
			Band:    profile.ScoreBand(p.OverallScore),
		}
	}
	if len(s.messages) > 0 {
		snap.Messages = make([]Message, len(s.messages))
		copy(snap.Messages, s.messages)
	}
	return snap
}

func newMessage(role ai.Role, text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
}
