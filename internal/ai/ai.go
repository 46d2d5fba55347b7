package ai

import (
	"context"
	"errors"

	"resumeiq-backend/internal/ingest"
	"resumeiq-backend/internal/profile"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one prior conversation exchange replayed to the remote service.
type Turn struct {
	Role Role
	Text string
}

// Extractor turns an uploaded document into a structured candidate profile.
// The call happens exactly once per uploaded document.
type Extractor interface {
	Extract(ctx context.Context, payload *ingest.DocumentPayload) (*profile.CandidateProfile, error)
}

// Assistant answers questions grounded in the uploaded document. The remote
// service holds no memory between calls, so every call receives the full
// document and the prior conversation.
type Assistant interface {
	Ask(ctx context.Context, payload *ingest.DocumentPayload, history []Turn, question string) (string, error)
}

// ErrNotConfigured is returned by the placeholder implementations.
var ErrNotConfigured = errors.New("ai provider not configured")

// Placeholder is a stub used until a real provider is wired.
type Placeholder struct{}

func (Placeholder) Extract(ctx context.Context, payload *ingest.DocumentPayload) (*profile.CandidateProfile, error) {
	_ = ctx
	_ = payload
	return nil, ErrNotConfigured
}

func (Placeholder) Ask(ctx context.Context, payload *ingest.DocumentPayload, history []Turn, question string) (string, error) {
	_ = ctx
	_ = payload
	_ = history
	_ = question
	return "", ErrNotConfigured
}

var (
	_ Extractor = Placeholder{}
	_ Assistant = Placeholder{}
)
