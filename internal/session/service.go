package session

import (
	"context"
	"errors"
	"io"

	"resumeiq-backend/internal/ai"
	"resumeiq-backend/internal/ingest"
	"resumeiq-backend/internal/shared/metrics"
	"resumeiq-backend/internal/shared/telemetry"
)

// User-visible failure strings. Extraction failures share one banner; chat
// failures become an inline assistant message so the transcript survives.
const (
	extractionFailedMessage = "Failed to parse the resume. Please ensure the file is readable and try again."
	chatErrorReply          = "Sorry, I encountered an error answering that question. Please try again."
)

// Service orchestrates ingestion, extraction, and chat around the single
// session. The AI provider sits behind the Extractor/Assistant capability
// interfaces, so swapping providers never touches this code.
type Service struct {
	Extractor ai.Extractor
	Assistant ai.Assistant
	Session   *Session
}

// NewService wires a service around a fresh session.
func NewService(extractor ai.Extractor, assistant ai.Assistant) *Service {
	return &Service{
		Extractor: extractor,
		Assistant: assistant,
		Session:   New(),
	}
}

// Upload runs the ingestion+extraction pair: validate the file, claim the
// Loading phase, extract a profile, and land in Ready or Error. Validation
// failures leave the session where it was and never reach the remote
// service.
func (s *Service) Upload(ctx context.Context, fileName, mediaType string, declaredSize int64, r io.Reader) (Snapshot, error) {
	prev, prevMsg, err := s.Session.BeginUpload()
	if err != nil {
		return s.Session.Snapshot(), err
	}

	payload, err := ingest.ValidateAndIngest(fileName, mediaType, declaredSize, r)
	if err != nil {
		if errors.Is(err, ingest.ErrUnsupportedType) || errors.Is(err, ingest.ErrFileTooLarge) {
			s.Session.RollbackUpload(prev, prevMsg)
			return s.Session.Snapshot(), err
		}
		s.Session.FailUpload(extractionFailedMessage)
		return s.Session.Snapshot(), err
	}

	telemetry.Info("session.extract.start", map[string]any{
		"file_name":  payload.FileName,
		"media_type": payload.MediaType,
		"size_bytes": payload.SizeBytes,
	})
	metrics.IncExtractionStarted()
	started := metrics.NowMillis()

	prof, err := s.Extractor.Extract(ctx, payload)
	if err != nil {
		metrics.IncExtractionFailed()
		telemetry.Error("session.extract.failed", map[string]any{
			"file_name": payload.FileName,
			"err":       err.Error(),
		})
		s.Session.FailUpload(extractionFailedMessage)
		return s.Session.Snapshot(), err
	}

	s.Session.CompleteUpload(payload, prof)
	metrics.IncExtractionCompleted()
	metrics.ObserveExtractionDurationMs(metrics.NowMillis() - started)
	telemetry.Info("session.extract.complete", map[string]any{
		"file_name":     payload.FileName,
		"overall_score": prof.OverallScore,
	})
	return s.Session.Snapshot(), nil
}

// Ask sends one question grounded in the current document. The user's
// message is appended before the call; the assistant's reply, or the error
// placeholder, lands afterwards. Only one question may be in flight. A
// reply that arrives after the session was reset or its document replaced
// is dropped and reported as ErrSuperseded.
func (s *Service) Ask(ctx context.Context, question string) (Message, error) {
	payload, history, gen, err := s.Session.BeginAsk(question)
	if err != nil {
		return Message{}, err
	}
	metrics.IncChatQuestion()

	answer, err := s.Assistant.Ask(ctx, payload, history, question)
	if err != nil {
		metrics.IncChatFailed()
		telemetry.Error("session.chat.failed", map[string]any{"err": err.Error()})
		answer = chatErrorReply
	}

	msg, ok := s.Session.FinishAsk(gen, answer)
	if !ok {
		telemetry.Info("session.chat.superseded", map[string]any{"question": question})
		return Message{}, ErrSuperseded
	}
	return msg, nil
}

// Reset returns the session to Empty, discarding document, profile, and
// conversation atomically.
func (s *Service) Reset() {
	s.Session.Reset()
}

// Snapshot exposes the current session view.
func (s *Service) Snapshot() Snapshot {
	return s.Session.Snapshot()
}
