package ingest

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"resumeiq-backend/internal/extract"
	"resumeiq-backend/internal/shared/telemetry"
	"resumeiq-backend/internal/shared/util"
)

// MaxUploadBytes is the hard cap on accepted resume files.
const MaxUploadBytes = 10 << 20 // 10 MiB

const textExcerptLimit = 2000

var (
	// ErrUnsupportedType rejects media types outside {PDF, plain text}.
	ErrUnsupportedType = errors.New("unsupported media type")
	// ErrFileTooLarge rejects files over MaxUploadBytes.
	ErrFileTooLarge = errors.New("file too large")
	// ErrUnreadable covers I/O failures while reading the file.
	ErrUnreadable = errors.New("file unreadable")
)

var allowedMediaTypes = map[string]struct{}{
	"application/pdf": {},
	"text/plain":      {},
}

// DocumentPayload is the transport-ready form of an uploaded resume.
// It is immutable once constructed and shared read-only between the
// extraction call and every conversational query.
type DocumentPayload struct {
	FileName  string
	MediaType string
	SizeBytes int64
	Bytes     []byte
	// Text is a plain-text excerpt of the document for display purposes.
	// It is best-effort; the remote service always receives the raw bytes.
	Text string
}

// ValidateAndIngest validates the declared media type and size, then reads
// the file fully into memory. Checks run in order: type, then size, then
// read. Validation failures are terminal for the attempt; the caller owns
// any state transition.
func ValidateAndIngest(fileName, mediaType string, declaredSize int64, r io.Reader) (*DocumentPayload, error) {
	normalized := normalizeMediaType(mediaType)
	if _, ok := allowedMediaTypes[normalized]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, normalized)
	}
	if declaredSize > MaxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, declaredSize, MaxUploadBytes)
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if int64(len(data)) > MaxUploadBytes {
		return nil, fmt.Errorf("%w: payload exceeds %d bytes", ErrFileTooLarge, MaxUploadBytes)
	}

	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		sanitized = "resume"
	}

	text, err := extract.Text(data, normalized)
	if err != nil {
		// Preview extraction is supplemental; ingestion still succeeds.
		telemetry.Info("ingest.text_extraction_skipped", map[string]any{
			"file_name":  sanitized,
			"media_type": normalized,
			"err":        err.Error(),
		})
		text = ""
	}

	return &DocumentPayload{
		FileName:  sanitized,
		MediaType: normalized,
		SizeBytes: int64(len(data)),
		Bytes:     data,
		Text:      extract.Excerpt(text, textExcerptLimit),
	}, nil
}

func normalizeMediaType(mediaType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mediaType, ";")[0]))
}
