package ingest

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestValidateAndIngestRejectsUnsupportedType(t *testing.T) {
	_, err := ValidateAndIngest("resume.exe", "application/octet-stream", 1024, strings.NewReader("MZ"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestValidateAndIngestRejectsOversizedDeclaredSize(t *testing.T) {
	_, err := ValidateAndIngest("resume.pdf", "application/pdf", MaxUploadBytes+1, strings.NewReader("%PDF"))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestValidateAndIngestRejectsOversizedStream(t *testing.T) {
	// Declared size lies; the actual stream is over the cap.
	big := bytes.Repeat([]byte("a"), MaxUploadBytes+1)
	_, err := ValidateAndIngest("resume.txt", "text/plain", 1024, bytes.NewReader(big))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestValidateAndIngestChecksTypeBeforeSize(t *testing.T) {
	_, err := ValidateAndIngest("resume.exe", "application/octet-stream", MaxUploadBytes+1, strings.NewReader("MZ"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected type check to run first, got %v", err)
	}
}

func TestValidateAndIngestPreservesBytes(t *testing.T) {
	content := "Jane Doe\nSenior Engineer with ten years of Go experience."
	payload, err := ValidateAndIngest("resume.txt", "text/plain; charset=utf-8", int64(len(content)), strings.NewReader(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.SizeBytes != int64(len(content)) {
		t.Fatalf("expected size %d, got %d", len(content), payload.SizeBytes)
	}
	if string(payload.Bytes) != content {
		t.Fatalf("payload bytes differ from source")
	}
	if payload.MediaType != "text/plain" {
		t.Fatalf("expected normalized media type text/plain, got %q", payload.MediaType)
	}
	if payload.Text == "" {
		t.Fatalf("expected text excerpt for plain text upload")
	}
}

func TestValidateAndIngestSurvivesPreviewFailure(t *testing.T) {
	// Garbage that declares itself PDF: ingestion succeeds, preview is empty.
	payload, err := ValidateAndIngest("resume.pdf", "application/pdf", 16, strings.NewReader("not really a pdf"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Text != "" {
		t.Fatalf("expected empty excerpt for unparseable pdf, got %q", payload.Text)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestValidateAndIngestWrapsReadFailures(t *testing.T) {
	_, err := ValidateAndIngest("resume.txt", "text/plain", 10, failingReader{})
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
}
