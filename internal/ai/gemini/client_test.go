package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/genai"

	"resumeiq-backend/internal/ai"
	"resumeiq-backend/internal/ingest"
)

type generateCall struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

type fakeModels struct {
	calls []generateCall
	resp  *genai.GenerateContentResponse
	err   error
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls = append(f.calls, generateCall{model: model, contents: contents, config: config})
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func testPayload() *ingest.DocumentPayload {
	return &ingest.DocumentPayload{
		FileName:  "resume.pdf",
		MediaType: "application/pdf",
		SizeBytes: 4,
		Bytes:     []byte("%PDF"),
	}
}

const profileJSON = `{
	"personalInfo": {"name": "Jane Doe", "email": "jane@example.com", "phone": "555-0100", "location": "Berlin", "summary": "Senior backend engineer."},
	"skills": [{"name": "Go", "level": 90, "category": "Backend"}],
	"experience": [{"role": "Engineer", "company": "Acme", "duration": "2019-2024", "description": ["Built services"]}],
	"education": [{"degree": "BSc", "school": "TU Berlin", "year": "2018"}],
	"overallScore": 82,
	"strengths": ["Systems design"],
	"weaknesses": ["Little frontend exposure"]
}`

func TestExtractDecodesProfile(t *testing.T) {
	models := &fakeModels{resp: textResponse(profileJSON)}
	c := &Client{models: models, model: "gemini-2.5-flash"}

	prof, err := c.Extract(context.Background(), testPayload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prof.PersonalInfo.Name != "Jane Doe" {
		t.Fatalf("unexpected name: %q", prof.PersonalInfo.Name)
	}
	if prof.OverallScore != 82 {
		t.Fatalf("unexpected score: %v", prof.OverallScore)
	}

	if len(models.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(models.calls))
	}
	call := models.calls[0]
	if call.config == nil || call.config.ResponseMIMEType != "application/json" {
		t.Fatalf("expected json response mime type constraint")
	}
	if call.config.ResponseSchema == nil {
		t.Fatalf("expected response schema constraint")
	}
	if len(call.contents) != 1 || len(call.contents[0].Parts) != 2 {
		t.Fatalf("expected one content with document and instruction parts")
	}
	blob := call.contents[0].Parts[0].InlineData
	if blob == nil || blob.MIMEType != "application/pdf" || string(blob.Data) != "%PDF" {
		t.Fatalf("expected document bytes as inline data, got %+v", blob)
	}
	if !strings.Contains(call.contents[0].Parts[1].Text, "Resume Parser") {
		t.Fatalf("expected extraction instruction text")
	}
}

func TestExtractToleratesCodeFences(t *testing.T) {
	models := &fakeModels{resp: textResponse("```json\n" + profileJSON + "\n```")}
	c := &Client{models: models, model: "gemini-2.5-flash"}

	prof, err := c.Extract(context.Background(), testPayload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prof.PersonalInfo.Email != "jane@example.com" {
		t.Fatalf("unexpected email: %q", prof.PersonalInfo.Email)
	}
}

func TestExtractRejectsUnparseableResponse(t *testing.T) {
	models := &fakeModels{resp: textResponse("I am not JSON")}
	c := &Client{models: models, model: "gemini-2.5-flash"}

	if _, err := c.Extract(context.Background(), testPayload()); err == nil {
		t.Fatalf("expected error for unparseable response")
	}
}

func TestExtractRejectsSchemaViolations(t *testing.T) {
	bad := strings.Replace(profileJSON, `"overallScore": 82`, `"overallScore": 140`, 1)
	models := &fakeModels{resp: textResponse(bad)}
	c := &Client{models: models, model: "gemini-2.5-flash"}

	if _, err := c.Extract(context.Background(), testPayload()); err == nil {
		t.Fatalf("expected error for out-of-range score")
	}
}

func TestExtractWrapsRemoteErrors(t *testing.T) {
	models := &fakeModels{err: errors.New("boom")}
	c := &Client{models: models, model: "gemini-2.5-flash"}

	if _, err := c.Extract(context.Background(), testPayload()); err == nil {
		t.Fatalf("expected error from remote failure")
	}
}

func TestAskRebuildsFullContext(t *testing.T) {
	models := &fakeModels{resp: textResponse("About ten years in total.")}
	c := &Client{models: models, model: "gemini-2.5-flash"}

	history := []ai.Turn{
		{Role: ai.RoleUser, Text: "What languages?"},
		{Role: ai.RoleAssistant, Text: "Mostly Go."},
	}
	answer, err := c.Ask(context.Background(), testPayload(), history, "What is their total experience?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "About ten years in total." {
		t.Fatalf("unexpected answer: %q", answer)
	}

	call := models.calls[0]
	if call.config == nil || call.config.SystemInstruction == nil {
		t.Fatalf("expected system instruction to be set")
	}

	// Document first, priming ack second, history, then the question.
	if len(call.contents) != 5 {
		t.Fatalf("expected 5 contents, got %d", len(call.contents))
	}
	if call.contents[0].Parts[0].InlineData == nil {
		t.Fatalf("expected document as first turn")
	}
	if call.contents[1].Role != genai.RoleModel {
		t.Fatalf("expected priming ack as model turn, got %q", call.contents[1].Role)
	}
	if call.contents[2].Parts[0].Text != "What languages?" || call.contents[2].Role != genai.RoleUser {
		t.Fatalf("unexpected history turn: %+v", call.contents[2])
	}
	if call.contents[3].Parts[0].Text != "Mostly Go." || call.contents[3].Role != genai.RoleModel {
		t.Fatalf("unexpected history turn: %+v", call.contents[3])
	}
	if call.contents[4].Parts[0].Text != "What is their total experience?" {
		t.Fatalf("unexpected question turn: %+v", call.contents[4])
	}
}

func TestAskFallsBackOnEmptyResponse(t *testing.T) {
	models := &fakeModels{resp: &genai.GenerateContentResponse{}}
	c := &Client{models: models, model: "gemini-2.5-flash"}

	answer, err := c.Ask(context.Background(), testPayload(), nil, "Anything?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != emptyResponseFallback {
		t.Fatalf("expected fallback answer, got %q", answer)
	}
}

func TestAskPropagatesRemoteErrors(t *testing.T) {
	models := &fakeModels{err: errors.New("boom")}
	c := &Client{models: models, model: "gemini-2.5-flash"}

	if _, err := c.Ask(context.Background(), testPayload(), nil, "Anything?"); err == nil {
		t.Fatalf("expected error from remote failure")
	}
}
