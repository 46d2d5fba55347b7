package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"resumeiq-backend/internal/ai"
	"resumeiq-backend/internal/ingest"
	"resumeiq-backend/internal/profile"
)

const defaultModel = "gemini-2.5-flash"

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client implements ai.Extractor and ai.Assistant against the Gemini API.
type Client struct {
	models contentGenerator
	model  string
}

// NewClient creates a Client configured for the Gemini API backend.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Client{models: client.Models, model: model}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}

// Extract sends the document with the fixed extraction instruction and a
// strict response schema, then decodes and type-checks the result. Any
// decoding or validation failure rejects the whole response; no partial
// profile is returned.
func (c *Client) Extract(ctx context.Context, payload *ingest.DocumentPayload) (*profile.CandidateProfile, error) {
	if c == nil || c.models == nil {
		return nil, errors.New("gemini client is not initialized")
	}
	if payload == nil || len(payload.Bytes) == 0 {
		return nil, errors.New("document payload must not be empty")
	}

	contents := extractionContents(payload)
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   profileSchema(),
		Temperature:      genai.Ptr[float32](0),
	}

	resp, err := c.models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini extract: %w", err)
	}

	text := firstText(resp)
	if text == "" {
		return nil, errors.New("gemini extract: empty response")
	}

	return decodeProfile(text)
}

// Ask rebuilds the full grounding context and sends the new question. The
// remote service is stateless between calls, so the document travels on
// every turn; the priming exchange and system instruction keep answers
// grounded in it.
func (c *Client) Ask(ctx context.Context, payload *ingest.DocumentPayload, history []ai.Turn, question string) (string, error) {
	if c == nil || c.models == nil {
		return "", errors.New("gemini client is not initialized")
	}
	if payload == nil || len(payload.Bytes) == 0 {
		return "", errors.New("document payload must not be empty")
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return "", errors.New("question must not be empty")
	}

	contents := chatContents(payload, history, question)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: chatSystemInstruction}},
		},
	}

	resp, err := c.models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini chat: %w", err)
	}

	text := firstText(resp)
	if text == "" {
		return emptyResponseFallback, nil
	}
	return text, nil
}

func extractionContents(payload *ingest.DocumentPayload) []*genai.Content {
	return []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: payload.MediaType, Data: payload.Bytes}},
			{Text: extractionInstruction()},
		},
	}}
}

func chatContents(payload *ingest.DocumentPayload, history []ai.Turn, question string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+3)
	contents = append(contents, &genai.Content{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: payload.MediaType, Data: payload.Bytes}},
			{Text: contextIntro},
		},
	})
	contents = append(contents, &genai.Content{
		Role:  genai.RoleModel,
		Parts: []*genai.Part{{Text: contextAck}},
	})
	for _, turn := range history {
		contents = append(contents, &genai.Content{
			Role:  wireRole(turn.Role),
			Parts: []*genai.Part{{Text: turn.Text}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: question}},
	})
	return contents
}

func wireRole(role ai.Role) string {
	if role == ai.RoleAssistant {
		return genai.RoleModel
	}
	return genai.RoleUser
}

func decodeProfile(raw string) (*profile.CandidateProfile, error) {
	cleaned := stripCodeFences(raw)

	var p profile.CandidateProfile
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("profile schema: %w", err)
	}
	return &p, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}
	return strings.TrimSpace(builder.String())
}

func stripCodeFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

var (
	_ ai.Extractor = (*Client)(nil)
	_ ai.Assistant = (*Client)(nil)
)
