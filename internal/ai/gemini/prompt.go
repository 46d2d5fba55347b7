package gemini

import (
	_ "embed"
	"strings"
)

//go:embed prompt.md
var extractionPrompt string

// The chat wire format is rebuilt from scratch on every turn: the document
// goes first, then a fixed priming exchange, then the prior conversation,
// then the new question. The system instruction keeps answers grounded in
// the document.
const chatSystemInstruction = `You are a helpful HR Assistant.
You have access to a candidate's resume.
Answer the user's questions specifically based on the provided resume document.
If the information is not in the resume, explicitly say so.
Be professional, concise, and helpful.`

const (
	contextIntro = "Here is the resume context for our conversation."
	contextAck   = "Understood. I have analyzed the resume. What would you like to know?"
)

// Fallback returned when the remote call succeeds but yields no text.
const emptyResponseFallback = "I couldn't generate a response."

func extractionInstruction() string {
	if strings.TrimSpace(extractionPrompt) == "" {
		return "Extract structured candidate data from the resume. Return ONLY valid JSON matching the specified schema."
	}
	return extractionPrompt
}
