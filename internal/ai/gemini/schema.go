package gemini

import "google.golang.org/genai"

// profileSchema is the strict output contract sent with every extraction
// request. It forces the model to return machine-parseable JSON in the
// CandidateProfile shape instead of free text.
func profileSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"personalInfo": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":     {Type: genai.TypeString},
					"email":    {Type: genai.TypeString},
					"phone":    {Type: genai.TypeString},
					"location": {Type: genai.TypeString},
					"linkedin": {Type: genai.TypeString},
					"summary":  {Type: genai.TypeString},
				},
				Required: []string{"name", "email", "summary"},
			},
			"skills": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":     {Type: genai.TypeString},
						"level":    {Type: genai.TypeNumber},
						"category": {Type: genai.TypeString},
					},
				},
			},
			"experience": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"role":     {Type: genai.TypeString},
						"company":  {Type: genai.TypeString},
						"duration": {Type: genai.TypeString},
						"description": {
							Type:  genai.TypeArray,
							Items: &genai.Schema{Type: genai.TypeString},
						},
					},
				},
			},
			"education": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"degree": {Type: genai.TypeString},
						"school": {Type: genai.TypeString},
						"year":   {Type: genai.TypeString},
					},
				},
			},
			"overallScore": {Type: genai.TypeNumber},
			"strengths": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"weaknesses": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
	}
}
