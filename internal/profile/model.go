package profile

// CandidateProfile is the structured extraction result for one resume.
// It is produced exactly once per uploaded document and never mutated;
// a re-upload replaces it wholesale.
type CandidateProfile struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Skills       []Skill      `json:"skills"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	OverallScore float64      `json:"overallScore"`
	Strengths    []string     `json:"strengths"`
	Weaknesses   []string     `json:"weaknesses"`
}

// PersonalInfo holds the candidate's contact details and summary.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Linkedin string `json:"linkedin,omitempty"`
	Summary  string `json:"summary"`
}

// Skill is a single named skill with an estimated 0-100 proficiency.
type Skill struct {
	Name     string  `json:"name"`
	Level    float64 `json:"level"`
	Category string  `json:"category"`
}

// Experience is one work history entry.
type Experience struct {
	Role        string   `json:"role"`
	Company     string   `json:"company"`
	Duration    string   `json:"duration"`
	Description []string `json:"description"`
}

// Education is one education entry.
type Education struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Year   string `json:"year"`
}
