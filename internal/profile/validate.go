package profile

import "fmt"

// Score bands used by the dashboard to color the overall score.
const (
	BandGreen = "green"
	BandAmber = "amber"
	BandRed   = "red"
)

// Validate type-checks a decoded profile against the schema contract.
// A profile that fails validation is rejected as a whole; partial results
// are never kept.
func (p *CandidateProfile) Validate() error {
	if p.PersonalInfo.Name == "" {
		return fmt.Errorf("personalInfo.name is required")
	}
	if p.PersonalInfo.Email == "" {
		return fmt.Errorf("personalInfo.email is required")
	}
	if p.PersonalInfo.Summary == "" {
		return fmt.Errorf("personalInfo.summary is required")
	}
	if p.OverallScore < 0 || p.OverallScore > 100 {
		return fmt.Errorf("overallScore %v out of range [0,100]", p.OverallScore)
	}
	for i, s := range p.Skills {
		if s.Level < 0 || s.Level > 100 {
			return fmt.Errorf("skills[%d].level %v out of range [0,100]", i, s.Level)
		}
	}
	return nil
}

// ScoreBand maps an overall score to its dashboard color band.
func ScoreBand(score float64) string {
	switch {
	case score >= 80:
		return BandGreen
	case score >= 60:
		return BandAmber
	default:
		return BandRed
	}
}
