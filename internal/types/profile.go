// Package types defines the shared data model for the job aggregation pipeline.
package types

import "strings"

// CandidateProfile holds the parsed resume data a search request is scored
// against. It is produced by the upstream document extractor and treated as
// immutable for the duration of one request. Missing fields fall back to
// zero values: no skills, no keywords, zero years of experience.
type CandidateProfile struct {
	Skills          []string `json:"skills,omitempty"`
	Text            string   `json:"text,omitempty"`
	Location        string   `json:"location,omitempty"`
	YearsExperience int      `json:"yearsExperience,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
}

// ResumeText returns the candidate's free text, synthesizing one from
// skills and keywords when the extractor did not provide a resume body.
func (p *CandidateProfile) ResumeText() string {
	if strings.TrimSpace(p.Text) != "" {
		return p.Text
	}

	parts := make([]string, 0, len(p.Skills)+len(p.Keywords))
	parts = append(parts, p.Skills...)
	parts = append(parts, p.Keywords...)
	return strings.Join(parts, " ")
}

// NormalizedSkills returns the candidate's skills lower-cased and trimmed,
// with empty entries dropped.
func (p *CandidateProfile) NormalizedSkills() []string {
	skills := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
