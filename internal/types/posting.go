package types

import (
	"strings"
	"time"
)

// Posting is one job listing aggregated from a source, before or after
// scoring. MatchScore is 0 until the score engine has run.
type Posting struct {
	Title            string          `json:"title"`
	Company          string          `json:"company"`
	Location         string          `json:"location"`
	Description      string          `json:"description"`
	URL              string          `json:"url"`
	Source           string          `json:"source"`
	PostedDate       time.Time       `json:"postedDate"`
	IsRemote         *bool           `json:"isRemote"`
	OffersRelocation *bool           `json:"offersRelocation"`
	VisaSponsorship  *bool           `json:"visaSponsorship"`
	TechStack        []string        `json:"techStack"`
	SalaryRange      *string         `json:"salaryRange"`
	CompanySize      *string         `json:"companySize"`
	MatchScore       float64         `json:"matchScore"`
	Breakdown        *ScoreBreakdown `json:"matchBreakdown,omitempty"`
}

// TitleCompanyKey returns the lower-cased (title, company) identity pair
// used for deduplication when a posting has no URL.
func (p *Posting) TitleCompanyKey() string {
	return strings.ToLower(p.Title) + "|" + strings.ToLower(p.Company)
}

// SearchText returns the combined title and description text that scoring
// vocabularies are matched against.
func (p *Posting) SearchText() string {
	return p.Title + " " + p.Description
}

// ScoreBreakdown carries the five weighted sub-scores behind a match score,
// kept alongside the scalar so callers can explain a ranking.
type ScoreBreakdown struct {
	TotalScore          float64 `json:"totalScore"`
	SkillsScore         float64 `json:"skillsScore"`
	SkillsWeight        float64 `json:"skillsWeight"`
	ArchitectureScore   float64 `json:"architectureScore"`
	ArchitectureWeight  float64 `json:"architectureWeight"`
	CollaborationScore  float64 `json:"collaborationScore"`
	CollaborationWeight float64 `json:"collaborationWeight"`
	ExperienceScore     float64 `json:"experienceScore"`
	ExperienceWeight    float64 `json:"experienceWeight"`
	LocationScore       float64 `json:"locationScore"`
	LocationWeight      float64 `json:"locationWeight"`
}

// SearchResult is the aggregate outcome of one search request: the ranked,
// filtered postings plus one error entry per failed source. Errors never
// make the result invalid; an empty Jobs list with errors is a completed
// response.
type SearchResult struct {
	Jobs   []Posting `json:"jobs"`
	Errors []string  `json:"errors"`
}
