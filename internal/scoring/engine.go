// Package scoring computes fit scores between a candidate profile and job
// postings using a five-factor weighted model.
package scoring

import (
	"regexp"
	"strings"

	"github.com/jonathan/job-aggregator/internal/types"
)

// Fixed weights for the five scoring factors. They sum to exactly 1.0.
const (
	SkillsWeight        = 0.40
	ArchitectureWeight  = 0.20
	CollaborationWeight = 0.15
	ExperienceWeight    = 0.15
	LocationWeight      = 0.10
)

// Engine scores postings against a candidate profile. It is safe for
// concurrent use; the vocabulary is never mutated after construction.
type Engine struct {
	vocab   Vocabulary
	scaleRe []*regexp.Regexp
}

// New creates an Engine with the given vocabulary.
func New(vocab Vocabulary) *Engine {
	scaleRe := make([]*regexp.Regexp, 0, len(vocab.ScalePatterns))
	for _, pattern := range vocab.ScalePatterns {
		scaleRe = append(scaleRe, regexp.MustCompile(pattern))
	}
	return &Engine{
		vocab:   vocab,
		scaleRe: scaleRe,
	}
}

// Score computes the full breakdown for one posting. All sub-scores and the
// weighted total are within [0, 1].
func (e *Engine) Score(profile *types.CandidateProfile, posting *types.Posting) types.ScoreBreakdown {
	resumeText := strings.ToLower(profile.ResumeText())
	jobText := strings.ToLower(posting.SearchText())

	skills := e.technicalSkillsScore(profile.NormalizedSkills(), resumeText, jobText)
	architecture := e.architectureScore(resumeText, jobText)
	collaboration := e.collaborationScore(resumeText, jobText)
	experience := e.experienceScore(profile.YearsExperience, jobText)
	location := e.locationScore(profile.Location, posting.Location)

	total := clamp01(skills*SkillsWeight +
		architecture*ArchitectureWeight +
		collaboration*CollaborationWeight +
		experience*ExperienceWeight +
		location*LocationWeight)

	return types.ScoreBreakdown{
		TotalScore:          total,
		SkillsScore:         skills,
		SkillsWeight:        SkillsWeight,
		ArchitectureScore:   architecture,
		ArchitectureWeight:  ArchitectureWeight,
		CollaborationScore:  collaboration,
		CollaborationWeight: CollaborationWeight,
		ExperienceScore:     experience,
		ExperienceWeight:    ExperienceWeight,
		LocationScore:       location,
		LocationWeight:      LocationWeight,
	}
}

func clamp01(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
