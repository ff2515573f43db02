package scoring

import (
	"strings"
	"unicode/utf8"
)

// fuzzyThreshold is the minimum token similarity for a skill to count as
// present in the posting text without a verbatim match.
const fuzzyThreshold = 0.85

// scaleBonusStep and scaleBonusCap bound the quantified-impact bonus: each
// matching scale pattern adds one step, capped.
const (
	scaleBonusStep = 0.05
	scaleBonusCap  = 0.15
)

// technicalSkillsScore blends forward coverage (candidate skills found in
// the posting), reverse coverage (posting requirements found in the
// candidate), and a capped bonus for quantified impact language.
func (e *Engine) technicalSkillsScore(candidateSkills []string, resumeText, jobText string) float64 {
	if len(candidateSkills) == 0 {
		return 0.3 // nothing parsed from the resume
	}

	skillSet := make(map[string]bool, len(candidateSkills))
	for _, s := range candidateSkills {
		skillSet[e.normalizeSkill(s)] = true
	}

	// Forward: candidate skills present in the posting, verbatim or fuzzy.
	jobWords := strings.Fields(jobText)
	forwardMatches := 0
	for skill := range skillSet {
		if strings.Contains(jobText, skill) {
			forwardMatches++
			continue
		}
		for _, word := range jobWords {
			if len(word) > 3 && similarity(skill, word) > fuzzyThreshold {
				forwardMatches++
				break
			}
		}
	}
	forwardRatio := float64(forwardMatches) / float64(len(skillSet))

	// Reverse: posting-required technologies present in the candidate, with
	// partial credit for free-text-only mentions.
	requirements := e.extractJobRequirements(jobText)
	reverseMatches := 0.0
	for _, req := range requirements {
		if skillSet[e.normalizeSkill(req)] {
			reverseMatches += 1.0
		} else if strings.Contains(resumeText, req) {
			reverseMatches += 0.7
		}
	}
	reverseRatio := 0.5 // neutral when the posting names no recognizable tech
	if len(requirements) > 0 {
		reverseRatio = reverseMatches / float64(len(requirements))
	}

	// Depth bonus for quantified scale/impact language in the resume.
	depthBonus := 0.0
	for _, re := range e.scaleRe {
		if re.MatchString(resumeText) {
			depthBonus += scaleBonusStep
		}
	}
	if depthBonus > scaleBonusCap {
		depthBonus = scaleBonusCap
	}

	return clamp01(forwardRatio*0.5 + reverseRatio*0.4 + depthBonus)
}

// extractJobRequirements returns the vocabulary tech terms mentioned in the
// posting text.
func (e *Engine) extractJobRequirements(jobText string) []string {
	var requirements []string
	for _, term := range e.vocab.TechTerms {
		if strings.Contains(jobText, term) {
			requirements = append(requirements, term)
		}
	}
	return requirements
}

// normalizeSkill maps a skill variant to its canonical lower-case name.
func (e *Engine) normalizeSkill(skill string) string {
	skill = strings.ToLower(strings.TrimSpace(skill))
	for canonical, synonyms := range e.vocab.SkillSynonyms {
		if skill == canonical {
			return canonical
		}
		for _, syn := range synonyms {
			if skill == syn {
				return canonical
			}
		}
	}
	return skill
}

// similarity returns a normalized edit-distance ratio in [0, 1]. The
// denominator counts runes, matching the rune-based edit distance.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(a, b))/float64(longest)
}

// levenshtein computes the edit distance between two strings using two
// rolling rows.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
