package scoring

import "strings"

// keywordCoverage counts vocabulary keywords in the candidate text, in the
// posting text, and in both.
func keywordCoverage(keywords []string, resumeText, jobText string) (resumeCount, jobCount, matches int) {
	for _, keyword := range keywords {
		inResume := strings.Contains(resumeText, keyword)
		inJob := strings.Contains(jobText, keyword)

		if inResume {
			resumeCount++
		}
		if inJob {
			jobCount++
		}
		if inResume && inJob {
			matches++
		}
	}
	return resumeCount, jobCount, matches
}

// architectureScore measures overlap on design, testing, and code-quality
// vocabulary. When the posting is silent on architecture the candidate's own
// density of such terms yields a neutral-to-good fallback.
func (e *Engine) architectureScore(resumeText, jobText string) float64 {
	resumeCount, jobCount, matches := keywordCoverage(e.vocab.ArchitectureKeywords, resumeText, jobText)

	var coverage float64
	if jobCount > 0 {
		coverage = float64(matches) / float64(jobCount)
	} else {
		density := float64(resumeCount) / 5.0
		if density > 1.0 {
			density = 1.0
		}
		coverage = density*0.7 + 0.3
	}

	bonus := float64(resumeCount) / 8.0
	if bonus > 0.2 {
		bonus = 0.2
	}

	return clamp01(coverage + bonus)
}

// collaborationScore measures overlap on collaboration and leadership
// vocabulary, with a 0.6 neutral fallback when the posting is silent on it.
func (e *Engine) collaborationScore(resumeText, jobText string) float64 {
	resumeCount, jobCount, matches := keywordCoverage(e.vocab.CollaborationKeywords, resumeText, jobText)

	coverage := 0.6
	if jobCount > 0 {
		coverage = float64(matches) / float64(jobCount)
	}

	bonus := float64(resumeCount) / 6.0
	if bonus > 0.15 {
		bonus = 0.15
	}

	return clamp01(coverage + bonus)
}
