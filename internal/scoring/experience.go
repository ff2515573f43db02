package scoring

import (
	"regexp"
	"strconv"
)

// Patterns extracting a required-years figure from posting text.
var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
	regexp.MustCompile(`(\d+)-(\d+)\s*years?\s+(?:of\s+)?experience`),
	regexp.MustCompile(`(\d+)\s*to\s*(\d+)\s*years`),
}

// experienceScore compares candidate years against the posting's explicit
// or inferred requirement. Meeting the bar scores 1.0 with a graduated
// overqualification penalty; falling short scores by gap size.
func (e *Engine) experienceScore(candidateYears int, jobText string) float64 {
	if candidateYears == 0 {
		candidateYears = 3 // unspecified experience treated as mid-level
	}

	requiredYears := -1
	for _, re := range experiencePatterns {
		if m := re.FindStringSubmatch(jobText); m != nil {
			if years, err := strconv.Atoi(m[1]); err == nil {
				requiredYears = years
				break
			}
		}
	}

	if requiredYears < 0 {
		requiredYears = inferRequiredYears(jobText)
	}

	if candidateYears >= requiredYears {
		overage := candidateYears - requiredYears
		switch {
		case overage > 7:
			return 0.75 // significantly overqualified
		case overage > 4:
			return 0.85 // somewhat overqualified
		default:
			return 1.0
		}
	}

	gap := requiredYears - candidateYears
	switch {
	case gap <= 1:
		return 0.85
	case gap <= 2:
		return 0.65
	case gap <= 3:
		return 0.45
	default:
		return 0.25
	}
}

// inferRequiredYears derives a requirement from seniority words when the
// posting gives no explicit figure.
func inferRequiredYears(jobText string) int {
	switch {
	case contains(jobText, "principal") || contains(jobText, "staff"):
		return 8
	case contains(jobText, "senior") || contains(jobText, "sr."):
		return 5
	case contains(jobText, "lead"):
		return 6
	case contains(jobText, "junior") || contains(jobText, "entry"):
		return 0
	default:
		return 3 // mid-level
	}
}
