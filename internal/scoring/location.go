package scoring

import (
	"regexp"
	"strings"
)

// regionCodeRe matches a standalone two-letter region/state code.
var regionCodeRe = regexp.MustCompile(`\b([A-Z]{2})\b`)

func contains(haystack, needle string) bool {
	return strings.Contains(haystack, needle)
}

// locationScore compares candidate and posting locations. Remote postings
// match universally; a posting with no location is neutral-positive.
func (e *Engine) locationScore(candidateLocation, postingLocation string) float64 {
	if postingLocation == "" {
		return 0.7
	}

	postingLower := strings.ToLower(postingLocation)
	if strings.Contains(postingLower, "remote") {
		return 1.0
	}

	if candidateLocation == "" {
		return 0.5 // cannot determine a match
	}

	candidateLower := strings.ToLower(candidateLocation)
	if strings.Contains(postingLower, candidateLower) || strings.Contains(candidateLower, postingLower) {
		return 1.0
	}

	for _, country := range e.vocab.Countries {
		if strings.Contains(candidateLower, country) && strings.Contains(postingLower, country) {
			return 0.8
		}
	}

	candidateCode := regionCodeRe.FindStringSubmatch(candidateLocation)
	postingCode := regionCodeRe.FindStringSubmatch(postingLocation)
	if candidateCode != nil && postingCode != nil && candidateCode[1] == postingCode[1] {
		return 0.85
	}

	return 0.3
}
