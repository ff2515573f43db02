package filtering

import (
	"strings"

	"github.com/jonathan/job-aggregator/internal/types"
)

// MinScore drops postings scoring below the requested minimum match score.
type MinScore struct{}

// Name implements Filter.
func (MinScore) Name() string { return "minimum-score" }

// Apply implements Filter.
func (MinScore) Apply(postings []types.Posting, criteria *types.SearchCriteria) []types.Posting {
	kept := postings[:0:0]
	for _, p := range postings {
		if p.MatchScore >= criteria.MinimumMatchScore {
			kept = append(kept, p)
		}
	}
	return kept
}

// TechStack keeps postings mentioning at least one required technology in
// their description. Skipped entirely when the criteria name no tech stack.
type TechStack struct{}

// Name implements Filter.
func (TechStack) Name() string { return "tech-stack" }

// Apply implements Filter.
func (TechStack) Apply(postings []types.Posting, criteria *types.SearchCriteria) []types.Posting {
	if len(criteria.TechStack) == 0 {
		return postings
	}

	kept := postings[:0:0]
	for _, p := range postings {
		description := strings.ToLower(p.Description)
		for _, tech := range criteria.TechStack {
			if strings.Contains(description, strings.ToLower(tech)) {
				kept = append(kept, p)
				break
			}
		}
	}
	return kept
}

// VisaSponsorship keeps only postings known to sponsor visas. Applied only
// when the criteria require sponsorship.
type VisaSponsorship struct{}

// Name implements Filter.
func (VisaSponsorship) Name() string { return "visa-sponsorship" }

// Apply implements Filter.
func (VisaSponsorship) Apply(postings []types.Posting, criteria *types.SearchCriteria) []types.Posting {
	if !criteria.RequireVisaSponsorship {
		return postings
	}

	kept := postings[:0:0]
	for _, p := range postings {
		if p.VisaSponsorship != nil && *p.VisaSponsorship {
			kept = append(kept, p)
		}
	}
	return kept
}

// CompanySize keeps postings whose size class is in the requested set.
// Postings with no size classification are never excluded by this filter.
type CompanySize struct{}

// Name implements Filter.
func (CompanySize) Name() string { return "company-size" }

// Apply implements Filter.
func (CompanySize) Apply(postings []types.Posting, criteria *types.SearchCriteria) []types.Posting {
	if len(criteria.CompanySizeClasses) == 0 {
		return postings
	}

	wanted := make(map[string]bool, len(criteria.CompanySizeClasses))
	for _, class := range criteria.CompanySizeClasses {
		wanted[class] = true
	}

	kept := postings[:0:0]
	for _, p := range postings {
		if p.CompanySize == nil || *p.CompanySize == "" || wanted[*p.CompanySize] {
			kept = append(kept, p)
		}
	}
	return kept
}
