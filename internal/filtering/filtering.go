// Package filtering applies the post-scoring acceptance criteria as a
// sequence of independent filter steps.
package filtering

import (
	"go.uber.org/zap"

	"github.com/jonathan/job-aggregator/internal/types"
)

// Filter represents a single filtering step applied to scored postings.
// Each step drops only its own postings; the chain never terminates early.
type Filter interface {
	Name() string
	Apply(postings []types.Posting, criteria *types.SearchCriteria) []types.Posting
}

// DefaultChain returns the production filter order: minimum score, tech
// stack, visa sponsorship, company size.
func DefaultChain() []Filter {
	return []Filter{
		MinScore{},
		TechStack{},
		VisaSponsorship{},
		CompanySize{},
	}
}

// Run executes the supplied filters sequentially, logging the per-step drop
// counts.
func Run(postings []types.Posting, criteria *types.SearchCriteria, filters []Filter, logger *zap.Logger) []types.Posting {
	for _, f := range filters {
		initial := len(postings)
		postings = f.Apply(postings, criteria)

		if logger != nil {
			logger.Debug("filter step",
				zap.String("name", f.Name()),
				zap.Int("initial", initial),
				zap.Int("dropped", initial-len(postings)),
				zap.Int("left", len(postings)),
			)
		}
	}
	return postings
}
