package filtering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/jonathan/job-aggregator/internal/types"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestMinScore(t *testing.T) {
	criteria := &types.SearchCriteria{MinimumMatchScore: 0.5}
	postings := []types.Posting{
		{Title: "keep", MatchScore: 0.5},
		{Title: "drop", MatchScore: 0.49},
		{Title: "keep too", MatchScore: 0.9},
	}

	kept := MinScore{}.Apply(postings, criteria)
	assert.Len(t, kept, 2)
	assert.Equal(t, "keep", kept[0].Title)
	assert.Equal(t, "keep too", kept[1].Title)
}

func TestTechStack(t *testing.T) {
	t.Run("skipped when criteria name no tech", func(t *testing.T) {
		postings := []types.Posting{{Description: "anything"}}
		kept := TechStack{}.Apply(postings, &types.SearchCriteria{})
		assert.Len(t, kept, 1)
	})

	t.Run("keeps postings mentioning any required tech", func(t *testing.T) {
		criteria := &types.SearchCriteria{TechStack: []string{"Go", "Rust"}}
		postings := []types.Posting{
			{Title: "match", Description: "We build services in go and Python."},
			{Title: "no match", Description: "Pure frontend React role."},
		}

		kept := TechStack{}.Apply(postings, criteria)
		assert.Len(t, kept, 1)
		assert.Equal(t, "match", kept[0].Title)
	})
}

func TestVisaSponsorship(t *testing.T) {
	postings := []types.Posting{
		{Title: "sponsors", VisaSponsorship: boolPtr(true)},
		{Title: "does not", VisaSponsorship: boolPtr(false)},
		{Title: "unknown", VisaSponsorship: nil},
	}

	t.Run("inactive without requirement", func(t *testing.T) {
		kept := VisaSponsorship{}.Apply(postings, &types.SearchCriteria{})
		assert.Len(t, kept, 3)
	})

	t.Run("keeps only confirmed sponsors", func(t *testing.T) {
		criteria := &types.SearchCriteria{RequireVisaSponsorship: true}
		kept := VisaSponsorship{}.Apply(postings, criteria)
		assert.Len(t, kept, 1)
		assert.Equal(t, "sponsors", kept[0].Title)
	})
}

func TestCompanySize(t *testing.T) {
	postings := []types.Posting{
		{Title: "startup", CompanySize: strPtr("startup")},
		{Title: "enterprise", CompanySize: strPtr("enterprise")},
		{Title: "unknown", CompanySize: nil},
	}

	t.Run("inactive without requested classes", func(t *testing.T) {
		kept := CompanySize{}.Apply(postings, &types.SearchCriteria{})
		assert.Len(t, kept, 3)
	})

	t.Run("unknown size is never excluded", func(t *testing.T) {
		criteria := &types.SearchCriteria{CompanySizeClasses: []string{"startup"}}
		kept := CompanySize{}.Apply(postings, criteria)
		assert.Len(t, kept, 2)
		assert.Equal(t, "startup", kept[0].Title)
		assert.Equal(t, "unknown", kept[1].Title)
	})
}

func TestRunAppliesChainInOrder(t *testing.T) {
	criteria := &types.SearchCriteria{
		MinimumMatchScore: 0.5,
		TechStack:         []string{"go"},
	}
	postings := []types.Posting{
		{Title: "low score", MatchScore: 0.1, Description: "go role"},
		{Title: "wrong stack", MatchScore: 0.9, Description: "java role"},
		{Title: "keeper", MatchScore: 0.9, Description: "go role"},
	}

	kept := Run(postings, criteria, DefaultChain(), zap.NewNop())
	assert.Len(t, kept, 1)
	assert.Equal(t, "keeper", kept[0].Title)
}

func TestRunNilLogger(t *testing.T) {
	postings := []types.Posting{{MatchScore: 0.9}}
	kept := Run(postings, &types.SearchCriteria{}, DefaultChain(), nil)
	assert.Len(t, kept, 1)
}
