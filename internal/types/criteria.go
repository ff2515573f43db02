package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Scraping levels controlling how aggressively adapters pace their
// outbound requests.
const (
	LevelConservative = "conservative"
	LevelNormal       = "normal"
	LevelAggressive   = "aggressive"
)

// Defaults applied to a SearchCriteria when the request leaves a field unset.
const (
	DefaultMaxResults = 100
	DefaultMinScore   = 0.5
)

// SearchCriteria is the immutable search input supplied with a request.
// JSON field names match the request envelope produced by the client.
type SearchCriteria struct {
	Keywords               []string `json:"keywords,omitempty"`
	Location               string   `json:"location,omitempty"`
	RemoteOnly             bool     `json:"remoteOnly,omitempty"`
	PostedWithinDays       int      `json:"postedWithinDays,omitempty" validate:"gte=0"`
	MaxResults             int      `json:"maxResults,omitempty" validate:"gt=0"`
	ScrapingLevel          string   `json:"scrapingLevel,omitempty" validate:"omitempty,oneof=conservative normal aggressive"`
	MinimumMatchScore      float64  `json:"minimumMatchScore,omitempty" validate:"gte=0,lte=1"`
	TechStack              []string `json:"techStack,omitempty"`
	RequireVisaSponsorship bool     `json:"visaSponsorship,omitempty"`
	CompanySizeClasses     []string `json:"companyTypes,omitempty"`
}

var criteriaValidator = validator.New()

// ApplyDefaults fills unset fields with their documented defaults and
// returns the receiver for chaining.
func (c *SearchCriteria) ApplyDefaults() *SearchCriteria {
	if c.MaxResults == 0 {
		c.MaxResults = DefaultMaxResults
	}
	if c.ScrapingLevel == "" {
		c.ScrapingLevel = LevelNormal
	}
	if c.MinimumMatchScore == 0 {
		c.MinimumMatchScore = DefaultMinScore
	}
	return c
}

// Validate checks the criteria invariants. A violation is fatal for the
// whole request, unlike per-source failures.
func (c *SearchCriteria) Validate() error {
	if err := criteriaValidator.Struct(c); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("invalid search criteria: field %q fails %q", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("invalid search criteria: %w", err)
	}
	return nil
}
