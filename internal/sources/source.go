// Package sources defines the source adapter contract and the built-in
// API-backed job board adapters. The orchestrator depends only on the
// Source interface, never on a concrete adapter.
package sources

import (
	"context"
	"strings"
	"time"

	"github.com/jonathan/job-aggregator/internal/types"
)

// Source produces postings for one job board or channel. Name is the stable
// identifier used in error prefixes and Posting.Source. Search may return an
// error; the orchestrator converts it to a source-scoped error entry without
// failing the request.
type Source interface {
	Name() string
	Search(ctx context.Context, q Query) ([]types.Posting, error)
}

// Query is the per-request search input passed to every adapter.
type Query struct {
	Keywords         []string
	Location         string
	RemoteOnly       bool
	PostedWithinDays int
	MaxResults       int
}

// FromCriteria builds the adapter query from validated search criteria.
func FromCriteria(c *types.SearchCriteria) Query {
	return Query{
		Keywords:         c.Keywords,
		Location:         c.Location,
		RemoteOnly:       c.RemoteOnly,
		PostedWithinDays: c.PostedWithinDays,
		MaxResults:       c.MaxResults,
	}
}

// MatchesTitle reports whether any search keyword appears in the posting
// title. True when the query has no keywords.
func (q Query) MatchesTitle(title string) bool {
	if len(q.Keywords) == 0 {
		return true
	}
	title = strings.ToLower(title)
	for _, kw := range q.Keywords {
		if strings.Contains(title, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// MatchesLocation applies the remote-only and location constraints to a
// posting location. Remote postings satisfy a location constraint.
func (q Query) MatchesLocation(location string) bool {
	loc := strings.ToLower(location)
	isRemote := strings.Contains(loc, "remote")

	if q.RemoteOnly && !isRemote {
		return false
	}
	if q.Location != "" && !strings.Contains(loc, strings.ToLower(q.Location)) && !isRemote {
		return false
	}
	return true
}

// containsRemote reports whether a location string marks the role remote.
func containsRemote(location string) bool {
	return strings.Contains(strings.ToLower(location), "remote")
}

// WithinWindow reports whether a posting date falls inside the
// posted-within-days window. Always true when no window is set or the date
// is unknown.
func (q Query) WithinWindow(postedAt time.Time) bool {
	if q.PostedWithinDays <= 0 || postedAt.IsZero() {
		return true
	}
	cutoff := time.Now().AddDate(0, 0, -q.PostedWithinDays)
	return !postedAt.Before(cutoff)
}
