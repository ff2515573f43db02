package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-aggregator/internal/sources"
	"github.com/jonathan/job-aggregator/internal/types"
)

// fakeSource is a canned Source for orchestrator tests.
type fakeSource struct {
	name     string
	postings []types.Posting
	err      error
	delay    time.Duration
	onStart  func()
	onFinish func()
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Search(ctx context.Context, q sources.Query) ([]types.Posting, error) {
	if f.onStart != nil {
		f.onStart()
	}
	if f.onFinish != nil {
		defer f.onFinish()
	}
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	return f.postings, f.err
}

func posting(title, company, url string, skills ...string) types.Posting {
	desc := "Role: " + title
	for _, s := range skills {
		desc += " " + s
	}
	return types.Posting{Title: title, Company: company, URL: url, Description: desc}
}

func testProfile() *types.CandidateProfile {
	return &types.CandidateProfile{
		Skills:          []string{"go", "postgresql"},
		Text:            "Go engineer building services with postgresql, unit test coverage, mentoring a team.",
		Location:        "Remote",
		YearsExperience: 5,
	}
}

func testCriteria() *types.SearchCriteria {
	c := &types.SearchCriteria{MinimumMatchScore: 0.01}
	return c.ApplyDefaults()
}

func TestRunAggregatesAllSources(t *testing.T) {
	srcs := []sources.Source{
		&fakeSource{name: "A", postings: []types.Posting{posting("Go Engineer", "Acme", "https://a/1", "go")}},
		&fakeSource{name: "B", postings: []types.Posting{posting("Backend Engineer", "Globex", "https://b/1", "go", "postgresql")}},
		&fakeSource{name: "C", postings: []types.Posting{posting("Platform Engineer", "Initech", "https://c/1")}},
	}

	orch := New(srcs, Options{})
	result, err := orch.Run(context.Background(), testProfile(), testCriteria())
	require.NoError(t, err)

	assert.Len(t, result.Jobs, 3)
	assert.Empty(t, result.Errors)

	for _, job := range result.Jobs {
		assert.Greater(t, job.MatchScore, 0.0)
		require.NotNil(t, job.Breakdown)
		assert.InDelta(t, job.Breakdown.TotalScore, job.MatchScore, 1e-9)
	}
}

func TestRunSourceFailureBecomesErrorEntry(t *testing.T) {
	srcs := []sources.Source{
		&fakeSource{name: "A", postings: []types.Posting{posting("Go Engineer", "Acme", "https://a/1")}},
		&fakeSource{name: "B", postings: []types.Posting{posting("Backend Engineer", "Globex", "https://b/1")}},
		&fakeSource{name: "C", postings: []types.Posting{posting("Platform Engineer", "Initech", "https://c/1")}},
		&fakeSource{name: "Broken", err: errors.New("connection refused")},
	}

	orch := New(srcs, Options{})
	result, err := orch.Run(context.Background(), testProfile(), testCriteria())
	require.NoError(t, err, "a failing source never fails the run")

	assert.Len(t, result.Jobs, 3)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Broken: connection refused", result.Errors[0])
}

func TestRunAllSourcesFailing(t *testing.T) {
	srcs := []sources.Source{
		&fakeSource{name: "A", err: errors.New("down")},
		&fakeSource{name: "B", err: errors.New("also down")},
	}

	orch := New(srcs, Options{})
	result, err := orch.Run(context.Background(), testProfile(), testCriteria())
	require.NoError(t, err)

	assert.Empty(t, result.Jobs)
	assert.Len(t, result.Errors, 2)
	assert.NotNil(t, result.Jobs, "jobs is an empty array, not null")
}

func TestRunDeduplicatesAcrossSources(t *testing.T) {
	shared := posting("Go Engineer", "Acme", "https://acme/1", "go")
	srcs := []sources.Source{
		&fakeSource{name: "A", postings: []types.Posting{shared}},
		&fakeSource{name: "B", postings: []types.Posting{shared}},
	}

	orch := New(srcs, Options{})
	result, err := orch.Run(context.Background(), testProfile(), testCriteria())
	require.NoError(t, err)

	assert.Len(t, result.Jobs, 1)
}

func TestRunSortsByScoreDescending(t *testing.T) {
	srcs := []sources.Source{
		&fakeSource{name: "A", postings: []types.Posting{
			posting("Gardener", "GreenCo", "https://g/1"),
			posting("Senior Go Engineer", "Acme", "https://a/1", "go", "postgresql", "unit test", "team"),
		}},
	}

	orch := New(srcs, Options{})
	result, err := orch.Run(context.Background(), testProfile(), testCriteria())
	require.NoError(t, err)
	require.Len(t, result.Jobs, 2)

	assert.Equal(t, "Senior Go Engineer", result.Jobs[0].Title)
	assert.GreaterOrEqual(t, result.Jobs[0].MatchScore, result.Jobs[1].MatchScore)
}

func TestRunRespectsMaxResults(t *testing.T) {
	var many []types.Posting
	for i := 0; i < 10; i++ {
		many = append(many, posting(fmt.Sprintf("Go Engineer %d", i), "Acme", fmt.Sprintf("https://a/%d", i), "go"))
	}

	srcs := []sources.Source{&fakeSource{name: "A", postings: many}}
	criteria := testCriteria()
	criteria.MaxResults = 3

	orch := New(srcs, Options{})
	result, err := orch.Run(context.Background(), testProfile(), criteria)
	require.NoError(t, err)
	assert.Len(t, result.Jobs, 3)
}

func TestRunLeavesCallerCriteriaUntouched(t *testing.T) {
	srcs := []sources.Source{
		&fakeSource{name: "A", postings: []types.Posting{posting("Go Engineer", "Acme", "https://a/1")}},
	}

	criteria := &types.SearchCriteria{MinimumMatchScore: 0.01}
	orch := New(srcs, Options{})
	_, err := orch.Run(context.Background(), testProfile(), criteria)
	require.NoError(t, err)

	assert.Zero(t, criteria.MaxResults, "defaults apply to a copy")
	assert.Empty(t, criteria.ScrapingLevel)
}

func TestRunInvalidCriteriaIsFatal(t *testing.T) {
	criteria := testCriteria()
	criteria.ScrapingLevel = "reckless"

	orch := New(nil, Options{})
	_, err := orch.Run(context.Background(), testProfile(), criteria)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid search criteria")
}

func TestRunBoundedConcurrency(t *testing.T) {
	var current, peak int64
	var mu sync.Mutex

	mkSource := func(i int) sources.Source {
		return &fakeSource{
			name:  fmt.Sprintf("S%d", i),
			delay: 10 * time.Millisecond,
			onStart: func() {
				now := atomic.AddInt64(&current, 1)
				mu.Lock()
				if now > peak {
					peak = now
				}
				mu.Unlock()
			},
			onFinish: func() {
				atomic.AddInt64(&current, -1)
			},
		}
	}

	var srcs []sources.Source
	for i := 0; i < 10; i++ {
		srcs = append(srcs, mkSource(i))
	}

	orch := New(srcs, Options{Workers: 2})
	_, err := orch.Run(context.Background(), testProfile(), testCriteria())
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, int64(2))
}

func TestRunCancellation(t *testing.T) {
	srcs := []sources.Source{
		&fakeSource{name: "Slow", delay: time.Minute},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	orch := New(srcs, Options{})
	_, err := orch.Run(ctx, testProfile(), testCriteria())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunProgressIsMonotonic(t *testing.T) {
	srcs := []sources.Source{
		&fakeSource{name: "A", postings: []types.Posting{posting("Go Engineer", "Acme", "https://a/1")}},
		&fakeSource{name: "B"},
		&fakeSource{name: "C", err: errors.New("down")},
	}

	var mu sync.Mutex
	var events []ProgressEvent

	orch := New(srcs, Options{
		OnProgress: func(ev ProgressEvent) {
			mu.Lock()
			events = append(events, ev)
			mu.Unlock()
		},
	})

	_, err := orch.Run(context.Background(), testProfile(), testCriteria())
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, events)

	last := 0.0
	for _, ev := range events {
		assert.GreaterOrEqual(t, ev.Fraction, last, ev.Message)
		assert.LessOrEqual(t, ev.Fraction, 1.0, ev.Message)
		last = ev.Fraction
	}
	assert.Equal(t, 1.0, events[len(events)-1].Fraction)
}
