package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-aggregator/internal/ratelimit"
	"github.com/jonathan/job-aggregator/internal/types"
)

// instantLimiter returns a limiter whose delays are effectively zero, so
// adapter tests run at full speed.
func instantLimiter() *ratelimit.Limiter {
	return ratelimit.NewWithIntervals(types.LevelNormal, map[string]ratelimit.Interval{
		types.LevelNormal: {},
	})
}

func greenhouseBoardJSON(updatedAt string) string {
	return fmt.Sprintf(`{
		"jobs": [
			{
				"title": "Senior Go Engineer",
				"absolute_url": "https://boards.greenhouse.io/acme/jobs/1",
				"content": "&lt;p&gt;Build services in Go and Kubernetes.&lt;/p&gt;",
				"updated_at": %q,
				"location": {"name": "Remote - US"}
			},
			{
				"title": "Account Executive",
				"absolute_url": "https://boards.greenhouse.io/acme/jobs/2",
				"content": "Sell things.",
				"updated_at": %q,
				"location": {"name": "New York, NY"}
			}
		]
	}`, updatedAt, updatedAt)
}

func TestGreenhouseSearch(t *testing.T) {
	now := time.Now().Format(time.RFC3339)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/acme/jobs", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("content"))
		fmt.Fprint(w, greenhouseBoardJSON(now))
	}))
	defer server.Close()

	g := NewGreenhouse(types.LevelNormal, GreenhouseConfig{
		Boards:  []string{"acme"},
		BaseURL: server.URL,
		Limiter: instantLimiter(),
	})

	postings, err := g.Search(context.Background(), Query{
		Keywords:   []string{"engineer"},
		MaxResults: 10,
	})
	require.NoError(t, err)
	require.Len(t, postings, 2)

	first := postings[0]
	assert.Equal(t, "Senior Go Engineer", first.Title)
	assert.Equal(t, "Acme", first.Company)
	assert.Equal(t, "https://boards.greenhouse.io/acme/jobs/1", first.URL)
	assert.Equal(t, "Greenhouse", first.Source)
	assert.Contains(t, first.Description, "Build services in Go and Kubernetes.")
	require.NotNil(t, first.IsRemote)
	assert.True(t, *first.IsRemote)
	assert.Contains(t, first.TechStack, "Go")
	assert.Contains(t, first.TechStack, "Kubernetes")

	require.NotNil(t, postings[1].IsRemote)
	assert.False(t, *postings[1].IsRemote)
}

func TestGreenhouseSearchFilters(t *testing.T) {
	now := time.Now().Format(time.RFC3339)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, greenhouseBoardJSON(now))
	}))
	defer server.Close()

	g := NewGreenhouse(types.LevelNormal, GreenhouseConfig{
		Boards:  []string{"acme"},
		BaseURL: server.URL,
		Limiter: instantLimiter(),
	})

	t.Run("keyword filter", func(t *testing.T) {
		postings, err := g.Search(context.Background(), Query{
			Keywords:   []string{"go engineer"},
			MaxResults: 10,
		})
		require.NoError(t, err)
		require.Len(t, postings, 1)
		assert.Equal(t, "Senior Go Engineer", postings[0].Title)
	})

	t.Run("remote only filter", func(t *testing.T) {
		postings, err := g.Search(context.Background(), Query{
			RemoteOnly: true,
			MaxResults: 10,
		})
		require.NoError(t, err)
		require.Len(t, postings, 1)
		assert.Equal(t, "Remote - US", postings[0].Location)
	})

	t.Run("result cap", func(t *testing.T) {
		postings, err := g.Search(context.Background(), Query{MaxResults: 1})
		require.NoError(t, err)
		assert.Len(t, postings, 1)
	})
}

func TestGreenhouseSearchStaleWindow(t *testing.T) {
	old := time.Now().AddDate(0, 0, -30).Format(time.RFC3339)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, greenhouseBoardJSON(old))
	}))
	defer server.Close()

	g := NewGreenhouse(types.LevelNormal, GreenhouseConfig{
		Boards:  []string{"acme"},
		BaseURL: server.URL,
		Limiter: instantLimiter(),
	})

	postings, err := g.Search(context.Background(), Query{
		PostedWithinDays: 7,
		MaxResults:       10,
	})
	require.NoError(t, err)
	assert.Empty(t, postings)
}

func TestGreenhouseSearchPartialBoardFailure(t *testing.T) {
	now := time.Now().Format(time.RFC3339)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken/jobs" {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		fmt.Fprint(w, greenhouseBoardJSON(now))
	}))
	defer server.Close()

	g := NewGreenhouse(types.LevelNormal, GreenhouseConfig{
		Boards:  []string{"broken", "acme"},
		BaseURL: server.URL,
		Limiter: instantLimiter(),
	})

	postings, err := g.Search(context.Background(), Query{MaxResults: 10})
	require.NoError(t, err, "one healthy board keeps the adapter alive")
	assert.Len(t, postings, 2)
}

func TestGreenhouseSearchAllBoardsFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	g := NewGreenhouse(types.LevelNormal, GreenhouseConfig{
		Boards:  []string{"a", "b"},
		BaseURL: server.URL,
		Limiter: instantLimiter(),
	})

	_, err := g.Search(context.Background(), Query{MaxResults: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all boards failed")
}
