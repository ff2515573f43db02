package sources

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/jonathan/job-aggregator/internal/fetch"
	"github.com/jonathan/job-aggregator/internal/ratelimit"
	"github.com/jonathan/job-aggregator/internal/retry"
	"github.com/jonathan/job-aggregator/internal/types"
)

// webSearchPageSize is the maximum result count the custom search API
// returns per request.
const webSearchPageSize = 10

// WebSearch discovers postings through the Google Programmable Search API,
// optionally enriching each hit by fetching the underlying page.
type WebSearch struct {
	apiKey     string
	searchCx   string
	limiter    *ratelimit.Limiter
	policy     retry.Policy
	opts       *fetch.Options
	logger     *zap.Logger
	useBrowser bool
	enrich     bool

	// newService is swapped in tests to avoid real API construction.
	newService func(ctx context.Context) (*customsearch.Service, error)
}

// WebSearchConfig customizes a WebSearch adapter.
type WebSearchConfig struct {
	APIKey     string
	SearchCX   string
	Limiter    *ratelimit.Limiter
	Fetch      *fetch.Options
	Logger     *zap.Logger
	UseBrowser bool
	Enrich     bool
}

// NewWebSearch creates a web search adapter pacing its requests at the given
// scraping level.
func NewWebSearch(tier string, cfg WebSearchConfig) *WebSearch {
	if cfg.Limiter == nil {
		cfg.Limiter = ratelimit.New(tier)
	}
	if cfg.Fetch == nil {
		cfg.Fetch = fetch.DefaultOptions()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	w := &WebSearch{
		apiKey:     cfg.APIKey,
		searchCx:   cfg.SearchCX,
		limiter:    cfg.Limiter,
		policy:     retry.Default(classifySearchError),
		opts:       cfg.Fetch,
		logger:     cfg.Logger,
		useBrowser: cfg.UseBrowser,
		enrich:     cfg.Enrich,
	}
	w.newService = func(ctx context.Context) (*customsearch.Service, error) {
		return customsearch.NewService(ctx, option.WithAPIKey(w.apiKey))
	}
	return w
}

// Name implements Source.
func (w *WebSearch) Name() string { return "WebSearch" }

// Search issues one paced search per query term and maps result items to
// postings.
func (w *WebSearch) Search(ctx context.Context, q Query) ([]types.Posting, error) {
	svc, err := w.newService(ctx)
	if err != nil {
		return nil, fmt.Errorf("search service: %w", err)
	}

	query := buildSearchQuery(q)

	if err := w.limiter.Delay(ctx); err != nil {
		return nil, err
	}

	var resp *customsearch.Search
	err = w.policy.Do(ctx, func(ctx context.Context) error {
		var err error
		resp, err = svc.Cse.List().
			Cx(w.searchCx).
			Q(query).
			Num(webSearchPageSize).
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return nil, err
	}

	var postings []types.Posting
	for _, item := range resp.Items {
		if len(postings) >= q.MaxResults {
			break
		}

		description := item.Snippet
		if w.enrich {
			if text, err := w.fetchPage(ctx, item.Link); err == nil && text != "" {
				description = text
			} else if err != nil {
				w.logger.Debug("page enrichment failed",
					zap.String("url", item.Link),
					zap.Error(err),
				)
			}
		}

		isRemote := containsRemote(item.Title) || containsRemote(description)

		postings = append(postings, types.Posting{
			Title:       item.Title,
			Company:     hostCompany(item.DisplayLink),
			Location:    "",
			Description: description,
			URL:         item.Link,
			Source:      w.Name(),
			PostedDate:  time.Now(),
			IsRemote:    &isRemote,
			TechStack:   ExtractTechStack(description),
		})
	}

	return postings, nil
}

// fetchPage pulls the posting page body and extracts readable text, falling
// back to a headless browser when the static fetch comes back thin.
func (w *WebSearch) fetchPage(ctx context.Context, url string) (string, error) {
	result, err := fetch.Get(ctx, url, w.opts)
	if err != nil {
		return "", err
	}

	body := result.Body
	if w.useBrowser && fetch.ShouldUseBrowser(body) {
		rendered, err := fetch.WithBrowser(ctx, url, w.opts.Timeout)
		if err != nil {
			w.logger.Debug("browser render failed", zap.String("url", url), zap.Error(err))
		} else {
			body = rendered
		}
	}

	return fetch.ExtractText(body)
}

// buildSearchQuery composes the search string from keywords and location.
func buildSearchQuery(q Query) string {
	parts := append([]string{}, q.Keywords...)
	parts = append(parts, "jobs")
	if q.RemoteOnly {
		parts = append(parts, "remote")
	} else if q.Location != "" {
		parts = append(parts, q.Location)
	}
	return strings.Join(parts, " ")
}

// hostCompany derives a display company from the result host, e.g.
// "jobs.example.com" becomes "Example".
func hostCompany(displayLink string) string {
	host := displayLink
	if i := strings.LastIndex(host, "."); i > 0 {
		host = host[:i]
	}
	if i := strings.LastIndex(host, "."); i >= 0 {
		host = host[i+1:]
	}
	return titleCase(host)
}

// classifySearchError maps custom search API failures onto retry classes.
// Quota exhaustion retries with the rate-limit penalty, server errors retry
// normally, everything else is permanent.
func classifySearchError(err error) retry.Class {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 429:
			return retry.RateLimited
		case apiErr.Code >= 500:
			return retry.Transient
		default:
			return retry.Fatal
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return retry.Transient
	}
	return retry.Fatal
}
