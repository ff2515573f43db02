package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/job-aggregator/internal/fetch"
	"github.com/jonathan/job-aggregator/internal/ratelimit"
	"github.com/jonathan/job-aggregator/internal/retry"
	"github.com/jonathan/job-aggregator/internal/types"
)

// defaultLeverSites are public Lever postings sites queried by default.
var defaultLeverSites = []string{
	"netflix", "spotify", "plaid", "brex", "scaleai",
	"anduril", "rippling", "attentive", "zapier",
}

const leverBaseURL = "https://api.lever.co/v0/postings"

// Lever searches public Lever postings sites.
type Lever struct {
	sites   []string
	baseURL string
	limiter *ratelimit.Limiter
	policy  retry.Policy
	opts    *fetch.Options
	logger  *zap.Logger
}

// LeverConfig customizes a Lever adapter. Zero values select the production
// defaults.
type LeverConfig struct {
	Sites   []string
	BaseURL string
	Limiter *ratelimit.Limiter
	Fetch   *fetch.Options
	Logger  *zap.Logger
}

// NewLever creates a Lever adapter pacing its requests at the given scraping
// level.
func NewLever(tier string, cfg LeverConfig) *Lever {
	if cfg.Sites == nil {
		cfg.Sites = defaultLeverSites
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = leverBaseURL
	}
	if cfg.Limiter == nil {
		cfg.Limiter = ratelimit.New(tier)
	}
	if cfg.Fetch == nil {
		cfg.Fetch = fetch.DefaultOptions()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Lever{
		sites:   cfg.Sites,
		baseURL: cfg.BaseURL,
		limiter: cfg.Limiter,
		policy:  retry.Default(fetch.ClassifyError),
		opts:    cfg.Fetch,
		logger:  cfg.Logger,
	}
}

// Name implements Source.
func (l *Lever) Name() string { return "Lever" }

// Search iterates the configured sites, collecting matching postings until
// the result cap is reached. The adapter fails only when every site failed.
func (l *Lever) Search(ctx context.Context, q Query) ([]types.Posting, error) {
	var all []types.Posting
	var lastErr error
	succeeded := 0

	for _, site := range l.sites {
		if len(all) >= q.MaxResults {
			break
		}

		postings, err := l.searchSite(ctx, site, q)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			l.logger.Warn("lever site failed",
				zap.String("site", site),
				zap.Error(err),
			)
			continue
		}

		succeeded++
		all = append(all, postings...)
	}

	if succeeded == 0 && lastErr != nil {
		return nil, fmt.Errorf("all sites failed: %w", lastErr)
	}
	if len(all) > q.MaxResults {
		all = all[:q.MaxResults]
	}
	return all, nil
}

// Lever postings API wire format.
type leverPosting struct {
	Text             string `json:"text"`
	HostedURL        string `json:"hostedUrl"`
	CreatedAt        int64  `json:"createdAt"`
	DescriptionPlain string `json:"descriptionPlain"`
	Categories       struct {
		Location string `json:"location"`
	} `json:"categories"`
}

func (l *Lever) searchSite(ctx context.Context, site string, q Query) ([]types.Posting, error) {
	if err := l.limiter.Delay(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s?mode=json", l.baseURL, site)

	var result *fetch.Result
	err := l.policy.Do(ctx, func(ctx context.Context) error {
		var err error
		result, err = fetch.Get(ctx, url, l.opts)
		return err
	})
	if err != nil {
		return nil, err
	}

	var parsed []leverPosting
	if err := json.Unmarshal([]byte(result.Body), &parsed); err != nil {
		return nil, fmt.Errorf("malformed postings response for %s: %w", site, err)
	}

	var postings []types.Posting
	for _, job := range parsed {
		if !q.MatchesTitle(job.Text) || !q.MatchesLocation(job.Categories.Location) {
			continue
		}

		postedAt := time.UnixMilli(job.CreatedAt)
		if job.CreatedAt == 0 {
			postedAt = time.Now()
		}
		if !q.WithinWindow(postedAt) {
			continue
		}

		isRemote := containsRemote(job.Categories.Location)
		relocation := false

		postings = append(postings, types.Posting{
			Title:            job.Text,
			Company:          titleCase(site),
			Location:         job.Categories.Location,
			Description:      job.DescriptionPlain,
			URL:              job.HostedURL,
			Source:           l.Name(),
			PostedDate:       postedAt,
			IsRemote:         &isRemote,
			OffersRelocation: &relocation,
			TechStack:        ExtractTechStack(job.DescriptionPlain),
		})
	}

	return postings, nil
}
