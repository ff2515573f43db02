package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/job-aggregator/internal/fetch"
	"github.com/jonathan/job-aggregator/internal/ratelimit"
	"github.com/jonathan/job-aggregator/internal/retry"
	"github.com/jonathan/job-aggregator/internal/types"
)

// defaultGreenhouseBoards are well-known public Greenhouse board tokens.
// Deployments with a curated board list override them via the Boards option.
var defaultGreenhouseBoards = []string{
	"airbnb", "stripe", "gitlab", "notion", "figma", "coinbase",
	"robinhood", "dropbox", "pinterest", "reddit", "twitch",
	"datadog", "cloudflare", "elastic", "hashicorp", "mongodb",
}

const greenhouseBaseURL = "https://boards-api.greenhouse.io/v1/boards"

// Greenhouse searches public Greenhouse job boards through the boards API.
type Greenhouse struct {
	boards  []string
	baseURL string
	limiter *ratelimit.Limiter
	policy  retry.Policy
	opts    *fetch.Options
	logger  *zap.Logger
}

// GreenhouseConfig customizes a Greenhouse adapter. Zero values select the
// production defaults.
type GreenhouseConfig struct {
	Boards  []string
	BaseURL string
	Limiter *ratelimit.Limiter
	Fetch   *fetch.Options
	Logger  *zap.Logger
}

// NewGreenhouse creates a Greenhouse adapter pacing its requests at the
// given scraping level.
func NewGreenhouse(tier string, cfg GreenhouseConfig) *Greenhouse {
	if cfg.Boards == nil {
		cfg.Boards = defaultGreenhouseBoards
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = greenhouseBaseURL
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
	return &Greenhouse{
		boards:  cfg.Boards,
		baseURL: cfg.BaseURL,
		limiter: cfg.Limiter,
		policy:  retry.Default(fetch.ClassifyError),
		opts:    cfg.Fetch,
		logger:  cfg.Logger,
	}
}

// Name implements Source.
func (g *Greenhouse) Name() string { return "Greenhouse" }

// Search iterates the known boards, collecting matching postings until the
// result cap is reached. A single failing board does not fail the adapter;
// the adapter fails only when every board fetch failed.
func (g *Greenhouse) Search(ctx context.Context, q Query) ([]types.Posting, error) {
	var all []types.Posting
	var lastErr error
	succeeded := 0

	for _, board := range g.boards {
		if len(all) >= q.MaxResults {
			break
		}

		postings, err := g.searchBoard(ctx, board, q)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			g.logger.Warn("greenhouse board failed",
				zap.String("board", board),
				zap.Error(err),
			)
			continue
		}

		succeeded++
		all = append(all, postings...)
	}

	if succeeded == 0 && lastErr != nil {
		return nil, fmt.Errorf("all boards failed: %w", lastErr)
	}
	if len(all) > q.MaxResults {
		all = all[:q.MaxResults]
	}
	return all, nil
}

// Greenhouse boards API wire format.
type greenhouseJob struct {
	Title       string `json:"title"`
	AbsoluteURL string `json:"absolute_url"`
	Content     string `json:"content"`
	UpdatedAt   string `json:"updated_at"`
	Location    struct {
		Name string `json:"name"`
	} `json:"location"`
}

type greenhouseBoard struct {
	Jobs []greenhouseJob `json:"jobs"`
}

func (g *Greenhouse) searchBoard(ctx context.Context, board string, q Query) ([]types.Posting, error) {
	if err := g.limiter.Delay(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s/jobs?content=true", g.baseURL, board)

	var result *fetch.Result
	err := g.policy.Do(ctx, func(ctx context.Context) error {
		var err error
		result, err = fetch.Get(ctx, url, g.opts)
		return err
	})
	if err != nil {
		return nil, err
	}

	var parsed greenhouseBoard
	if err := json.Unmarshal([]byte(result.Body), &parsed); err != nil {
		return nil, fmt.Errorf("malformed board response for %s: %w", board, err)
	}

	var postings []types.Posting
	for _, job := range parsed.Jobs {
		if !q.MatchesTitle(job.Title) || !q.MatchesLocation(job.Location.Name) {
			continue
		}

		postedAt := parseGreenhouseTime(job.UpdatedAt)
		if !q.WithinWindow(postedAt) {
			continue
		}

		description := flattenContent(job.Content)
		isRemote := containsRemote(job.Location.Name)
		relocation := false

		postings = append(postings, types.Posting{
			Title:            job.Title,
			Company:          titleCase(board),
			Location:         job.Location.Name,
			Description:      description,
			URL:              job.AbsoluteURL,
			Source:           g.Name(),
			PostedDate:       postedAt,
			IsRemote:         &isRemote,
			OffersRelocation: &relocation,
			TechStack:        ExtractTechStack(description),
		})
	}

	return postings, nil
}

// flattenContent converts the HTML-escaped posting body into plain text.
func flattenContent(content string) string {
	unescaped := html.UnescapeString(content)
	text, err := fetch.ExtractText(unescaped)
	if err != nil || text == "" {
		return unescaped
	}
	return text
}

func parseGreenhouseTime(value string) time.Time {
	if value == "" {
		return time.Now()
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-07:00", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Now()
}
