// Package pipeline orchestrates a full search request: concurrent source
// fan-out, scoring, deduplication, ranking, and filtering.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-aggregator/internal/dedup"
	"github.com/jonathan/job-aggregator/internal/filtering"
	"github.com/jonathan/job-aggregator/internal/scoring"
	"github.com/jonathan/job-aggregator/internal/sources"
	"github.com/jonathan/job-aggregator/internal/types"
)

// DefaultWorkers is the bound on concurrently running source searches.
const DefaultWorkers = 4

// Options configures an Orchestrator. Zero values select production
// defaults.
type Options struct {
	Workers    int
	Scorer     *scoring.Engine
	Filters    []filtering.Filter
	Logger     *zap.Logger
	OnProgress ProgressFunc
}

// Orchestrator runs the end-to-end search pipeline over a fixed set of
// source adapters.
type Orchestrator struct {
	sources  []sources.Source
	workers  int
	scorer   *scoring.Engine
	filters  []filtering.Filter
	logger   *zap.Logger
	progress ProgressFunc
}

// New creates an Orchestrator over the given sources.
func New(srcs []sources.Source, opts Options) *Orchestrator {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Scorer == nil {
		opts.Scorer = scoring.New(scoring.DefaultVocabulary())
	}
	if opts.Filters == nil {
		opts.Filters = filtering.DefaultChain()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Orchestrator{
		sources:  srcs,
		workers:  opts.Workers,
		scorer:   opts.Scorer,
		filters:  opts.Filters,
		logger:   opts.Logger,
		progress: opts.OnProgress,
	}
}

// Run executes one search request. Source failures become error entries in
// the result; only invalid criteria or context cancellation fail the run.
// The caller's criteria are never modified; defaults apply to a copy.
func (o *Orchestrator) Run(ctx context.Context, profile *types.CandidateProfile, criteria *types.SearchCriteria) (*types.SearchResult, error) {
	normalized := *criteria
	criteria = normalized.ApplyDefaults()
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	searchID := uuid.NewString()
	logger := o.logger.With(zap.String("search_id", searchID))
	tracker := newProgressTracker(o.progress)

	logger.Info("search started",
		zap.Int("sources", len(o.sources)),
		zap.Strings("keywords", criteria.Keywords),
		zap.String("scraping_level", criteria.ScrapingLevel),
	)

	query := sources.FromCriteria(criteria)
	tracker.emit(fmt.Sprintf("Searching %d sources", len(o.sources)), 0.20)

	postings, srcErrors, err := o.fanOut(ctx, logger, tracker, query)
	if err != nil {
		return nil, err
	}

	tracker.emit("Scoring results", 0.85)
	o.scoreAll(profile, postings)

	tracker.emit("Removing duplicates", 0.90)
	before := len(postings)
	postings = dedup.Deduplicate(postings)
	logger.Debug("deduplicated", zap.Int("before", before), zap.Int("after", len(postings)))

	sort.SliceStable(postings, func(i, j int) bool {
		return postings[i].MatchScore > postings[j].MatchScore
	})

	tracker.emit("Applying filters", 0.95)
	postings = filtering.Run(postings, criteria, o.filters, logger)

	if len(postings) > criteria.MaxResults {
		postings = postings[:criteria.MaxResults]
	}

	tracker.emit("Search complete", 1.0)
	logger.Info("search finished",
		zap.Int("jobs", len(postings)),
		zap.Int("source_errors", len(srcErrors)),
	)

	result := &types.SearchResult{Jobs: postings, Errors: srcErrors}
	if result.Jobs == nil {
		result.Jobs = []types.Posting{}
	}
	if result.Errors == nil {
		result.Errors = []string{}
	}
	return result, nil
}

// fanOut runs every source search on a bounded worker pool. A failing
// source contributes an error entry instead of failing its siblings, so the
// group tasks themselves always return nil.
func (o *Orchestrator) fanOut(ctx context.Context, logger *zap.Logger, tracker *progressTracker, query sources.Query) ([]types.Posting, []string, error) {
	var (
		mu       sync.Mutex
		postings []types.Posting
		srcErrs  []string
		done     int
	)

	total := len(o.sources)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for _, src := range o.sources {
		src := src
		g.Go(func() error {
			found, err := src.Search(gctx, query)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				srcErrs = append(srcErrs, fmt.Sprintf("%s: %v", src.Name(), err))
				logger.Warn("source failed", zap.String("source", src.Name()), zap.Error(err))
			} else {
				postings = append(postings, found...)
				logger.Debug("source finished",
					zap.String("source", src.Name()),
					zap.Int("postings", len(found)),
				)
			}

			done++
			frac := 0.20 + float64(done)/float64(total)*0.60
			tracker.emit(fmt.Sprintf("Completed %s (%d/%d)", src.Name(), done, total), frac)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return postings, srcErrs, nil
}

func (o *Orchestrator) scoreAll(profile *types.CandidateProfile, postings []types.Posting) {
	for i := range postings {
		breakdown := o.scorer.Score(profile, &postings[i])
		postings[i].MatchScore = breakdown.TotalScore
		postings[i].Breakdown = &breakdown
	}
}
