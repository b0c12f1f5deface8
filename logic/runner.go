package logic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jcrbcn/rss2bsky/shared"
)

// IRunner drives the whole pipeline: cutoff, fetch, normalize, filter,
// compose, publish.
type IRunner interface {
	Run(ctx context.Context) error
	RunOnce(ctx context.Context) error
}

type runner struct {
	cfg       *shared.Config
	logger    shared.ILogger
	client    IBskyClient
	fetcher   IFeedFetcher
	cursor    ITimelineCursor
	composer  IComposer
	publisher IPublisher
	metrics   IMetrics
	filters   []ItemFilter
}

func NewRunner(
	cfg *shared.Config,
	logger shared.ILogger,
	client IBskyClient,
	fetcher IFeedFetcher,
	cursor ITimelineCursor,
	composer IComposer,
	publisher IPublisher,
	metrics IMetrics,
) IRunner {
	return &runner{
		cfg:       cfg,
		logger:    logger,
		client:    client,
		fetcher:   fetcher,
		cursor:    cursor,
		composer:  composer,
		publisher: publisher,
		metrics:   metrics,
		filters:   []ItemFilter{NewPathOnlyFilter(cfg.PathOnly)},
	}
}

// Run logs in, then executes a single pass, or keeps passing on an interval
// when watch mode is configured. The returned error is always systemic;
// per-item failures have already been logged and counted.
func (r *runner) Run(ctx context.Context) error {

	if err := r.client.LoginWithBackoff(ctx); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if r.cfg.Once || r.cfg.RunIntervalMinutes <= 0 {
		return r.RunOnce(ctx)
	}

	interval := time.Duration(r.cfg.RunIntervalMinutes) * time.Minute
	for {
		r.runGuarded(ctx)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
}

func (r *runner) runGuarded(ctx context.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Errorf("Posting run panicked: %v", rec)
		}
	}()
	if err := r.RunOnce(ctx); err != nil {
		// In watch mode a failed run just waits for the next tick
		r.logger.Errorf("Posting run failed: %v", err)
	}
}

func (r *runner) RunOnce(ctx context.Context) error {

	r.metrics.RunStarted()

	cutoff, err := r.cursor.CurrentCutoff(ctx, r.cfg.Handle)
	if err != nil {
		r.metrics.RunFailed()
		return err
	}
	r.logger.Infof("Timeline cutoff: %v", cutoff.Timestamp)

	feed, err := r.fetcher.Fetch(ctx, r.cfg.FeedUrl)
	if err != nil {
		r.metrics.RunFailed()
		return fmt.Errorf("fetch feed %s: %w", r.cfg.FeedUrl, err)
	}

	var items []*FeedItem
	for _, raw := range feed.Items {
		itm, err := NormalizeItem(raw)
		if err != nil {
			if errors.Is(err, ErrMissingTimestamp) {
				r.logger.Warnf("Skipping unorderable item: %v", err)
				continue
			}
			r.metrics.RunFailed()
			return err
		}
		r.metrics.ItemSeen()
		items = append(items, itm)
	}

	keepers := SelectNew(items, cutoff, r.filters...)
	r.metrics.ItemsSelected(len(keepers))

	var posts []*ComposedPost
	for _, itm := range keepers {
		r.logger.Infof("New item %s (%v): %s", itm.Link, itm.PublishedAt, itm.Title)
		posts = append(posts, r.composer.Compose(ctx, itm))
	}

	report, err := r.publisher.PublishAll(ctx, posts)
	r.logger.Infof("Run finished: %d selected, %d published, %d failed",
		report.Selected, report.Published, report.Failed)
	if err != nil {
		r.metrics.RunFailed()
		return err
	}
	return nil
}
