package logic

import (
	"context"
	"fmt"
	"time"

	"github.com/jcrbcn/rss2bsky/shared"
)

const (
	cursorPageSize = 50
	cursorMaxPages = 20
)

// TimelineCutoff is the publish time of the account's most recent top-level
// post. Items at or before it are considered already posted. A zero
// Timestamp means the account has no top-level posts and nothing is
// filtered. Derived fresh each run; never persisted.
type TimelineCutoff struct {
	Timestamp time.Time
	PostUri   string
}

// ITimelineCursor determines the dedup cutoff from the remote timeline,
// which is the sole source of truth across runs.
type ITimelineCursor interface {
	CurrentCutoff(ctx context.Context, handle string) (TimelineCutoff, error)
}

type timelineCursor struct {
	logger shared.ILogger
	client IBskyClient
}

func NewTimelineCursor(logger shared.ILogger, client IBskyClient) ITimelineCursor {
	return &timelineCursor{logger: logger, client: client}
}

// CurrentCutoff pages the account's own timeline, newest first, until it
// finds a post that is neither a reply nor a repost. Any failure to read or
// understand the timeline aborts the run: a wrongly-empty cutoff would
// republish the whole feed.
func (tc *timelineCursor) CurrentCutoff(ctx context.Context, handle string) (TimelineCutoff, error) {

	cursor := ""
	for page := 0; page < cursorMaxPages; page++ {
		resp, err := tc.client.GetAuthorFeed(ctx, handle, cursor, cursorPageSize)
		if err != nil {
			return TimelineCutoff{}, fmt.Errorf("%w: %v", ErrTimelineUnavailable, err)
		}
		for _, fv := range resp.Feed {
			if fv.IsRepost() || fv.IsReply() {
				continue
			}
			createdAt, err := time.Parse(time.RFC3339, fv.Post.Record.CreatedAt)
			if err != nil {
				return TimelineCutoff{}, fmt.Errorf("%w: bad createdAt %q: %v",
					ErrTimelineUnavailable, fv.Post.Record.CreatedAt, err)
			}
			tc.logger.Infof("Most recent top-level post created %s", fv.Post.Record.CreatedAt)
			return TimelineCutoff{Timestamp: createdAt, PostUri: fv.Post.Uri}, nil
		}
		if resp.Cursor == "" || len(resp.Feed) == 0 {
			break
		}
		cursor = resp.Cursor
	}

	// No top-level posts at all: nothing gets filtered.
	tc.logger.Infof("No top-level posts found for %s", handle)
	return TimelineCutoff{}, nil
}
