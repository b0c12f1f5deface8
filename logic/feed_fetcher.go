package logic

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/jcrbcn/rss2bsky/shared"
)

const feedTimeoutSec = 10

//go:generate mockgen --build_flags=--mod=mod -destination ../test/mocks/mock_feed_fetcher.go -package mocks github.com/jcrbcn/rss2bsky/logic IFeedFetcher

// IFeedFetcher retrieves and parses the configured RSS/Atom feed.
type IFeedFetcher interface {
	Fetch(ctx context.Context, feedUrl string) (*gofeed.Feed, error)
}

type feedFetcher struct {
	logger    shared.ILogger
	userAgent shared.IUserAgent
}

func NewFeedFetcher(logger shared.ILogger, userAgent shared.IUserAgent) IFeedFetcher {
	return &feedFetcher{logger: logger, userAgent: userAgent}
}

func (ff *feedFetcher) Fetch(ctx context.Context, feedUrl string) (*gofeed.Feed, error) {

	var req *http.Request
	var err error
	if req, err = http.NewRequestWithContext(ctx, http.MethodGet, feedUrl, nil); err != nil {
		return nil, err
	}
	ff.userAgent.AddUserAgent(req)

	client := http.Client{}
	client.Timeout = time.Second * feedTimeoutSec
	var resp *http.Response
	if resp, err = client.Do(req); err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %v", resp.StatusCode)
	}

	fp := gofeed.NewParser()
	return fp.Parse(resp.Body)
}
