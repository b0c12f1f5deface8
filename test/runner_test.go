package test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/jcrbcn/rss2bsky/dto"
	"github.com/jcrbcn/rss2bsky/logic"
	"github.com/jcrbcn/rss2bsky/shared"
	"github.com/jcrbcn/rss2bsky/test/mocks"
)

type runnerHarness struct {
	cfg            *shared.Config
	mockClient     *mocks.MockIBskyClient
	mockFetcher    *mocks.MockIFeedFetcher
	mockCards      *mocks.MockICardBuilder
	mockTranslator *mocks.MockITranslator
}

// Wires a runner with a real cursor, composer and publisher over mocked
// transports, so a test drives the whole pipeline end to end.
func setupRunnerTest(t *testing.T, cfg *shared.Config) (*gomock.Controller, *runnerHarness, logic.IRunner) {
	ctrl := gomock.NewController(t)
	if cfg == nil {
		cfg = &shared.Config{}
	}
	cfg.Handle = testHandle
	cfg.FeedUrl = "https://example.com/rss"
	cfg.Once = true
	h := &runnerHarness{
		cfg:            cfg,
		mockClient:     mocks.NewMockIBskyClient(ctrl),
		mockFetcher:    mocks.NewMockIFeedFetcher(ctrl),
		mockCards:      mocks.NewMockICardBuilder(ctrl),
		mockTranslator: mocks.NewMockITranslator(ctrl),
	}
	logger := quietLogger()
	metrics := logic.NewMetrics()
	cursor := logic.NewTimelineCursor(logger, h.mockClient)
	composer := logic.NewComposer(h.cfg, logger, h.mockTranslator, metrics)
	publisher := logic.NewPublisher(h.cfg, logger, h.mockClient, h.mockCards, h.mockTranslator, metrics)
	runner := logic.NewRunner(h.cfg, logger, h.mockClient, h.mockFetcher, cursor, composer, publisher, metrics)
	return ctrl, h, runner
}

func gofeedItem(guid, link, title string, at time.Time) *gofeed.Item {
	return &gofeed.Item{GUID: guid, Link: link, Title: title, PublishedParsed: &at}
}

func Test_Run_Nothing_New_Posts_Nothing(t *testing.T) {
	ctrl, h, runner := setupRunnerTest(t, nil)
	defer ctrl.Finish()

	cutoffTime := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	h.mockClient.EXPECT().LoginWithBackoff(gomock.Any()).Return(nil).Times(1)
	h.mockClient.EXPECT().GetAuthorFeed(gomock.Any(), gomock.Eq(testHandle), gomock.Any(), gomock.Any()).
		Return(&dto.AuthorFeedResponse{Feed: []dto.FeedViewPost{
			topLevelPost("at://did/app.bsky.feed.post/latest", cutoffTime.Format(time.RFC3339)),
		}}, nil).Times(1)
	h.mockFetcher.EXPECT().Fetch(gomock.Any(), gomock.Eq(h.cfg.FeedUrl)).
		Return(&gofeed.Feed{Items: []*gofeed.Item{
			gofeedItem("g1", "https://example.com/old", "Old item", cutoffTime.Add(-time.Hour)),
			gofeedItem("g2", "https://example.com/at-cutoff", "Boundary item", cutoffTime),
		}}, nil).Times(1)
	// No CreatePost, no BuildCard: a second run over seen items is a no-op

	err := runner.Run(context.Background())
	assert.Nil(t, err)
}

func Test_Run_Publishes_New_Items_In_Order(t *testing.T) {
	ctrl, h, runner := setupRunnerTest(t, nil)
	defer ctrl.Finish()

	cutoffTime := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	h.mockClient.EXPECT().LoginWithBackoff(gomock.Any()).Return(nil).Times(1)
	h.mockClient.EXPECT().GetAuthorFeed(gomock.Any(), gomock.Eq(testHandle), gomock.Any(), gomock.Any()).
		Return(&dto.AuthorFeedResponse{Feed: []dto.FeedViewPost{
			topLevelPost("at://did/app.bsky.feed.post/latest", cutoffTime.Format(time.RFC3339)),
		}}, nil).Times(1)
	h.mockFetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).
		Return(&gofeed.Feed{Items: []*gofeed.Item{
			// Feed lists newest first; posting must go oldest first
			gofeedItem("g3", "https://example.com/newest", "Newest", cutoffTime.Add(2*time.Hour)),
			gofeedItem("g2", "https://example.com/newer", "Newer", cutoffTime.Add(time.Hour)),
			gofeedItem("g1", "https://example.com/old", "Old", cutoffTime.Add(-time.Hour)),
		}}, nil).Times(1)
	h.mockCards.EXPECT().BuildCard(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	var sentTexts []string
	h.mockClient.EXPECT().CreatePost(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *dto.PostRecord) (*dto.CreateRecordResponse, error) {
			sentTexts = append(sentTexts, rec.Text)
			return &dto.CreateRecordResponse{}, nil
		}).Times(2)

	err := runner.Run(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, []string{"Newer", "Newest"}, sentTexts)
}

func Test_Run_Skips_Unorderable_Items(t *testing.T) {
	ctrl, h, runner := setupRunnerTest(t, nil)
	defer ctrl.Finish()

	h.mockClient.EXPECT().LoginWithBackoff(gomock.Any()).Return(nil).Times(1)
	h.mockClient.EXPECT().GetAuthorFeed(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&dto.AuthorFeedResponse{}, nil).Times(1)
	h.mockFetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).
		Return(&gofeed.Feed{Items: []*gofeed.Item{
			{GUID: "g1", Link: "https://example.com/undated", Title: "No timestamp"},
			gofeedItem("g2", "https://example.com/dated", "Dated", time.Now().UTC()),
		}}, nil).Times(1)
	h.mockCards.EXPECT().BuildCard(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	var sentTexts []string
	h.mockClient.EXPECT().CreatePost(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *dto.PostRecord) (*dto.CreateRecordResponse, error) {
			sentTexts = append(sentTexts, rec.Text)
			return &dto.CreateRecordResponse{}, nil
		}).Times(1)

	err := runner.Run(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, []string{"Dated"}, sentTexts)
}

func Test_Run_Applies_Path_Only_Filter(t *testing.T) {
	ctrl, h, runner := setupRunnerTest(t, &shared.Config{PathOnly: []string{"futbol"}})
	defer ctrl.Finish()

	now := time.Now().UTC()
	h.mockClient.EXPECT().LoginWithBackoff(gomock.Any()).Return(nil).Times(1)
	h.mockClient.EXPECT().GetAuthorFeed(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&dto.AuthorFeedResponse{}, nil).Times(1)
	h.mockFetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).
		Return(&gofeed.Feed{Items: []*gofeed.Item{
			gofeedItem("g1", "https://example.com/futbol/derbi", "Derbi", now),
			gofeedItem("g2", "https://example.com/politica/urnas", "Urnas", now),
		}}, nil).Times(1)
	h.mockCards.EXPECT().BuildCard(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	var sentTexts []string
	h.mockClient.EXPECT().CreatePost(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *dto.PostRecord) (*dto.CreateRecordResponse, error) {
			sentTexts = append(sentTexts, rec.Text)
			return &dto.CreateRecordResponse{}, nil
		}).Times(1)

	err := runner.Run(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, []string{"Derbi"}, sentTexts)
}

func Test_Run_Cutoff_Failure_Aborts(t *testing.T) {
	ctrl, h, runner := setupRunnerTest(t, nil)
	defer ctrl.Finish()

	h.mockClient.EXPECT().LoginWithBackoff(gomock.Any()).Return(nil).Times(1)
	h.mockClient.EXPECT().GetAuthorFeed(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("pds down")).Times(1)
	// Fetch never happens: without a trustworthy cutoff the whole feed
	// would get reposted

	err := runner.Run(context.Background())
	assert.True(t, errors.Is(err, logic.ErrTimelineUnavailable))
}

func Test_Run_Login_Failure_Aborts(t *testing.T) {
	ctrl, h, runner := setupRunnerTest(t, nil)
	defer ctrl.Finish()

	h.mockClient.EXPECT().LoginWithBackoff(gomock.Any()).
		Return(logic.ErrAuthFailed).Times(1)

	err := runner.Run(context.Background())
	assert.True(t, errors.Is(err, logic.ErrAuthFailed))
}
