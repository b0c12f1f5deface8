package test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/jcrbcn/rss2bsky/dto"
	"github.com/jcrbcn/rss2bsky/logic"
	"github.com/jcrbcn/rss2bsky/shared"
	"github.com/jcrbcn/rss2bsky/test/mocks"
)

type publisherHarness struct {
	cfg            *shared.Config
	mockClient     *mocks.MockIBskyClient
	mockCards      *mocks.MockICardBuilder
	mockTranslator *mocks.MockITranslator
}

func setupPublisherTest(t *testing.T) (*gomock.Controller, *publisherHarness, logic.IPublisher) {
	ctrl := gomock.NewController(t)
	h := &publisherHarness{
		cfg:            &shared.Config{},
		mockClient:     mocks.NewMockIBskyClient(ctrl),
		mockCards:      mocks.NewMockICardBuilder(ctrl),
		mockTranslator: mocks.NewMockITranslator(ctrl),
	}
	pub := logic.NewPublisher(h.cfg, quietLogger(), h.mockClient, h.mockCards,
		h.mockTranslator, logic.NewMetrics())
	return ctrl, h, pub
}

func composedFor(itm *logic.FeedItem) *logic.ComposedPost {
	return &logic.ComposedPost{
		Text:        itm.Title,
		Facets:      logic.ScanFacets(itm.Title),
		Item:        itm,
		LinkForPost: itm.Link,
	}
}

func Test_Publish_External_Embed(t *testing.T) {
	ctrl, h, pub := setupPublisherTest(t)
	defer ctrl.Finish()

	itm := feedItemAt("https://example.com/futbol/derbi", "Derbi win", time.Now().UTC())
	card := &logic.LinkCard{
		Title:       "Derbi win, full report",
		Description: "Three goals and a clean sheet.",
		ImageUrl:    "https://example.com/img.jpg",
		ImageBytes:  []byte("jpeg-bytes"),
		ImageMime:   "image/jpeg",
		SourceUrl:   itm.Link,
	}
	blob := &dto.BlobRef{Type: "blob", MimeType: "image/jpeg", Size: 10}

	h.mockCards.EXPECT().BuildCard(gomock.Any(), gomock.Eq(itm.Link)).Return(card).Times(1)
	h.mockClient.EXPECT().
		UploadBlob(gomock.Any(), gomock.Eq(card.ImageBytes), gomock.Eq("image/jpeg")).
		Return(blob, nil).Times(1)

	var got *dto.PostRecord
	h.mockClient.EXPECT().CreatePost(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *dto.PostRecord) (*dto.CreateRecordResponse, error) {
			got = rec
			return &dto.CreateRecordResponse{Uri: "at://did/app.bsky.feed.post/abc"}, nil
		}).Times(1)

	report, err := pub.PublishAll(context.Background(), []*logic.ComposedPost{composedFor(itm)})
	assert.Nil(t, err)
	assert.Equal(t, 1, report.Published)
	assert.Equal(t, 0, report.Failed)

	assert.Equal(t, dto.TypePostRecord, got.Type)
	assert.Equal(t, "Derbi win", got.Text)
	embed, ok := got.Embed.(*dto.ExternalEmbed)
	assert.True(t, ok)
	assert.Equal(t, dto.TypeExternalEmbed, embed.Type)
	assert.Equal(t, itm.Link, embed.External.Uri)
	assert.Equal(t, card.Title, embed.External.Title)
	assert.Equal(t, card.Description, embed.External.Description)
	assert.Equal(t, blob, embed.External.Thumb)
	_, err = time.Parse(time.RFC3339, got.CreatedAt)
	assert.Nil(t, err)
}

func Test_Publish_Image_Only_Fallback(t *testing.T) {
	ctrl, h, pub := setupPublisherTest(t)
	defer ctrl.Finish()

	itm := feedItemAt("https://example.com/futbol/foto", "Photo of the day", time.Now().UTC())
	card := &logic.LinkCard{
		ImageUrl:   "https://example.com/img.jpg",
		ImageBytes: []byte("jpeg-bytes"),
		ImageMime:  "image/jpeg",
		SourceUrl:  itm.Link,
	}
	blob := &dto.BlobRef{Type: "blob", MimeType: "image/jpeg", Size: 10}

	h.mockCards.EXPECT().BuildCard(gomock.Any(), gomock.Any()).Return(card).Times(1)
	h.mockClient.EXPECT().UploadBlob(gomock.Any(), gomock.Any(), gomock.Any()).Return(blob, nil).Times(1)

	var got *dto.PostRecord
	h.mockClient.EXPECT().CreatePost(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *dto.PostRecord) (*dto.CreateRecordResponse, error) {
			got = rec
			return &dto.CreateRecordResponse{}, nil
		}).Times(1)

	report, err := pub.PublishAll(context.Background(), []*logic.ComposedPost{composedFor(itm)})
	assert.Nil(t, err)
	assert.Equal(t, 1, report.Published)

	embed, ok := got.Embed.(*dto.ImagesEmbed)
	assert.True(t, ok)
	assert.Len(t, embed.Images, 1)
	assert.Equal(t, "Photo of the day", embed.Images[0].Alt)
	assert.Equal(t, blob, embed.Images[0].Image)

	// Without a card there is nothing to click, so the link moves into the text
	assert.Equal(t, "Photo of the day\n"+itm.Link, got.Text)
	assert.Len(t, got.Facets, 1)
	f := got.Facets[0]
	assert.Equal(t, dto.TypeFacetLink, f.Features[0].Type)
	assert.Equal(t, itm.Link, f.Features[0].Uri)
	assert.Equal(t, strings.Index(got.Text, itm.Link), f.Index.ByteStart)
	assert.Equal(t, len(got.Text), f.Index.ByteEnd)
}

func Test_Publish_No_Card(t *testing.T) {
	ctrl, h, pub := setupPublisherTest(t)
	defer ctrl.Finish()

	itm := feedItemAt("https://example.com/futbol/texto", "Plain item", time.Now().UTC())
	h.mockCards.EXPECT().BuildCard(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	var got *dto.PostRecord
	h.mockClient.EXPECT().CreatePost(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *dto.PostRecord) (*dto.CreateRecordResponse, error) {
			got = rec
			return &dto.CreateRecordResponse{}, nil
		}).Times(1)

	report, err := pub.PublishAll(context.Background(), []*logic.ComposedPost{composedFor(itm)})
	assert.Nil(t, err)
	assert.Equal(t, 1, report.Published)
	assert.Nil(t, got.Embed)
	assert.Equal(t, "Plain item", got.Text)
}

func Test_Publish_Transient_Failure_Continues(t *testing.T) {
	ctrl, h, pub := setupPublisherTest(t)
	defer ctrl.Finish()

	now := time.Now().UTC()
	posts := []*logic.ComposedPost{
		composedFor(feedItemAt("https://example.com/a", "First", now)),
		composedFor(feedItemAt("https://example.com/b", "Second", now)),
	}
	h.mockCards.EXPECT().BuildCard(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	gomock.InOrder(
		h.mockClient.EXPECT().CreatePost(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("502 from pds")),
		h.mockClient.EXPECT().CreatePost(gomock.Any(), gomock.Any()).
			Return(&dto.CreateRecordResponse{}, nil),
	)

	report, err := pub.PublishAll(context.Background(), posts)
	assert.Nil(t, err)
	assert.Equal(t, 2, report.Selected)
	assert.Equal(t, 1, report.Published)
	assert.Equal(t, 1, report.Failed)
}

func Test_Publish_Auth_Failure_Aborts(t *testing.T) {
	ctrl, h, pub := setupPublisherTest(t)
	defer ctrl.Finish()

	now := time.Now().UTC()
	posts := []*logic.ComposedPost{
		composedFor(feedItemAt("https://example.com/a", "First", now)),
		composedFor(feedItemAt("https://example.com/b", "Second", now)),
	}
	h.mockCards.EXPECT().BuildCard(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	h.mockClient.EXPECT().CreatePost(gomock.Any(), gomock.Any()).
		Return(nil, logic.ErrAuthFailed).Times(1)

	report, err := pub.PublishAll(context.Background(), posts)
	assert.True(t, errors.Is(err, logic.ErrAuthFailed))
	assert.Equal(t, 0, report.Published)
	assert.Equal(t, 2, report.Failed)
}

func Test_Publish_Dry_Run(t *testing.T) {
	ctrl, h, pub := setupPublisherTest(t)
	defer ctrl.Finish()
	h.cfg.DryRun = true

	itm := feedItemAt("https://example.com/futbol/seco", "Dry item", time.Now().UTC())
	card := &logic.LinkCard{Title: "Title", ImageBytes: []byte("img"), ImageMime: "image/png"}
	h.mockCards.EXPECT().BuildCard(gomock.Any(), gomock.Any()).Return(card).Times(1)
	// No UploadBlob, no CreatePost

	report, err := pub.PublishAll(context.Background(), []*logic.ComposedPost{composedFor(itm)})
	assert.Nil(t, err)
	assert.Equal(t, 1, report.Published)
}

func Test_Publish_Translates_Card_Description(t *testing.T) {
	ctrl, h, pub := setupPublisherTest(t)
	defer ctrl.Finish()
	h.cfg.TranslateSource = "auto"
	h.cfg.TranslateTarget = "en"

	itm := feedItemAt("https://example.com/futbol/cronica", "Crónica", time.Now().UTC())
	card := &logic.LinkCard{Title: "Crónica del partido", Description: "Tres goles y portería a cero."}
	h.mockCards.EXPECT().BuildCard(gomock.Any(), gomock.Any()).Return(card).Times(1)
	h.mockTranslator.EXPECT().
		Translate(gomock.Any(), gomock.Eq("Tres goles y portería a cero."), gomock.Eq("auto"), gomock.Eq("en")).
		Return("Three goals and a clean sheet.", nil).Times(1)

	var got *dto.PostRecord
	h.mockClient.EXPECT().CreatePost(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *dto.PostRecord) (*dto.CreateRecordResponse, error) {
			got = rec
			return &dto.CreateRecordResponse{}, nil
		}).Times(1)

	post := composedFor(itm)
	post.TranslatedTitle = "Match report"
	report, err := pub.PublishAll(context.Background(), []*logic.ComposedPost{post})
	assert.Nil(t, err)
	assert.Equal(t, 1, report.Published)

	embed := got.Embed.(*dto.ExternalEmbed)
	assert.Equal(t, "Three goals and a clean sheet.", embed.External.Description)
	// The translated title wins over the card title
	assert.Equal(t, "Match report", embed.External.Title)
}
