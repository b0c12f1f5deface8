package logic

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jcrbcn/rss2bsky/shared"
)

//go:generate mockgen --build_flags=--mod=mod -destination ../test/mocks/mock_card_builder.go -package mocks github.com/jcrbcn/rss2bsky/logic ICardBuilder

const (
	cardTimeoutSec = 10
	maxImageBytes  = 1_000_000 // stay under the PDS blob limit
)

// LinkCard is the metadata behind an external-link embed. Everything about
// it is best effort: a nil card or a card without image bytes still leaves
// the post publishable.
type LinkCard struct {
	Title       string
	Description string
	ImageUrl    string
	ImageBytes  []byte
	ImageMime   string
	SourceUrl   string
}

// ICardBuilder fetches a page and harvests title, description and preview
// image for an embed. Returns nil on any failure; a link card is an
// enhancement, never a reason to block publishing.
type ICardBuilder interface {
	BuildCard(ctx context.Context, pageUrl string) *LinkCard
}

type cardBuilder struct {
	logger    shared.ILogger
	userAgent shared.IUserAgent
	metrics   IMetrics
	client    *http.Client
}

func NewCardBuilder(logger shared.ILogger, userAgent shared.IUserAgent, metrics IMetrics) ICardBuilder {
	return &cardBuilder{
		logger:    logger,
		userAgent: userAgent,
		metrics:   metrics,
		client:    &http.Client{Timeout: cardTimeoutSec * time.Second},
	}
}

func (cb *cardBuilder) BuildCard(ctx context.Context, pageUrl string) *LinkCard {

	doc, err := cb.fetchDocument(ctx, pageUrl)
	if err != nil {
		cb.logger.Warnf("Could not fetch link metadata for %s: %v", pageUrl, err)
		cb.metrics.CardFailure()
		return nil
	}

	card := &LinkCard{SourceUrl: pageUrl}
	card.Title = firstMeta(doc, `meta[property="og:title"]`)
	if card.Title == "" {
		card.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	card.Description = firstMeta(doc, `meta[property="og:description"]`)
	if card.Description == "" {
		card.Description = firstMeta(doc, `meta[name="description"]`)
	}
	card.ImageUrl = firstMeta(doc, `meta[property="og:image"]`)
	if card.ImageUrl == "" {
		card.ImageUrl = firstMeta(doc, `meta[name="twitter:image"]`)
	}

	if card.Title == "" && card.Description == "" && card.ImageUrl == "" {
		cb.logger.Infof("No link metadata for %s; skipping card", pageUrl)
		return nil
	}

	if card.ImageUrl != "" {
		// Image failure only degrades the card to text
		if err := cb.fetchImage(ctx, card); err != nil {
			cb.logger.Warnf("Could not fetch preview image %s: %v", card.ImageUrl, err)
			card.ImageBytes = nil
			card.ImageMime = ""
		}
	}

	cb.metrics.CardBuilt()
	return card
}

func (cb *cardBuilder) fetchDocument(ctx context.Context, pageUrl string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageUrl, nil)
	if err != nil {
		return nil, err
	}
	cb.userAgent.AddUserAgent(req)
	resp, err := cb.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &httpStatusError{resp.StatusCode}
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

func (cb *cardBuilder) fetchImage(ctx context.Context, card *LinkCard) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, card.ImageUrl, nil)
	if err != nil {
		return err
	}
	cb.userAgent.AddUserAgent(req)
	resp, err := cb.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &httpStatusError{resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return err
	}
	if len(data) > maxImageBytes {
		return errImageTooLarge
	}

	mime := resp.Header.Get("Content-Type")
	if ix := strings.IndexByte(mime, ';'); ix != -1 {
		mime = mime[:ix]
	}
	mime = strings.TrimSpace(mime)
	if mime == "" {
		mime = http.DetectContentType(data)
	}

	card.ImageBytes = data
	card.ImageMime = mime
	return nil
}

func firstMeta(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().AttrOr("content", ""))
}
