package logic

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/jcrbcn/rss2bsky/dto"
	"github.com/jcrbcn/rss2bsky/shared"
)

// RunReport is the per-run outcome summary.
type RunReport struct {
	Selected  int
	Published int
	Failed    int
}

// IPublisher submits composed posts, strictly sequentially and oldest
// first. Each publish changes what the timeline cursor would report, so
// there is no fan-out here.
type IPublisher interface {
	PublishAll(ctx context.Context, posts []*ComposedPost) (*RunReport, error)
}

type publisher struct {
	cfg        *shared.Config
	logger     shared.ILogger
	client     IBskyClient
	cards      ICardBuilder
	translator ITranslator
	metrics    IMetrics
}

func NewPublisher(
	cfg *shared.Config,
	logger shared.ILogger,
	client IBskyClient,
	cards ICardBuilder,
	translator ITranslator,
	metrics IMetrics,
) IPublisher {
	return &publisher{
		cfg:        cfg,
		logger:     logger,
		client:     client,
		cards:      cards,
		translator: translator,
		metrics:    metrics,
	}
}

func (p *publisher) PublishAll(ctx context.Context, posts []*ComposedPost) (*RunReport, error) {

	total := len(posts)
	report := &RunReport{Selected: total}
	p.logger.Infof("New items to post: %d", total)

	// Optionally spread the batch over a time window so a burst of feed
	// items does not flood followers' timelines all at once.
	var limiter *rate.Limiter
	if p.cfg.SpreadSeconds > 0 && total > 1 {
		interval := time.Duration(float64(p.cfg.SpreadSeconds) / float64(total) * float64(time.Second))
		p.logger.Infof("Spreading posts over %d seconds (%v between posts)", p.cfg.SpreadSeconds, interval)
		limiter = rate.NewLimiter(rate.Every(interval), 1)
		limiter.Allow()
	}

	for ix, post := range posts {
		if err := p.publishOne(ctx, post); err != nil {
			if isAuthError(err) {
				// Every further attempt would fail the same way
				p.metrics.PublishFailure("auth")
				report.Failed += total - ix
				return report, err
			}
			p.logger.Errorf("Failed to post %s: %v", post.Item.Link, err)
			p.metrics.PublishFailure("transient")
			report.Failed++
		} else {
			report.Published++
		}

		if limiter != nil && ix < total-1 {
			if err := limiter.Wait(ctx); err != nil {
				return report, err
			}
		}
	}
	return report, nil
}

func (p *publisher) publishOne(ctx context.Context, post *ComposedPost) error {

	embed, text, facets := p.buildEmbed(ctx, post)

	if p.cfg.DryRun {
		p.logger.Infof("Dry run: skipping post %s (hash %d)", post.Item.Link, post.Item.GuidHash)
		return nil
	}

	record := &dto.PostRecord{
		Type:      dto.TypePostRecord,
		Text:      text,
		Facets:    facetsToDto(facets),
		Embed:     embed,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := p.client.CreatePost(ctx, record); err != nil {
		return err
	}
	p.metrics.PostPublished()
	p.logger.Infof("Sent post %s", post.Item.Link)
	return nil
}

// buildEmbed assembles the best embed the fetched metadata allows: a full
// external card, a bare image when the page had a preview image but no
// usable text, or nothing. The image-only fallback appends the link to the
// post text, since without a card the reader has nothing to click.
func (p *publisher) buildEmbed(ctx context.Context, post *ComposedPost) (interface{}, string, []Facet) {

	text, facets := post.Text, post.Facets

	card := p.cards.BuildCard(ctx, post.Item.Link)
	if card == nil {
		return nil, text, facets
	}

	var thumb *dto.BlobRef
	if len(card.ImageBytes) > 0 && !p.cfg.DryRun {
		blob, err := p.client.UploadBlob(ctx, card.ImageBytes, card.ImageMime)
		if err != nil {
			p.logger.Warnf("Could not upload preview image for %s: %v", post.Item.Link, err)
		} else {
			thumb = blob
		}
	}

	if card.Title != "" || card.Description != "" {
		description := shared.TrimDescription(card.Description)
		if p.cfg.TranslateTarget != "" && description != "" {
			translated, err := p.translator.Translate(ctx, description, p.cfg.TranslateSource, p.cfg.TranslateTarget)
			if err != nil {
				p.logger.Warnf("Could not translate card description for %s: %v", post.Item.Link, err)
				p.metrics.TranslationFailure()
			} else {
				description = translated
			}
		}
		embed := &dto.ExternalEmbed{
			Type: dto.TypeExternalEmbed,
			External: dto.ExternalProps{
				Uri:         post.LinkForPost,
				Title:       firstNonEmpty(post.TranslatedTitle, card.Title, post.Item.Title, post.Item.Link),
				Description: description,
				Thumb:       thumb,
			},
		}
		return embed, text, facets
	}

	if thumb != nil {
		alt := firstNonEmpty(post.TranslatedTitle, post.Item.Title, card.Title, "Preview image")
		alt = shared.TruncateWithEllipsis(alt, shared.MaxDescriptionLen)
		embed := &dto.ImagesEmbed{
			Type:   dto.TypeImagesEmbed,
			Images: []dto.EmbedImage{{Alt: alt, Image: thumb}},
		}
		text = post.Text + "\n" + post.LinkForPost
		return embed, text, ScanFacets(text)
	}

	return nil, text, facets
}

func facetsToDto(facets []Facet) []dto.Facet {
	var res []dto.Facet
	for _, f := range facets {
		feature := dto.FacetFeature{}
		switch f.Kind {
		case FacetLink:
			feature.Type = dto.TypeFacetLink
			feature.Uri = f.Target
		case FacetTag:
			feature.Type = dto.TypeFacetTag
			feature.Tag = f.Target
		}
		res = append(res, dto.Facet{
			Index:    dto.ByteSlice{ByteStart: f.ByteStart, ByteEnd: f.ByteEnd},
			Features: []dto.FacetFeature{feature},
		})
	}
	return res
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
