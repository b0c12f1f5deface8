package logic

import (
	"context"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jcrbcn/rss2bsky/shared"
)

type FacetKind int

const (
	FacetLink FacetKind = iota
	FacetTag
)

// Facet marks a byte range of the display text as a link or hashtag.
// Offsets address the UTF-8 encoding of the text; the AT Protocol's span
// addressing is byte-based, so a multi-byte rune before a match counts as
// its encoded length.
type Facet struct {
	ByteStart int
	ByteEnd   int
	Kind      FacetKind
	Target    string
}

// ComposedPost is a feed item rendered into postable form, minus the embed,
// which the publisher attaches.
type ComposedPost struct {
	Text            string
	Facets          []Facet
	Item            *FeedItem
	LinkForPost     string
	TranslatedTitle string
}

// IComposer renders a feed item into display text plus facets, applying
// category templates and optional translation.
type IComposer interface {
	Compose(ctx context.Context, itm *FeedItem) *ComposedPost
}

type composer struct {
	cfg        *shared.Config
	logger     shared.ILogger
	translator ITranslator
	metrics    IMetrics
	formats    []shared.CategoryFormat
}

func NewComposer(cfg *shared.Config, logger shared.ILogger, translator ITranslator, metrics IMetrics) IComposer {
	formats, err := shared.LoadCategoryFormats(cfg.CategoryFormatFile)
	if err != nil {
		logger.Warnf("Could not load category format file %s: %v", cfg.CategoryFormatFile, err)
	}
	return &composer{
		cfg:        cfg,
		logger:     logger,
		translator: translator,
		metrics:    metrics,
		formats:    formats,
	}
}

func (c *composer) Compose(ctx context.Context, itm *FeedItem) *ComposedPost {

	text := formatPostText(itm.Title, itm.Categories, c.formats)
	linkForPost := itm.Link
	translatedTitle := ""

	if c.cfg.TranslateTarget != "" {
		tt, err := c.translator.Translate(ctx, itm.Title, c.cfg.TranslateSource, c.cfg.TranslateTarget)
		if err != nil {
			// Degrade to the untranslated text; a missing translation is
			// never a reason to drop the post.
			c.logger.Warnf("Translation failed for %s: %v", itm.Link, err)
			c.metrics.TranslationFailure()
		} else {
			translatedTitle = tt
			text = formatPostText(tt, itm.Categories, c.formats)
			text = text + "\n\n" + c.cfg.TranslationPretext + "\n" + itm.Link
			linkForPost = GoogleTranslateUrl(itm.Link, c.cfg.TranslateTarget)
		}
	}

	return &ComposedPost{
		Text:            text,
		Facets:          ScanFacets(text),
		Item:            itm,
		LinkForPost:     linkForPost,
		TranslatedTitle: translatedTitle,
	}
}

// formatPostText renders the display text through the first category rule
// matching one of the item's categories; without a match the title passes
// through untouched.
func formatPostText(title string, categories []string, formats []shared.CategoryFormat) string {
	for _, f := range formats {
		for _, cat := range categories {
			if cat == f.Category {
				text := strings.ReplaceAll(f.Template, "{title}", title)
				text = strings.ReplaceAll(text, "{category}", cat)
				return text
			}
		}
	}
	return title
}

var (
	reUrl = regexp.MustCompile(`https?://\S+`)
	reTag = regexp.MustCompile(`#[\p{L}\p{N}_]+`)
)

// ScanFacets finds link and hashtag facets in the final display text,
// scanning line by line, left to right. A link facet is a line consisting
// solely of a bare URL; a tag facet is a #word token at a token boundary.
// Hashtags inside any URL occurrence are never tagged, and overlapping
// candidates resolve earliest-start-wins.
func ScanFacets(text string) []Facet {

	var facets []Facet
	lineStart := 0
	for _, line := range strings.Split(text, "\n") {

		urlLocs := reUrl.FindAllStringIndex(line, -1)
		if len(urlLocs) == 1 {
			loc := urlLocs[0]
			urlStr := line[loc[0]:loc[1]]
			if strings.TrimSpace(line) == urlStr {
				facets = append(facets, Facet{
					ByteStart: lineStart + loc[0],
					ByteEnd:   lineStart + loc[1],
					Kind:      FacetLink,
					Target:    urlStr,
				})
			}
		}

		for _, loc := range reTag.FindAllStringIndex(line, -1) {
			if insideAny(loc, urlLocs) || !atTokenBoundary(line, loc[0]) {
				continue
			}
			facets = append(facets, Facet{
				ByteStart: lineStart + loc[0],
				ByteEnd:   lineStart + loc[1],
				Kind:      FacetTag,
				Target:    line[loc[0]+1 : loc[1]],
			})
		}

		lineStart += len(line) + 1
	}

	sort.Slice(facets, func(i, j int) bool {
		return facets[i].ByteStart < facets[j].ByteStart
	})

	// Earliest-start-wins on any remaining overlap
	var res []Facet
	prevEnd := 0
	for _, f := range facets {
		if f.ByteStart < prevEnd {
			continue
		}
		res = append(res, f)
		prevEnd = f.ByteEnd
	}
	return res
}

func insideAny(loc []int, spans [][]int) bool {
	for _, s := range spans {
		if loc[0] >= s[0] && loc[0] < s[1] {
			return true
		}
	}
	return false
}

// A hashtag only counts when the # starts a token: preceded by nothing, or
// by a rune that cannot be part of a tag.
func atTokenBoundary(line string, ix int) bool {
	if ix == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(line[:ix])
	if r == '#' || r == '_' {
		return false
	}
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// GoogleTranslateUrl rewrites a page URL into its Google Translate proxy
// form (host dots become dashes under translate.goog) so the card link
// opens already translated.
func GoogleTranslateUrl(rawUrl, targetLang string) string {
	if rawUrl == "" || targetLang == "" {
		return rawUrl
	}
	parsedUrl, err := url.Parse(rawUrl)
	if err != nil || parsedUrl.Host == "" {
		return rawUrl
	}
	query := parsedUrl.Query()
	query.Set("_x_tr_sl", "auto")
	query.Set("_x_tr_tl", targetLang)
	query.Set("_x_tr_hl", targetLang)
	query.Set("_x_tr_pto", "wapp")
	proxied := url.URL{
		Scheme:   "https",
		Host:     strings.ReplaceAll(parsedUrl.Host, ".", "-") + ".translate.goog",
		Path:     parsedUrl.Path,
		RawQuery: query.Encode(),
		Fragment: parsedUrl.Fragment,
	}
	return proxied.String()
}
