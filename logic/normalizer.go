package logic

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
	"github.com/spaolacci/murmur3"
)

// FeedItem is one feed entry in canonical form. Immutable once built;
// discarded after the run.
type FeedItem struct {
	GuidHash    int64
	Title       string
	Body        string
	Link        string
	PublishedAt time.Time
	Categories  []string
}

// NormalizeItem converts a parsed RSS/Atom entry into a FeedItem. A missing
// title is fine; a missing timestamp is not, because the item could never be
// ordered against the dedup cutoff.
func NormalizeItem(itm *gofeed.Item) (*FeedItem, error) {
	postTime := itemTime(itm)
	if postTime.IsZero() {
		return nil, fmt.Errorf("%s: %w", itm.Link, ErrMissingTimestamp)
	}
	var categories []string
	for _, cat := range itm.Categories {
		cat = strings.TrimSpace(cat)
		if cat != "" {
			categories = append(categories, cat)
		}
	}
	return &FeedItem{
		GuidHash:    int64(getItemHash(itm)),
		Title:       stripHtml(itm.Title),
		Body:        stripHtml(itm.Description),
		Link:        itm.Link,
		PublishedAt: postTime,
		Categories:  categories,
	}, nil
}

func itemTime(itm *gofeed.Item) time.Time {
	var t time.Time
	if itm.PublishedParsed != nil {
		t = *itm.PublishedParsed
	}
	if itm.UpdatedParsed != nil && itm.UpdatedParsed.After(t) {
		t = *itm.UpdatedParsed
	}
	return t
}

func getItemHash(itm *gofeed.Item) uint {
	str := itm.GUID + "\t" + itm.Link
	hasher := murmur3.New32()
	_, _ = hasher.Write([]byte(str))
	return uint(hasher.Sum32())
}

func stripHtml(htm string) string {
	p := bluemonday.StrictPolicy()
	plain := p.Sanitize(htm)
	plain = html.UnescapeString(plain)
	plain = strings.TrimSpace(plain)
	return plain
}
