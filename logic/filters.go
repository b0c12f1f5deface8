package logic

import (
	"net/url"
	"strings"
)

// ItemFilter is a pluggable per-item predicate applied before an item is
// selected for posting. Filters compose in order and short-circuit on the
// first rejection; a rejection is silent, not an error.
type ItemFilter interface {
	Accepts(itm *FeedItem) bool
}

// PathOnlyFilter keeps only items whose URL path sits under one of the
// configured subpaths, e.g. "futbol" matches /futbol and /futbol/....
// With no subpaths configured it accepts everything.
type PathOnlyFilter struct {
	prefixes []string
}

func NewPathOnlyFilter(prefixes []string) *PathOnlyFilter {
	return &PathOnlyFilter{prefixes: prefixes}
}

func (f *PathOnlyFilter) Accepts(itm *FeedItem) bool {
	if len(f.prefixes) == 0 {
		return true
	}
	parsedUrl, err := url.Parse(itm.Link)
	if err != nil {
		return false
	}
	itemPath := strings.TrimPrefix(parsedUrl.Path, "/")
	for _, prefix := range f.prefixes {
		if itemPath == prefix || strings.HasPrefix(itemPath, prefix+"/") {
			return true
		}
	}
	return false
}
