package logic

import "sort"

// SelectNew picks the items to publish: strictly newer than the cutoff
// (equality counts as already posted), accepted by every filter, ordered
// oldest first so sequential publishing leaves the timeline in natural
// reading order. The sort is stable, so items sharing a timestamp keep
// their feed order.
func SelectNew(items []*FeedItem, cutoff TimelineCutoff, filters ...ItemFilter) []*FeedItem {

	var keepers []*FeedItem
	for _, itm := range items {
		if !itm.PublishedAt.After(cutoff.Timestamp) {
			continue
		}
		if !accepted(itm, filters) {
			continue
		}
		keepers = append(keepers, itm)
	}

	sort.SliceStable(keepers, func(i, j int) bool {
		return keepers[i].PublishedAt.Before(keepers[j].PublishedAt)
	})
	return keepers
}

func accepted(itm *FeedItem, filters []ItemFilter) bool {
	for _, f := range filters {
		if !f.Accepts(itm) {
			return false
		}
	}
	return true
}
