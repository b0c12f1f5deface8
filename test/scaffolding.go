package test

import (
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jcrbcn/rss2bsky/dto"
	"github.com/jcrbcn/rss2bsky/logic"
	"github.com/jcrbcn/rss2bsky/shared"
)

func quietLogger() shared.ILogger {
	return log.New(io.Discard)
}

func topLevelPost(uri, createdAt string) dto.FeedViewPost {
	return dto.FeedViewPost{
		Post: dto.PostView{
			Uri:    uri,
			Record: dto.PostRecordView{CreatedAt: createdAt},
		},
	}
}

func replyPost(uri, createdAt string) dto.FeedViewPost {
	fv := topLevelPost(uri, createdAt)
	fv.Post.Record.Reply = json.RawMessage(`{"parent":{"uri":"at://parent"}}`)
	return fv
}

func repostOf(uri, createdAt string) dto.FeedViewPost {
	fv := topLevelPost(uri, createdAt)
	fv.Reason = json.RawMessage(`{"$type":"app.bsky.feed.defs#reasonRepost"}`)
	return fv
}

func feedItemAt(link, title string, at time.Time) *logic.FeedItem {
	return &logic.FeedItem{
		GuidHash:    int64(len(link)),
		Title:       title,
		Link:        link,
		PublishedAt: at,
	}
}
