package dto

import "encoding/json"

// Wire entities for the handful of XRPC endpoints we talk to. Field shapes
// follow the app.bsky / com.atproto lexicons.

const (
	TypePostRecord    = "app.bsky.feed.post"
	TypeExternalEmbed = "app.bsky.embed.external"
	TypeImagesEmbed   = "app.bsky.embed.images"
	TypeFacetLink     = "app.bsky.richtext.facet#link"
	TypeFacetTag      = "app.bsky.richtext.facet#tag"
)

type CreateSessionRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type CreateSessionResponse struct {
	AccessJwt  string `json:"accessJwt"`
	RefreshJwt string `json:"refreshJwt"`
	Handle     string `json:"handle"`
	Did        string `json:"did"`
}

type XrpcError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// BlobRef is the reference returned by uploadBlob and embedded in records.
type BlobRef struct {
	Type     string   `json:"$type"`
	Ref      BlobLink `json:"ref"`
	MimeType string   `json:"mimeType"`
	Size     int      `json:"size"`
}

type BlobLink struct {
	Link string `json:"$link"`
}

type UploadBlobResponse struct {
	Blob BlobRef `json:"blob"`
}

// Facet annotates a byte range of post text as a link or hashtag.
type Facet struct {
	Index    ByteSlice      `json:"index"`
	Features []FacetFeature `json:"features"`
}

// ByteSlice addresses UTF-8 bytes of the post text, not characters.
type ByteSlice struct {
	ByteStart int `json:"byteStart"`
	ByteEnd   int `json:"byteEnd"`
}

type FacetFeature struct {
	Type string `json:"$type"`
	Uri  string `json:"uri,omitempty"`
	Tag  string `json:"tag,omitempty"`
}

type PostRecord struct {
	Type      string      `json:"$type"`
	Text      string      `json:"text"`
	Facets    []Facet     `json:"facets,omitempty"`
	Embed     interface{} `json:"embed,omitempty"`
	CreatedAt string      `json:"createdAt"`
	Langs     []string    `json:"langs,omitempty"`
}

type ExternalEmbed struct {
	Type     string        `json:"$type"`
	External ExternalProps `json:"external"`
}

type ExternalProps struct {
	Uri         string   `json:"uri"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Thumb       *BlobRef `json:"thumb,omitempty"`
}

type ImagesEmbed struct {
	Type   string       `json:"$type"`
	Images []EmbedImage `json:"images"`
}

type EmbedImage struct {
	Alt   string   `json:"alt"`
	Image *BlobRef `json:"image"`
}

type CreateRecordRequest struct {
	Repo       string      `json:"repo"`
	Collection string      `json:"collection"`
	Record     interface{} `json:"record"`
}

type CreateRecordResponse struct {
	Uri string `json:"uri"`
	Cid string `json:"cid"`
}

type AuthorFeedResponse struct {
	Cursor string         `json:"cursor"`
	Feed   []FeedViewPost `json:"feed"`
}

// FeedViewPost is one entry of getAuthorFeed. A non-null reason marks a
// repost; a non-null record.reply marks a reply.
type FeedViewPost struct {
	Post   PostView        `json:"post"`
	Reason json.RawMessage `json:"reason,omitempty"`
}

type PostView struct {
	Uri    string         `json:"uri"`
	Cid    string         `json:"cid"`
	Record PostRecordView `json:"record"`
}

type PostRecordView struct {
	CreatedAt string          `json:"createdAt"`
	Reply     json.RawMessage `json:"reply,omitempty"`
}

func (fv *FeedViewPost) IsRepost() bool {
	return rawPresent(fv.Reason)
}

func (fv *FeedViewPost) IsReply() bool {
	return rawPresent(fv.Post.Record.Reply)
}

func rawPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
