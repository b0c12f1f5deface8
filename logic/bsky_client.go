package logic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/jcrbcn/rss2bsky/dto"
	"github.com/jcrbcn/rss2bsky/shared"
)

//go:generate mockgen --build_flags=--mod=mod -destination ../test/mocks/mock_bsky_client.go -package mocks github.com/jcrbcn/rss2bsky/logic IBskyClient

const defaultPds = "https://bsky.social"

const (
	xrpcTimeoutSec         = 30
	loginBackoffInitialSec = 60
	loginBackoffMaxSec     = 600
	maxLoginAttempts       = 10
)

// IBskyClient is the minimal AT Protocol surface the pipeline needs:
// session login, reading the account's own timeline, uploading link card
// thumbnails, and creating posts.
type IBskyClient interface {
	Login(ctx context.Context) error
	LoginWithBackoff(ctx context.Context) error
	Did() string
	GetAuthorFeed(ctx context.Context, actor, cursor string, limit int) (*dto.AuthorFeedResponse, error)
	UploadBlob(ctx context.Context, data []byte, mimeType string) (*dto.BlobRef, error)
	CreatePost(ctx context.Context, record *dto.PostRecord) (*dto.CreateRecordResponse, error)
}

type bskyClient struct {
	cfg        *shared.Config
	logger     shared.ILogger
	userAgent  shared.IUserAgent
	pds        string
	httpClient *http.Client

	// populated after Login
	muSession sync.Mutex
	accessJwt string
	did       string
}

func NewBskyClient(cfg *shared.Config, logger shared.ILogger, userAgent shared.IUserAgent) IBskyClient {
	pds := cfg.Pds
	if pds == "" {
		pds = defaultPds
	}
	return &bskyClient{
		cfg:       cfg,
		logger:    logger,
		userAgent: userAgent,
		pds:       pds,
		httpClient: &http.Client{
			Timeout: xrpcTimeoutSec * time.Second,
		},
	}
}

// Login authenticates with the PDS and stores the session token. Use an App
// Password, not the account password.
func (c *bskyClient) Login(ctx context.Context) error {
	body := dto.CreateSessionRequest{
		Identifier: c.cfg.Secrets.BskyIdentifier,
		Password:   c.cfg.Secrets.BskyAppPassword,
	}
	var resp dto.CreateSessionResponse
	if err := c.post(ctx, "/xrpc/com.atproto.server.createSession", body, &resp); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	c.muSession.Lock()
	c.accessJwt = resp.AccessJwt
	c.did = resp.Did
	c.muSession.Unlock()
	return nil
}

// LoginWithBackoff retries transient login failures with a growing delay,
// the way the bot behaves when the PDS is briefly down at the top of a
// scheduled run. Auth failures are not retried.
func (c *bskyClient) LoginWithBackoff(ctx context.Context) error {
	backoff := loginBackoffInitialSec
	var err error
	for attempt := 1; attempt <= maxLoginAttempts; attempt++ {
		err = c.Login(ctx)
		if err == nil {
			return nil
		}
		if isAuthError(err) || attempt == maxLoginAttempts {
			return err
		}
		c.logger.Warnf("Login attempt %d failed, retrying in %d seconds: %v", attempt, backoff, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(backoff) * time.Second):
		}
		backoff = backoff + loginBackoffInitialSec
		if backoff > loginBackoffMaxSec {
			backoff = loginBackoffMaxSec
		}
	}
	return err
}

// Did returns the authenticated account's DID. Only valid after Login.
func (c *bskyClient) Did() string {
	c.muSession.Lock()
	defer c.muSession.Unlock()
	return c.did
}

func (c *bskyClient) GetAuthorFeed(ctx context.Context, actor, cursor string, limit int) (*dto.AuthorFeedResponse, error) {
	params := url.Values{}
	params.Set("actor", actor)
	params.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		params.Set("cursor", cursor)
	}
	var resp dto.AuthorFeedResponse
	if err := c.get(ctx, "/xrpc/app.bsky.feed.getAuthorFeed?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("get author feed: %w", err)
	}
	return &resp, nil
}

// UploadBlob uploads raw image bytes and returns the reference to embed.
// The PDS garbage-collects blobs not referenced by a record soon after.
func (c *bskyClient) UploadBlob(ctx context.Context, data []byte, mimeType string) (*dto.BlobRef, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.pds+"/xrpc/com.atproto.repo.uploadBlob", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mimeType)
	c.addAuth(req)

	respBody, err := c.doRequest(req)
	if err != nil {
		return nil, err
	}
	var result dto.UploadBlobResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &result.Blob, nil
}

func (c *bskyClient) CreatePost(ctx context.Context, record *dto.PostRecord) (*dto.CreateRecordResponse, error) {
	body := dto.CreateRecordRequest{
		Repo:       c.Did(),
		Collection: dto.TypePostRecord,
		Record:     record,
	}
	var resp dto.CreateRecordResponse
	if err := c.post(ctx, "/xrpc/com.atproto.repo.createRecord", body, &resp); err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}
	return &resp, nil
}

func (c *bskyClient) post(ctx context.Context, path string, body any, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.pds+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.addAuth(req)
	return c.roundTrip(req, result)
}

func (c *bskyClient) get(ctx context.Context, pathAndQuery string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pds+pathAndQuery, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.addAuth(req)
	return c.roundTrip(req, result)
}

func (c *bskyClient) roundTrip(req *http.Request, result any) error {
	respBody, err := c.doRequest(req)
	if err != nil {
		return err
	}
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

func (c *bskyClient) doRequest(req *http.Request) ([]byte, error) {
	c.userAgent.AddUserAgent(req)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var xe dto.XrpcError
		_ = json.Unmarshal(respBody, &xe)
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, fmt.Errorf("%w: status %d: %s %s", ErrAuthFailed, resp.StatusCode, xe.Error, xe.Message)
		}
		return nil, fmt.Errorf("API error (status %d): %s %s", resp.StatusCode, xe.Error, xe.Message)
	}
	return respBody, nil
}

func (c *bskyClient) addAuth(req *http.Request) {
	c.muSession.Lock()
	jwt := c.accessJwt
	c.muSession.Unlock()
	if jwt != "" {
		req.Header.Set("Authorization", "Bearer "+jwt)
	}
}
