// Package upstream implements entity.UpstreamClient against the Phigros
// LeanCloud backend: save-envelope lookup, save-blob download with
// checksum/size validation, and profile lookup.
package upstream

import (
	"context"
	"crypto/md5" //nolint:gosec // upstream-mandated checksum algorithm, not used for security
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/liverty-music/archive-core/internal/entity"
	"github.com/liverty-music/archive-core/pkg/api"
	"github.com/liverty-music/archive-core/pkg/throttle"
	"github.com/pannpers/go-apperr/apperr"
	"github.com/pannpers/go-apperr/apperr/codes"
	"golang.org/x/sync/singleflight"
)

const (
	userAgent = "LeanCloud-CSharp-SDK/1.0.3"

	// minSaveSize is the size limit for a downloaded save blob; a blob at
	// or below it indicates a truncated or corrupted download.
	minSaveSize = 30

	// rateLimitInterval throttles requests to the upstream backend to a
	// conservative one per 100ms, regardless of how many callers ask for
	// saves concurrently.
	rateLimitInterval = 100 * time.Millisecond
)

// sessionTokenPattern matches the 25-character lowercase-alphanumeric shape
// LeanCloud session tokens use. Rejecting malformed tokens before making a
// network call avoids spending a throttle slot on a request that can only
// ever fail.
var sessionTokenPattern = regexp.MustCompile(`^[a-z0-9]{25}$`)

type gameFileMeta struct {
	Checksum string `json:"_checksum"`
}

type gameFile struct {
	URL      string       `json:"url"`
	MetaData gameFileMeta `json:"metaData"`
}

type gameSaveResult struct {
	GameFile gameFile `json:"gameFile"`
}

type gameSaveSummary struct {
	Results []gameSaveResult `json:"results"`
}

type userProfileResponse struct {
	ObjectID        string `json:"objectId"`
	Nickname        string `json:"nickname"`
	SelfIntroduction string `json:"selfIntroduction"`
}

// Client implements entity.UpstreamClient against the Phigros save backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	appID      string
	appKey     string
	throttler  *throttle.Throttler
	group      singleflight.Group
}

// NewClient creates a new upstream client against the given base URL,
// authenticating every request with appID/appKey (LeanCloud's X-LC-Id /
// X-LC-Key headers). If httpClient is nil, a new http.Client with the
// given timeout is used.
func NewClient(baseURL, appID, appKey string, timeout time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		appID:      appID,
		appKey:     appKey,
		throttler:  throttle.New(rateLimitInterval, 100),
	}
}

// SetBaseURL overrides the base URL used by the client. Intended for tests
// to point the client at an httptest server.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// Close stops the background throttler goroutine.
func (c *Client) Close() error {
	if c.throttler != nil {
		c.throttler.Close()
	}
	return nil
}

// FetchSaveEnvelope resolves a session token to its current save envelope.
func (c *Client) FetchSaveEnvelope(ctx context.Context, sessionToken string) (*entity.SaveEnvelope, error) {
	if !sessionTokenPattern.MatchString(sessionToken) {
		return nil, apperr.New(codes.InvalidArgument, "session token has an invalid shape")
	}

	// Deduplicate concurrent envelope fetches for the same token: a burst
	// of requests for one player should hit the upstream once.
	v, err, _ := c.group.Do("envelope:"+sessionToken, func() (interface{}, error) {
		return c.fetchSummary(ctx, sessionToken)
	})
	if err != nil {
		return nil, err
	}
	return v.(*entity.SaveEnvelope), nil
}

func (c *Client) fetchSummary(ctx context.Context, sessionToken string) (*entity.SaveEnvelope, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, apperr.Wrap(err, codes.Internal, "invalid upstream base url")
	}
	u = u.JoinPath("classes", "_GameSave")
	u.RawQuery = url.Values{"limit": []string{"1"}}.Encode()

	var summary gameSaveSummary
	if err := c.get(ctx, u.String(), sessionToken, &summary); err != nil {
		return nil, err
	}

	if len(summary.Results) == 0 {
		return nil, apperr.New(codes.NotFound, "no save found for this session")
	}

	file := summary.Results[0].GameFile
	if file.URL == "" {
		return nil, apperr.New(codes.DataLoss, "upstream save summary is missing a download url")
	}
	if file.MetaData.Checksum == "" {
		return nil, apperr.New(codes.DataLoss, "upstream save summary is missing a checksum")
	}

	return &entity.SaveEnvelope{URL: file.URL, Checksum: file.MetaData.Checksum}, nil
}

// FetchSaveBlob downloads the raw encrypted save bytes from the envelope's
// URL and validates its checksum and minimum size.
func (c *Client) FetchSaveBlob(ctx context.Context, envelope *entity.SaveEnvelope) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, envelope.URL, nil)
	if err != nil {
		return nil, apperr.Wrap(err, codes.Internal, "failed to create save download request")
	}

	var resp *http.Response
	err = c.throttler.Do(ctx, func() error {
		var doErr error
		resp, doErr = c.httpClient.Do(req)
		return doErr
	})
	if err := api.FromHTTP(err, resp, "save blob download failed"); err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	// A save blob can legitimately be a few megabytes; cap generously to
	// avoid an unbounded read on a misbehaving upstream.
	blob, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, apperr.Wrap(err, codes.DataLoss, "failed to read save blob")
	}

	if len(blob) <= minSaveSize {
		return nil, apperr.New(codes.DataLoss,
			fmt.Sprintf("save blob below minimum valid size: %d bytes", len(blob)))
	}

	sum := md5.Sum(blob) //nolint:gosec // matches upstream's own checksum algorithm
	actual := hex.EncodeToString(sum[:])
	if actual != envelope.Checksum {
		return nil, apperr.New(codes.DataLoss,
			fmt.Sprintf("save checksum mismatch: expected %s, got %s", envelope.Checksum, actual))
	}

	return blob, nil
}

// FetchProfile resolves a session token to the player's profile.
func (c *Client) FetchProfile(ctx context.Context, sessionToken string) (*entity.Profile, error) {
	if !sessionTokenPattern.MatchString(sessionToken) {
		return nil, apperr.New(codes.InvalidArgument, "session token has an invalid shape")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, apperr.Wrap(err, codes.Internal, "invalid upstream base url")
	}
	u = u.JoinPath("users", "me")

	var resp userProfileResponse
	if err := c.get(ctx, u.String(), sessionToken, &resp); err != nil {
		return nil, err
	}

	return &entity.Profile{
		ObjectID:  resp.ObjectID,
		Nickname:  resp.Nickname,
		SelfIntro: resp.SelfIntroduction,
	}, nil
}

// get issues a throttled, authenticated GET against the upstream backend
// and decodes the JSON response body into result.
func (c *Client) get(ctx context.Context, rawURL, sessionToken string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return apperr.Wrap(err, codes.Internal, "failed to create upstream request")
	}
	req.Header.Set("X-LC-Id", c.appID)
	req.Header.Set("X-LC-Key", c.appKey)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-LC-Session", sessionToken)

	var resp *http.Response
	err = c.throttler.Do(ctx, func() error {
		var doErr error
		resp, doErr = c.httpClient.Do(req)
		return doErr
	})

	if resp != nil && resp.StatusCode == http.StatusUnauthorized {
		_ = resp.Body.Close()
		return apperr.New(codes.Unauthenticated, "upstream session token rejected")
	}
	if err := api.FromHTTP(err, resp, "upstream request failed"); err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apperr.Wrap(err, codes.DataLoss, "failed to read upstream response body")
	}

	if err := json.Unmarshal(body, result); err != nil {
		return apperr.Wrap(err, codes.DataLoss, "failed to decode upstream response")
	}

	return nil
}
