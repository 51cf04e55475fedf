// Package gcs talks to the Discovery Engine REST surface backing Gemini
// Enterprise (Agentspace) and NotebookLM Enterprise. It owns endpoint
// selection, authentication, and the reshaping of collaborator payloads into
// the wire models of this service.
package gcs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/common"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

var (
	defaultTokenMux sync.Mutex
	defaultTokens   oauth2.TokenSource
)

// defaultTokenSource resolves Application Default Credentials once per process.
func defaultTokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	defaultTokenMux.Lock()
	defer defaultTokenMux.Unlock()

	if defaultTokens == nil {
		ts, err := google.DefaultTokenSource(ctx, cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("resolve application default credentials: %w", err)
		}
		defaultTokens = ts
	}

	return defaultTokens, nil
}

// Client is a tenant-scoped collaborator client. It holds no call state and
// is safe for concurrent use.
type Client struct {
	project  string
	location string
	baseURL  string
	http     *http.Client
	tokens   oauth2.TokenSource
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTokenSource replaces the bearer token source.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) {
		if ts != nil {
			c.tokens = ts
		}
	}
}

// WithBaseURL overrides the regional endpoint, e.g. to target a test server.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// New creates a client for one project/location scope.
func New(project, location string, opts ...Option) (*Client, error) {
	if project == "" {
		return nil, fmt.Errorf("%w: project number is required", ErrInvalidArgument)
	}
	if !ValidLocation(location) {
		return nil, fmt.Errorf("%w: location %q (want us, eu or global)", ErrInvalidArgument, location)
	}

	c := &Client{
		project:  project,
		location: location,
		baseURL:  BaseURL(location),
		http: &http.Client{
			Timeout: common.ConfigUpstreamTimeout(),
			Transport: &RetryTransport{
				Config: RetryConfig{
					MaxRetries: 3,
					RetryDelay: time.Second,
					RetryCodes: []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout},
				},
				RoundTripper: http.DefaultTransport,
			},
		},
	}

	if override := common.ConfigUpstreamOverride(); override != "" {
		c.baseURL = strings.TrimSuffix(override, "/")
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Project returns the project number the client is scoped to.
func (c *Client) Project() string { return c.project }

// Location returns the location the client is scoped to.
func (c *Client) Location() string { return c.location }

func (c *Client) token(ctx context.Context) (string, error) {
	ts := c.tokens
	if ts == nil {
		var err error
		ts, err = defaultTokenSource(ctx)
		if err != nil {
			return "", err
		}
	}

	tok, err := ts.Token()
	if err != nil {
		return "", fmt.Errorf("fetch access token: %w", err)
	}

	return tok.AccessToken, nil
}

// do issues one call against the collaborator. path is relative to the base
// URL and must include the API version prefix. A nil out discards the body;
// *json.RawMessage keeps it opaque.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Encoding", acceptEncoding)
	req.Header.Set("X-Goog-User-Project", c.project)

	return c.roundTrip(req, out)
}

// upload sends raw file bytes through the media upload surface.
func (c *Client) upload(ctx context.Context, path, fileName, contentType string, data []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Goog-Upload-File-Name", fileName)
	req.Header.Set("X-Goog-Upload-Protocol", "raw")
	req.Header.Set("X-Goog-User-Project", c.project)

	return c.roundTrip(req, out)
}

func (c *Client) roundTrip(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if err := decompressBody(resp); err != nil {
		return fmt.Errorf("decode %s: %w", req.URL.Path, err)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", req.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Status: resp.Status, Body: raw}
	}

	switch out := out.(type) {
	case nil:
		return nil

	case *json.RawMessage:
		*out = raw
		return nil

	default:
		if len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("parse %s: %w", req.URL.Path, err)
		}
		return nil
	}
}
