// Package client is a typed Go client for the explorer backend. Every route
// has one context-first method; streaming replies are consumed through Stream.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/models"
)

// Tenant identifies the Google Cloud project a call runs against.
type Tenant struct {
	ProjectNumber string
	Location      string
}

func (t Tenant) query() url.Values {
	q := url.Values{}
	q.Set("project_number", t.ProjectNumber)
	if t.Location != "" {
		q.Set("location", t.Location)
	}
	return q
}

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("backend responded with %s: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("backend responded with %s", e.Status)
}

// Client talks to one explorer backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New builds a client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(payload)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// Health reports whether the backend is reachable.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

// ListAgents lists the engines visible to the tenant.
func (c *Client) ListAgents(ctx context.Context, tenant Tenant) (*models.EngineListResponse, error) {
	var out models.EngineListResponse
	if err := c.do(ctx, http.MethodGet, "/agents/", tenant.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAgent fetches one engine.
func (c *Client) GetAgent(ctx context.Context, tenant Tenant, engineID string) (*models.EngineInfo, error) {
	var out models.EngineInfo
	if err := c.do(ctx, http.MethodGet, "/agents/"+url.PathEscape(engineID), tenant.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search runs an enterprise search query.
func (c *Client) Search(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error) {
	var out models.SearchResponse
	if err := c.do(ctx, http.MethodPost, "/search/", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Converse runs a non-streaming conversational query.
func (c *Client) Converse(ctx context.Context, req models.ConversationRequest) (*models.ConversationResponse, error) {
	var out models.ConversationResponse
	if err := c.do(ctx, http.MethodPost, "/conversations/", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConverseStream opens the streaming conversation route. The caller owns the
// returned Stream and must Close it.
func (c *Client) ConverseStream(ctx context.Context, req models.ConversationRequest) (*Stream, error) {
	httpReq, err := c.newRequest(ctx, http.MethodPost, "/conversations/stream", nil, req)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("POST /conversations/stream: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		resp.Body.Close()
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(payload)}
	}

	return newStream(resp.Body), nil
}

// CreateNotebook creates a notebook.
func (c *Client) CreateNotebook(ctx context.Context, req models.NotebookCreateRequest) (*models.NotebookInfo, error) {
	var out models.NotebookInfo
	if err := c.do(ctx, http.MethodPost, "/notebooks/", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetNotebook fetches one notebook.
func (c *Client) GetNotebook(ctx context.Context, tenant Tenant, notebookID string) (*models.NotebookInfo, error) {
	var out models.NotebookInfo
	if err := c.do(ctx, http.MethodGet, "/notebooks/"+url.PathEscape(notebookID), tenant.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListNotebooks lists the recently viewed notebooks. pageSize 0 uses the
// backend default.
func (c *Client) ListNotebooks(ctx context.Context, tenant Tenant, pageSize int) (*models.NotebookListResponse, error) {
	q := tenant.query()
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}

	var out models.NotebookListResponse
	if err := c.do(ctx, http.MethodGet, "/notebooks/", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BatchDeleteNotebooks deletes notebooks by resource name.
func (c *Client) BatchDeleteNotebooks(ctx context.Context, req models.NotebookBatchDeleteRequest) error {
	return c.do(ctx, http.MethodPost, "/notebooks/batch-delete", nil, req, nil)
}

// ShareNotebook grants roles on a notebook.
func (c *Client) ShareNotebook(ctx context.Context, req models.NotebookShareRequest) error {
	return c.do(ctx, http.MethodPost, "/notebooks/share", nil, req, nil)
}

// NotebookURL resolves the browser URL of a notebook.
func (c *Client) NotebookURL(ctx context.Context, tenant Tenant, notebookID string, useGoogleIdentity bool) (*models.NotebookURLResponse, error) {
	q := tenant.query()
	q.Set("use_google_identity", strconv.FormatBool(useGoogleIdentity))

	var out models.NotebookURLResponse
	if err := c.do(ctx, http.MethodGet, "/notebooks/url/"+url.PathEscape(notebookID), q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BatchCreateSources attaches sources to a notebook.
func (c *Client) BatchCreateSources(ctx context.Context, notebookID string, req models.SourceBatchCreateRequest) (*models.SourceBatchCreateResponse, error) {
	var out models.SourceBatchCreateResponse
	path := "/notebooks/" + url.PathEscape(notebookID) + "/sources/batch-create"
	if err := c.do(ctx, http.MethodPost, path, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSource fetches one source of a notebook.
func (c *Client) GetSource(ctx context.Context, tenant Tenant, notebookID, sourceID string) (*models.SourceInfo, error) {
	var out models.SourceInfo
	path := "/notebooks/" + url.PathEscape(notebookID) + "/sources/" + url.PathEscape(sourceID)
	if err := c.do(ctx, http.MethodGet, path, tenant.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BatchDeleteSources removes sources by resource name.
func (c *Client) BatchDeleteSources(ctx context.Context, notebookID string, req models.SourceBatchDeleteRequest) error {
	path := "/notebooks/" + url.PathEscape(notebookID) + "/sources/batch-delete"
	return c.do(ctx, http.MethodPost, path, nil, req, nil)
}

// UploadSource uploads file bytes as a notebook source. An empty contentType
// lets the backend derive one from the file name.
func (c *Client) UploadSource(ctx context.Context, tenant Tenant, notebookID, fileName, contentType string, data []byte) (*models.SourceUploadResponse, error) {
	q := tenant.query()
	q.Set("file_name", fileName)
	if contentType != "" {
		q.Set("content_type", contentType)
	}

	target := c.baseURL + "/notebooks/" + url.PathEscape(notebookID) + "/sources/upload?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("uploading source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(payload)}
	}

	var out models.SourceUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding upload response: %w", err)
	}
	return &out, nil
}

// EngineDetails calls the engine-details explorer route.
func (c *Client) EngineDetails(ctx context.Context, tenant Tenant, engineID string) (*models.Envelope, error) {
	var out models.Envelope
	path := "/api-explorer/engine-details/" + url.PathEscape(engineID)
	if err := c.do(ctx, http.MethodGet, path, tenant.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EngineDataStores calls the engine-data-stores explorer route.
func (c *Client) EngineDataStores(ctx context.Context, tenant Tenant, engineID string) (*models.Envelope, error) {
	var out models.Envelope
	path := "/api-explorer/engine-data-stores/" + url.PathEscape(engineID)
	if err := c.do(ctx, http.MethodGet, path, tenant.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAssistants calls the list-assistants explorer route.
func (c *Client) ListAssistants(ctx context.Context, tenant Tenant, engineID string) (*models.Envelope, error) {
	var out models.Envelope
	path := "/api-explorer/list-assistants/" + url.PathEscape(engineID)
	if err := c.do(ctx, http.MethodGet, path, tenant.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAssistantAgents calls the list-agents explorer route.
func (c *Client) ListAssistantAgents(ctx context.Context, tenant Tenant, engineID string) (*models.Envelope, error) {
	var out models.Envelope
	path := "/api-explorer/list-agents/" + url.PathEscape(engineID)
	if err := c.do(ctx, http.MethodGet, path, tenant.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAssistantAgent calls the get-agent explorer route.
func (c *Client) GetAssistantAgent(ctx context.Context, tenant Tenant, engineID, agentName string) (*models.Envelope, error) {
	var out models.Envelope
	path := "/api-explorer/get-agent/" + url.PathEscape(engineID) + "/" + url.PathEscape(agentName)
	if err := c.do(ctx, http.MethodGet, path, tenant.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AssistRequest is the body of the stream-assist explorer route.
type AssistRequest struct {
	EngineID      string `json:"engine_id"`
	AssistantID   string `json:"assistant_id,omitempty"`
	Query         string `json:"query"`
	AgentName     string `json:"agent_name,omitempty"`
	SessionID     string `json:"session_id,omitempty"`
	ProjectNumber string `json:"project_number"`
}

// StreamAssist calls the stream-assist explorer route.
func (c *Client) StreamAssist(ctx context.Context, req AssistRequest) (*models.Envelope, error) {
	var out models.Envelope
	if err := c.do(ctx, http.MethodPost, "/api-explorer/stream-assist", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WebGroundingSearch calls the web-grounding-search explorer route.
func (c *Client) WebGroundingSearch(ctx context.Context, req AssistRequest) (*models.Envelope, error) {
	var out models.Envelope
	if err := c.do(ctx, http.MethodPost, "/api-explorer/web-grounding-search", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
