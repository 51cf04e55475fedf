// Package models defines the request and response shapes of the API surface.
// They are shared between the route handlers and the typed client so both
// sides of the boundary serialize identically.
package models

import "encoding/json"

// SearchRequest is the body of POST /search/.
type SearchRequest struct {
	Query           string `json:"query"`
	PageSize        int    `json:"page_size,omitempty"`
	SpellCorrection *bool  `json:"spell_correction,omitempty"`

	// Tenant configuration from the UI sidebar.
	ProjectNumber string `json:"project_number"`
	Location      string `json:"location,omitempty"`
	EngineID      string `json:"engine_id"`
}

// SearchResult is a single document hit.
type SearchResult struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Data map[string]any `json:"data"`
}

// SearchResponse is the body returned by POST /search/.
type SearchResponse struct {
	Results          []SearchResult `json:"results"`
	TotalSize        int            `json:"total_size"`
	AttributionToken string         `json:"attribution_token"`
	Query            string         `json:"query"`
}

// ConversationRequest is the body of POST /conversations/ and /conversations/stream.
type ConversationRequest struct {
	Query          string `json:"query"`
	ConversationID string `json:"conversation_id,omitempty"`
	SessionID      string `json:"session_id,omitempty"`

	ProjectNumber string `json:"project_number"`
	Location      string `json:"location,omitempty"`
	EngineID      string `json:"engine_id"`
}

// ConversationResponse is the non-streaming conversation reply.
type ConversationResponse struct {
	Text                  string           `json:"text,omitempty"`
	ConversationID        string           `json:"conversation_id,omitempty"`
	ConversationState     string           `json:"conversation_state,omitempty"`
	SearchResults         []map[string]any `json:"search_results,omitempty"`
	SummarySkippedReasons []string         `json:"summary_skipped_reasons,omitempty"`
}

// ConversationChunk is one streamed conversation event. Type is "chunk" for
// payload events, "done" for the terminal event and "error" on failure.
type ConversationChunk struct {
	Type                  string           `json:"type"`
	Text                  string           `json:"text,omitempty"`
	ConversationID        string           `json:"conversation_id,omitempty"`
	ConversationState     string           `json:"conversation_state,omitempty"`
	SearchResults         []map[string]any `json:"search_results,omitempty"`
	SummarySkippedReasons []string         `json:"summary_skipped_reasons,omitempty"`
	Error                 string           `json:"error,omitempty"`
}

// EngineInfo describes a discoverable engine/agent.
type EngineInfo struct {
	Name             string `json:"name"`
	DisplayName      string `json:"display_name"`
	SolutionType     string `json:"solution_type"`
	IndustryVertical string `json:"industry_vertical"`
	CreateTime       string `json:"create_time,omitempty"`
}

// EngineListResponse is the body returned by GET /agents/.
type EngineListResponse struct {
	Engines []EngineInfo `json:"engines"`
}

// NotebookCreateRequest is the body of POST /notebooks/.
type NotebookCreateRequest struct {
	Title string `json:"title"`

	ProjectNumber string `json:"project_number"`
	Location      string `json:"location,omitempty"`
}

// NotebookMetadata carries the caller's relation to a notebook.
type NotebookMetadata struct {
	Role        string `json:"role,omitempty"`
	IsShared    bool   `json:"is_shared,omitempty"`
	IsShareable bool   `json:"is_shareable,omitempty"`
	CreateTime  string `json:"create_time,omitempty"`
	LastViewed  string `json:"last_viewed,omitempty"`
}

// NotebookInfo describes a NotebookLM notebook.
type NotebookInfo struct {
	Name       string            `json:"name"`
	NotebookID string            `json:"notebook_id"`
	Title      string            `json:"title"`
	Emoji      string            `json:"emoji,omitempty"`
	Metadata   *NotebookMetadata `json:"metadata,omitempty"`
}

// NotebookListResponse is the body returned by GET /notebooks/.
type NotebookListResponse struct {
	Notebooks     []NotebookInfo `json:"notebooks"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

// NotebookBatchDeleteRequest is the body of POST /notebooks/batch-delete.
// Names are full notebook resource names.
type NotebookBatchDeleteRequest struct {
	Names []string `json:"names"`

	ProjectNumber string `json:"project_number"`
	Location      string `json:"location,omitempty"`
}

// AccountAndRole grants one user a role on a notebook.
type AccountAndRole struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// NotebookShareRequest is the body of POST /notebooks/share.
type NotebookShareRequest struct {
	NotebookID      string           `json:"notebook_id"`
	AccountAndRoles []AccountAndRole `json:"account_and_roles"`

	ProjectNumber string `json:"project_number"`
	Location      string `json:"location,omitempty"`
}

// NotebookURLResponse is the body returned by GET /notebooks/url/{id}.
type NotebookURLResponse struct {
	URL        string `json:"url"`
	NotebookID string `json:"notebook_id"`
}

// TextContent is inline text attached as a source.
type TextContent struct {
	SourceName string `json:"source_name"`
	Content    string `json:"content"`
}

// WebContent is a web page attached as a source.
type WebContent struct {
	URL        string `json:"url"`
	SourceName string `json:"source_name,omitempty"`
}

// VideoContent is a video URL attached as a source.
type VideoContent struct {
	URL string `json:"url"`
}

// GoogleDriveContent is a Drive document attached as a source.
type GoogleDriveContent struct {
	DocumentID string `json:"document_id"`
	MimeType   string `json:"mime_type,omitempty"`
	SourceName string `json:"source_name,omitempty"`
}

// UserContent is a one-of content descriptor. Exactly one field is set.
type UserContent struct {
	TextContent        *TextContent        `json:"text_content,omitempty"`
	WebContent         *WebContent         `json:"web_content,omitempty"`
	VideoContent       *VideoContent       `json:"video_content,omitempty"`
	GoogleDriveContent *GoogleDriveContent `json:"google_drive_content,omitempty"`
}

// SourceBatchCreateRequest is the body of POST /notebooks/{id}/sources/batch-create.
type SourceBatchCreateRequest struct {
	UserContents []UserContent `json:"user_contents"`

	ProjectNumber string `json:"project_number"`
	Location      string `json:"location,omitempty"`
}

// SourceID identifies a source within a notebook.
type SourceID struct {
	ID string `json:"id"`
}

// SourceInfo describes a notebook source.
type SourceInfo struct {
	Name     string          `json:"name,omitempty"`
	SourceID *SourceID       `json:"source_id,omitempty"`
	Title    string          `json:"title,omitempty"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
	Settings json.RawMessage `json:"settings,omitempty"`
}

// SourceBatchCreateResponse is the body returned by batch-create.
type SourceBatchCreateResponse struct {
	Sources []SourceInfo `json:"sources"`
}

// SourceBatchDeleteRequest is the body of POST /notebooks/{id}/sources/batch-delete.
// Names are full source resource names.
type SourceBatchDeleteRequest struct {
	Names []string `json:"names"`

	ProjectNumber string `json:"project_number"`
	Location      string `json:"location,omitempty"`
}

// SourceUploadResponse is the body returned by the upload endpoint.
type SourceUploadResponse struct {
	SourceID *SourceID `json:"source_id,omitempty"`
}

// ErrorResponse is the uniform error body of non-envelope routes.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// Envelope wraps an api-explorer passthrough result. Response and Error are
// opaque collaborator payloads rendered structurally by the frontend.
type Envelope struct {
	RequestParams map[string]any  `json:"request_params"`
	Response      json.RawMessage `json:"response,omitempty"`
	SessionInfo   map[string]any  `json:"session_info,omitempty"`
	Error         *EnvelopeError  `json:"error,omitempty"`
	Success       bool            `json:"success"`
}

// EnvelopeError describes a failed passthrough call.
type EnvelopeError struct {
	Type    string          `json:"type"`
	Message string          `json:"message"`
	Body    json.RawMessage `json:"body,omitempty"`
}
