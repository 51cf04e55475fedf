package gcs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/models"
)

// sourceResource is the collaborator's source payload (v1alpha).
type sourceResource struct {
	Name     string `json:"name"`
	SourceID *struct {
		ID string `json:"id"`
	} `json:"sourceId"`
	Title    string          `json:"title"`
	Metadata json.RawMessage `json:"metadata"`
	Settings json.RawMessage `json:"settings"`
}

func (s sourceResource) toInfo() models.SourceInfo {
	info := models.SourceInfo{
		Name:     s.Name,
		Title:    s.Title,
		Metadata: s.Metadata,
		Settings: s.Settings,
	}
	if s.SourceID != nil {
		info.SourceID = &models.SourceID{ID: s.SourceID.ID}
	}
	return info
}

// userContentPayload translates the one-of into the collaborator's camelCase
// one-of keys. Exactly one variant is emitted per content.
func userContentPayload(content models.UserContent) (map[string]any, error) {
	switch {
	case content.GoogleDriveContent != nil:
		return map[string]any{
			"googleDriveContent": map[string]string{
				"documentId": content.GoogleDriveContent.DocumentID,
				"mimeType":   content.GoogleDriveContent.MimeType,
				"sourceName": content.GoogleDriveContent.SourceName,
			},
		}, nil

	case content.TextContent != nil:
		return map[string]any{
			"textContent": map[string]string{
				"sourceName": content.TextContent.SourceName,
				"content":    content.TextContent.Content,
			},
		}, nil

	case content.WebContent != nil:
		return map[string]any{
			"webContent": map[string]string{
				"url":        content.WebContent.URL,
				"sourceName": content.WebContent.SourceName,
			},
		}, nil

	case content.VideoContent != nil:
		return map[string]any{
			"videoContent": map[string]string{
				"url": content.VideoContent.URL,
			},
		}, nil

	default:
		return nil, fmt.Errorf("%w: user content has no variant set", ErrInvalidArgument)
	}
}

// BatchCreateSources attaches content descriptors to a notebook.
func (c *Client) BatchCreateSources(ctx context.Context, notebookID string, contents []models.UserContent) (*models.SourceBatchCreateResponse, error) {
	if notebookID == "" {
		return nil, fmt.Errorf("%w: notebook id is required", ErrInvalidArgument)
	}
	if len(contents) == 0 {
		return nil, fmt.Errorf("%w: at least one user content is required", ErrInvalidArgument)
	}

	payload := make([]map[string]any, 0, len(contents))
	for _, content := range contents {
		p, err := userContentPayload(content)
		if err != nil {
			return nil, err
		}
		payload = append(payload, p)
	}

	var resp struct {
		Sources []sourceResource `json:"sources"`
	}
	path := c.notebooksBase() + "/notebooks/" + notebookID + "/sources:batchCreate"
	if err := c.do(ctx, "POST", path, nil, map[string]any{"userContents": payload}, &resp); err != nil {
		return nil, fmt.Errorf("batch create sources: %w", err)
	}

	out := &models.SourceBatchCreateResponse{Sources: make([]models.SourceInfo, 0, len(resp.Sources))}
	for _, s := range resp.Sources {
		out.Sources = append(out.Sources, s.toInfo())
	}

	return out, nil
}

// GetSource fetches one source of a notebook.
func (c *Client) GetSource(ctx context.Context, notebookID, sourceID string) (*models.SourceInfo, error) {
	if notebookID == "" || sourceID == "" {
		return nil, fmt.Errorf("%w: notebook id and source id are required", ErrInvalidArgument)
	}

	var resource sourceResource
	path := c.notebooksBase() + "/notebooks/" + notebookID + "/sources/" + sourceID
	if err := c.do(ctx, "GET", path, nil, nil, &resource); err != nil {
		return nil, fmt.Errorf("get source %s: %w", sourceID, err)
	}

	info := resource.toInfo()
	return &info, nil
}

// BatchDeleteSources removes sources by full resource name. Best-effort, one
// aggregate outcome.
func (c *Client) BatchDeleteSources(ctx context.Context, notebookID string, names []string) error {
	if notebookID == "" {
		return fmt.Errorf("%w: notebook id is required", ErrInvalidArgument)
	}
	if len(names) == 0 {
		return fmt.Errorf("%w: at least one source name is required", ErrInvalidArgument)
	}

	path := c.notebooksBase() + "/notebooks/" + notebookID + "/sources:batchDelete"
	if err := c.do(ctx, "POST", path, nil, map[string][]string{"names": names}, nil); err != nil {
		return fmt.Errorf("batch delete sources: %w", err)
	}

	return nil
}

// UploadFileSource uploads raw file bytes as a notebook source through the
// media upload surface.
func (c *Client) UploadFileSource(ctx context.Context, notebookID string, data []byte, fileName, contentType string) (*models.SourceUploadResponse, error) {
	if notebookID == "" {
		return nil, fmt.Errorf("%w: notebook id is required", ErrInvalidArgument)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: file data is empty", ErrInvalidArgument)
	}
	if fileName == "" {
		return nil, fmt.Errorf("%w: file name is required", ErrInvalidArgument)
	}

	var resp struct {
		SourceID *struct {
			ID string `json:"id"`
		} `json:"sourceId"`
	}
	path := fmt.Sprintf("/upload/v1alpha/projects/%s/locations/%s/notebooks/%s/sources:uploadFile",
		c.project, c.location, notebookID)
	if err := c.upload(ctx, path, fileName, contentType, data, &resp); err != nil {
		return nil, fmt.Errorf("upload source %s: %w", fileName, err)
	}

	out := &models.SourceUploadResponse{}
	if resp.SourceID != nil {
		out.SourceID = &models.SourceID{ID: resp.SourceID.ID}
	}

	return out, nil
}
