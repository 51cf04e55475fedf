package gcs

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/common"
	"github.com/0nri/gemini-enterprise-api-explorer/pkg/models"
)

// notebookResource is the collaborator's notebook payload (v1alpha).
type notebookResource struct {
	Name       string `json:"name"`
	NotebookID string `json:"notebookId"`
	Title      string `json:"title"`
	Emoji      string `json:"emoji"`
	Metadata   *struct {
		UserRole    string `json:"userRole"`
		IsShared    bool   `json:"isShared"`
		IsShareable bool   `json:"isShareable"`
		CreateTime  string `json:"createTime"`
		LastViewed  string `json:"lastViewed"`
	} `json:"metadata"`
}

func (n notebookResource) toInfo() models.NotebookInfo {
	info := models.NotebookInfo{
		Name:       n.Name,
		NotebookID: n.NotebookID,
		Title:      n.Title,
		Emoji:      n.Emoji,
	}
	if n.Metadata != nil {
		info.Metadata = &models.NotebookMetadata{
			Role:        n.Metadata.UserRole,
			IsShared:    n.Metadata.IsShared,
			IsShareable: n.Metadata.IsShareable,
			CreateTime:  n.Metadata.CreateTime,
			LastViewed:  n.Metadata.LastViewed,
		}
	}
	return info
}

// notebooksBase is the v1alpha prefix for notebook resources.
func (c *Client) notebooksBase() string {
	return fmt.Sprintf("/v1alpha/projects/%s/locations/%s", c.project, c.location)
}

// CreateNotebook creates a notebook with the given title. An empty title is
// rejected before any call is made.
func (c *Client) CreateNotebook(ctx context.Context, title string) (*models.NotebookInfo, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: notebook title is required", ErrInvalidArgument)
	}

	var resource notebookResource
	path := c.notebooksBase() + "/notebooks"
	if err := c.do(ctx, "POST", path, nil, map[string]string{"title": title}, &resource); err != nil {
		return nil, fmt.Errorf("create notebook: %w", err)
	}

	info := resource.toInfo()
	return &info, nil
}

// GetNotebook fetches one notebook by ID.
func (c *Client) GetNotebook(ctx context.Context, notebookID string) (*models.NotebookInfo, error) {
	if notebookID == "" {
		return nil, fmt.Errorf("%w: notebook id is required", ErrInvalidArgument)
	}

	var resource notebookResource
	path := c.notebooksBase() + "/notebooks/" + notebookID
	if err := c.do(ctx, "GET", path, nil, nil, &resource); err != nil {
		return nil, fmt.Errorf("get notebook %s: %w", notebookID, err)
	}

	info := resource.toInfo()
	return &info, nil
}

// ListRecentlyViewedNotebooks lists the caller's recently viewed notebooks.
func (c *Client) ListRecentlyViewedNotebooks(ctx context.Context, pageSize int) (*models.NotebookListResponse, error) {
	if pageSize <= 0 {
		pageSize = common.ConfigNotebookPageSize()
	}

	query := url.Values{"pageSize": {strconv.Itoa(pageSize)}}

	var resp struct {
		Notebooks     []notebookResource `json:"notebooks"`
		NextPageToken string             `json:"nextPageToken"`
	}
	path := c.notebooksBase() + "/notebooks:listRecentlyViewed"
	if err := c.do(ctx, "GET", path, query, nil, &resp); err != nil {
		return nil, fmt.Errorf("list notebooks: %w", err)
	}

	out := &models.NotebookListResponse{
		Notebooks:     make([]models.NotebookInfo, 0, len(resp.Notebooks)),
		NextPageToken: resp.NextPageToken,
	}
	for _, n := range resp.Notebooks {
		out.Notebooks = append(out.Notebooks, n.toInfo())
	}

	return out, nil
}

// BatchDeleteNotebooks deletes notebooks by full resource name. The call is
// best-effort, not transactional: the collaborator reports one aggregate
// outcome and no per-item result is synthesized here.
func (c *Client) BatchDeleteNotebooks(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("%w: at least one notebook name is required", ErrInvalidArgument)
	}

	path := c.notebooksBase() + "/notebooks:batchDelete"
	if err := c.do(ctx, "POST", path, nil, map[string][]string{"names": names}, nil); err != nil {
		return fmt.Errorf("batch delete notebooks: %w", err)
	}

	return nil
}

// ShareNotebook grants the given accounts roles on a notebook.
func (c *Client) ShareNotebook(ctx context.Context, notebookID string, accounts []models.AccountAndRole) error {
	if notebookID == "" {
		return fmt.Errorf("%w: notebook id is required", ErrInvalidArgument)
	}
	if len(accounts) == 0 {
		return fmt.Errorf("%w: at least one account is required", ErrInvalidArgument)
	}

	payload := make([]map[string]string, 0, len(accounts))
	for _, a := range accounts {
		payload = append(payload, map[string]string{"email": a.Email, "role": a.Role})
	}

	path := c.notebooksBase() + "/notebooks/" + notebookID + ":share"
	if err := c.do(ctx, "POST", path, nil, map[string]any{"accountAndRoles": payload}, nil); err != nil {
		return fmt.Errorf("share notebook %s: %w", notebookID, err)
	}

	return nil
}
