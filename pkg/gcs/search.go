package gcs

import (
	"context"
	"fmt"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/common"
	"github.com/0nri/gemini-enterprise-api-explorer/pkg/models"
)

type searchRequest struct {
	Query               string              `json:"query"`
	PageSize            int                 `json:"pageSize"`
	LanguageCode        string              `json:"languageCode,omitempty"`
	QueryExpansionSpec  queryExpansionSpec  `json:"queryExpansionSpec"`
	SpellCorrectionSpec spellCorrectionSpec `json:"spellCorrectionSpec"`
}

type queryExpansionSpec struct {
	Condition string `json:"condition"`
}

type spellCorrectionSpec struct {
	Mode string `json:"mode"`
}

type searchResponse struct {
	Results []struct {
		ID       string `json:"id"`
		Document struct {
			ID                string         `json:"id"`
			Name              string         `json:"name"`
			StructData        map[string]any `json:"structData"`
			DerivedStructData map[string]any `json:"derivedStructData"`
		} `json:"document"`
	} `json:"results"`
	TotalSize        int    `json:"totalSize"`
	AttributionToken string `json:"attributionToken"`
}

// Search runs an enterprise search query against the default serving config.
// Document data merges structData with derivedStructData, never overwriting
// declared fields with derived ones.
func (c *Client) Search(ctx context.Context, engineID, query string, pageSize int, spellCorrection bool) (*models.SearchResponse, error) {
	if engineID == "" {
		return nil, fmt.Errorf("%w: engine id is required", ErrInvalidArgument)
	}
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidArgument)
	}
	if pageSize <= 0 {
		pageSize = common.ConfigDefaultPageSize()
	}

	mode := "AUTO"
	if !spellCorrection {
		mode = "OFF"
	}

	req := searchRequest{
		Query:               query,
		PageSize:            pageSize,
		LanguageCode:        common.ConfigLanguageCode(),
		QueryExpansionSpec:  queryExpansionSpec{Condition: "AUTO"},
		SpellCorrectionSpec: spellCorrectionSpec{Mode: mode},
	}

	var resp searchResponse
	path := fmt.Sprintf("/v1/%s:search", ServingConfigPath(c.project, c.location, engineID))
	if err := c.do(ctx, "POST", path, nil, req, &resp); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	results := make([]models.SearchResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		data := make(map[string]any, len(r.Document.StructData)+len(r.Document.DerivedStructData))
		for k, v := range r.Document.StructData {
			data[k] = v
		}
		for k, v := range r.Document.DerivedStructData {
			if _, exists := data[k]; !exists {
				data[k] = v
			}
		}

		results = append(results, models.SearchResult{
			ID:   r.Document.ID,
			Name: r.Document.Name,
			Data: data,
		})
	}

	return &models.SearchResponse{
		Results:          results,
		TotalSize:        resp.TotalSize,
		AttributionToken: resp.AttributionToken,
		Query:            query,
	}, nil
}
