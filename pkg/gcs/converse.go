package gcs

import (
	"context"
	"fmt"
	"strings"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/models"
)

type converseRequest struct {
	Name          string    `json:"name"`
	Query         textInput `json:"query"`
	ServingConfig string    `json:"servingConfig"`
}

type textInput struct {
	Input string `json:"input"`
}

type converseResponse struct {
	Reply struct {
		Summary struct {
			SummaryText           string `json:"summaryText"`
			SummarySkippedReasons []any  `json:"summarySkippedReasons"`
		} `json:"summary"`
	} `json:"reply"`
	Conversation struct {
		Name  string `json:"name"`
		State any    `json:"state"`
	} `json:"conversation"`
	SearchResults []struct {
		Document struct {
			ID         string         `json:"id"`
			StructData map[string]any `json:"structData"`
		} `json:"document"`
	} `json:"searchResults"`
}

func (r converseResponse) toResponse() *models.ConversationResponse {
	out := &models.ConversationResponse{
		Text: r.Reply.Summary.SummaryText,
	}

	for _, reason := range r.Reply.Summary.SummarySkippedReasons {
		out.SummarySkippedReasons = append(out.SummarySkippedReasons, fmt.Sprint(reason))
	}

	if r.Conversation.Name != "" {
		parts := strings.Split(r.Conversation.Name, "/")
		out.ConversationID = parts[len(parts)-1]
		out.ConversationState = fmt.Sprint(r.Conversation.State)
	}

	for _, sr := range r.SearchResults {
		title, _ := sr.Document.StructData["title"].(string)
		out.SearchResults = append(out.SearchResults, map[string]any{
			"id":    sr.Document.ID,
			"title": title,
		})
	}

	return out
}

// Converse runs one conversational query. An empty conversationID starts a
// new conversation.
func (c *Client) Converse(ctx context.Context, engineID, query, conversationID string) (*models.ConversationResponse, error) {
	if engineID == "" {
		return nil, fmt.Errorf("%w: engine id is required", ErrInvalidArgument)
	}
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidArgument)
	}

	servingConfig := ServingConfigPath(c.project, c.location, engineID)

	name := ""
	if conversationID != "" {
		name = ConversationPath(c.project, c.location, engineID, conversationID)
	}

	req := converseRequest{
		Name:          name,
		Query:         textInput{Input: query},
		ServingConfig: servingConfig,
	}

	// The converse surface addresses the conversation resource; new
	// conversations go through the auto-session placeholder.
	target := name
	if target == "" {
		target = ConversationPath(c.project, c.location, engineID, "-")
	}

	var resp converseResponse
	path := fmt.Sprintf("/v1/%s:converse", target)
	if err := c.do(ctx, "POST", path, nil, req, &resp); err != nil {
		return nil, fmt.Errorf("converse: %w", err)
	}

	return resp.toResponse(), nil
}

// ConverseStream runs a conversational query and emits chunks on the returned
// channel. The collaborator surface replies with the complete result, which
// is relayed as a single chunk; the channel closes when the context is
// cancelled or the reply has been delivered. Errors are emitted in-band as a
// chunk of type "error", matching the SSE contract downstream.
func (c *Client) ConverseStream(ctx context.Context, engineID, query, conversationID string) <-chan models.ConversationChunk {
	out := make(chan models.ConversationChunk, 1)

	go func() {
		defer close(out)

		resp, err := c.Converse(ctx, engineID, query, conversationID)
		if err != nil {
			select {
			case out <- models.ConversationChunk{Type: "error", Error: err.Error()}:
			case <-ctx.Done():
			}
			return
		}

		chunk := models.ConversationChunk{
			Type:                  "chunk",
			Text:                  resp.Text,
			ConversationID:        resp.ConversationID,
			ConversationState:     resp.ConversationState,
			SearchResults:         resp.SearchResults,
			SummarySkippedReasons: resp.SummarySkippedReasons,
		}

		select {
		case out <- chunk:
		case <-ctx.Done():
		}
	}()

	return out
}
