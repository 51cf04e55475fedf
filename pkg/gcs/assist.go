package gcs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// SkippedAnswerText replaces the whole answer when any chunk reports a
// skipped state. Accumulated fragments from earlier chunks are discarded on
// purpose: the upstream product behaves this way and callers render a single
// text field.
const SkippedAnswerText = "The assistant skipped this query. Try enabling web grounding or rephrasing the question."

type streamAssistRequest struct {
	Name                 string          `json:"name"`
	Query                assistQuery     `json:"query"`
	Session              string          `json:"session"`
	AssistSkippingMode   string          `json:"assistSkippingMode,omitempty"`
	AnswerGenerationMode string          `json:"answerGenerationMode,omitempty"`
	AgentsConfig         *agentsConfig   `json:"agentsConfig,omitempty"`
	ToolsSpec            *assistToolSpec `json:"toolsSpec,omitempty"`
}

type assistQuery struct {
	Text string `json:"text"`
}

type agentsConfig struct {
	Agent string `json:"agent"`
}

type assistToolSpec struct {
	WebGroundingSpec struct{} `json:"webGroundingSpec"`
}

// assistChunk is the loosely typed part of a streamAssist chunk this service
// interprets; everything else stays opaque.
type assistChunk struct {
	Answer *struct {
		State   string `json:"state"`
		Replies []struct {
			GroundedContent struct {
				Content struct {
					Text string `json:"text"`
				} `json:"content"`
			} `json:"groundedContent"`
		} `json:"replies"`
		Citations []map[string]any `json:"citations"`
	} `json:"answer"`
	SessionInfo *struct {
		Session string `json:"session"`
		QueryID string `json:"queryId"`
	} `json:"sessionInfo"`
}

// AssistResult is the outcome of a streamAssist call.
type AssistResult struct {
	// Chunks are the raw collaborator chunks, forwarded unmodified.
	Chunks []RawDocument
	// Answer is the concatenated reply text, or SkippedAnswerText when any
	// chunk was skipped.
	Answer string
	// Skipped reports whether the skip fallback replaced the answer.
	Skipped bool
	// Citations aggregates citation objects across chunks, if any.
	Citations []map[string]any

	SessionPath string
	SessionID   string
	QueryID     string
}

// StreamAssistParams names the inputs of a streamAssist call.
type StreamAssistParams struct {
	EngineID    string
	AssistantID string
	Query       string
	// AgentName selects an agent within the assistant. Optional.
	AgentName string
	// SessionID continues an existing session; "-" or empty starts a new one.
	SessionID string
	// WebGrounding enables the web grounding tool and switches the answer
	// generation mode to NORMAL.
	WebGrounding bool
}

// StreamAssist queries an assistant. The collaborator answers a non-streamed
// REST call with the full chunk list, which is parsed for answer text and
// session info.
func (c *Client) StreamAssist(ctx context.Context, p StreamAssistParams) (*AssistResult, error) {
	if p.EngineID == "" {
		return nil, fmt.Errorf("%w: engine id is required", ErrInvalidArgument)
	}
	if p.Query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidArgument)
	}
	if p.AssistantID == "" {
		p.AssistantID = DefaultAssistantID
	}
	if p.SessionID == "" {
		p.SessionID = "-"
	}

	assistant := AssistantPath(c.project, c.location, p.EngineID, p.AssistantID)

	req := streamAssistRequest{
		Name:    assistant,
		Query:   assistQuery{Text: p.Query},
		Session: SessionPath(c.project, c.location, p.EngineID, p.SessionID),
	}

	if p.WebGrounding {
		req.AnswerGenerationMode = "NORMAL"
		req.ToolsSpec = &assistToolSpec{}
	} else {
		req.AssistSkippingMode = "REQUEST_ASSIST"
		req.AnswerGenerationMode = "AGENT"
		if p.AgentName != "" {
			req.AgentsConfig = &agentsConfig{
				Agent: AgentPath(c.project, c.location, p.EngineID, p.AssistantID, p.AgentName),
			}
		}
	}

	var raw RawDocument
	path := fmt.Sprintf("/v1alpha/%s:streamAssist", assistant)
	if err := c.do(ctx, "POST", path, nil, req, &raw); err != nil {
		return nil, fmt.Errorf("stream assist: %w", err)
	}

	return parseAssistResponse(raw)
}

// parseAssistResponse splits the response into chunks and extracts the
// answer. The body is either a JSON array of chunks or a single object.
func parseAssistResponse(raw RawDocument) (*AssistResult, error) {
	var chunks []RawDocument
	if err := json.Unmarshal(raw, &chunks); err != nil {
		trimmed := strings.TrimSpace(string(raw))
		if trimmed == "" {
			return &AssistResult{}, nil
		}
		chunks = []RawDocument{raw}
	}

	result := &AssistResult{Chunks: chunks}

	var fragments []string
	for _, chunk := range chunks {
		var parsed assistChunk
		if err := json.Unmarshal(chunk, &parsed); err != nil {
			return nil, fmt.Errorf("parse assist chunk: %w", err)
		}

		if parsed.Answer != nil {
			if strings.EqualFold(parsed.Answer.State, "SKIPPED") {
				result.Skipped = true
			}
			for _, reply := range parsed.Answer.Replies {
				if text := reply.GroundedContent.Content.Text; text != "" {
					fragments = append(fragments, text)
				}
			}
			result.Citations = append(result.Citations, parsed.Answer.Citations...)
		}

		if parsed.SessionInfo != nil && parsed.SessionInfo.Session != "" {
			result.SessionPath = parsed.SessionInfo.Session
			result.QueryID = parsed.SessionInfo.QueryID
			parts := strings.Split(parsed.SessionInfo.Session, "/")
			result.SessionID = parts[len(parts)-1]
		}
	}

	if result.Skipped {
		result.Answer = SkippedAnswerText
	} else {
		result.Answer = strings.Join(fragments, "")
	}

	return result, nil
}
