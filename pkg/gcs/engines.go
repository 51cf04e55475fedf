package gcs

import (
	"context"
	"fmt"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/models"
)

// engineResource is the collaborator's engine payload. Enum fields arrive as
// strings on the REST surface but numerically on older API versions, so they
// are decoded loosely and normalized.
type engineResource struct {
	Name             string `json:"name"`
	DisplayName      string `json:"displayName"`
	SolutionType     any    `json:"solutionType"`
	IndustryVertical any    `json:"industryVertical"`
	CreateTime       string `json:"createTime"`
}

type listEnginesResponse struct {
	Engines       []engineResource `json:"engines"`
	NextPageToken string           `json:"nextPageToken"`
}

var solutionTypeNames = map[int]string{
	0: "SOLUTION_TYPE_UNSPECIFIED",
	1: "SOLUTION_TYPE_RECOMMENDATION",
	2: "SOLUTION_TYPE_SEARCH",
	3: "SOLUTION_TYPE_CHAT",
}

var industryVerticalNames = map[int]string{
	0: "INDUSTRY_VERTICAL_UNSPECIFIED",
	1: "GENERIC",
	2: "MEDIA",
	3: "HEALTHCARE_FHIR",
}

// enumName normalizes an enum value to its canonical name. Unknown numeric
// values map to UNKNOWN_{n}.
func enumName(v any, names map[int]string) string {
	switch v := v.(type) {
	case string:
		if v == "" {
			return names[0]
		}
		return v

	case float64:
		if name, ok := names[int(v)]; ok {
			return name
		}
		return fmt.Sprintf("UNKNOWN_%d", int(v))

	case nil:
		return names[0]

	default:
		return fmt.Sprintf("UNKNOWN_%v", v)
	}
}

func (e engineResource) toInfo() models.EngineInfo {
	return models.EngineInfo{
		Name:             e.Name,
		DisplayName:      e.DisplayName,
		SolutionType:     enumName(e.SolutionType, solutionTypeNames),
		IndustryVertical: enumName(e.IndustryVertical, industryVerticalNames),
		CreateTime:       e.CreateTime,
	}
}

// ListEngines lists the engines of the default collection. An empty result
// is a valid success.
func (c *Client) ListEngines(ctx context.Context) ([]models.EngineInfo, error) {
	var resp listEnginesResponse
	path := fmt.Sprintf("/v1/%s/engines", CollectionPath(c.project, c.location))
	if err := c.do(ctx, "GET", path, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("list engines: %w", err)
	}

	engines := make([]models.EngineInfo, 0, len(resp.Engines))
	for _, e := range resp.Engines {
		engines = append(engines, e.toInfo())
	}

	return engines, nil
}

// GetEngine fetches one engine by ID.
func (c *Client) GetEngine(ctx context.Context, engineID string) (*models.EngineInfo, error) {
	if engineID == "" {
		return nil, fmt.Errorf("%w: engine id is required", ErrInvalidArgument)
	}

	var resource engineResource
	path := fmt.Sprintf("/v1/%s", EnginePath(c.project, c.location, engineID))
	if err := c.do(ctx, "GET", path, nil, nil, &resource); err != nil {
		return nil, fmt.Errorf("get engine %s: %w", engineID, err)
	}

	info := resource.toInfo()
	return &info, nil
}

// GetEngineRaw fetches one engine and keeps the collaborator payload opaque.
// Used by the api-explorer passthrough.
func (c *Client) GetEngineRaw(ctx context.Context, engineID string) (RawDocument, error) {
	if engineID == "" {
		return nil, fmt.Errorf("%w: engine id is required", ErrInvalidArgument)
	}

	var raw RawDocument
	path := fmt.Sprintf("/v1/%s", EnginePath(c.project, c.location, engineID))
	if err := c.do(ctx, "GET", path, nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("get engine %s: %w", engineID, err)
	}

	return raw, nil
}

// GetEngineDataStores resolves the data stores attached to an engine. Data
// stores that fail to load are reported inline rather than failing the call.
func (c *Client) GetEngineDataStores(ctx context.Context, engineID string) ([]string, []map[string]any, error) {
	if engineID == "" {
		return nil, nil, fmt.Errorf("%w: engine id is required", ErrInvalidArgument)
	}

	var engine struct {
		DataStoreIDs []string `json:"dataStoreIds"`
	}
	path := fmt.Sprintf("/v1/%s", EnginePath(c.project, c.location, engineID))
	if err := c.do(ctx, "GET", path, nil, nil, &engine); err != nil {
		return nil, nil, fmt.Errorf("get engine %s: %w", engineID, err)
	}

	stores := make([]map[string]any, 0, len(engine.DataStoreIDs))
	for _, dsID := range engine.DataStoreIDs {
		var ds struct {
			Name             string `json:"name"`
			DisplayName      string `json:"displayName"`
			IndustryVertical any    `json:"industryVertical"`
			SolutionTypes    []any  `json:"solutionTypes"`
			ContentConfig    any    `json:"contentConfig"`
		}
		dsPath := fmt.Sprintf("/v1/%s", DataStorePath(c.project, c.location, dsID))
		if err := c.do(ctx, "GET", dsPath, nil, nil, &ds); err != nil {
			stores = append(stores, map[string]any{
				"id":    dsID,
				"error": err.Error(),
				"name":  "Error loading " + dsID,
			})
			continue
		}

		solutionTypes := make([]string, 0, len(ds.SolutionTypes))
		for _, st := range ds.SolutionTypes {
			solutionTypes = append(solutionTypes, enumName(st, solutionTypeNames))
		}

		stores = append(stores, map[string]any{
			"id":                dsID,
			"name":              ds.Name,
			"display_name":      ds.DisplayName,
			"industry_vertical": enumName(ds.IndustryVertical, industryVerticalNames),
			"solution_types":    solutionTypes,
			"content_config":    fmt.Sprint(ds.ContentConfig),
		})
	}

	return engine.DataStoreIDs, stores, nil
}

// ListAssistants lists the assistant containers of an engine (v1alpha).
func (c *Client) ListAssistants(ctx context.Context, engineID string) (RawDocument, error) {
	if engineID == "" {
		return nil, fmt.Errorf("%w: engine id is required", ErrInvalidArgument)
	}

	var raw RawDocument
	path := fmt.Sprintf("/v1alpha/%s/assistants", EnginePath(c.project, c.location, engineID))
	if err := c.do(ctx, "GET", path, nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("list assistants: %w", err)
	}

	return raw, nil
}

// ListAgents lists the agents of the default assistant (v1alpha).
func (c *Client) ListAgents(ctx context.Context, engineID string) (RawDocument, error) {
	if engineID == "" {
		return nil, fmt.Errorf("%w: engine id is required", ErrInvalidArgument)
	}

	var raw RawDocument
	path := fmt.Sprintf("/v1alpha/%s/agents", AssistantPath(c.project, c.location, engineID, DefaultAssistantID))
	if err := c.do(ctx, "GET", path, nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}

	return raw, nil
}

// GetAgent fetches one agent of the default assistant (v1alpha).
func (c *Client) GetAgent(ctx context.Context, engineID, agentName string) (RawDocument, error) {
	if engineID == "" || agentName == "" {
		return nil, fmt.Errorf("%w: engine id and agent name are required", ErrInvalidArgument)
	}

	var raw RawDocument
	path := fmt.Sprintf("/v1alpha/%s", AgentPath(c.project, c.location, engineID, DefaultAssistantID, agentName))
	if err := c.do(ctx, "GET", path, nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("get agent %s: %w", agentName, err)
	}

	return raw, nil
}
