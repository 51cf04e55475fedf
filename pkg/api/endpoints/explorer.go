package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/common"
	"github.com/0nri/gemini-enterprise-api-explorer/pkg/gcs"
	"github.com/0nri/gemini-enterprise-api-explorer/pkg/models"
)

// The assist and agent surfaces are only served from the us region, so the
// explorer routes backed by v1alpha pin the location instead of honoring the
// tenant's choice.
const explorerLocation = "us"

func envelopeSuccess(params map[string]any, response any) models.Envelope {
	raw, ok := response.(json.RawMessage)
	if !ok {
		raw, _ = json.Marshal(response)
	}
	return models.Envelope{RequestParams: params, Response: raw, Success: true}
}

func envelopeFailure(params map[string]any, err error) models.Envelope {
	envErr := &models.EnvelopeError{Message: err.Error()}
	switch apiErr, ok := gcs.AsAPIError(err); {
	case errors.Is(err, gcs.ErrInvalidArgument):
		envErr.Type = "InvalidArgument"
	case ok:
		envErr.Type = apiErr.Status
		if json.Valid(apiErr.Body) {
			envErr.Body = json.RawMessage(apiErr.Body)
		}
	default:
		envErr.Type = "RequestError"
	}

	return models.Envelope{RequestParams: params, Error: envErr, Success: false}
}

// EngineDetails handles GET /api-explorer/engine-details/:engine_id. The
// collaborator payload is passed through unmodified.
func EngineDetails(ctx *gin.Context) {
	project, location, ok := tenantQuery(ctx)
	if !ok {
		return
	}

	engineID := ctx.Param("engine_id")
	params := map[string]any{
		"engine_id": engineID,
		"name":      gcs.EnginePath(project, location, engineID),
	}

	client, err := newClient(project, location)
	if err != nil {
		ctx.JSON(http.StatusOK, envelopeFailure(params, err))
		return
	}

	raw, err := client.GetEngineRaw(ctx.Request.Context(), engineID)
	if err != nil {
		common.Logger().Error("Engine details failed", zap.String("engine", engineID), zap.Error(err))
		ctx.JSON(http.StatusOK, envelopeFailure(params, err))
		return
	}

	ctx.JSON(http.StatusOK, envelopeSuccess(params, json.RawMessage(raw)))
}

// EngineDataStores handles GET /api-explorer/engine-data-stores/:engine_id.
func EngineDataStores(ctx *gin.Context) {
	project, location, ok := tenantQuery(ctx)
	if !ok {
		return
	}

	engineID := ctx.Param("engine_id")
	params := map[string]any{"engine_id": engineID}

	client, err := newClient(project, location)
	if err != nil {
		ctx.JSON(http.StatusOK, envelopeFailure(params, err))
		return
	}

	ids, stores, err := client.GetEngineDataStores(ctx.Request.Context(), engineID)
	if err != nil {
		common.Logger().Error("Engine data stores failed", zap.String("engine", engineID), zap.Error(err))
		ctx.JSON(http.StatusOK, envelopeFailure(params, err))
		return
	}

	params["data_store_ids"] = ids
	if len(ids) == 0 {
		ctx.JSON(http.StatusOK, envelopeSuccess(params, map[string]any{
			"message":        "No data stores found for this engine",
			"data_store_ids": []string{},
		}))
		return
	}

	ctx.JSON(http.StatusOK, envelopeSuccess(params, map[string]any{
		"data_store_count": len(stores),
		"data_stores":      stores,
	}))
}

// ListAssistantsExplorer handles GET /api-explorer/list-assistants/:engine_id.
func ListAssistantsExplorer(ctx *gin.Context) {
	project := ctx.Query("project_number")
	engineID := ctx.Param("engine_id")
	params := map[string]any{
		"engine_id":   engineID,
		"location":    explorerLocation,
		"api_version": "v1alpha",
	}

	if project == "" {
		ctx.JSON(http.StatusOK, envelopeFailure(params, errMissingProject))
		return
	}

	client, err := newClient(project, explorerLocation)
	if err != nil {
		ctx.JSON(http.StatusOK, envelopeFailure(params, err))
		return
	}

	raw, err := client.ListAssistants(ctx.Request.Context(), engineID)
	if err != nil {
		common.Logger().Error("Listing assistants failed", zap.String("engine", engineID), zap.Error(err))
		ctx.JSON(http.StatusOK, envelopeFailure(params, err))
		return
	}

	var parsed struct {
		Assistants    []json.RawMessage `json:"assistants"`
		NextPageToken string            `json:"nextPageToken"`
	}
	_ = json.Unmarshal(raw, &parsed)

	ctx.JSON(http.StatusOK, envelopeSuccess(params, map[string]any{
		"assistant_count": len(parsed.Assistants),
		"assistants":      parsed.Assistants,
		"next_page_token": parsed.NextPageToken,
	}))
}

// ListAgentsExplorer handles GET /api-explorer/list-agents/:engine_id.
func ListAgentsExplorer(ctx *gin.Context) {
	project := ctx.Query("project_number")
	engineID := ctx.Param("engine_id")
	params := map[string]any{
		"engine_id":   engineID,
		"location":    explorerLocation,
		"api_version": "v1alpha",
	}

	if project == "" {
		ctx.JSON(http.StatusOK, envelopeFailure(params, errMissingProject))
		return
	}

	client, err := newClient(project, explorerLocation)
	if err != nil {
		ctx.JSON(http.StatusOK, envelopeFailure(params, err))
		return
	}

	raw, err := client.ListAgents(ctx.Request.Context(), engineID)
	if err != nil {
		common.Logger().Error("Listing agents failed", zap.String("engine", engineID), zap.Error(err))
		ctx.JSON(http.StatusOK, envelopeFailure(params, err))
		return
	}

	var parsed struct {
		Agents []json.RawMessage `json:"agents"`
	}
	_ = json.Unmarshal(raw, &parsed)

	ctx.JSON(http.StatusOK, envelopeSuccess(params, map[string]any{
		"agent_count": len(parsed.Agents),
		"agents":      parsed.Agents,
	}))
}

// GetAgentExplorer handles GET /api-explorer/get-agent/:engine_id/:agent_name.
func GetAgentExplorer(ctx *gin.Context) {
	project := ctx.Query("project_number")
	engineID := ctx.Param("engine_id")
	agentName := ctx.Param("agent_name")
	params := map[string]any{
		"engine_id":   engineID,
		"agent_name":  agentName,
		"location":    explorerLocation,
		"api_version": "v1alpha",
	}

	if project == "" {
		ctx.JSON(http.StatusOK, envelopeFailure(params, errMissingProject))
		return
	}

	client, err := newClient(project, explorerLocation)
	if err != nil {
		ctx.JSON(http.StatusOK, envelopeFailure(params, err))
		return
	}

	raw, err := client.GetAgent(ctx.Request.Context(), engineID, agentName)
	if err != nil {
		common.Logger().Error("Get agent failed", zap.String("agent", agentName), zap.Error(err))
		ctx.JSON(http.StatusOK, envelopeFailure(params, err))
		return
	}

	ctx.JSON(http.StatusOK, envelopeSuccess(params, json.RawMessage(raw)))
}

var errMissingProject = errors.New("project_number is required")

type assistRequest struct {
	EngineID      string `json:"engine_id"`
	AssistantID   string `json:"assistant_id"`
	Query         string `json:"query"`
	AgentName     string `json:"agent_name,omitempty"`
	SessionID     string `json:"session_id,omitempty"`
	ProjectNumber string `json:"project_number"`
}

// StreamAssist handles POST /api-explorer/stream-assist. The collaborator
// chunks are forwarded unmodified alongside the extracted answer and session
// info.
func StreamAssist(ctx *gin.Context) {
	var req assistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, envelopeFailure(nil, err))
		return
	}

	params := map[string]any{
		"engine_id":    req.EngineID,
		"assistant_id": req.AssistantID,
		"query":        req.Query,
		"agent_name":   req.AgentName,
		"session_id":   req.SessionID,
		"location":     explorerLocation,
		"api_version":  "v1alpha",
	}

	if req.ProjectNumber == "" {
		ctx.JSON(http.StatusOK, envelopeFailure(params, errMissingProject))
		return
	}

	client, err := newClient(req.ProjectNumber, explorerLocation)
	if err != nil {
		ctx.JSON(http.StatusOK, envelopeFailure(params, err))
		return
	}

	result, err := client.StreamAssist(ctx.Request.Context(), gcs.StreamAssistParams{
		EngineID:    req.EngineID,
		AssistantID: req.AssistantID,
		Query:       req.Query,
		AgentName:   req.AgentName,
		SessionID:   req.SessionID,
	})
	if err != nil {
		common.Logger().Error("Stream assist failed", zap.String("engine", req.EngineID), zap.Error(err))
		ctx.JSON(http.StatusOK, envelopeFailure(params, err))
		return
	}

	envelope := envelopeSuccess(params, map[string]any{
		"chunks":      result.Chunks,
		"chunk_count": len(result.Chunks),
		"answer":      result.Answer,
		"skipped":     result.Skipped,
	})
	envelope.SessionInfo = map[string]any{
		"session_id":        result.SessionID,
		"full_session_path": result.SessionPath,
		"query_id":          result.QueryID,
	}
	ctx.JSON(http.StatusOK, envelope)
}

type webGroundingRequest struct {
	EngineID      string `json:"engine_id"`
	AssistantID   string `json:"assistant_id"`
	Query         string `json:"query"`
	ProjectNumber string `json:"project_number"`
}

// WebGroundingSearch handles POST /api-explorer/web-grounding-search.
func WebGroundingSearch(ctx *gin.Context) {
	var req webGroundingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, envelopeFailure(nil, err))
		return
	}

	params := map[string]any{
		"engine_id":            req.EngineID,
		"assistant_id":         req.AssistantID,
		"query":                req.Query,
		"location":             explorerLocation,
		"api_version":          "v1alpha",
		"web_grounding_enabled": true,
	}

	if req.ProjectNumber == "" {
		ctx.JSON(http.StatusOK, envelopeFailure(params, errMissingProject))
		return
	}

	client, err := newClient(req.ProjectNumber, explorerLocation)
	if err != nil {
		ctx.JSON(http.StatusOK, envelopeFailure(params, err))
		return
	}

	result, err := client.StreamAssist(ctx.Request.Context(), gcs.StreamAssistParams{
		EngineID:     req.EngineID,
		AssistantID:  req.AssistantID,
		Query:        req.Query,
		WebGrounding: true,
	})
	if err != nil {
		common.Logger().Error("Web grounding search failed", zap.String("engine", req.EngineID), zap.Error(err))
		ctx.JSON(http.StatusOK, envelopeFailure(params, err))
		return
	}

	ctx.JSON(http.StatusOK, envelopeSuccess(params, map[string]any{
		"chunks":      result.Chunks,
		"chunk_count": len(result.Chunks),
		"answer":      result.Answer,
		"citations":   result.Citations,
	}))
}
