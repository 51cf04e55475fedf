package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/common"
	"github.com/0nri/gemini-enterprise-api-explorer/pkg/models"
)

// ListAgents handles GET /agents/ and returns every engine visible to the
// tenant. An empty engine list is a successful response.
func ListAgents(ctx *gin.Context) {
	project, location, ok := tenantQuery(ctx)
	if !ok {
		return
	}

	client, err := newClient(project, location)
	if err != nil {
		upstreamError(ctx, err)
		return
	}

	engines, err := client.ListEngines(ctx.Request.Context())
	if err != nil {
		common.Logger().Error("Listing engines failed", zap.String("project", project), zap.Error(err))
		upstreamError(ctx, err)
		return
	}

	common.Logger().Info("Listed engines", zap.String("project", project), zap.Int("count", len(engines)))
	ctx.JSON(http.StatusOK, models.EngineListResponse{Engines: engines})
}

// GetAgent handles GET /agents/:engine_id.
func GetAgent(ctx *gin.Context) {
	project, location, ok := tenantQuery(ctx)
	if !ok {
		return
	}

	client, err := newClient(project, location)
	if err != nil {
		upstreamError(ctx, err)
		return
	}

	engine, err := client.GetEngine(ctx.Request.Context(), ctx.Param("engine_id"))
	if err != nil {
		upstreamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, engine)
}
