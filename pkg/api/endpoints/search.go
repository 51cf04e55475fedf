package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/common"
	"github.com/0nri/gemini-enterprise-api-explorer/pkg/models"
)

// Search handles POST /search/.
func Search(ctx *gin.Context) {
	var req models.SearchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Detail: err.Error()})
		return
	}

	project, location, ok := tenantBody(ctx, req.ProjectNumber, req.Location)
	if !ok {
		return
	}
	if req.Query == "" {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "query is required"})
		return
	}
	if req.EngineID == "" {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "engine_id is required"})
		return
	}

	client, err := newClient(project, location)
	if err != nil {
		upstreamError(ctx, err)
		return
	}

	spellCorrection := req.SpellCorrection == nil || *req.SpellCorrection

	result, err := client.Search(ctx.Request.Context(), req.EngineID, req.Query, req.PageSize, spellCorrection)
	if err != nil {
		common.Logger().Error("Search failed", zap.String("engine", req.EngineID), zap.Error(err))
		upstreamError(ctx, err)
		return
	}

	common.Logger().Info("Search succeeded",
		zap.String("engine", req.EngineID),
		zap.Int("totalSize", result.TotalSize),
	)
	ctx.JSON(http.StatusOK, result)
}
