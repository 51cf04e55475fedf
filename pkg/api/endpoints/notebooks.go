package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/common"
	"github.com/0nri/gemini-enterprise-api-explorer/pkg/gcs"
	"github.com/0nri/gemini-enterprise-api-explorer/pkg/models"
)

// CreateNotebook handles POST /notebooks/. An empty title is rejected before
// any collaborator call.
func CreateNotebook(ctx *gin.Context) {
	var req models.NotebookCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Detail: err.Error()})
		return
	}

	project, location, ok := tenantBody(ctx, req.ProjectNumber, req.Location)
	if !ok {
		return
	}
	if req.Title == "" {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "title is required"})
		return
	}

	client, err := newClient(project, location)
	if err != nil {
		upstreamError(ctx, err)
		return
	}

	notebook, err := client.CreateNotebook(ctx.Request.Context(), req.Title)
	if err != nil {
		common.Logger().Error("Notebook creation failed", zap.String("title", req.Title), zap.Error(err))
		upstreamError(ctx, err)
		return
	}

	common.Logger().Info("Created notebook", zap.String("notebookId", notebook.NotebookID))
	ctx.JSON(http.StatusOK, notebook)
}

// GetNotebook handles GET /notebooks/:notebook_id.
func GetNotebook(ctx *gin.Context) {
	project, location, ok := tenantQuery(ctx)
	if !ok {
		return
	}

	client, err := newClient(project, location)
	if err != nil {
		upstreamError(ctx, err)
		return
	}

	notebook, err := client.GetNotebook(ctx.Request.Context(), ctx.Param("notebook_id"))
	if err != nil {
		upstreamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, notebook)
}

// ListNotebooks handles GET /notebooks/ and returns the recently viewed
// notebooks of the caller.
func ListNotebooks(ctx *gin.Context) {
	project, location, ok := tenantQuery(ctx)
	if !ok {
		return
	}

	pageSize := 0
	if raw := ctx.Query("page_size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 1000 {
			ctx.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:  "invalid page_size",
				Detail: "page_size must be an integer between 1 and 1000",
			})
			return
		}
		pageSize = parsed
	}

	client, err := newClient(project, location)
	if err != nil {
		upstreamError(ctx, err)
		return
	}

	list, err := client.ListRecentlyViewedNotebooks(ctx.Request.Context(), pageSize)
	if err != nil {
		common.Logger().Error("Listing notebooks failed", zap.String("project", project), zap.Error(err))
		upstreamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, list)
}

// BatchDeleteNotebooks handles POST /notebooks/batch-delete.
func BatchDeleteNotebooks(ctx *gin.Context) {
	var req models.NotebookBatchDeleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Detail: err.Error()})
		return
	}

	project, location, ok := tenantBody(ctx, req.ProjectNumber, req.Location)
	if !ok {
		return
	}
	if len(req.Names) == 0 {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "names is required"})
		return
	}

	client, err := newClient(project, location)
	if err != nil {
		upstreamError(ctx, err)
		return
	}

	if err := client.BatchDeleteNotebooks(ctx.Request.Context(), req.Names); err != nil {
		common.Logger().Error("Notebook batch delete failed", zap.Int("count", len(req.Names)), zap.Error(err))
		upstreamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"deleted": len(req.Names)})
}

// ShareNotebook handles POST /notebooks/share.
func ShareNotebook(ctx *gin.Context) {
	var req models.NotebookShareRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Detail: err.Error()})
		return
	}

	project, location, ok := tenantBody(ctx, req.ProjectNumber, req.Location)
	if !ok {
		return
	}
	if req.NotebookID == "" {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "notebook_id is required"})
		return
	}
	if len(req.AccountAndRoles) == 0 {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "account_and_roles is required"})
		return
	}

	client, err := newClient(project, location)
	if err != nil {
		upstreamError(ctx, err)
		return
	}

	if err := client.ShareNotebook(ctx.Request.Context(), req.NotebookID, req.AccountAndRoles); err != nil {
		common.Logger().Error("Notebook share failed", zap.String("notebookId", req.NotebookID), zap.Error(err))
		upstreamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"shared": len(req.AccountAndRoles)})
}

// GetNotebookURL handles GET /notebooks/url/:notebook_id. No collaborator
// call is needed, the URL is derived from the tenant parameters.
func GetNotebookURL(ctx *gin.Context) {
	project, location, ok := tenantQuery(ctx)
	if !ok {
		return
	}

	useGoogleIdentity := true
	if raw := ctx.Query("use_google_identity"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid use_google_identity", Detail: err.Error()})
			return
		}
		useGoogleIdentity = parsed
	}

	notebookID := ctx.Param("notebook_id")
	ctx.JSON(http.StatusOK, models.NotebookURLResponse{
		URL:        gcs.NotebookURL(project, location, notebookID, useGoogleIdentity),
		NotebookID: notebookID,
	})
}
