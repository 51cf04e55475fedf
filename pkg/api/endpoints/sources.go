package endpoints

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/common"
	"github.com/0nri/gemini-enterprise-api-explorer/pkg/models"
)

// BatchCreateSources handles POST /notebooks/:notebook_id/sources/batch-create.
func BatchCreateSources(ctx *gin.Context) {
	var req models.SourceBatchCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Detail: err.Error()})
		return
	}

	project, location, ok := tenantBody(ctx, req.ProjectNumber, req.Location)
	if !ok {
		return
	}
	if len(req.UserContents) == 0 {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "user_contents is required"})
		return
	}

	client, err := newClient(project, location)
	if err != nil {
		upstreamError(ctx, err)
		return
	}

	notebookID := ctx.Param("notebook_id")
	resp, err := client.BatchCreateSources(ctx.Request.Context(), notebookID, req.UserContents)
	if err != nil {
		common.Logger().Error("Source batch create failed", zap.String("notebookId", notebookID), zap.Error(err))
		upstreamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetSource handles GET /notebooks/:notebook_id/sources/:source_id.
func GetSource(ctx *gin.Context) {
	project, location, ok := tenantQuery(ctx)
	if !ok {
		return
	}

	client, err := newClient(project, location)
	if err != nil {
		upstreamError(ctx, err)
		return
	}

	source, err := client.GetSource(ctx.Request.Context(), ctx.Param("notebook_id"), ctx.Param("source_id"))
	if err != nil {
		upstreamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, source)
}

// BatchDeleteSources handles POST /notebooks/:notebook_id/sources/batch-delete.
func BatchDeleteSources(ctx *gin.Context) {
	var req models.SourceBatchDeleteRequest
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

	notebookID := ctx.Param("notebook_id")
	if err := client.BatchDeleteSources(ctx.Request.Context(), notebookID, req.Names); err != nil {
		common.Logger().Error("Source batch delete failed", zap.String("notebookId", notebookID), zap.Error(err))
		upstreamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"deleted": len(req.Names)})
}

// UploadSource handles POST /notebooks/:notebook_id/sources/upload. The file
// bytes are the raw request body. A missing content_type is derived from the
// file name extension.
func UploadSource(ctx *gin.Context) {
	project, location, ok := tenantQuery(ctx)
	if !ok {
		return
	}

	fileName := ctx.Query("file_name")
	if fileName == "" {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file_name is required"})
		return
	}

	contentType := ctx.Query("content_type")
	if contentType == "" {
		contentType = common.ContentTypeFor(fileName)
	}

	data, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "reading request body failed", Detail: err.Error()})
		return
	}
	if len(data) == 0 {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "no file data received in request body"})
		return
	}

	client, err := newClient(project, location)
	if err != nil {
		upstreamError(ctx, err)
		return
	}

	notebookID := ctx.Param("notebook_id")
	resp, err := client.UploadFileSource(ctx.Request.Context(), notebookID, data, fileName, contentType)
	if err != nil {
		common.Logger().Error("Source upload failed",
			zap.String("notebookId", notebookID),
			zap.String("fileName", fileName),
			zap.Error(err),
		)
		upstreamError(ctx, err)
		return
	}

	common.Logger().Info("Uploaded source",
		zap.String("notebookId", notebookID),
		zap.String("fileName", fileName),
		zap.Int("bytes", len(data)),
	)
	ctx.JSON(http.StatusOK, resp)
}
