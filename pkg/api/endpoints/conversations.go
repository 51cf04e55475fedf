package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/common"
	"github.com/0nri/gemini-enterprise-api-explorer/pkg/models"
)

func bindConversationRequest(ctx *gin.Context) (*models.ConversationRequest, bool) {
	var req models.ConversationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Detail: err.Error()})
		return nil, false
	}

	project, location, ok := tenantBody(ctx, req.ProjectNumber, req.Location)
	if !ok {
		return nil, false
	}
	req.ProjectNumber, req.Location = project, location

	if req.Query == "" {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "query is required"})
		return nil, false
	}
	if req.EngineID == "" {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "engine_id is required"})
		return nil, false
	}

	return &req, true
}

// Converse handles POST /conversations/ without streaming.
func Converse(ctx *gin.Context) {
	req, ok := bindConversationRequest(ctx)
	if !ok {
		return
	}

	client, err := newClient(req.ProjectNumber, req.Location)
	if err != nil {
		upstreamError(ctx, err)
		return
	}

	resp, err := client.Converse(ctx.Request.Context(), req.EngineID, req.Query, req.ConversationID)
	if err != nil {
		common.Logger().Error("Conversation failed", zap.String("engine", req.EngineID), zap.Error(err))
		upstreamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// ConverseStream handles POST /conversations/stream. The reply is a
// Server-Sent Events stream of conversation chunks with a terminal event of
// type "done", or "error" when the conversation fails mid-stream.
func ConverseStream(ctx *gin.Context) {
	req, ok := bindConversationRequest(ctx)
	if !ok {
		return
	}

	client, err := newClient(req.ProjectNumber, req.Location)
	if err != nil {
		upstreamError(ctx, err)
		return
	}

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("X-Accel-Buffering", "no")
	ctx.Writer.WriteHeader(http.StatusOK)
	ctx.Writer.Flush()

	writeEvent := func(chunk models.ConversationChunk) {
		payload, err := json.Marshal(chunk)
		if err != nil {
			common.Logger().Error("Encoding stream chunk failed", zap.Error(err))
			return
		}
		fmt.Fprintf(ctx.Writer, "data: %s\n\n", payload)
		ctx.Writer.Flush()
	}

	count := 0
	for chunk := range client.ConverseStream(ctx.Request.Context(), req.EngineID, req.Query, req.ConversationID) {
		count++
		writeEvent(chunk)
		if chunk.Type == "error" {
			common.Logger().Error("Conversation stream failed", zap.String("engine", req.EngineID), zap.String("error", chunk.Error))
			return
		}
	}

	common.Logger().Info("Conversation stream completed", zap.Int("chunks", count))
	writeEvent(models.ConversationChunk{Type: "done"})
}
