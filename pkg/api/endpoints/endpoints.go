// Package endpoints implements the HTTP handlers of the explorer backend.
// Handlers validate their inputs before any collaborator call, construct a
// per-request client from the tenant parameters and translate collaborator
// failures into the route family's error shape.
package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/common"
	"github.com/0nri/gemini-enterprise-api-explorer/pkg/gcs"
	"github.com/0nri/gemini-enterprise-api-explorer/pkg/models"
)

// newClient builds the collaborator client for a request. Declared as a
// variable so handler tests can substitute a client bound to a test server.
var newClient = func(project, location string) (*gcs.Client, error) {
	return gcs.New(project, location)
}

// tenantQuery extracts and validates project_number and location from the
// query string. On failure it writes a 400 response and returns ok=false.
func tenantQuery(ctx *gin.Context) (project, location string, ok bool) {
	project = ctx.Query("project_number")
	if project == "" {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "project_number is required"})
		return "", "", false
	}

	location = ctx.DefaultQuery("location", common.ConfigDefaultLocation())
	if !gcs.ValidLocation(location) {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:  "invalid location",
			Detail: "location must be one of us, eu, global",
		})
		return "", "", false
	}

	return project, location, true
}

// tenantBody validates tenant fields carried in a request body.
func tenantBody(ctx *gin.Context, project, location string) (string, string, bool) {
	if project == "" {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "project_number is required"})
		return "", "", false
	}

	if location == "" {
		location = common.ConfigDefaultLocation()
	}
	if !gcs.ValidLocation(location) {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:  "invalid location",
			Detail: "location must be one of us, eu, global",
		})
		return "", "", false
	}

	return project, location, true
}

// upstreamError maps a collaborator failure onto the typed route error shape.
// Client-side validation failures become 400, everything else 502.
func upstreamError(ctx *gin.Context, err error) {
	switch apiErr, ok := gcs.AsAPIError(err); {
	case errors.Is(err, gcs.ErrInvalidArgument):
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Detail: err.Error()})
	case ok:
		ctx.JSON(http.StatusBadGateway, models.ErrorResponse{Error: apiErr.Status, Detail: string(apiErr.Body)})
	default:
		ctx.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "upstream request failed", Detail: err.Error()})
	}
}
