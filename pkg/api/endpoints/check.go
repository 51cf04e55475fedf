package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckHealth is a health check endpoint.
// It returns a 200 OK status code.
func CheckHealth(ctx *gin.Context) { ctx.Status(http.StatusOK) }

// ServiceHealth reports a named route family as healthy.
func ServiceHealth(service string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "healthy", "service": service})
	}
}

// Banner describes the service and its endpoint index on GET /.
func Banner(version string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"name":    "agentspace-explorer",
			"version": version,
			"endpoints": []string{
				"/agents/",
				"/search/",
				"/conversations/",
				"/conversations/stream",
				"/notebooks/",
				"/api-explorer/",
			},
		})
	}
}
