package middlewares

import (
	"fmt"
	"net/http"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/common"
	"github.com/0nri/gemini-enterprise-api-explorer/pkg/models"
)

// Recover is a middleware that recovers from panics.
// It logs the error and returns a 500 Internal Server Error.
func Recover() gin.HandlerFunc {
	return ginzap.CustomRecoveryWithZap(common.Logger(), true, func(ctx *gin.Context, err any) {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:  "internal server error",
			Detail: fmt.Sprintf("%v", err),
		})
	})
}
