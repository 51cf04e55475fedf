package middlewares

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/common"
)

// Logger is a middleware that logs every request with its outcome.
func Logger() gin.HandlerFunc {
	return ginzap.GinzapWithConfig(common.Logger(), &ginzap.Config{
		TimeFormat:   time.RFC3339,
		UTC:          true,
		DefaultLevel: zapcore.DebugLevel,
		Context: func(ctx *gin.Context) []zapcore.Field {
			return []zapcore.Field{
				zap.String("request_id", RequestIDFromContext(ctx)),
			}
		},
	})
}
