package middlewares

import (
	"net/http"
	"net/url"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/common"
)

// CORS allows browser access from localhost and the configured frontend origin.
func CORS() gin.HandlerFunc {
	config := cors.Config{}
	config.AllowCredentials = true
	config.AddAllowHeaders("X-Requested-With", "Content-Type", "Authorization", "Origin", "Accept")
	config.AddExposeHeaders("Content-Disposition", "X-Request-Id")
	config.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	config.AllowOriginFunc = func(origin string) bool {
		parsed, err := url.Parse(origin)
		if err != nil {
			return false
		}

		if hostname := parsed.Hostname(); hostname == "localhost" || hostname == "127.0.0.1" {
			return true
		}

		if frontend := common.ConfigFrontendURL(); frontend != "" {
			if allowed, err := url.Parse(frontend); err == nil && allowed.Hostname() == parsed.Hostname() {
				return true
			}
		}

		return false
	}
	if err := config.Validate(); err != nil {
		common.Logger().Fatal("Invalid CORS configuration", zap.Error(err))
	}

	return cors.New(config)
}
