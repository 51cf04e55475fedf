// Package api wires the explorer routes into a gin engine.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/api/endpoints"
	"github.com/0nri/gemini-enterprise-api-explorer/pkg/api/middlewares"
)

// RouterConfig carries the tunable parts of the middleware pipeline.
type RouterConfig struct {
	Version    string
	LimitRPS   float64
	LimitBurst int
}

// NewRouter builds the gin engine with its middleware pipeline and the full
// route table.
func NewRouter(config RouterConfig) *gin.Engine {
	router := gin.New(func(e *gin.Engine) {
		// Recover from panics.
		e.Use(middlewares.Recover())
		// Tag every request with an id before it is logged.
		e.Use(middlewares.RequestID())
		// Log all requests.
		e.Use(middlewares.Logger())
		// Setup CORS.
		e.Use(middlewares.CORS())
		// Use the rate limiting middleware.
		e.Use(middlewares.Rate(config.LimitRPS, config.LimitBurst))
	})

	// Health check route, used for deployment monitoring.
	router.Match([]string{http.MethodHead, http.MethodGet}, "/health", endpoints.CheckHealth)
	router.GET("/", endpoints.Banner(config.Version))

	agents := router.Group("/agents")
	{
		agents.GET("/", endpoints.ListAgents)
		agents.GET("/health/check", endpoints.ServiceHealth("agents"))
		agents.GET("/:engine_id", endpoints.GetAgent)
	}

	search := router.Group("/search")
	{
		search.POST("/", endpoints.Search)
		search.GET("/health", endpoints.ServiceHealth("search"))
	}

	conversations := router.Group("/conversations")
	{
		conversations.POST("/", endpoints.Converse)
		conversations.POST("/stream", endpoints.ConverseStream)
		conversations.GET("/health", endpoints.ServiceHealth("conversations"))
	}

	notebooks := router.Group("/notebooks")
	{
		notebooks.POST("/", endpoints.CreateNotebook)
		notebooks.GET("/", endpoints.ListNotebooks)
		notebooks.GET("/health/check", endpoints.ServiceHealth("notebooks"))
		notebooks.POST("/batch-delete", endpoints.BatchDeleteNotebooks)
		notebooks.POST("/share", endpoints.ShareNotebook)
		notebooks.GET("/url/:notebook_id", endpoints.GetNotebookURL)
		notebooks.GET("/:notebook_id", endpoints.GetNotebook)
		notebooks.POST("/:notebook_id/sources/batch-create", endpoints.BatchCreateSources)
		notebooks.POST("/:notebook_id/sources/batch-delete", endpoints.BatchDeleteSources)
		notebooks.POST("/:notebook_id/sources/upload", endpoints.UploadSource)
		notebooks.GET("/:notebook_id/sources/:source_id", endpoints.GetSource)
	}

	explorer := router.Group("/api-explorer")
	{
		explorer.GET("/engine-details/:engine_id", endpoints.EngineDetails)
		explorer.GET("/engine-data-stores/:engine_id", endpoints.EngineDataStores)
		explorer.GET("/list-assistants/:engine_id", endpoints.ListAssistantsExplorer)
		explorer.GET("/list-agents/:engine_id", endpoints.ListAgentsExplorer)
		explorer.GET("/get-agent/:engine_id/:agent_name", endpoints.GetAgentExplorer)
		explorer.POST("/stream-assist", endpoints.StreamAssist)
		explorer.POST("/web-grounding-search", endpoints.WebGroundingSearch)
	}

	return router
}
