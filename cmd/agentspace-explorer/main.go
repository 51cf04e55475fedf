package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/api"
	"github.com/0nri/gemini-enterprise-api-explorer/pkg/common"
)

const version = "1.0.0"

var (
	defaultLocation  = flag.String("default-location", common.Getenv("DEFAULT_LOCATION", "us"), "location used when a request does not name one (us, eu, global)")
	defaultPageSize  = flag.Int("default-page-size", common.Getenv("DEFAULT_PAGE_SIZE", 10), "default search page size")
	frontendURL      = flag.String("frontend-url", common.Getenv("FRONTEND_URL", ""), "frontend origin allowed by CORS, localhost is always allowed")
	languageCode     = flag.String("language-code", common.Getenv("LANGUAGE_CODE", "en"), "language code sent with search requests")
	limitBurst       = flag.Uint("limit-burst", 12, "burst size for rate limiting")
	limitRPS         = flag.Float64("limit-rps", 90, "requests per second for rate limiting")
	notebookPageSize = flag.Int("notebook-page-size", common.Getenv("NOTEBOOK_PAGE_SIZE", 500), "default notebook listing page size")
	port             = flag.Uint("port", common.Getenv[uint]("PORT", 8000), "port to listen on")
	upstreamOverride = flag.String("upstream-override", common.Getenv("UPSTREAM_OVERRIDE", ""), "override the collaborator base URL, intended for local testing")
	upstreamTimeout  = flag.Duration("upstream-timeout", common.Getenv("UPSTREAM_TIMEOUT", 2*time.Minute), "timeout for collaborator requests")
)

func main() {
	flag.Parse()
	gin.SetMode(gin.ReleaseMode)

	defer func() { _ = common.Logger().Sync() }()

	common.Logger().Info("Starting server",
		zap.Uintp("port", port),
		zap.Float64p("limitRPS", limitRPS),
		zap.Uintp("limitBurst", limitBurst),
		zap.Stringp("defaultLocation", defaultLocation),
		zap.Stringp("frontendURL", frontendURL),
		zap.Durationp("upstreamTimeout", upstreamTimeout),
	)

	common.Configure(
		common.WithDefaultLocation(*defaultLocation),
		common.WithDefaultPageSize(*defaultPageSize),
		common.WithNotebookPageSize(*notebookPageSize),
		common.WithLanguageCode(*languageCode),
		common.WithFrontendURL(*frontendURL),
		common.WithUpstreamOverride(*upstreamOverride),
		common.WithUpstreamTimeout(*upstreamTimeout),
	)

	server := &http.Server{
		Addr:     fmt.Sprintf(":%d", *port),
		ErrorLog: log.New(io.Discard, "", 0), // Disable the default logger.
		Handler: api.NewRouter(api.RouterConfig{
			Version:    version,
			LimitRPS:   *limitRPS,
			LimitBurst: int(*limitBurst),
		}),
	}

	if err := server.ListenAndServe(); err != nil {
		common.Logger().Fatal("Server error", zap.Error(err))
	}
}
