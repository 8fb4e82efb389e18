package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spacesedan/trendscope/internal/processing"
)

// Deps are the services the HTTP API exposes. News and Store may be nil,
// in which case their endpoints answer 503.
type Deps struct {
	Pipeline *processing.Pipeline
	News     processing.Fetcher
	Sources  []string
	Store    processing.ReportStore
	Clock    clockwork.Clock
}

type handlers struct {
	Deps
}

func SetupRouter(deps Deps) *gin.Engine {
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	h := &handlers{Deps: deps}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/", h.index)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		api.POST("/sentiment", h.sentiment)
		api.POST("/trend", h.trend)
		api.POST("/analyze", h.analyze)
		api.GET("/news", h.news)
		api.GET("/reports", h.reports)
	}

	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("[API] Request served",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)))
	}
}
