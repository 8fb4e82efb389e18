package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spacesedan/trendscope/internal/models"
	"github.com/spacesedan/trendscope/internal/providers"
)

const (
	defaultNewsLimit   = 10
	defaultNewsHours   = 24
	defaultReportLimit = 20
)

type analyzeRequest struct {
	Keyword string              `json:"keyword"`
	News    []models.NewsRecord `json:"news"`
}

func (h *handlers) index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "trendscope",
		"version": "v1",
		"endpoints": gin.H{
			"POST /api/v1/sentiment": "score a batch of news records",
			"POST /api/v1/trend":     "predict the trend of a batch of news records",
			"POST /api/v1/analyze":   "score, predict and store a report",
			"GET /api/v1/news":       "fetch news for a keyword",
			"GET /api/v1/reports":    "list stored reports",
		},
	})
}

func bindBatch(c *gin.Context) (analyzeRequest, bool) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return req, false
	}
	return req, true
}

func (h *handlers) sentiment(c *gin.Context) {
	req, ok := bindBatch(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Pipeline.Analyzer().Analyze(req.News))
}

func (h *handlers) trend(c *gin.Context) {
	req, ok := bindBatch(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Pipeline.Predictor().Predict(req.News, nil))
}

func (h *handlers) analyze(c *gin.Context) {
	req, ok := bindBatch(c)
	if !ok {
		return
	}

	report, err := h.Pipeline.Run(c.Request.Context(), req.Keyword, req.News)
	if err != nil {
		// The analysis itself succeeded; only persistence failed.
		slog.Warn("[API] Report not stored", slog.String("error", err.Error()))
		c.Header("X-Report-Stored", "false")
	}
	c.JSON(http.StatusOK, report)
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return n, nil
}

func newsError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"status":  "error",
		"message": message,
		"data":    []models.NewsRecord{},
		"count":   0,
	})
}

func (h *handlers) news(c *gin.Context) {
	if h.News == nil {
		newsError(c, http.StatusServiceUnavailable, "news retrieval is not configured")
		return
	}

	keyword := strings.TrimSpace(c.Query("keyword"))
	if keyword == "" {
		newsError(c, http.StatusBadRequest, "missing keyword parameter")
		return
	}
	source := strings.ToLower(c.DefaultQuery("source", providers.SourceAll))
	limit, err := queryInt(c, "limit", defaultNewsLimit)
	if err != nil {
		newsError(c, http.StatusBadRequest, err.Error())
		return
	}
	hours, err := queryInt(c, "hours", defaultNewsHours)
	if err != nil {
		newsError(c, http.StatusBadRequest, err.Error())
		return
	}

	start := h.Clock.Now()
	records, err := h.News.Fetch(c.Request.Context(), source, providers.Query{Keyword: keyword, Limit: limit, Hours: hours})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, providers.ErrUnknownProvider) {
			status = http.StatusBadRequest
		}
		newsError(c, status, "failed to fetch news: "+err.Error())
		return
	}
	if records == nil {
		records = []models.NewsRecord{}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"message":      fmt.Sprintf("fetched %d news records", len(records)),
		"data":         records,
		"count":        len(records),
		"elapsed_time": fmt.Sprintf("%.2fs", h.Clock.Since(start).Seconds()),
		"keyword":      keyword,
		"source":       source,
		"limit":        limit,
		"hours":        hours,
		"sources":      h.Sources,
	})
}

func (h *handlers) reports(c *gin.Context) {
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "report storage is not configured"})
		return
	}
	limit, err := queryInt(c, "limit", defaultReportLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reports, err := h.Store.ListReports(c.Request.Context(), c.Query("keyword"), limit)
	if err != nil {
		slog.Error("[API] Failed to list reports", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}
	if reports == nil {
		reports = []models.Report{}
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports, "count": len(reports)})
}
