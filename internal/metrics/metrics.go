package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis metrics
var (
	// AnalysesTotal counts completed analyses by predicted trend
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendscope_analyses_total",
			Help: "Total analyses by predicted trend",
		},
		[]string{"trend"},
	)

	// ArticlesScoredTotal counts scored articles by sentiment label
	ArticlesScoredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendscope_articles_scored_total",
			Help: "Total scored articles by sentiment label",
		},
		[]string{"label"},
	)

	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trendscope_analysis_duration_seconds",
			Help:    "Time to analyse one batch of news in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)
)

// Retrieval and storage metrics
var (
	// ProviderFetchTotal counts provider fetches by provider and status (success/error)
	ProviderFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendscope_provider_fetch_total",
			Help: "Total provider fetches by provider and status",
		},
		[]string{"provider", "status"},
	)

	ReportsStoredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendscope_reports_stored_total",
			Help: "Total report writes by status",
		},
		[]string{"status"},
	)
)
