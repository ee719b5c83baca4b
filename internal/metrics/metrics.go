// Package metrics defines Prometheus metrics for the analysis pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis Metrics
var (
	// MessagesAnalyzed tracks scored messages by resulting label.
	MessagesAnalyzed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_messages_analyzed_total",
			Help: "Total messages scored, by resulting label",
		},
		[]string{"label"},
	)

	// ConversationsAnalyzed tracks full conversation analyses.
	ConversationsAnalyzed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentiment_conversations_analyzed_total",
			Help: "Total conversation-level analyses performed",
		},
	)

	// AnalysisDuration tracks time spent scoring a request in seconds.
	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentiment_analysis_duration_seconds",
			Help:    "Analysis duration in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1},
		},
		[]string{"operation"},
	)
)

// Score Cache Metrics
var (
	// ScoreCacheHits tracks score cache hits.
	ScoreCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "score_cache_hits_total",
			Help: "Total score cache hits",
		},
	)

	// ScoreCacheMisses tracks score cache misses.
	ScoreCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "score_cache_misses_total",
			Help: "Total score cache misses",
		},
	)

	// ScoreCacheEvictions tracks expired entries removed from the score cache.
	ScoreCacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "score_cache_evictions_total",
			Help: "Total expired score cache entries evicted",
		},
	)

	// ScoreCacheSize tracks the current number of score cache entries.
	ScoreCacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "score_cache_size",
			Help: "Current number of score cache entries (including expired)",
		},
	)
)

// Feed Metrics
var (
	// FeedConnectedClients tracks connected WebSocket feed clients.
	FeedConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feed_connected_clients",
			Help: "Number of connected WebSocket feed clients across all sessions",
		},
	)

	// FeedMessagesSent tracks feed updates pushed to clients.
	FeedMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_messages_sent_total",
			Help: "Total feed updates pushed to WebSocket clients",
		},
	)

	// FeedSendFailures tracks dropped feed updates due to slow clients.
	FeedSendFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_send_failures_total",
			Help: "Total feed updates dropped because a client could not keep up",
		},
	)
)

// History Store Metrics
var (
	// HistoryOpsTotal tracks history store operations by backend and status.
	HistoryOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_operations_total",
			Help: "Total history store operations by backend, operation and status",
		},
		[]string{"backend", "operation", "status"},
	)
)
