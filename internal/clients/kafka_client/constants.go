package kafka_client

import "time"

const (
	KAFKA_TOPIC_NEWS_BATCHES  = "news-batches"  // keyword batches of fetched news waiting for analysis
	KAFKA_TOPIC_TREND_REPORTS = "trend-reports" // finished reports waiting to be stored
)

const (
	MAX_RETRIES  = 5
	RETRY_DELAY  = 2 * time.Second
	POLL_TIMEOUT = 500 * time.Millisecond
)
