package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the recruit API.
type Metrics struct {
	// Ingestion metrics
	EventsIngested *prometheus.CounterVec
	IngestBatches  *prometheus.CounterVec

	// Aggregation metrics
	AggregationDuration prometheus.Histogram

	// Lead metrics
	ContactMessages prometheus.Counter
	ChatTranscripts prometheus.Counter

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		EventsIngested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_ingested_total",
				Help:      "Total number of interaction events ingested",
			},
			[]string{"action_type", "user_type"},
		),
		IngestBatches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ingest_batches_total",
				Help:      "Total number of ingest requests by outcome",
			},
			[]string{"status"},
		),
		AggregationDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "aggregation_duration_seconds",
				Help:      "Duration of worker-stats aggregation queries",
				Buckets:   prometheus.DefBuckets,
			},
		),
		ContactMessages: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "contact_messages_total",
				Help:      "Total number of contact-form submissions",
			},
		),
		ChatTranscripts: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chat_transcripts_total",
				Help:      "Total number of captured chatbot transcripts",
			},
		),
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_hits_total",
				Help:      "Total number of rate-limited requests",
			},
			[]string{"path"},
		),
	}
}

// RecordEvent records one ingested interaction event.
func (m *Metrics) RecordEvent(actionType, userType string) {
	m.EventsIngested.WithLabelValues(actionType, userType).Inc()
}

// RecordIngestBatch records an ingest request outcome.
func (m *Metrics) RecordIngestBatch(status string) {
	m.IngestBatches.WithLabelValues(status).Inc()
}

// RecordAggregation records the duration of one aggregation query.
func (m *Metrics) RecordAggregation(d time.Duration) {
	m.AggregationDuration.Observe(d.Seconds())
}

// RecordHTTPRequest records one completed HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, d time.Duration) {
	m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// RecordRateLimitHit records a rate limit hit.
func (m *Metrics) RecordRateLimitHit(path string) {
	m.RateLimitHits.WithLabelValues(path).Inc()
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
