package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	ChatRequests     *prometheus.CounterVec
	TurnsRecorded    prometheus.Counter
	StoreErrors      *prometheus.CounterVec
	TrendingUpdates  prometheus.Counter
	RetrievalLatency prometheus.Histogram
	ContextSize      prometheus.Histogram
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ChatRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_requests_total",
			Help:      "Chat requests by transport and outcome.",
		}, []string{"transport", "outcome"}),
		TurnsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_recorded_total",
			Help:      "Conversation turns persisted.",
		}),
		StoreErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Document store errors by operation.",
		}, []string{"op"}),
		TrendingUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trending_updates_total",
			Help:      "Sampled global topic window updates.",
		}),
		RetrievalLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "retrieval_latency_ms",
			Help:      "Context retrieval latency in milliseconds.",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500},
		}),
		ContextSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "context_turns",
			Help:      "Merged working-set size in turns.",
			Buckets:   []float64{0, 1, 2, 4, 6, 8, 10},
		}),
	}
}

func (m *Metrics) ObserveRetrievalLatency(d time.Duration) {
	m.RetrievalLatency.Observe(float64(d.Milliseconds()))
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
