package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the bot.
type Metrics struct {
	ActiveSessions         prometheus.Gauge
	ConversationsStarted   prometheus.Counter
	ConversationsCompleted prometheus.Counter
	ConversationsCancelled prometheus.Counter
	StoreErrors            prometheus.Counter
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of in-flight intake conversations.",
		}),
		ConversationsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversations_started_total",
			Help:      "Intake conversations started with /start.",
		}),
		ConversationsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversations_completed_total",
			Help:      "Intake conversations that produced a stored record.",
		}),
		ConversationsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversations_cancelled_total",
			Help:      "Intake conversations aborted with /cancel.",
		}),
		StoreErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Record store failures surfaced to users.",
		}),
	}
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
