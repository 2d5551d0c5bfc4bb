package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"mail-approval-backend/models"
)

const namespace = "mail_approval"

var (
	registry = prometheus.NewRegistry()

	requestsCreated = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_created_total",
		Help:      "Количество созданных заявок",
	})
	reviews = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_total",
		Help:      "Количество решений по заявкам",
	}, []string{"role", "status", "entry"})
	reviewConflicts = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "review_conflicts_total",
		Help:      "Количество решений, отклоненных из-за параллельного изменения заявки",
	})
	escalated = promauto.With(registry).NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "escalated_requests",
		Help:      "Количество заявок без решения менеджера, превысивших порог эскалации",
	}, []string{"tier"})
)

const (
	TierManager  = "manager"
	TierHelpDesk = "help_desk"
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

func RequestCreated() {
	requestsCreated.Inc()
}

func Reviewed(role models.UserRole, status models.MRStatus, entry models.ReviewEntry) {
	reviews.WithLabelValues(string(role), string(status), string(entry)).Inc()
}

func ReviewConflict() {
	reviewConflicts.Inc()
}

func SetEscalated(tier string, count int) {
	escalated.WithLabelValues(tier).Set(float64(count))
}

func EscalatedGauge(tier string) prometheus.Gauge {
	return escalated.WithLabelValues(tier)
}
