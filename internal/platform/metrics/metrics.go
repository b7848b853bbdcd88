// Package metrics expone los contadores Prometheus del core y el handler
// para /metrics. Registro propio para no chocar con el default en tests.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var (
	RemindersScheduled = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Name: "petcare_reminders_scheduled_total",
		Help: "Reminders handed to the notification service.",
	})
	RemindersCancelled = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Name: "petcare_reminders_cancelled_total",
		Help: "Reminder cancellations issued.",
	})
	RemindersSkipped = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Name: "petcare_reminders_skipped_total",
		Help: "Reminders skipped because the fire time was unresolvable or already past.",
	})
	RemindersFailed = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Name: "petcare_reminders_failed_total",
		Help: "Notifier calls that returned an error.",
	})
	StoreMutations = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Name: "petcare_store_mutations_total",
		Help: "Mutations applied by the entity store, by record kind and op.",
	}, []string{"kind", "op"})
)

// Handler devuelve el handler HTTP para /metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
