package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the customer module.
type Metrics struct {
	CommandsExecuted *prometheus.CounterVec
	CommandsRejected *prometheus.CounterVec
}

// New creates and registers all customer metrics.
func New() *Metrics {
	return &Metrics{
		CommandsExecuted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "custodia_customer_commands_total",
			Help: "Successfully executed customer commands by name.",
		}, []string{"command"}),
		CommandsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "custodia_customer_commands_rejected_total",
			Help: "Rejected customer commands by name and error code.",
		}, []string{"command", "code"}),
	}
}
