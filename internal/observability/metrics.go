package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	dispatchTraversals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "conduit",
			Subsystem: "pipeline",
			Name:      "dispatch_traversals_total",
			Help:      "Command/event traversals through the vertical dispatch core, by direction.",
		},
		[]string{"pipeline", "direction"},
	)
	managementFanouts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "conduit",
			Subsystem: "pipeline",
			Name:      "management_fanouts_total",
			Help:      "Completed management fan-outs.",
		},
		[]string{"pipeline"},
	)
	injectionFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "conduit",
			Subsystem: "pipeline",
			Name:      "injection_failures_total",
			Help:      "Injections routed to a sink as a failure, by direction.",
		},
		[]string{"pipeline", "direction"},
	)
)

// RegisterMetrics registers this package's collectors exactly once,
// the way the teacher's observability.RegisterMetrics does with a
// sync.Once guard.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(dispatchTraversals, managementFanouts, injectionFailures)
	})
}

// RecordDispatch increments the traversal counter for one InjectCommand
// or InjectEvent call.
func RecordDispatch(pipelineName, direction string) {
	RegisterMetrics()
	dispatchTraversals.WithLabelValues(pipelineName, direction).Inc()
}

// RecordManagementFanout increments the counter for one completed
// Management call.
func RecordManagementFanout(pipelineName string) {
	RegisterMetrics()
	managementFanouts.WithLabelValues(pipelineName).Inc()
}

// RecordInjectionFailure increments the counter for one injection
// routed to a sink as a failure.
func RecordInjectionFailure(pipelineName, direction string) {
	RegisterMetrics()
	injectionFailures.WithLabelValues(pipelineName, direction).Inc()
}
