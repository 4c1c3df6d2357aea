package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	pkgerrors "github.com/mariodelgado/aquatrack-backend/pkg/errors"
)

// EngineMetrics counts engine operations by outcome.
type EngineMetrics struct {
	operations *prometheus.CounterVec
	failures   *prometheus.CounterVec
}

// NewEngineMetrics registers the engine metrics on the provided registerer.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	if reg == nil {
		return &EngineMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_operations_total",
		Help: "Completed engine operations.",
	}, []string{"operation"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_operation_failures_total",
		Help: "Engine operations that returned an error.",
	}, []string{"operation", "code"})
	reg.MustRegister(operations, failures)
	return &EngineMetrics{
		operations: operations,
		failures:   failures,
	}
}

// IncSuccess increments the completed counter for the named operation.
func (m *EngineMetrics) IncSuccess(operation string) {
	if m == nil || m.operations == nil {
		return
	}
	m.operations.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncFailure increments the failure counter for the named operation and error code.
func (m *EngineMetrics) IncFailure(operation, code string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(operation), normalizeLabel(code)).Inc()
}

// Record tallies one engine operation outcome. Failed operations are labeled
// with their coded error.
func (m *EngineMetrics) Record(operation string, err error) {
	if err == nil {
		m.IncSuccess(operation)
		return
	}
	code := string(pkgerrors.CodeInternal)
	if typed := pkgerrors.As(err); typed != nil {
		code = string(typed.Code())
	}
	m.IncFailure(operation, code)
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
