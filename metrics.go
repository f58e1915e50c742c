package shamir

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// MetricsNamespace is the Prometheus namespace for all sharing metrics
	MetricsNamespace = "shamir"

	// Label names
	LabelOperation = "operation"
	LabelField     = "field"
	LabelStatus    = "status"
	LabelCode      = "code"

	// Status values
	StatusSuccess = "success"
	StatusError   = "error"

	// Operation names
	OpSplit      = "split"
	OpSplitBatch = "split_batch"
	OpCombine    = "combine"
)

// PrometheusAuditHandler is an AuditEventHandler that exports operation counts,
// latencies and validation failures as Prometheus metrics.
type PrometheusAuditHandler struct {
	operations         *prometheus.CounterVec
	duration           *prometheus.HistogramVec
	sharesGenerated    *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	configChanges      *prometheus.CounterVec
}

// NewPrometheusAuditHandler creates the handler and registers its collectors
// on reg.
func NewPrometheusAuditHandler(reg prometheus.Registerer) (*PrometheusAuditHandler, error) {
	h := &PrometheusAuditHandler{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Name:      "operations_total",
				Help:      "Total number of split and combine operations by field and status",
			},
			[]string{LabelOperation, LabelField, LabelStatus},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: MetricsNamespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of split and combine operations in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{LabelOperation, LabelField},
		),
		sharesGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Name:      "shares_generated_total",
				Help:      "Total number of shares generated by field",
			},
			[]string{LabelField},
		),
		validationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Name:      "validation_failures_total",
				Help:      "Total number of rejected inputs by validation type and error code",
			},
			[]string{LabelOperation, LabelCode},
		),
		configChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Name:      "configuration_changes_total",
				Help:      "Total number of applied configurations by field",
			},
			[]string{LabelField},
		),
	}

	for _, c := range []prometheus.Collector{h.operations, h.duration, h.sharesGenerated, h.validationFailures, h.configChanges} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func statusOf(success bool) string {
	if success {
		return StatusSuccess
	}
	return StatusError
}

func (h *PrometheusAuditHandler) OnSharesGenerated(event *ShareGenerationEvent) {
	op := OpSplit
	if event.Reason == ReasonBatchSplit {
		op = OpSplitBatch
	}

	h.operations.WithLabelValues(op, event.FieldName, statusOf(event.Success)).Inc()
	h.duration.WithLabelValues(op, event.FieldName).Observe(event.Duration.Seconds())
	if event.Success {
		h.sharesGenerated.WithLabelValues(event.FieldName).Add(float64(event.SharesGenerated))
	}
}

func (h *PrometheusAuditHandler) OnSecretReconstructed(event *ReconstructionEvent) {
	h.operations.WithLabelValues(OpCombine, event.FieldName, statusOf(event.Success)).Inc()
	h.duration.WithLabelValues(OpCombine, event.FieldName).Observe(event.Duration.Seconds())
}

func (h *PrometheusAuditHandler) OnValidationFailure(event *ValidationFailureEvent) {
	h.validationFailures.WithLabelValues(event.ValidationType, event.ErrorCode).Inc()
}

func (h *PrometheusAuditHandler) OnConfigurationChange(event *AuditEvent) {
	h.configChanges.WithLabelValues(event.FieldName).Inc()
}
