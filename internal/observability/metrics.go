package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	registerOnce sync.Once

	// Registry holds the decode metrics. It is separate from the default
	// registry so textfile exports carry only nvwire series.
	Registry = prometheus.NewRegistry()

	recordsDecoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nvwire",
			Subsystem: "records",
			Name:      "decoded_total",
			Help:      "Records run through the decoder, by outcome.",
		},
		[]string{"kind", "result"},
	)
	recordErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nvwire",
			Subsystem: "record",
			Name:      "errors_total",
			Help:      "Record decode failures by error kind.",
		},
		[]string{"kind", "error_kind"},
	)
	decodeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nvwire",
			Subsystem: "decode",
			Name:      "duration_seconds",
			Help:      "Record decode duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
		},
		[]string{"kind"},
	)
	fieldsUnavailable = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nvwire",
			Subsystem: "field",
			Name:      "unavailable_total",
			Help:      "Field value samples whose status was not success.",
		},
		[]string{"code"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		Registry.MustRegister(recordsDecoded, recordErrors, decodeDuration, fieldsUnavailable)
	})
}

// RecordDecode counts one decode attempt. errorKind is ignored on success.
func RecordDecode(kind string, duration time.Duration, success bool, errorKind string) {
	RegisterMetrics()
	result := ResultOK
	if !success {
		result = ResultError
		recordErrors.WithLabelValues(kind, errorKind).Inc()
	}
	recordsDecoded.WithLabelValues(kind, result).Inc()
	decodeDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordFieldUnavailable counts one contained per-field failure.
func RecordFieldUnavailable(code string) {
	RegisterMetrics()
	fieldsUnavailable.WithLabelValues(code).Inc()
}

// WriteTextfile exports the registry in the node_exporter textfile format.
func WriteTextfile(path string) error {
	RegisterMetrics()
	return prometheus.WriteToTextfile(path, Registry)
}
