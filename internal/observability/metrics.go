// Package observability owns the prometheus collectors of the dashboard pipeline.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	rowsNormalized = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitness_dashboard",
		Subsystem: "pipeline",
		Name:      "rows_normalized_total",
		Help:      "Warehouse rows turned into canonical records, by kind.",
	}, []string{"kind"})
	rowsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitness_dashboard",
		Subsystem: "pipeline",
		Name:      "rows_rejected_total",
		Help:      "Warehouse rows skipped because they could not be normalized, by kind.",
	}, []string{"kind"})
	rowsAnomalous = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitness_dashboard",
		Subsystem: "pipeline",
		Name:      "workouts_anomalous_total",
		Help:      "Workouts accepted despite internally inconsistent values.",
	})
	sharesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitness_dashboard",
		Subsystem: "social",
		Name:      "shares_total",
		Help:      "Stat share attempts, by stat type and outcome.",
	}, []string{"stat", "status"})
)

func init() {
	prometheus.MustRegister(rowsNormalized, rowsRejected, rowsAnomalous, sharesTotal)
}

// RecordRows counts one normalization batch.
func RecordRows(kind string, accepted, rejected int) {
	if accepted > 0 {
		rowsNormalized.WithLabelValues(kind).Add(float64(accepted))
	}
	if rejected > 0 {
		rowsRejected.WithLabelValues(kind).Add(float64(rejected))
	}
}

// RecordAnomalous counts accepted workouts that carry anomalies.
func RecordAnomalous(n int) {
	if n > 0 {
		rowsAnomalous.Add(float64(n))
	}
}

// RecordShare counts a share attempt. Stat types outside the known set are
// counted as "other" to keep the label bounded.
func RecordShare(stat, status string) {
	sharesTotal.WithLabelValues(shareStatLabel(stat), status).Inc()
}

func shareStatLabel(stat string) string {
	switch stat {
	case "steps", "distance", "calories":
		return stat
	default:
		return "other"
	}
}
