package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/okatech-org/admin.ga-sub001/internal/core/model"
)

var (
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_analyses_total",
			Help: "Total number of hierarchy analyses by snapshot source and outcome",
		},
		[]string{"source", "outcome"},
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "registry_analysis_duration_seconds",
			Help:    "Time spent loading and analyzing a snapshot",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	SnapshotEntities = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "registry_snapshot_entities",
			Help: "Number of distinct entities in the last analyzed snapshot",
		},
		[]string{"source"},
	)

	Anomalies = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "registry_anomalies",
			Help: "Structural anomalies found in the last analyzed snapshot",
		},
		[]string{"source", "kind"},
	)

	HierarchyConsistent = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "registry_hierarchy_consistent",
			Help: "1 when the last analyzed snapshot had no orphans and no cycles",
		},
		[]string{"source"},
	)

	RelationsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_relations_published_total",
			Help: "Derived relations written to a relation sink by snapshot source",
		},
		[]string{"source"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_http_requests_total",
			Help: "HTTP requests served by route and status code",
		},
		[]string{"route", "status"},
	)
)

// RecordAnalysis updates the gauges for a successful analysis.
func RecordAnalysis(source string, duration time.Duration, entities int, report model.ConsistencyReport) {
	AnalysesTotal.WithLabelValues(source, "success").Inc()
	AnalysisDuration.WithLabelValues(source).Observe(duration.Seconds())
	SnapshotEntities.WithLabelValues(source).Set(float64(entities))

	for kind, count := range report.AnomalyCounts() {
		Anomalies.WithLabelValues(source, string(kind)).Set(float64(count))
	}

	consistent := 0.0
	if report.Consistent {
		consistent = 1
	}
	HierarchyConsistent.WithLabelValues(source).Set(consistent)
}

func RecordFailure(source string) {
	AnalysesTotal.WithLabelValues(source, "error").Inc()
}
