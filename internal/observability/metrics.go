package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "fantasy_points"

// JobMetrics records gameweek job outcomes on a prometheus registry.
type JobMetrics struct {
	registry        *prometheus.Registry
	jobRuns         *prometheus.CounterVec
	jobDuration     *prometheus.HistogramVec
	squadFailures   prometheus.Counter
	circuitRejected *prometheus.CounterVec
}

// NewJobMetrics registers the job collectors on registry. A nil registry gets a fresh
// one with the Go and process collectors attached.
func NewJobMetrics(registry *prometheus.Registry) *JobMetrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	factory := promauto.With(registry)

	return &JobMetrics{
		registry: registry,
		jobRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "job",
			Name:      "runs_total",
			Help:      "Gameweek job runs by job name and status.",
		}, []string{"job", "status"}),
		jobDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "job",
			Name:      "duration_seconds",
			Help:      "Gameweek job wall time.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}, []string{"job"}),
		squadFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "squad",
			Name:      "failures_total",
			Help:      "Squads that could not be scored.",
		}),
		circuitRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "job",
			Name:      "circuit_rejected_total",
			Help:      "Scheduled runs skipped because the job circuit was open.",
		}, []string{"job"}),
	}
}

func (m *JobMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *JobMetrics) ObserveJobRun(job, status string, duration time.Duration) {
	m.jobRuns.WithLabelValues(job, status).Inc()
	m.jobDuration.WithLabelValues(job).Observe(duration.Seconds())
}

func (m *JobMetrics) AddSquadFailures(count int) {
	if count <= 0 {
		return
	}
	m.squadFailures.Add(float64(count))
}

func (m *JobMetrics) ObserveCircuitRejected(job string) {
	m.circuitRejected.WithLabelValues(job).Inc()
}
