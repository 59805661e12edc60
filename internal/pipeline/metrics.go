package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Stage names used as metric labels.
const (
	StageLoad     = "load"
	StageScore    = "score"
	StageMine     = "mine"
	StageAssemble = "assemble"
)

// Run outcomes used as metric labels.
const (
	OutcomeCompleted  = "completed"
	OutcomeSuperseded = "superseded"
	OutcomeFailed     = "failed"
)

// Metrics records stage timings and output sizes. A nil *Metrics records
// nothing.
type Metrics struct {
	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	runs          *prometheus.CounterVec
	pathways      prometheus.Counter
	edges         prometheus.Counter
}

// NewMetrics creates the pipeline collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "metaboviz",
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"stage"}),
		stageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "metaboviz",
			Name:      "stage_errors_total",
			Help:      "Pipeline stages that returned an error.",
		}, []string{"stage"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "metaboviz",
			Name:      "runs_total",
			Help:      "Pipeline runs by outcome.",
		}, []string{"outcome"}),
		pathways: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metaboviz",
			Name:      "pathways_selected_total",
			Help:      "Pathways drawn across all completed runs.",
		}),
		edges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metaboviz",
			Name:      "edges_assembled_total",
			Help:      "Graph edges emitted across all completed runs.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.stageDuration, m.stageErrors, m.runs, m.pathways, m.edges)
	}
	return m
}

// ObserveStage records one stage execution.
func (m *Metrics) ObserveStage(stage string, success bool, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if !success {
		m.stageErrors.WithLabelValues(stage).Inc()
	}
}

// ObserveRun records the outcome of one run.
func (m *Metrics) ObserveRun(outcome string) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
}

// ObserveGraph records the size of a completed graph.
func (m *Metrics) ObserveGraph(pathways, edges int) {
	if m == nil {
		return
	}
	m.pathways.Add(float64(pathways))
	m.edges.Add(float64(edges))
}
