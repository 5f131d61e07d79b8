// Package metrics provides Prometheus metrics for rating runs.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcomes used as label values.
const (
	OutcomeConverged = "converged"
	OutcomeCapped    = "capped"
	OutcomeFailed    = "failed"
)

// Default bucket layouts.
var (
	defaultDurationBuckets  = []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 5000} //nolint:gochecknoglobals // read-only defaults
	defaultIterationBuckets = []float64{1, 2, 5, 10, 20, 50, 100, 200, 500}                    //nolint:gochecknoglobals // read-only defaults
)

// Manager owns the rating metrics registered on one registry.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Run metrics
	runs          *prometheus.CounterVec
	runIterations prometheus.Histogram
	runDuration   prometheus.Histogram
	teamsRated    prometheus.Gauge

	// Data quality metrics
	invalidGames *prometheus.CounterVec
	invalidTeams prometheus.Counter
	blowouts     prometheus.Counter
	diagnostics  *prometheus.CounterVec

	// Infrastructure metrics
	workers       prometheus.Gauge
	workerBatches prometheus.Counter
	standingsSize prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "usau",
		subsystem:        "rankings",
		histogramBuckets: defaultDurationBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "runs_total",
		Help:        "Rating runs by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.runIterations = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "run_iterations",
		Help:        "Rounds needed per rating run",
		Buckets:     defaultIterationBuckets,
		ConstLabels: labels,
	})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "run_duration_milliseconds",
		Help:        "Wall time of a rating run in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.teamsRated = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "teams_rated",
		Help:        "Teams rated by the last run",
		ConstLabels: labels,
	})

	m.invalidGames = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "invalid_games_total",
		Help:        "Games excluded from rating by reason",
		ConstLabels: labels,
	}, []string{"reason"})

	m.invalidTeams = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "invalid_teams_total",
		Help:        "Teams excluded because they had no valid games",
		ConstLabels: labels,
	})

	m.blowouts = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "blowouts_total",
		Help:        "Game records dropped from final ratings as blowouts",
		ConstLabels: labels,
	})

	m.diagnostics = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "diagnostics_total",
		Help:        "Non-fatal data problems by kind",
		ConstLabels: labels,
	}, []string{"kind"})

	m.workers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "workers",
		Help:        "Concurrency limit of the rating worker pool",
		ConstLabels: labels,
	})

	m.workerBatches = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "worker_batches_total",
		Help:        "Rounds fanned out to the worker pool",
		ConstLabels: labels,
	})

	m.standingsSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "standings_size",
		Help:        "Entries held by the standings store",
		ConstLabels: labels,
	})
}

// RecordRun records a finished run.
func (m *Manager) RecordRun(outcome string, iterations int, durationMs float64) {
	if !m.enabled {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
	if outcome != OutcomeFailed {
		m.runIterations.Observe(float64(iterations))
	}
	m.runDuration.Observe(durationMs)
}

// UpdateTeamsRated sets the number of teams rated by the last run.
func (m *Manager) UpdateTeamsRated(n int) {
	if m.enabled {
		m.teamsRated.Set(float64(n))
	}
}

// RecordInvalidGame counts one excluded game.
func (m *Manager) RecordInvalidGame(reason string) {
	if m.enabled {
		m.invalidGames.WithLabelValues(reason).Inc()
	}
}

// RecordInvalidTeams counts excluded teams.
func (m *Manager) RecordInvalidTeams(n int) {
	if m.enabled && n > 0 {
		m.invalidTeams.Add(float64(n))
	}
}

// RecordBlowouts counts blowout records.
func (m *Manager) RecordBlowouts(n int) {
	if m.enabled && n > 0 {
		m.blowouts.Add(float64(n))
	}
}

// RecordDiagnostic counts one diagnostic.
func (m *Manager) RecordDiagnostic(kind string) {
	if m.enabled {
		m.diagnostics.WithLabelValues(kind).Inc()
	}
}

// UpdateWorkers sets the worker pool size.
func (m *Manager) UpdateWorkers(n int) {
	if m.enabled {
		m.workers.Set(float64(n))
	}
}

// RecordWorkerBatch counts one fanned out round.
func (m *Manager) RecordWorkerBatch() {
	if m.enabled {
		m.workerBatches.Inc()
	}
}

// UpdateStandingsSize sets the standings store size.
func (m *Manager) UpdateStandingsSize(n int) {
	if m.enabled {
		m.standingsSize.Set(float64(n))
	}
}

// RecordRun records a finished run on the global manager.
func RecordRun(outcome string, iterations int, durationMs float64) {
	globalManager.RecordRun(outcome, iterations, durationMs)
}

// UpdateTeamsRated sets the teams rated gauge on the global manager.
func UpdateTeamsRated(n int) { globalManager.UpdateTeamsRated(n) }

// RecordInvalidGame counts an excluded game on the global manager.
func RecordInvalidGame(reason string) { globalManager.RecordInvalidGame(reason) }

// RecordInvalidTeams counts excluded teams on the global manager.
func RecordInvalidTeams(n int) { globalManager.RecordInvalidTeams(n) }

// RecordBlowouts counts blowout records on the global manager.
func RecordBlowouts(n int) { globalManager.RecordBlowouts(n) }

// RecordDiagnostic counts a diagnostic on the global manager.
func RecordDiagnostic(kind string) { globalManager.RecordDiagnostic(kind) }

// UpdateWorkers sets the worker pool size on the global manager.
func UpdateWorkers(n int) { globalManager.UpdateWorkers(n) }

// RecordWorkerBatch counts a fanned out round on the global manager.
func RecordWorkerBatch() { globalManager.RecordWorkerBatch() }

// UpdateStandingsSize sets the standings size on the global manager.
func UpdateStandingsSize(n int) { globalManager.UpdateStandingsSize(n) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the current state of the global registry to path in
// the text exposition format, for node exporter textfile collection.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
