package orchestrator

import "github.com/prometheus/client_golang/prometheus"

// metricsSet exports the pipeline's progress as Prometheus gauges, for
// operators who wire a /metrics endpoint in front of the engine (spec.md
// §4.9; the names follow the teacher's `observability/` extension's
// metric-naming convention, generalized from billing metrics to
// generation-pipeline metrics).
type metricsSet struct {
	phaseCurrent   prometheus.Gauge
	phaseTotal     prometheus.Gauge
	phaseShare     *prometheus.GaugeVec
	entriesPerSec  prometheus.Gauge
}

func newMetricsSet() *metricsSet {
	m := &metricsSet{
		phaseCurrent: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "genengine_phase_current",
			Help: "Entries/chains produced so far in the current run.",
		}),
		phaseTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "genengine_phase_total",
			Help: "Configured total entries/chains for the current run.",
		}),
		phaseShare: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "genengine_phase_share",
			Help: "Configured share of total runtime for the active phase.",
		}, []string{"phase"}),
		entriesPerSec: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "genengine_entries_per_second",
			Help: "Observed throughput of the current run.",
		}),
	}

	// Registration failures (duplicate registration against the default
	// registry from a second Orchestrator in the same process) are
	// tolerated: the gauges remain usable standalone even if the default
	// registry already has one.
	_ = prometheus.Register(m.phaseCurrent)
	_ = prometheus.Register(m.phaseTotal)
	_ = prometheus.Register(m.phaseShare)
	_ = prometheus.Register(m.entriesPerSec)

	return m
}

func (m *metricsSet) setPhase(p Phase, share float64) {
	m.phaseShare.WithLabelValues(string(p)).Set(share)
}

func (m *metricsSet) setProgress(current, total int64) {
	m.phaseCurrent.Set(float64(current))
	m.phaseTotal.Set(float64(total))
}

func (m *metricsSet) setEntriesPerSecond(eps float64) {
	m.entriesPerSec.Set(eps)
}
