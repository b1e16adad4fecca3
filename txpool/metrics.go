package txpool

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are plain counters and gauges updated at the pool's mutation
// points. Pass a nil registerer to keep them unregistered in tests.
type Metrics struct {
	pendingSize prometheus.Gauge
	queuedSize  prometheus.Gauge
	added       prometheus.Counter
	removed     *prometheus.CounterVec
	rejected    *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		pendingSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sequencer_txpool_pending_size",
			Help: "Current number of pending transactions",
		}),
		queuedSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sequencer_txpool_queued_size",
			Help: "Current number of queued transactions",
		}),
		added: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sequencer_txpool_added_total",
			Help: "Total transactions admitted to the pool",
		}),
		removed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sequencer_txpool_removed_total",
			Help: "Transactions removed from the pool by cause",
		}, []string{"cause"}), // mined, evicted, invalidated, replaced
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sequencer_txpool_rejected_total",
			Help: "Rejected submissions by reason",
		}, []string{"reason"}),
	}
	if reg != nil {
		reg.MustRegister(m.pendingSize, m.queuedSize, m.added, m.removed, m.rejected)
	}
	return m
}

func (m *Metrics) Added() {
	m.added.Inc()
}

func (m *Metrics) Removed(cause string) {
	m.removed.WithLabelValues(cause).Inc()
}

func (m *Metrics) Rejected(err error) {
	m.rejected.WithLabelValues(reasonOf(err)).Inc()
}

func (m *Metrics) SetSizes(pending int, queued int) {
	m.pendingSize.Set(float64(pending))
	m.queuedSize.Set(float64(queued))
}
