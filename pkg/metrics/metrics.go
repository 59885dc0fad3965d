package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	Namespace = "indexer"

	// Insert phases, used as the "phase" label of insert_duration_seconds.
	PhaseBlock        = "block"
	PhaseMap          = "map"
	PhaseTransactions = "transactions"
	PhaseLogs         = "logs"

	// Error types, used as the "type" label of errors_total.
	ErrorConversion = "conversion"
	ErrorStore      = "store"
	ErrorInvariant  = "invariant"
)

// Metrics instruments the ingestion engine. A nil *Metrics records nothing.
type Metrics struct {
	blocksInserted       prometheus.Counter
	transactionsInserted prometheus.Counter
	logsInserted         prometheus.Counter
	logChunksInserted    prometheus.Counter
	errors               *prometheus.CounterVec
	insertDuration       *prometheus.HistogramVec
}

// New creates a Metrics instance and registers it with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		blocksInserted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "blocks_inserted_total",
			Help:      "Total number of block rows inserted",
		}),
		transactionsInserted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "transactions_inserted_total",
			Help:      "Total number of transaction rows inserted",
		}),
		logsInserted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "logs_inserted_total",
			Help:      "Total number of log rows inserted",
		}),
		logChunksInserted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "log_chunks_inserted_total",
			Help:      "Total number of log insert statements issued",
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "errors_total",
			Help:      "Total ingestion errors by type",
		}, []string{"type"}),
		insertDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "insert_duration_seconds",
			Help:      "Duration of each ingestion phase",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"phase"}),
	}

	collectors := []prometheus.Collector{
		m.blocksInserted,
		m.transactionsInserted,
		m.logsInserted,
		m.logChunksInserted,
		m.errors,
		m.insertDuration,
	}
	var errs []error
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return m, nil
}

// BlockInserted records a block row insert that took d.
func (m *Metrics) BlockInserted(d time.Duration) {
	if m == nil {
		return
	}
	m.blocksInserted.Inc()
	m.insertDuration.WithLabelValues(PhaseBlock).Observe(d.Seconds())
}

// TransactionsInserted records n transaction rows inserted in d.
func (m *Metrics) TransactionsInserted(n int, d time.Duration) {
	if m == nil {
		return
	}
	m.transactionsInserted.Add(float64(n))
	m.insertDuration.WithLabelValues(PhaseTransactions).Observe(d.Seconds())
}

// LogChunkInserted records one log insert statement of n rows.
func (m *Metrics) LogChunkInserted(n int) {
	if m == nil {
		return
	}
	m.logChunksInserted.Inc()
	m.logsInserted.Add(float64(n))
}

// ObservePhase records the duration of phase.
func (m *Metrics) ObservePhase(phase string, d time.Duration) {
	if m == nil {
		return
	}
	m.insertDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// IncError counts an error of the given type.
func (m *Metrics) IncError(errType string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(errType).Inc()
}
