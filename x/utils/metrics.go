package utils

import (
	"time"

	weave "github.com/iov-one/weave-escrow"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that exposes prometheus statistics of the
// processed transactions. Each transaction is counted under its message
// path, execution mode (check or deliver) and result.
type Metrics struct {
	txs      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ weave.Decorator = Metrics{}

// NewMetrics creates a Metrics decorator and registers its collectors with
// the given registerer. Collectors already registered by another instance
// are shared, so several applications can run in a single process.
func NewMetrics(reg prometheus.Registerer) Metrics {
	txs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "weave",
		Subsystem: "tx",
		Name:      "processed_total",
		Help:      "Number of processed transactions.",
	}, []string{"mode", "path", "result"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "weave",
		Subsystem: "tx",
		Name:      "duration_seconds",
		Help:      "Time spent processing a transaction.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"mode", "path"})

	return Metrics{
		txs:      register(reg, txs).(*prometheus.CounterVec),
		duration: register(reg, duration).(*prometheus.HistogramVec),
	}
}

// register returns the collector already registered under the same
// description, or c once it is registered.
func register(reg prometheus.Registerer, c prometheus.Collector) prometheus.Collector {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
		return are.ExistingCollector
	}
	panic(err)
}

// Check counts the checked transaction.
func (m Metrics) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe("check", weave.GetPath(tx), start, err)
	return res, err
}

// Deliver counts the delivered transaction.
func (m Metrics) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe("deliver", weave.GetPath(tx), start, err)
	return res, err
}

func (m Metrics) observe(mode, path string, start time.Time, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.txs.WithLabelValues(mode, path, result).Inc()
	m.duration.WithLabelValues(mode, path).Observe(time.Since(start).Seconds())
}
