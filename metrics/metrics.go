// Package metrics exposes Prometheus metrics for the remote contract calls
// and serves them on a dedicated listener.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ruteri/audit-book-client/common"
	"github.com/ruteri/audit-book-client/interfaces"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	registry = prometheus.NewRegistry()

	remoteReads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: common.PackageName,
		Name:      "remote_reads_total",
		Help:      "Contract read calls by method and outcome.",
	}, []string{"method", "outcome"})

	remoteWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: common.PackageName,
		Name:      "remote_writes_total",
		Help:      "Contract transactions by operation and outcome.",
	}, []string{"op", "outcome"})

	writeDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: common.PackageName,
		Name:      "write_duration_seconds",
		Help:      "Time from submitting a transaction until it is mined.",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 15, 30, 60, 120, 300},
	}, []string{"op"})
)

func init() {
	registry.MustRegister(
		remoteReads,
		remoteWrites,
		writeDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}

// RecordRead counts one contract read.
func RecordRead(method string, err error) {
	remoteReads.WithLabelValues(method, outcome(err)).Inc()
}

// RecordWrite counts one contract transaction and, when it was mined,
// observes how long it took.
func RecordWrite(op interfaces.Op, err error, took time.Duration) {
	remoteWrites.WithLabelValues(string(op), outcome(err)).Inc()
	if err == nil {
		writeDuration.WithLabelValues(string(op)).Observe(took.Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}

type MetricsServer struct {
	srv *http.Server
}

func New(listenAddr string) (*MetricsServer, error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())

	return &MetricsServer{
		srv: &http.Server{
			Addr:              listenAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func (m *MetricsServer) ListenAndServe() error {
	return m.srv.ListenAndServe()
}

func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}
