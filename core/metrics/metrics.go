// Package metrics exposes Prometheus counters for the reconciliation pass,
// the cleanup sweep and notification delivery.
//
// A Recorder owns its own registry so tests can build as many as they like.
// Every method is safe to call on a nil *Recorder, which lets components run
// without metrics wired in.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "theaterwecker"

// Recorder records domain metrics.
type Recorder struct {
	registry *prometheus.Registry

	fetches          *prometheus.CounterVec
	emptyWindows     prometheus.Counter
	malformedRecords *prometheus.CounterVec
	candidates       prometheus.Counter
	mutations        *prometheus.CounterVec
	passDuration     prometheus.Histogram
	cleanupDeleted   prometheus.Counter
	deliveries       *prometheus.CounterVec
}

// New creates a Recorder registered on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	auto := promauto.With(reg)

	return &Recorder{
		registry: reg,
		fetches: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "listing",
			Name:      "fetches_total",
			Help:      "Listing fetches by outcome (ok, failed)",
		}, []string{"outcome"}),
		emptyWindows: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "listing",
			Name:      "empty_windows_total",
			Help:      "Successful fetches that yielded no candidates (possible markup drift)",
		}),
		malformedRecords: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "listing",
			Name:      "malformed_records_total",
			Help:      "Records dropped by the parser, by reason",
		}, []string{"reason"}),
		candidates: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "listing",
			Name:      "candidates_total",
			Help:      "Candidate records produced by the parser",
		}),
		mutations: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      "mutations_total",
			Help:      "Performance mutations applied, by action (create, delete)",
		}, []string{"action"}),
		passDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      "pass_duration_seconds",
			Help:      "Duration of a full reconciliation pass",
			Buckets:   prometheus.DefBuckets,
		}),
		cleanupDeleted: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cleanup",
			Name:      "deleted_total",
			Help:      "Past performances removed by the cleanup sweep",
		}),
		deliveries: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notification",
			Name:      "deliveries_total",
			Help:      "Notification delivery attempts, by outcome",
		}, []string{"outcome"}),
	}
}

// Handler returns an HTTP handler serving the registry.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// FetchSucceeded counts a listing fetch that returned 200.
func (r *Recorder) FetchSucceeded() {
	if r != nil {
		r.fetches.WithLabelValues("ok").Inc()
	}
}

// FetchFailed counts a listing fetch that failed or returned another status.
func (r *Recorder) FetchFailed() {
	if r != nil {
		r.fetches.WithLabelValues("failed").Inc()
	}
}

// EmptyWindow counts a successful fetch that yielded no candidates.
func (r *Recorder) EmptyWindow() {
	if r != nil {
		r.emptyWindows.Inc()
	}
}

// MalformedRecord counts a dropped listing record, labelled by the failing field.
func (r *Recorder) MalformedRecord(reason string) {
	if r != nil {
		r.malformedRecords.WithLabelValues(reason).Inc()
	}
}

// Candidates adds n parsed candidates.
func (r *Recorder) Candidates(n int) {
	if r != nil {
		r.candidates.Add(float64(n))
	}
}

// Mutation adds n applied mutations of the given action (create or delete).
func (r *Recorder) Mutation(action string, n int) {
	if r != nil && n > 0 {
		r.mutations.WithLabelValues(action).Add(float64(n))
	}
}

// PassDuration observes the wall time of one reconciliation pass.
func (r *Recorder) PassDuration(seconds float64) {
	if r != nil {
		r.passDuration.Observe(seconds)
	}
}

// CleanupDeleted adds n performances removed by the cleanup sweep.
func (r *Recorder) CleanupDeleted(n int64) {
	if r != nil && n > 0 {
		r.cleanupDeleted.Add(float64(n))
	}
}

// Delivery counts one notification attempt by outcome.
func (r *Recorder) Delivery(outcome string) {
	if r != nil {
		r.deliveries.WithLabelValues(outcome).Inc()
	}
}
