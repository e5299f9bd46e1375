package definition

import "github.com/prometheus/client_golang/prometheus"

// Collector is the instrumentation seam the merge driver reports
// through: one counter increment per dual attempted, one per
// backtrack, one gauge update per recursion scope opened, and one
// duration observation per top-level merge. It is injected the same
// way the driver's Logger is, for metrics rather than text.
type Collector interface {
	// DualAttempted records one candidate dual pair being tried.
	DualAttempted()
	// Backtracked records one failed reduction that forced the
	// driver to try the next candidate dual.
	Backtracked()
	// RecursionOpened records a new global recursion scope opening,
	// reporting its depth (the enclosing globalDepth count).
	RecursionOpened(depth int)
	// MergeCompleted records one top-level mergeLocals call finishing,
	// successfully or not.
	MergeCompleted(success bool)
	// MergeDuration records how long one top-level mergeLocals call
	// took, in seconds.
	MergeDuration(seconds float64)
}

// NopCollector discards every observation. Used as the
// zero-configuration default.
type NopCollector struct{}

func (NopCollector) DualAttempted()        {}
func (NopCollector) Backtracked()          {}
func (NopCollector) RecursionOpened(int)   {}
func (NopCollector) MergeCompleted(bool)   {}
func (NopCollector) MergeDuration(float64) {}

// PrometheusCollector reports merge-engine activity through
// client_golang collectors, registered against the given registerer
// (typically prometheus.DefaultRegisterer).
type PrometheusCollector struct {
	mergeAttempts   prometheus.Counter
	backtracks      prometheus.Counter
	recursionDepth  prometheus.Gauge
	mergesSucceeded prometheus.Counter
	mergesFailed    prometheus.Counter
	mergeDuration   prometheus.Histogram
}

// NewPrometheusCollector builds and registers a PrometheusCollector.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		mergeAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mpst_merge_attempts_total",
			Help: "Candidate dual pairs tried by the merge driver.",
		}),
		backtracks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mpst_backtracks_total",
			Help: "Reductions that failed and forced a backtrack.",
		}),
		recursionDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mpst_recursion_depth",
			Help: "Depth of the most recently opened global recursion scope.",
		}),
		mergesSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mpst_merges_succeeded_total",
			Help: "Top-level mergeLocals calls that produced a global type.",
		}),
		mergesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mpst_merges_failed_total",
			Help: "Top-level mergeLocals calls that returned a MergeError.",
		}),
		mergeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mpst_merge_duration_seconds",
			Help:    "Wall-clock time a top-level mergeLocals call took.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(c.mergeAttempts, c.backtracks, c.recursionDepth, c.mergesSucceeded, c.mergesFailed, c.mergeDuration)
	return c
}

func (c *PrometheusCollector) DualAttempted() { c.mergeAttempts.Inc() }
func (c *PrometheusCollector) Backtracked()   { c.backtracks.Inc() }
func (c *PrometheusCollector) RecursionOpened(depth int) {
	c.recursionDepth.Set(float64(depth))
}
func (c *PrometheusCollector) MergeCompleted(success bool) {
	if success {
		c.mergesSucceeded.Inc()
	} else {
		c.mergesFailed.Inc()
	}
}
func (c *PrometheusCollector) MergeDuration(seconds float64) {
	c.mergeDuration.Observe(seconds)
}
