package mpst

import (
	"github.com/LvlAndFarm/mpst-inference/pkg/mpst/definition"
)

// Options configures a Merger.
type Options struct {
	Logger    definition.Logger
	Metrics   definition.Collector
	MaxDepth  int
	Simplify  bool
}

// Option mutates an Options value: the functional-options pattern.
type Option func(*Options)

// DefaultOptions returns the configuration used when NewMerger is
// called with no options: a discarding logger, a discarding metrics
// collector, the driver's default depth guard, and GT.Simplify() run
// on the result.
func DefaultOptions() Options {
	return Options{
		Logger:   definition.NopLogger{},
		Metrics:  definition.NopCollector{},
		MaxDepth: 0,
		Simplify: true,
	}
}

// WithLogger overrides the default no-op Logger.
func WithLogger(l definition.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithMetrics overrides the default no-op Collector.
func WithMetrics(m definition.Collector) Option {
	return func(o *Options) { o.Metrics = m }
}

// WithMaxDepth bounds the merge driver's recursion depth, guarding
// against runaway or malformed recursive locals. Zero or negative
// means the driver's built-in default.
func WithMaxDepth(depth int) Option {
	return func(o *Options) { o.MaxDepth = depth }
}

// WithoutSimplify disables the GT.Simplify() post-pass, leaving every
// Choice node — including single-branch ones — in its raw reduced
// form.
func WithoutSimplify() Option {
	return func(o *Options) { o.Simplify = false }
}
