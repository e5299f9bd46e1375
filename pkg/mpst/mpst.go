package mpst

import (
	"fmt"
	"time"

	"github.com/LvlAndFarm/mpst-inference/pkg/mpst/core"
	"github.com/LvlAndFarm/mpst-inference/pkg/mpst/definition"
	"github.com/LvlAndFarm/mpst-inference/pkg/mpst/types"
)

// Merger holds the configuration a repeated sequence of merges share:
// logger, metrics collector, depth guard, and whether to simplify the
// result.
type Merger struct {
	driver   *core.Driver
	metrics  definition.Collector
	simplify bool
}

// NewMerger builds a Merger from the given options.
func NewMerger(opts ...Option) *Merger {
	o := DefaultOptions()
	for _, apply := range opts {
		apply(&o)
	}
	return &Merger{
		driver:   core.NewDriver(o.Logger, o.Metrics, o.MaxDepth),
		metrics:  o.Metrics,
		simplify: o.Simplify,
	}
}

// MergeLocals is the engine's entry point: it takes one local type per
// participant and synthesises a single global type, or reports why the
// locals are mutually incompatible. The order of parties affects only
// the order duals are tried and so only tie-breaking; every
// successful merge produces the same GT up to branch ordering.
func (m *Merger) MergeLocals(parties []Party) (*types.GT, error) {
	start := time.Now()
	gt, err := m.mergeLocals(parties)
	m.metrics.MergeCompleted(err == nil)
	m.metrics.MergeDuration(time.Since(start).Seconds())
	return gt, err
}

func (m *Merger) mergeLocals(parties []Party) (*types.GT, error) {
	if len(parties) == 0 {
		return nil, &types.MergeError{Kind: types.MalformedLocal, Detail: "mergeLocals requires at least one party"}
	}

	seen := map[types.Participant]bool{}
	entries := make([]types.PartyEntry, 0, len(parties))
	for _, party := range parties {
		if party.Who.IsAnonymous() {
			return nil, &types.MergeError{Kind: types.MalformedLocal, Detail: "every top-level participant must be named"}
		}
		if seen[party.Who] {
			return nil, &types.MergeError{Kind: types.MalformedLocal, Detail: fmt.Sprintf("participant %s appears more than once", party.Who)}
		}
		seen[party.Who] = true

		if err := party.Type.Validate(); err != nil {
			return nil, fmt.Errorf("local type for %s: %w", party.Who, err)
		}

		entries = append(entries, types.PartyEntry{Who: party.Who, Type: party.Type})
	}

	state := types.NewPartyState(entries)
	gt, err := m.driver.Merge(state)
	if err != nil {
		return nil, err
	}

	if m.simplify {
		gt = gt.Simplify()
	}
	return &gt, nil
}

// MergeLocals runs a one-shot merge with a Merger built from opts.
// Equivalent to NewMerger(opts...).MergeLocals(parties), for
// callers that don't need to share a Merger's logger/metrics across
// calls.
func MergeLocals(parties []Party, opts ...Option) (*types.GT, error) {
	return NewMerger(opts...).MergeLocals(parties)
}
