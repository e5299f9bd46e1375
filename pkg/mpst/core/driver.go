package core

import (
	"fmt"

	"github.com/LvlAndFarm/mpst-inference/pkg/mpst/definition"
	"github.com/LvlAndFarm/mpst-inference/pkg/mpst/types"
)

// Driver runs the merge algorithm: termination detection, synchronised
// recursion unfolding, then exhaustive backtracking search over
// candidate dual pairs.
//
// Each participant's local type is finite (it is a tree with no
// pointer cycles), so the recursion in Merge always terminates: every
// call either opens exactly one new Rec whose body is strictly
// smaller, or reduces a dual pair, which strictly shrinks both
// participants' residuals. The depth guard below exists only to turn
// a MalformedLocal input that evades Validate (for example a
// mistakenly-unbounded front end) into a reported error instead of a
// stack overflow — not to convert descent into an explicit work
// stack. A real work-stack rewrite doesn't fit this control flow
// cleanly: a single reduction step fans out into one child merge per
// label, so the natural representation is the call stack itself.
type Driver struct {
	log      definition.Logger
	metrics  definition.Collector
	maxDepth int
}

// NewDriver builds a Driver. A nil logger/metrics collector is
// replaced with the no-op implementation.
func NewDriver(log definition.Logger, metrics definition.Collector, maxDepth int) *Driver {
	if log == nil {
		log = definition.NopLogger{}
	}
	if metrics == nil {
		metrics = definition.NopCollector{}
	}
	if maxDepth <= 0 {
		maxDepth = 10000
	}
	return &Driver{log: log, metrics: metrics, maxDepth: maxDepth}
}

// Merge runs the algorithm over state, returning the reconstructed
// global type or a MergeError explaining why no merge exists.
func (d *Driver) Merge(state types.PartyState) (types.GT, error) {
	return d.merge(state, 0)
}

func (d *Driver) merge(state types.PartyState, depth int) (types.GT, error) {
	if depth > d.maxDepth {
		return types.GT{}, &types.MergeError{Kind: types.NoReducibleDual, Detail: fmt.Sprintf("exceeded maximum merge depth %d", d.maxDepth)}
	}

	d.log.Debugf("merging %s", state)

	if PureEnd(state) {
		return types.GEnd(), nil
	}

	if next, opened := UnfoldIfAligned(state); opened {
		scopeID := next.GlobalDepth
		d.metrics.RecursionOpened(scopeID)
		gt, err := d.merge(next, depth+1)
		if err != nil {
			return types.GT{}, err
		}
		return types.GRec(scopeID, gt), nil
	}

	duals := EnumerateDuals(state)
	var lastErr error
	for _, pair := range duals {
		d.metrics.DualAttempted()
		gt, err := ReduceThenMerge(pair, state, func(child types.PartyState) (types.GT, error) {
			return d.merge(child, depth+1)
		})
		if err == nil {
			d.log.Infof("reduced %s/%s from %s", pair.Sender, pair.Receiver, state)
			return gt, nil
		}
		d.metrics.Backtracked()
		d.log.Debugf("cannot reduce %s/%s from %s: %v, trying next dual", pair.Sender, pair.Receiver, state, err)
		lastErr = err
	}

	if gt, ok, err := EndOrX(state); ok {
		return gt, nil
	} else if err != nil {
		return types.GT{}, err
	}

	if lastErr != nil {
		return types.GT{}, &types.MergeError{Kind: types.NoReducibleDual, Detail: fmt.Sprintf("no reducible dual for %s", state), Cause: lastErr}
	}
	return types.GT{}, &types.MergeError{Kind: types.NoReducibleDual, Detail: fmt.Sprintf("no reducible dual for %s", state)}
}
