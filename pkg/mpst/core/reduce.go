package core

import (
	"fmt"

	"github.com/LvlAndFarm/mpst-inference/pkg/mpst/types"
)

// MergeFunc recursively merges a child PartyState; the driver supplies
// its own Merge method here so reduce-then-merge can recurse without
// this package importing the driver (which would be circular, since
// the driver calls back into ReduceThenMerge).
type MergeFunc func(types.PartyState) (types.GT, error)

// ReduceThenMerge performs one reduction step for the given candidate
// dual pair. pair.Sender's residual must be a Select and
// pair.Receiver's a Branch — EnumerateDuals only ever produces pairs
// shaped that way. For each labelled alternative the Select offers,
// the matching Branch alternative is found (its absence is a step
// failure, not a panic, so the driver can try the next dual); a child
// PartyState is built with both residuals advanced and both depths
// stepped, merged recursively, and the per-label results are
// assembled into a Choice.
//
// Orientation is canonicalised here: regardless of which side of the
// underlying participant pair holds the Select, the emitted Choice
// always reads Choice(sender, receiver, ...).
func ReduceThenMerge(pair DualPair, state types.PartyState, merge MergeFunc) (types.GT, error) {
	senderType, ok := state.Find(pair.Sender)
	if !ok {
		return types.GT{}, &types.MergeError{Kind: types.ParticipantMismatch, Detail: fmt.Sprintf("unknown sender %s", pair.Sender)}
	}
	receiverType, ok := state.Find(pair.Receiver)
	if !ok {
		return types.GT{}, &types.MergeError{Kind: types.ParticipantMismatch, Detail: fmt.Sprintf("unknown receiver %s", pair.Receiver)}
	}
	if senderType.Kind != types.LTSelect || receiverType.Kind != types.LTBranch {
		return types.GT{}, &types.MergeError{Kind: types.ParticipantMismatch, Detail: fmt.Sprintf("%s/%s are not a send/receive dual", pair.Sender, pair.Receiver)}
	}
	if senderType.Partner != pair.Receiver {
		return types.GT{}, &types.MergeError{Kind: types.ParticipantMismatch, Detail: fmt.Sprintf("%s selects towards %s, not %s", pair.Sender, senderType.Partner, pair.Receiver)}
	}
	if receiverType.Partner != pair.Sender {
		return types.GT{}, &types.MergeError{Kind: types.ParticipantMismatch, Detail: fmt.Sprintf("%s branches on %s, not %s", pair.Receiver, receiverType.Partner, pair.Sender)}
	}

	branchByLabel := make(map[types.Label]types.LT, len(receiverType.Alts))
	for _, alt := range receiverType.Alts {
		branchByLabel[alt.Label] = alt.Cont
	}

	next := state.WithStep(pair.Sender, pair.Receiver)

	alts := make([]types.GAlt, 0, len(senderType.Alts))
	for _, alt := range senderType.Alts {
		receiverCont, ok := branchByLabel[alt.Label]
		if !ok {
			return types.GT{}, &types.MergeError{Kind: types.UnmatchedLabel, Detail: fmt.Sprintf("label %q offered by %s has no match on %s", alt.Label, pair.Sender, pair.Receiver)}
		}

		child := next.WithResidual(map[types.Participant]types.LT{
			pair.Sender:   alt.Cont,
			pair.Receiver: receiverCont,
		})

		gt, err := merge(child)
		if err != nil {
			return types.GT{}, err
		}
		alts = append(alts, types.GAlt{Label: alt.Label, Cont: gt})
	}

	return types.Choice(pair.Sender, pair.Receiver, alts...), nil
}
