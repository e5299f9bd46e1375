package core

import (
	"fmt"

	"github.com/LvlAndFarm/mpst-inference/pkg/mpst/types"
)

// PureEnd reports whether every participant's residual is End.
func PureEnd(state types.PartyState) bool {
	return state.IsEndState()
}

// EndOrX handles the mixed End/X case: the non-End residuals are all
// X(g) referring to the same global id g, and every End residual
// belongs to a participant whose localDepth at this state matches the
// localDepth recorded for that participant in the scope that bound g
// — i.e. that participant was not inside the loop g refers to. This
// depth-match rule catches the case a naive "every residual is End or
// some X" check would wrongly accept: a participant that advanced
// inside the loop after it opened and then ended, while the other
// participants cycle back through it.
//
// Three outcomes: (gt, true, nil) when the state resolves to End or
// X(g); (zero, false, nil) when the state simply isn't End/X shaped
// at all (some residual is Select/Branch/Rec), meaning the caller
// should keep looking for a reducible dual; (zero, false, err) when
// the state IS End/X shaped but the depths don't align, which is a
// definite UnalignedEnd failure rather than "try something else".
func EndOrX(state types.PartyState) (types.GT, bool, error) {
	for _, entry := range state.Parties {
		if entry.Type.Kind != types.LTEnd && entry.Type.Kind != types.LTVar {
			return types.GT{}, false, nil
		}
	}

	var globalID *int
	for _, entry := range state.Parties {
		switch entry.Type.Kind {
		case types.LTEnd:
			// checked below, once globalID (if any) is known.
		case types.LTVar:
			if globalID == nil {
				id := entry.Type.VarID
				globalID = &id
			} else if *globalID != entry.Type.VarID {
				return types.GT{}, false, &types.MergeError{
					Kind:   types.UnalignedEnd,
					Detail: fmt.Sprintf("%s loops to X(%d) but another peer loops to X(%d)", entry.Who, entry.Type.VarID, *globalID),
				}
			}
		default:
			return types.GT{}, false, nil
		}
	}

	if globalID == nil {
		// All residuals are End: pure termination, not this function's
		// concern (the driver checks PureEnd first), but tolerate it
		// for direct callers/tests.
		return types.GEnd(), true, nil
	}

	scope, ok := state.Scopes[*globalID]
	if !ok {
		return types.GT{}, false, &types.MergeError{
			Kind:   types.UnalignedEnd,
			Detail: fmt.Sprintf("X(%d) references a recursion scope that was never opened", *globalID),
		}
	}

	for _, entry := range state.Parties {
		if entry.Type.Kind != types.LTEnd {
			continue
		}
		openedAt, ok := scope.LocalDepthAtOpen[entry.Who]
		if !ok {
			continue
		}
		if state.LocalDepth[entry.Who] != openedAt {
			return types.GT{}, false, &types.MergeError{
				Kind:   types.UnalignedEnd,
				Detail: fmt.Sprintf("%s reached End after advancing inside the loop bound by X(%d)", entry.Who, *globalID),
			}
		}
	}

	return types.GVar(*globalID), true, nil
}
