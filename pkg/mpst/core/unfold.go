package core

import "github.com/LvlAndFarm/mpst-inference/pkg/mpst/types"

// UnfoldIfAligned checks whether every participant's head is either
// Rec or End, and at least one is a Rec (a state that is entirely End
// is the pure-termination case handled earlier in the driver, not a
// recursion to open). If so, a new global recursion scope is opened:
// its id is the current globalDepth, every Rec participant's body is
// substituted in with its local recursion variable rewritten to that
// global id, and every participant's pre-open localDepth is
// snapshotted for the later End/X compatibility check. End
// participants are left untouched — they remain End and simply are
// not part of the newly opened loop.
//
// The second return value reports whether a scope was opened; when
// false the returned state is the input, unchanged.
func UnfoldIfAligned(state types.PartyState) (types.PartyState, bool) {
	anyRec := false
	for _, entry := range state.Parties {
		switch entry.Type.Kind {
		case types.LTRec:
			anyRec = true
		case types.LTEnd:
			// stays End, contributes nothing to the new scope.
		default:
			return state, false
		}
	}
	if !anyRec {
		return state, false
	}

	scoped, globalID := state.WithScope()

	replacements := make(map[types.Participant]types.LT)
	for _, entry := range state.Parties {
		if entry.Type.Kind == types.LTRec {
			replacements[entry.Who] = MapLocalXToGlobal(*entry.Type.Body, entry.Type.RecID, globalID)
		}
	}

	return scoped.WithResidual(replacements), true
}
