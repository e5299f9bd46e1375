// Package mpst is the public entry point for the multiparty session
// type merging engine: MergeLocals(parties) -> (GT, error). It wraps
// the core/types packages behind one constructor and one blocking
// operation.
package mpst

import "github.com/LvlAndFarm/mpst-inference/pkg/mpst/types"

// Party pairs a participant with its local type — the front end's
// contract with the engine: unique recursion ids per local, every X
// carrying the id of its enclosing Rec, every top-level participant
// named (anonymous placeholders are only valid inside sub-trees).
type Party struct {
	Who  types.Participant
	Type types.LT
}

// NewParty builds a Party, the shape expected by MergeLocals.
func NewParty(who types.Participant, lt types.LT) Party {
	return Party{Who: who, Type: lt}
}
