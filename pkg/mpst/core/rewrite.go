package core

import "github.com/LvlAndFarm/mpst-inference/pkg/mpst/types"

// MapLocalXToGlobal substitutes every unmapped X(local) inside t with
// a mapped X(global), leaving already-mapped variables and nested Rec
// binders untouched. Matching only on VarID would be wrong: local Rec
// ids (front-end-authored, unique per LT) and global scope ids
// (allocated from GlobalDepth as scopes open) are drawn from
// independent counters and can collide numerically — an X already
// mapped to global scope 0 and an unrelated still-local X(0) nested
// inside a not-yet-opened Rec(0, ...) are both VarID 0 but name
// different things. The Mapped flag, not the number, is what
// disambiguates them, so only unmapped X(local) nodes are rewritten
// here; an already-mapped node is left exactly as it is regardless of
// what its VarID happens to be.
func MapLocalXToGlobal(t types.LT, local, global int) types.LT {
	switch t.Kind {
	case types.LTVar:
		if !t.Mapped && t.VarID == local {
			return types.MappedX(global)
		}
		return t
	case types.LTRec:
		if t.RecID == local {
			// Shadowed: a nested binder reusing the same id would
			// rebind X(local) to itself, not to the id being
			// unfolded. Recursion ids are unique per LT so this
			// branch is unreachable in well-formed input, but we
			// still stop descending defensively rather than rewrite
			// a variable that belongs to a different binder.
			return t
		}
		body := MapLocalXToGlobal(*t.Body, local, global)
		return types.Rec(t.RecID, body)
	case types.LTSelect, types.LTBranch:
		alts := make([]types.Alt, len(t.Alts))
		for i, alt := range t.Alts {
			alts[i] = types.Alt{Label: alt.Label, Cont: MapLocalXToGlobal(alt.Cont, local, global)}
		}
		if t.Kind == types.LTSelect {
			return types.Select(t.Partner, alts...)
		}
		return types.Branch(t.Partner, alts...)
	default:
		return t
	}
}
