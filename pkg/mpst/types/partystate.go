package types

import (
	"fmt"
	"sort"
	"strings"
)

// PartyEntry pairs a participant with its current residual local type.
type PartyEntry struct {
	Who  Participant
	Type LT
}

// RecContext is the snapshot taken at the moment a global recursion
// scope is opened: every participant's localDepth at that instant.
// It is consulted later to decide whether a peer that has since
// reached End was ever inside the loop bound by this scope.
type RecContext struct {
	GlobalID         int
	LocalDepthAtOpen map[Participant]int
}

// PartyState is the merge engine's working set: the ordered mapping
// from participant to residual local type, plus the depth bookkeeping
// that makes recursive local types mergeable. Every PartyState is
// immutable once constructed — all With* methods return a new value,
// sharing unmodified substructure with the receiver.
type PartyState struct {
	Parties     []PartyEntry
	GlobalDepth int
	LocalDepth  map[Participant]int
	Scopes      map[int]RecContext
}

// NewPartyState builds the initial state for a merge call: depths all
// zero, no open scopes, parties sorted into the fixed, deterministic
// order dual enumeration relies on.
func NewPartyState(parties []PartyEntry) PartyState {
	sorted := make([]PartyEntry, len(parties))
	copy(sorted, parties)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Who.Less(sorted[j].Who) })

	localDepth := make(map[Participant]int, len(sorted))
	for _, entry := range sorted {
		localDepth[entry.Who] = 0
	}

	return PartyState{
		Parties:     sorted,
		GlobalDepth: 0,
		LocalDepth:  localDepth,
		Scopes:      map[int]RecContext{},
	}
}

// Find returns the residual local type for p and whether p is present.
func (s PartyState) Find(p Participant) (LT, bool) {
	for _, entry := range s.Parties {
		if entry.Who == p {
			return entry.Type, true
		}
	}
	return LT{}, false
}

// IsEndState reports whether every participant's residual is End.
func (s PartyState) IsEndState() bool {
	for _, entry := range s.Parties {
		if entry.Type.Kind != LTEnd {
			return false
		}
	}
	return true
}

// WithResidual returns a copy of s with replacements applied to the
// named participants' residual local types; all other participants
// are unchanged.
func (s PartyState) WithResidual(replacements map[Participant]LT) PartyState {
	next := make([]PartyEntry, len(s.Parties))
	for i, entry := range s.Parties {
		if lt, ok := replacements[entry.Who]; ok {
			next[i] = PartyEntry{Who: entry.Who, Type: lt}
		} else {
			next[i] = entry
		}
	}
	return PartyState{
		Parties:     next,
		GlobalDepth: s.GlobalDepth,
		LocalDepth:  s.LocalDepth,
		Scopes:      s.Scopes,
	}
}

// WithStep returns a copy of s with p1 and p2's localDepth incremented
// by one and globalDepth incremented by one — the bookkeeping for a
// single protocol step having been emitted.
func (s PartyState) WithStep(p1, p2 Participant) PartyState {
	localDepth := make(map[Participant]int, len(s.LocalDepth))
	for p, d := range s.LocalDepth {
		localDepth[p] = d
	}
	localDepth[p1]++
	localDepth[p2]++

	return PartyState{
		Parties:     s.Parties,
		GlobalDepth: s.GlobalDepth + 1,
		LocalDepth:  localDepth,
		Scopes:      s.Scopes,
	}
}

// WithScope returns a copy of s with a new recursion scope recorded,
// its id set to s.GlobalDepth, the new global scope id.
func (s PartyState) WithScope() (PartyState, int) {
	id := s.GlobalDepth
	snapshot := make(map[Participant]int, len(s.LocalDepth))
	for p, d := range s.LocalDepth {
		snapshot[p] = d
	}
	scopes := make(map[int]RecContext, len(s.Scopes)+1)
	for k, v := range s.Scopes {
		scopes[k] = v
	}
	scopes[id] = RecContext{GlobalID: id, LocalDepthAtOpen: snapshot}

	return PartyState{
		Parties:     s.Parties,
		GlobalDepth: s.GlobalDepth,
		LocalDepth:  s.LocalDepth,
		Scopes:      scopes,
	}, id
}

// String renders a display form of s.
func (s PartyState) String() string {
	var b strings.Builder
	b.WriteString("{ ")
	for _, entry := range s.Parties {
		fmt.Fprintf(&b, "%s: %s, ", entry.Who, entry.Type)
	}
	b.WriteString("}")
	return b.String()
}
