package types

import (
	"fmt"
	"sort"
	"strings"
)

// LTKind tags the variant of a local type node.
type LTKind int

const (
	// LTSelect is internal choice: this peer sends exactly one of the
	// labelled continuations to its partner.
	LTSelect LTKind = iota
	// LTBranch is external choice: this peer receives one of the
	// labelled continuations from its partner.
	LTBranch
	// LTRec is a recursion binder.
	LTRec
	// LTVar is a recursion variable bound by the nearest enclosing Rec
	// sharing its id.
	LTVar
	// LTEnd is termination.
	LTEnd
)

func (k LTKind) String() string {
	switch k {
	case LTSelect:
		return "Select"
	case LTBranch:
		return "Branch"
	case LTRec:
		return "Rec"
	case LTVar:
		return "X"
	case LTEnd:
		return "End"
	default:
		return "unknown"
	}
}

// Alt is one labelled alternative of a Select or Branch.
type Alt struct {
	Label Label
	Cont  LT
}

// LT is the local-type algebra: a tagged sum built from the externally
// produced description. Singular send/receive are represented as a
// Select/Branch with one Alt; the engine never special-cases them.
//
// Recursion is de-Bruijn-like with explicit integer ids rather than a
// pointer cycle, so an LT value is always a tree: trivially cloneable
// and structurally comparable. Every recursion id is unique within a
// single LT, and every front-end-authored X is unmapped: it names the
// id of its lexically enclosing Rec, not a global recursion scope.
type LT struct {
	Kind LTKind

	// Partner is set for Select/Branch: the peer this node sends to
	// or receives from.
	Partner Participant

	// Alts is set for Select/Branch: non-empty, label-unique.
	Alts []Alt

	// RecID/Body are set for Rec.
	RecID int
	Body  *LT

	// VarID is set for X. While Mapped is false, VarID names the
	// enclosing Rec within this same LT. Once the rewriting pass turns
	// an X mapped, VarID instead names a global recursion scope id,
	// and the two numberings are drawn from separate counters (local
	// Rec ids from the front end, global scope ids from GlobalDepth),
	// so they can coincide without naming the same thing — Mapped is
	// what tells them apart, not the number itself.
	VarID  int
	Mapped bool
}

// Select builds an internal-choice node.
func Select(partner Participant, alts ...Alt) LT {
	return LT{Kind: LTSelect, Partner: partner, Alts: alts}
}

// Branch builds an external-choice node.
func Branch(partner Participant, alts ...Alt) LT {
	return LT{Kind: LTBranch, Partner: partner, Alts: alts}
}

// Rec builds a recursion binder with the given id and body.
func Rec(id int, body LT) LT {
	return LT{Kind: LTRec, RecID: id, Body: &body}
}

// X builds an unmapped recursion variable referencing the enclosing
// Rec with the given id — the shape a front end produces.
func X(id int) LT {
	return LT{Kind: LTVar, VarID: id}
}

// MappedX builds a recursion variable already resolved to the given
// global recursion scope id. Only the engine's rewriting pass
// produces these; front ends always use X.
func MappedX(id int) LT {
	return LT{Kind: LTVar, VarID: id, Mapped: true}
}

// End builds the termination node.
func End() LT {
	return LT{Kind: LTEnd}
}

// Validate checks the well-formedness invariants on LT: label lists
// inside a Select/Branch are non-empty and label-unique, every X
// occurs in scope of a Rec with a matching id, and recursion ids are
// unique within the local type.
func (t LT) Validate() error {
	return t.validate(map[int]bool{}, map[int]bool{})
}

func (t LT) validate(boundIDs, seenIDs map[int]bool) error {
	switch t.Kind {
	case LTSelect, LTBranch:
		if len(t.Alts) == 0 {
			return &MergeError{Kind: MalformedLocal, Detail: fmt.Sprintf("%s has no alternatives", t.Kind)}
		}
		seenLabels := map[Label]bool{}
		for _, alt := range t.Alts {
			if seenLabels[alt.Label] {
				return &MergeError{Kind: MalformedLocal, Detail: fmt.Sprintf("duplicate label %q in %s", alt.Label, t.Kind)}
			}
			seenLabels[alt.Label] = true
			if err := alt.Cont.validate(boundIDs, seenIDs); err != nil {
				return err
			}
		}
		return nil
	case LTRec:
		if seenIDs[t.RecID] {
			return &MergeError{Kind: MalformedLocal, Detail: fmt.Sprintf("recursion id %d is not unique", t.RecID)}
		}
		// seenIDs is shared across the whole tree so sibling branches
		// cannot reuse an id; boundIDs is scoped to this path.
		seenIDs[t.RecID] = true
		nextBound := cloneIntSet(boundIDs)
		nextBound[t.RecID] = true
		if t.Body == nil {
			return &MergeError{Kind: MalformedLocal, Detail: "Rec has no body"}
		}
		return t.Body.validate(nextBound, seenIDs)
	case LTVar:
		if t.Mapped {
			// A mapped X names a global recursion scope, not a local
			// Rec binder, so boundIDs (tracking this LT's own Rec ids)
			// doesn't apply. Front ends never produce these.
			return nil
		}
		if !boundIDs[t.VarID] {
			return &MergeError{Kind: MalformedLocal, Detail: fmt.Sprintf("X(%d) has no enclosing Rec", t.VarID)}
		}
		return nil
	case LTEnd:
		return nil
	default:
		return &MergeError{Kind: MalformedLocal, Detail: "unknown LT kind"}
	}
}

func cloneIntSet(m map[int]bool) map[int]bool {
	out := make(map[int]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// String renders a display form of t. This is not semantic; compare
// LT values structurally with Equal, not by comparing strings.
func (t LT) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t LT) write(b *strings.Builder) {
	switch t.Kind {
	case LTSelect, LTBranch:
		fmt.Fprintf(b, "%s<%s, {", t.Kind, t.Partner)
		for i, alt := range t.Alts {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s.", alt.Label)
			alt.Cont.write(b)
		}
		b.WriteString("}>")
	case LTRec:
		fmt.Fprintf(b, "rec X%d.", t.RecID)
		t.Body.write(b)
	case LTVar:
		if t.Mapped {
			fmt.Fprintf(b, "X!%d", t.VarID)
		} else {
			fmt.Fprintf(b, "X%d", t.VarID)
		}
	case LTEnd:
		b.WriteString("end")
	}
}

// Equal reports whether t and other are the same local type up to
// branch reordering within each Select/Branch.
func (t LT) Equal(other LT) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case LTSelect, LTBranch:
		if t.Partner != other.Partner || len(t.Alts) != len(other.Alts) {
			return false
		}
		a1 := sortedAlts(t.Alts)
		a2 := sortedAlts(other.Alts)
		for i := range a1 {
			if a1[i].Label != a2[i].Label || !a1[i].Cont.Equal(a2[i].Cont) {
				return false
			}
		}
		return true
	case LTRec:
		return t.RecID == other.RecID && t.Body.Equal(*other.Body)
	case LTVar:
		return t.VarID == other.VarID && t.Mapped == other.Mapped
	case LTEnd:
		return true
	default:
		return false
	}
}

func sortedAlts(alts []Alt) []Alt {
	out := make([]Alt, len(alts))
	copy(out, alts)
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}
