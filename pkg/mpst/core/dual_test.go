package core

import (
	"testing"

	"github.com/LvlAndFarm/mpst-inference/pkg/mpst/types"
)

func TestEnumerateDuals_FindsMatchingSelectBranch(t *testing.T) {
	a, b := types.NewParticipant("A"), types.NewParticipant("B")
	state := types.NewPartyState([]types.PartyEntry{
		{Who: a, Type: types.Select(b, types.Alt{Label: "L", Cont: types.End()})},
		{Who: b, Type: types.Branch(a, types.Alt{Label: "L", Cont: types.End()})},
	})

	duals := EnumerateDuals(state)
	if len(duals) != 1 || duals[0] != (DualPair{Sender: a, Receiver: b}) {
		t.Fatalf("expected a single (A,B) dual, got %v", duals)
	}
}

func TestEnumerateDuals_RejectsUnmatchedLabels(t *testing.T) {
	a, b := types.NewParticipant("A"), types.NewParticipant("B")
	state := types.NewPartyState([]types.PartyEntry{
		{Who: a, Type: types.Select(b, types.Alt{Label: "L", Cont: types.End()})},
		{Who: b, Type: types.Branch(a, types.Alt{Label: "R", Cont: types.End()})},
	})
	if duals := EnumerateDuals(state); len(duals) != 0 {
		t.Errorf("expected no dual for disjoint labels, got %v", duals)
	}
}

func TestEnumerateDuals_SortedDeterministically(t *testing.T) {
	a, b, c := types.NewParticipant("A"), types.NewParticipant("B"), types.NewParticipant("C")
	state := types.NewPartyState([]types.PartyEntry{
		{Who: a, Type: types.Select(b, types.Alt{Label: "L", Cont: types.End()}, types.Alt{Label: "R", Cont: types.End()})},
		{Who: b, Type: types.Branch(a, types.Alt{Label: "L", Cont: types.End()})},
		{Who: c, Type: types.Branch(a, types.Alt{Label: "R", Cont: types.End()})},
	})
	duals := EnumerateDuals(state)
	if len(duals) != 2 {
		t.Fatalf("expected two dual candidates, got %v", duals)
	}
	if duals[0] != (DualPair{Sender: a, Receiver: b}) || duals[1] != (DualPair{Sender: a, Receiver: c}) {
		t.Errorf("expected duals sorted by receiver, got %v", duals)
	}
}
