package core

import (
	"errors"
	"testing"

	"github.com/LvlAndFarm/mpst-inference/pkg/mpst/types"
)

func TestReduceThenMerge_SingleLabel(t *testing.T) {
	a, b := types.NewParticipant("A"), types.NewParticipant("B")
	state := types.NewPartyState([]types.PartyEntry{
		{Who: a, Type: types.Select(b, types.Alt{Label: "L", Cont: types.End()})},
		{Who: b, Type: types.Branch(a, types.Alt{Label: "L", Cont: types.End()})},
	})

	gt, err := ReduceThenMerge(DualPair{Sender: a, Receiver: b}, state, func(s types.PartyState) (types.GT, error) {
		if !s.IsEndState() {
			t.Fatalf("expected child state to be End-terminated, got %s", s)
		}
		return types.GEnd(), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := types.Choice(a, b, types.GAlt{Label: "L", Cont: types.GEnd()})
	if !gt.Equal(want) {
		t.Errorf("got %s, want %s", gt, want)
	}
}

func TestReduceThenMerge_UnmatchedLabel(t *testing.T) {
	a, b := types.NewParticipant("A"), types.NewParticipant("B")
	state := types.NewPartyState([]types.PartyEntry{
		{Who: a, Type: types.Select(b, types.Alt{Label: "L", Cont: types.End()})},
		{Who: b, Type: types.Branch(a, types.Alt{Label: "R", Cont: types.End()})},
	})

	_, err := ReduceThenMerge(DualPair{Sender: a, Receiver: b}, state, func(s types.PartyState) (types.GT, error) {
		return types.GEnd(), nil
	})
	var merr *types.MergeError
	if !errors.As(err, &merr) || merr.Kind != types.UnmatchedLabel {
		t.Fatalf("expected UnmatchedLabel, got %v", err)
	}
}

func TestReduceThenMerge_ParticipantMismatch(t *testing.T) {
	a, b, c := types.NewParticipant("A"), types.NewParticipant("B"), types.NewParticipant("C")
	state := types.NewPartyState([]types.PartyEntry{
		{Who: a, Type: types.Select(b, types.Alt{Label: "L", Cont: types.End()})},
		{Who: c, Type: types.Branch(a, types.Alt{Label: "L", Cont: types.End()})},
	})

	_, err := ReduceThenMerge(DualPair{Sender: a, Receiver: c}, state, func(s types.PartyState) (types.GT, error) {
		return types.GEnd(), nil
	})
	var merr *types.MergeError
	if !errors.As(err, &merr) || merr.Kind != types.ParticipantMismatch {
		t.Fatalf("expected ParticipantMismatch since A selects towards B, not C; got %v", err)
	}
}

func TestReduceThenMerge_AbortsOnChildFailure(t *testing.T) {
	a, b := types.NewParticipant("A"), types.NewParticipant("B")
	state := types.NewPartyState([]types.PartyEntry{
		{Who: a, Type: types.Select(b, types.Alt{Label: "L", Cont: types.End()})},
		{Who: b, Type: types.Branch(a, types.Alt{Label: "L", Cont: types.End()})},
	})

	boom := &types.MergeError{Kind: types.NoReducibleDual, Detail: "injected failure"}
	_, err := ReduceThenMerge(DualPair{Sender: a, Receiver: b}, state, func(s types.PartyState) (types.GT, error) {
		return types.GT{}, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the child merge's error to propagate unchanged, got %v", err)
	}
}
