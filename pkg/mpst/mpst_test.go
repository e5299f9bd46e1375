package mpst

import (
	"errors"
	"testing"

	"github.com/LvlAndFarm/mpst-inference/pkg/mpst/types"
)

func TestMergeLocals_RejectsEmptyInput(t *testing.T) {
	if _, err := MergeLocals(nil); err == nil {
		t.Fatalf("expected an error for zero parties")
	}
}

func TestMergeLocals_RejectsAnonymousTopLevelParticipant(t *testing.T) {
	parties := []Party{NewParty(types.Anonymous(), types.End())}
	_, err := MergeLocals(parties)
	var merr *types.MergeError
	if !errors.As(err, &merr) || merr.Kind != types.MalformedLocal {
		t.Fatalf("expected MalformedLocal, got %v", err)
	}
}

func TestMergeLocals_RejectsDuplicateParticipant(t *testing.T) {
	a := types.NewParticipant("A")
	parties := []Party{NewParty(a, types.End()), NewParty(a, types.End())}
	_, err := MergeLocals(parties)
	var merr *types.MergeError
	if !errors.As(err, &merr) || merr.Kind != types.MalformedLocal {
		t.Fatalf("expected MalformedLocal for a duplicated participant, got %v", err)
	}
}

func TestMergeLocals_WrapsMalformedLocalType(t *testing.T) {
	a := types.NewParticipant("A")
	parties := []Party{NewParty(a, types.X(1))}
	_, err := MergeLocals(parties)
	if err == nil {
		t.Fatalf("expected an error for an unbound recursion variable")
	}
}

func TestMergeLocals_EndClosure(t *testing.T) {
	a, b := types.NewParticipant("A"), types.NewParticipant("B")
	parties := []Party{NewParty(a, types.End()), NewParty(b, types.End())}
	gt, err := MergeLocals(parties)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gt.Kind != types.GTEnd {
		t.Errorf("expected End, got %s", gt)
	}
}

func TestMergeLocals_MessageRoundTrip(t *testing.T) {
	a, b := types.NewParticipant("A"), types.NewParticipant("B")
	parties := []Party{
		NewParty(a, types.Select(b, types.Alt{Label: "L", Cont: types.End()})),
		NewParty(b, types.Branch(a, types.Alt{Label: "L", Cont: types.End()})),
	}
	gt, err := MergeLocals(parties)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := types.Message(a, b, "L", types.GEnd())
	if !gt.Equal(want) {
		t.Errorf("got %s, want %s", gt, want)
	}
	if gt.Kind != types.GTMessage {
		t.Errorf("expected Simplify (the default) to collapse the single-branch Choice into Message, got %s", gt.Kind)
	}
}

func TestMergeLocals_WithoutSimplifyKeepsChoice(t *testing.T) {
	a, b := types.NewParticipant("A"), types.NewParticipant("B")
	parties := []Party{
		NewParty(a, types.Select(b, types.Alt{Label: "L", Cont: types.End()})),
		NewParty(b, types.Branch(a, types.Alt{Label: "L", Cont: types.End()})),
	}
	gt, err := NewMerger(WithoutSimplify()).MergeLocals(parties)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gt.Kind != types.GTChoice {
		t.Errorf("expected the raw Choice form with simplification disabled, got %s", gt.Kind)
	}
}

func TestMergeLocals_OrderingDoesNotAffectOutput(t *testing.T) {
	a, b := types.NewParticipant("A"), types.NewParticipant("B")
	forward := []Party{
		NewParty(a, types.Select(b, types.Alt{Label: "L", Cont: types.End()})),
		NewParty(b, types.Branch(a, types.Alt{Label: "L", Cont: types.End()})),
	}
	backward := []Party{forward[1], forward[0]}

	gt1, err := MergeLocals(forward)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gt2, err := MergeLocals(backward)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gt1.Equal(*gt2) {
		t.Errorf("expected participant ordering not to affect the merged result: %s vs %s", gt1, gt2)
	}
}

func TestMergeLocals_UnmatchedLabelFails(t *testing.T) {
	a, b := types.NewParticipant("A"), types.NewParticipant("B")
	parties := []Party{
		NewParty(a, types.Select(b, types.Alt{Label: "L", Cont: types.End()})),
		NewParty(b, types.Branch(a, types.Alt{Label: "R", Cont: types.End()})),
	}
	_, err := MergeLocals(parties)
	var merr *types.MergeError
	if !errors.As(err, &merr) || merr.Kind != types.NoReducibleDual {
		t.Fatalf("expected NoReducibleDual, got %v", err)
	}
}
