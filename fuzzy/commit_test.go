package fuzzy

import (
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/LvlAndFarm/mpst-inference/pkg/mpst"
	"github.com/LvlAndFarm/mpst-inference/pkg/mpst/types"
)

// dualParties builds a random dual pair of A/B local types from the
// same shape and the engine's merge of them.
func dualParties(seed int64, maxDepth int) (a, b types.Participant, merged []mpst.Party) {
	a = types.NewParticipant("A")
	b = types.NewParticipant("B")
	s := genDualShape(seed, maxDepth)
	return a, b, []mpst.Party{
		mpst.NewParty(a, buildLocal(s, b, true)),
		mpst.NewParty(b, buildLocal(s, a, false)),
	}
}

const trials = 200

// Test_Termination asserts every generated dual pair either merges or
// fails with a MergeError, never hangs or panics. The generator only
// ever emits X within an enclosing Rec with a unique id, so
// MergeLocals runs to completion on every trial.
func Test_Termination(t *testing.T) {
	defer goleak.VerifyNone(t)
	for seed := int64(0); seed < trials; seed++ {
		_, _, parties := dualParties(seed, 4)
		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = mpst.MergeLocals(parties)
		}()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatalf("seed %d: MergeLocals did not terminate", seed)
		}
	}
}

// Test_EndClosure asserts a merge that succeeds with both locals built
// from an all-End shape reports GEnd.
func Test_EndClosure(t *testing.T) {
	a, b := types.NewParticipant("A"), types.NewParticipant("B")
	parties := []mpst.Party{mpst.NewParty(a, types.End()), mpst.NewParty(b, types.End())}
	gt, err := mpst.MergeLocals(parties)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gt.Kind != types.GTEnd {
		t.Errorf("expected End, got %s", gt)
	}
}

// Test_SyntacticDualsAlwaysMerge asserts that every random shape,
// rendered as Select on one side and Branch on the other with
// identical labels/ids, merges successfully: a dual pair built this
// way can never hit UnmatchedLabel or ParticipantMismatch, since both
// sides share the same label set and partner at every step.
func Test_SyntacticDualsAlwaysMerge(t *testing.T) {
	for seed := int64(0); seed < trials; seed++ {
		_, _, parties := dualParties(seed, 4)
		if _, err := mpst.MergeLocals(parties); err != nil {
			t.Fatalf("seed %d: expected a syntactic dual to merge, got %v", seed, err)
		}
	}
}

// Test_BacktrackingDeterminism asserts merging the same dual pair
// twice produces the same global type, and that swapping the
// participant order makes no difference:
// the driver's dual ordering is a pure function of PartyState, not of
// map iteration or goroutine scheduling.
func Test_BacktrackingDeterminism(t *testing.T) {
	for seed := int64(0); seed < trials; seed++ {
		_, _, parties := dualParties(seed, 4)
		gt1, err1 := mpst.MergeLocals(parties)
		swapped := []mpst.Party{parties[1], parties[0]}
		gt2, err2 := mpst.MergeLocals(swapped)

		if (err1 == nil) != (err2 == nil) {
			t.Fatalf("seed %d: ordering changed success/failure: %v vs %v", seed, err1, err2)
		}
		if err1 != nil {
			continue
		}
		if !gt1.Equal(*gt2) {
			t.Errorf("seed %d: expected order-independent result, got %s vs %s", seed, gt1, gt2)
		}

		gt1Again, err1Again := mpst.MergeLocals(parties)
		if err1Again != nil || !gt1.Equal(*gt1Again) {
			t.Errorf("seed %d: expected re-merging the same parties to be deterministic", seed)
		}
	}
}

// Test_MessageRoundTrip asserts that every Message or Choice edge in a
// successfully merged GT, checked transitively, names only participants
// from {A, B} as its sender and receiver.
func Test_MessageRoundTrip(t *testing.T) {
	for seed := int64(0); seed < trials; seed++ {
		a, b, parties := dualParties(seed, 4)
		gt, err := mpst.MergeLocals(parties)
		if err != nil {
			continue
		}
		assertOnlyParticipants(t, seed, *gt, a, b)
	}
}

func assertOnlyParticipants(t *testing.T, seed int64, gt types.GT, a, b types.Participant) {
	t.Helper()
	switch gt.Kind {
	case types.GTEnd, types.GTVar:
		return
	case types.GTMessage:
		if !isAOrB(gt.From, a, b) || !isAOrB(gt.To, a, b) {
			t.Errorf("seed %d: message edge %s/%s names a participant outside {A,B}", seed, gt.From, gt.To)
		}
		assertOnlyParticipants(t, seed, *gt.Cont, a, b)
	case types.GTChoice:
		if !isAOrB(gt.From, a, b) || !isAOrB(gt.To, a, b) {
			t.Errorf("seed %d: choice edge %s/%s names a participant outside {A,B}", seed, gt.From, gt.To)
		}
		for _, alt := range gt.Alts {
			assertOnlyParticipants(t, seed, alt.Cont, a, b)
		}
	case types.GTRec:
		assertOnlyParticipants(t, seed, *gt.Body, a, b)
	}
}

func isAOrB(p, a, b types.Participant) bool {
	return p == a || p == b
}
