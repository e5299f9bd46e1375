// Package test holds the literal end-to-end scenario fixtures and the
// assertion helpers the core and package-level tests build on.
package test

import (
	"testing"

	"github.com/LvlAndFarm/mpst-inference/pkg/mpst"
	"github.com/LvlAndFarm/mpst-inference/pkg/mpst/types"
)

// Roles used across the scenario fixtures below.
var (
	A = types.NewParticipant("A")
	B = types.NewParticipant("B")
	C = types.NewParticipant("C")
	D = types.NewParticipant("D")
	S = types.NewParticipant("S")
)

// Scenario bundles a merge's inputs with the expected global type, so
// a single table-driven test can both run the merge and report which
// named scenario failed.
type Scenario struct {
	Name     string
	Parties  []mpst.Party
	Expected types.GT
}

// Scenario1 is the binary request/reply fixture.
func Scenario1() Scenario {
	return Scenario{
		Name: "S1 binary request/reply",
		Parties: []mpst.Party{
			mpst.NewParty(A, types.Select(B, types.Alt{Label: "Req", Cont: types.Branch(B, types.Alt{Label: "Ans", Cont: types.End()})})),
			mpst.NewParty(B, types.Branch(A, types.Alt{Label: "Req", Cont: types.Select(A, types.Alt{Label: "Ans", Cont: types.End()})})),
		},
		Expected: types.Choice(A, B, types.GAlt{
			Label: "Req",
			Cont:  types.Choice(B, A, types.GAlt{Label: "Ans", Cont: types.GEnd()}),
		}),
	}
}

// Scenario2 is the asymmetric-choice fixture: after the initial
// "Hello", A continues to branch on two differently-shaped arms.
func Scenario2() Scenario {
	return Scenario{
		Name: "S2 asymmetric choice",
		Parties: []mpst.Party{
			mpst.NewParty(A, types.Select(B, types.Alt{
				Label: "Hello",
				Cont: types.Branch(B,
					types.Alt{Label: "Left", Cont: types.Branch(B, types.Alt{Label: "LeftEnd", Cont: types.End()})},
					types.Alt{Label: "Right", Cont: types.Select(B, types.Alt{Label: "RightEnd", Cont: types.End()})},
				),
			})),
			mpst.NewParty(B, types.Branch(A, types.Alt{
				Label: "Hello",
				Cont: types.Select(A,
					types.Alt{Label: "Left", Cont: types.Select(A, types.Alt{Label: "LeftEnd", Cont: types.End()})},
					types.Alt{Label: "Right", Cont: types.Branch(A, types.Alt{Label: "RightEnd", Cont: types.End()})},
				),
			})),
		},
		Expected: types.Choice(A, B, types.GAlt{
			Label: "Hello",
			Cont: types.Choice(B, A,
				types.GAlt{Label: "Left", Cont: types.Choice(B, A, types.GAlt{Label: "LeftEnd", Cont: types.GEnd()})},
				types.GAlt{Label: "Right", Cont: types.Choice(A, B, types.GAlt{Label: "RightEnd", Cont: types.GEnd()})},
			),
		}),
	}
}

// Scenario3 is the recursive-accumulator fixture: C loops sending Add
// to S, or instead ends the loop by sending Req, which S answers with
// Ans.
func Scenario3() Scenario {
	return Scenario{
		Name: "S3 recursive accumulator",
		Parties: []mpst.Party{
			mpst.NewParty(C, types.Rec(1, types.Select(S,
				types.Alt{Label: "Add", Cont: types.X(1)},
				types.Alt{Label: "Req", Cont: types.Branch(S, types.Alt{Label: "Ans", Cont: types.End()})},
			))),
			mpst.NewParty(S, types.Rec(1, types.Branch(C,
				types.Alt{Label: "Add", Cont: types.X(1)},
				types.Alt{Label: "Req", Cont: types.Select(C, types.Alt{Label: "Ans", Cont: types.End()})},
			))),
		},
		Expected: types.GRec(0, types.Choice(C, S,
			types.GAlt{Label: "Add", Cont: types.GVar(0)},
			types.GAlt{Label: "Req", Cont: types.Choice(S, C, types.GAlt{Label: "Ans", Cont: types.GEnd()})},
		)),
	}
}

// Scenario4 is the three-party backtracking fixture: A's labels L/R
// also match C's Branch, so (A,C) is a candidate dual, but A selects
// towards B, not C, so only (A,B) reduces; B's message to C is then
// nested into each arm.
func Scenario4() Scenario {
	return Scenario{
		Name: "S4 three-party backtracking",
		Parties: []mpst.Party{
			mpst.NewParty(A, types.Select(B, types.Alt{Label: "L", Cont: types.End()}, types.Alt{Label: "R", Cont: types.End()})),
			mpst.NewParty(B, types.Branch(A,
				types.Alt{Label: "L", Cont: types.Select(C, types.Alt{Label: "L", Cont: types.End()})},
				types.Alt{Label: "R", Cont: types.Select(C, types.Alt{Label: "R", Cont: types.End()})},
			)),
			mpst.NewParty(C, types.Branch(B, types.Alt{Label: "L", Cont: types.End()}, types.Alt{Label: "R", Cont: types.End()})),
		},
		Expected: types.Choice(A, B,
			types.GAlt{Label: "L", Cont: types.Choice(B, C, types.GAlt{Label: "L", Cont: types.GEnd()})},
			types.GAlt{Label: "R", Cont: types.Choice(B, C, types.GAlt{Label: "R", Cont: types.GEnd()})},
		),
	}
}

// Scenario5 is the nested-recursion fixture (spec §4.4): an outer loop
// opens with a single "Hi" message, then an inner loop lets B pick
// between repeating the inner loop or unwinding back to the outer one.
func Scenario5() Scenario {
	return Scenario{
		Name: "S5 nested recursion",
		Parties: []mpst.Party{
			mpst.NewParty(A, types.Rec(1, types.Select(B, types.Alt{
				Label: "Hi",
				Cont: types.Rec(2, types.Branch(B,
					types.Alt{Label: "RepeatX", Cont: types.X(1)},
					types.Alt{Label: "RepeatY", Cont: types.X(2)},
				)),
			}))),
			mpst.NewParty(B, types.Rec(1, types.Branch(A, types.Alt{
				Label: "Hi",
				Cont: types.Rec(2, types.Select(A,
					types.Alt{Label: "RepeatX", Cont: types.X(1)},
					types.Alt{Label: "RepeatY", Cont: types.X(2)},
				)),
			}))),
		},
		Expected: types.GRec(0, types.Message(A, B, "Hi", types.GRec(1, types.Choice(B, A,
			types.GAlt{Label: "RepeatX", Cont: types.GVar(0)},
			types.GAlt{Label: "RepeatY", Cont: types.GVar(1)},
		)))),
	}
}

// Scenario6 is the eventually-synchronous quartet: A and B synchronise
// on "Sync", C and D independently exchange a single "Ping", and only
// once every participant has either finished or reached its own loop
// does A/B's recursion open — so the loop's recursion scope never
// contends with C/D's already-settled residuals (the depth-match rule
// would otherwise reject a loop still in flight against a peer that
// moved past it).
func Scenario6() Scenario {
	return Scenario{
		Name: "S6 eventually-synchronous quartet",
		Parties: []mpst.Party{
			mpst.NewParty(A, types.Select(B, types.Alt{
				Label: "Sync",
				Cont: types.Rec(1, types.Select(B,
					types.Alt{Label: "Again", Cont: types.X(1)},
					types.Alt{Label: "Stop", Cont: types.End()},
				)),
			})),
			mpst.NewParty(B, types.Branch(A, types.Alt{
				Label: "Sync",
				Cont: types.Rec(1, types.Branch(A,
					types.Alt{Label: "Again", Cont: types.X(1)},
					types.Alt{Label: "Stop", Cont: types.End()},
				)),
			})),
			mpst.NewParty(C, types.Select(D, types.Alt{Label: "Ping", Cont: types.End()})),
			mpst.NewParty(D, types.Branch(C, types.Alt{Label: "Ping", Cont: types.End()})),
		},
		Expected: types.Choice(A, B, types.GAlt{
			Label: "Sync",
			Cont: types.Choice(C, D, types.GAlt{
				Label: "Ping",
				Cont: types.GRec(2, types.Choice(A, B,
					types.GAlt{Label: "Again", Cont: types.GVar(2)},
					types.GAlt{Label: "Stop", Cont: types.GEnd()},
				)),
			}),
		}),
	}
}

// All returns every literal scenario, in the order spec §8 lists them.
func All() []Scenario {
	return []Scenario{Scenario1(), Scenario2(), Scenario3(), Scenario4(), Scenario5(), Scenario6()}
}

// AssertMerges runs mpst.MergeLocals on sc and fails t if the merge
// errors or the resulting GT doesn't match sc.Expected up to branch
// reordering.
func AssertMerges(t *testing.T, sc Scenario) {
	t.Helper()
	gt, err := mpst.MergeLocals(sc.Parties)
	if err != nil {
		t.Fatalf("%s: merge failed: %v", sc.Name, err)
		return
	}
	if !gt.Equal(sc.Expected) {
		t.Errorf("%s: got %s, want %s", sc.Name, gt, sc.Expected)
	}
}
