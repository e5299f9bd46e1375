// Package fuzzy generates random well-formed dual local-type pairs and
// checks the merging engine's invariants hold across many of them,
// rather than relying solely on hand-written fixtures.
package fuzzy

import (
	"math/rand"

	"github.com/LvlAndFarm/mpst-inference/pkg/mpst/types"
)

// shape is a label-and-structure skeleton shared by both halves of a
// dual pair: one side reads it as Select/Branch, the other reads the
// very same tree as Branch/Select, so the two local types are duals
// by construction rather than by a separate mirroring pass that could
// drift out of sync.
type shape struct {
	kind  shapeKind
	label types.Label
	alts  []shape
	recID int
	body  *shape
}

type shapeKind int

const (
	shapeEnd shapeKind = iota
	shapeMsg
	shapeRec
	shapeVar
)

// genParams bounds the generator so it always produces a validatable,
// terminating tree: genShape never emits an X outside an enclosing Rec
// and never reuses a recursion id.
type genParams struct {
	rng       *rand.Rand
	maxDepth  int
	nextRecID int
}

func genShape(p *genParams, depth int, openIDs []int) shape {
	if depth <= 0 {
		return shape{kind: shapeEnd}
	}

	choices := []shapeKind{shapeEnd, shapeMsg}
	if len(openIDs) > 0 {
		choices = append(choices, shapeVar, shapeVar)
	}
	if p.nextRecID < 3 {
		choices = append(choices, shapeRec)
	}

	switch choices[p.rng.Intn(len(choices))] {
	case shapeEnd:
		return shape{kind: shapeEnd}
	case shapeVar:
		id := openIDs[p.rng.Intn(len(openIDs))]
		return shape{kind: shapeVar, recID: id}
	case shapeRec:
		id := p.nextRecID
		p.nextRecID++
		body := genShape(p, depth-1, append(openIDs, id))
		return shape{kind: shapeRec, recID: id, body: &body}
	default:
		n := 1 + p.rng.Intn(2)
		alts := make([]shape, n)
		for i := range alts {
			alts[i] = shape{label: labelFor(i), alts: []shape{genShape(p, depth-1, openIDs)}}
		}
		return shape{kind: shapeMsg, alts: alts}
	}
}

func labelFor(i int) types.Label {
	return types.Label(string(rune('A' + i)))
}

// genDualShape produces a random shape whose recursion ids are unique
// and whose X nodes are always bound, bounded by maxDepth and seeded
// by seed for reproducible failures.
func genDualShape(seed int64, maxDepth int) shape {
	p := &genParams{rng: rand.New(rand.NewSource(seed)), maxDepth: maxDepth}
	return genShape(p, maxDepth, nil)
}

// buildLocal renders shape as an LT from one side of the dual: asSender
// true yields Select nodes, false yields Branch nodes, with every other
// node (Rec/X/End) identical on both sides.
func buildLocal(s shape, partner types.Participant, asSender bool) types.LT {
	switch s.kind {
	case shapeEnd:
		return types.End()
	case shapeVar:
		return types.X(s.recID)
	case shapeRec:
		return types.Rec(s.recID, buildLocal(*s.body, partner, asSender))
	case shapeMsg:
		alts := make([]types.Alt, len(s.alts))
		for i, a := range s.alts {
			alts[i] = types.Alt{Label: a.label, Cont: buildLocal(a.alts[0], partner, asSender)}
		}
		if asSender {
			return types.Select(partner, alts...)
		}
		return types.Branch(partner, alts...)
	default:
		return types.End()
	}
}
