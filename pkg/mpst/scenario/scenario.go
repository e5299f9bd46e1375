// Package scenario loads a multiparty-session-type scenario — one
// local type per participant — from a YAML document, for the
// cmd/mergelocals CLI.
//
// This is not a source-language introspection layer: it does not walk
// an imperative function body to emit Send/Receive/InternalChoice/
// ExternalChoice/RecX/X/End nodes. This package instead decodes the
// engine's own LT algebra directly from a declarative fixture, the
// same shape hand-built Select/Branch/Rec literals take in code.
package scenario

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/LvlAndFarm/mpst-inference/pkg/mpst"
	"github.com/LvlAndFarm/mpst-inference/pkg/mpst/types"
)

// document is the top-level YAML shape: one local type per party.
type document struct {
	Parties []partyNode `yaml:"parties"`
}

type partyNode struct {
	Name string `yaml:"name"`
	Type ltNode `yaml:"type"`
}

// ltNode is a tagged union over YAML: exactly one of its fields should
// be set, mirroring the LT algebra's five variants.
type ltNode struct {
	Select *choiceNode `yaml:"select"`
	Branch *choiceNode `yaml:"branch"`
	Rec    *recNode    `yaml:"rec"`
	Var    *int        `yaml:"var"`
	End    bool        `yaml:"end"`
}

type choiceNode struct {
	To   string    `yaml:"to"`
	Alts []altNode `yaml:"alts"`
}

type altNode struct {
	Label string `yaml:"label"`
	Cont  ltNode `yaml:"cont"`
}

type recNode struct {
	ID   int    `yaml:"id"`
	Body ltNode `yaml:"body"`
}

// Load decodes a YAML scenario document into the Party slice
// mpst.MergeLocals expects.
func Load(data []byte) ([]mpst.Party, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}

	parties := make([]mpst.Party, 0, len(doc.Parties))
	for _, p := range doc.Parties {
		lt, err := p.Type.toLT()
		if err != nil {
			return nil, fmt.Errorf("scenario: party %s: %w", p.Name, err)
		}
		parties = append(parties, mpst.NewParty(types.NewParticipant(p.Name), lt))
	}
	return parties, nil
}

func (n ltNode) toLT() (types.LT, error) {
	switch {
	case n.Select != nil:
		alts, err := n.Select.toAlts()
		if err != nil {
			return types.LT{}, err
		}
		return types.Select(types.NewParticipant(n.Select.To), alts...), nil
	case n.Branch != nil:
		alts, err := n.Branch.toAlts()
		if err != nil {
			return types.LT{}, err
		}
		return types.Branch(types.NewParticipant(n.Branch.To), alts...), nil
	case n.Rec != nil:
		body, err := n.Rec.Body.toLT()
		if err != nil {
			return types.LT{}, err
		}
		return types.Rec(n.Rec.ID, body), nil
	case n.Var != nil:
		return types.X(*n.Var), nil
	case n.End:
		return types.End(), nil
	default:
		return types.LT{}, fmt.Errorf("empty local type node")
	}
}

func (c *choiceNode) toAlts() ([]types.Alt, error) {
	alts := make([]types.Alt, 0, len(c.Alts))
	for _, a := range c.Alts {
		cont, err := a.Cont.toLT()
		if err != nil {
			return nil, err
		}
		alts = append(alts, types.Alt{Label: types.Label(a.Label), Cont: cont})
	}
	return alts, nil
}
