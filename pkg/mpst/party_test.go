package mpst

import (
	"testing"

	"github.com/LvlAndFarm/mpst-inference/pkg/mpst/types"
)

func TestNewParty(t *testing.T) {
	a := types.NewParticipant("A")
	p := NewParty(a, types.End())
	if p.Who != a {
		t.Errorf("expected Who %s, got %s", a, p.Who)
	}
	if p.Type.Kind != types.LTEnd {
		t.Errorf("expected End local type, got %s", p.Type)
	}
}
