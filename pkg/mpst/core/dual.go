package core

import (
	"sort"

	"github.com/LvlAndFarm/mpst-inference/pkg/mpst/types"
)

// DualPair is one candidate reduction: a sender/receiver pair sharing
// a label, eligible for one step of reduce-then-merge.
type DualPair struct {
	Sender, Receiver types.Participant
}

// EnumerateDuals inspects every participant's top-level constructor
// and returns the deduplicated, order-stable list of candidate dual
// pairs: every label a Select offers is recorded as
// (sender, label); every label a Branch accepts is recorded as
// (receiver, label); whenever a label has both, the pair is emitted.
// End, X and Rec contribute no pairs. Determinism matters here for
// reproducible failures and tests, so the result is sorted by
// (sender, receiver) after deduplication.
func EnumerateDuals(state types.PartyState) []DualPair {
	senders := map[types.Label][]types.Participant{}
	receivers := map[types.Label][]types.Participant{}
	seen := map[DualPair]bool{}
	var duals []DualPair

	for _, entry := range state.Parties {
		switch entry.Type.Kind {
		case types.LTSelect:
			for _, alt := range entry.Type.Alts {
				senders[alt.Label] = append(senders[alt.Label], entry.Who)
				for _, receiver := range receivers[alt.Label] {
					addDual(&duals, seen, DualPair{Sender: entry.Who, Receiver: receiver})
				}
			}
		case types.LTBranch:
			for _, alt := range entry.Type.Alts {
				receivers[alt.Label] = append(receivers[alt.Label], entry.Who)
				for _, sender := range senders[alt.Label] {
					addDual(&duals, seen, DualPair{Sender: sender, Receiver: entry.Who})
				}
			}
		}
	}

	sort.Slice(duals, func(i, j int) bool {
		if duals[i].Sender != duals[j].Sender {
			return duals[i].Sender.Less(duals[j].Sender)
		}
		return duals[i].Receiver.Less(duals[j].Receiver)
	})
	return duals
}

func addDual(duals *[]DualPair, seen map[DualPair]bool, pair DualPair) {
	if seen[pair] {
		return
	}
	seen[pair] = true
	*duals = append(*duals, pair)
}
