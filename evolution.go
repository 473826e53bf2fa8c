package pokedata

import (
	"context"

	"github.com/edgedx/pokedata/pokeapi"
)

const (
	// maxChainID bounds sequential chain iteration to the first 50 chains.
	maxChainID = 50

	// maxChainDepth guards the recursive chain parser; upstream data is
	// not contractually acyclic. Real chains top out at 3 links.
	maxChainDepth = 8
)

func (t *Tool) evolutionRecords(ctx context.Context, req Request) []EvolutionRecord {
	count := req.recordCount()
	if count > maxChainID {
		count = maxChainID
	}

	records := make([]EvolutionRecord, 0, count)
	for id := 1; id <= count; id++ {
		ch, ok := t.fetch.EvolutionChain(ctx, id)
		if !ok {
			continue
		}
		rec := EvolutionRecord{
			ID:    ch.ID,
			Chain: chainNode(&ch.Chain, 0),
		}
		if ch.BabyTriggerItem != nil {
			rec.BabyTriggerItem = &ch.BabyTriggerItem.Name
		}
		records = append(records, rec)
	}
	return records
}

// chainNode converts one chain link and, recursively, its children.
// MinLevel and Trigger come from the first evolution-detail entry of a
// child link; links past maxChainDepth are dropped.
func chainNode(link *pokeapi.ChainLink, depth int) ChainNode {
	n := ChainNode{
		Species:   link.Species.Name,
		EvolvesTo: []ChainNode{},
	}
	if depth >= maxChainDepth {
		return n
	}
	for i := range link.EvolvesTo {
		ev := &link.EvolvesTo[i]
		child := chainNode(ev, depth+1)
		if len(ev.EvolutionDetails) > 0 {
			d := ev.EvolutionDetails[0]
			child.MinLevel = d.MinLevel
			if d.Trigger != nil {
				child.Trigger = &d.Trigger.Name
			}
		}
		n.EvolvesTo = append(n.EvolvesTo, child)
	}
	return n
}
