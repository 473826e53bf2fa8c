package pokedata

import (
	"context"
	"strconv"
	"strings"
)

// generationRanges maps a generation to its national-dex ID window.
var generationRanges = map[int][2]int{
	1: {1, 151},
	2: {152, 251},
	3: {252, 386},
	4: {387, 493},
	5: {494, 649},
	6: {650, 721},
	7: {722, 809},
	8: {810, 905},
	9: {906, 1010},
}

// pokemonTargets resolves what to fetch: explicit names win, then explicit
// IDs, then a computed ID range. An unrecognized generation falls back to
// generation 1's window.
func pokemonTargets(req Request) []string {
	count := req.recordCount()

	if len(req.PokemonNames) > 0 {
		names := req.PokemonNames
		if len(names) > count {
			names = names[:count]
		}
		return append([]string(nil), names...)
	}

	if len(req.PokemonIDs) > 0 {
		ids := req.PokemonIDs
		if len(ids) > count {
			ids = ids[:count]
		}
		out := make([]string, 0, len(ids))
		for _, id := range ids {
			out = append(out, strconv.Itoa(id))
		}
		return out
	}

	start, end := 1, 151
	if req.Generation != 0 {
		if r, ok := generationRanges[req.Generation]; ok {
			start, end = r[0], r[1]
		}
	}
	last := start + count - 1
	if last > end {
		last = end
	}
	out := make([]string, 0, last-start+1)
	for id := start; id <= last; id++ {
		out = append(out, strconv.Itoa(id))
	}
	return out
}

func (t *Tool) pokemonRecords(ctx context.Context, req Request) []PokemonRecord {
	typeFilter := strings.ToLower(req.TypeFilter)
	records := make([]PokemonRecord, 0, req.recordCount())

	for _, target := range pokemonTargets(req) {
		p, ok := t.fetch.Pokemon(ctx, target)
		if !ok {
			continue
		}

		typeNames := make([]string, 0, len(p.Types))
		for _, pt := range p.Types {
			typeNames = append(typeNames, pt.Type.Name)
		}
		if typeFilter != "" && !containsFold(typeNames, typeFilter) {
			continue
		}

		rec := PokemonRecord{
			ID:             p.ID,
			Name:           p.Name,
			Height:         p.Height,
			Weight:         p.Weight,
			Types:          typeNames,
			BaseExperience: p.BaseExperience,
		}

		if req.includeStats() {
			rec.Stats = make(map[string]int, len(p.Stats))
			for _, s := range p.Stats {
				rec.Stats[s.Stat.Name] = s.BaseStat
			}
		}

		if req.includeAbilities() {
			rec.Abilities = make([]AbilitySlot, 0, len(p.Abilities))
			for _, a := range p.Abilities {
				rec.Abilities = append(rec.Abilities, AbilitySlot{
					Name:     a.Ability.Name,
					IsHidden: a.IsHidden,
					Slot:     a.Slot,
				})
			}
		}

		if req.includeMoves() {
			// First 10 only; full move lists blow up record size.
			moves := p.Moves
			if len(moves) > 10 {
				moves = moves[:10]
			}
			rec.Moves = make([]LearnedMove, 0, len(moves))
			for _, m := range moves {
				method := "unknown"
				if len(m.VersionGroupDetails) > 0 {
					method = m.VersionGroupDetails[0].MoveLearnMethod.Name
				}
				rec.Moves = append(rec.Moves, LearnedMove{
					Name:        m.Move.Name,
					LearnMethod: method,
				})
			}
		}

		records = append(records, rec)
	}
	return records
}

func containsFold(ss []string, want string) bool {
	for _, s := range ss {
		if strings.EqualFold(s, want) {
			return true
		}
	}
	return false
}
