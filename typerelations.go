package pokedata

import (
	"context"

	"github.com/edgedx/pokedata/pokeapi"
)

// typeNames is the fixed emission order for the 18 main types. The order
// is part of the output contract and never request-controlled.
var typeNames = [...]string{
	"normal", "fire", "water", "electric", "grass", "ice", "fighting",
	"poison", "ground", "flying", "psychic", "bug", "rock", "ghost",
	"dragon", "dark", "steel", "fairy",
}

func (t *Tool) typeRecords(ctx context.Context) []TypeRecord {
	records := make([]TypeRecord, 0, len(typeNames))
	for _, name := range typeNames {
		ty, ok := t.fetch.Type(ctx, name)
		if !ok {
			continue
		}
		records = append(records, TypeRecord{
			ID:   ty.ID,
			Name: ty.Name,
			DamageRelations: DamageRelations{
				DoubleDamageTo:   resourceNames(ty.DamageRelations.DoubleDamageTo),
				HalfDamageTo:     resourceNames(ty.DamageRelations.HalfDamageTo),
				NoDamageTo:       resourceNames(ty.DamageRelations.NoDamageTo),
				DoubleDamageFrom: resourceNames(ty.DamageRelations.DoubleDamageFrom),
				HalfDamageFrom:   resourceNames(ty.DamageRelations.HalfDamageFrom),
				NoDamageFrom:     resourceNames(ty.DamageRelations.NoDamageFrom),
			},
		})
	}
	return records
}

func resourceNames(rs []pokeapi.NamedResource) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Name)
	}
	return out
}
