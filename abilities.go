package pokedata

import "context"

// maxAbilityID bounds sequential ability iteration to the first 100.
const maxAbilityID = 100

func (t *Tool) abilityRecords(ctx context.Context, req Request) []AbilityRecord {
	count := req.recordCount()
	if count > maxAbilityID {
		count = maxAbilityID
	}

	records := make([]AbilityRecord, 0, count)
	for id := 1; id <= count; id++ {
		a, ok := t.fetch.Ability(ctx, id)
		if !ok {
			continue
		}
		rec := AbilityRecord{
			ID:           a.ID,
			Name:         a.Name,
			IsMainSeries: a.IsMainSeries,
		}
		if a.Generation != nil {
			rec.Generation = &a.Generation.Name
		}
		if len(a.EffectEntries) > 0 {
			rec.Effect = &a.EffectEntries[0].ShortEffect
		}
		records = append(records, rec)
	}
	return records
}
