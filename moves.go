package pokedata

import "context"

// maxMoveID bounds sequential move iteration to the first 100 moves.
const maxMoveID = 100

func (t *Tool) moveRecords(ctx context.Context, req Request) []MoveRecord {
	count := req.recordCount()
	if count > maxMoveID {
		count = maxMoveID
	}

	records := make([]MoveRecord, 0, count)
	for id := 1; id <= count; id++ {
		m, ok := t.fetch.Move(ctx, id)
		if !ok {
			continue
		}
		rec := MoveRecord{
			ID:           m.ID,
			Name:         m.Name,
			Power:        m.Power,
			PP:           m.PP,
			Accuracy:     m.Accuracy,
			Priority:     m.Priority,
			EffectChance: m.EffectChance,
		}
		if m.Type != nil {
			rec.Type = &m.Type.Name
		}
		if m.DamageClass != nil {
			rec.DamageClass = &m.DamageClass.Name
		}
		records = append(records, rec)
	}
	return records
}
