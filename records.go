package pokedata

// Result is the envelope returned by Tool.Generate. Data holds the typed
// record slice for a fresh generation, or the decoded JSON shape when the
// result came back from the pinning cache.
type Result struct {
	Data        any    `json:"data"`
	Count       int    `json:"count"`
	DataType    string `json:"data_type"`
	Source      string `json:"source"`
	Cached      bool   `json:"cached"`
	CacheStored bool   `json:"cache_stored,omitempty"`
}

// PokemonRecord is the flat per-Pokémon record. Stats, Abilities and Moves
// are attached only when the request's inclusion flags ask for them.
type PokemonRecord struct {
	ID             int            `json:"id"`
	Name           string         `json:"name"`
	Height         int            `json:"height"`
	Weight         int            `json:"weight"`
	Types          []string       `json:"types"`
	BaseExperience *int           `json:"base_experience"`
	Stats          map[string]int `json:"stats,omitempty"`
	Abilities      []AbilitySlot  `json:"abilities,omitempty"`
	Moves          []LearnedMove  `json:"moves,omitempty"`
}

type AbilitySlot struct {
	Name     string `json:"name"`
	IsHidden bool   `json:"is_hidden"`
	Slot     int    `json:"slot"`
}

type LearnedMove struct {
	Name        string `json:"name"`
	LearnMethod string `json:"learn_method"`
}

// MoveRecord mirrors the optionality of the upstream move resource:
// power, accuracy and friends are genuinely absent for some moves.
type MoveRecord struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Power        *int    `json:"power"`
	PP           *int    `json:"pp"`
	Accuracy     *int    `json:"accuracy"`
	Priority     int     `json:"priority"`
	Type         *string `json:"type"`
	DamageClass  *string `json:"damage_class"`
	EffectChance *int    `json:"effect_chance"`
}

type AbilityRecord struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	IsMainSeries bool    `json:"is_main_series"`
	Generation   *string `json:"generation"`
	Effect       *string `json:"effect"`
}

type TypeRecord struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	DamageRelations DamageRelations `json:"damage_relations"`
}

// DamageRelations lists related type names along the six directional axes.
type DamageRelations struct {
	DoubleDamageTo   []string `json:"double_damage_to"`
	HalfDamageTo     []string `json:"half_damage_to"`
	NoDamageTo       []string `json:"no_damage_to"`
	DoubleDamageFrom []string `json:"double_damage_from"`
	HalfDamageFrom   []string `json:"half_damage_from"`
	NoDamageFrom     []string `json:"no_damage_from"`
}

type EvolutionRecord struct {
	ID              int       `json:"id"`
	BabyTriggerItem *string   `json:"baby_trigger_item"`
	Chain           ChainNode `json:"chain"`
}

// ChainNode is one link of an evolution chain. MinLevel and Trigger come
// from the first evolution-detail entry and are set on child nodes only.
type ChainNode struct {
	Species   string      `json:"species"`
	MinLevel  *int        `json:"min_level,omitempty"`
	Trigger   *string     `json:"trigger,omitempty"`
	EvolvesTo []ChainNode `json:"evolves_to"`
}
