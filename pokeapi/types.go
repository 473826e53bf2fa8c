package pokeapi

// NamedResource is the PokéAPI {name, url} reference shape.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Pokemon is the subset of the pokemon resource the normalizers consume.
// Optional upstream fields stay pointers so absence survives decoding.
type Pokemon struct {
	ID             int              `json:"id"`
	Name           string           `json:"name"`
	Height         int              `json:"height"`
	Weight         int              `json:"weight"`
	BaseExperience *int             `json:"base_experience"`
	Types          []PokemonType    `json:"types"`
	Stats          []PokemonStat    `json:"stats"`
	Abilities      []PokemonAbility `json:"abilities"`
	Moves          []PokemonMove    `json:"moves"`
}

type PokemonType struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type PokemonStat struct {
	BaseStat int           `json:"base_stat"`
	Stat     NamedResource `json:"stat"`
}

type PokemonAbility struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

type PokemonMove struct {
	Move                NamedResource        `json:"move"`
	VersionGroupDetails []VersionGroupDetail `json:"version_group_details"`
}

type VersionGroupDetail struct {
	MoveLearnMethod NamedResource `json:"move_learn_method"`
}

type Move struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	Power        *int           `json:"power"`
	PP           *int           `json:"pp"`
	Accuracy     *int           `json:"accuracy"`
	Priority     int            `json:"priority"`
	EffectChance *int           `json:"effect_chance"`
	Type         *NamedResource `json:"type"`
	DamageClass  *NamedResource `json:"damage_class"`
}

type Ability struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	IsMainSeries  bool           `json:"is_main_series"`
	Generation    *NamedResource `json:"generation"`
	EffectEntries []EffectEntry  `json:"effect_entries"`
}

type EffectEntry struct {
	ShortEffect string `json:"short_effect"`
}

type Type struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	DamageRelations DamageRelations `json:"damage_relations"`
}

type DamageRelations struct {
	DoubleDamageTo   []NamedResource `json:"double_damage_to"`
	HalfDamageTo     []NamedResource `json:"half_damage_to"`
	NoDamageTo       []NamedResource `json:"no_damage_to"`
	DoubleDamageFrom []NamedResource `json:"double_damage_from"`
	HalfDamageFrom   []NamedResource `json:"half_damage_from"`
	NoDamageFrom     []NamedResource `json:"no_damage_from"`
}

type EvolutionChain struct {
	ID              int            `json:"id"`
	BabyTriggerItem *NamedResource `json:"baby_trigger_item"`
	Chain           ChainLink      `json:"chain"`
}

type ChainLink struct {
	Species          NamedResource     `json:"species"`
	EvolutionDetails []EvolutionDetail `json:"evolution_details"`
	EvolvesTo        []ChainLink       `json:"evolves_to"`
}

type EvolutionDetail struct {
	MinLevel *int           `json:"min_level"`
	Trigger  *NamedResource `json:"trigger"`
}
