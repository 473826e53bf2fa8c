package pokedata

import "strings"

// Recognized data categories. Capability validation accepts all of them;
// only the first five have normalizers today, the rest surface as an
// UnsupportedCategoryError if a request carrying them reaches Generate.
const (
	CategoryPokemon   = "pokemon"
	CategorySpecies   = "species"
	CategoryMoves     = "moves"
	CategoryAbilities = "abilities"
	CategoryTypes     = "types"
	CategoryEvolution = "evolution"
	CategoryStats     = "stats"
	CategoryLocations = "locations"
	CategoryItems     = "items"
)

// Defaults applied when the corresponding Request field is absent.
const (
	DefaultNumRecords       = 10
	DefaultIncludeStats     = true
	DefaultIncludeAbilities = true
	DefaultIncludeMoves     = false
)

// Request is an RFD (request for data): the caller-supplied descriptor of
// the dataset to produce. Unknown JSON keys are ignored on decode.
//
// The zero value is a valid request for 10 Pokémon records with stats and
// abilities included.
type Request struct {
	// DataType selects the category. Type is an accepted alias; DataType
	// wins when both are set. Empty means "pokemon" once Name/Description
	// mention Pokémon (see Tool.Validate).
	DataType string `json:"data_type,omitempty"`
	Type     string `json:"type,omitempty"`

	// Free-text metadata. Not cache-relevant: two requests differing only
	// here share a fingerprint.
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`

	// NumRecords caps the record count; <=0 means DefaultNumRecords.
	NumRecords int `json:"num_records,omitempty"`

	// PokemonNames/PokemonIDs pin the target list explicitly (names win
	// over IDs, both win over the computed ID range).
	PokemonNames []string `json:"pokemon_names,omitempty"`
	PokemonIDs   []int    `json:"pokemon_ids,omitempty"`

	// Generation filters the computed ID range (1-9); 0 means unset.
	Generation int `json:"generation,omitempty"`

	// TypeFilter drops Pokémon records whose type list lacks this type
	// name (case-insensitive). Empty means no filter.
	TypeFilter string `json:"type_filter,omitempty"`

	// Inclusion flags; nil means the documented default.
	IncludeStats     *bool `json:"include_stats,omitempty"`
	IncludeAbilities *bool `json:"include_abilities,omitempty"`
	IncludeMoves     *bool `json:"include_moves,omitempty"`
}

// Category resolves the explicit category, preferring DataType over the
// Type alias. Empty when neither is set.
func (r Request) Category() string {
	return coalesce(r.DataType, r.Type)
}

func (r Request) recordCount() int {
	if r.NumRecords <= 0 {
		return DefaultNumRecords
	}
	return r.NumRecords
}

func (r Request) includeStats() bool {
	return boolOr(r.IncludeStats, DefaultIncludeStats)
}

func (r Request) includeAbilities() bool {
	return boolOr(r.IncludeAbilities, DefaultIncludeAbilities)
}

func (r Request) includeMoves() bool {
	return boolOr(r.IncludeMoves, DefaultIncludeMoves)
}

// mentionsPokemon reports whether the free-text fields talk about Pokémon,
// used to infer the category when none is set.
func (r Request) mentionsPokemon() bool {
	return strings.Contains(strings.ToLower(r.Name), "pokemon") ||
		strings.Contains(strings.ToLower(r.Description), "pokemon")
}
