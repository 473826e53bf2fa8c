package pokedata

import (
	"context"
	"errors"
	"fmt"
)

// MaxRecords is the hard cap on a single request's record count.
const MaxRecords = 1000

const (
	sourceFresh  = "PokéAPI"
	sourceCached = "IPFS cache via Pinata"
)

// Capabilities describes what the tool can produce, for tool-calling
// hosts that negotiate before dispatching.
type Capabilities struct {
	DataTypes    []string            `json:"data_types"`
	Parameters   map[string]ParamDoc `json:"parameters"`
	OutputFormat string              `json:"output_format"`
	MaxRecords   int                 `json:"max_records"`
}

type ParamDoc struct {
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Default     any    `json:"default,omitempty"`
	Description string `json:"description"`
}

// capabilityCategories is broader than the dispatchable set on purpose:
// the extra categories are accepted by Validate and then surface as an
// UnsupportedCategoryError from Generate, which is the contract hard-stop
// for "validated but not implemented".
var capabilityCategories = []string{
	CategoryPokemon, CategorySpecies, CategoryMoves, CategoryAbilities,
	CategoryTypes, CategoryEvolution, CategoryStats, CategoryLocations,
	CategoryItems,
}

// Tool validates requests and dispatches them to the per-category
// normalizers, with the pinning cache consulted first.
type Tool struct {
	fetch Fetcher
	cache *PinCache
	log   Logger
}

// Options configure a Tool. Only Fetcher is required.
type Options struct {
	Fetcher Fetcher

	// Cache is optional; nil means every request generates fresh data.
	Cache *PinCache

	// Logger; nil disables logging.
	Logger Logger
}

func New(opts Options) (*Tool, error) {
	if opts.Fetcher == nil {
		return nil, errors.New("pokedata: fetcher is required")
	}
	return &Tool{
		fetch: opts.Fetcher,
		cache: opts.Cache,
		log:   coalesce[Logger](opts.Logger, NopLogger{}),
	}, nil
}

func (t *Tool) Capabilities() Capabilities {
	return Capabilities{
		DataTypes: append([]string(nil), capabilityCategories...),
		Parameters: map[string]ParamDoc{
			"data_type":         {Type: "string", Required: true, Description: "Category of Pokémon data to generate"},
			"num_records":       {Type: "integer", Default: DefaultNumRecords, Description: "Number of records to generate"},
			"pokemon_names":     {Type: "array", Description: "Specific Pokémon names to include"},
			"pokemon_ids":       {Type: "array", Description: "Specific Pokémon IDs to include"},
			"generation":        {Type: "integer", Description: "Generation to filter by (1-9)"},
			"type_filter":       {Type: "string", Description: "Filter by Pokémon type (e.g. 'fire')"},
			"include_stats":     {Type: "boolean", Default: DefaultIncludeStats, Description: "Include base stats"},
			"include_abilities": {Type: "boolean", Default: DefaultIncludeAbilities, Description: "Include abilities"},
			"include_moves":     {Type: "boolean", Default: DefaultIncludeMoves, Description: "Include move data (can be large)"},
		},
		OutputFormat: "json",
		MaxRecords:   MaxRecords,
	}
}

// Validate reports whether the tool can serve the request. It never
// returns an error: an incompatible request is simply declined.
func (t *Tool) Validate(req Request) bool {
	cat := req.Category()
	if cat == "" {
		if !req.mentionsPokemon() {
			return false
		}
		cat = CategoryPokemon
	}

	known := false
	for _, c := range capabilityCategories {
		if c == cat {
			known = true
			break
		}
	}
	if !known {
		t.log.Warn("unsupported data category", Fields{"category": cat})
		return false
	}

	if req.NumRecords > MaxRecords {
		t.log.Warn("requested record count exceeds maximum",
			Fields{"num_records": req.NumRecords, "max": MaxRecords})
		return false
	}
	return true
}

// Generate produces the dataset for a request. The cache is consulted
// first; a hit short-circuits with Cached set. On a miss the matching
// normalizer runs, the result is stored best-effort, and CacheStored
// marks a successful store.
//
// Hard failures: an unsupported category (UnsupportedCategoryError) and a
// fully empty result (ErrNoRecords). Everything else - per-record fetch
// failures, cache trouble of any kind - degrades silently.
func (t *Tool) Generate(ctx context.Context, req Request) (*Result, error) {
	if t.cache != nil {
		if res, ok := t.cache.Lookup(ctx, req); ok {
			if res != nil && res.Data != nil {
				res.Cached = true
				res.Source = sourceCached
				return res, nil
			}
			// A payload that came back in an unexpected shape degrades to
			// fresh generation, never an error.
			t.log.Warn("cached result has unexpected shape, generating fresh", nil)
		}
	}

	cat := coalesce(req.Category(), CategoryPokemon)
	t.log.Info("generating fresh dataset",
		Fields{"category": cat, "num_records": req.recordCount()})

	res := &Result{
		DataType: cat,
		Source:   sourceFresh,
	}
	switch cat {
	case CategoryPokemon:
		recs := t.pokemonRecords(ctx, req)
		res.Data, res.Count = recs, len(recs)
	case CategoryMoves:
		recs := t.moveRecords(ctx, req)
		res.Data, res.Count = recs, len(recs)
	case CategoryAbilities:
		recs := t.abilityRecords(ctx, req)
		res.Data, res.Count = recs, len(recs)
	case CategoryTypes:
		recs := t.typeRecords(ctx)
		res.Data, res.Count = recs, len(recs)
	case CategoryEvolution:
		recs := t.evolutionRecords(ctx, req)
		res.Data, res.Count = recs, len(recs)
	default:
		return nil, &UnsupportedCategoryError{Category: cat}
	}

	if res.Count == 0 {
		return nil, fmt.Errorf("category %q: %w", cat, ErrNoRecords)
	}

	if t.cache != nil && t.cache.Store(ctx, req, res) {
		// Set after the store so the pinned payload itself never carries
		// the flag.
		res.CacheStored = true
	}
	return res, nil
}
