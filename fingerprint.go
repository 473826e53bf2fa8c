package pokedata

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// Fingerprint derives a stable 16-hex-char identifier from the
// cache-relevant subset of a request. It is a pure function of exactly
// nine fields; free-text metadata never changes it, and the order of the
// name/ID lists does not matter.
//
// The digest is sha256 over a compact JSON object with sorted keys
// (encoding/json sorts map keys), truncated to its first 8 bytes.
func Fingerprint(req Request) string {
	names := append([]string(nil), req.PokemonNames...)
	if names == nil {
		names = []string{}
	}
	sort.Strings(names)

	ids := append([]int(nil), req.PokemonIDs...)
	if ids == nil {
		ids = []int{}
	}
	sort.Ints(ids)

	fields := map[string]any{
		"data_type":         coalesce(req.Category(), CategoryPokemon),
		"num_records":       req.recordCount(),
		"pokemon_names":     names,
		"pokemon_ids":       ids,
		"include_stats":     req.includeStats(),
		"include_abilities": req.includeAbilities(),
		"include_moves":     req.includeMoves(),
	}
	// Unset optional filters are dropped, not encoded as null.
	if req.Generation != 0 {
		fields["generation"] = req.Generation
	}
	if req.TypeFilter != "" {
		fields["type_filter"] = req.TypeFilter
	}

	b, err := json.Marshal(fields)
	if err != nil {
		// Fields are plain ints/strings/bools; Marshal cannot fail on them.
		panic("pokedata: fingerprint marshal: " + err.Error())
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:8])
}
