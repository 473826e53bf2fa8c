package pokedata

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/edgedx/pokedata/pin/memory"
	"github.com/edgedx/pokedata/pokeapi"
)

// fakeFetcher serves canned resources; absent keys report ok=false, which
// is exactly how the real adapter reports a failed fetch.
type fakeFetcher struct {
	pokemon   map[string]*pokeapi.Pokemon
	moves     map[int]*pokeapi.Move
	abilities map[int]*pokeapi.Ability
	types     map[string]*pokeapi.Type
	chains    map[int]*pokeapi.EvolutionChain
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		pokemon:   make(map[string]*pokeapi.Pokemon),
		moves:     make(map[int]*pokeapi.Move),
		abilities: make(map[int]*pokeapi.Ability),
		types:     make(map[string]*pokeapi.Type),
		chains:    make(map[int]*pokeapi.EvolutionChain),
	}
}

func (f *fakeFetcher) Pokemon(_ context.Context, target string) (*pokeapi.Pokemon, bool) {
	p, ok := f.pokemon[strings.ToLower(target)]
	return p, ok
}

func (f *fakeFetcher) Move(_ context.Context, id int) (*pokeapi.Move, bool) {
	m, ok := f.moves[id]
	return m, ok
}

func (f *fakeFetcher) Ability(_ context.Context, id int) (*pokeapi.Ability, bool) {
	a, ok := f.abilities[id]
	return a, ok
}

func (f *fakeFetcher) Type(_ context.Context, name string) (*pokeapi.Type, bool) {
	ty, ok := f.types[strings.ToLower(name)]
	return ty, ok
}

func (f *fakeFetcher) EvolutionChain(_ context.Context, id int) (*pokeapi.EvolutionChain, bool) {
	ch, ok := f.chains[id]
	return ch, ok
}

// addPokemon registers a pokemon under both its name and its decimal ID.
func (f *fakeFetcher) addPokemon(id int, name string, types ...string) *pokeapi.Pokemon {
	p := &pokeapi.Pokemon{
		ID:     id,
		Name:   name,
		Height: 7,
		Weight: 69,
		Stats: []pokeapi.PokemonStat{
			{BaseStat: 45, Stat: pokeapi.NamedResource{Name: "hp"}},
			{BaseStat: 49, Stat: pokeapi.NamedResource{Name: "attack"}},
		},
		Abilities: []pokeapi.PokemonAbility{
			{Ability: pokeapi.NamedResource{Name: "overgrow"}, Slot: 1},
			{Ability: pokeapi.NamedResource{Name: "chlorophyll"}, IsHidden: true, Slot: 3},
		},
	}
	for i, ty := range types {
		p.Types = append(p.Types, pokeapi.PokemonType{
			Slot: i + 1,
			Type: pokeapi.NamedResource{Name: ty},
		})
	}
	f.pokemon[name] = p
	f.pokemon[strconv.Itoa(id)] = p
	return p
}

func newTestTool(t *testing.T, fetch Fetcher, cache *PinCache) *Tool {
	t.Helper()
	tool, err := New(Options{Fetcher: fetch, Cache: cache})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tool
}

func TestNewRequiresFetcher(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatalf("expected error without fetcher")
	}
}

func TestValidateRecordCountBoundary(t *testing.T) {
	tool := newTestTool(t, newFakeFetcher(), nil)

	if !tool.Validate(Request{DataType: CategoryPokemon, NumRecords: MaxRecords}) {
		t.Fatalf("count == max should be accepted")
	}
	if tool.Validate(Request{DataType: CategoryPokemon, NumRecords: MaxRecords + 1}) {
		t.Fatalf("count above max should be rejected")
	}
}

func TestValidateCategoryResolution(t *testing.T) {
	tool := newTestTool(t, newFakeFetcher(), nil)

	if tool.Validate(Request{}) {
		t.Fatalf("empty request with no Pokémon mention should be rejected")
	}
	if !tool.Validate(Request{Description: "A Pokemon starter dataset"}) {
		t.Fatalf("Pokémon mention in description should infer the category")
	}
	if !tool.Validate(Request{Name: "POKEMON things"}) {
		t.Fatalf("mention matching is case-insensitive")
	}
	if tool.Validate(Request{DataType: "berries"}) {
		t.Fatalf("unknown category should be rejected")
	}
	if !tool.Validate(Request{Type: CategoryMoves}) {
		t.Fatalf("the type alias should resolve the category")
	}
}

func TestGeneratePokemonByGeneration(t *testing.T) {
	fetch := newFakeFetcher()
	for id := 1; id <= 5; id++ {
		fetch.addPokemon(id, "mon-"+strconv.Itoa(id), "grass", "poison")
	}
	tool := newTestTool(t, fetch, nil)

	res, err := tool.Generate(context.Background(), Request{
		DataType:   CategoryPokemon,
		NumRecords: 3,
		Generation: 1,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Count != 3 || res.Cached {
		t.Fatalf("envelope = %+v, want 3 fresh records", res)
	}

	recs, ok := res.Data.([]PokemonRecord)
	if !ok {
		t.Fatalf("Data has type %T", res.Data)
	}
	for i, rec := range recs {
		if rec.ID != i+1 {
			t.Fatalf("record %d has id %d, want %d", i, rec.ID, i+1)
		}
		if len(rec.Types) == 0 {
			t.Fatalf("record %d missing types", i)
		}
		if rec.Stats == nil {
			t.Fatalf("record %d missing stats (default include_stats=true)", i)
		}
		if rec.Abilities == nil {
			t.Fatalf("record %d missing abilities (default include_abilities=true)", i)
		}
		if rec.Moves != nil {
			t.Fatalf("record %d carries moves (default include_moves=false)", i)
		}
	}
}

func TestGenerateGenerationFallback(t *testing.T) {
	fetch := newFakeFetcher()
	fetch.addPokemon(1, "bulbasaur", "grass")
	fetch.addPokemon(2, "ivysaur", "grass")
	// Plant a decoy at gen 2's range start; the fallback must not use it.
	fetch.addPokemon(152, "chikorita", "grass")
	tool := newTestTool(t, fetch, nil)

	res, err := tool.Generate(context.Background(), Request{
		DataType:   CategoryPokemon,
		NumRecords: 2,
		Generation: 99,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	recs := res.Data.([]PokemonRecord)
	if len(recs) != 2 || recs[0].ID != 1 || recs[1].ID != 2 {
		t.Fatalf("unknown generation should fall back to generation 1's range, got %+v", recs)
	}
}

func TestGeneratePartialFailureTolerated(t *testing.T) {
	fetch := newFakeFetcher()
	for _, name := range []string{"bulbasaur", "charmander", "squirtle", "pikachu"} {
		fetch.addPokemon(len(fetch.pokemon)/2+1, name, "normal")
	}
	tool := newTestTool(t, fetch, nil)

	res, err := tool.Generate(context.Background(), Request{
		DataType:     CategoryPokemon,
		NumRecords:   5,
		PokemonNames: []string{"bulbasaur", "charmander", "missingno", "squirtle", "pikachu"},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Count != 4 {
		t.Fatalf("count = %d, want 4 (one target unfetchable)", res.Count)
	}
}

func TestGenerateTypeFilterCaseInsensitive(t *testing.T) {
	fetch := newFakeFetcher()
	fetch.addPokemon(1, "charmander", "fire")
	fetch.addPokemon(2, "squirtle", "water")
	fetch.addPokemon(3, "vulpix", "fire")
	tool := newTestTool(t, fetch, nil)

	res, err := tool.Generate(context.Background(), Request{
		DataType:   CategoryPokemon,
		NumRecords: 3,
		TypeFilter: "FIRE",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	recs := res.Data.([]PokemonRecord)
	if len(recs) != 2 {
		t.Fatalf("filter kept %d records, want 2", len(recs))
	}
	for _, rec := range recs {
		if !containsFold(rec.Types, "fire") {
			t.Fatalf("record %q slipped through the type filter", rec.Name)
		}
	}
}

func TestGenerateIncludeMovesCap(t *testing.T) {
	fetch := newFakeFetcher()
	p := fetch.addPokemon(1, "mew", "psychic")
	for i := 0; i < 12; i++ {
		pm := pokeapi.PokemonMove{Move: pokeapi.NamedResource{Name: "move-" + strconv.Itoa(i)}}
		if i != 0 {
			pm.VersionGroupDetails = []pokeapi.VersionGroupDetail{
				{MoveLearnMethod: pokeapi.NamedResource{Name: "level-up"}},
			}
		}
		p.Moves = append(p.Moves, pm)
	}
	tool := newTestTool(t, fetch, nil)

	res, err := tool.Generate(context.Background(), Request{
		DataType:     CategoryPokemon,
		PokemonNames: []string{"mew"},
		IncludeMoves: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	recs := res.Data.([]PokemonRecord)
	if len(recs[0].Moves) != 10 {
		t.Fatalf("moves list has %d entries, want the first 10", len(recs[0].Moves))
	}
	if recs[0].Moves[0].LearnMethod != "unknown" {
		t.Fatalf("move without version details should learn by %q, got %q",
			"unknown", recs[0].Moves[0].LearnMethod)
	}
	if recs[0].Moves[1].LearnMethod != "level-up" {
		t.Fatalf("learn method not taken from first version detail")
	}
}

func TestGenerateMovesSequentialBound(t *testing.T) {
	fetch := newFakeFetcher()
	power := 40
	for id := 1; id <= 120; id++ {
		fetch.moves[id] = &pokeapi.Move{
			ID:    id,
			Name:  "move-" + strconv.Itoa(id),
			Power: &power,
			Type:  &pokeapi.NamedResource{Name: "normal"},
		}
	}
	tool := newTestTool(t, fetch, nil)

	res, err := tool.Generate(context.Background(), Request{
		DataType:   CategoryMoves,
		NumRecords: 500,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Count != 100 {
		t.Fatalf("count = %d, want the 100-move cap", res.Count)
	}
	recs := res.Data.([]MoveRecord)
	if recs[0].Type == nil || *recs[0].Type != "normal" {
		t.Fatalf("move type not flattened: %+v", recs[0])
	}
	if recs[0].DamageClass != nil {
		t.Fatalf("absent damage class should stay nil")
	}
}

func TestGenerateAbilities(t *testing.T) {
	fetch := newFakeFetcher()
	fetch.abilities[1] = &pokeapi.Ability{
		ID: 1, Name: "stench", IsMainSeries: true,
		Generation:    &pokeapi.NamedResource{Name: "generation-iii"},
		EffectEntries: []pokeapi.EffectEntry{{ShortEffect: "May cause flinching."}},
	}
	fetch.abilities[2] = &pokeapi.Ability{ID: 2, Name: "drizzle", IsMainSeries: true}
	tool := newTestTool(t, fetch, nil)

	res, err := tool.Generate(context.Background(), Request{
		DataType:   CategoryAbilities,
		NumRecords: 2,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	recs := res.Data.([]AbilityRecord)
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].Effect == nil || *recs[0].Effect != "May cause flinching." {
		t.Fatalf("first short-effect entry not extracted: %+v", recs[0])
	}
	if recs[1].Generation != nil || recs[1].Effect != nil {
		t.Fatalf("absent optional fields should stay nil: %+v", recs[1])
	}
}

func TestGenerateTypesFixedOrder(t *testing.T) {
	fetch := newFakeFetcher()
	for i, name := range typeNames {
		fetch.types[name] = &pokeapi.Type{
			ID:   i + 1,
			Name: name,
			DamageRelations: pokeapi.DamageRelations{
				DoubleDamageTo: []pokeapi.NamedResource{{Name: "ice"}},
			},
		}
	}
	tool := newTestTool(t, fetch, nil)

	res, err := tool.Generate(context.Background(), Request{DataType: CategoryTypes})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Count != 18 {
		t.Fatalf("count = %d, want 18", res.Count)
	}
	recs := res.Data.([]TypeRecord)
	for i, rec := range recs {
		if rec.Name != typeNames[i] {
			t.Fatalf("record %d is %q, want fixed order %q", i, rec.Name, typeNames[i])
		}
	}
	if recs[0].Name != "normal" {
		t.Fatalf("first type record is %q, want normal", recs[0].Name)
	}
	if len(recs[0].DamageRelations.DoubleDamageTo) != 1 {
		t.Fatalf("damage relations not flattened: %+v", recs[0].DamageRelations)
	}
}

func TestGenerateEvolutionChain(t *testing.T) {
	fetch := newFakeFetcher()
	min16, min32 := 16, 32
	fetch.chains[1] = &pokeapi.EvolutionChain{
		ID: 1,
		Chain: pokeapi.ChainLink{
			Species: pokeapi.NamedResource{Name: "bulbasaur"},
			EvolvesTo: []pokeapi.ChainLink{{
				Species: pokeapi.NamedResource{Name: "ivysaur"},
				EvolutionDetails: []pokeapi.EvolutionDetail{
					{MinLevel: &min16, Trigger: &pokeapi.NamedResource{Name: "level-up"}},
				},
				EvolvesTo: []pokeapi.ChainLink{{
					Species: pokeapi.NamedResource{Name: "venusaur"},
					EvolutionDetails: []pokeapi.EvolutionDetail{
						{MinLevel: &min32, Trigger: &pokeapi.NamedResource{Name: "level-up"}},
					},
				}},
			}},
		},
	}
	tool := newTestTool(t, fetch, nil)

	res, err := tool.Generate(context.Background(), Request{
		DataType:   CategoryEvolution,
		NumRecords: 1,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	recs := res.Data.([]EvolutionRecord)
	chain := recs[0].Chain
	if chain.Species != "bulbasaur" || chain.MinLevel != nil {
		t.Fatalf("root node wrong: %+v", chain)
	}
	if len(chain.EvolvesTo) != 1 {
		t.Fatalf("root should have one child")
	}
	child := chain.EvolvesTo[0]
	if child.Species != "ivysaur" || child.MinLevel == nil || *child.MinLevel != 16 {
		t.Fatalf("child node wrong: %+v", child)
	}
	if child.Trigger == nil || *child.Trigger != "level-up" {
		t.Fatalf("child trigger wrong: %+v", child)
	}
	grand := child.EvolvesTo[0]
	if grand.Species != "venusaur" || *grand.MinLevel != 32 {
		t.Fatalf("grandchild node wrong: %+v", grand)
	}
}

func TestChainDepthCap(t *testing.T) {
	// Build a 12-link self-similar chain; the parser must stop at the cap.
	link := pokeapi.ChainLink{Species: pokeapi.NamedResource{Name: "leaf"}}
	for i := 0; i < 12; i++ {
		link = pokeapi.ChainLink{
			Species:   pokeapi.NamedResource{Name: "node-" + strconv.Itoa(i)},
			EvolvesTo: []pokeapi.ChainLink{link},
		}
	}

	depth := 0
	for n := chainNode(&link, 0); len(n.EvolvesTo) > 0; n = n.EvolvesTo[0] {
		depth++
	}
	if depth != maxChainDepth {
		t.Fatalf("parsed depth = %d, want cap %d", depth, maxChainDepth)
	}
}

func TestGenerateUnsupportedCategory(t *testing.T) {
	tool := newTestTool(t, newFakeFetcher(), nil)

	req := Request{DataType: CategorySpecies}
	if !tool.Validate(req) {
		t.Fatalf("species is a declared capability and must validate")
	}

	_, err := tool.Generate(context.Background(), req)
	var uc *UnsupportedCategoryError
	if !errors.As(err, &uc) || uc.Category != CategorySpecies {
		t.Fatalf("err = %v, want UnsupportedCategoryError for species", err)
	}
}

func TestGenerateNoRecordsIsError(t *testing.T) {
	tool := newTestTool(t, newFakeFetcher(), nil)

	_, err := tool.Generate(context.Background(), Request{DataType: CategoryPokemon})
	if !errors.Is(err, ErrNoRecords) {
		t.Fatalf("err = %v, want ErrNoRecords", err)
	}
}

func TestGenerateServesFromCache(t *testing.T) {
	fetch := newFakeFetcher()
	fetch.addPokemon(1, "bulbasaur", "grass")
	cache := newTestCache(t, memory.New(), time.Minute)
	tool := newTestTool(t, fetch, cache)

	req := Request{DataType: CategoryPokemon, NumRecords: 1}

	first, err := tool.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	if first.Cached || !first.CacheStored {
		t.Fatalf("first result should be fresh and stored: %+v", first)
	}

	second, err := tool.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if !second.Cached {
		t.Fatalf("second result should come from cache: %+v", second)
	}
	if second.Count != first.Count {
		t.Fatalf("cached count %d != fresh count %d", second.Count, first.Count)
	}
	if second.Source != sourceCached {
		t.Fatalf("cached source = %q", second.Source)
	}
}

func TestGenerateMalformedCachePayloadDegradesToFresh(t *testing.T) {
	fetch := newFakeFetcher()
	fetch.addPokemon(1, "bulbasaur", "grass")
	pinner := memory.New()
	cache := newTestCache(t, pinner, time.Minute)
	tool := newTestTool(t, fetch, cache)

	req := Request{DataType: CategoryPokemon, NumRecords: 1}
	if _, err := tool.Generate(context.Background(), req); err != nil {
		t.Fatalf("seed Generate: %v", err)
	}

	// Valid JSON, but the envelope carries no data field.
	for _, cid := range pinner.CIDs() {
		pinner.SetRaw(cid, []byte(`{"timestamp":1,"cache_key":"x"}`))
	}

	res, err := tool.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate after tamper: %v", err)
	}
	if res.Cached {
		t.Fatalf("malformed cached payload must degrade to fresh generation")
	}
	if res.Count != 1 {
		t.Fatalf("fresh regeneration produced %d records", res.Count)
	}
}
