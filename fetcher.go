package pokedata

import (
	"context"

	"github.com/edgedx/pokedata/pokeapi"
)

// Fetcher is the read capability the normalizers consume. Every method
// reports absence with ok=false instead of an error: a failed fetch only
// ever costs the one record it was for.
//
// *pokeapi.Client is the production implementation.
type Fetcher interface {
	Pokemon(ctx context.Context, target string) (*pokeapi.Pokemon, bool)
	Move(ctx context.Context, id int) (*pokeapi.Move, bool)
	Ability(ctx context.Context, id int) (*pokeapi.Ability, bool)
	Type(ctx context.Context, name string) (*pokeapi.Type, bool)
	EvolutionChain(ctx context.Context, id int) (*pokeapi.EvolutionChain, bool)
}

var _ Fetcher = (*pokeapi.Client)(nil)
