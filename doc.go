// Package pokedata generates normalized Pokémon datasets from the public
// PokéAPI and caches generated results behind a content-addressed pinning
// service (Pinata/IPFS).
//
// Components:
//   - Tool: validates a Request and dispatches it to a per-category
//     normalizer (pokemon, moves, abilities, types, evolution).
//   - Fetcher: read-only access to the remote data source. The real
//     implementation lives in package pokeapi and memoizes responses
//     through a bounded memostore.Store.
//   - PinCache: fingerprint -> {CID, storedAt} directory with a lazy TTL.
//     The pin/retrieve capability is a pin.Pinner (HTTP Pinata client, or
//     an in-memory fake for tests). Without credentials the cache is
//     disabled and every lookup misses.
//
// Cache flow:
//
//	fp := Fingerprint(req)            // digest of cache-relevant fields
//	res, ok := cache.Lookup(ctx, req) // directory -> gateway fetch, miss on expiry
//	... generate fresh, then best-effort:
//	cache.Store(ctx, req, res)        // pin JSON envelope, record CID
//
// Cache misses and store failures are never errors; the only hard failures
// a caller sees are an unsupported category and a fully empty result.
package pokedata
