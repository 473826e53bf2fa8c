// Package memostore defines the bounded byte store behind the PokéAPI
// response memo.
//
// Implementations must be byte-for-byte transparent: Get returns exactly
// the []byte previously passed to Set for the same key. All implementations
// are bounded in some dimension (entry count, memory, or cost) so that a
// long-lived process cannot grow the memo without limit.
package memostore

import "context"

// Store is a minimal bounded byte store. Must be safe for concurrent use.
type Store interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value. Returns ok=false when the store declined the write
	// under pressure; the caller treats that as a harmless non-memo.
	Set(ctx context.Context, key string, value []byte) (ok bool, err error)

	// Del removes a key (best-effort).
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
