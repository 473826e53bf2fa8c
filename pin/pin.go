// Package pin defines the content-pinning capability consumed by the
// cache layer. The real implementation lives in pin/pinata; pin/memory is
// an in-process fake for tests.
package pin

import "context"

// Pinner pins JSON-serializable content and retrieves it later by content
// identifier (CID).
//
// Pin must be durable from the caller's perspective: a returned CID is
// expected to resolve via Retrieve until the remote service unpins it.
// Retrieve returns the exact content bytes previously pinned.
type Pinner interface {
	// Pin uploads content under a human-readable name with metadata
	// key/values and returns its CID.
	Pin(ctx context.Context, content any, name string, keyvalues map[string]string) (cid string, err error)

	// Retrieve fetches pinned content by CID.
	Retrieve(ctx context.Context, cid string) ([]byte, error)
}
