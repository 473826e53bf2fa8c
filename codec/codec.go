// Package codec provides pluggable (de)serialization for dataset export
// and for payloads coming back from the pinning gateways.
package codec

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
