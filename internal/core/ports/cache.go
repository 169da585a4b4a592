package ports

import (
	"context"

	"go.seclens.dev/seclens/internal/core/domain"
)

// KeyValueCache is the bounded in-memory store both cache managers share.
// Values must be JSON-serializable; Set computes and retains the serialized
// size and content digest so reads never pay for re-serialization. Reset is
// global across both domains.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type KeyValueCache interface {
	// Get returns the value stored under key, or ok=false when the key is
	// absent or its TTL has lapsed.
	Get(ctx context.Context, key domain.Key) (value any, ok bool, err error)

	// Set stores value under key, overwriting unconditionally.
	Set(ctx context.Context, key domain.Key, value any) error

	// Delete removes one key.
	Delete(ctx context.Context, key domain.Key) error

	// Reset clears every key in the store, both domains included.
	Reset(ctx context.Context) error

	// SizeOf returns the serialized byte size of the entry, 0 if absent.
	SizeOf(ctx context.Context, key domain.Key) (int64, error)

	// Digest returns the content hash of the serialized entry, 0 if absent.
	Digest(ctx context.Context, key domain.Key) (uint64, error)
}
