// Package sizeguard enforces the upper bound on served cache entries.
package sizeguard

import (
	"context"

	"go.seclens.dev/seclens/internal/core/domain"
	"go.seclens.dev/seclens/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultLimitBytes is the serving bound: entries above 10 MiB are refused
// rather than trimmed, forcing the caller to narrow the query.
const DefaultLimitBytes int64 = 10 * 1024 * 1024

// Guard checks cached entries against the size bound.
type Guard struct {
	cache ports.KeyValueCache
	limit int64
}

// Option configures a Guard.
type Option func(*Guard)

// WithLimit overrides the byte bound. Used by tests.
func WithLimit(limit int64) Option {
	return func(g *Guard) { g.limit = limit }
}

// New creates a Guard over the given cache.
func New(cache ports.KeyValueCache, opts ...Option) *Guard {
	g := &Guard{cache: cache, limit: DefaultLimitBytes}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check returns domain.ErrConfigureFilter when the entry under key exceeds
// the bound, nil otherwise. Absent entries pass.
func (g *Guard) Check(ctx context.Context, key domain.Key) error {
	size, err := g.cache.SizeOf(ctx, key)
	if err != nil {
		return zerr.Wrap(err, "failed to size cache entry")
	}
	if size > g.limit {
		err := zerr.With(domain.ErrConfigureFilter, "key", key.String())
		return zerr.With(err, "bytes", size)
	}
	return nil
}
