package sizeguard_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.seclens.dev/seclens/internal/adapters/memcache"
	"go.seclens.dev/seclens/internal/core/domain"
	"go.seclens.dev/seclens/internal/engine/sizeguard"
)

func TestCheck_AbsentEntryPasses(t *testing.T) {
	g := sizeguard.New(memcache.New())
	assert.NoError(t, g.Check(t.Context(), domain.ScanKey("missing")))
}

func TestCheck_SmallEntryPasses(t *testing.T) {
	cache := memcache.New()
	require.NoError(t, cache.Set(t.Context(), domain.ScanKey("p1"), &domain.Node{Label: "small"}))

	g := sizeguard.New(cache)
	assert.NoError(t, g.Check(t.Context(), domain.ScanKey("p1")))
}

func TestCheck_OversizedEntryRefused(t *testing.T) {
	cache := memcache.New()
	big := &domain.Node{Label: strings.Repeat("x", 4096)}
	require.NoError(t, cache.Set(t.Context(), domain.ScanKey("p1"), big))

	g := sizeguard.New(cache, sizeguard.WithLimit(1024))
	err := g.Check(t.Context(), domain.ScanKey("p1"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigureFilter))
}

func TestDefaultLimitIsTenMiB(t *testing.T) {
	assert.Equal(t, int64(10*1024*1024), sizeguard.DefaultLimitBytes)
}
