package fixturecache

import (
	"context"
	"time"

	"github.com/riskibarqy/futplanner/internal/domain/fixture"
	basecache "github.com/riskibarqy/futplanner/internal/platform/cache"
)

type MemoryBackend struct {
	store *basecache.Store
}

var _ Backend = (*MemoryBackend)(nil)

func NewMemoryBackend(store *basecache.Store) *MemoryBackend {
	return &MemoryBackend{store: store}
}

func (b *MemoryBackend) Get(ctx context.Context, key string) ([]fixture.Fixture, bool, error) {
	v, ok := b.store.Get(ctx, key)
	if !ok {
		return nil, false, nil
	}
	items, ok := v.([]fixture.Fixture)
	return items, ok, nil
}

func (b *MemoryBackend) Set(ctx context.Context, key string, items []fixture.Fixture, ttl time.Duration) error {
	b.store.SetWithTTL(ctx, key, cloneFixtures(items), ttl)
	return nil
}
