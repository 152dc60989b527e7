package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/five82/wyrm/internal/cache"
	"github.com/five82/wyrm/internal/item"
	"github.com/five82/wyrm/internal/seeker"
	"github.com/five82/wyrm/internal/ui"
)

var _ ui.Fetcher = (*detailFetcher)(nil)

// detailFetcher serves descriptions from the cache, falling back to the
// seeker the item came from.
type detailFetcher struct {
	cache   *cache.Cache
	seekers map[string]seeker.DetailFetcher
}

func (f *detailFetcher) FetchDetails(ctx context.Context, it item.Item) (string, error) {
	key := it.Key()
	desc, ok, err := f.cache.Lookup(ctx, key)
	switch {
	case err != nil:
		slog.Warn("cache lookup failed", "key", key, "error", err)
	case ok:
		slog.Debug("description served from cache", "key", key)
		return desc, nil
	}

	src, ok := f.seekers[it.Source]
	if !ok {
		return "", fmt.Errorf("no seeker named %q", it.Source)
	}
	desc, err = src.FetchDetails(ctx, it.ID)
	if err != nil {
		return "", fmt.Errorf("fetch details from %s: %w", it.Source, err)
	}
	if err := f.cache.Put(ctx, key, desc); err != nil {
		slog.Warn("cache store failed", "key", key, "error", err)
	}
	return desc, nil
}
