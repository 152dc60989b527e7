package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/five82/wyrm/internal/item"
	"github.com/five82/wyrm/internal/seeker"
)

const (
	defaultRetryInterval = 2 * time.Second
	maxBackoff           = 30 * time.Second
	maxAttempts          = 4
)

// Collector runs the search on every seeker and appends accepted results to
// the store.
type Collector struct {
	Store     *item.Store
	Searchers []seeker.Searcher
	Query     item.Query
	Accuracy  int
	// Notify is called after each batch of results lands in the store.
	Notify func()
	// RetryInterval is the first backoff after a failed search; zero uses
	// the default.
	RetryInterval time.Duration
}

// Start launches one goroutine per seeker and returns immediately. The
// returned channel is closed once every seeker has finished.
func (c *Collector) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	var wg sync.WaitGroup
	for _, s := range c.Searchers {
		wg.Add(1)
		go func(s seeker.Searcher) {
			defer wg.Done()
			c.collect(ctx, s)
		}(s)
	}
	go func() {
		wg.Wait()
		slog.Info("all seekers finished", "items", c.Store.Len())
		close(done)
	}()
	return done
}

func (c *Collector) collect(ctx context.Context, s seeker.Searcher) {
	interval := c.RetryInterval
	if interval <= 0 {
		interval = defaultRetryInterval
	}
	logger := slog.With("seeker", s.Name())

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			wait := calculateBackoff(attempt-1, interval)
			logger.Info("retrying search", "attempt", attempt+1, "backoff", wait)
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
		}

		found, err := s.Search(ctx, c.Query)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warn("search failed", "attempt", attempt+1, "error", err)
			continue
		}

		accepted := c.filter(found)
		total := c.Store.Append(accepted...)
		logger.Info("search finished", "found", len(found), "accepted", len(accepted), "total", total)
		if c.Notify != nil && len(accepted) > 0 {
			c.Notify()
		}
		return
	}
	logger.Error("giving up on seeker", "attempts", maxAttempts)
}

func (c *Collector) filter(found []item.Item) []item.Item {
	if c.Query.Empty() {
		return found
	}
	out := found[:0:0]
	for _, it := range found {
		if c.Query.Match(it, c.Accuracy) {
			out = append(out, it)
			continue
		}
		slog.Debug("result rejected", "title", it.Title, "source", it.Source)
	}
	return out
}

// calculateBackoff doubles interval per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, interval time.Duration) time.Duration {
	if failures <= 0 {
		return interval
	}
	backoff := interval
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
