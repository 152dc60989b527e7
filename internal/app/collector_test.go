package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/five82/wyrm/internal/item"
	"github.com/five82/wyrm/internal/seeker"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 20; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type fakeSearcher struct {
	name     string
	items    []item.Item
	failures int
	calls    atomic.Int32
}

func (f *fakeSearcher) Name() string { return f.name }

func (f *fakeSearcher) Search(context.Context, item.Query) ([]item.Item, error) {
	n := int(f.calls.Add(1))
	if n <= f.failures {
		return nil, errors.New("seeker offline")
	}
	return f.items, nil
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("collector did not finish")
	}
}

func TestCollector_AppendsMatchingResultsAndNotifies(t *testing.T) {
	store := &item.Store{}
	var notified atomic.Int32
	c := &Collector{
		Store: store,
		Searchers: []seeker.Searcher{
			&fakeSearcher{name: "a", items: []item.Item{
				{Source: "a", Title: "Victory of Eagles", Year: 2008},
				{Source: "a", Title: "Cookbook", Year: 2008},
			}},
			&fakeSearcher{name: "b", items: []item.Item{
				{Source: "b", Title: "Victory of Eagle", Year: 2008},
			}},
		},
		Query:    item.Query{Title: "Victory of Eagles"},
		Accuracy: item.DefaultAccuracy,
		Notify:   func() { notified.Add(1) },
	}

	waitDone(t, c.Start(context.Background()))

	if store.Len() != 2 {
		t.Fatalf("store has %d items, want 2", store.Len())
	}
	for i := 0; i < store.Len(); i++ {
		it, _ := store.At(i)
		if it.Title == "Cookbook" {
			t.Fatalf("non-matching result was collected")
		}
	}
	if notified.Load() != 2 {
		t.Fatalf("Notify called %d times, want 2", notified.Load())
	}
}

func TestCollector_RetriesFailedSearch(t *testing.T) {
	store := &item.Store{}
	flaky := &fakeSearcher{name: "flaky", failures: 2, items: []item.Item{{Title: "Tongues of Serpents"}}}
	c := &Collector{
		Store:         store,
		Searchers:     []seeker.Searcher{flaky},
		RetryInterval: time.Millisecond,
	}

	waitDone(t, c.Start(context.Background()))

	if got := flaky.calls.Load(); got != 3 {
		t.Fatalf("Search called %d times, want 3", got)
	}
	if store.Len() != 1 {
		t.Fatalf("store has %d items, want 1", store.Len())
	}
}

func TestCollector_GivesUpAfterMaxAttempts(t *testing.T) {
	store := &item.Store{}
	dead := &fakeSearcher{name: "dead", failures: 100}
	var mu sync.Mutex
	notified := false
	c := &Collector{
		Store:         store,
		Searchers:     []seeker.Searcher{dead},
		RetryInterval: time.Millisecond,
		Notify: func() {
			mu.Lock()
			notified = true
			mu.Unlock()
		},
	}

	waitDone(t, c.Start(context.Background()))

	if got := dead.calls.Load(); got != maxAttempts {
		t.Fatalf("Search called %d times, want %d", got, maxAttempts)
	}
	mu.Lock()
	defer mu.Unlock()
	if notified || store.Len() != 0 {
		t.Fatalf("dead seeker produced results")
	}
}

func TestCollector_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	dead := &fakeSearcher{name: "dead", failures: 100}
	c := &Collector{
		Store:         &item.Store{},
		Searchers:     []seeker.Searcher{dead},
		RetryInterval: time.Hour,
	}

	done := c.Start(ctx)
	cancel()
	waitDone(t, done)
	if got := dead.calls.Load(); got != 1 {
		t.Fatalf("Search called %d times after cancel, want 1", got)
	}
}
