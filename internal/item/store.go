package item

import (
	"strings"
	"sync"
)

// Store is the single, append-only item collection shared by the collector,
// the enrichment fetches and the UI. Items are addressed by index; indices
// stay valid for the lifetime of the store because items are never removed
// or reordered.
//
// One mutex guards both the slice and every item's description fields.
type Store struct {
	mu    sync.RWMutex
	items []Item
}

// Append adds items to the end of the collection and returns the new length.
func (s *Store) Append(items ...Item) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, items...)
	return len(s.items)
}

// Len returns the number of items collected so far.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// At returns a copy of the item at idx.
func (s *Store) At(idx int) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx < 0 || idx >= len(s.items) {
		return Item{}, false
	}
	return s.items[idx], true
}

// BeginFetch marks the item as being fetched. It reports false when a fetch is
// already in flight or the description is already populated, in which case the
// caller must not start another one. Failed items may be retried.
func (s *Store) BeginFetch(idx int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx < 0 || idx >= len(s.items) {
		return false
	}
	it := &s.items[idx]
	switch it.status {
	case StatusFetching, StatusFetched:
		return false
	}
	it.status = StatusFetching
	it.fetchErr = ""
	return true
}

// SetDetails records the outcome of a description fetch.
func (s *Store) SetDetails(idx int, description string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx < 0 || idx >= len(s.items) {
		return
	}
	it := &s.items[idx]
	if err != nil {
		it.status = StatusFailed
		it.fetchErr = err.Error()
		return
	}
	it.description = strings.TrimSpace(description)
	it.status = StatusFetched
	it.fetchErr = ""
}

// Take returns copies of the items at the given indices, in the order given.
// Out-of-range indices are skipped.
func (s *Store) Take(indices []int) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(indices) == 0 {
		return nil
	}
	out := make([]Item, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(s.items) {
			continue
		}
		out = append(out, cloneItem(s.items[idx]))
	}
	return out
}

func cloneItem(it Item) Item {
	it.Authors = append([]string(nil), it.Authors...)
	it.ISBNs = append([]string(nil), it.ISBNs...)
	it.Mirrors = append([]string(nil), it.Mirrors...)
	return it
}
