// Package item holds the search result record and the shared collection the
// UI renders from.
//
// # Ownership
//
// A single Store is created by the composition root and handed to every
// consumer by pointer. Nobody copies the collection: the collector appends to
// it, the UI reads from it, and the detail fetch writes an item's description
// back into it. Consumers refer to items by index; indices are stable because
// the store is append-only.
//
// # Concurrency Model
//
//	Collector goroutines ──Append()──────┐
//	                                      ▼
//	Detail fetch (tea.Cmd) ─SetDetails()─► Store (one RWMutex)
//	                                      ▲
//	UI event loop ──────At()/Len()───────┘
//
// The lock is only held while copying or assigning fields, never across
// network I/O or painting. At returns a copy, so a painted frame never sees a
// half-written description.
//
// # Matching
//
// Query.Match filters producer output against what the user asked for. Year
// and format are compared exactly, the rest by Levenshtein similarity.
package item
