// Package seeker provides an HTTP client for external seeker services.
//
// A seeker answers two read-only endpoints:
//
//   - GET /api/search: items matching the query parameters title, author
//     (repeatable), series, publisher, year and format
//   - GET /api/details?id=: the long-form description of one item
//
// Results are converted into item.Item values stamped with the seeker's name,
// so the detail fetch can later be routed back to the seeker that produced
// the item.
package seeker
