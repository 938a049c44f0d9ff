// Package search runs catalog searches and owns the current result page.
//
// # Flow
//
// A search is two sequential calls: GET /dogs/search returns ids, a total and
// a next cursor; POST /dogs resolves the ids to records. The resolved page is
// then offered to the Store.
//
// # Ordering
//
// Searches may overlap (the UI fires one per filter change). Each search takes
// a sequence number from the Store before its first call, and the Store only
// accepts a page or a failure from the holder of the newest number. A slower,
// older response is dropped with ErrStale instead of overwriting the newer
// page. Callers typically ignore ErrStale.
//
// # Errors
//
// Any non-success status is treated as an invalid credential: it is handed to
// the auth.ExpiryHandler and returned. There are no retries.
//
// # Snapshot
//
// Current returns a copy of the slot, with the last error and a count of
// consecutive failures, in the same shape the UI polls for.
package search
