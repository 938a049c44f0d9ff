// Package logtail reads the tail of the pawmatch log file for the activity
// view.
//
// Read uses a ring buffer of maxLines, so memory stays O(maxLines) however
// large the file grows. A missing file reads as empty.
//
// Lines are expected in the shape the logging package writes:
//
//	2026-10-08 21:01:05 INF search done seq=3 total=8
//
// ParseLine splits the timestamp, the tint level token (DBG, INF, WRN, ERR)
// and the rest of the line. Filter drops entries below a level; lines that do
// not parse are kept with the entry they follow.
package logtail
