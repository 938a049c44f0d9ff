// Package ui is the pawmatch terminal interface, built on Bubble Tea.
//
// Model is a value type. Collaborators it shares across copies (the favorites
// set, the breed suggester and the message relay) are pointers, and commands
// capture what they need before running off the update loop.
//
// # Views
//
//   - Login: name and email form. Shown at start and whenever the catalog
//     rejects the session cookie.
//   - Search: filter panel beside a page of results. Filters change through
//     the filter package, so a rejected value leaves the previous one in place
//     and its reason shows in the header.
//   - Favorites: dogs marked from any page, kept for the whole session.
//   - Match: the dog the catalog picked from the favorites.
//   - Activity: a filtered tail of the log file.
//
// # Asynchronous work
//
// Network calls run as tea.Cmd functions bounded by RequestTimeout. Breed
// suggestions are debounced on a clock from k8s.io/utils so tests can step
// time; results reach the program through the relay set by SetSender. Search
// results superseded by a newer request arrive as search.ErrStale and are
// dropped.
package ui
