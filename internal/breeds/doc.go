// Package breeds provides local fuzzy matching over the breed vocabulary.
//
// The vocabulary is fetched once (Vocabulary) and indexed (New). Query ranks
// candidates by a normalized similarity and returns at most MaxResults names,
// or the NoMatches sentinel so the picker always has a row to show. Typing is
// fed through a Suggester, which debounces submissions on an injectable clock
// so only the last keystroke of a burst is matched.
package breeds
