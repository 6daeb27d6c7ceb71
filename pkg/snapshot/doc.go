// Package snapshot provides the immutable collection values that notifications carry as their
// current state.
//
// Every value in this package is persistent: modifying operations never touch the receiver but
// return a new value that may share structure with the old one. This makes it safe to hand the
// same snapshot to any number of subscribers on any number of goroutines.
//
// Kinds:
//   - List: an ordered sequence with positional insert and remove (copy-on-write).
//   - SortedList: a List kept sorted by a comparer, duplicates allowed.
//   - SortedSet: unique elements ordered by a comparer (persistent B+tree).
//   - SortedMultiset: a SortedSet with per-element multiplicities.
//   - Dictionary: a key-value map (persistent hash array mapped trie).
//
// All kinds implement value equality through an element EqualFunc, see DefaultEqual.
package snapshot
