// Package notification implements the change algebra of observable collections.
//
// A notification is an immutable value describing one state transition of a collection: an
// Action, the set of removed (old) and inserted (new) items, an optional position for
// index-aware kinds, and the full snapshot after the transition. Notifications are produced by
// applying primitive operations (Add, Remove, Replace, Clear, ...) to the previous notification;
// every primitive yields either an exact minimal diff or degrades to a Reset when a precise diff
// is ambiguous or expensive. Consumers must always treat a Reset as "discard and re-derive from
// Current".
//
// Kinds:
//   - List: positional, carries an index.
//   - SortedList: positional and sorted by a comparer, carries an index.
//   - SortedSet: unique sorted elements, no index.
//   - Dictionary: key-value entries, no index.
//
// Operations that would not change the snapshot return the receiver unchanged; operations with
// invalid arguments return an error and never a partial result.
package notification
