// Package operator implements the incremental transformation operators of observable
// collections: Where, Select, Sort, SortSet and Concat, plus keyed observation of dictionaries.
//
// Every operator maintains a private downstream source per subscription epoch. The epoch starts
// when the first observer subscribes and ends when the last one leaves; all observers of an
// epoch share one upstream subscription and one private source, and a new epoch always starts
// from scratch. Each upstream notification is translated into the smallest set of mutations of
// the private source, which publishes the resulting diffs. Upstream Resets, and only those,
// force a full re-derivation.
package operator
