// Package source implements the mutable front-ends of observable collections.
//
// A source owns a single cell holding the latest notification of its collection. Mutators are
// synchronous and serialized by a per-source mutex: each call computes the next notification from
// the current one and, if the snapshot actually changed, stores it and broadcasts it on the
// calling goroutine before returning. Mutations that leave the snapshot value-equal are no-ops
// and are never published.
//
// Subscribers always start with a Reset of the state at subscription time, then receive every
// later notification in publication order. Mutating a source from inside one of its own
// subscriber callbacks is not supported.
package source
