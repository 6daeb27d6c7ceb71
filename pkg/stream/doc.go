// Package stream is the minimal push-subscription substrate the collection operators are built
// on: observers, observables, disposable subscriptions, a broadcasting Subject that can replay
// its latest value, a ref-counted Share, a handful of combinators (Select, Where, Take) and
// helpers to await the first value of a stream.
//
// Delivery is synchronous: a value pushed into a Subject reaches every observer on the calling
// goroutine before OnNext returns. A Subject serializes its deliveries, so a single observer never
// sees concurrent callbacks from one Subject.
package stream
