package stream

import (
	"sync"
)

// Observer receives the values of a stream, followed by at most one terminal event.
type Observer[T any] interface {
	OnNext(T)
	OnError(error)
	OnCompleted()
}

// Subscription is the handle returned by Subscribe. Dispose detaches the observer; it is
// idempotent, synchronous and never blocks on delivery.
type Subscription interface {
	Dispose()
}

// Observable is a source of values that observers subscribe to.
type Observable[T any] interface {
	Subscribe(Observer[T]) Subscription
}

// ObserverFuncs implements Observer with optional callbacks. Nil callbacks are no-ops.
type ObserverFuncs[T any] struct {
	NextFunc      func(T)
	ErrorFunc     func(error)
	CompletedFunc func()
}

var _ Observer[int] = ObserverFuncs[int]{}

// OnNext calls NextFunc if set.
func (o ObserverFuncs[T]) OnNext(v T) {
	if o.NextFunc != nil {
		o.NextFunc(v)
	}
}

// OnError calls ErrorFunc if set.
func (o ObserverFuncs[T]) OnError(err error) {
	if o.ErrorFunc != nil {
		o.ErrorFunc(err)
	}
}

// OnCompleted calls CompletedFunc if set.
func (o ObserverFuncs[T]) OnCompleted() {
	if o.CompletedFunc != nil {
		o.CompletedFunc()
	}
}

// ObservableFunc implements Observable with a function.
type ObservableFunc[T any] func(Observer[T]) Subscription

// Subscribe calls f.
func (f ObservableFunc[T]) Subscribe(o Observer[T]) Subscription { return f(o) }

// Create returns an Observable that runs subscribe for every new observer.
func Create[T any](subscribe func(Observer[T]) Subscription) Observable[T] {
	return ObservableFunc[T](subscribe)
}

// subscription runs its teardown once.
type subscription struct {
	once     sync.Once
	teardown func()
}

// NewSubscription returns a Subscription that runs teardown on the first Dispose. A nil teardown
// yields a Subscription that does nothing.
func NewSubscription(teardown func()) Subscription {
	return &subscription{teardown: teardown}
}

func (s *subscription) Dispose() {
	s.once.Do(func() {
		if s.teardown != nil {
			s.teardown()
		}
	})
}

// Composite returns a Subscription that disposes all subs in order.
func Composite(subs ...Subscription) Subscription {
	return NewSubscription(func() {
		for _, s := range subs {
			if s != nil {
				s.Dispose()
			}
		}
	})
}
