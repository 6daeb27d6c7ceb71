package stream

import (
	"sync"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
)

var _ Observer[int] = &Subject[int]{}
var _ Observable[int] = &Subject[int]{}

// Subject is both an Observer and an Observable: every value it receives is broadcast to the
// current observers. A replaying Subject also remembers the latest value and sends it to each new
// observer before any later value.
//
// Deliveries and registrations are serialized by one mutex, so a new observer never misses or
// duplicates a value relative to the replayed one. Observers are kept in a concurrent map so that
// an observer may dispose its own subscription from inside a callback. Subscribing to, or pushing
// into, a Subject from inside one of its own callbacks deadlocks.
type Subject[T any] struct {
	mu        sync.Mutex
	observers *xsync.MapOf[uint64, *subscriber[T]]
	nextID    uint64
	replay    bool
	latest    T
	hasLatest bool
	done      bool
	err       error
}

type subscriber[T any] struct {
	Observer[T]
	disposed atomic.Bool
}

// NewSubject returns a Subject that only forwards values pushed after subscription.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{observers: xsync.NewMapOf[uint64, *subscriber[T]]()}
}

// NewBehaviorSubject returns a Subject that replays its latest value to new observers.
func NewBehaviorSubject[T any]() *Subject[T] {
	s := NewSubject[T]()
	s.replay = true
	return s
}

// Subscribe registers o. A terminated Subject sends only its terminal event.
func (s *Subject[T]) Subscribe(o Observer[T]) Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		if s.err != nil {
			o.OnError(s.err)
		} else {
			o.OnCompleted()
		}
		return NewSubscription(nil)
	}

	if s.replay && s.hasLatest {
		o.OnNext(s.latest)
	}

	id := s.nextID
	s.nextID++
	sub := &subscriber[T]{Observer: o}
	s.observers.Store(id, sub)

	return NewSubscription(func() {
		sub.disposed.Store(true)
		s.observers.Delete(id)
	})
}

// OnNext broadcasts v.
func (s *Subject[T]) OnNext(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return
	}
	s.latest, s.hasLatest = v, true
	s.observers.Range(func(_ uint64, sub *subscriber[T]) bool {
		if !sub.disposed.Load() {
			sub.OnNext(v)
		}
		return true
	})
}

// OnError terminates the Subject with err.
func (s *Subject[T]) OnError(err error) {
	s.terminate(err)
}

// OnCompleted terminates the Subject normally.
func (s *Subject[T]) OnCompleted() {
	s.terminate(nil)
}

func (s *Subject[T]) terminate(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return
	}
	s.done, s.err = true, err
	s.observers.Range(func(id uint64, sub *subscriber[T]) bool {
		s.observers.Delete(id)
		if sub.disposed.Load() {
			return true
		}
		if err != nil {
			sub.OnError(err)
		} else {
			sub.OnCompleted()
		}
		return true
	})
}

// Value returns the latest value, if any.
func (s *Subject[T]) Value() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.hasLatest
}

// ObserverCount returns the number of registered observers.
func (s *Subject[T]) ObserverCount() int {
	return s.observers.Size()
}
