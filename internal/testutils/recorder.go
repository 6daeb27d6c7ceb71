package testutils

import (
	"sync"
	"time"

	"github.com/l7mp/rxcollections/pkg/stream"
)

var _ stream.Observer[int] = &Recorder[int]{}

// Recorder is an observer that keeps every event it receives.
type Recorder[T any] struct {
	mu        sync.Mutex
	values    []T
	err       error
	completed bool
	ch        chan T
}

// NewRecorder returns an empty Recorder. Values are also sent to a buffered channel that can be
// polled with TryReceive.
func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{ch: make(chan T, 1024)}
}

func (r *Recorder[T]) OnNext(v T) {
	r.mu.Lock()
	r.values = append(r.values, v)
	r.mu.Unlock()
	select {
	case r.ch <- v:
	default:
	}
}

func (r *Recorder[T]) OnError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *Recorder[T]) OnCompleted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = true
}

// Values returns a copy of the values received so far.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T{}, r.values...)
}

// Len returns the number of values received so far.
func (r *Recorder[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

// Last returns the latest value, if any.
func (r *Recorder[T]) Last() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.values) == 0 {
		var zero T
		return zero, false
	}
	return r.values[len(r.values)-1], true
}

// Err returns the error the stream terminated with.
func (r *Recorder[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Completed reports whether the stream completed normally.
func (r *Recorder[T]) Completed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completed
}

// Reset drops the recorded values.
func (r *Recorder[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = nil
	for len(r.ch) > 0 {
		<-r.ch
	}
}

// TryReceive waits for the next value within the specified timeout. Returns the value and true if
// successful, or a zero value and false if timeout occurs.
func (r *Recorder[T]) TryReceive(timeout time.Duration) (T, bool) {
	return TryReceive(r.ch, timeout)
}

// TryReceive attempts to receive a value from a channel within the specified timeout.
func TryReceive[T any](ch <-chan T, timeout time.Duration) (T, bool) {
	select {
	case v, ok := <-ch:
		return v, ok
	case <-time.After(timeout):
		var zero T
		return zero, false
	}
}
