package stream

import (
	"context"
	"errors"
	"sync"
)

// ErrNoElements is returned when a stream completes before producing a value.
var ErrNoElements = errors.New("stream completed without a value")

// Result carries the outcome of FirstAsync.
type Result[T any] struct {
	Value T
	Err   error
}

// First waits for the first value of source. Streams that replay their state, like collection
// sources, answer immediately.
func First[T any](ctx context.Context, source Observable[T]) (T, error) {
	ch, sub := first(source)
	defer sub.Dispose()

	select {
	case r := <-ch:
		return r.Value, r.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// FirstAsync returns a channel that receives the first value of source, or the error that
// terminated it, exactly once. The observer is detached once a result is sent; a cancelled ctx
// yields ctx.Err().
func FirstAsync[T any](ctx context.Context, source Observable[T]) <-chan Result[T] {
	ch, sub := first(source)
	out := make(chan Result[T], 1)
	go func() {
		defer sub.Dispose()
		select {
		case r := <-ch:
			out <- r
		case <-ctx.Done():
			out <- Result[T]{Err: ctx.Err()}
		}
	}()
	return out
}

func first[T any](source Observable[T]) (<-chan Result[T], Subscription) {
	ch := make(chan Result[T], 1)
	var once sync.Once
	deliver := func(r Result[T]) { once.Do(func() { ch <- r }) }

	sub := Take(source, 1).Subscribe(ObserverFuncs[T]{
		NextFunc:      func(v T) { deliver(Result[T]{Value: v}) },
		ErrorFunc:     func(err error) { deliver(Result[T]{Err: err}) },
		CompletedFunc: func() { deliver(Result[T]{Err: ErrNoElements}) },
	})

	return ch, sub
}
