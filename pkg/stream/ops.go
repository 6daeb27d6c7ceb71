package stream

import "sync"

// Select maps every value of source through f.
func Select[T, U any](source Observable[T], f func(T) U) Observable[U] {
	return Create(func(o Observer[U]) Subscription {
		return source.Subscribe(ObserverFuncs[T]{
			NextFunc:      func(v T) { o.OnNext(f(v)) },
			ErrorFunc:     o.OnError,
			CompletedFunc: o.OnCompleted,
		})
	})
}

// Where forwards the values of source that satisfy pred.
func Where[T any](source Observable[T], pred func(T) bool) Observable[T] {
	return Create(func(o Observer[T]) Subscription {
		return source.Subscribe(ObserverFuncs[T]{
			NextFunc: func(v T) {
				if pred(v) {
					o.OnNext(v)
				}
			},
			ErrorFunc:     o.OnError,
			CompletedFunc: o.OnCompleted,
		})
	})
}

// Take forwards the first n values of source, then completes and disposes the upstream
// subscription.
func Take[T any](source Observable[T], n int) Observable[T] {
	return Create(func(o Observer[T]) Subscription {
		if n <= 0 {
			o.OnCompleted()
			return NewSubscription(nil)
		}

		var mu sync.Mutex
		var upstream Subscription
		seen, done := 0, false

		// the upstream may deliver synchronously from Subscribe, before upstream is set
		finish := func() {
			mu.Lock()
			done = true
			up := upstream
			mu.Unlock()
			if up != nil {
				up.Dispose()
			}
		}

		sub := source.Subscribe(ObserverFuncs[T]{
			NextFunc: func(v T) {
				mu.Lock()
				if done || seen >= n {
					mu.Unlock()
					return
				}
				seen++
				last := seen == n
				mu.Unlock()

				o.OnNext(v)
				if last {
					o.OnCompleted()
					finish()
				}
			},
			ErrorFunc: func(err error) {
				mu.Lock()
				skip := done
				done = true
				mu.Unlock()
				if !skip {
					o.OnError(err)
				}
			},
			CompletedFunc: func() {
				mu.Lock()
				skip := done
				done = true
				mu.Unlock()
				if !skip {
					o.OnCompleted()
				}
			},
		})

		mu.Lock()
		upstream = sub
		finished := done
		mu.Unlock()
		if finished {
			sub.Dispose()
		}

		return sub
	})
}
