package stream

// Resettable is implemented by collection notifications: they can restate themselves as a Reset
// and compare their snapshots by value.
type Resettable[N any] interface {
	AsReset() N
	SameState(N) bool
}

// Normalize adapts a notification stream so that every observer starts from a consistent state:
// the first value an observer receives is restated as a Reset of the snapshot it carries, and any
// later value whose snapshot equals the previously delivered one is dropped.
func Normalize[N Resettable[N]](source Observable[N]) Observable[N] {
	return Create(func(o Observer[N]) Subscription {
		var last N
		started := false
		return source.Subscribe(ObserverFuncs[N]{
			NextFunc: func(n N) {
				if !started {
					started = true
					last = n
					o.OnNext(n.AsReset())
					return
				}
				if n.SameState(last) {
					return
				}
				last = n
				o.OnNext(n)
			},
			ErrorFunc:     o.OnError,
			CompletedFunc: o.OnCompleted,
		})
	})
}
