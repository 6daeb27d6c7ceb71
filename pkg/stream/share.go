package stream

import "sync"

// ShareOption configures Share.
type ShareOption func(*shareConfig)

type shareConfig struct {
	onConnect     func()
	onDisconnect  func()
	onSubscribers func(int)
}

// OnConnect registers a hook run when the first observer connects the shared source.
func OnConnect(f func()) ShareOption {
	return func(c *shareConfig) { c.onConnect = f }
}

// OnDisconnect registers a hook run after the last observer left and the source was
// disconnected.
func OnDisconnect(f func()) ShareOption {
	return func(c *shareConfig) { c.onDisconnect = f }
}

// OnSubscribers registers a hook receiving the observer count after every change.
func OnSubscribers(f func(int)) ShareOption {
	return func(c *shareConfig) { c.onSubscribers = f }
}

// Share returns an Observable that multicasts one subscription of source to all its observers.
// The first observer connects source through a fresh replaying Subject, later observers receive
// the latest value first, and the last observer to leave disconnects source. Nothing survives a
// disconnect: the next observer starts a new connection from scratch.
func Share[T any](source Observable[T], opts ...ShareOption) Observable[T] {
	r := &refCount[T]{source: source}
	for _, o := range opts {
		o(&r.config)
	}
	return r
}

type refCount[T any] struct {
	mu         sync.Mutex
	source     Observable[T]
	subject    *Subject[T]
	connection Subscription
	count      int
	config     shareConfig
}

func (r *refCount[T]) Subscribe(o Observer[T]) Subscription {
	r.mu.Lock()
	if r.count == 0 {
		r.subject = NewBehaviorSubject[T]()
		if r.config.onConnect != nil {
			r.config.onConnect()
		}
		r.connection = r.source.Subscribe(r.subject)
	}
	r.count++
	subject, count := r.subject, r.count
	r.mu.Unlock()

	r.notify(count)
	inner := subject.Subscribe(o)

	return NewSubscription(func() {
		inner.Dispose()
		r.release(subject)
	})
}

func (r *refCount[T]) release(subject *Subject[T]) {
	r.mu.Lock()
	if r.subject != subject {
		// connection of an earlier epoch, already torn down
		r.mu.Unlock()
		return
	}
	r.count--
	count := r.count
	var connection Subscription
	if count == 0 {
		connection = r.connection
		r.subject, r.connection = nil, nil
	}
	r.mu.Unlock()

	r.notify(count)
	if connection != nil {
		connection.Dispose()
		if r.config.onDisconnect != nil {
			r.config.onDisconnect()
		}
	}
}

func (r *refCount[T]) notify(count int) {
	if r.config.onSubscribers != nil {
		r.config.onSubscribers(count)
	}
}
