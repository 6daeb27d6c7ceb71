package source

import (
	"errors"
	"sync"

	"github.com/go-logr/logr"

	"github.com/l7mp/rxcollections/pkg/metrics"
	"github.com/l7mp/rxcollections/pkg/notification"
	"github.com/l7mp/rxcollections/pkg/stream"
)

// ErrTerminated is returned when mutating a source that was completed or failed.
var ErrTerminated = errors.New("source terminated")

// notifier is the constraint on the notification kinds a cell can hold.
type notifier[N any] interface {
	notification.Notification[N]
	String() string
}

// cell is the single-slot state shared by all source kinds.
type cell[N notifier[N]] struct {
	mu         sync.Mutex
	current    N
	published  bool
	terminated bool
	subject    *stream.Subject[N]
	changes    stream.Observable[N]
	name       string
	metrics    *metrics.Metrics
	log        logr.Logger
}

func newCell[N notifier[N]](initial N, cfg Config) *cell[N] {
	c := &cell[N]{
		current: initial,
		subject: stream.NewBehaviorSubject[N](),
		name:    cfg.Name,
		metrics: cfg.Metrics,
		log:     cfg.Logger.WithName("source").WithValues("collection", cfg.Name),
	}
	c.changes = stream.Normalize[N](c.subject)
	if !cfg.deferred {
		c.subject.OnNext(initial)
		c.published = true
	}
	return c
}

// update computes the next state with f and publishes it if it differs from the current one.
func (c *cell[N]) update(op string, f func(N) (N, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.terminated {
		c.log.V(4).Info("refusing mutation on terminated source", "op", op)
		return ErrTerminated
	}

	next, err := f(c.current)
	if err != nil {
		c.log.V(4).Info("rejecting mutation", "op", op, "error", err.Error())
		c.metrics.ObserveRejected(c.name)
		return err
	}

	if c.published && next.SameState(c.current) {
		c.log.V(5).Info("suppressing no-op mutation", "op", op)
		c.metrics.ObserveSuppressed(c.name)
		return nil
	}

	c.current, c.published = next, true
	c.log.V(4).Info("publishing", "op", op, "action", next.Action().String())
	c.log.V(8).Info("notification", "dump", next.String())
	c.metrics.ObservePublished(c.name, next.Action().String())

	c.subject.OnNext(next)

	return nil
}

// Name returns the collection name.
func (c *cell[N]) Name() string { return c.name }

// Notification returns the latest notification.
func (c *cell[N]) Notification() N {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Subscribe registers an observer on the normalized notification stream: the first notification
// is a Reset of the current state.
func (c *cell[N]) Subscribe(o stream.Observer[N]) stream.Subscription {
	return c.changes.Subscribe(o)
}

// Changes returns the normalized notification stream.
func (c *cell[N]) Changes() stream.Observable[N] { return c.changes }

// Complete terminates the notification stream normally.
func (c *cell[N]) Complete() {
	c.terminate(nil)
}

// Fail terminates the notification stream with err.
func (c *cell[N]) Fail(err error) {
	c.terminate(err)
}

func (c *cell[N]) terminate(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.terminated {
		return
	}
	c.terminated = true

	if err != nil {
		c.log.V(1).Info("source failed", "error", err.Error())
		c.subject.OnError(err)
		return
	}
	c.log.V(1).Info("source completed")
	c.subject.OnCompleted()
}
