package operator

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-logr/logr"

	"github.com/l7mp/rxcollections/pkg/notification"
	"github.com/l7mp/rxcollections/pkg/source"
	"github.com/l7mp/rxcollections/pkg/stream"
)

// ErrInconsistent is returned when an upstream notification does not match the state an
// operator maintains.
var ErrInconsistent = errors.New("inconsistent upstream notification")

func inconsistent(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInconsistent, fmt.Sprintf(format, args...))
}

// Notification is the constraint on the upstream notification kinds operators consume.
type Notification[T, N any] interface {
	notification.Notification[N]
	notification.Changer[T]
}

// sink is the private downstream source of an operator epoch.
type sink[D any] interface {
	stream.Observable[D]
	Fail(error)
	Complete()
}

// publish turns build into the shared, normalized output of an operator. build runs once per
// epoch and connects the epoch to o.
func publish[D notification.Notification[D]](op string, cfg source.Config,
	build func(log logr.Logger, o stream.Observer[D]) stream.Subscription) stream.Observable[D] {
	log := cfg.Logger.WithName(op).WithValues("collection", cfg.Name)

	epoch := stream.Create(func(o stream.Observer[D]) stream.Subscription {
		return build(log, o)
	})

	return stream.Normalize(stream.Share(epoch,
		stream.OnConnect(func() { log.V(1).Info("starting epoch") }),
		stream.OnDisconnect(func() { log.V(1).Info("epoch torn down") }),
		stream.OnSubscribers(func(n int) {
			log.V(4).Info("subscribers changed", "count", n)
			cfg.Metrics.SetSubscribers(cfg.Name, n)
		}),
	))
}

// derive builds a single-upstream operator. start creates the private sink of a new epoch and
// the function applying upstream changes to it. Changes are applied under the epoch lock; the
// first failure fails the output and later notifications are dropped.
func derive[T any, N Notification[T, N], D notification.Notification[D]](op string, cfg source.Config,
	upstream stream.Observable[N], start func() (sink[D], func(notification.Change[T]) error)) stream.Observable[D] {
	return publish(op, cfg, func(log logr.Logger, o stream.Observer[D]) stream.Subscription {
		out, apply := start()

		var mu sync.Mutex
		failed := false
		fail := func(err error) {
			failed = true
			out.Fail(err)
		}

		up := stream.Normalize(upstream).Subscribe(stream.ObserverFuncs[N]{
			NextFunc: func(n N) {
				mu.Lock()
				defer mu.Unlock()
				if failed {
					return
				}

				c := n.Change()
				if c.Action == notification.Reset {
					log.V(5).Info("recomputing from upstream reset", "items", len(c.Current()))
					cfg.Metrics.ObserveRecomputed(cfg.Name)
				}

				if err := apply(c); err != nil {
					log.Error(err, "failed to apply upstream notification", "action", c.Action.String())
					fail(err)
				}
			},
			ErrorFunc: func(err error) {
				mu.Lock()
				defer mu.Unlock()
				if !failed {
					log.V(1).Info("upstream failed", "error", err.Error())
					fail(err)
				}
			},
			CompletedFunc: func() {
				mu.Lock()
				defer mu.Unlock()
				if !failed {
					out.Complete()
				}
			},
		})

		return stream.Composite(up, out.Subscribe(o))
	})
}

func identity[T any](v T) T { return v }
