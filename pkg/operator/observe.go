package operator

import (
	"github.com/l7mp/rxcollections/pkg/notification"
	"github.com/l7mp/rxcollections/pkg/stream"
)

// ObserveKey emits the value stored for key on every dictionary notification whose snapshot
// contains it. Nothing is emitted while the key is absent, so an absent key cannot be told apart
// from a key that was not updated.
func ObserveKey[K comparable, V any](upstream stream.Observable[notification.Dictionary[K, V]], key K) stream.Observable[V] {
	present := stream.Where(upstream, func(n notification.Dictionary[K, V]) bool {
		return n.Current().ContainsKey(key)
	})
	return stream.Select(present, func(n notification.Dictionary[K, V]) V {
		v, _ := n.Current().Get(key)
		return v
	})
}
