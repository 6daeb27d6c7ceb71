package notification

// NoIndex marks a Change whose upstream is not index-aware.
const NoIndex = -1

// Notification is implemented by every notification kind. It is the contract that the stream
// normalizer relies on.
type Notification[N any] interface {
	// Action returns the kind of transition.
	Action() Action
	// AsReset returns a Reset carrying the same snapshot.
	AsReset() N
	// SameState reports whether both notifications carry value-equal snapshots.
	SameState(N) bool
}

// Change is the kind-independent view of a notification consumed by the transformation
// operators. Index is NoIndex unless the notification kind is index-aware.
type Change[T any] struct {
	Action   Action
	OldItems []T
	NewItems []T
	Index    int
	current  func() []T
}

// Indexed reports whether the change carries a position.
func (c Change[T]) Indexed() bool { return c.Index != NoIndex }

// Current materializes the snapshot after the change. The result must be treated as read-only.
func (c Change[T]) Current() []T {
	if c.current == nil {
		return nil
	}
	return c.current()
}

// Changer is implemented by notifications that can be viewed as a Change of element type T.
type Changer[T any] interface {
	Change() Change[T]
}

// NewChange assembles a Change over a materialized snapshot.
func NewChange[T any](action Action, oldItems, newItems []T, index int, current []T) Change[T] {
	return Change[T]{
		Action:   action,
		OldItems: oldItems,
		NewItems: newItems,
		Index:    index,
		current:  func() []T { return current },
	}
}
