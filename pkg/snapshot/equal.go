package snapshot

import (
	"golang.org/x/exp/constraints"
	"k8s.io/apimachinery/pkg/api/equality"
)

// EqualFunc reports whether two elements are equal by value.
type EqualFunc[T any] func(a, b T) bool

// CompareFunc orders elements: negative if a < b, zero if a == b, positive if a > b.
type CompareFunc[T any] func(a, b T) int

// DefaultEqual compares two values semantically, recursing into maps, slices and structs.
func DefaultEqual[T any](a, b T) bool {
	return equality.Semantic.DeepEqual(a, b)
}

// Ascending is the natural order of an ordered type.
func Ascending[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Descending is the reverse natural order of an ordered type.
func Descending[T constraints.Ordered](a, b T) int {
	return Ascending(b, a)
}

// Reverse inverts a comparer.
func Reverse[T any](cmp CompareFunc[T]) CompareFunc[T] {
	return func(a, b T) int { return cmp(b, a) }
}

// comparer adapts a CompareFunc to the immutable.Comparer interface.
type comparer[T any] struct {
	cmp CompareFunc[T]
}

func (c comparer[T]) Compare(a, b T) int { return c.cmp(a, b) }

func orDefault[T any](eq EqualFunc[T]) EqualFunc[T] {
	if eq == nil {
		return DefaultEqual[T]
	}
	return eq
}
