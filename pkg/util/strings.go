package util

import (
	"fmt"

	"k8s.io/apimachinery/pkg/util/json"
)

// Map is a functional map: (a -> b) -> [a] -> [b].
func Map[T, U any](f func(T) U, s []T) []U {
	result := make([]U, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}

// Filter keeps the elements of s that satisfy f. A nil f keeps everything.
func Filter[T any](f func(T) bool, s []T) []T {
	if f == nil {
		return s
	}
	result := make([]T, 0, len(s))
	for _, v := range s {
		if f(v) {
			result = append(result, v)
		}
	}
	return result
}

// Count returns the number of elements of s that satisfy f. A nil f counts everything.
func Count[T any](f func(T) bool, s []T) int {
	if f == nil {
		return len(s)
	}
	n := 0
	for _, v := range s {
		if f(v) {
			n++
		}
	}
	return n
}

// Stringify dumps v as JSON for logging, falling back to Go syntax.
func Stringify(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(b)
}
