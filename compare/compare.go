// Package compare provides three-way comparator functions used to order keys
// and values in sorted collections.
package compare

import "cmp"

// Func is a three-way comparator. It returns a negative number when a sorts
// before b, a positive number when a sorts after b, and zero when the two are
// equivalent. Implementations must define a strict weak ordering: equivalence
// must be transitive, and the sign of Func(a, b) must be the opposite of
// Func(b, a).
//
// Sorted collections in this module compare keys only through a Func —
// never by identity, hashing, or ==.
type Func[T any] func(a, b T) int

// Natural returns a comparator that orders values by the type's natural
// ordering (numeric order for numbers, lexicographic byte order for strings).
func Natural[T cmp.Ordered]() Func[T] {
	return cmp.Compare[T]
}

// Reversed returns a comparator that inverts the ordering of f.
func Reversed[T any](f Func[T]) Func[T] {
	return func(a, b T) int {
		return f(b, a)
	}
}

// FromLess adapts a less-than predicate into a three-way comparator.
// The predicate must define a strict weak ordering.
func FromLess[T any](less func(a, b T) bool) Func[T] {
	return func(a, b T) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		default:
			return 0
		}
	}
}

// By returns a comparator that orders values by a derived sort key.
//
// Example:
//
//	byLen := compare.By(func(s string) int { return len(s) })
func By[T any, K cmp.Ordered](key func(T) K) Func[T] {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}
