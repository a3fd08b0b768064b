// Package collect provides sequence-terminal reduction operations that fold
// an ordered sequence of elements into a comparator-keyed sorted map, either
// one value per key or grouped-and-sorted values per key, with single-threaded
// and concurrent variants.
package collect

// KeyFunc derives the map key from a sequence element. It must be pure with
// respect to the element; a returned error aborts the whole collection
// operation.
type KeyFunc[T any, K any] func(element T) (K, error)

// ValueFunc derives the map value from a sequence element. It must be pure
// with respect to the element; a returned error aborts the whole collection
// operation.
type ValueFunc[T any, V any] func(element T) (V, error)

// MergeFunc resolves two values mapped to an equivalent key. It is called
// pairwise in encounter order with the already-present value first. A
// returned error aborts the whole collection operation with no partial
// result.
type MergeFunc[V any] func(old, next V) (V, error)

// Identity returns a ValueFunc that maps every element to itself.
func Identity[T any]() ValueFunc[T, T] {
	return func(element T) (T, error) {
		return element, nil
	}
}
