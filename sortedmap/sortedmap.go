// Package sortedmap provides comparator-keyed sorted map implementations.
// Iteration order is always ascending by the key comparator, and keys are
// compared only through the comparator supplied at construction time.
package sortedmap

import (
	"iter"

	"github.com/amp-labs/amp-collectors/compare"
)

// KeyValuePair is a single map entry. It is returned by the navigation
// methods (Min, Max, Floor, Ceiling) so that both halves of the entry are
// available in one lookup.
type KeyValuePair[K any, V any] struct {
	Key   K
	Value V
}

// Map is a sorted associative container. Implementations keep at most one
// value per key, where key equivalence is defined by the comparator the map
// was built with, and iterate in ascending comparator order.
//
// Thread-safety: implementations are not safe for concurrent use unless
// explicitly documented. NewConcurrent returns a concurrency-safe Map.
type Map[K any, V any] interface {
	// Get retrieves the value for the given key.
	// Returns the zero value and found=false when the key is absent.
	Get(key K) (value V, found bool)

	// GetOrElse retrieves the value for the given key, or defaultValue
	// when the key is absent.
	GetOrElse(key K, defaultValue V) V

	// Add inserts a key-value pair, replacing the value if an equivalent
	// key is already present.
	Add(key K, value V)

	// Compute atomically reads the entry for key and replaces it with the
	// value produced by remap. remap receives the current value (or the
	// zero value) and whether the key was present. If remap returns an
	// error the map is left unchanged and the error is returned.
	//
	// Concurrency-safe implementations guarantee the whole
	// read-modify-write is linearizable per key.
	Compute(key K, remap func(old V, found bool) (V, error)) error

	// Remove deletes the entry for key. Absent keys are a no-op.
	Remove(key K)

	// Contains reports whether the key is present.
	Contains(key K) bool

	// Size returns the number of entries.
	Size() int

	// Clear removes all entries.
	Clear()

	// Seq returns an iterator over all entries in ascending key order,
	// compatible with range-over-func syntax:
	// for k, v := range m.Seq() { ... }
	Seq() iter.Seq2[K, V]

	// Keys returns all keys in ascending order.
	Keys() []K

	// ForEach applies f to every entry in ascending key order.
	ForEach(f func(key K, value V))

	// Min returns the entry with the smallest key, or found=false when
	// the map is empty.
	Min() (entry KeyValuePair[K, V], found bool)

	// Max returns the entry with the largest key, or found=false when
	// the map is empty.
	Max() (entry KeyValuePair[K, V], found bool)

	// Floor returns the entry with the largest key that is less than or
	// equal to the given key, or found=false when no such entry exists.
	Floor(key K) (entry KeyValuePair[K, V], found bool)

	// Ceiling returns the entry with the smallest key that is greater
	// than or equal to the given key, or found=false when no such entry
	// exists.
	Ceiling(key K) (entry KeyValuePair[K, V], found bool)
}

// Supplier produces a fresh, empty Map. Collection operations call their
// supplier exactly once and never share or pool the produced map.
type Supplier[K any, V any] func() Map[K, V]

// SupplierOf returns a Supplier of single-owner sorted maps ordered by cmp.
func SupplierOf[K any, V any](cmp compare.Func[K]) Supplier[K, V] {
	return func() Map[K, V] {
		return New[K, V](cmp)
	}
}

// ConcurrentSupplierOf returns a Supplier of concurrency-safe sorted maps
// ordered by cmp.
func ConcurrentSupplierOf[K any, V any](cmp compare.Func[K]) Supplier[K, V] {
	return func() Map[K, V] {
		return NewConcurrent[K, V](cmp)
	}
}
