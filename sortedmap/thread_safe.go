package sortedmap

import (
	"iter"
	"sync"

	"github.com/amp-labs/amp-collectors/compare"
)

// NewConcurrent creates an empty concurrency-safe sorted map ordered by cmp.
// It wraps the red-black tree with a sync.RWMutex: write operations (Add,
// Compute, Remove, Clear) take the exclusive lock, read operations share the
// read lock. Compute holds the write lock across the whole read-modify-write,
// so mutations are linearizable per key.
func NewConcurrent[K any, V any](cmp compare.Func[K]) Map[K, V] {
	return &concurrentMap[K, V]{internal: New[K, V](cmp)}
}

// WrapConcurrent decorates an existing Map with thread-safe access.
// Maps that are already concurrency-safe are returned as-is.
func WrapConcurrent[K any, V any](m Map[K, V]) Map[K, V] {
	if m == nil {
		return nil
	}

	if safe, ok := m.(*concurrentMap[K, V]); ok {
		return safe
	}

	return &concurrentMap[K, V]{internal: m}
}

// concurrentMap is a decorator adding RWMutex coordination to any Map.
type concurrentMap[K any, V any] struct {
	mutex    sync.RWMutex
	internal Map[K, V]
}

func (c *concurrentMap[K, V]) Get(key K) (V, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.internal.Get(key)
}

func (c *concurrentMap[K, V]) GetOrElse(key K, defaultValue V) V {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.internal.GetOrElse(key, defaultValue)
}

func (c *concurrentMap[K, V]) Add(key K, value V) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.internal.Add(key, value)
}

func (c *concurrentMap[K, V]) Compute(key K, remap func(old V, found bool) (V, error)) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.internal.Compute(key, remap)
}

func (c *concurrentMap[K, V]) Remove(key K) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.internal.Remove(key)
}

func (c *concurrentMap[K, V]) Contains(key K) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.internal.Contains(key)
}

func (c *concurrentMap[K, V]) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.internal.Size()
}

func (c *concurrentMap[K, V]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.internal.Clear()
}

// Seq returns an iterator with snapshot semantics. The read lock is held only
// while the snapshot is taken, never during iteration, so slow consumers do
// not block writers and writers do not invalidate an in-flight iteration.
func (c *concurrentMap[K, V]) Seq() iter.Seq2[K, V] {
	snapshot := c.snapshot()

	return func(yield func(K, V) bool) {
		for _, entry := range snapshot {
			if !yield(entry.Key, entry.Value) {
				return
			}
		}
	}
}

func (c *concurrentMap[K, V]) Keys() []K {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.internal.Keys()
}

// ForEach applies f to a snapshot of the map, without holding the lock
// during callback execution.
func (c *concurrentMap[K, V]) ForEach(f func(key K, value V)) {
	for _, entry := range c.snapshot() {
		f(entry.Key, entry.Value)
	}
}

func (c *concurrentMap[K, V]) Min() (KeyValuePair[K, V], bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.internal.Min()
}

func (c *concurrentMap[K, V]) Max() (KeyValuePair[K, V], bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.internal.Max()
}

func (c *concurrentMap[K, V]) Floor(key K) (KeyValuePair[K, V], bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.internal.Floor(key)
}

func (c *concurrentMap[K, V]) Ceiling(key K) (KeyValuePair[K, V], bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.internal.Ceiling(key)
}

// snapshot copies all entries, in order, under the read lock.
func (c *concurrentMap[K, V]) snapshot() []KeyValuePair[K, V] {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	accum := make([]KeyValuePair[K, V], 0, c.internal.Size())

	for key, value := range c.internal.Seq() {
		accum = append(accum, KeyValuePair[K, V]{Key: key, Value: value})
	}

	return accum
}
