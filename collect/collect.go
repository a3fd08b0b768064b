package collect

import (
	"cmp"
	"iter"

	"github.com/amp-labs/amp-collectors/compare"
	"github.com/amp-labs/amp-collectors/sortedmap"
)

// Config is the fully general configuration for a one-to-one collection
// operation. Key, Value, and Compare are required; Merge defaults to the
// fail-fast policy (FailOnDuplicate). The graded wrappers (ToSortedMap,
// ToSortedMapOf, ToSortedMapBy) fill in the usual defaults where the type
// parameters allow it.
type Config[T any, K any, V any] struct {
	// Key extracts the map key from an element.
	Key KeyFunc[T, K]

	// Value extracts the map value from an element. Use Identity to keep
	// the element itself.
	Value ValueFunc[T, V]

	// Compare orders the keys of the resulting map.
	Compare compare.Func[K]

	// Merge resolves values mapped to an equivalent key.
	// Nil means fail with ErrDuplicateKey on the first duplicate.
	Merge MergeFunc[V]
}

func (c Config[T, K, V]) validate() error {
	switch {
	case c.Key == nil:
		return ErrMissingKeyFunc
	case c.Value == nil:
		return ErrMissingValueFunc
	case c.Compare == nil:
		return ErrMissingComparator
	default:
		return nil
	}
}

// mergeOrDefault returns the configured merge policy, or fail-fast.
func (c Config[T, K, V]) mergeOrDefault() MergeFunc[V] {
	if c.Merge != nil {
		return c.Merge
	}

	return FailOnDuplicate[V]()
}

// Collect folds seq into a fresh single-owner sorted map according to cfg.
// The map is created once per call, populated incrementally, and ownership
// passes entirely to the caller. On any error no partial map is returned.
func Collect[T any, K any, V any](seq iter.Seq[T], cfg Config[T, K, V]) (sortedmap.Map[K, V], error) {
	operationsTotal.WithLabelValues(modeSorted).Inc()

	if err := cfg.validate(); err != nil {
		failuresTotal.WithLabelValues(modeSorted).Inc()

		return nil, err
	}

	acc := sortedmap.SupplierOf[K, V](cfg.Compare)()

	folded, err := reduce(seq, acc, cfg.Key, cfg.Value, cfg.mergeOrDefault())
	elementsTotal.WithLabelValues(modeSorted).Add(float64(folded))

	if err != nil {
		failuresTotal.WithLabelValues(modeSorted).Inc()

		return nil, err
	}

	return acc, nil
}

// ToSortedMap maps each element to a key and keeps the element itself as the
// value, with natural key ordering and the fail-fast duplicate policy.
func ToSortedMap[T any, K cmp.Ordered](seq iter.Seq[T], key KeyFunc[T, K]) (sortedmap.Map[K, T], error) {
	return ToSortedMapOf(seq, key, Identity[T]())
}

// ToSortedMapOf maps each element to a key and a value, with natural key
// ordering and the fail-fast duplicate policy.
func ToSortedMapOf[T any, K cmp.Ordered, V any](
	seq iter.Seq[T],
	key KeyFunc[T, K],
	value ValueFunc[T, V],
) (sortedmap.Map[K, V], error) {
	return ToSortedMapBy(seq, key, value, compare.Natural[K]())
}

// ToSortedMapBy maps each element to a key and a value with a custom key
// comparator and the fail-fast duplicate policy. Use Collect directly to also
// supply a merge policy.
func ToSortedMapBy[T any, K any, V any](
	seq iter.Seq[T],
	key KeyFunc[T, K],
	value ValueFunc[T, V],
	keyCompare compare.Func[K],
) (sortedmap.Map[K, V], error) {
	return Collect(seq, Config[T, K, V]{
		Key:     key,
		Value:   value,
		Compare: keyCompare,
	})
}
