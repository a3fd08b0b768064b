package collect

import (
	"cmp"
	"iter"
	"slices"

	"github.com/amp-labs/amp-collectors/compare"
	"github.com/amp-labs/amp-collectors/sortedmap"
)

// GroupConfig is the fully general configuration for a grouping collection
// operation. All four fields are required in the general form; the graded
// wrappers (GroupAndSort, GroupAndSortOf, GroupAndSortBy) fill in identity
// values and natural ordering where the type parameters allow it.
//
// There is no merge policy here: duplicate keys are the normal case, each
// key accumulates every value mapped to it, and the accumulated group is
// sorted by CompareValues exactly once after the fold completes.
type GroupConfig[T any, K any, V any] struct {
	// Key extracts the group key from an element.
	Key KeyFunc[T, K]

	// Value extracts the grouped value from an element. Use Identity to
	// group the elements themselves.
	Value ValueFunc[T, V]

	// CompareKeys orders the keys of the resulting map.
	CompareKeys compare.Func[K]

	// CompareValues orders each key's group during finalization.
	CompareValues compare.Func[V]
}

func (c GroupConfig[T, K, V]) validate() error {
	switch {
	case c.Key == nil:
		return ErrMissingKeyFunc
	case c.Value == nil:
		return ErrMissingValueFunc
	case c.CompareKeys == nil, c.CompareValues == nil:
		return ErrMissingComparator
	default:
		return nil
	}
}

// CollectGroups folds seq into a fresh single-owner sorted map from key to
// the sorted slice of all values mapped to that key.
func CollectGroups[T any, K any, V any](
	seq iter.Seq[T],
	cfg GroupConfig[T, K, V],
) (sortedmap.Map[K, []V], error) {
	operationsTotal.WithLabelValues(modeGrouped).Inc()

	if err := cfg.validate(); err != nil {
		failuresTotal.WithLabelValues(modeGrouped).Inc()

		return nil, err
	}

	acc := sortedmap.SupplierOf[K, []V](cfg.CompareKeys)()

	folded, err := reduce(seq, acc, cfg.Key, singleton(cfg.Value), concat[V]())
	elementsTotal.WithLabelValues(modeGrouped).Add(float64(folded))

	if err != nil {
		failuresTotal.WithLabelValues(modeGrouped).Inc()

		return nil, err
	}

	sortGroups(acc, cfg.CompareValues)

	return acc, nil
}

// GroupAndSort groups the elements themselves by key, with natural ordering
// for both keys and groups.
func GroupAndSort[T cmp.Ordered, K cmp.Ordered](
	seq iter.Seq[T],
	key KeyFunc[T, K],
) (sortedmap.Map[K, []T], error) {
	return GroupAndSortOf(seq, key, Identity[T]())
}

// GroupAndSortOf groups extracted values by key, with natural ordering for
// both keys and groups.
func GroupAndSortOf[T any, K cmp.Ordered, V cmp.Ordered](
	seq iter.Seq[T],
	key KeyFunc[T, K],
	value ValueFunc[T, V],
) (sortedmap.Map[K, []V], error) {
	return GroupAndSortBy(seq, key, value, compare.Natural[K](), compare.Natural[V]())
}

// GroupAndSortBy groups extracted values by key with custom comparators for
// both keys and groups.
func GroupAndSortBy[T any, K any, V any](
	seq iter.Seq[T],
	key KeyFunc[T, K],
	value ValueFunc[T, V],
	keyCompare compare.Func[K],
	valueCompare compare.Func[V],
) (sortedmap.Map[K, []V], error) {
	return CollectGroups(seq, GroupConfig[T, K, V]{
		Key:           key,
		Value:         value,
		CompareKeys:   keyCompare,
		CompareValues: valueCompare,
	})
}

// singleton lifts a ValueFunc into one producing single-element groups, so
// grouping can reuse the same reducer core as the one-to-one collectors.
func singleton[T any, V any](value ValueFunc[T, V]) ValueFunc[T, []V] {
	return func(element T) ([]V, error) {
		extracted, err := value(element)
		if err != nil {
			return nil, err
		}

		return []V{extracted}, nil
	}
}

// concat is the grouping accumulation policy: groups for an equivalent key
// are concatenated in encounter order. It never fails.
func concat[V any]() MergeFunc[[]V] {
	return func(old, next []V) ([]V, error) {
		return append(old, next...), nil
	}
}

// sortGroups is the grouping finalization pass: each key's group is sorted
// in place exactly once, after the complete fold (and, for the concurrent
// variant, after all partial accumulators are combined). Sorting any earlier
// would order an incomplete group. The sort is stable, so values that compare
// as equivalent stay in encounter order. Single-element groups still go
// through the sort for contract uniformity.
func sortGroups[K any, V any](m sortedmap.Map[K, []V], valueCompare compare.Func[V]) {
	for _, group := range m.Seq() {
		slices.SortStableFunc(group, valueCompare)
	}
}
