package collect

import (
	"fmt"
	"iter"

	"github.com/amp-labs/amp-collectors/sortedmap"
)

// reduce is the core fold shared by every collector variant. It consumes seq
// one element at a time, extracts a key and a value from each, and mutates
// acc in place: absent key means insert, present key means merge(old, next).
//
// The first extraction or merge error stops the fold and is returned; acc
// must then be discarded by the caller so that no partial result escapes.
// Returns the number of elements folded before stopping.
func reduce[T any, K any, V any](
	seq iter.Seq[T],
	acc sortedmap.Map[K, V],
	key KeyFunc[T, K],
	value ValueFunc[T, V],
	merge MergeFunc[V],
) (int, error) {
	folded := 0

	for element := range seq {
		mapKey, err := key(element)
		if err != nil {
			return folded, fmt.Errorf("extracting key: %w", err)
		}

		mapValue, err := value(element)
		if err != nil {
			return folded, fmt.Errorf("extracting value: %w", err)
		}

		err = acc.Compute(mapKey, func(old V, found bool) (V, error) {
			if !found {
				return mapValue, nil
			}

			return merge(old, mapValue)
		})
		if err != nil {
			return folded, err
		}

		folded++
	}

	return folded, nil
}
