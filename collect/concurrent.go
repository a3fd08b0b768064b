package collect

import (
	"cmp"
	"context"
	"iter"
	"log/slog"
	"runtime"
	"slices"

	"github.com/alitto/pond/v2"
	"go.uber.org/atomic"

	"github.com/amp-labs/amp-collectors/compare"
	"github.com/amp-labs/amp-collectors/sortedmap"
)

// concurrentOptions holds the tunables of the concurrent collectors.
type concurrentOptions struct {
	workers int
	logger  *slog.Logger
}

// Option configures a concurrent collection operation.
type Option func(*concurrentOptions)

// WithWorkers sets the number of fold workers (and input partitions).
// Values below 1 mean one worker per available CPU.
func WithWorkers(count int) Option {
	return func(o *concurrentOptions) {
		o.workers = count
	}
}

// WithLogger sets the logger used for debug-level operational logging.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *concurrentOptions) {
		o.logger = logger
	}
}

func newConcurrentOptions(opts []Option) *concurrentOptions {
	options := &concurrentOptions{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(options)
	}

	if options.workers < 1 {
		options.workers = runtime.GOMAXPROCS(0)
	}

	return options
}

// CollectConcurrent is the concurrent counterpart of Collect. The sequence is
// partitioned into contiguous chunks, each chunk is folded into its own
// single-owner accumulator on a worker pool, and the partial accumulators are
// then combined in partition order into a concurrency-safe sorted map using
// the same merge policy as single-element merges.
//
// Because partitions are contiguous and combined in order, the result for any
// merge policy depends only on encounter order, never on goroutine
// scheduling. The returned map is safe for concurrent use by the caller.
//
// ctx cancellation prevents pending partitions from starting; a fold that has
// begun runs to completion or failure. There are no timeout semantics.
func CollectConcurrent[T any, K any, V any](
	ctx context.Context,
	seq iter.Seq[T],
	cfg Config[T, K, V],
	opts ...Option,
) (sortedmap.Map[K, V], error) {
	operationsTotal.WithLabelValues(modeSortedConcurrent).Inc()

	if err := cfg.validate(); err != nil {
		failuresTotal.WithLabelValues(modeSortedConcurrent).Inc()

		return nil, err
	}

	merge := cfg.mergeOrDefault()

	partials, err := foldPartitions(
		ctx, seq, sortedmap.SupplierOf[K, V](cfg.Compare),
		cfg.Key, cfg.Value, merge,
		newConcurrentOptions(opts), modeSortedConcurrent,
	)
	if err != nil {
		failuresTotal.WithLabelValues(modeSortedConcurrent).Inc()

		return nil, err
	}

	result := sortedmap.NewConcurrent[K, V](cfg.Compare)

	if err := combine(result, partials, merge); err != nil {
		failuresTotal.WithLabelValues(modeSortedConcurrent).Inc()

		return nil, err
	}

	return result, nil
}

// ToConcurrentSortedMap is the concurrent counterpart of ToSortedMap.
func ToConcurrentSortedMap[T any, K cmp.Ordered](
	ctx context.Context,
	seq iter.Seq[T],
	key KeyFunc[T, K],
	opts ...Option,
) (sortedmap.Map[K, T], error) {
	return ToConcurrentSortedMapOf(ctx, seq, key, Identity[T](), opts...)
}

// ToConcurrentSortedMapOf is the concurrent counterpart of ToSortedMapOf.
func ToConcurrentSortedMapOf[T any, K cmp.Ordered, V any](
	ctx context.Context,
	seq iter.Seq[T],
	key KeyFunc[T, K],
	value ValueFunc[T, V],
	opts ...Option,
) (sortedmap.Map[K, V], error) {
	return ToConcurrentSortedMapBy(ctx, seq, key, value, compare.Natural[K](), opts...)
}

// ToConcurrentSortedMapBy is the concurrent counterpart of ToSortedMapBy.
// Use CollectConcurrent directly to also supply a merge policy.
func ToConcurrentSortedMapBy[T any, K any, V any](
	ctx context.Context,
	seq iter.Seq[T],
	key KeyFunc[T, K],
	value ValueFunc[T, V],
	keyCompare compare.Func[K],
	opts ...Option,
) (sortedmap.Map[K, V], error) {
	return CollectConcurrent(ctx, seq, Config[T, K, V]{
		Key:     key,
		Value:   value,
		Compare: keyCompare,
	}, opts...)
}

// CollectGroupsConcurrent is the concurrent counterpart of CollectGroups.
// Groups are accumulated per partition, concatenated in partition order
// during the combine step, and sorted only once every partial accumulator has
// been combined, so each group is sorted with its complete membership.
func CollectGroupsConcurrent[T any, K any, V any](
	ctx context.Context,
	seq iter.Seq[T],
	cfg GroupConfig[T, K, V],
	opts ...Option,
) (sortedmap.Map[K, []V], error) {
	operationsTotal.WithLabelValues(modeGroupedConcurrent).Inc()

	if err := cfg.validate(); err != nil {
		failuresTotal.WithLabelValues(modeGroupedConcurrent).Inc()

		return nil, err
	}

	partials, err := foldPartitions(
		ctx, seq, sortedmap.SupplierOf[K, []V](cfg.CompareKeys),
		cfg.Key, singleton(cfg.Value), concat[V](),
		newConcurrentOptions(opts), modeGroupedConcurrent,
	)
	if err != nil {
		failuresTotal.WithLabelValues(modeGroupedConcurrent).Inc()

		return nil, err
	}

	result := sortedmap.NewConcurrent[K, []V](cfg.CompareKeys)

	if err := combine(result, partials, concat[V]()); err != nil {
		failuresTotal.WithLabelValues(modeGroupedConcurrent).Inc()

		return nil, err
	}

	sortGroups(result, cfg.CompareValues)

	return result, nil
}

// GroupAndSortConcurrent is the concurrent counterpart of GroupAndSort.
func GroupAndSortConcurrent[T cmp.Ordered, K cmp.Ordered](
	ctx context.Context,
	seq iter.Seq[T],
	key KeyFunc[T, K],
	opts ...Option,
) (sortedmap.Map[K, []T], error) {
	return GroupAndSortConcurrentOf(ctx, seq, key, Identity[T](), opts...)
}

// GroupAndSortConcurrentOf is the concurrent counterpart of GroupAndSortOf.
func GroupAndSortConcurrentOf[T any, K cmp.Ordered, V cmp.Ordered](
	ctx context.Context,
	seq iter.Seq[T],
	key KeyFunc[T, K],
	value ValueFunc[T, V],
	opts ...Option,
) (sortedmap.Map[K, []V], error) {
	return GroupAndSortConcurrentBy(ctx, seq, key, value,
		compare.Natural[K](), compare.Natural[V](), opts...)
}

// GroupAndSortConcurrentBy is the concurrent counterpart of GroupAndSortBy.
func GroupAndSortConcurrentBy[T any, K any, V any](
	ctx context.Context,
	seq iter.Seq[T],
	key KeyFunc[T, K],
	value ValueFunc[T, V],
	keyCompare compare.Func[K],
	valueCompare compare.Func[V],
	opts ...Option,
) (sortedmap.Map[K, []V], error) {
	return CollectGroupsConcurrent(ctx, seq, GroupConfig[T, K, V]{
		Key:           key,
		Value:         value,
		CompareKeys:   keyCompare,
		CompareValues: valueCompare,
	}, opts...)
}

// foldPartitions materializes the sequence, splits it into contiguous chunks,
// and folds every chunk into its own fresh accumulator on a pond worker pool.
// The first fold error cancels pending chunks via the group context and is
// returned; in that case all partials are discarded.
func foldPartitions[T any, K any, V any](
	ctx context.Context,
	seq iter.Seq[T],
	supplier sortedmap.Supplier[K, V],
	key KeyFunc[T, K],
	value ValueFunc[T, V],
	merge MergeFunc[V],
	options *concurrentOptions,
	mode string,
) ([]sortedmap.Map[K, V], error) {
	elements := slices.Collect(seq)
	if len(elements) == 0 {
		return nil, nil
	}

	workers := min(options.workers, len(elements))
	chunks := partition(elements, workers)

	options.logger.DebugContext(ctx, "folding sequence partitions",
		"elements", len(elements), "workers", workers, "partitions", len(chunks))

	partials := make([]sortedmap.Map[K, V], len(chunks))
	folded := atomic.NewInt64(0)

	pool := pond.NewPool(workers)
	defer pool.StopAndWait()

	group := pool.NewGroupContext(ctx)

	for idx, chunk := range chunks {
		group.SubmitErr(func() error {
			acc := supplier()

			count, err := reduce(slices.Values(chunk), acc, key, value, merge)
			folded.Add(int64(count))

			if err != nil {
				return err
			}

			// Indexes are distinct per task, so no coordination is
			// needed beyond the group wait.
			partials[idx] = acc

			return nil
		})
	}

	err := group.Wait()

	elementsTotal.WithLabelValues(mode).Add(float64(folded.Load()))

	if err != nil {
		return nil, err
	}

	options.logger.DebugContext(ctx, "partition folds complete",
		"elements", folded.Load(), "partitions", len(chunks))

	return partials, nil
}

// combine merges the partial accumulators into result in partition order.
// Encounter order within the original sequence is therefore preserved for
// merge calls, and the outcome never depends on which worker finished first.
func combine[K any, V any](
	result sortedmap.Map[K, V],
	partials []sortedmap.Map[K, V],
	merge MergeFunc[V],
) error {
	for _, partial := range partials {
		for key, value := range partial.Seq() {
			err := result.Compute(key, func(old V, found bool) (V, error) {
				if !found {
					return value, nil
				}

				return merge(old, value)
			})
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// partition splits elements into count contiguous chunks of near-equal size.
// Chunks share the backing array of elements; they are read-only inputs to
// the per-partition folds.
func partition[T any](elements []T, count int) [][]T {
	chunks := make([][]T, 0, count)
	chunkSize := (len(elements) + count - 1) / count

	for start := 0; start < len(elements); start += chunkSize {
		end := min(start+chunkSize, len(elements))
		chunks = append(chunks, elements[start:end])
	}

	return chunks
}
