package collect_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amp-labs/amp-collectors/collect"
	"github.com/amp-labs/amp-collectors/compare"
)

func TestGroupAndSort(t *testing.T) {
	t.Parallel()

	t.Run("groups elements by key with sorted groups", func(t *testing.T) {
		t.Parallel()

		input := []int{3, 1, 2, 0}

		m, err := collect.GroupAndSort(slices.Values(input), key(func(i int) int { return i % 2 }))
		require.NoError(t, err)

		assert.Equal(t, []int{0, 1}, m.Keys())

		even, _ := m.Get(0)
		odd, _ := m.Get(1)
		assert.Equal(t, []int{0, 2}, even)
		assert.Equal(t, []int{1, 3}, odd)
	})

	t.Run("duplicate keys are the normal case", func(t *testing.T) {
		t.Parallel()

		input := []int{0, 1, 2, 3}

		m, err := collect.GroupAndSort(slices.Values(input), key(func(int) int { return 0 }))
		require.NoError(t, err)

		group, _ := m.Get(0)
		assert.Equal(t, []int{0, 1, 2, 3}, group)
	})

	t.Run("single-element groups are still sorted slices", func(t *testing.T) {
		t.Parallel()

		input := []string{"solo"}

		m, err := collect.GroupAndSort(slices.Values(input), key(func(s string) int { return len(s) }))
		require.NoError(t, err)

		group, found := m.Get(4)
		assert.True(t, found)
		assert.Equal(t, []string{"solo"}, group)
	})

	t.Run("empty sequence yields empty map", func(t *testing.T) {
		t.Parallel()

		m, err := collect.GroupAndSort(slices.Values([]int{}), key(func(i int) int { return i }))
		require.NoError(t, err)
		assert.Equal(t, 0, m.Size())
	})
}

func TestGroupAndSortOf(t *testing.T) {
	t.Parallel()

	t.Run("maps values before grouping", func(t *testing.T) {
		t.Parallel()

		input := []int{0, 1, 2, 3}

		m, err := collect.GroupAndSortOf(slices.Values(input),
			key(func(i int) int { return i % 2 }),
			value(func(i int) int { return i * 2 }),
		)
		require.NoError(t, err)

		even, _ := m.Get(0)
		odd, _ := m.Get(1)
		assert.Equal(t, []int{0, 4}, even)
		assert.Equal(t, []int{2, 6}, odd)
	})

	t.Run("key set equals the distinct extracted keys", func(t *testing.T) {
		t.Parallel()

		input := []string{"ant", "bee", "cat", "cow", "ape"}

		m, err := collect.GroupAndSortOf(slices.Values(input),
			key(func(s string) string { return s[:1] }),
			collect.Identity[string](),
		)
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "b", "c"}, m.Keys())

		aGroup, _ := m.Get("a")
		cGroup, _ := m.Get("c")
		assert.Len(t, aGroup, 2)
		assert.Len(t, cGroup, 2)

		bGroup, _ := m.Get("b")
		assert.Len(t, bGroup, 1)
	})
}

func TestGroupAndSortBy(t *testing.T) {
	t.Parallel()

	t.Run("applies custom comparators to keys and groups", func(t *testing.T) {
		t.Parallel()

		input := []string{"pear", "apple", "plum", "avocado"}

		m, err := collect.GroupAndSortBy(slices.Values(input),
			key(func(s string) string { return s[:1] }),
			collect.Identity[string](),
			compare.Reversed(compare.Natural[string]()),
			compare.By(func(s string) int { return len(s) }),
		)
		require.NoError(t, err)

		assert.Equal(t, []string{"p", "a"}, m.Keys())

		pGroup, _ := m.Get("p")
		assert.Equal(t, []string{"pear", "plum"}, pGroup) // equal lengths keep encounter order

		aGroup, _ := m.Get("a")
		assert.Equal(t, []string{"apple", "avocado"}, aGroup) // shortest first
	})

	t.Run("group sort is stable", func(t *testing.T) {
		t.Parallel()

		input := []string{"bb", "aa", "cc"}

		m, err := collect.GroupAndSortBy(slices.Values(input),
			key(func(string) int { return 0 }),
			collect.Identity[string](),
			compare.Natural[int](),
			compare.By(func(s string) int { return len(s) }), // all equivalent
		)
		require.NoError(t, err)

		group, _ := m.Get(0)
		assert.Equal(t, []string{"bb", "aa", "cc"}, group)
	})
}

func TestCollectGroups(t *testing.T) {
	t.Parallel()

	t.Run("is idempotent on its own output", func(t *testing.T) {
		t.Parallel()

		input := []int{5, 3, 8, 3, 5, 1}

		first, err := collect.GroupAndSort(slices.Values(input), key(func(i int) int { return i % 3 }))
		require.NoError(t, err)

		// Re-sorting the already-grouped result must change nothing.
		for groupKey, group := range first.Seq() {
			resorted := slices.Clone(group)
			slices.Sort(resorted)
			assert.Equal(t, group, resorted, "group %d", groupKey)
		}
	})

	t.Run("group lengths equal element counts per key", func(t *testing.T) {
		t.Parallel()

		input := strings.Split("the quick brown fox jumps over the lazy dog the end", " ")

		m, err := collect.CollectGroups(slices.Values(input), collect.GroupConfig[string, string, string]{
			Key:           key(func(s string) string { return s }),
			Value:         collect.Identity[string](),
			CompareKeys:   compare.Natural[string](),
			CompareValues: compare.Natural[string](),
		})
		require.NoError(t, err)

		theGroup, _ := m.Get("the")
		assert.Len(t, theGroup, 3)

		total := 0

		m.ForEach(func(_ string, group []string) {
			total += len(group)
		})

		assert.Equal(t, len(input), total)
	})

	t.Run("validates configuration", func(t *testing.T) {
		t.Parallel()

		seq := slices.Values([]int{1})

		_, err := collect.CollectGroups(seq, collect.GroupConfig[int, int, int]{
			Value:         collect.Identity[int](),
			CompareKeys:   compare.Natural[int](),
			CompareValues: compare.Natural[int](),
		})
		require.ErrorIs(t, err, collect.ErrMissingKeyFunc)

		_, err = collect.CollectGroups(seq, collect.GroupConfig[int, int, int]{
			Key:           key(func(i int) int { return i }),
			CompareKeys:   compare.Natural[int](),
			CompareValues: compare.Natural[int](),
		})
		require.ErrorIs(t, err, collect.ErrMissingValueFunc)

		_, err = collect.CollectGroups(seq, collect.GroupConfig[int, int, int]{
			Key:         key(func(i int) int { return i }),
			Value:       collect.Identity[int](),
			CompareKeys: compare.Natural[int](),
		})
		require.ErrorIs(t, err, collect.ErrMissingComparator)
	})

	t.Run("value extraction error aborts the fold", func(t *testing.T) {
		t.Parallel()

		m, err := collect.CollectGroups(slices.Values([]int{1}), collect.GroupConfig[int, int, int]{
			Key: key(func(i int) int { return i }),
			Value: func(int) (int, error) {
				return 0, assert.AnError
			},
			CompareKeys:   compare.Natural[int](),
			CompareValues: compare.Natural[int](),
		})
		require.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, m)
	})
}
