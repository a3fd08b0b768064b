package compare_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/amp-labs/amp-collectors/compare"
)

func TestNatural(t *testing.T) {
	t.Parallel()

	t.Run("orders ints numerically", func(t *testing.T) {
		t.Parallel()

		cmp := compare.Natural[int]()
		assert.Negative(t, cmp(1, 2))
		assert.Positive(t, cmp(2, 1))
		assert.Zero(t, cmp(7, 7))
	})

	t.Run("orders strings lexicographically", func(t *testing.T) {
		t.Parallel()

		cmp := compare.Natural[string]()
		assert.Negative(t, cmp("a", "b"))
		assert.Positive(t, cmp("file10", "file2")) // byte order, not numeric
	})
}

func TestReversed(t *testing.T) {
	t.Parallel()

	cmp := compare.Reversed(compare.Natural[int]())
	assert.Positive(t, cmp(1, 2))
	assert.Negative(t, cmp(2, 1))
	assert.Zero(t, cmp(3, 3))
}

func TestFromLess(t *testing.T) {
	t.Parallel()

	cmp := compare.FromLess(func(a, b int) bool { return a < b })
	assert.Negative(t, cmp(1, 2))
	assert.Positive(t, cmp(2, 1))
	assert.Zero(t, cmp(2, 2))
}

func TestBy(t *testing.T) {
	t.Parallel()

	byLen := compare.By(func(s string) int { return len(s) })

	words := []string{"ccc", "a", "bb"}
	slices.SortFunc(words, byLen)

	assert.Equal(t, []string{"a", "bb", "ccc"}, words)
}

func TestNaturalStrings(t *testing.T) {
	t.Parallel()

	t.Run("compares digit runs numerically", func(t *testing.T) {
		t.Parallel()

		cmp := compare.NaturalStrings()
		assert.Negative(t, cmp("file2", "file10"))
		assert.Positive(t, cmp("file10", "file2"))
		assert.Zero(t, cmp("file2", "file2"))
	})

	t.Run("sorts a file listing", func(t *testing.T) {
		t.Parallel()

		files := []string{"part10", "part2", "part1"}
		slices.SortFunc(files, compare.NaturalStrings())

		assert.Equal(t, []string{"part1", "part2", "part10"}, files)
	})
}

func TestCollation(t *testing.T) {
	t.Parallel()

	t.Run("applies locale collation rules", func(t *testing.T) {
		t.Parallel()

		// Swedish collation sorts "ö" after "z".
		cmp := compare.Collation(language.Swedish)
		assert.Positive(t, cmp("öl", "zebra"))
	})

	t.Run("honors collation options", func(t *testing.T) {
		t.Parallel()

		cmp := compare.Collation(language.English, collate.IgnoreCase)
		assert.Zero(t, cmp("Hello", "hello"))
	})
}
