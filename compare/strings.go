package compare

import (
	"facette.io/natsort"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NaturalStrings returns a comparator that orders strings using natural sort
// order, where digit runs are compared numerically (e.g., "file2" sorts
// before "file10").
func NaturalStrings() Func[string] {
	return FromLess(natsort.Compare)
}

// Collation returns a comparator that orders strings according to the
// collation rules of the given language tag. Options such as
// collate.IgnoreCase may be supplied to adjust the collation strength.
//
// The returned comparator closes over a single collator and must not be
// called concurrently; give each goroutine its own comparator when sorting
// in parallel.
func Collation(tag language.Tag, opts ...collate.Option) Func[string] {
	c := collate.New(tag, opts...)

	return c.CompareString
}
