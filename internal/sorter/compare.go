package sorter

import (
	"math"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/roach88/deepsort/internal/value"
)

// Comparator orders sortable primitives and field names.
// It holds a collator and is not safe for concurrent use.
type Comparator struct {
	coll *collate.Collator
}

// NewComparator creates a Comparator using the root collation order.
func NewComparator() *Comparator {
	return &Comparator{coll: collate.New(language.Und)}
}

// CompareStrings compares two strings by collation order.
func (c *Comparator) CompareStrings(a, b string, ascending bool) int {
	if ascending {
		return c.coll.CompareString(a, b)
	}
	return c.coll.CompareString(b, a)
}

// ComparePrimitives returns -1, 0 or 1. Values of different kinds compare
// equal so a stable sort keeps their relative order.
func (c *Comparator) ComparePrimitives(a, b value.Value, ascending bool) int {
	switch x := a.(type) {
	case value.String:
		if y, ok := b.(value.String); ok {
			return c.CompareStrings(string(x), string(y), ascending)
		}
	case value.Number:
		if y, ok := b.(value.Number); ok {
			return compareNumbers(float64(x), float64(y), ascending)
		}
	case value.Bool:
		if y, ok := b.(value.Bool); ok {
			return compareBools(bool(x), bool(y), ascending)
		}
	}
	return 0
}

// CompareFieldNames orders string names by collation. Symbols sort after
// every string in both directions and are equal to each other.
func (c *Comparator) CompareFieldNames(a, b value.Key, ascending bool) int {
	switch {
	case a.IsSymbol() && b.IsSymbol():
		return 0
	case a.IsSymbol():
		return 1
	case b.IsSymbol():
		return -1
	}
	return c.CompareStrings(a.Name(), b.Name(), ascending)
}

// compareNumbers puts NaN last regardless of direction.
func compareNumbers(a, b float64, ascending bool) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	}
	if !ascending {
		a, b = b, a
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareBools(a, b bool, ascending bool) int {
	if a == b {
		return 0
	}
	if a == ascending {
		return 1
	}
	return -1
}
