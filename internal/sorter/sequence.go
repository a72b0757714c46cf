package sorter

import (
	"slices"

	"github.com/roach88/deepsort/internal/value"
)

// sortSequence returns a new array. Uniform primitive arrays are stably
// sorted when enabled; every other array keeps its order and has each
// element normalized.
func (t *traversal) sortSequence(seq value.Array) (value.Array, error) {
	if t.opts.SortPrimitiveArrays && uniformPrimitives(seq) {
		out := slices.Clone(seq)
		ascending := t.opts.Ascending()
		slices.SortStableFunc(out, func(a, b value.Value) int {
			return t.cmp.ComparePrimitives(a, b, ascending)
		})
		return out, nil
	}

	out := make(value.Array, len(seq))
	for i, elem := range seq {
		t.guard.pushIndex(i)
		v, err := t.normalize(elem)
		t.guard.pop()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// uniformPrimitives reports whether seq is non-empty and holds only
// strings, only numbers or only bools. A null element disqualifies it:
// absence has no place in the order.
func uniformPrimitives(seq value.Array) bool {
	if len(seq) == 0 || !isSortablePrimitive(seq[0]) {
		return false
	}
	kind := seq[0].Kind()
	for _, elem := range seq[1:] {
		if !isSortablePrimitive(elem) || elem.Kind() != kind {
			return false
		}
	}
	return true
}
