package sorter

import "github.com/roach88/deepsort/internal/value"

// Options controls a Sort call. The zero value sorts object fields in
// ascending order and leaves array order alone.
type Options struct {
	// Descending reverses the string, number and bool order. Symbols still
	// sort after strings and NaN still sorts last.
	Descending bool

	// SortPrimitiveArrays sorts arrays whose elements are all strings, all
	// numbers or all bools.
	SortPrimitiveArrays bool
}

// DefaultOptions returns ascending order with array order preserved.
func DefaultOptions() Options {
	return Options{}
}

// Ascending reports whether the options sort in ascending order.
func (o Options) Ascending() bool {
	return !o.Descending
}

// traversal is the state of one Sort call. It is never shared.
type traversal struct {
	opts  Options
	cmp   *Comparator
	guard *cycleGuard
}

// Sort returns a normalized copy of v.
//
// Objects are rebuilt with sorted fields. Arrays are rebuilt, sorted only
// when they qualify for a primitive sort. Nulls, primitives and opaque
// values are returned as given. v itself is never mutated.
//
// Sort fails with a *CycleError when an object or array contains itself;
// no partial result is returned.
func Sort(v value.Value, opts Options) (value.Value, error) {
	t := &traversal{
		opts:  opts,
		cmp:   NewComparator(),
		guard: newCycleGuard(),
	}
	out, err := t.normalize(v)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// normalize dispatches on the classification of v.
func (t *traversal) normalize(v value.Value) (value.Value, error) {
	switch Classify(v) {
	case VariantSequence:
		seq := v.(value.Array)
		tok, ok := arrayToken(seq)
		if !ok {
			return make(value.Array, 0), nil
		}
		if err := t.guard.Enter(tok, value.KindArray); err != nil {
			return nil, err
		}
		defer t.guard.Leave(tok)
		out, err := t.sortSequence(seq)
		if err != nil {
			return nil, err
		}
		return out, nil

	case VariantCollection:
		obj := v.(*value.Object)
		tok := objectToken(obj)
		if err := t.guard.Enter(tok, value.KindObject); err != nil {
			return nil, err
		}
		defer t.guard.Leave(tok)
		out, err := t.sortCollection(obj)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	// Null, primitive and opaque values are terminal.
	return v, nil
}
