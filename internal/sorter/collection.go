package sorter

import (
	"slices"

	"github.com/roach88/deepsort/internal/value"
)

// sortCollection returns a new object whose fields are stably sorted by
// name and whose values are normalized. obj is never mutated.
func (t *traversal) sortCollection(obj *value.Object) (*value.Object, error) {
	fields := obj.Fields()
	ascending := t.opts.Ascending()
	slices.SortStableFunc(fields, func(a, b value.Field) int {
		return t.cmp.CompareFieldNames(a.Name, b.Name, ascending)
	})

	for i := range fields {
		t.guard.pushField(fields[i].Name)
		v, err := t.normalize(fields[i].Value)
		t.guard.pop()
		if err != nil {
			return nil, err
		}
		fields[i].Value = v
	}
	return value.NewObjectFromFields(fields), nil
}
