package codec

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/deepsort/internal/value"
)

// DecodeCUE evaluates src and converts the resulting concrete value.
// Struct fields keep declaration order; definitions and hidden fields are
// not part of the data and are skipped.
func DecodeCUE(src []byte, filename string) (value.Value, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("decode cue: %w", err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("decode cue: value is not concrete: %w", err)
	}

	out, err := cueValue(v)
	if err != nil {
		return nil, fmt.Errorf("decode cue: %w", err)
	}
	return out, nil
}

func cueValue(v cue.Value) (value.Value, error) {
	switch v.Kind() {
	case cue.NullKind:
		return value.Null{}, nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, err
		}
		return value.Bool(b), nil
	case cue.IntKind, cue.FloatKind, cue.NumberKind:
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		return value.Number(f), nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, err
		}
		return value.String(s), nil
	case cue.BytesKind:
		b, err := v.Bytes()
		if err != nil {
			return nil, err
		}
		return value.NewOpaque(value.OpaqueBinary, b), nil
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, err
		}
		arr := make(value.Array, 0)
		for iter.Next() {
			elem, err := cueValue(iter.Value())
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", len(arr), err)
			}
			arr = append(arr, elem)
		}
		return arr, nil
	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return nil, err
		}
		obj := value.NewObject()
		for iter.Next() {
			name := iter.Label()
			elem, err := cueValue(iter.Value())
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", name, err)
			}
			obj.Set(name, elem)
		}
		return obj, nil
	}
	return nil, fmt.Errorf("%s: unsupported cue kind %v", v.Pos(), v.Kind())
}
