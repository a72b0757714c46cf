package sorter

import "github.com/roach88/deepsort/internal/value"

// Variant is the classification the traversal dispatches on.
type Variant int

const (
	// VariantNull is an absent value. It cannot be ordered against anything.
	VariantNull Variant = iota
	// VariantPrimitive is a string, number or bool.
	VariantPrimitive
	// VariantSequence is an Array.
	VariantSequence
	// VariantCollection is an *Object.
	VariantCollection
	// VariantOpaque is an *Opaque, passed through by identity.
	VariantOpaque
)

func (v Variant) String() string {
	switch v {
	case VariantNull:
		return "null"
	case VariantPrimitive:
		return "primitive"
	case VariantSequence:
		return "sequence"
	case VariantCollection:
		return "collection"
	case VariantOpaque:
		return "opaque"
	}
	return "unknown"
}

// Classify labels v. It is total: nil Values and nil pointers are Null.
func Classify(v value.Value) Variant {
	switch val := v.(type) {
	case nil, value.Null:
		return VariantNull
	case value.String, value.Number, value.Bool:
		return VariantPrimitive
	case value.Array:
		return VariantSequence
	case *value.Object:
		if val == nil {
			return VariantNull
		}
		return VariantCollection
	case *value.Opaque:
		if val == nil {
			return VariantNull
		}
		return VariantOpaque
	}
	return VariantOpaque
}

// isSortablePrimitive reports whether v can take part in a primitive sort.
func isSortablePrimitive(v value.Value) bool {
	return Classify(v) == VariantPrimitive
}
