package value

import "fmt"

// OpaqueKind records why a payload was classified as opaque.
type OpaqueKind int

const (
	OpaqueOther OpaqueKind = iota
	OpaqueTemporal
	OpaquePattern
	OpaqueCallable
	OpaqueError
	OpaqueHashMap
	OpaqueHashSet
	OpaquePending
	OpaqueIterable
	OpaqueBinary
)

var opaqueKindNames = [...]string{
	OpaqueOther:    "other",
	OpaqueTemporal: "temporal",
	OpaquePattern:  "pattern",
	OpaqueCallable: "callable",
	OpaqueError:    "error",
	OpaqueHashMap:  "hash_map",
	OpaqueHashSet:  "hash_set",
	OpaquePending:  "pending",
	OpaqueIterable: "iterable",
	OpaqueBinary:   "binary",
}

func (k OpaqueKind) String() string {
	if k >= 0 && int(k) < len(opaqueKindNames) {
		return opaqueKindNames[k]
	}
	return fmt.Sprintf("OpaqueKind(%d)", int(k))
}

// Opaque wraps a payload whose structure is never inspected or reordered.
// The sorter returns the same *Opaque it was given.
type Opaque struct {
	kind    OpaqueKind
	payload any
}

func (*Opaque) Kind() Kind { return KindOpaque }
func (*Opaque) value() {}

// NewOpaque wraps payload as an opaque value of the given kind.
func NewOpaque(kind OpaqueKind, payload any) *Opaque {
	return &Opaque{kind: kind, payload: payload}
}

// OpaqueKind returns the classification of the payload.
func (o *Opaque) OpaqueKind() OpaqueKind {
	return o.kind
}

// Payload returns the wrapped value.
func (o *Opaque) Payload() any {
	return o.payload
}

func (o *Opaque) String() string {
	return fmt.Sprintf("opaque(%s)", o.kind)
}
