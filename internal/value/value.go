package value

import "fmt"

// Value is a sealed interface representing the supported value variants.
// Only Null, String, Number, Bool, Array, *Object and *Opaque implement it.
// A nil Value is treated as Null everywhere.
type Value interface {
	Kind() Kind
	value() // Sealed - only this package's types implement it
}

// Kind identifies the variant of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindObject
	KindOpaque
)

var kindNames = [...]string{
	KindNull:   "null",
	KindString: "string",
	KindNumber: "number",
	KindBool:   "bool",
	KindArray:  "array",
	KindObject: "object",
	KindOpaque: "opaque",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindOf returns the kind of v, mapping a nil Value to KindNull.
func KindOf(v Value) Kind {
	if v == nil {
		return KindNull
	}
	return v.Kind()
}

// Null represents an absent value.
type Null struct{}

func (Null) Kind() Kind { return KindNull }
func (Null) value() {}

// String represents a string value.
type String string

func (String) Kind() Kind { return KindString }
func (String) value() {}

// Number represents a numeric value. NaN and infinities are representable.
type Number float64

func (Number) Kind() Kind { return KindNumber }
func (Number) value() {}

// Bool represents a boolean value.
type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (Bool) value() {}

// Array represents an ordered sequence of values.
type Array []Value

func (Array) Kind() Kind { return KindArray }
func (Array) value() {}

// NewArray creates an Array from values.
func NewArray(vals ...Value) Array {
	return Array(vals)
}

// Symbol is a non-string field name. Two symbols are the same name only if
// they are the same pointer; the description is for display.
type Symbol struct {
	desc string
}

// NewSymbol creates a fresh symbol.
func NewSymbol(desc string) *Symbol {
	return &Symbol{desc: desc}
}

// Description returns the display description of the symbol.
func (s *Symbol) Description() string {
	return s.desc
}

func (s *Symbol) String() string {
	return "Symbol(" + s.desc + ")"
}

// Key is a field name: either a string or a *Symbol.
// The zero Key is the empty string name.
type Key struct {
	name string
	sym  *Symbol
}

// StringKey creates a string field name.
func StringKey(name string) Key {
	return Key{name: name}
}

// SymbolKey creates a symbolic field name.
func SymbolKey(sym *Symbol) Key {
	return Key{sym: sym}
}

// IsSymbol reports whether the key is symbolic.
func (k Key) IsSymbol() bool {
	return k.sym != nil
}

// Name returns the string name. It is empty for symbolic keys.
func (k Key) Name() string {
	return k.name
}

// Symbol returns the symbol of a symbolic key, nil otherwise.
func (k Key) Symbol() *Symbol {
	return k.sym
}

func (k Key) String() string {
	if k.sym != nil {
		return k.sym.String()
	}
	return k.name
}

// Field is one named entry of an Object.
type Field struct {
	Name  Key
	Value Value
}

// F is a shorthand for a string-named Field.
// Example: NewObject(F("name", String("cart")), F("count", Number(5)))
func F(name string, v Value) Field {
	return Field{Name: StringKey(name), Value: v}
}

// Object is an ordered keyed collection. The pointer is its identity, which
// is what makes self-referencing structures expressible.
type Object struct {
	fields []Field
	index  map[Key]int
}

func (*Object) Kind() Kind { return KindObject }
func (*Object) value() {}

// NewObject creates an Object from fields in the given order.
// Later duplicates replace earlier ones in place.
func NewObject(fields ...Field) *Object {
	obj := &Object{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[Key]int, len(fields)),
	}
	for _, f := range fields {
		obj.SetKey(f.Name, f.Value)
	}
	return obj
}

// NewObjectFromFields creates an Object that takes ownership of fields.
// Field names must be unique; the caller must not reuse the slice.
func NewObjectFromFields(fields []Field) *Object {
	obj := &Object{fields: fields, index: make(map[Key]int, len(fields))}
	for i, f := range fields {
		obj.index[f.Name] = i
	}
	return obj
}

// Len returns the number of fields.
func (o *Object) Len() int {
	return len(o.fields)
}

// Fields returns a copy of the fields in stored order.
func (o *Object) Fields() []Field {
	out := make([]Field, len(o.fields))
	copy(out, o.fields)
	return out
}

// Keys returns the field names in stored order.
func (o *Object) Keys() []Key {
	keys := make([]Key, len(o.fields))
	for i, f := range o.fields {
		keys[i] = f.Name
	}
	return keys
}

// Get returns the value of a string-named field.
func (o *Object) Get(name string) (Value, bool) {
	return o.GetKey(StringKey(name))
}

// GetKey returns the value of the field with the given name.
func (o *Object) GetKey(k Key) (Value, bool) {
	if i, ok := o.index[k]; ok {
		return o.fields[i].Value, true
	}
	return nil, false
}

// Set assigns a string-named field. See SetKey.
func (o *Object) Set(name string, v Value) {
	o.SetKey(StringKey(name), v)
}

// SetKey replaces the value of an existing field in place, or appends a new
// field at the end.
func (o *Object) SetKey(k Key, v Value) {
	if i, ok := o.index[k]; ok {
		o.fields[i].Value = v
		return
	}
	if o.index == nil {
		o.index = make(map[Key]int)
	}
	o.index[k] = len(o.fields)
	o.fields = append(o.fields, Field{Name: k, Value: v})
}
