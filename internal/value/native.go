package value

import (
	"container/list"
	"encoding/json"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
	"unsafe"
)

var (
	valueType    = reflect.TypeFor[Value]()
	errorType    = reflect.TypeFor[error]()
	numberType   = reflect.TypeFor[json.Number]()
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
	locationType = reflect.TypeFor[*time.Location]()
	regexpType   = reflect.TypeFor[*regexp.Regexp]()
	listType     = reflect.TypeFor[*list.List]()
	syncMapType  = reflect.TypeFor[*sync.Map]()
	emptyStruct  = reflect.TypeFor[struct{}]()
)

// FromNative classifies an arbitrary Go value into a Value.
//
// Opaque kinds are recognized before any structural fallback: temporal
// values, regexps, errors, funcs, chans, hash containers, byte slices and
// iterable containers are wrapped as *Opaque without being inspected.
// Pointers, maps and slices are memoized by identity, so a Go structure
// that references itself becomes a cyclic Object graph.
//
// FromNative never fails. Unrecognized kinds become OpaqueOther.
func FromNative(v any) Value {
	if val, ok := v.(Value); ok {
		return val
	}
	c := &converter{memo: make(map[memoKey]Value)}
	return c.convert(reflect.ValueOf(v), nil)
}

type memoKey struct {
	typ reflect.Type
	ptr uintptr
	n   int
}

type converter struct {
	memo map[memoKey]Value
}

func (c *converter) convert(rv reflect.Value, aliases []memoKey) Value {
	for rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Null{}
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() || isNil(rv) {
		return Null{}
	}
	if val, ok := rv.Interface().(Value); ok {
		return val
	}

	if key, ok := identityOf(rv); ok {
		if val, seen := c.memo[key]; seen {
			return val
		}
		aliases = append(aliases, key)
	}

	if kind, ok := opaqueKindOf(rv.Type()); ok {
		o := NewOpaque(kind, rv.Interface())
		c.remember(aliases, o)
		return o
	}

	switch rv.Kind() {
	case reflect.Pointer:
		return c.convert(rv.Elem(), aliases)
	case reflect.Slice, reflect.Array:
		arr := make(Array, rv.Len())
		c.remember(aliases, arr)
		for i := range arr {
			arr[i] = c.convert(rv.Index(i), nil)
		}
		return arr
	case reflect.Map:
		obj := &Object{}
		c.remember(aliases, obj)
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return strings.Compare(a.String(), b.String())
		})
		for _, k := range keys {
			obj.Set(k.String(), c.convert(rv.MapIndex(k), nil))
		}
		return obj
	case reflect.Struct:
		obj := &Object{}
		c.remember(aliases, obj)
		if !rv.CanAddr() {
			cp := reflect.New(rv.Type()).Elem()
			cp.Set(rv)
			rv = cp
		}
		visiting := make(map[memoKey]struct{}, len(aliases))
		for _, k := range aliases {
			visiting[k] = struct{}{}
		}
		c.structFields(rv, obj, false, visiting)
		return obj
	}
	return scalar(rv)
}

func (c *converter) remember(aliases []memoKey, v Value) {
	for _, k := range aliases {
		c.memo[k] = v
	}
}

// structFields adds exported fields using encoding/json naming rules.
// Fields promoted from embedded structs never override direct fields.
// rv must be addressable. visiting holds the embedded pointers on the
// current embedding path; a pointer already on it is not walked again.
func (c *converter) structFields(rv reflect.Value, obj *Object, promoted bool, visiting map[memoKey]struct{}) {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		fv := rv.Field(i)

		if sf.Anonymous && name == "" {
			et := sf.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if _, opaque := opaqueKindOf(et); !opaque && et.Kind() == reflect.Struct {
				c.embedded(fv, sf.IsExported(), obj, visiting)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		if hasOption(opts, "omitempty") && isEmpty(fv) {
			continue
		}
		if _, exists := obj.Get(name); exists && promoted {
			continue
		}
		obj.Set(name, c.convert(fv, nil))
	}
}

// embedded promotes the fields of an embedded struct or struct pointer.
func (c *converter) embedded(fv reflect.Value, exported bool, obj *Object, visiting map[memoKey]struct{}) {
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			return
		}
		key, _ := identityOf(fv)
		if _, seen := visiting[key]; seen {
			return
		}
		visiting[key] = struct{}{}
		defer delete(visiting, key)
		fv = fv.Elem()
	}
	if !exported {
		// Fields reached through an unexported embedding are read-only;
		// re-derive the struct so its exported fields can be converted.
		fv = reflect.NewAt(fv.Type(), unsafe.Pointer(fv.UnsafeAddr())).Elem()
	}
	c.structFields(fv, obj, true, visiting)
}

func scalar(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.String:
		if rv.Type() == numberType {
			if f, err := strconv.ParseFloat(rv.String(), 64); err == nil {
				return Number(f)
			}
		}
		return String(rv.String())
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Number(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float())
	}
	return NewOpaque(OpaqueOther, rv.Interface())
}

// opaqueKindOf reports whether values of type t are passed through untouched.
func opaqueKindOf(t reflect.Type) (OpaqueKind, bool) {
	switch t {
	case timeType, durationType, locationType, locationType.Elem():
		return OpaqueTemporal, true
	case regexpType, regexpType.Elem():
		return OpaquePattern, true
	case listType, listType.Elem():
		return OpaqueIterable, true
	case syncMapType, syncMapType.Elem():
		return OpaqueHashMap, true
	}
	if t.Implements(errorType) {
		return OpaqueError, true
	}

	switch t.Kind() {
	case reflect.Func:
		return OpaqueCallable, true
	case reflect.Chan:
		return OpaquePending, true
	case reflect.Complex64, reflect.Complex128, reflect.UnsafePointer, reflect.Uintptr:
		return OpaqueOther, true
	case reflect.Map:
		if t.Elem() == emptyStruct {
			return OpaqueHashSet, true
		}
		if t.Key().Kind() != reflect.String {
			return OpaqueHashMap, true
		}
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return OpaqueBinary, true
		}
	}

	if hasIterator(t) {
		return OpaqueIterable, true
	}
	return OpaqueOther, false
}

// hasIterator reports whether t has an All() method returning a func,
// the shape of range-over-func containers.
func hasIterator(t reflect.Type) bool {
	m, ok := t.MethodByName("All")
	if !ok {
		return false
	}
	// Method types of concrete types include the receiver.
	return m.Type.NumIn() == 1 && m.Type.NumOut() == 1 && m.Type.Out(0).Kind() == reflect.Func
}

func identityOf(rv reflect.Value) (memoKey, bool) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan:
		return memoKey{typ: rv.Type(), ptr: rv.Pointer()}, true
	case reflect.Slice:
		if rv.Len() > 0 {
			return memoKey{typ: rv.Type(), ptr: rv.Pointer(), n: rv.Len()}, true
		}
	}
	return memoKey{}, false
}

func isNil(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func isEmpty(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return rv.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return rv.IsZero()
	}
	return false
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == want {
			return true
		}
	}
	return false
}
