package value

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrUnencodable is returned when a value has no JSON representation.
var ErrUnencodable = errors.New("value cannot be encoded")

// MarshalCanonical produces compact JSON for v, emitting object fields in
// their stored order.
//
// Differences from encoding/json:
//  1. Object field order is preserved, never re-sorted
//  2. No HTML escaping (< > & are NOT escaped), U+2028/U+2029 kept literal
//  3. Numbers use the shortest round-trip form; NaN and ±Inf become null
//  4. Opaque payloads are rendered via OpaqueText
//  5. Symbol-named fields and cyclic objects are rejected
func MarshalCanonical(v Value) ([]byte, error) {
	m := &marshaler{visiting: make(map[*Object]struct{})}
	if err := m.value(v); err != nil {
		return nil, err
	}
	return m.buf.Bytes(), nil
}

type marshaler struct {
	buf      bytes.Buffer
	visiting map[*Object]struct{}
}

func (m *marshaler) value(v Value) error {
	switch val := v.(type) {
	case nil, Null:
		m.buf.WriteString("null")
	case String:
		writeString(&m.buf, string(val))
	case Number:
		m.buf.WriteString(FormatNumber(float64(val)))
	case Bool:
		m.buf.WriteString(strconv.FormatBool(bool(val)))
	case Array:
		return m.array(val)
	case *Object:
		return m.object(val)
	case *Opaque:
		return m.opaque(val)
	default:
		return fmt.Errorf("%w: unknown Value type %T", ErrUnencodable, v)
	}
	return nil
}

func (m *marshaler) array(arr Array) error {
	m.buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			m.buf.WriteByte(',')
		}
		if err := m.value(elem); err != nil {
			return fmt.Errorf("array[%d]: %w", i, err)
		}
	}
	m.buf.WriteByte(']')
	return nil
}

func (m *marshaler) object(obj *Object) error {
	if obj == nil {
		m.buf.WriteString("null")
		return nil
	}
	if _, ok := m.visiting[obj]; ok {
		return fmt.Errorf("%w: cyclic object", ErrUnencodable)
	}
	m.visiting[obj] = struct{}{}
	defer delete(m.visiting, obj)

	m.buf.WriteByte('{')
	for i, f := range obj.fields {
		if f.Name.IsSymbol() {
			return fmt.Errorf("%w: symbolic field name %s", ErrUnencodable, f.Name)
		}
		if i > 0 {
			m.buf.WriteByte(',')
		}
		writeString(&m.buf, f.Name.Name())
		m.buf.WriteByte(':')
		if err := m.value(f.Value); err != nil {
			return fmt.Errorf("value for key %q: %w", f.Name.Name(), err)
		}
	}
	m.buf.WriteByte('}')
	return nil
}

func (m *marshaler) opaque(o *Opaque) error {
	if s, ok := OpaqueText(o); ok {
		writeString(&m.buf, s)
		return nil
	}
	data, err := json.Marshal(o.payload)
	if err != nil {
		return fmt.Errorf("%w: %s payload %T: %v", ErrUnencodable, o.kind, o.payload, err)
	}
	m.buf.Write(data)
	return nil
}

// OpaqueText returns the textual rendering used for well-known opaque
// payloads. It reports false when the payload has no textual form.
func OpaqueText(o *Opaque) (string, bool) {
	switch p := o.payload.(type) {
	case time.Time:
		return p.Format(time.RFC3339Nano), true
	case time.Duration:
		return p.String(), true
	case *time.Location:
		return p.String(), true
	case time.Location:
		return p.String(), true
	case *regexp.Regexp:
		return p.String(), true
	case error:
		return p.Error(), true
	case []byte:
		return base64.StdEncoding.EncodeToString(p), true
	}
	return "", false
}

// FormatNumber renders f in the shortest form that round-trips, using the
// ECMAScript layout (plain decimal between 1e-6 and 1e21, exponent
// otherwise). NaN and infinities render as "null".
func FormatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	// Go pads exponents to two digits: 1e-07 -> 1e-7.
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + digits
}

const hexDigits = "0123456789abcdef"

// writeString writes s as a JSON string escaping only quote, backslash and
// control characters. Invalid UTF-8 is replaced with U+FFFD.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"':
				buf.WriteString(`\"`)
			case c == '\\':
				buf.WriteString(`\\`)
			case c == '\n':
				buf.WriteString(`\n`)
			case c == '\r':
				buf.WriteString(`\r`)
			case c == '\t':
				buf.WriteString(`\t`)
			case c == '\b':
				buf.WriteString(`\b`)
			case c == '\f':
				buf.WriteString(`\f`)
			case c < 0x20:
				buf.WriteString(`\u00`)
				buf.WriteByte(hexDigits[c>>4])
				buf.WriteByte(hexDigits[c&0xF])
			default:
				buf.WriteByte(c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf.WriteString("\uFFFD")
		} else {
			buf.WriteString(s[i : i+size])
		}
		i += size
	}
	buf.WriteByte('"')
}
