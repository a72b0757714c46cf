package codec

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/roach88/deepsort/internal/value"
)

// DecodeMsgpack reads exactly one MessagePack value, keeping map key
// order. Map keys must be strings.
func DecodeMsgpack(r io.Reader) (value.Value, error) {
	dec := msgpack.NewDecoder(r)
	v, err := decodeMsgpack(dec)
	if err != nil {
		return nil, fmt.Errorf("decode msgpack: %w", err)
	}
	if _, err := dec.PeekCode(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, fmt.Errorf("decode msgpack: %w", err)
		}
		return nil, fmt.Errorf("decode msgpack: unexpected data after top-level value")
	}
	return v, nil
}

func decodeMsgpack(dec *msgpack.Decoder) (value.Value, error) {
	c, err := dec.PeekCode()
	if err != nil {
		return nil, err
	}

	switch {
	case msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32:
		n, err := dec.DecodeMapLen()
		if err != nil {
			return nil, err
		}
		obj := value.NewObject()
		for i := 0; i < n; i++ {
			key, err := dec.DecodeString()
			if err != nil {
				return nil, fmt.Errorf("map key %d: %w", i, err)
			}
			v, err := decodeMsgpack(dec)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", key, err)
			}
			obj.Set(key, v)
		}
		return obj, nil

	case msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32:
		n, err := dec.DecodeArrayLen()
		if err != nil {
			return nil, err
		}
		arr := make(value.Array, 0, n)
		for i := 0; i < n; i++ {
			v, err := decodeMsgpack(dec)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr = append(arr, v)
		}
		return arr, nil
	}

	// Scalars, binary and timestamps: nil, bool, int64, uint64, float64,
	// string, []byte or time.Time.
	raw, err := dec.DecodeInterfaceLoose()
	if err != nil {
		return nil, err
	}
	return value.FromNative(raw), nil
}

// EncodeMsgpack writes v as MessagePack, maps in stored field order.
// Integral numbers are written as integers.
func EncodeMsgpack(w io.Writer, v value.Value) error {
	if err := encodeMsgpack(msgpack.NewEncoder(w), v); err != nil {
		return fmt.Errorf("encode msgpack: %w", err)
	}
	return nil
}

func encodeMsgpack(enc *msgpack.Encoder, v value.Value) error {
	switch val := v.(type) {
	case nil, value.Null:
		return enc.EncodeNil()
	case value.String:
		return enc.EncodeString(string(val))
	case value.Number:
		f := float64(val)
		if f == math.Trunc(f) && math.Abs(f) < 1<<63 {
			return enc.EncodeInt(int64(f))
		}
		return enc.EncodeFloat64(f)
	case value.Bool:
		return enc.EncodeBool(bool(val))
	case value.Array:
		if err := enc.EncodeArrayLen(len(val)); err != nil {
			return err
		}
		for i, elem := range val {
			if err := encodeMsgpack(enc, elem); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		return nil
	case *value.Object:
		fields := val.Fields()
		if err := enc.EncodeMapLen(len(fields)); err != nil {
			return err
		}
		for _, f := range fields {
			if f.Name.IsSymbol() {
				return fmt.Errorf("%w: symbolic field name %s", value.ErrUnencodable, f.Name)
			}
			if err := enc.EncodeString(f.Name.Name()); err != nil {
				return err
			}
			if err := encodeMsgpack(enc, f.Value); err != nil {
				return fmt.Errorf("value for key %q: %w", f.Name.Name(), err)
			}
		}
		return nil
	case *value.Opaque:
		switch p := val.Payload().(type) {
		case time.Time:
			return enc.EncodeTime(p)
		case []byte:
			return enc.EncodeBytes(p)
		}
		if s, ok := value.OpaqueText(val); ok {
			return enc.EncodeString(s)
		}
		return fmt.Errorf("%w: %s payload %T", value.ErrUnencodable, val.OpaqueKind(), val.Payload())
	}
	return fmt.Errorf("%w: unknown Value type %T", value.ErrUnencodable, v)
}
