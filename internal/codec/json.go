package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/roach88/deepsort/internal/value"
)

// DecodeJSON reads exactly one JSON document, keeping object key order.
// A repeated key keeps its first position and its last value.
func DecodeJSON(r io.Reader) (value.Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		if err == io.EOF {
			// Nested truncation is wrapped; a bare EOF means no input at all.
			return nil, fmt.Errorf("decode json: empty document")
		}
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if tok, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return nil, fmt.Errorf("decode json: unexpected %v after top-level value", tok)
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (value.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return value.String(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("number %s: %w", t, err)
		}
		return value.Number(f), nil
	case bool:
		return value.Bool(t), nil
	case nil:
		return value.Null{}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func decodeJSONObject(dec *json.Decoder) (*value.Object, error) {
	obj := value.NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("object key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key: unexpected %v", tok)
		}
		v, err := decodeJSONValue(dec)
		if err != nil {
			return nil, fmt.Errorf("object[%q]: %w", key, err)
		}
		obj.Set(key, v)
	}
	// Closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("unterminated object: %w", err)
	}
	return obj, nil
}

func decodeJSONArray(dec *json.Decoder) (value.Array, error) {
	arr := make(value.Array, 0)
	for dec.More() {
		v, err := decodeJSONValue(dec)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", len(arr), err)
		}
		arr = append(arr, v)
	}
	// Closing ']'.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("unterminated array: %w", err)
	}
	return arr, nil
}

// EncodeJSON writes v as canonical JSON followed by a newline, indented by
// indent spaces per level when indent > 0.
func EncodeJSON(w io.Writer, v value.Value, indent int) error {
	data, err := value.MarshalCanonical(v)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	if indent > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", strings.Repeat(" ", indent)); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		data = buf.Bytes()
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
