package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/deepsort/internal/value"
)

// DecodeYAML reads the first YAML document, keeping mapping key order.
//
// Timestamps and binary scalars become opaque values. Aliases resolve to
// the same decoded container as their anchor, so a recursive alias yields
// a cyclic value. An empty stream decodes to Null.
func DecodeYAML(r io.Reader) (value.Value, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return value.Null{}, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	d := &yamlDecoder{memo: make(map[*yaml.Node]value.Value)}
	v, err := d.node(&doc)
	if err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return v, nil
}

type yamlDecoder struct {
	memo map[*yaml.Node]value.Value
}

func (d *yamlDecoder) node(n *yaml.Node) (value.Value, error) {
	if v, ok := d.memo[n]; ok {
		return v, nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.Null{}, nil
		}
		return d.node(n.Content[0])

	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("line %d: unresolved alias %q", n.Line, n.Value)
		}
		return d.node(n.Alias)

	case yaml.MappingNode:
		obj := value.NewObject()
		d.memo[n] = obj
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, err := yamlKey(n.Content[i])
			if err != nil {
				return nil, err
			}
			v, err := d.node(n.Content[i+1])
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", key, err)
			}
			obj.Set(key, v)
		}
		return obj, nil

	case yaml.SequenceNode:
		arr := make(value.Array, len(n.Content))
		d.memo[n] = arr
		for i, c := range n.Content {
			v, err := d.node(c)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = v
		}
		return arr, nil

	case yaml.ScalarNode:
		return yamlScalar(n)
	}
	return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", n.Line, n.Kind)
}

func yamlKey(n *yaml.Node) (string, error) {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: mapping keys must be scalars", n.Line)
	}
	return n.Value, nil
}

func yamlScalar(n *yaml.Node) (value.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return value.Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return value.Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return value.Number(f), nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return nil, err
		}
		return value.NewOpaque(value.OpaqueTemporal, t), nil
	case "!!binary":
		raw := strings.Join(strings.Fields(n.Value), "")
		data, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid binary: %w", n.Line, err)
		}
		return value.NewOpaque(value.OpaqueBinary, data), nil
	}
	// !!str and application tags keep their text.
	return value.String(n.Value), nil
}

// EncodeYAML writes v as a YAML document, fields in stored order.
func EncodeYAML(w io.Writer, v value.Value, indent int) error {
	n, err := yamlNode(v)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if indent <= 0 {
		indent = 2
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(indent)
	if err := enc.Encode(n); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func yamlNode(v value.Value) (*yaml.Node, error) {
	switch val := v.(type) {
	case nil, value.Null:
		return scalarNode("!!null", "null"), nil
	case value.String:
		return scalarNode("!!str", string(val)), nil
	case value.Number:
		return yamlNumber(float64(val)), nil
	case value.Bool:
		if val {
			return scalarNode("!!bool", "true"), nil
		}
		return scalarNode("!!bool", "false"), nil
	case value.Array:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i, elem := range val {
			c, err := yamlNode(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	case *value.Object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, f := range val.Fields() {
			if f.Name.IsSymbol() {
				return nil, fmt.Errorf("%w: symbolic field name %s", value.ErrUnencodable, f.Name)
			}
			c, err := yamlNode(f.Value)
			if err != nil {
				return nil, fmt.Errorf("value for key %q: %w", f.Name.Name(), err)
			}
			n.Content = append(n.Content, scalarNode("!!str", f.Name.Name()), c)
		}
		return n, nil
	case *value.Opaque:
		return yamlOpaque(val)
	}
	return nil, fmt.Errorf("%w: unknown Value type %T", value.ErrUnencodable, v)
}

func yamlNumber(f float64) *yaml.Node {
	switch {
	case math.IsNaN(f):
		return scalarNode("!!float", ".nan")
	case math.IsInf(f, 1):
		return scalarNode("!!float", ".inf")
	case math.IsInf(f, -1):
		return scalarNode("!!float", "-.inf")
	}
	s := value.FormatNumber(f)
	if strings.ContainsAny(s, ".e") {
		return scalarNode("!!float", s)
	}
	return scalarNode("!!int", s)
}

func yamlOpaque(o *value.Opaque) (*yaml.Node, error) {
	switch p := o.Payload().(type) {
	case time.Time:
		return scalarNode("!!timestamp", p.Format(time.RFC3339Nano)), nil
	case []byte:
		return scalarNode("!!binary", base64.StdEncoding.EncodeToString(p)), nil
	}
	if s, ok := value.OpaqueText(o); ok {
		return scalarNode("!!str", s), nil
	}
	return nil, fmt.Errorf("%w: %s payload %T", value.ErrUnencodable, o.OpaqueKind(), o.Payload())
}

func scalarNode(tag, v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v}
}
