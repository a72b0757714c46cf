package codec

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/roach88/deepsort/internal/value"
)

// Format names a wire format.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatCUE     Format = "cue"
	FormatMsgpack Format = "msgpack"
)

// ValidFormats lists the accepted format names.
var ValidFormats = []Format{FormatJSON, FormatYAML, FormatCUE, FormatMsgpack}

// ErrUnsupported is returned when a format cannot be used in a direction.
var ErrUnsupported = errors.New("unsupported format")

// ParseFormat resolves a format name. "yml" and "mpk" are accepted aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "cue":
		return FormatCUE, nil
	case "msgpack", "mpk":
		return FormatMsgpack, nil
	}
	return "", fmt.Errorf("%w %q: must be one of %v", ErrUnsupported, name, ValidFormats)
}

// DetectFormat picks a format from a file extension, defaulting to JSON.
func DetectFormat(path string) Format {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if f, err := ParseFormat(ext); err == nil {
		return f
	}
	return FormatJSON
}

// EncodeOptions controls text output.
type EncodeOptions struct {
	// Indent is the number of spaces per nesting level. Zero writes
	// compact JSON; YAML falls back to two spaces.
	Indent int
}

// Decode reads one document in the given format. name is used in error
// positions for formats that report them.
func Decode(format Format, r io.Reader, name string) (value.Value, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(r)
	case FormatYAML:
		return DecodeYAML(r)
	case FormatCUE:
		src, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read cue: %w", err)
		}
		return DecodeCUE(src, name)
	case FormatMsgpack:
		return DecodeMsgpack(r)
	}
	return nil, fmt.Errorf("%w %q for decoding", ErrUnsupported, format)
}

// Encode writes v in the given format.
func Encode(format Format, w io.Writer, v value.Value, opts EncodeOptions) error {
	switch format {
	case FormatJSON:
		return EncodeJSON(w, v, opts.Indent)
	case FormatYAML:
		return EncodeYAML(w, v, opts.Indent)
	case FormatMsgpack:
		return EncodeMsgpack(w, v)
	}
	return fmt.Errorf("%w %q for encoding", ErrUnsupported, format)
}
