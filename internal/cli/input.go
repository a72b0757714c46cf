package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/roach88/deepsort/internal/codec"
	"github.com/roach88/deepsort/internal/value"
)

// StdinSource is the source name used for standard input.
const StdinSource = "-"

// Document is a decoded input document.
type Document struct {
	Source string       // file path, or StdinSource
	Format codec.Format // format it was decoded from
	Value  value.Value
}

// DisplayName returns the source as shown to users.
func (d *Document) DisplayName() string {
	if d.Source == StdinSource {
		return "<stdin>"
	}
	return d.Source
}

// LoadError represents an error that occurred while reading a document.
type LoadError struct {
	Code    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadDocument reads and decodes the document at path, or stdin when path
// is empty or StdinSource. formatName overrides detection from the file
// extension; stdin defaults to JSON.
func LoadDocument(path, formatName string, stdin io.Reader) (*Document, error) {
	if path == "" {
		path = StdinSource
	}

	format := codec.FormatJSON
	if formatName != "" {
		f, err := codec.ParseFormat(formatName)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeGeneric, Message: "invalid --input", Err: err}
		}
		format = f
	} else if path != StdinSource {
		format = codec.DetectFormat(path)
	}

	r := stdin
	if path != StdinSource {
		f, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("file not found: %s", path)}
		}
		if err != nil {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error opening %s", path), Err: err}
		}
		defer f.Close()

		info, err := f.Stat()
		if err == nil && info.IsDir() {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a file: %s", path)}
		}
		r = f
	}

	v, err := codec.Decode(format, r, path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeDecodeFailed, Message: fmt.Sprintf("cannot decode %s as %s", displayName(path), format), Err: err}
	}
	return &Document{Source: path, Format: format, Value: v}, nil
}

func displayName(path string) string {
	return (&Document{Source: path}).DisplayName()
}

// writeDocument replaces the file at path, keeping its permissions.
func writeDocument(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, data, mode)
}
