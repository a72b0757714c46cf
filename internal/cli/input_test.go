package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/deepsort/internal/codec"
	"github.com/roach88/deepsort/internal/value"
)

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "doc.yml")
	require.NoError(t, os.WriteFile(yml, []byte("b: 1\na: 2\n"), 0o644))
	noExt := filepath.Join(dir, "doc")
	require.NoError(t, os.WriteFile(noExt, []byte("b: 1\n"), 0o644))

	tests := []struct {
		name   string
		path   string
		format string
		stdin  string
		want   codec.Format
		source string
	}{
		{"stdin default", "", "", `{"a": 1}`, codec.FormatJSON, StdinSource},
		{"stdin dash", "-", "yaml", "a: 1\n", codec.FormatYAML, StdinSource},
		{"extension", yml, "", "", codec.FormatYAML, yml},
		{"override", noExt, "yaml", "", codec.FormatYAML, noExt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := LoadDocument(tt.path, tt.format, strings.NewReader(tt.stdin))
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.Format)
			assert.Equal(t, tt.source, doc.Source)
			_, ok := doc.Value.(*value.Object)
			assert.True(t, ok)
		})
	}
}

func TestLoadDocumentErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		format string
		code   string
	}{
		{"missing", "testdata/input/none.json", "", ErrCodeNotFound},
		{"directory", "testdata", "", ErrCodeNotFound},
		{"bad format", "testdata/input/basic.json", "toml", ErrCodeGeneric},
		{"undecodable", "testdata/input/bad.json", "", ErrCodeDecodeFailed},
		{"wrong format", "testdata/input/basic.json", "msgpack", ErrCodeDecodeFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDocument(tt.path, tt.format, strings.NewReader(""))
			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, tt.code, loadErr.Code)
			assert.True(t, strings.HasPrefix(err.Error(), tt.code+": "))
		})
	}
}

func TestDocumentDisplayName(t *testing.T) {
	assert.Equal(t, "<stdin>", (&Document{Source: StdinSource}).DisplayName())
	assert.Equal(t, "a.json", (&Document{Source: "a.json"}).DisplayName())
}
