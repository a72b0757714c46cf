package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/deepsort/internal/value"
)

func TestDecodeCUEPreservesDeclarationOrder(t *testing.T) {
	src := `
zeta: 1
alpha: {
	y: [3, 1, 2]
	x: "s"
}
#Schema: {a: 1}
_hidden: 2
ratio: 1.5
on: true
none: null
`
	v, err := DecodeCUE([]byte(src), "doc.cue")
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"alpha":{"y":[3,1,2],"x":"s"},"ratio":1.5,"on":true,"none":null}`, canon(t, v))
}

func TestDecodeCUEBytes(t *testing.T) {
	v, err := DecodeCUE([]byte(`raw: 'hi'`), "doc.cue")
	require.NoError(t, err)

	raw, _ := v.(*value.Object).Get("raw")
	o, ok := raw.(*value.Opaque)
	require.True(t, ok)
	assert.Equal(t, value.OpaqueBinary, o.OpaqueKind())
	assert.Equal(t, []byte("hi"), o.Payload())
}

func TestDecodeCUEErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
	}{
		{"syntax", `a: {`, "decode cue"},
		{"conflict", "a: 1\na: 2", "decode cue"},
		{"incomplete", `a: int`, "not concrete"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCUE([]byte(tt.src), "doc.cue")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
