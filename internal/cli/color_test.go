package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	buf := &bytes.Buffer{}

	assert.True(t, colorEnabled("on", buf))
	assert.False(t, colorEnabled("off", buf))
	assert.False(t, colorEnabled("auto", buf), "buffers are never terminals")
}

func TestNewPainter(t *testing.T) {
	buf := &bytes.Buffer{}

	on := newPainter("on", buf, color.FgRed)
	assert.True(t, strings.HasPrefix(on.Sprint("x"), "\x1b[31mx\x1b["))

	off := newPainter("off", buf, color.FgRed)
	assert.Equal(t, "x", off.Sprint("x"))
}
