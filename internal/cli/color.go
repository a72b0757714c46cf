package cli

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// colorEnabled resolves a --color mode for w. "auto" colors only
// terminals and honors NO_COLOR.
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newPainter(mode string, w io.Writer, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if colorEnabled(mode, w) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
