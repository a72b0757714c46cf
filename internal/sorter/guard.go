package sorter

import (
	"strconv"
	"strings"

	"github.com/roach88/deepsort/internal/value"
)

// token is the identity of a container on the active path. Objects are
// identified by pointer; arrays by backing pointer and length, which only
// repeat along one path when an array contains itself.
type token struct {
	obj  *value.Object
	elem *value.Value
	n    int
}

func objectToken(obj *value.Object) token {
	return token{obj: obj}
}

// arrayToken reports false for empty arrays, which cannot contain anything.
func arrayToken(arr value.Array) (token, bool) {
	if len(arr) == 0 {
		return token{}, false
	}
	return token{elem: &arr[0], n: len(arr)}, true
}

// step is one edge of the active path: a field name or an array index.
type step struct {
	key   value.Key
	index int
	field bool
}

// cycleGuard tracks containers currently being visited.
//
// Enter before descending into a container, Leave after it is normalized.
// Entries are removed on the way out, so shared subtrees reached along
// different paths never trip the guard.
type cycleGuard struct {
	visiting map[token]int // token -> path depth at entry
	path     []step
}

func newCycleGuard() *cycleGuard {
	return &cycleGuard{visiting: make(map[token]int)}
}

// Enter marks tok as in progress. It returns a *CycleError when tok is
// already on the active path.
func (g *cycleGuard) Enter(tok token, kind value.Kind) error {
	if depth, ok := g.visiting[tok]; ok {
		return &CycleError{
			Kind:  kind,
			Path:  renderPath(g.path),
			First: renderPath(g.path[:depth]),
		}
	}
	g.visiting[tok] = len(g.path)
	return nil
}

// Leave removes tok from the active path.
func (g *cycleGuard) Leave(tok token) {
	delete(g.visiting, tok)
}

func (g *cycleGuard) pushField(k value.Key) {
	g.path = append(g.path, step{key: k, field: true})
}

func (g *cycleGuard) pushIndex(i int) {
	g.path = append(g.path, step{index: i})
}

func (g *cycleGuard) pop() {
	g.path = g.path[:len(g.path)-1]
}

// renderPath formats steps JSONPath-style: $.name, $["odd key"], $[0].
func renderPath(steps []step) string {
	var b strings.Builder
	b.WriteByte('$')
	for _, s := range steps {
		switch {
		case !s.field:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.index))
			b.WriteByte(']')
		case s.key.IsSymbol():
			b.WriteByte('[')
			b.WriteString(s.key.String())
			b.WriteByte(']')
		case isIdentifier(s.key.Name()):
			b.WriteByte('.')
			b.WriteString(s.key.Name())
		default:
			b.WriteByte('[')
			b.WriteString(strconv.Quote(s.key.Name()))
			b.WriteByte(']')
		}
	}
	return b.String()
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
