package sorter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/deepsort/internal/value"
)

func TestComparePrimitives(t *testing.T) {
	c := NewComparator()
	nan := value.Number(math.NaN())

	tests := []struct {
		name      string
		a, b      value.Value
		ascending bool
		expected  int
	}{
		{"strings ascending", value.String("a"), value.String("b"), true, -1},
		{"strings descending", value.String("a"), value.String("b"), false, 1},
		{"equal strings", value.String("x"), value.String("x"), true, 0},
		{"numbers ascending", value.Number(1), value.Number(2), true, -1},
		{"numbers descending", value.Number(1), value.Number(2), false, 1},
		{"equal numbers", value.Number(5), value.Number(5), false, 0},
		{"nan vs number ascending", nan, value.Number(1), true, 1},
		{"nan vs number descending", nan, value.Number(1), false, 1},
		{"number vs nan", value.Number(1), nan, true, -1},
		{"number vs nan descending", value.Number(1), nan, false, -1},
		{"nan vs nan", nan, nan, true, 0},
		{"infinity below nan", value.Number(math.Inf(1)), nan, true, -1},
		{"false before true", value.Bool(false), value.Bool(true), true, -1},
		{"true before false descending", value.Bool(true), value.Bool(false), false, -1},
		{"equal bools", value.Bool(true), value.Bool(true), true, 0},
		{"string vs number", value.String("1"), value.Number(1), true, 0},
		{"number vs bool", value.Number(0), value.Bool(false), false, 0},
		{"null vs string", value.Null{}, value.String("a"), true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.ComparePrimitives(tt.a, tt.b, tt.ascending))
		})
	}
}

func TestCompareFieldNames(t *testing.T) {
	c := NewComparator()
	sym := value.SymbolKey(value.NewSymbol("s"))
	other := value.SymbolKey(value.NewSymbol("t"))

	tests := []struct {
		name      string
		a, b      value.Key
		ascending bool
		expected  int
	}{
		{"strings ascending", value.StringKey("a"), value.StringKey("b"), true, -1},
		{"strings descending", value.StringKey("a"), value.StringKey("b"), false, 1},
		{"equal strings", value.StringKey("a"), value.StringKey("a"), true, 0},
		{"symbol after string", sym, value.StringKey("z"), true, 1},
		{"symbol after string descending", sym, value.StringKey("z"), false, 1},
		{"string before symbol", value.StringKey("a"), sym, false, -1},
		{"symbols equal", sym, other, true, 0},
		{"symbols equal descending", other, sym, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.CompareFieldNames(tt.a, tt.b, tt.ascending))
		})
	}
}
