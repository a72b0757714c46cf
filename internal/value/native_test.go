package value

import (
	"container/list"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct {
	Name string `json:"name"`
	Next *node  `json:"next,omitempty"`
}

type Base struct {
	ID int `json:"id"`
}

type tagged struct {
	Base
	Title   string `json:"title"`
	Skipped string `json:"-"`
	Empty   string `json:"empty,omitempty"`
	Plain   bool
	hidden  int
}

type selfEmbed struct {
	*selfEmbed
	Name string `json:"name"`
}

type inner struct {
	Score int `json:"score"`
	note  string
}

type wrapsInner struct {
	inner
	Title string `json:"title"`
}

type wrapsInnerPtr struct {
	*inner
	Title string `json:"title"`
}

type stack struct{ items []int }

func (s *stack) All() func(func(int) bool) {
	return func(yield func(int) bool) {
		for _, it := range s.items {
			if !yield(it) {
				return
			}
		}
	}
}

func TestFromNativeScalars(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected Value
	}{
		{"nil", nil, Null{}},
		{"string", "hi", String("hi")},
		{"bool", true, Bool(true)},
		{"int", 42, Number(42)},
		{"int8", int8(-3), Number(-3)},
		{"uint64", uint64(7), Number(7)},
		{"float", 1.5, Number(1.5)},
		{"json number", json.Number("2.25"), Number(2.25)},
		{"nil pointer", (*node)(nil), Null{}},
		{"nil map", map[string]any(nil), Null{}},
		{"value passthrough", String("x"), String("x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromNative(tt.input))
		})
	}
}

func TestFromNativeOpaqueKinds(t *testing.T) {
	ch := make(chan int)
	tests := []struct {
		name     string
		input    any
		expected OpaqueKind
	}{
		{"time", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), OpaqueTemporal},
		{"duration", time.Second, OpaqueTemporal},
		{"regexp", regexp.MustCompile("a+"), OpaquePattern},
		{"error", errors.New("boom"), OpaqueError},
		{"func", func() {}, OpaqueCallable},
		{"chan", ch, OpaquePending},
		{"int map", map[int]string{1: "a"}, OpaqueHashMap},
		{"set", map[string]struct{}{"a": {}}, OpaqueHashSet},
		{"bytes", []byte("raw"), OpaqueBinary},
		{"list", list.New(), OpaqueIterable},
		{"iterator", &stack{items: []int{1}}, OpaqueIterable},
		{"complex", complex(1, 2), OpaqueOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromNative(tt.input)
			o, ok := got.(*Opaque)
			require.True(t, ok, "expected *Opaque, got %T", got)
			assert.Equal(t, tt.expected, o.OpaqueKind())
		})
	}
}

func TestFromNativeOpaqueKeepsPayloadIdentity(t *testing.T) {
	re := regexp.MustCompile("x")
	obj, ok := FromNative(map[string]any{"re": re}).(*Object)
	require.True(t, ok)

	v, _ := obj.Get("re")
	o, ok := v.(*Opaque)
	require.True(t, ok)
	assert.Same(t, re, o.Payload())
}

func TestFromNativeMapKeysInByteOrder(t *testing.T) {
	got := FromNative(map[string]any{"b": 1, "a": "x", "C": false})

	obj, ok := got.(*Object)
	require.True(t, ok)
	assert.Equal(t, []Key{StringKey("C"), StringKey("a"), StringKey("b")}, obj.Keys())
}

func TestFromNativeStructUsesJSONNames(t *testing.T) {
	got := FromNative(tagged{Base: Base{ID: 9}, Title: "t", Skipped: "s", Plain: true, hidden: 1})

	obj, ok := got.(*Object)
	require.True(t, ok)
	assert.Equal(t, []Key{StringKey("id"), StringKey("title"), StringKey("Plain")}, obj.Keys())
	v, _ := obj.Get("id")
	assert.Equal(t, Number(9), v)
}

func TestFromNativeSlices(t *testing.T) {
	got := FromNative([]any{"a", 1, nil, []string{"x"}})

	assert.Equal(t, Array{String("a"), Number(1), Null{}, Array{String("x")}}, got)
}

func TestFromNativeCyclicMap(t *testing.T) {
	m := map[string]any{"name": "root"}
	m["self"] = m

	obj, ok := FromNative(m).(*Object)
	require.True(t, ok)
	self, ok := obj.Get("self")
	require.True(t, ok)
	assert.Same(t, obj, self)
}

func TestFromNativeCyclicPointers(t *testing.T) {
	a := &node{Name: "a"}
	b := &node{Name: "b", Next: a}
	a.Next = b

	objA, ok := FromNative(a).(*Object)
	require.True(t, ok)
	nextB, _ := objA.Get("next")
	objB, ok := nextB.(*Object)
	require.True(t, ok)
	back, _ := objB.Get("next")
	assert.Same(t, objA, back)
}

func TestFromNativeSharedPointerMapsToSameObject(t *testing.T) {
	shared := &node{Name: "leaf"}
	got := FromNative([]*node{shared, shared})

	arr, ok := got.(Array)
	require.True(t, ok)
	require.Len(t, arr, 2)
	assert.Same(t, arr[0], arr[1])
}

func TestFromNativeSelfEmbeddedPointer(t *testing.T) {
	n := &selfEmbed{Name: "a"}
	n.selfEmbed = n

	obj, ok := FromNative(n).(*Object)
	require.True(t, ok)
	assert.Equal(t, []Key{StringKey("name")}, obj.Keys())
	v, _ := obj.Get("name")
	assert.Equal(t, String("a"), v)
}

func TestFromNativeEmbeddedPointerChain(t *testing.T) {
	a := &selfEmbed{Name: "a"}
	b := &selfEmbed{Name: "b", selfEmbed: a}
	a.selfEmbed = b

	obj, ok := FromNative(a).(*Object)
	require.True(t, ok)
	assert.Equal(t, []Key{StringKey("name")}, obj.Keys())
	v, _ := obj.Get("name")
	assert.Equal(t, String("a"), v)
}

func TestFromNativePromotesFromUnexportedEmbedding(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"by value", wrapsInner{inner: inner{Score: 7, note: "n"}, Title: "t"}},
		{"by pointer", &wrapsInnerPtr{inner: &inner{Score: 7}, Title: "t"}},
		{"inside map", map[string]any{"x": wrapsInner{inner: inner{Score: 7}, Title: "t"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, ok := FromNative(tt.input).(*Object)
			require.True(t, ok)
			if x, nested := obj.Get("x"); nested {
				obj, ok = x.(*Object)
				require.True(t, ok)
			}
			assert.Equal(t, []Key{StringKey("score"), StringKey("title")}, obj.Keys())
			v, _ := obj.Get("score")
			assert.Equal(t, Number(7), v)
		})
	}
}

func TestFromNativeNilUnexportedEmbeddedPointer(t *testing.T) {
	obj, ok := FromNative(wrapsInnerPtr{Title: "t"}).(*Object)
	require.True(t, ok)
	assert.Equal(t, []Key{StringKey("title")}, obj.Keys())
}
