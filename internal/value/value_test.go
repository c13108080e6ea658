package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(Null))
	assert.False(t, Truthy(Bool(false)))
	assert.False(t, Truthy(Int(0)))
	assert.False(t, Truthy(Float(0)))
	assert.False(t, Truthy(Str("")))
	assert.True(t, Truthy(Bool(true)))
	assert.True(t, Truthy(Int(1)))
	assert.True(t, Truthy(Str("x")))
	assert.True(t, Truthy(NewList(nil)))
	assert.True(t, Truthy(DictValue(NewDict())))
}

func TestDeepEqualNumericCrossType(t *testing.T) {
	assert.True(t, DeepEqual(Int(1), Float(1.0)))
	assert.False(t, DeepEqual(Int(1), Float(1.5)))
}

func TestDeepEqualLists(t *testing.T) {
	a := NewList([]Value{Int(1), Str("x")})
	b := NewList([]Value{Int(1), Str("x")})
	c := NewList([]Value{Int(1), Str("y")})
	assert.True(t, DeepEqual(a, b))
	assert.False(t, DeepEqual(a, c))
}

func TestDeepEqualDicts(t *testing.T) {
	a := NewDict()
	a.Set("k", Int(1))
	b := NewDict()
	b.Set("k", Int(1))
	assert.True(t, DeepEqual(DictValue(a), DictValue(b)))
	b.Set("k", Int(2))
	assert.False(t, DeepEqual(DictValue(a), DictValue(b)))
}

func TestDictSortedKeys(t *testing.T) {
	d := NewDict()
	d.Set("banana", Int(1))
	d.Set("apple", Int(2))
	d.Set("cherry", Int(3))
	assert.Equal(t, []string{"apple", "banana", "cherry"}, d.SortedKeys())
}

func TestDictDelete(t *testing.T) {
	d := NewDict()
	d.Set("a", Int(1))
	d.Set("b", Int(2))
	d.Delete("a")
	_, ok := d.Entries["a"]
	assert.False(t, ok)
	assert.Equal(t, []string{"b"}, d.Keys)
}

func TestListAliasing(t *testing.T) {
	v := NewList([]Value{Int(1)})
	alias := v
	alias.AsList().Items[0] = Int(99)
	assert.Equal(t, int64(99), v.AsList().Items[0].AsInt())
}
