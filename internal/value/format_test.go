package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBareStringVsRepr(t *testing.T) {
	assert.Equal(t, "hello", Format(Str("hello")))
	assert.Equal(t, `"hello"`, Repr(Str("hello")))
}

func TestFormatNestedStringsAreQuoted(t *testing.T) {
	l := NewList([]Value{Str("a"), Str("b")})
	assert.Equal(t, `["a", "b"]`, Format(l))
}

func TestFormatFloatShortestRoundTrip(t *testing.T) {
	assert.Equal(t, "1.5", Format(Float(1.5)))
	assert.Equal(t, "1.0", Format(Float(1.0)))
}

func TestFormatFloatExponentOutsideRange(t *testing.T) {
	small := Format(Float(0.00001))
	assert.Contains(t, small, "e")
	big := Format(Float(1e16))
	assert.Contains(t, big, "e")
}

func TestFormatDictSortedKeys(t *testing.T) {
	d := NewDict()
	d.Set("b", Int(2))
	d.Set("a", Int(1))
	assert.Equal(t, `{"a": 1, "b": 2}`, Format(DictValue(d)))
}

func TestFormatNullAndBool(t *testing.T) {
	assert.Equal(t, "null", Format(Null))
	assert.Equal(t, "true", Format(Bool(true)))
	assert.Equal(t, "false", Format(Bool(false)))
}
