package value

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/latch-lang/latch/internal/token"
)

func TestNewErrorFormatsMessage(t *testing.T) {
	err := NewError(TypeError, token.Span{}, "expected %s, got %s", "int", "string")
	assert.Equal(t, TypeError, err.Kind)
	assert.Equal(t, "expected int, got string", err.Message)
	assert.True(t, err.Data.IsNull())
}

func TestRuntimeErrorStringWithAndWithoutSpan(t *testing.T) {
	noSpan := NewError(ValueError, token.Span{}, "bad value")
	assert.Equal(t, "ValueError: bad value", noSpan.Error())

	withSpan := NewError(IndexError, token.Span{File: "script.latch", Line: 3, Col: 5}, "out of range")
	assert.Equal(t, "script.latch:3:5: IndexError: out of range", withSpan.Error())
}

func TestRuntimeErrorToDictOmitsDataWhenAbsent(t *testing.T) {
	err := NewError(KeyError, token.Span{}, "missing key %q", "foo")
	d := err.ToDict().AsDict()
	assert.Equal(t, "KeyError", d.Entries["kind"].AsString())
	assert.Equal(t, `missing key "foo"`, d.Entries["message"].AsString())
	_, hasData := d.Entries["data"]
	assert.False(t, hasData)
}

func TestRuntimeErrorToDictIncludesData(t *testing.T) {
	err := &RuntimeError{Kind: AssertionError, Message: "boom", Data: Str("payload")}
	d := err.ToDict().AsDict()
	assert.Equal(t, "payload", d.Entries["data"].AsString())
}
