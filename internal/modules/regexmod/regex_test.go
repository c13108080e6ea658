package regexmod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latch-lang/latch/internal/value"
)

func TestMatchRequiresWholeString(t *testing.T) {
	v, err := Module()["match"].Impl([]value.Value{value.Str(`\d+`), value.Str("123")})
	require.Nil(t, err)
	assert.True(t, v.AsBool())

	v, err = Module()["match"].Impl([]value.Value{value.Str(`\d+`), value.Str("123abc")})
	require.Nil(t, err)
	assert.False(t, v.AsBool())
}

func TestSearchFindsFirstMatch(t *testing.T) {
	v, err := Module()["search"].Impl([]value.Value{value.Str(`\d+`), value.Str("abc123def456")})
	require.Nil(t, err)
	assert.Equal(t, "123", v.AsString())
}

func TestSearchNoMatchReturnsNull(t *testing.T) {
	v, err := Module()["search"].Impl([]value.Value{value.Str(`\d+`), value.Str("no numbers here")})
	require.Nil(t, err)
	assert.True(t, v.IsNull())
}

func TestFindallReturnsAllMatches(t *testing.T) {
	v, err := Module()["findall"].Impl([]value.Value{value.Str(`\w+`), value.Str("one two three")})
	require.Nil(t, err)
	items := v.AsList().Items
	require.Len(t, items, 3)
	assert.Equal(t, "two", items[1].AsString())
}

func TestSplitOnPattern(t *testing.T) {
	v, err := Module()["split"].Impl([]value.Value{value.Str(`,\s*`), value.Str("a, b,c")})
	require.Nil(t, err)
	items := v.AsList().Items
	require.Len(t, items, 3)
	assert.Equal(t, "c", items[2].AsString())
}

func TestReplaceSubstitutes(t *testing.T) {
	v, err := Module()["replace"].Impl([]value.Value{value.Str(`\d+`), value.Str("v1 and v2"), value.Str("N")})
	require.Nil(t, err)
	assert.Equal(t, "vN and vN", v.AsString())
}

func TestInvalidPatternIsValueError(t *testing.T) {
	_, err := Module()["match"].Impl([]value.Value{value.Str("["), value.Str("x")})
	require.NotNil(t, err)
	assert.Equal(t, value.ValueError, err.Kind)
}
