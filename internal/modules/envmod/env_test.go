package envmod

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latch-lang/latch/internal/value"
)

func TestGetReturnsExistingVar(t *testing.T) {
	t.Setenv("LATCH_TEST_VAR", "present")
	v, err := Module()["get"].Impl([]value.Value{value.Str("LATCH_TEST_VAR")})
	require.Nil(t, err)
	assert.Equal(t, "present", v.AsString())
}

func TestGetMissingVarWithoutDefaultIsNull(t *testing.T) {
	os.Unsetenv("LATCH_TEST_MISSING")
	v, err := Module()["get"].Impl([]value.Value{value.Str("LATCH_TEST_MISSING")})
	require.Nil(t, err)
	assert.True(t, v.IsNull())
}

func TestGetMissingVarWithDefault(t *testing.T) {
	os.Unsetenv("LATCH_TEST_MISSING")
	v, err := Module()["get"].Impl([]value.Value{value.Str("LATCH_TEST_MISSING"), value.Str("fallback")})
	require.Nil(t, err)
	assert.Equal(t, "fallback", v.AsString())
}

func TestSetThenGetRoundTrip(t *testing.T) {
	_, err := Module()["set"].Impl([]value.Value{value.Str("LATCH_TEST_SET"), value.Str("x")})
	require.Nil(t, err)
	assert.Equal(t, "x", os.Getenv("LATCH_TEST_SET"))
}

func TestListIncludesSetVars(t *testing.T) {
	t.Setenv("LATCH_TEST_LIST", "yes")
	v, err := Module()["list"].Impl(nil)
	require.Nil(t, err)
	d := v.AsDict()
	assert.Equal(t, "yes", d.Entries["LATCH_TEST_LIST"].AsString())
}
