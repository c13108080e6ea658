package pathmod

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latch-lang/latch/internal/value"
)

func TestJoinCombinesSegments(t *testing.T) {
	v, err := Module()["join"].Impl([]value.Value{value.Str("a"), value.Str("b"), value.Str("c.txt")})
	require.Nil(t, err)
	assert.Equal(t, filepath.Join("a", "b", "c.txt"), v.AsString())
}

func TestBasenameDirnameExt(t *testing.T) {
	p := value.Str(filepath.Join("dir", "sub", "file.tar.gz"))
	base, err := Module()["basename"].Impl([]value.Value{p})
	require.Nil(t, err)
	assert.Equal(t, "file.tar.gz", base.AsString())

	dir, err := Module()["dirname"].Impl([]value.Value{p})
	require.Nil(t, err)
	assert.Equal(t, filepath.Join("dir", "sub"), dir.AsString())

	ext, err := Module()["ext"].Impl([]value.Value{p})
	require.Nil(t, err)
	assert.Equal(t, ".gz", ext.AsString())
}

func TestAbsResolvesRelativePath(t *testing.T) {
	v, err := Module()["abs"].Impl([]value.Value{value.Str("rel.txt")})
	require.Nil(t, err)
	assert.True(t, filepath.IsAbs(v.AsString()))
}

func TestJoinRejectsNonString(t *testing.T) {
	_, err := Module()["join"].Impl([]value.Value{value.Int(1)})
	require.NotNil(t, err)
	assert.Equal(t, value.TypeError, err.Kind)
}
