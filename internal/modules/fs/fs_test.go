package fs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latch-lang/latch/internal/value"
)

func call(t *testing.T, name string, args ...value.Value) (value.Value, *value.RuntimeError) {
	t.Helper()
	mod := Module()
	b, ok := mod[name]
	require.True(t, ok, "module has no %q", name)
	return b.Impl(args)
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	_, err := call(t, "write", value.Str(path), value.Str("hello"))
	require.Nil(t, err)

	v, err := call(t, "read", value.Str(path))
	require.Nil(t, err)
	assert.Equal(t, "hello", v.AsString())
}

func TestAppendAddsToExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	_, err := call(t, "write", value.Str(path), value.Str("a"))
	require.Nil(t, err)
	_, err = call(t, "append", value.Str(path), value.Str("b"))
	require.Nil(t, err)

	v, err := call(t, "read", value.Str(path))
	require.Nil(t, err)
	assert.Equal(t, "ab", v.AsString())
}

func TestExistsReflectsFileState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maybe.txt")
	v, err := call(t, "exists", value.Str(path))
	require.Nil(t, err)
	assert.False(t, v.AsBool())

	call(t, "write", value.Str(path), value.Str(""))
	v, err = call(t, "exists", value.Str(path))
	require.Nil(t, err)
	assert.True(t, v.AsBool())
}

func TestReadMissingFileReturnsFileError(t *testing.T) {
	_, err := call(t, "read", value.Str(filepath.Join(t.TempDir(), "missing.txt")))
	require.NotNil(t, err)
	assert.Equal(t, value.FileError, err.Kind)
}

func TestReadlinesSplitsOnNewlines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.txt")
	call(t, "write", value.Str(path), value.Str("one\ntwo\nthree"))

	v, err := call(t, "readlines", value.Str(path))
	require.Nil(t, err)
	items := v.AsList().Items
	require.Len(t, items, 3)
	assert.Equal(t, "two", items[1].AsString())
}

func TestMkdirAndStatReportsDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "child")
	_, err := call(t, "mkdir", value.Str(dir))
	require.Nil(t, err)

	v, err := call(t, "stat", value.Str(dir))
	require.Nil(t, err)
	d := v.AsDict()
	assert.True(t, d.Entries["is_dir"].AsBool())
}

func TestRemoveDeletesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.txt")
	call(t, "write", value.Str(path), value.Str("x"))
	_, err := call(t, "remove", value.Str(path))
	require.Nil(t, err)

	v, _ := call(t, "exists", value.Str(path))
	assert.False(t, v.AsBool())
}

func TestGlobMatchesPattern(t *testing.T) {
	dir := t.TempDir()
	call(t, "write", value.Str(filepath.Join(dir, "a.txt")), value.Str(""))
	call(t, "write", value.Str(filepath.Join(dir, "b.txt")), value.Str(""))
	call(t, "write", value.Str(filepath.Join(dir, "c.log")), value.Str(""))

	v, err := call(t, "glob", value.Str(filepath.Join(dir, "*.txt")))
	require.Nil(t, err)
	assert.Len(t, v.AsList().Items, 2)
}
