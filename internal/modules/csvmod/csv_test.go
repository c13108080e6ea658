package csvmod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latch-lang/latch/internal/value"
)

func TestParseRowsSplitsCellsAndLines(t *testing.T) {
	v, err := Module()["parse"].Impl([]value.Value{value.Str("a,b,c\n1,2,3\n")})
	require.Nil(t, err)
	rows := v.AsList().Items
	require.Len(t, rows, 2)
	assert.Equal(t, "b", rows[0].AsList().Items[1].AsString())
	assert.Equal(t, "3", rows[1].AsList().Items[2].AsString())
}

func TestParseDictsUsesHeaderRow(t *testing.T) {
	v, err := Module()["parse_dicts"].Impl([]value.Value{value.Str("name,age\nada,36\nalan,41\n")})
	require.Nil(t, err)
	rows := v.AsList().Items
	require.Len(t, rows, 2)
	assert.Equal(t, "ada", rows[0].AsDict().Entries["name"].AsString())
	assert.Equal(t, "41", rows[1].AsDict().Entries["age"].AsString())
}

func TestParseDictsPadsShortRows(t *testing.T) {
	v, err := Module()["parse_dicts"].Impl([]value.Value{value.Str("a,b,c\n1,2\n")})
	require.Nil(t, err)
	d := v.AsList().Items[0].AsDict()
	assert.Equal(t, "", d.Entries["c"].AsString())
}

func TestStringifyRowsProducesCSVText(t *testing.T) {
	rows := value.NewList([]value.Value{
		value.NewList([]value.Value{value.Str("a"), value.Str("b")}),
		value.NewList([]value.Value{value.Int(1), value.Int(2)}),
	})
	v, err := Module()["stringify"].Impl([]value.Value{rows})
	require.Nil(t, err)
	assert.Equal(t, "a,b\n1,2\n", v.AsString())
}

func TestParseRejectsNonString(t *testing.T) {
	_, err := Module()["parse"].Impl([]value.Value{value.Int(1)})
	require.NotNil(t, err)
	assert.Equal(t, value.TypeError, err.Kind)
}
