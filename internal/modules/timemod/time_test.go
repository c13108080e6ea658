package timemod

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latch-lang/latch/internal/value"
)

func TestStrftimeToGoConvertsCommonDirectives(t *testing.T) {
	assert.Equal(t, "2006-01-02 15:04:05", strftimeToGo("%Y-%m-%d %H:%M:%S"))
	assert.Equal(t, "06/Jan/02", strftimeToGo("%y/%b/%d"))
	assert.Equal(t, "100%", strftimeToGo("100%%"))
}

func TestFormatRendersEpochAsUTC(t *testing.T) {
	v, err := Module()["format"].Impl([]value.Value{value.Float(0), value.Str("%Y-%m-%d %H:%M:%S")})
	require.Nil(t, err)
	assert.Equal(t, "1970-01-01 00:00:00", v.AsString())
}

func TestParseThenFormatRoundTrip(t *testing.T) {
	layout := value.Str("%Y-%m-%d")
	epoch, err := Module()["parse"].Impl([]value.Value{value.Str("2024-03-15"), layout})
	require.Nil(t, err)

	text, err := Module()["format"].Impl([]value.Value{epoch, layout})
	require.Nil(t, err)
	assert.Equal(t, "2024-03-15", text.AsString())
}

func TestNowReturnsCurrentEpoch(t *testing.T) {
	before := float64(time.Now().Unix())
	v, err := Module()["now"].Impl(nil)
	require.Nil(t, err)
	assert.GreaterOrEqual(t, v.AsFloat(), before)
}

func TestParseUnparseableTextIsValueError(t *testing.T) {
	_, err := Module()["parse"].Impl([]value.Value{value.Str("not-a-date"), value.Str("%Y-%m-%d")})
	require.NotNil(t, err)
	assert.Equal(t, value.ValueError, err.Kind)
}
