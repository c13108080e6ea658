package setmod

import (
	"strconv"

	"github.com/latch-lang/latch/internal/token"
	"github.com/latch-lang/latch/internal/value"
)

func parseReprInt(s string) (value.Value, *value.RuntimeError) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return value.Value{}, value.NewError(value.ValueError, token.Span{}, "corrupt set key %q", s)
	}
	return value.Int(n), nil
}

func parseReprFloat(s string) (value.Value, *value.RuntimeError) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return value.Value{}, value.NewError(value.ValueError, token.Span{}, "corrupt set key %q", s)
	}
	return value.Float(f), nil
}
