// Package timemod implements Latch's `time` host module, grounded on
// rubiojr-rugo's modules/time and original_source/src/runtime/time.rs.
// time.rs's time.parse/time.format accept strftime-style layout strings
// (e.g. "%Y-%m-%d") which the original converts internally to Go's
// reference-time layout; we do the same conversion here (SPEC_FULL.md
// Supplemented Features). time is stdlib with no third-party alternative
// present anywhere in the example pack.
package timemod

import (
	"strings"
	"time"

	"github.com/latch-lang/latch/internal/token"
	"github.com/latch-lang/latch/internal/value"
)

func Module() map[string]*value.Builtin {
	return map[string]*value.Builtin{
		"sleep":  {Name: "time.sleep", Arity: 1, Impl: sleep},
		"now":    {Name: "time.now", Arity: 0, Impl: now},
		"format": {Name: "time.format", Arity: 2, Impl: format},
		"parse":  {Name: "time.parse", Arity: 2, Impl: parse},
	}
}

func sleep(args []value.Value) (value.Value, *value.RuntimeError) {
	if !args[0].IsNumeric() {
		return value.Value{}, value.NewError(value.TypeError, token.Span{}, "time.sleep expects a numeric argument (seconds)")
	}
	time.Sleep(time.Duration(args[0].AsFloat64() * float64(time.Second)))
	return value.Null, nil
}

// now returns the current Unix timestamp in seconds as a Float (fractional
// seconds preserved, matching time.rs's f64 epoch).
func now(args []value.Value) (value.Value, *value.RuntimeError) {
	return value.Float(float64(time.Now().UnixNano()) / 1e9), nil
}

// format implements time.format(epoch_seconds, layout) -> String, layout
// given strftime-style (e.g. "%Y-%m-%d %H:%M:%S").
func format(args []value.Value) (value.Value, *value.RuntimeError) {
	if !args[0].IsNumeric() {
		return value.Value{}, value.NewError(value.TypeError, token.Span{}, "time.format expects a numeric timestamp")
	}
	if args[1].Tag != value.TagString {
		return value.Value{}, value.NewError(value.TypeError, token.Span{}, "time.format expects a string layout")
	}
	t := time.Unix(0, int64(args[0].AsFloat64()*1e9)).UTC()
	return value.Str(t.Format(strftimeToGo(args[1].AsString()))), nil
}

// parse implements time.parse(text, layout) -> Float (epoch seconds).
func parse(args []value.Value) (value.Value, *value.RuntimeError) {
	if args[0].Tag != value.TagString || args[1].Tag != value.TagString {
		return value.Value{}, value.NewError(value.TypeError, token.Span{}, "time.parse expects two string arguments")
	}
	t, err := time.Parse(strftimeToGo(args[1].AsString()), args[0].AsString())
	if err != nil {
		return value.Value{}, value.NewError(value.ValueError, token.Span{}, "time.parse: %s", err)
	}
	return value.Float(float64(t.UnixNano()) / 1e9), nil
}

var strftimeDirectives = map[byte]string{
	'Y': "2006",
	'm': "01",
	'd': "02",
	'H': "15",
	'M': "04",
	'S': "05",
	'y': "06",
	'B': "January",
	'b': "Jan",
	'A': "Monday",
	'a': "Mon",
	'p': "PM",
	'Z': "MST",
	'z': "-0700",
}

// strftimeToGo converts a strftime-style layout (%Y-%m-%d) to Go's
// reference-time layout, the conversion time.rs performs internally.
func strftimeToGo(layout string) string {
	var b strings.Builder
	for i := 0; i < len(layout); i++ {
		if layout[i] == '%' && i+1 < len(layout) {
			if go_, ok := strftimeDirectives[layout[i+1]]; ok {
				b.WriteString(go_)
				i++
				continue
			}
			if layout[i+1] == '%' {
				b.WriteByte('%')
				i++
				continue
			}
		}
		b.WriteByte(layout[i])
	}
	return b.String()
}
