package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Format renders v the way `print` and string interpolation do (spec.md
// §6 Value formatting): strings unquoted at top level, everything nested
// inside a List/Dict formatted with Repr instead.
//
// Grounded on the interpreter it evolved from's printer.go FormatValue/writeValue split between
// a "display" form (bare strings) and a "repr" form (quoted strings, used
// recursively inside containers).
func Format(v Value) string {
	if v.Tag == TagString {
		return v.AsString()
	}
	return Repr(v)
}

// Repr renders v the way it appears nested inside a List or Dict: strings
// quoted, everything else identical to Format.
func Repr(v Value) string {
	var b strings.Builder
	writeRepr(&b, v)
	return b.String()
}

func writeRepr(b *strings.Builder, v Value) {
	switch v.Tag {
	case TagNull:
		b.WriteString("null")
	case TagBool:
		if v.AsBool() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case TagInt:
		b.WriteString(strconv.FormatInt(v.AsInt(), 10))
	case TagFloat:
		b.WriteString(formatFloat(v.AsFloat()))
	case TagString:
		b.WriteByte('"')
		b.WriteString(v.AsString())
		b.WriteByte('"')
	case TagList:
		b.WriteByte('[')
		for i, it := range v.AsList().Items {
			if i > 0 {
				b.WriteString(", ")
			}
			writeRepr(b, it)
		}
		b.WriteByte(']')
	case TagDict:
		d := v.AsDict()
		b.WriteByte('{')
		for i, k := range d.SortedKeys() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('"')
			b.WriteString(k)
			b.WriteString("\": ")
			writeRepr(b, d.Entries[k])
		}
		b.WriteByte('}')
	case TagFn:
		if name := v.AsFn().Name; name != "" {
			fmt.Fprintf(b, "<fn %s>", name)
		} else {
			b.WriteString("<fn>")
		}
	case TagBuiltin:
		fmt.Fprintf(b, "<fn %s>", v.AsBuiltin().Name)
	case TagProcess:
		fmt.Fprintf(b, "<process code=%d>", v.AsProcess().Code)
	case TagResponse:
		fmt.Fprintf(b, "<response status=%d>", v.AsResponse().Status)
	case TagClass:
		fmt.Fprintf(b, "<class %s>", v.AsClass().Name)
	case TagInstance:
		inst := v.AsInstance()
		b.WriteByte('<')
		b.WriteString(inst.Class.Name)
		for _, k := range sortedFieldNames(inst.Fields) {
			b.WriteByte(' ')
			b.WriteString(k)
			b.WriteByte('=')
			writeRepr(b, inst.Fields[k])
		}
		b.WriteByte('>')
	}
}

func sortedFieldNames(m map[string]Value) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// formatFloat implements spec.md §6: shortest round-trip decimal, never
// exponent notation unless the magnitude falls outside [1e-4, 1e15).
func formatFloat(f float64) string {
	abs := f
	if abs < 0 {
		abs = -abs
	}
	if abs != 0 && (abs < 1e-4 || abs >= 1e15) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
