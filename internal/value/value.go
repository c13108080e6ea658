// Package value defines Latch's runtime value model (spec.md §3): the
// closed value sum V, the lexically-scoped Env, and the RuntimeError carried
// across the evaluator's panic/recover unwinding.
//
// Grounded on the interpreter it evolved from's Value{Tag, Data} shape (interpreter.go) — a
// single tagged struct with an interface{} payload rather than a Go type
// switch over many concrete value types — which is what lets List/Dict
// alias cheaply (the payload is always a pointer) and keeps equality and
// formatting centralized.
package value

import (
	"sort"

	"github.com/latch-lang/latch/internal/ast"
)

// Tag discriminates which case of Value is active.
type Tag int

const (
	TagNull Tag = iota
	TagBool
	TagInt
	TagFloat
	TagString
	TagList
	TagDict
	TagFn
	TagBuiltin
	TagProcess
	TagResponse
	TagClass
	TagInstance
)

func (t Tag) String() string {
	switch t {
	case TagNull:
		return "null"
	case TagBool:
		return "bool"
	case TagInt:
		return "int"
	case TagFloat:
		return "float"
	case TagString:
		return "string"
	case TagList:
		return "list"
	case TagDict:
		return "dict"
	case TagFn, TagBuiltin:
		return "function"
	case TagProcess:
		return "process"
	case TagResponse:
		return "response"
	case TagClass:
		return "class"
	case TagInstance:
		return "instance"
	default:
		return "unknown"
	}
}

// Value is the universal runtime carrier. Data holds the Go value
// appropriate for Tag: nil, bool, int64, float64, string, *List, *Dict,
// *Fn, *Builtin, *Process, *Response, *Class, or *Instance.
type Value struct {
	Tag  Tag
	Data interface{}
}

var Null = Value{Tag: TagNull}

func Bool(b bool) Value       { return Value{Tag: TagBool, Data: b} }
func Int(i int64) Value       { return Value{Tag: TagInt, Data: i} }
func Float(f float64) Value   { return Value{Tag: TagFloat, Data: f} }
func Str(s string) Value      { return Value{Tag: TagString, Data: s} }

func (v Value) AsBool() bool       { return v.Data.(bool) }
func (v Value) AsInt() int64       { return v.Data.(int64) }
func (v Value) AsFloat() float64   { return v.Data.(float64) }
func (v Value) AsString() string   { return v.Data.(string) }
func (v Value) AsList() *List      { return v.Data.(*List) }
func (v Value) AsDict() *Dict      { return v.Data.(*Dict) }
func (v Value) AsFn() *Fn          { return v.Data.(*Fn) }
func (v Value) AsBuiltin() *Builtin { return v.Data.(*Builtin) }
func (v Value) AsProcess() *Process { return v.Data.(*Process) }
func (v Value) AsResponse() *Response { return v.Data.(*Response) }
func (v Value) AsClass() *Class     { return v.Data.(*Class) }
func (v Value) AsInstance() *Instance { return v.Data.(*Instance) }

// IsNull reports whether v is the sole absence value.
func (v Value) IsNull() bool { return v.Tag == TagNull }

// IsNumeric reports whether v is an Int or a Float.
func (v Value) IsNumeric() bool { return v.Tag == TagInt || v.Tag == TagFloat }

// AsFloat64 widens an Int or Float to float64; callers must check IsNumeric first.
func (v Value) AsFloat64() float64 {
	if v.Tag == TagInt {
		return float64(v.AsInt())
	}
	return v.AsFloat()
}

// List is a shared-by-reference, index-addressable ordered sequence
// (spec.md §3 Invariants: aliased mutations are visible to all holders).
type List struct {
	Items []Value
}

func NewList(items []Value) Value { return Value{Tag: TagList, Data: &List{Items: items}} }

// Dict is a string-keyed, reference-typed mapping whose iteration order is
// always sorted ascending by key (spec.md §3: "iteration order of keys(d)
// ... is by sorted key"). Keys tracks insertion for round-tripping purposes
// only; all user-observable iteration (keys/values/items/print) sorts on
// read.
type Dict struct {
	Entries map[string]Value
	Keys    []string // insertion order, for internal bookkeeping only
}

func NewDict() *Dict { return &Dict{Entries: map[string]Value{}} }

func DictValue(d *Dict) Value { return Value{Tag: TagDict, Data: d} }

// Set inserts or overwrites key, tracking insertion order in Keys.
func (d *Dict) Set(key string, v Value) {
	if _, ok := d.Entries[key]; !ok {
		d.Keys = append(d.Keys, key)
	}
	d.Entries[key] = v
}

// Delete removes key if present.
func (d *Dict) Delete(key string) {
	if _, ok := d.Entries[key]; !ok {
		return
	}
	delete(d.Entries, key)
	for i, k := range d.Keys {
		if k == key {
			d.Keys = append(d.Keys[:i], d.Keys[i+1:]...)
			break
		}
	}
}

// SortedKeys returns the dict's keys in ascending order (spec.md §3).
func (d *Dict) SortedKeys() []string {
	keys := append([]string(nil), d.Keys...)
	sort.Strings(keys)
	return keys
}

// Fn is a user-defined closure: parameters (with optional default exprs),
// a body, and the lexical environment captured at definition time.
type Fn struct {
	Name    string
	Params  []ast.Param
	Body    []ast.Stmt
	Env     *Env
	IsMethod bool // implicitly takes `self` as Env's immediate parent binding
}

func FnValue(f *Fn) Value { return Value{Tag: TagFn, Data: f} }

// Builtin is a host-provided callable (spec.md §4.5). Impl receives already
// evaluated arguments and returns a value or a *RuntimeError; builtins never
// mutate caller scopes.
type Builtin struct {
	Name     string
	Arity    int // -1 means variadic/any
	Impl     func(args []Value) (Value, *RuntimeError)
}

func BuiltinValue(b *Builtin) Value { return Value{Tag: TagBuiltin, Data: b} }

// Process is the result record of proc.exec.
type Process struct {
	Stdout string
	Stderr string
	Code   int64
}

func ProcessValue(p *Process) Value { return Value{Tag: TagProcess, Data: p} }

// Response is the result record of http.* calls.
type Response struct {
	Status  int64
	Body    string
	Headers *Dict
}

func ResponseValue(r *Response) Value { return Value{Tag: TagResponse, Data: r} }

// Class is a template of field names/defaults and method closures.
type Class struct {
	Name    string
	Fields  []ast.Field_
	Methods map[string]*Fn
}

func ClassValue(c *Class) Value { return Value{Tag: TagClass, Data: c} }

// Instance is a mutable field map plus a class handle.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func InstanceValue(i *Instance) Value { return Value{Tag: TagInstance, Data: i} }

// Truthy implements spec.md §4.4: false, null, 0 (int/float), "" are falsy;
// everything else — including empty lists/dicts — is truthy.
func Truthy(v Value) bool {
	switch v.Tag {
	case TagNull:
		return false
	case TagBool:
		return v.AsBool()
	case TagInt:
		return v.AsInt() != 0
	case TagFloat:
		return v.AsFloat() != 0
	case TagString:
		return v.AsString() != ""
	default:
		return true
	}
}

// DeepEqual implements spec.md §4.4 equality: same-type deep structural
// equality; int/float compare numerically across types; null only equals
// null; lists/dicts compare by contents.
func DeepEqual(a, b Value) bool {
	if a.IsNumeric() && b.IsNumeric() {
		return a.AsFloat64() == b.AsFloat64()
	}
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case TagNull:
		return true
	case TagBool:
		return a.AsBool() == b.AsBool()
	case TagString:
		return a.AsString() == b.AsString()
	case TagList:
		al, bl := a.AsList(), b.AsList()
		if len(al.Items) != len(bl.Items) {
			return false
		}
		for i := range al.Items {
			if !DeepEqual(al.Items[i], bl.Items[i]) {
				return false
			}
		}
		return true
	case TagDict:
		ad, bd := a.AsDict(), b.AsDict()
		if len(ad.Entries) != len(bd.Entries) {
			return false
		}
		for k, v := range ad.Entries {
			bv, ok := bd.Entries[k]
			if !ok || !DeepEqual(v, bv) {
				return false
			}
		}
		return true
	case TagFn:
		return a.AsFn() == b.AsFn()
	case TagBuiltin:
		return a.AsBuiltin() == b.AsBuiltin()
	case TagInstance:
		return a.AsInstance() == b.AsInstance()
	default:
		return false
	}
}
