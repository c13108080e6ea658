package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/latch-lang/latch/internal/token"
)

func TestNewBuildsFromSpan(t *testing.T) {
	sp := token.Span{File: "x.latch", Line: 3, Col: 5}
	d := New(Parse, "x.latch", sp, "unexpected token", "did you mean ';;'?")
	assert.Equal(t, Parse, d.Kind)
	assert.Equal(t, 3, d.Line)
	assert.Equal(t, 5, d.Col)
	assert.Equal(t, "did you mean ';;'?", d.Hint)
}

func TestDiagnosticErrorString(t *testing.T) {
	d := Diagnostic{File: "a.latch", Line: 2, Col: 7, Reason: "boom"}
	assert.Equal(t, "a.latch:2:7: boom", d.Error())
}

func TestSnippetHighlightsColumn(t *testing.T) {
	src := "x := 1\ny := +\nz := 3"
	out := Snippet(src, 2, 6)
	assert.Contains(t, out, "y := +")
	assert.Contains(t, out, "x := 1")
	assert.Contains(t, out, "z := 3")
	assert.Contains(t, out, "^")
}

func TestSnippetClampsOutOfRangeLineAndCol(t *testing.T) {
	src := "only line"
	out := Snippet(src, 99, 0)
	assert.Contains(t, out, "only line")
}

func TestFormatIncludesHeaderSnippetAndHint(t *testing.T) {
	d := New(Semantic, "a.latch", token.Span{Line: 1, Col: 1}, "undefined name", "declare it first")
	out := Format(d, "foo")
	assert.Contains(t, out, "SemanticError")
	assert.Contains(t, out, "undefined name")
	assert.Contains(t, out, "hint: declare it first")
}

func TestFormatOmitsHintWhenEmpty(t *testing.T) {
	d := New(Lex, "a.latch", token.Span{Line: 1, Col: 1}, "bad char", "")
	out := Format(d, "foo")
	assert.NotContains(t, out, "hint:")
}
