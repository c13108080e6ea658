package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latch-lang/latch/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeOperators(t *testing.T) {
	lx := New("<test>", "a |> b ?? c ?.d == e != f")
	toks := lx.Tokenize()
	require.Empty(t, lx.Errors())
	assert.Equal(t, []token.Kind{
		token.Ident, token.Pipe, token.Ident, token.NullCoal, token.Ident,
		token.SafeDot, token.Ident, token.Eq, token.Ident, token.Neq, token.Ident,
		token.EOF,
	}, kinds(toks))
}

func TestTokenizeKeywords(t *testing.T) {
	lx := New("<test>", "fn try catch finally parallel workers stop")
	toks := lx.Tokenize()
	require.Empty(t, lx.Errors())
	assert.Equal(t, []token.Kind{
		token.KwFn, token.KwTry, token.KwCatch, token.KwFinally,
		token.KwParallel, token.KwWorkers, token.KwStop, token.EOF,
	}, kinds(toks))
}

func TestTokenizeNumbers(t *testing.T) {
	lx := New("<test>", "42 3.14")
	toks := lx.Tokenize()
	require.Len(t, toks, 3)
	assert.Equal(t, token.Int, toks[0].Kind)
	assert.Equal(t, int64(42), toks[0].IntVal)
	assert.Equal(t, token.Float, toks[1].Kind)
	assert.InDelta(t, 3.14, toks[1].FloatVal, 1e-9)
}

func TestTokenizeStringLiteral(t *testing.T) {
	lx := New("<test>", `"hello, world"`)
	toks := lx.Tokenize()
	require.Empty(t, lx.Errors())
	require.Len(t, toks, 2)
	assert.Equal(t, token.String, toks[0].Kind)
}

func TestTokenizeUnterminatedStringIsReported(t *testing.T) {
	lx := New("<test>", `"unterminated`)
	lx.Tokenize()
	assert.NotEmpty(t, lx.Errors())
}

func TestTokenizeRawStringDisablesEscapesAndInterpolation(t *testing.T) {
	lx := New("<test>", `r"C:\n${x}"`)
	toks := lx.Tokenize()
	require.Empty(t, lx.Errors())
	require.Len(t, toks, 2)
	assert.Equal(t, token.RawString, toks[0].Kind)
	assert.Equal(t, `C:\n${x}`, toks[0].StrVal)
}

func TestTokenizeBareIdentifierRStillLexesAsIdent(t *testing.T) {
	lx := New("<test>", "r := 1")
	toks := lx.Tokenize()
	require.Empty(t, lx.Errors())
	require.Len(t, toks, 4)
	assert.Equal(t, token.Ident, toks[0].Kind)
	assert.Equal(t, "r", toks[0].Lexeme)
	assert.Equal(t, token.Walrus, toks[1].Kind)
}

func TestSpansTrackLineAndColumn(t *testing.T) {
	lx := New("<test>", "a\nb")
	toks := lx.Tokenize()
	require.Len(t, toks, 3)
	assert.Equal(t, 1, toks[0].Span.Line)
	assert.Equal(t, 2, toks[1].Span.Line)
}
