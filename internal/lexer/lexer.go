// Package lexer tokenizes Latch source text into a finite token stream.
//
// Grounded on the interpreter it evolved from's lexer.go: a hand-rolled scanner over
// a byte slice tracking (line, col), reclassifying identifiers against a
// keyword table, and resynchronizing at the next whitespace on error instead
// of aborting the whole scan.
package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/latch-lang/latch/internal/diag"
	"github.com/latch-lang/latch/internal/token"
)

// Lexer scans Latch source into tokens.
type Lexer struct {
	file string
	src  string
	pos  int // byte offset
	line int
	col  int // 1-based column of pos

	errs []diag.Diagnostic
}

// New creates a Lexer for src, tagging diagnostics with file.
func New(file, src string) *Lexer {
	return &Lexer{file: file, src: src, pos: 0, line: 1, col: 1}
}

// Errors returns lex diagnostics accumulated during Tokenize.
func (l *Lexer) Errors() []diag.Diagnostic { return l.errs }

// Tokenize scans the entire source and returns the token stream, always
// terminated by an EOF token. Lex errors are recorded (see Errors) and
// represented inline as Illegal tokens; scanning resynchronizes at the next
// whitespace rather than aborting.
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		t := l.next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}
	return toks
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *Lexer) match(c byte) bool {
	if l.peek() == c {
		l.advance()
		return true
	}
	return false
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.atEnd() {
		c := l.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '#':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		case c == '/' && l.peekAt(1) == '/':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }

func (l *Lexer) startSpan() (line, col, byteStart int) {
	return l.line, l.col, l.pos
}

func (l *Lexer) span(line, col, byteStart int) token.Span {
	return token.Span{File: l.file, Line: line, Col: col, EndLine: l.line, EndCol: l.col, StartByte: byteStart, EndByte: l.pos}
}

func (l *Lexer) errorf(line, col int, format string, args ...interface{}) {
	d := diag.New(diag.Lex, l.file, token.Span{File: l.file, Line: line, Col: col}, fmt.Sprintf(format, args...), "")
	l.errs = append(l.errs, d)
}

func (l *Lexer) next() token.Token {
	l.skipWhitespaceAndComments()

	if l.atEnd() {
		line, col, start := l.startSpan()
		return token.Token{Kind: token.EOF, Span: l.span(line, col, start)}
	}

	line, col, start := l.startSpan()
	c := l.advance()

	switch {
	case isDigit(c):
		return l.number(line, col, start)
	case c == 'r' && l.peek() == '"':
		l.advance()
		return l.stringLit(line, col, start, true)
	case isAlpha(c):
		return l.identifier(line, col, start)
	case c == '"':
		return l.stringLit(line, col, start, false)
	}

	mk := func(k token.Kind) token.Token {
		return token.Token{Kind: k, Lexeme: l.src[start:l.pos], Span: l.span(line, col, start)}
	}

	switch c {
	case '(':
		return mk(token.LParen)
	case ')':
		return mk(token.RParen)
	case '[':
		return mk(token.LBracket)
	case ']':
		return mk(token.RBracket)
	case '{':
		return mk(token.LBrace)
	case '}':
		return mk(token.RBrace)
	case ',':
		return mk(token.Comma)
	case ':':
		if l.match('=') {
			return mk(token.Walrus)
		}
		return mk(token.Colon)
	case '?':
		if l.match('.') {
			return mk(token.SafeDot)
		}
		if l.match('?') {
			return mk(token.NullCoal)
		}
		return mk(token.Question)
	case '.':
		if l.match('.') {
			return mk(token.DotDot)
		}
		return mk(token.Dot)
	case '=':
		if l.match('=') {
			return mk(token.Eq)
		}
		return mk(token.Assign)
	case '!':
		if l.match('=') {
			return mk(token.Neq)
		}
		return mk(token.Bang)
	case '<':
		if l.match('=') {
			return mk(token.Le)
		}
		return mk(token.Lt)
	case '>':
		if l.match('=') {
			return mk(token.Ge)
		}
		return mk(token.Gt)
	case '&':
		if l.match('&') {
			return mk(token.AndAnd)
		}
	case '|':
		if l.match('|') {
			return mk(token.OrOr)
		}
		if l.match('>') {
			return mk(token.Pipe)
		}
	case '+':
		if l.match('=') {
			return mk(token.PlusEq)
		}
		return mk(token.Plus)
	case '-':
		if l.match('=') {
			return mk(token.MinusEq)
		}
		if l.match('>') {
			return mk(token.Arrow)
		}
		return mk(token.Minus)
	case '*':
		if l.match('*') {
			return mk(token.StarStar)
		}
		if l.match('=') {
			return mk(token.StarEq)
		}
		return mk(token.Star)
	case '/':
		if l.match('=') {
			return mk(token.SlashEq)
		}
		return mk(token.Slash)
	case '%':
		if l.match('=') {
			return mk(token.PercentEq)
		}
		return mk(token.Percent)
	}

	l.errorf(line, col, "unexpected character %q", c)
	// resynchronize at next whitespace
	for !l.atEnd() && l.peek() != ' ' && l.peek() != '\t' && l.peek() != '\n' {
		l.advance()
	}
	return token.Token{Kind: token.Illegal, Lexeme: l.src[start:l.pos], Span: l.span(line, col, start)}
}

func (l *Lexer) number(line, col, start int) token.Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	isFloat := false
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		isFloat = true
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	lex := l.src[start:l.pos]
	sp := l.span(line, col, start)
	if isFloat {
		f, err := strconv.ParseFloat(lex, 64)
		if err != nil {
			l.errorf(line, col, "invalid float literal %q", lex)
		}
		return token.Token{Kind: token.Float, Lexeme: lex, FloatVal: f, Span: sp}
	}
	i, err := strconv.ParseInt(lex, 10, 64)
	if err != nil {
		l.errorf(line, col, "invalid integer literal %q", lex)
	}
	return token.Token{Kind: token.Int, Lexeme: lex, IntVal: i, Span: sp}
}

func (l *Lexer) identifier(line, col, start int) token.Token {
	for isAlnum(l.peek()) {
		l.advance()
	}
	lex := l.src[start:l.pos]
	sp := l.span(line, col, start)
	if kw, ok := token.Lookup(lex); ok {
		return token.Token{Kind: kw, Lexeme: lex, Span: sp}
	}
	return token.Token{Kind: token.Ident, Lexeme: lex, StrVal: lex, Span: sp}
}

// stringLit scans a double-quoted string. Raw strings (raw=true) disable
// escapes and ${...} interpolation. Interpolated segments capture the raw
// source text between the braces for the parser to re-lex/parse recursively
// (spec.md §4.1).
func (l *Lexer) stringLit(line, col, start int, raw bool) token.Token {
	var segs []token.StringSegment
	var lit strings.Builder
	closed := false

	flushLiteral := func() {
		if lit.Len() > 0 {
			segs = append(segs, token.StringSegment{Literal: lit.String()})
			lit.Reset()
		}
	}

	for !l.atEnd() {
		c := l.peek()
		if c == '"' {
			l.advance()
			closed = true
			break
		}
		if c == '\n' {
			break // unterminated
		}
		if !raw && c == '\\' {
			l.advance()
			e := l.peek()
			l.advance()
			switch e {
			case 'n':
				lit.WriteByte('\n')
			case 't':
				lit.WriteByte('\t')
			case 'r':
				lit.WriteByte('\r')
			case '\\':
				lit.WriteByte('\\')
			case '"':
				lit.WriteByte('"')
			case '$':
				lit.WriteByte('$')
			default:
				l.errorf(l.line, l.col, "invalid escape sequence \\%c", e)
			}
			continue
		}
		if !raw && c == '$' && l.peekAt(1) == '{' {
			flushLiteral()
			l.advance() // $
			l.advance() // {
			depth := 1
			exprStart := l.pos
			for !l.atEnd() && depth > 0 {
				ch := l.peek()
				if ch == '{' {
					depth++
				} else if ch == '}' {
					depth--
					if depth == 0 {
						break
					}
				}
				l.advance()
			}
			exprSrc := l.src[exprStart:l.pos]
			if l.peek() == '}' {
				l.advance()
			} else {
				l.errorf(line, col, "unterminated interpolation")
			}
			segs = append(segs, token.StringSegment{Expr: exprSrc, IsExpr: true})
			continue
		}
		lit.WriteByte(c)
		l.advance()
	}
	flushLiteral()

	if !closed {
		l.errorf(line, col, "unterminated string literal")
	}

	sp := l.span(line, col, start)
	k := token.String
	if raw {
		k = token.RawString
	}
	// Flatten to StrVal for the common non-interpolated case.
	flat := ""
	pureLiteral := true
	for _, s := range segs {
		if s.IsExpr {
			pureLiteral = false
			break
		}
		flat += s.Literal
	}
	t := token.Token{Kind: k, Lexeme: l.src[start:l.pos], Span: sp, Segments: segs}
	if pureLiteral {
		t.StrVal = flat
	}
	return t
}
