// Package token defines the lexical token kinds and source spans shared by
// the lexer and parser.
package token

import "fmt"

// Kind is the discriminant for a Token.
type Kind int

const (
	Illegal Kind = iota
	EOF

	// literals & identifiers
	Ident
	Int
	Float
	String
	RawString

	// keywords
	KwIf
	KwElse
	KwElif
	KwFor
	KwIn
	KwWhile
	KwBreak
	KwContinue
	KwParallel
	KwWorkers
	KwFn
	KwReturn
	KwTry
	KwCatch
	KwFinally
	KwUse
	KwConst
	KwYield
	KwClass
	KwExport
	KwImport
	KwOr
	KwStop
	KwNull
	KwTrue
	KwFalse
	KwNot

	// punctuation
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Comma
	Dot
	Colon
	Question

	// operators
	Assign     // =
	Walrus     // :=
	Eq         // ==
	Neq        // !=
	Lt         // <
	Gt         // >
	Le         // <=
	Ge         // >=
	AndAnd     // &&
	OrOr       // ||
	NullCoal   // ??
	SafeDot    // ?.
	Pipe       // |>
	DotDot     // ..
	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Percent    // %
	StarStar   // **
	Bang       // !
	PlusEq     // +=
	MinusEq    // -=
	StarEq     // *=
	SlashEq    // /=
	PercentEq  // %=
	Arrow      // ->
)

var keywords = map[string]Kind{
	"if":       KwIf,
	"else":     KwElse,
	"elif":     KwElif,
	"for":      KwFor,
	"in":       KwIn,
	"while":    KwWhile,
	"break":    KwBreak,
	"continue": KwContinue,
	"parallel": KwParallel,
	"workers":  KwWorkers,
	"fn":       KwFn,
	"return":   KwReturn,
	"try":      KwTry,
	"catch":    KwCatch,
	"finally":  KwFinally,
	"use":      KwUse,
	"const":    KwConst,
	"yield":    KwYield,
	"class":    KwClass,
	"export":   KwExport,
	"import":   KwImport,
	"or":       KwOr,
	"stop":     KwStop,
	"null":     KwNull,
	"true":     KwTrue,
	"false":    KwFalse,
	"not":      KwNot,
}

// Lookup reclassifies an identifier as a keyword kind, or returns (Ident, false).
func Lookup(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Span locates a lexeme in a named source buffer using 1-based line/column
// and 0-based byte offsets.
type Span struct {
	File      string
	Line      int
	Col       int
	EndLine   int
	EndCol    int
	StartByte int
	EndByte   int
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Col)
}

// StringSegment is one piece of an interpolated string literal: either a
// literal chunk or the raw source text of an ${...} expression to be
// re-lexed and parsed.
type StringSegment struct {
	Literal string
	Expr    string // non-empty (or Literal empty w/ IsExpr true) marks an interpolation
	IsExpr  bool
}

// Token is a single lexical token with its span and, for literals, decoded
// payload.
type Token struct {
	Kind    Kind
	Lexeme  string
	Span    Span
	IntVal  int64
	FloatVal float64
	StrVal  string
	Segments []StringSegment // for String/RawString with interpolation
}

func (t Token) String() string {
	return fmt.Sprintf("%v(%q)@%s", t.Kind, t.Lexeme, t.Span)
}

var kindNames = map[Kind]string{
	Illegal: "ILLEGAL", EOF: "EOF", Ident: "IDENT", Int: "INT", Float: "FLOAT",
	String: "STRING", RawString: "RAWSTRING",
	KwIf: "if", KwElse: "else", KwElif: "elif", KwFor: "for", KwIn: "in",
	KwWhile: "while", KwBreak: "break", KwContinue: "continue",
	KwParallel: "parallel", KwWorkers: "workers", KwFn: "fn", KwReturn: "return",
	KwTry: "try", KwCatch: "catch", KwFinally: "finally", KwUse: "use",
	KwConst: "const", KwYield: "yield", KwClass: "class", KwExport: "export",
	KwImport: "import", KwOr: "or", KwStop: "stop", KwNull: "null",
	KwTrue: "true", KwFalse: "false", KwNot: "not",
	LParen: "(", RParen: ")", LBracket: "[", RBracket: "]", LBrace: "{", RBrace: "}",
	Comma: ",", Dot: ".", Colon: ":", Question: "?",
	Assign: "=", Walrus: ":=", Eq: "==", Neq: "!=", Lt: "<", Gt: ">", Le: "<=", Ge: ">=",
	AndAnd: "&&", OrOr: "||", NullCoal: "??", SafeDot: "?.", Pipe: "|>", DotDot: "..",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", StarStar: "**",
	Bang: "!", PlusEq: "+=", MinusEq: "-=", StarEq: "*=", SlashEq: "/=", PercentEq: "%=",
	Arrow: "->",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}
