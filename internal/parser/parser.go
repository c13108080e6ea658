// Package parser implements a Pratt (precedence-climbing) parser over
// Latch's token stream, producing the typed AST in internal/ast.
//
// Grounded on the interpreter it evolved from's parser.go in spirit — recursive-descent levels
// matching a precedence table, panic/recover-driven error resynchronization
// at statement boundaries — but rewritten against spec.md's explicit
// precedence table (§4.2) and typed AST rather than an S-expression
// grammar.
package parser

import (
	"fmt"

	"github.com/latch-lang/latch/internal/ast"
	"github.com/latch-lang/latch/internal/diag"
	"github.com/latch-lang/latch/internal/lexer"
	"github.com/latch-lang/latch/internal/token"
)

// parseError unwinds the current statement on a syntax error; recovered by
// the nearest enclosing resynchronization point (parseProgram/parseBlock).
type parseError struct{ diag.Diagnostic }

// Parser consumes a token stream and builds a Program.
type Parser struct {
	file   string
	src    string
	toks   []token.Token
	pos    int
	errs   []diag.Diagnostic
}

// Parse tokenizes and parses src, returning the Program and any diagnostics
// (lex + parse) accumulated along the way. Parsing never aborts the whole
// file on a single bad statement; it resynchronizes and keeps going so
// `check` can report more than one error per run.
func Parse(file, src string) (*ast.Program, []diag.Diagnostic) {
	lx := lexer.New(file, src)
	toks := lx.Tokenize()
	p := &Parser{file: file, src: src, toks: toks, errs: append([]diag.Diagnostic{}, lx.Errors()...)}
	prog := p.parseProgram()
	return prog, p.errs
}

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) curKind() token.Kind { return p.toks[p.pos].Kind }

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) check(k token.Kind) bool { return p.curKind() == k }

func (p *Parser) accept(k token.Kind) (token.Token, bool) {
	if p.check(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

func (p *Parser) expect(k token.Kind) token.Token {
	if p.check(k) {
		return p.advance()
	}
	t := p.cur()
	p.fail(t.Span, fmt.Sprintf("expected %s, found %q", k, t.Lexeme), hintFor(k))
	return t
}

func hintFor(k token.Kind) string {
	switch k {
	case token.LBrace:
		return "add a '{' to start the block"
	case token.RBrace:
		return "missing a closing '}'"
	default:
		return ""
	}
}

func (p *Parser) fail(sp token.Span, reason, hint string) {
	panic(parseError{diag.New(diag.Parse, p.file, sp, reason, hint)})
}

func (p *Parser) expectIdentName() string {
	t := p.expect(token.Ident)
	return t.StrVal
}

// ---- entry points -----------------------------------------------------

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.check(token.EOF) {
		start := p.pos
		stmt := p.parseStmtRecovering()
		if stmt != nil {
			prog.Stmts = append(prog.Stmts, stmt)
		}
		if p.pos == start {
			// Recovery stops at a '}' without consuming it; at top level an
			// unmatched '}' would otherwise be retried forever.
			p.advance()
		}
	}
	return prog
}

// parseStmtRecovering wraps parseStmt in a recover so one malformed statement
// doesn't abort the whole parse; it resynchronizes at the next '}' or a
// statement-starter keyword.
func (p *Parser) parseStmtRecovering() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(parseError)
			if !ok {
				panic(r)
			}
			p.errs = append(p.errs, pe.Diagnostic)
			p.resync()
			stmt = nil
		}
	}()
	return p.parseStmt()
}

var stmtStarters = map[token.Kind]bool{
	token.KwIf: true, token.KwFor: true, token.KwWhile: true, token.KwParallel: true,
	token.KwFn: true, token.KwReturn: true, token.KwYield: true, token.KwTry: true,
	token.KwStop: true, token.KwBreak: true, token.KwContinue: true, token.KwConst: true,
	token.KwClass: true, token.KwImport: true, token.KwExport: true, token.KwUse: true,
}

func (p *Parser) resync() {
	for !p.check(token.EOF) {
		if p.check(token.RBrace) {
			return
		}
		if stmtStarters[p.curKind()] {
			return
		}
		p.advance()
	}
}

func (p *Parser) parseBlock() []ast.Stmt {
	p.expect(token.LBrace)
	var stmts []ast.Stmt
	for !p.check(token.RBrace) && !p.check(token.EOF) {
		s := p.parseStmtRecovering()
		if s != nil {
			stmts = append(stmts, s)
		}
	}
	p.expect(token.RBrace)
	return stmts
}

// ---- statements ---------------------------------------------------------

func (p *Parser) parseStmt() ast.Stmt {
	switch p.curKind() {
	case token.KwIf:
		sp := p.advance().Span
		return p.parseIfChain(sp)
	case token.KwFor:
		return p.parseFor()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwParallel:
		return p.parseParallel()
	case token.KwFn:
		return p.parseFnDecl()
	case token.KwReturn:
		sp := p.advance().Span
		var v ast.Expr
		if canStartExpr(p.curKind()) {
			v = p.parseExpr()
		}
		return &ast.Return{Base: ast.NewBase(sp), Value: v}
	case token.KwYield:
		sp := p.advance().Span
		v := p.parseExpr()
		return &ast.Yield{Base: ast.NewBase(sp), Value: v}
	case token.KwTry:
		return p.parseTry()
	case token.KwStop:
		sp := p.advance().Span
		var code ast.Expr
		if canStartExpr(p.curKind()) {
			code = p.parseExpr()
		}
		return &ast.Stop{Base: ast.NewBase(sp), Code: code}
	case token.KwBreak:
		sp := p.advance().Span
		return &ast.Break{Base: ast.NewBase(sp)}
	case token.KwContinue:
		sp := p.advance().Span
		return &ast.Continue{Base: ast.NewBase(sp)}
	case token.KwConst:
		return p.parseLetConst()
	case token.KwClass:
		return p.parseClassDecl()
	case token.KwImport:
		return p.parseImport()
	case token.KwExport:
		return p.parseExport()
	case token.KwUse:
		return p.parseUse()
	default:
		return p.parseExprOrAssignOrLet()
	}
}

func canStartExpr(k token.Kind) bool {
	switch k {
	case token.Ident, token.Int, token.Float, token.String, token.RawString,
		token.LParen, token.LBracket, token.LBrace, token.KwFn, token.KwNot,
		token.Bang, token.Minus, token.KwTrue, token.KwFalse, token.KwNull:
		return true
	default:
		return false
	}
}

func (p *Parser) parseIfChain(sp token.Span) ast.Stmt {
	cond := p.parseExpr()
	body := p.parseBlock()
	node := &ast.If{Base: ast.NewBase(sp), Branches: []ast.IfBranch{{Cond: cond, Body: body}}}
	switch {
	case p.check(token.KwElif):
		elifSp := p.advance().Span
		node.Else = []ast.Stmt{p.parseIfChain(elifSp)}
	case p.check(token.KwElse):
		p.advance()
		if p.check(token.KwIf) {
			ifSp := p.advance().Span
			node.Else = []ast.Stmt{p.parseIfChain(ifSp)}
		} else {
			node.Else = p.parseBlock()
		}
	}
	return node
}

func (p *Parser) parseFor() ast.Stmt {
	sp := p.advance().Span
	name := p.expectIdentName()
	p.expect(token.KwIn)
	iter := p.parseExpr()
	body := p.parseBlock()
	return &ast.For{Base: ast.NewBase(sp), Var: name, Iter: iter, Body: body}
}

func (p *Parser) parseWhile() ast.Stmt {
	sp := p.advance().Span
	cond := p.parseExpr()
	body := p.parseBlock()
	return &ast.While{Base: ast.NewBase(sp), Cond: cond, Body: body}
}

func (p *Parser) parseParallel() ast.Stmt {
	sp := p.advance().Span
	name := p.expectIdentName()

	var workers ast.Expr
	var iter ast.Expr
	if p.check(token.KwWorkers) {
		p.advance()
		p.expect(token.Assign)
		workers = p.parseExpr()
		p.expect(token.KwIn)
		iter = p.parseExpr()
	} else {
		p.expect(token.KwIn)
		iter = p.parseExpr()
		if p.check(token.KwWorkers) {
			p.advance()
			p.expect(token.Assign)
			workers = p.parseExpr()
		}
	}
	body := p.parseBlock()
	return &ast.Parallel{Base: ast.NewBase(sp), Var: name, Iter: iter, Workers: workers, Body: body}
}

func (p *Parser) parseParams() []ast.Param {
	p.expect(token.LParen)
	var params []ast.Param
	for !p.check(token.RParen) && !p.check(token.EOF) {
		name := p.expectIdentName()
		var def ast.Expr
		if _, ok := p.accept(token.Assign); ok {
			def = p.parseExpr()
		}
		params = append(params, ast.Param{Name: name, Default: def})
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	p.expect(token.RParen)
	return params
}

func (p *Parser) parseFnDecl() ast.Stmt {
	sp := p.advance().Span
	name := p.expectIdentName()
	params := p.parseParams()
	body := p.parseBlock()
	return &ast.FnDecl{Base: ast.NewBase(sp), Name: name, Params: params, Body: body}
}

func (p *Parser) parseTry() ast.Stmt {
	sp := p.advance().Span
	body := p.parseBlock()
	p.expect(token.KwCatch)
	catchVar := p.expectIdentName()
	catchBody := p.parseBlock()
	var finally []ast.Stmt
	if _, ok := p.accept(token.KwFinally); ok {
		finally = p.parseBlock()
	}
	return &ast.Try{Base: ast.NewBase(sp), Body: body, CatchVar: catchVar, CatchBody: catchBody, Finally: finally}
}

func (p *Parser) parseLetConst() ast.Stmt {
	sp := p.advance().Span // const
	name := p.expectIdentName()
	typ := p.maybeTypeAnnotation()
	p.expect(token.Walrus)
	val := p.parseExpr()
	return &ast.Let{Base: ast.NewBase(sp), Name: name, Type: typ, Value: val, IsConst: true}
}

// maybeTypeAnnotation parses an optional `: TypeName` annotation. The type
// name is recorded verbatim and never checked for compatibility (spec.md §4.3).
func (p *Parser) maybeTypeAnnotation() string {
	if _, ok := p.accept(token.Colon); ok {
		return p.expectIdentName()
	}
	return ""
}

func (p *Parser) parseClassDecl() ast.Stmt {
	sp := p.advance().Span
	name := p.expectIdentName()
	p.expect(token.LBrace)
	var fields []ast.Field_
	var methods []*ast.FnDecl
	for !p.check(token.RBrace) && !p.check(token.EOF) {
		if p.check(token.KwFn) {
			m := p.parseFnDecl().(*ast.FnDecl)
			methods = append(methods, m)
			continue
		}
		fname := p.expectIdentName()
		typ := p.maybeTypeAnnotation()
		var def ast.Expr
		if _, ok := p.accept(token.Assign); ok {
			def = p.parseExpr()
		}
		fields = append(fields, ast.Field_{Name: fname, Type: typ, Default: def})
	}
	p.expect(token.RBrace)
	return &ast.ClassDecl{Base: ast.NewBase(sp), Name: name, Fields: fields, Methods: methods}
}

func (p *Parser) parseImport() ast.Stmt {
	sp := p.advance().Span
	names := []string{p.expectIdentName()}
	for {
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
		names = append(names, p.expectIdentName())
	}
	srcTok := p.cur()
	if srcTok.Kind != token.String && srcTok.Kind != token.RawString {
		p.fail(srcTok.Span, "expected a string naming the import source", "import takes a list of names followed by a string source, e.g. import a, b \"mathutils\"")
	}
	p.advance()
	return &ast.Import{Base: ast.NewBase(sp), Names: names, Source: srcTok.StrVal}
}

func (p *Parser) parseExport() ast.Stmt {
	sp := p.advance().Span
	names := []string{p.expectIdentName()}
	for {
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
		names = append(names, p.expectIdentName())
	}
	return &ast.Export{Base: ast.NewBase(sp), Names: names}
}

// parseUse desugars `use <module>` into an Import of the whole host module,
// binding the module's own name in scope (SPEC_FULL.md §8).
func (p *Parser) parseUse() ast.Stmt {
	sp := p.advance().Span
	name := p.expectIdentName()
	return &ast.Import{Base: ast.NewBase(sp), Names: []string{name}, Source: name}
}

// parseExprOrAssignOrLet handles the three statement shapes that begin with
// an expression: `ident := expr`, `target op= expr`, and bare expression
// statements, distinguished after the fact by what follows the parsed
// expression (spec.md §4.2).
func (p *Parser) parseExprOrAssignOrLet() ast.Stmt {
	sp := p.cur().Span
	expr := p.parseExpr()

	if p.check(token.Walrus) {
		ident, ok := expr.(*ast.Ident)
		if !ok {
			p.fail(sp, "':=' must declare a bare identifier", "")
		}
		p.advance()
		val := p.parseExpr()
		return &ast.Let{Base: ast.NewBase(sp), Name: ident.Name, Value: val}
	}

	if p.check(token.Colon) {
		ident, ok := expr.(*ast.Ident)
		if !ok {
			p.fail(sp, "type annotation must follow a bare identifier", "")
		}
		typ := p.maybeTypeAnnotation()
		p.expect(token.Walrus)
		val := p.parseExpr()
		return &ast.Let{Base: ast.NewBase(sp), Name: ident.Name, Type: typ, Value: val}
	}

	if assignOps[p.curKind()] {
		target, ok := expr.(ast.AssignTarget)
		if !ok {
			p.fail(sp, "invalid assignment target", "assignment targets must be a variable, index, or field")
		}
		op := p.advance().Kind
		rhs := p.parseExpr()
		return &ast.Assign{Base: ast.NewBase(sp), Target: target, Op: op, Value: rhs}
	}

	return &ast.ExprStmt{Base: ast.NewBase(sp), X: expr}
}

var assignOps = map[token.Kind]bool{
	token.Assign: true, token.PlusEq: true, token.MinusEq: true,
	token.StarEq: true, token.SlashEq: true, token.PercentEq: true,
}
