package parser

import (
	"github.com/latch-lang/latch/internal/ast"
	"github.com/latch-lang/latch/internal/token"
)

// parseExpr is the expression entry point: level 1, `|>`, the loosest
// binding operator in spec.md's table, with ternary sitting one level
// tighter per §4.2 ("just above |>").
func (p *Parser) parseExpr() ast.Expr {
	return p.parsePipe()
}

func (p *Parser) parsePipe() ast.Expr {
	left := p.parseTernary()
	for p.check(token.Pipe) {
		sp := p.advance().Span
		rhsExpr := p.parseTernary()
		var call *ast.Call
		if c, ok := rhsExpr.(*ast.Call); ok {
			call = c
		} else {
			call = &ast.Call{Base: ast.NewBase(rhsExpr.Span()), Callee: rhsExpr}
		}
		left = &ast.Pipe{Base: ast.NewBase(sp), Lhs: left, Rhs: call}
	}
	return left
}

func (p *Parser) parseTernary() ast.Expr {
	cond := p.parseOr()
	if p.check(token.Question) {
		sp := p.advance().Span
		then := p.parseExpr()
		p.expect(token.Colon)
		els := p.parseTernary()
		return &ast.Ternary{Base: ast.NewBase(sp), Cond: cond, Then: then, Else: els}
	}
	return cond
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseNullCoal()
	for p.check(token.KwOr) {
		sp := p.advance().Span
		right := p.parseNullCoal()
		left = &ast.Binary{Base: ast.NewBase(sp), Op: token.KwOr, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseNullCoal() ast.Expr {
	left := p.parseOrOr()
	if p.check(token.NullCoal) {
		sp := p.advance().Span
		right := p.parseNullCoal() // right-assoc
		return &ast.Binary{Base: ast.NewBase(sp), Op: token.NullCoal, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseOrOr() ast.Expr {
	left := p.parseAndAnd()
	for p.check(token.OrOr) {
		sp := p.advance().Span
		right := p.parseAndAnd()
		left = &ast.Binary{Base: ast.NewBase(sp), Op: token.OrOr, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAndAnd() ast.Expr {
	left := p.parseEquality()
	for p.check(token.AndAnd) {
		sp := p.advance().Span
		right := p.parseEquality()
		left = &ast.Binary{Base: ast.NewBase(sp), Op: token.AndAnd, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for p.check(token.Eq) || p.check(token.Neq) {
		op := p.advance()
		right := p.parseRelational()
		left = &ast.Binary{Base: ast.NewBase(op.Span), Op: op.Kind, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseRelational() ast.Expr {
	left := p.parseRange()
	for p.check(token.Lt) || p.check(token.Gt) || p.check(token.Le) || p.check(token.Ge) || p.check(token.KwIn) {
		op := p.advance()
		right := p.parseRange()
		left = &ast.Binary{Base: ast.NewBase(op.Span), Op: op.Kind, Left: left, Right: right}
	}
	return left
}

// parseRange is non-associative: `a..b` never chains further.
func (p *Parser) parseRange() ast.Expr {
	left := p.parseAdditive()
	if p.check(token.DotDot) {
		sp := p.advance().Span
		right := p.parseAdditive()
		return &ast.Range{Base: ast.NewBase(sp), Start: left, End: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.check(token.Plus) || p.check(token.Minus) {
		op := p.advance()
		right := p.parseMultiplicative()
		left = &ast.Binary{Base: ast.NewBase(op.Span), Op: op.Kind, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parsePow()
	for p.check(token.Star) || p.check(token.Slash) || p.check(token.Percent) {
		op := p.advance()
		right := p.parsePow()
		left = &ast.Binary{Base: ast.NewBase(op.Span), Op: op.Kind, Left: left, Right: right}
	}
	return left
}

// parsePow is right-associative: `2 ** 3 ** 2 == 2 ** (3 ** 2)`.
func (p *Parser) parsePow() ast.Expr {
	left := p.parseUnary()
	if p.check(token.StarStar) {
		sp := p.advance().Span
		right := p.parsePow()
		return &ast.Binary{Base: ast.NewBase(sp), Op: token.StarStar, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	if p.check(token.Bang) || p.check(token.Minus) || p.check(token.KwNot) {
		op := p.advance()
		arg := p.parseUnary()
		return &ast.Unary{Base: ast.NewBase(op.Span), Op: op.Kind, Arg: arg}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	for {
		switch {
		case p.check(token.Dot):
			sp := p.advance().Span
			name := p.expectIdentName()
			x = &ast.Field{Base: ast.NewBase(sp), Target: x, Name: name}
		case p.check(token.SafeDot):
			sp := p.advance().Span
			name := p.expectIdentName()
			x = &ast.SafeField{Base: ast.NewBase(sp), Target: x, Name: name}
		case p.check(token.LBracket):
			x = p.parseIndexOrSlice(x)
		case p.check(token.LParen):
			sp := p.advance().Span
			var args []ast.Expr
			for !p.check(token.RParen) && !p.check(token.EOF) {
				args = append(args, p.parseExpr())
				if _, ok := p.accept(token.Comma); !ok {
					break
				}
			}
			p.expect(token.RParen)
			x = &ast.Call{Base: ast.NewBase(sp), Callee: x, Args: args}
		default:
			return x
		}
	}
}

func (p *Parser) parseIndexOrSlice(target ast.Expr) ast.Expr {
	sp := p.advance().Span // '['
	var start ast.Expr
	if !p.check(token.Colon) {
		start = p.parseExpr()
	}
	if _, ok := p.accept(token.Colon); ok {
		var end ast.Expr
		if !p.check(token.RBracket) {
			end = p.parseExpr()
		}
		p.expect(token.RBracket)
		return &ast.Slice{Base: ast.NewBase(sp), Target: target, Start: start, End: end}
	}
	p.expect(token.RBracket)
	return &ast.Index{Base: ast.NewBase(sp), Target: target, Index: start}
}

func (p *Parser) parsePrimary() ast.Expr {
	t := p.cur()
	switch t.Kind {
	case token.Int:
		p.advance()
		return &ast.IntLit{Base: ast.NewBase(t.Span), Value: t.IntVal}
	case token.Float:
		p.advance()
		return &ast.FloatLit{Base: ast.NewBase(t.Span), Value: t.FloatVal}
	case token.KwTrue:
		p.advance()
		return &ast.BoolLit{Base: ast.NewBase(t.Span), Value: true}
	case token.KwFalse:
		p.advance()
		return &ast.BoolLit{Base: ast.NewBase(t.Span), Value: false}
	case token.KwNull:
		p.advance()
		return &ast.NullLit{Base: ast.NewBase(t.Span)}
	case token.String, token.RawString:
		p.advance()
		return p.buildStringLit(t)
	case token.Ident:
		p.advance()
		return &ast.Ident{Base: ast.NewBase(t.Span), Name: t.StrVal}
	case token.LParen:
		p.advance()
		x := p.parseExpr()
		p.expect(token.RParen)
		return x
	case token.LBracket:
		return p.parseListLitOrComp()
	case token.LBrace:
		return p.parseDictLit()
	case token.KwFn:
		return p.parseFnLit()
	}

	p.fail(t.Span, "unexpected token "+t.Kind.String()+" in expression", "")
	panic("unreachable")
}

// buildStringLit re-lexes/parses each ${...} interpolation segment recursively
// (spec.md §4.1).
func (p *Parser) buildStringLit(t token.Token) ast.Expr {
	raw := t.Kind == token.RawString
	lit := &ast.StringLit{Base: ast.NewBase(t.Span), Raw: raw}
	if len(t.Segments) == 0 {
		lit.Parts = []ast.StringPart{{Literal: t.StrVal}}
		return lit
	}
	for _, seg := range t.Segments {
		if !seg.IsExpr {
			lit.Parts = append(lit.Parts, ast.StringPart{Literal: seg.Literal})
			continue
		}
		subProg, errs := Parse(p.file, seg.Expr)
		if len(errs) > 0 {
			p.errs = append(p.errs, errs...)
		}
		if len(subProg.Stmts) != 1 {
			p.fail(t.Span, "interpolation must contain exactly one expression", "")
		}
		es, ok := subProg.Stmts[0].(*ast.ExprStmt)
		if !ok {
			p.fail(t.Span, "interpolation must contain an expression", "")
		}
		lit.Parts = append(lit.Parts, ast.StringPart{Expr: es.X})
	}
	return lit
}

// parseListLitOrComp disambiguates `[expr, expr, ...]` from
// `[expr for var in iter if guard?]` by looking for `for` after the first
// element (spec.md §4.2).
func (p *Parser) parseListLitOrComp() ast.Expr {
	sp := p.advance().Span // '['
	if p.check(token.RBracket) {
		p.advance()
		return &ast.ListLit{Base: ast.NewBase(sp)}
	}

	first := p.parseExpr()
	if p.check(token.KwFor) {
		p.advance()
		varName := p.expectIdentName()
		p.expect(token.KwIn)
		iter := p.parseExpr()
		var guard ast.Expr
		if _, ok := p.accept(token.KwIf); ok {
			guard = p.parseExpr()
		}
		p.expect(token.RBracket)
		return &ast.ListComp{Base: ast.NewBase(sp), Expr: first, Var: varName, Iter: iter, Guard: guard}
	}

	items := []ast.Expr{first}
	for {
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
		if p.check(token.RBracket) {
			break
		}
		items = append(items, p.parseExpr())
	}
	p.expect(token.RBracket)
	return &ast.ListLit{Base: ast.NewBase(sp), Items: items}
}

func (p *Parser) parseDictLit() ast.Expr {
	sp := p.advance().Span // '{'
	lit := &ast.DictLit{Base: ast.NewBase(sp)}
	for !p.check(token.RBrace) && !p.check(token.EOF) {
		var key ast.Expr
		if p.check(token.Ident) {
			nameTok := p.advance()
			key = &ast.StringLit{Base: ast.NewBase(nameTok.Span), Parts: []ast.StringPart{{Literal: nameTok.StrVal}}}
		} else {
			key = p.parseExpr()
		}
		p.expect(token.Colon)
		val := p.parseExpr()
		lit.Pairs = append(lit.Pairs, ast.DictEntry{Key: key, Value: val})
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	p.expect(token.RBrace)
	return lit
}

func (p *Parser) parseFnLit() ast.Expr {
	sp := p.advance().Span // 'fn'
	params := p.parseParams()
	body := p.parseBlock()
	return &ast.FnLit{Base: ast.NewBase(sp), Params: params, Body: body}
}
