package parser

import (
	"github.com/xuyisen-x/oxidice/internal/ast"
	"github.com/xuyisen-x/oxidice/internal/diag"
	"github.com/xuyisen-x/oxidice/internal/token"
)

// parseExpr is the full expression grammar entry point (additive level),
// reused for call args, list elements, and group contents.
func (p *Parser) parseExpr() ast.ExprID {
	return p.parseAdditive()
}

func (p *Parser) parseAdditive() ast.ExprID {
	left := p.parseMultiplicative()
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.Plus, token.Minus:
			p.lx.Next()
			right := p.parseMultiplicative()
			left = p.tree.New(ast.Expr{
				Kind: ast.EBinary, BinOp: tok.Kind, LHS: left, RHS: right,
				Span: p.span(left).Cover(p.span(right)),
			})
		default:
			return left
		}
	}
}

func (p *Parser) parseMultiplicative() ast.ExprID {
	left := p.parseUnary()
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.Star, token.Slash, token.SlashSlash, token.Percent, token.StarStar:
			p.lx.Next()
			right := p.parseUnary()
			left = p.tree.New(ast.Expr{
				Kind: ast.EBinary, BinOp: tok.Kind, LHS: left, RHS: right,
				Span: p.span(left).Cover(p.span(right)),
			})
		default:
			return left
		}
	}
}

func (p *Parser) parseUnary() ast.ExprID {
	tok := p.lx.Peek()
	if tok.Kind == token.Plus || tok.Kind == token.Minus {
		p.lx.Next()
		operand := p.parseUnary()
		return p.tree.New(ast.Expr{
			Kind: ast.EUnary, UnaryOp: tok.Kind, Operand: operand,
			Span: tok.Span.Cover(p.span(operand)),
		})
	}
	return p.parseModifierChain(p.parseDiceOrAtom())
}

// isDiceTrigger reports whether tok is the "d"/"dF"/"dC" ident that
// turns a preceding atom into a dice expression's count.
func isDiceTrigger(tok token.Token) bool {
	return tok.Kind == token.Ident && (tok.Text == "d" || tok.Text == "dF" || tok.Text == "dC")
}

func (p *Parser) parseDiceOrAtom() ast.ExprID {
	if isDiceTrigger(p.lx.Peek()) {
		trigger := p.lx.Next()
		return p.parseDiceTail(ast.NoExprID, trigger)
	}
	left := p.parseAtom()
	if isDiceTrigger(p.lx.Peek()) {
		trigger := p.lx.Next()
		left = p.parseDiceTail(left, trigger)
	}
	return left
}

func (p *Parser) parseDiceTail(count ast.ExprID, trigger token.Token) ast.ExprID {
	startSpan := trigger.Span
	if count.IsValid() {
		startSpan = p.span(count)
	}
	switch trigger.Text {
	case "d":
		face := p.parseAtom()
		return p.tree.New(ast.Expr{
			Kind: ast.EDice, Count: count, Face: ast.FaceConcrete, FaceExpr: face,
			Span: startSpan.Cover(p.span(face)),
		})
	case "dF":
		return p.tree.New(ast.Expr{Kind: ast.EDice, Count: count, Face: ast.FaceFate, Span: startSpan.Cover(trigger.Span)})
	default: // "dC"
		return p.tree.New(ast.Expr{Kind: ast.EDice, Count: count, Face: ast.FaceCoin, Span: startSpan.Cover(trigger.Span)})
	}
}

func (p *Parser) parseAtom() ast.ExprID {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Int:
		p.lx.Next()
		return p.tree.New(ast.Expr{Kind: ast.EInt, IntVal: parseIntLiteral(tok.Text), Span: tok.Span})
	case token.Float:
		p.lx.Next()
		return p.tree.New(ast.Expr{Kind: ast.EFloat, FloatVal: parseFloatLiteral(tok.Text), Span: tok.Span})
	case token.LBracket:
		return p.parseListLiteral()
	case token.LParen:
		p.lx.Next()
		e := p.parseExpr()
		p.expect(token.RParen, diag.SynUnclosedGroup, "unclosed '('")
		return e
	case token.LBrace:
		p.lx.Next()
		e := p.parseExpr()
		p.expect(token.RBrace, diag.SynUnclosedGroup, "unclosed '{'")
		return e
	case token.Ident:
		return p.parseCallLike()
	default:
		p.errorf(diag.SynUnexpectedToken, tok.Span, "unexpected token %q", tok.Text)
		if tok.Kind != token.EOF {
			p.lx.Next()
		}
		return p.tree.New(ast.Expr{Kind: ast.EInvalid, Span: tok.Span})
	}
}

func (p *Parser) parseListLiteral() ast.ExprID {
	start := p.lx.Next() // '['
	var elems []ast.ExprID
	if p.lx.Peek().Kind != token.RBracket {
		for {
			elems = append(elems, p.parseExpr())
			if p.lx.Peek().Kind == token.Comma {
				p.lx.Next()
				continue
			}
			break
		}
	}
	end := p.expect(token.RBracket, diag.SynUnclosedGroup, "unclosed list literal")
	return p.tree.New(ast.Expr{Kind: ast.EList, Elems: elems, Span: start.Span.Cover(end)})
}

func (p *Parser) parseArgs() ([]ast.ExprID, token.Token) {
	if p.lx.Peek().Kind != token.LParen {
		p.errorf(diag.SynUnexpectedToken, p.lx.Peek().Span, "expected '('")
		return nil, p.lx.Peek()
	}
	p.lx.Next()
	var args []ast.ExprID
	if p.lx.Peek().Kind != token.RParen {
		for {
			args = append(args, p.parseExpr())
			if p.lx.Peek().Kind == token.Comma {
				p.lx.Next()
				continue
			}
			break
		}
	}
	closeTok := p.lx.Peek()
	p.expect(token.RParen, diag.SynUnclosedGroup, "unclosed call")
	return args, closeTok
}

func (p *Parser) parseCallLike() ast.ExprID {
	nameTok := p.lx.Next()
	if nameTok.Text == "filter" {
		return p.parseFilterCall(nameTok)
	}
	if p.lx.Peek().Kind != token.LParen {
		p.errorf(diag.SynUnexpectedToken, nameTok.Span, "identifier %q is not a valid atom (expected a function call)", nameTok.Text)
		return p.tree.New(ast.Expr{Kind: ast.EInvalid, Span: nameTok.Span})
	}
	args, closeTok := p.parseArgs()
	return p.tree.New(ast.Expr{
		Kind: ast.ECall, Name: nameTok.Text, NameSpan: nameTok.Span, Args: args,
		Span: nameTok.Span.Cover(closeTok.Span),
	})
}

// parseFilterCall parses the "filter<cmp><atom>(args)" special form.
func (p *Parser) parseFilterCall(nameTok token.Token) ast.ExprID {
	cmpTok := p.lx.Peek()
	cmp := ast.CmpFromToken(cmpTok.Kind)
	if cmp == ast.CmpNone {
		p.errorf(diag.SynExpectedComparison, cmpTok.Span, "filter requires a comparison operator")
	} else {
		p.lx.Next()
	}
	operand := p.parseAtom()
	args, closeTok := p.parseArgs()
	return p.tree.New(ast.Expr{
		Kind: ast.EFilterCall, Name: "filter", NameSpan: nameTok.Span, Args: args,
		FilterCmp: ast.CmpSpec{Op: cmp, Operand: operand},
		Span:      nameTok.Span.Cover(closeTok.Span),
	})
}
