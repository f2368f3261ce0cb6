package parser

import (
	"github.com/xuyisen-x/oxidice/internal/ast"
	"github.com/xuyisen-x/oxidice/internal/diag"
	"github.com/xuyisen-x/oxidice/internal/token"
)

// parseModifierChain consumes zero or more postfix modifiers
// left-to-right (spec.md §4.1 level 3, §4.3).
func (p *Parser) parseModifierChain(base ast.ExprID) ast.ExprID {
	left := base
	for {
		if prefix, rest, tok, ok := p.matchKeyword("kh", "kl", "dh", "dl"); ok {
			p.lx.Next()
			n := p.modParamCount(rest, tok)
			left = p.wrapModifier(left, ast.Modifier{Kind: rankKind(prefix), N: n, Span: tok.Span})
			continue
		}
		if prefix, rest, tok, ok := p.matchKeyword("min", "max"); ok {
			p.lx.Next()
			var x ast.ExprID
			if rest != "" {
				x = p.synthInt(rest, tok.Span)
			} else {
				x = p.parseAtom()
			}
			kind := ast.ModMin
			if prefix == "max" {
				kind = ast.ModMax
			}
			left = p.wrapModifier(left, ast.Modifier{Kind: kind, X: x, Span: tok.Span})
			continue
		}
		if tok := p.lx.Peek(); tok.Kind == token.Bang {
			p.lx.Next()
			cmp := p.parseModParamOptional()
			limit := p.parseLimit()
			left = p.wrapModifier(left, ast.Modifier{Kind: ast.ModExplode, Cmp: cmp, Limit: limit, Span: tok.Span})
			continue
		}
		if tok := p.lx.Peek(); tok.Kind == token.BangBang {
			p.lx.Next()
			cmp := p.parseModParamOptional()
			limit := p.parseLimit()
			left = p.wrapModifier(left, ast.Modifier{Kind: ast.ModCompound, Cmp: cmp, Limit: limit, Span: tok.Span})
			continue
		}
		if _, rest, tok, ok := p.matchKeyword("r"); ok {
			p.lx.Next()
			cmp := p.modParamCmp(rest, tok, "r")
			limit := p.parseLimit()
			left = p.wrapModifier(left, ast.Modifier{Kind: ast.ModReroll, Cmp: cmp, Limit: limit, Span: tok.Span})
			continue
		}
		if prefix, rest, tok, ok := p.matchKeyword("cs", "df", "sf"); ok {
			p.lx.Next()
			cmp := p.modParamCmp(rest, tok, prefix)
			left = p.wrapModifier(left, ast.Modifier{Kind: tagKind(prefix), Cmp: cmp, Span: tok.Span})
			continue
		}
		return left
	}
}

func (p *Parser) wrapModifier(base ast.ExprID, mod ast.Modifier) ast.ExprID {
	return p.tree.New(ast.Expr{
		Kind: ast.EModified, Base: base, Mod: mod,
		Span: p.span(base).Cover(mod.Span),
	})
}

func rankKind(prefix string) ast.ModKind {
	switch prefix {
	case "kh":
		return ast.ModKH
	case "kl":
		return ast.ModKL
	case "dh":
		return ast.ModDH
	default:
		return ast.ModDL
	}
}

func tagKind(prefix string) ast.ModKind {
	switch prefix {
	case "cs":
		return ast.ModCS
	case "df":
		return ast.ModDF
	default:
		return ast.ModSF
	}
}

// modParamCount parses an optional kh/kl/dh/dl rank count: a digit
// suffix inside the keyword's Ident if present, otherwise the immediately
// following Int token (how the lexer delivers "kh3"), or NoExprID
// (default n=1).
func (p *Parser) modParamCount(rest string, tok token.Token) ast.ExprID {
	if rest != "" {
		return p.synthInt(rest, tok.Span)
	}
	if nt := p.lx.Peek(); nt.Kind == token.Int {
		p.lx.Next()
		return p.tree.New(ast.Expr{Kind: ast.EInt, IntVal: parseIntLiteral(nt.Text), Span: nt.Span})
	}
	return ast.NoExprID
}

// modParamCmp resolves the mod_param for r/cs/df/sf: a digit suffix
// inside the keyword's Ident means "=digits", otherwise it delegates to
// the general comparator/bare-atom parser, where the lexer's split
// "r" "5" likewise reads as "r=5".
func (p *Parser) modParamCmp(rest string, tok token.Token, context string) ast.CmpSpec {
	if rest != "" {
		return ast.CmpSpec{Op: ast.CmpEq, Operand: p.synthInt(rest, tok.Span)}
	}
	return p.parseModParamRequired(context)
}

// parseModParamOptional parses an explicit comparator+atom, a bare-atom
// "=atom" shorthand, or nothing (caller applies a modifier-specific
// default, e.g. explode's "= max(face)").
func (p *Parser) parseModParamOptional() ast.CmpSpec {
	tok := p.lx.Peek()
	if cmp := ast.CmpFromToken(tok.Kind); cmp != ast.CmpNone {
		p.lx.Next()
		operand := p.parseAtom()
		return ast.CmpSpec{Op: cmp, Operand: operand}
	}
	if startsAtom(tok) {
		operand := p.parseAtom()
		return ast.CmpSpec{Op: ast.CmpEq, Operand: operand}
	}
	return ast.CmpSpec{Op: ast.CmpNone, Operand: ast.NoExprID}
}

func (p *Parser) parseModParamRequired(context string) ast.CmpSpec {
	cmp := p.parseModParamOptional()
	if cmp.Op == ast.CmpNone {
		tok := p.lx.Peek()
		p.errorf(diag.SynExpectedComparison, tok.Span, "%q requires a comparison", context)
	}
	return cmp
}

// parseLimit parses the optional "lt<atom>" and/or "lc<atom>" suffix,
// in either order, attached only to r/!/!!.
func (p *Parser) parseLimit() ast.LimitSpec {
	limit := ast.LimitSpec{LT: ast.NoExprID, LC: ast.NoExprID}
	for i := 0; i < 2; i++ {
		prefix, rest, tok, ok := p.matchKeyword("lt", "lc")
		if !ok {
			break
		}
		p.lx.Next()
		var n ast.ExprID
		if rest != "" {
			n = p.synthInt(rest, tok.Span)
		} else {
			n = p.parseAtom()
		}
		if prefix == "lt" {
			limit.LT = n
		} else {
			limit.LC = n
		}
	}
	return limit
}
