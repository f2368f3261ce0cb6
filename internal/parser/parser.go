// Package parser implements the recursive-descent dice-expression parser
// (spec.md §4.1), grounded on the teacher compiler's surge/internal/parser
// (a Parser wrapping a *lexer.Lexer plus a Peek-style lookahead), with
// one hand-written function per binary operator precedence level.
package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuyisen-x/oxidice/internal/ast"
	"github.com/xuyisen-x/oxidice/internal/diag"
	"github.com/xuyisen-x/oxidice/internal/lexer"
	"github.com/xuyisen-x/oxidice/internal/source"
	"github.com/xuyisen-x/oxidice/internal/token"
)

// Parser holds the state needed to parse a single expression.
type Parser struct {
	lx       *lexer.Lexer
	tree     *ast.Tree
	reporter diag.Reporter
}

// Parse tokenizes and parses text (belonging to file) into an AST. Parse
// errors are reported through reporter; the returned Tree may still be
// partially built on error, matching spec §7's "no partial result leaks
// out of validate" (callers must check the reporter's bag before using
// the tree for anything beyond diagnostics).
func Parse(file source.FileID, text string, reporter diag.Reporter) *ast.Tree {
	p := &Parser{
		lx:       lexer.New(file, text, reporter),
		tree:     ast.NewTree(),
		reporter: reporter,
	}
	root := p.parseExpr()
	if tok := p.lx.Peek(); tok.Kind != token.EOF {
		p.errorf(diag.SynUnexpectedToken, tok.Span, "unexpected trailing input %q", tok.Text)
	}
	p.tree.Root = root
	return p.tree
}

func (p *Parser) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	diag.ReportError(p.reporter, code, sp, fmt.Sprintf(format, args...)).Emit()
}

func (p *Parser) span(id ast.ExprID) source.Span {
	e := p.tree.Get(id)
	if e == nil {
		return source.Span{}
	}
	return e.Span
}

// expect consumes tok if it matches k, reporting code/msg and leaving the
// cursor in place otherwise (so the caller can continue error recovery).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) source.Span {
	tok := p.lx.Peek()
	if tok.Kind == k {
		p.lx.Next()
		return tok.Span
	}
	p.errorf(code, tok.Span, "%s (found %q)", msg, tok.Text)
	return tok.Span
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// synthInt allocates an EInt node from a digit string that trails a
// modifier keyword inside one Ident token (see matchKeyword).
func (p *Parser) synthInt(digits string, sp source.Span) ast.ExprID {
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		v = math.MaxInt64
	}
	return p.tree.New(ast.Expr{Kind: ast.EInt, IntVal: v, Span: sp})
}

// matchKeyword checks whether the next token is an Ident that is exactly
// one of prefixes, or one of prefixes immediately followed by a run of
// digits inside the same Ident. The lexer ends an identifier at its first
// digit, so "kh3" arrives as Ident "kh" then Int "3" and matches the
// first form. It does not consume the token.
func (p *Parser) matchKeyword(prefixes ...string) (prefix, rest string, tok token.Token, ok bool) {
	tok = p.lx.Peek()
	if tok.Kind != token.Ident {
		return "", "", tok, false
	}
	for _, pre := range prefixes {
		if tok.Text == pre {
			return pre, "", tok, true
		}
	}
	for _, pre := range prefixes {
		if strings.HasPrefix(tok.Text, pre) {
			rest := tok.Text[len(pre):]
			if allDigits(rest) {
				return pre, rest, tok, true
			}
		}
	}
	return "", "", tok, false
}

func startsAtom(tok token.Token) bool {
	switch tok.Kind {
	case token.Int, token.Float, token.LParen, token.LBrace, token.LBracket, token.Ident:
		return true
	default:
		return false
	}
}
