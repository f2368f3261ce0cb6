// Package lexer tokenizes dice-expression source text. It follows the
// teacher compiler's Next/Peek single-token-lookahead shape
// (surge/internal/lexer), simplified: dice expressions have no trivia,
// comments, or string literals worth preserving.
package lexer

import (
	"github.com/xuyisen-x/oxidice/internal/diag"
	"github.com/xuyisen-x/oxidice/internal/source"
	"github.com/xuyisen-x/oxidice/internal/token"
)

// Lexer scans a single source.File into a stream of tokens.
type Lexer struct {
	file     source.FileID
	text     string
	off      int
	reporter diag.Reporter
	look     *token.Token
}

// New returns a Lexer over text belonging to file.
func New(file source.FileID, text string, reporter diag.Reporter) *Lexer {
	return &Lexer{file: file, text: text, reporter: reporter}
}

func (lx *Lexer) eof() bool { return lx.off >= len(lx.text) }

func (lx *Lexer) peekByte() byte {
	if lx.eof() {
		return 0
	}
	return lx.text[lx.off]
}

func (lx *Lexer) peekByteAt(n int) byte {
	if lx.off+n >= len(lx.text) {
		return 0
	}
	return lx.text[lx.off+n]
}

func (lx *Lexer) span(start int) source.Span {
	return source.Span{File: lx.file, Start: uint32(start), End: uint32(lx.off)}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file, Start: uint32(lx.off), End: uint32(lx.off)}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Next returns and consumes the next token.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		t := *lx.look
		lx.look = nil
		return t
	}
	lx.skipSpace()
	if lx.eof() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}
	ch := lx.peekByte()
	switch {
	case isDigit(ch) || (ch == '.' && isDigit(lx.peekByteAt(1))):
		return lx.scanNumber()
	case isIdentStart(ch):
		return lx.scanIdent()
	default:
		return lx.scanOperator()
	}
}

func (lx *Lexer) skipSpace() {
	for !lx.eof() {
		switch lx.peekByte() {
		case ' ', '\t', '\r', '\n':
			lx.off++
		default:
			return
		}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// isIdentCont stops at digits, so "d6kh3" scans as d, 6, kh, 3: dice
// faces and modifier counts reach the parser as separate Int tokens.
func isIdentCont(b byte) bool { return isIdentStart(b) }

func (lx *Lexer) scanNumber() token.Token {
	start := lx.off
	isFloat := false
	for !lx.eof() && isDigit(lx.peekByte()) {
		lx.off++
	}
	if !lx.eof() && lx.peekByte() == '.' && isDigit(lx.peekByteAt(1)) {
		isFloat = true
		lx.off++
		for !lx.eof() && isDigit(lx.peekByte()) {
			lx.off++
		}
	}
	sp := lx.span(start)
	kind := token.Int
	if isFloat {
		kind = token.Float
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.text[start:lx.off]}
}

func (lx *Lexer) scanIdent() token.Token {
	start := lx.off
	for !lx.eof() && isIdentCont(lx.peekByte()) {
		lx.off++
	}
	return token.Token{Kind: token.Ident, Span: lx.span(start), Text: lx.text[start:lx.off]}
}

func (lx *Lexer) scanOperator() token.Token {
	start := lx.off
	ch := lx.peekByte()
	two := func(k token.Kind) token.Token {
		lx.off += 2
		return token.Token{Kind: k, Span: lx.span(start), Text: lx.text[start:lx.off]}
	}
	one := func(k token.Kind) token.Token {
		lx.off++
		return token.Token{Kind: k, Span: lx.span(start), Text: lx.text[start:lx.off]}
	}
	switch ch {
	case '(':
		return one(token.LParen)
	case ')':
		return one(token.RParen)
	case '{':
		return one(token.LBrace)
	case '}':
		return one(token.RBrace)
	case '[':
		return one(token.LBracket)
	case ']':
		return one(token.RBracket)
	case ',':
		return one(token.Comma)
	case '+':
		return one(token.Plus)
	case '-':
		return one(token.Minus)
	case '*':
		if lx.peekByteAt(1) == '*' {
			return two(token.StarStar)
		}
		return one(token.Star)
	case '/':
		if lx.peekByteAt(1) == '/' {
			return two(token.SlashSlash)
		}
		return one(token.Slash)
	case '%':
		return one(token.Percent)
	case '=':
		return one(token.Eq)
	case '<':
		switch lx.peekByteAt(1) {
		case '>':
			return two(token.Ne)
		case '=':
			return two(token.Le)
		default:
			return one(token.Lt)
		}
	case '>':
		if lx.peekByteAt(1) == '=' {
			return two(token.Ge)
		}
		return one(token.Gt)
	case '!':
		if lx.peekByteAt(1) == '!' {
			return two(token.BangBang)
		}
		return one(token.Bang)
	default:
		sp := lx.span(start)
		sp.End = sp.Start + 1
		lx.off++
		diag.ReportError(lx.reporter, diag.LexUnknownChar, sp, "unexpected character").Emit()
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text[start:lx.off]}
	}
}
