package token

import "github.com/xuyisen-x/oxidice/internal/source"

// Token is a single lexical token. Text is a slice of the original
// source, never a copy, matching the teacher lexer's no-copy convention.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}
