package lexer_test

import (
	"testing"

	"github.com/xuyisen-x/oxidice/internal/diag"
	"github.com/xuyisen-x/oxidice/internal/lexer"
	"github.com/xuyisen-x/oxidice/internal/source"
	"github.com/xuyisen-x/oxidice/internal/token"
)

func scanAll(text string) []token.Token {
	bag := diag.NewBag()
	lx := lexer.New(1, text, diag.BagReporter{Bag: bag})
	var out []token.Token
	for {
		t := lx.Next()
		out = append(out, t)
		if t.Kind == token.EOF {
			return out
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScanDiceExpression(t *testing.T) {
	toks := scanAll("4d6kh3 + 1")
	got := kinds(toks)
	want := []token.Kind{token.Int, token.Ident, token.Int, token.Ident, token.Int, token.Plus, token.Int, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
}

func TestScanFloatAndOperators(t *testing.T) {
	toks := scanAll("1.5 <= 2 <> 3 !! !")
	got := kinds(toks)
	want := []token.Kind{token.Float, token.Le, token.Int, token.Ne, token.Int, token.BangBang, token.Bang, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	bag := diag.NewBag()
	lx := lexer.New(1, "42", diag.BagReporter{Bag: bag})
	a := lx.Peek()
	b := lx.Next()
	if a.Kind != b.Kind || a.Text != b.Text {
		t.Fatalf("Peek() = %+v, Next() = %+v, want equal", a, b)
	}
	if lx.Next().Kind != token.EOF {
		t.Fatalf("expected EOF after consuming the only token")
	}
}

func TestUnknownCharacterReportsError(t *testing.T) {
	bag := diag.NewBag()
	lx := lexer.New(1, "1 $ 2", diag.BagReporter{Bag: bag})
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
	}
	if !bag.HasErrors() {
		t.Fatalf("expected an error diagnostic for '$'")
	}
	d, ok := bag.FirstError()
	if !ok || d.Code != diag.LexUnknownChar {
		t.Fatalf("first error = %+v, want code %v", d, diag.LexUnknownChar)
	}
}

func TestSpanTracksOffsets(t *testing.T) {
	bag := diag.NewBag()
	lx := lexer.New(1, "  42", diag.BagReporter{Bag: bag})
	tok := lx.Next()
	want := source.Span{File: 1, Start: 2, End: 4}
	if tok.Span != want {
		t.Fatalf("span = %+v, want %+v", tok.Span, want)
	}
}
