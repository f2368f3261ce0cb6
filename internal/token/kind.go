// Package token defines the lexical token kinds for dice expressions.
package token

// Kind identifies the lexical category of a Token.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	Int   // 123
	Float // 1.5

	Ident // identifiers: function names, dice-face keywords are scanned as Ident then classified

	// Dice.
	KwD // not emitted by the lexer: the 'd' in "4d6" is scanned as an Ident

	// Punctuation.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma

	// Arithmetic operators.
	Plus
	Minus
	Star
	Slash
	SlashSlash
	Percent
	StarStar

	// Comparators (used only inside mod_param/filter).
	Eq
	Ne
	Le
	Lt
	Ge
	Gt

	// Modifier sigils.
	Bang     // !
	BangBang // !!
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case Ident:
		return "Ident"
	case KwD:
		return "KwD"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	case LBrace:
		return "LBrace"
	case RBrace:
		return "RBrace"
	case LBracket:
		return "LBracket"
	case RBracket:
		return "RBracket"
	case Comma:
		return "Comma"
	case Plus:
		return "Plus"
	case Minus:
		return "Minus"
	case Star:
		return "Star"
	case Slash:
		return "Slash"
	case SlashSlash:
		return "SlashSlash"
	case Percent:
		return "Percent"
	case StarStar:
		return "StarStar"
	case Eq:
		return "Eq"
	case Ne:
		return "Ne"
	case Le:
		return "Le"
	case Lt:
		return "Lt"
	case Ge:
		return "Ge"
	case Gt:
		return "Gt"
	case Bang:
		return "Bang"
	case BangBang:
		return "BangBang"
	default:
		return "Unknown"
	}
}
