package diag

// Code identifies a specific diagnostic, grouped by pipeline stage in
// blocks of 1000, the way the teacher compiler bands lexer/parser/sema
// codes.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical errors: 1000-1999.
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003

	// Parse errors: 2000-2999.
	SynUnexpectedToken    Code = 2001
	SynUnclosedGroup      Code = 2002
	SynUnknownFunction    Code = 2003
	SynLimitOnWrongMod    Code = 2004
	SynExpectedComparison Code = 2005
	SynExpectedCount      Code = 2006

	// Type errors: 3000-3999.
	TypeMismatch         Code = 3001
	TypeUnknownFunction  Code = 3002
	TypeArityMismatch    Code = 3003
	TypeModifierMisuse   Code = 3004
	TypeListRepeatBadN     Code = 3005
	TypeToListRequiresPool Code = 3006

	// Desugar errors: 4000-4999.
	DesugarListRepeatNotConst Code = 4001

	// Runtime errors: 5000-5999.
	RuntimeDivisionByZero Code = 5001
	RuntimeEmptyReduction Code = 5002
	RuntimeLimitExceeded  Code = 5003
	RuntimeInternalError  Code = 5004
)

func (c Code) String() string {
	switch c {
	case LexUnknownChar:
		return "LexUnknownChar"
	case LexUnterminatedString:
		return "LexUnterminatedString"
	case LexBadNumber:
		return "LexBadNumber"
	case SynUnexpectedToken:
		return "SynUnexpectedToken"
	case SynUnclosedGroup:
		return "SynUnclosedGroup"
	case SynUnknownFunction:
		return "SynUnknownFunction"
	case SynLimitOnWrongMod:
		return "SynLimitOnWrongMod"
	case SynExpectedComparison:
		return "SynExpectedComparison"
	case SynExpectedCount:
		return "SynExpectedCount"
	case TypeMismatch:
		return "TypeMismatch"
	case TypeUnknownFunction:
		return "TypeUnknownFunction"
	case TypeArityMismatch:
		return "TypeArityMismatch"
	case TypeModifierMisuse:
		return "TypeModifierMisuse"
	case TypeListRepeatBadN:
		return "TypeListRepeatBadN"
	case TypeToListRequiresPool:
		return "TypeToListRequiresPool"
	case DesugarListRepeatNotConst:
		return "DesugarListRepeatNotConst"
	case RuntimeDivisionByZero:
		return "RuntimeDivisionByZero"
	case RuntimeEmptyReduction:
		return "RuntimeEmptyReduction"
	case RuntimeLimitExceeded:
		return "RuntimeLimitExceeded"
	case RuntimeInternalError:
		return "RuntimeInternalError"
	default:
		return "UnknownCode"
	}
}
