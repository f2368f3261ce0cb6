package diag

import "github.com/xuyisen-x/oxidice/internal/source"

// Note is a secondary span attached to a Diagnostic for extra context.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a single reported problem.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// WithNote returns d with note appended.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
