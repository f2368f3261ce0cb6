package diag

import "github.com/xuyisen-x/oxidice/internal/source"

// Reporter is the minimal contract every pipeline stage reports
// diagnostics through. BagReporter is the only production implementation;
// a stage never needs to know whether it is being validated or evaluated.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter adapts a *Bag to Reporter.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// ReportBuilder accumulates a Diagnostic's optional fields before
// emitting it exactly once, mirroring the teacher compiler's fluent
// diagnostic API.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

func newBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{reporter: r, diag: Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary}}
}

// ReportError starts a SevError diagnostic.
func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return newBuilder(r, SevError, code, primary, msg)
}

// ReportWarning starts a SevWarning diagnostic.
func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return newBuilder(r, SevWarning, code, primary, msg)
}

// WithNote appends a note.
func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithNote(sp, msg)
	return b
}

// Emit sends the accumulated diagnostic to the underlying Reporter,
// exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag)
	}
	b.emitted = true
}

// Diagnostic returns the accumulated diagnostic without emitting it.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}
