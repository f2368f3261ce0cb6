// Package oxidice is the dice-expression engine's public surface: the
// three entry points spec.md §2/§6 name, Validate, Evaluate, and Render,
// each a thin driver over the five-stage pipeline in internal/{parser,
// hir,optimize,compiler,runtime} plus internal/render. Grounded on the
// teacher compiler's surge/internal/driver package, which plays the same
// role there: a small facade sequencing lex/parse/lower/lint over the
// pipeline's internal packages for cmd/surge to call.
package oxidice

import (
	"errors"
	"fmt"

	"github.com/xuyisen-x/oxidice/internal/ast"
	"github.com/xuyisen-x/oxidice/internal/cache"
	"github.com/xuyisen-x/oxidice/internal/compiler"
	"github.com/xuyisen-x/oxidice/internal/diag"
	"github.com/xuyisen-x/oxidice/internal/hir"
	"github.com/xuyisen-x/oxidice/internal/optimize"
	"github.com/xuyisen-x/oxidice/internal/parser"
	"github.com/xuyisen-x/oxidice/internal/render"
	"github.com/xuyisen-x/oxidice/internal/rng"
	"github.com/xuyisen-x/oxidice/internal/runtime"
	"github.com/xuyisen-x/oxidice/internal/source"
	"github.com/xuyisen-x/oxidice/internal/trace"
)

// Options bounds one evaluation (spec.md §6). Both fields are required
// and must be strictly positive; Validate and Evaluate reject a zero or
// negative limit outright rather than silently substituting a default.
type Options struct {
	RecursionLimit int64
	DiceCountLimit int64
}

func (o Options) validate() error {
	if o.RecursionLimit <= 0 {
		return errors.New("oxidice: RecursionLimit must be > 0")
	}
	if o.DiceCountLimit <= 0 {
		return errors.New("oxidice: DiceCountLimit must be > 0")
	}
	return nil
}

// TypedProgram is the result of a successful Validate: a parsed and
// type-checked (but not yet optimized or compiled) expression, kept
// around for tooling that wants to inspect the AST/HIR without running
// the engine.
type TypedProgram struct {
	Source string
	Tree   *ast.Tree
	Module *hir.Module
}

// ParseError wraps the first diagnostic from a failed parse (spec.md
// §7's ParseError kind), keeping the full diag.Bag for callers that want
// every collected diagnostic rather than just the first.
type ParseError struct {
	Bag *diag.Bag
}

func (e *ParseError) Error() string {
	d, ok := e.Bag.FirstError()
	if !ok {
		return "oxidice: parse error"
	}
	return fmt.Sprintf("parse error: %s", d.Message)
}

// TypeError wraps the first diagnostic from a failed lowering pass
// (spec.md §7's TypeError/DesugarError kinds, which share one reporting
// path since both surface through hir.Lower).
type TypeError struct {
	Bag *diag.Bag
}

func (e *TypeError) Error() string {
	d, ok := e.Bag.FirstError()
	if !ok {
		return "oxidice: type error"
	}
	return fmt.Sprintf("type error: %s", d.Message)
}

// Validate lexes, parses, and type-checks source without running the
// optimizer, compiler, or runtime: it is the "no RNG draws" path spec.md
// §6 names for the CLI's `validate` subcommand.
func Validate(source_ string, opts Options) (*TypedProgram, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	fileID := fs.Add("<expr>", source_)

	bag := diag.NewBag()
	reporter := diag.BagReporter{Bag: bag}
	tree := parser.Parse(fileID, source_, reporter)
	if bag.HasErrors() {
		return nil, &ParseError{Bag: bag}
	}

	mod, ok := hir.Lower(tree, reporter)
	if !ok {
		return nil, &TypeError{Bag: bag}
	}
	return &TypedProgram{Source: source_, Tree: tree, Module: mod}, nil
}

// defaultCache backs Evaluate's compiled-graph memoization (spec.md
// §5's external-caching note, supplied in-process by internal/cache).
var defaultCache = cache.New()

// Evaluate validates source, optimizes and compiles it (or reuses a
// cached compilation), then runs the round-based runtime engine against
// src, drawing however many dice the expression needs. On success it
// returns the resolved value and a complete execution trace; on failure
// (spec.md §7) it returns one of *ParseError, *TypeError,
// *runtime.DivisionByZeroError, *runtime.EmptyReductionError,
// *runtime.LimitExceededError, or *runtime.InternalError.
//
// A ParseError or TypeError fails before any round runs, so no trace
// exists yet and the returned *runtime.Result is nil. A runtime error
// fails mid-evaluation: the returned *runtime.Result is still non-nil,
// and its Trace/Rounds/Dice hold whatever progress was made before the
// failure (its Value is meaningless and must not be read), so the
// caller can render partial progress instead of discarding it.
func Evaluate(source_ string, opts Options, src rng.Source) (*runtime.Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	prog, err := Validate(source_, opts)
	if err != nil {
		return nil, err
	}

	g, err := defaultCache.GetOrCompile(source_, func() (*cache.Graph, error) {
		optimize.Optimize(prog.Module)
		return &cache.Graph{HIR: prog.Module, Compiled: compiler.Compile(prog.Module)}, nil
	})
	if err != nil {
		return nil, err
	}

	tr := trace.NewRingTracer(64)
	return runtime.Run(g.Compiled, runtime.Options{
		RecursionLimit: opts.RecursionLimit,
		DiceCountLimit: opts.DiceCountLimit,
	}, src, tr)
}

// Render builds a display-ready tree from a completed evaluation's
// trace (spec.md §2, §4.7).
func Render(result *runtime.Result) *render.DisplayTree {
	return render.Render(result.Trace)
}
