// Package runtime wires the lexer, parser, and evaluator into the
// pipeline the CLI and tests share.
package runtime

import (
	"github.com/agueguen-LR/imp/pkg/diagnostics"
	"github.com/agueguen-LR/imp/pkg/evaluator"
	"github.com/agueguen-LR/imp/pkg/parser"
)

// DiagnosticError carries the diagnostics of a failed lex or parse.
type DiagnosticError struct {
	Diags []diagnostics.Diagnostic
}

func (e *DiagnosticError) Error() string {
	if len(e.Diags) == 0 {
		return "parse failed"
	}
	return e.Diags[0].Message
}

// Runtime runs imp programs through the full pipeline.
type Runtime struct {
	reporter func(evaluator.ScopeReport)
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithScopeReporter registers a callback invoked once per scope as it
// exits during evaluation.
func WithScopeReporter(fn func(evaluator.ScopeReport)) Option {
	return func(r *Runtime) {
		r.reporter = fn
	}
}

// New creates a Runtime with the given options.
func New(opts ...Option) *Runtime {
	r := &Runtime{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run parses and evaluates source. Lex and parse failures surface as
// *DiagnosticError; evaluation failures as *evaluator.RuntimeError.
func (r *Runtime) Run(source, filename string) (*evaluator.ExecResult, error) {
	program, diags := parser.Parse(source, filename)
	if len(diags) > 0 {
		return nil, &DiagnosticError{Diags: diags}
	}

	return evaluator.Execute(program, evaluator.ExecOptions{
		Report: r.reporter,
	})
}
