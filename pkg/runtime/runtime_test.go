package runtime

import (
	"testing"

	"github.com/agueguen-LR/imp/pkg/diagnostics"
	"github.com/agueguen-LR/imp/pkg/evaluator"
)

func TestRunSuccess(t *testing.T) {
	var reports []evaluator.ScopeReport
	rt := New(WithScopeReporter(func(r evaluator.ScopeReport) {
		reports = append(reports, r)
	}))

	result, err := rt.Run("x = 2 + 3", "test.imp")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if n, ok := result.Value.(evaluator.Number); !ok || n.Value != 5 {
		t.Errorf("result = %v, want 5", result.Value)
	}
	if len(reports) != 1 || reports[0].Label != "global" {
		t.Errorf("reports = %v, want single global", reports)
	}
}

func TestRunParseFailure(t *testing.T) {
	rt := New()
	_, err := rt.Run("x = (1 + 2", "test.imp")
	if err == nil {
		t.Fatal("Run succeeded, want parse error")
	}
	diagErr, ok := err.(*DiagnosticError)
	if !ok {
		t.Fatalf("error type = %T, want *DiagnosticError", err)
	}
	if len(diagErr.Diags) == 0 || diagErr.Diags[0].Code != diagnostics.EParse {
		t.Errorf("diags = %v, want %s", diagErr.Diags, diagnostics.EParse)
	}
}

func TestRunLexFailure(t *testing.T) {
	rt := New()
	_, err := rt.Run("x = #", "test.imp")
	diagErr, ok := err.(*DiagnosticError)
	if !ok {
		t.Fatalf("error type = %T, want *DiagnosticError", err)
	}
	if diagErr.Diags[0].Code != diagnostics.ELex {
		t.Errorf("code = %s, want %s", diagErr.Diags[0].Code, diagnostics.ELex)
	}
}

func TestRunRuntimeFailure(t *testing.T) {
	var reports []evaluator.ScopeReport
	rt := New(WithScopeReporter(func(r evaluator.ScopeReport) {
		reports = append(reports, r)
	}))

	_, err := rt.Run("x = 1 / 0", "test.imp")
	rtErr, ok := err.(*evaluator.RuntimeError)
	if !ok {
		t.Fatalf("error type = %T, want *evaluator.RuntimeError", err)
	}
	if rtErr.Code != diagnostics.EArith {
		t.Errorf("code = %s, want %s", rtErr.Code, diagnostics.EArith)
	}
	// The global scope never exits cleanly on failure.
	if len(reports) != 0 {
		t.Errorf("reports = %v, want none", reports)
	}
}

func TestRunWithoutOptions(t *testing.T) {
	if _, err := New().Run("1 + 1", "test.imp"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}
