package diagnostics

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/agueguen-LR/imp/pkg/ast"
)

func TestFormatDiagnosticPretty(t *testing.T) {
	d := MakeDiag(EName, "undefined variable 'y'",
		&ast.Span{File: "prog.imp", StartLine: 3, StartCol: 5, EndLine: 3, EndCol: 6}, "")

	got := FormatDiagnostic(d, true)
	want := "error[E_NAME]: undefined variable 'y'\n  --> prog.imp:3:5"
	if got != want {
		t.Errorf("FormatDiagnostic() = %q, want %q", got, want)
	}
}

func TestFormatDiagnosticWithHint(t *testing.T) {
	d := MakeDiag(EParse, "expected ')'", nil, "close the argument list")
	got := FormatDiagnostic(d, true)
	if !strings.Contains(got, "hint: close the argument list") {
		t.Errorf("FormatDiagnostic() = %q, missing hint", got)
	}
	if !strings.Contains(got, "<unknown>") {
		t.Errorf("FormatDiagnostic() = %q, spanless diagnostics should show <unknown>", got)
	}
}

func TestFormatDiagnosticJSON(t *testing.T) {
	d := MakeDiag(EArith, "division by zero",
		&ast.Span{File: "prog.imp", StartLine: 1, StartCol: 5, EndLine: 1, EndCol: 10}, "")

	var decoded Diagnostic
	if err := json.Unmarshal([]byte(FormatDiagnostic(d, false)), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Code != EArith || decoded.Span == nil || decoded.Span.StartCol != 5 {
		t.Errorf("decoded = %+v, want code %s at col 5", decoded, EArith)
	}
}

func TestFormatDiagnosticsJoins(t *testing.T) {
	diags := []Diagnostic{
		MakeDiag(EParse, "first", nil, ""),
		MakeDiag(EParse, "second", nil, ""),
	}
	got := FormatDiagnostics(diags, true)
	if !strings.Contains(got, "first") || !strings.Contains(got, "second") {
		t.Errorf("FormatDiagnostics() = %q, want both messages", got)
	}
}
