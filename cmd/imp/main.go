// Command imp runs an imp program and prints the contents of every
// scope as it exits, the global scope last.
package main

import (
	"fmt"
	"os"

	"github.com/agueguen-LR/imp/pkg/diagnostics"
	"github.com/agueguen-LR/imp/pkg/evaluator"
	"github.com/agueguen-LR/imp/pkg/report"
	"github.com/agueguen-LR/imp/pkg/runtime"
)

const (
	exitOK      = 0
	exitUsage   = 1
	exitParse   = 2
	exitRuntime = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: imp <file>")
		return exitUsage
	}

	filename := args[0]
	source, err := os.ReadFile(filename)
	if err != nil {
		diag := diagnostics.MakeDiag(diagnostics.EIO,
			fmt.Sprintf("cannot read %s: %v", filename, err), nil, "")
		fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostic(diag, true))
		return exitUsage
	}

	// Reports are buffered so a failing run prints nothing but its
	// diagnostic.
	var buf report.Buffer
	rt := runtime.New(runtime.WithScopeReporter(buf.Add))

	if _, err := rt.Run(string(source), filename); err != nil {
		switch e := err.(type) {
		case *runtime.DiagnosticError:
			fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostics(e.Diags, true))
			return exitParse
		case *evaluator.RuntimeError:
			fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostic(e.Diagnostic(), true))
			return exitRuntime
		default:
			fmt.Fprintln(os.Stderr, err)
			return exitRuntime
		}
	}

	fmt.Print(buf.Render())
	return exitOK
}
