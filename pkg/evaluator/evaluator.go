// Package evaluator walks an imp AST, evaluating statements against a
// chain of environments and reporting each scope's contents as it exits.
package evaluator

import (
	"fmt"

	"github.com/agueguen-LR/imp/pkg/ast"
	"github.com/agueguen-LR/imp/pkg/diagnostics"
)

// RuntimeError is an evaluation failure carrying a diagnostic code and
// the span of the offending node.
type RuntimeError struct {
	Code    string
	Message string
	Span    ast.Span
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// Diagnostic converts the error to a displayable diagnostic.
func (e *RuntimeError) Diagnostic() diagnostics.Diagnostic {
	span := e.Span
	return diagnostics.MakeDiag(e.Code, e.Message, &span, "")
}

func runtimeErr(code, message string, span ast.Span) *RuntimeError {
	return &RuntimeError{Code: code, Message: message, Span: span}
}

// ScopeReport describes one scope at the moment it exits: where it came
// from and the bindings it held.
type ScopeReport struct {
	Label    string
	Bindings []Binding
}

// ExecOptions configures an execution.
type ExecOptions struct {
	// Report, when non-nil, is invoked once per scope as it exits,
	// innermost first. The global scope is reported last.
	Report func(ScopeReport)
}

// ExecResult holds the outcome of a successful execution.
type ExecResult struct {
	// Value is the value of the program's last statement, or the value
	// carried by a top-level return.
	Value Value
}

// control distinguishes normal completion of a statement from an active
// return travelling toward the nearest call boundary.
type control int

const (
	ctlNormal control = iota
	ctlReturn
)

type interp struct {
	report func(ScopeReport)
}

func (in *interp) emit(label string, env *Env) {
	if in.report != nil {
		in.report(ScopeReport{Label: label, Bindings: env.Snapshot()})
	}
}

// Execute runs a parsed program in a fresh global environment. A
// top-level return ends the run with the returned value.
func Execute(program *ast.Program, opts ExecOptions) (*ExecResult, error) {
	in := &interp{report: opts.Report}
	global := NewEnv()

	value, _, err := in.execBlock(program.Statements, global)
	if err != nil {
		return nil, err
	}

	in.emit("global", global)
	return &ExecResult{Value: value}, nil
}

// execBlock runs statements in order in env. It stops early when a
// return fires, handing the returned value and ctlReturn to the caller.
// An empty block yields Number 0.
func (in *interp) execBlock(block ast.Block, env *Env) (Value, control, error) {
	var last Value = Number{Value: 0}

	for _, stmt := range block {
		value, ctl, err := in.execStmt(stmt, env)
		if err != nil {
			return nil, ctlNormal, err
		}
		if ctl == ctlReturn {
			return value, ctlReturn, nil
		}
		last = value
	}

	return last, ctlNormal, nil
}

func (in *interp) execStmt(stmt ast.Stmt, env *Env) (Value, control, error) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		value, err := in.evalExpr(s.Value, env)
		if err != nil {
			return nil, ctlNormal, err
		}
		env.Assign(s.Name, value)
		return value, ctlNormal, nil

	case *ast.ExprStmt:
		value, err := in.evalExpr(s.Expr, env)
		return value, ctlNormal, err

	case *ast.IfStmt:
		return in.execIf(s, env)

	case *ast.WhileStmt:
		return in.execWhile(s, env)

	case *ast.FnDecl:
		fn := &Function{Name: s.Name, Params: s.Params, Body: s.Body, Closure: env}
		env.Bind(s.Name, fn)
		return fn, ctlNormal, nil

	case *ast.ReturnStmt:
		value, err := in.evalExpr(s.Value, env)
		if err != nil {
			return nil, ctlNormal, err
		}
		return value, ctlReturn, nil

	default:
		return nil, ctlNormal, runtimeErr(diagnostics.EType,
			fmt.Sprintf("unsupported statement kind %s", stmt.Kind()), stmt.NodeSpan())
	}
}

// execIf evaluates the condition in the enclosing scope and runs the
// taken branch, if any, in a fresh child scope reported on exit.
func (in *interp) execIf(s *ast.IfStmt, env *Env) (Value, control, error) {
	cond, err := in.evalExpr(s.Cond, env)
	if err != nil {
		return nil, ctlNormal, err
	}

	var body ast.Block
	var label string
	if Truthiness(cond) {
		body, label = s.Then, "if"
	} else if s.Else != nil {
		body, label = s.Else, "else"
	} else {
		return Number{Value: 0}, ctlNormal, nil
	}

	child := env.Child()
	value, ctl, err := in.execBlock(body, child)
	if err != nil {
		return nil, ctlNormal, err
	}
	in.emit(label, child)
	return value, ctl, nil
}

// execWhile re-evaluates the condition in the enclosing scope before
// each iteration. The body scope is created once, on first entry, and
// reused for every iteration; it is reported when the loop exits. A
// loop whose condition is false up front reports nothing.
func (in *interp) execWhile(s *ast.WhileStmt, env *Env) (Value, control, error) {
	var body *Env
	var last Value = Number{Value: 0}

	for {
		cond, err := in.evalExpr(s.Cond, env)
		if err != nil {
			return nil, ctlNormal, err
		}
		if !Truthiness(cond) {
			break
		}

		if body == nil {
			body = env.Child()
		}

		value, ctl, err := in.execBlock(s.Body, body)
		if err != nil {
			return nil, ctlNormal, err
		}
		if ctl == ctlReturn {
			in.emit("while", body)
			return value, ctlReturn, nil
		}
		last = value
	}

	if body != nil {
		in.emit("while", body)
	}
	return last, ctlNormal, nil
}

// --- Expressions ---

func (in *interp) evalExpr(expr ast.Expr, env *Env) (Value, error) {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		return Number{Value: e.Value}, nil

	case *ast.Ident:
		value, ok := env.Lookup(e.Name)
		if !ok {
			return nil, runtimeErr(diagnostics.EName,
				fmt.Sprintf("undefined variable '%s'", e.Name), e.Span)
		}
		return value, nil

	case *ast.UnaryExpr:
		operand, err := in.evalExpr(e.Operand, env)
		if err != nil {
			return nil, err
		}
		n, ok := operand.(Number)
		if !ok {
			return nil, runtimeErr(diagnostics.EType,
				fmt.Sprintf("unary '-' requires a number, got %s", operand.Type()), e.Span)
		}
		return Number{Value: -n.Value}, nil

	case *ast.BinaryExpr:
		return in.evalBinary(e, env)

	case *ast.CallExpr:
		return in.evalCall(e, env)

	default:
		return nil, runtimeErr(diagnostics.EType,
			fmt.Sprintf("unsupported expression kind %s", expr.Kind()), expr.NodeSpan())
	}
}

func (in *interp) evalBinary(e *ast.BinaryExpr, env *Env) (Value, error) {
	// Logical connectives short-circuit, so the right side only
	// evaluates when it can decide the outcome.
	switch e.Op {
	case ast.OpAnd:
		left, err := in.evalExpr(e.Left, env)
		if err != nil {
			return nil, err
		}
		if !Truthiness(left) {
			return Number{Value: 0}, nil
		}
		right, err := in.evalExpr(e.Right, env)
		if err != nil {
			return nil, err
		}
		return boolToNumber(Truthiness(right)), nil

	case ast.OpOr:
		left, err := in.evalExpr(e.Left, env)
		if err != nil {
			return nil, err
		}
		if Truthiness(left) {
			return Number{Value: 1}, nil
		}
		right, err := in.evalExpr(e.Right, env)
		if err != nil {
			return nil, err
		}
		return boolToNumber(Truthiness(right)), nil
	}

	left, err := in.evalExpr(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := in.evalExpr(e.Right, env)
	if err != nil {
		return nil, err
	}

	ln, lok := left.(Number)
	rn, rok := right.(Number)
	if !lok || !rok {
		return nil, runtimeErr(diagnostics.EType,
			fmt.Sprintf("operator '%s' requires numbers, got %s and %s",
				e.Op, left.Type(), right.Type()), e.Span)
	}

	switch e.Op {
	case ast.OpAdd:
		return Number{Value: ln.Value + rn.Value}, nil
	case ast.OpSub:
		return Number{Value: ln.Value - rn.Value}, nil
	case ast.OpMul:
		return Number{Value: ln.Value * rn.Value}, nil
	case ast.OpDiv:
		if rn.Value == 0 {
			return nil, runtimeErr(diagnostics.EArith, "division by zero", e.Span)
		}
		return Number{Value: ln.Value / rn.Value}, nil
	case ast.OpLt:
		return boolToNumber(ln.Value < rn.Value), nil
	case ast.OpGt:
		return boolToNumber(ln.Value > rn.Value), nil
	case ast.OpLtEq:
		return boolToNumber(ln.Value <= rn.Value), nil
	case ast.OpGtEq:
		return boolToNumber(ln.Value >= rn.Value), nil
	case ast.OpEqEq:
		return boolToNumber(ln.Value == rn.Value), nil
	case ast.OpNeq:
		return boolToNumber(ln.Value != rn.Value), nil
	default:
		return nil, runtimeErr(diagnostics.EType,
			fmt.Sprintf("unsupported operator '%s'", e.Op), e.Span)
	}
}

// evalCall resolves the callee, binds arguments into a scope chained to
// the function's declaring environment, and absorbs any return fired in
// the body. The call scope is reported when the call finishes.
func (in *interp) evalCall(e *ast.CallExpr, env *Env) (Value, error) {
	callee, ok := env.Lookup(e.Name)
	if !ok {
		return nil, runtimeErr(diagnostics.EName,
			fmt.Sprintf("undefined function '%s'", e.Name), e.Span)
	}

	fn, ok := callee.(*Function)
	if !ok {
		return nil, runtimeErr(diagnostics.EType,
			fmt.Sprintf("'%s' is not a function", e.Name), e.Span)
	}

	if len(e.Args) != len(fn.Params) {
		return nil, runtimeErr(diagnostics.EArity,
			fmt.Sprintf("function '%s' expects %d argument(s), got %d",
				fn.Name, len(fn.Params), len(e.Args)), e.Span)
	}

	args := make([]Value, len(e.Args))
	for i, arg := range e.Args {
		value, err := in.evalExpr(arg, env)
		if err != nil {
			return nil, err
		}
		args[i] = value
	}

	callEnv := fn.Closure.Child()
	for i, param := range fn.Params {
		callEnv.Bind(param, args[i])
	}

	value, _, err := in.execBlock(fn.Body, callEnv)
	if err != nil {
		return nil, err
	}

	in.emit("call "+fn.Name, callEnv)
	return value, nil
}
