package evaluator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agueguen-LR/imp/pkg/ast"
)

// Value is the interface implemented by all imp runtime values.
type Value interface {
	Type() string
	Render() string
	valueNode() // sealed marker
}

// Number is a 64-bit signed integer value.
type Number struct {
	Value int64
}

func (n Number) Type() string   { return "number" }
func (n Number) Render() string { return strconv.FormatInt(n.Value, 10) }
func (n Number) valueNode()     {}

// Function is a user-declared function. Closure is the environment the
// declaration executed in, so lookups from the body see the declaring
// scope chain.
type Function struct {
	Name    string
	Params  []string
	Body    ast.Block
	Closure *Env
}

func (f *Function) Type() string { return "function" }
func (f *Function) Render() string {
	return fmt.Sprintf("fn %s(%s)", f.Name, strings.Join(f.Params, ", "))
}
func (f *Function) valueNode() {}

// Truthiness reports whether a value counts as true in conditions.
// Number 0 is false; everything else is true.
func Truthiness(v Value) bool {
	if n, ok := v.(Number); ok {
		return n.Value != 0
	}
	return true
}

func boolToNumber(b bool) Number {
	if b {
		return Number{Value: 1}
	}
	return Number{Value: 0}
}
