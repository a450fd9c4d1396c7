// evaluator.go — tree-walking evaluation of assignment scripts.
//
// Scripts evaluate against an Env: a name → Multivector table with an
// optional parent frame. Hosts seed the environment (typically on top of
// BasisEnv) before a pass, the statement driver mutates it in place, and
// the host reads the results back afterward. The whole pipeline is
// single-threaded and synchronous; nothing here may be shared across
// goroutines while a pass runs.
//
// Error model: a parse failure aborts the pass before any statement
// executes. An evaluation failure is recoverable at statement granularity —
// the error is collected, the failed assignment's target keeps its previous
// binding, and later statements still run (and still see every earlier
// successful assignment). All error strings are "line:col: message".
package gascript

import (
	"fmt"
	"math"
	"sort"
)

// Env is a variable environment frame with an optional parent link. Lookups
// walk parent-ward; Define always binds in the current frame.
type Env struct {
	parent *Env
	table  map[string]Multivector
}

// NewEnv creates an empty frame with the given parent (which may be nil).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]Multivector)}
}

// BasisEnv returns a frame pre-seeded with the basis blades e0, e1, e2,
// e01, e02, e12, e012. Hosts usually make this the parent of the script
// environment so scripts can build geometry without any setup.
func BasisEnv() *Env {
	env := NewEnv(nil)
	env.Define("e0", Multivector{E0: 1})
	env.Define("e1", Multivector{E1: 1})
	env.Define("e2", Multivector{E2: 1})
	env.Define("e01", Multivector{E01: 1})
	env.Define("e02", Multivector{E02: 1})
	env.Define("e12", Multivector{E12: 1})
	env.Define("e012", Multivector{E012: 1})
	return env
}

// Define binds name to v in the current frame, shadowing any outer binding.
func (e *Env) Define(name string, v Multivector) {
	e.table[name] = v
}

// Get retrieves the nearest visible binding for name.
func (e *Env) Get(name string) (Multivector, bool) {
	if v, ok := e.table[name]; ok {
		return v, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Multivector{}, false
}

// Delete removes name from the current frame only. Hosts use this to prune
// variables a script no longer assigns.
func (e *Env) Delete(name string) {
	delete(e.table, name)
}

// Names lists the names bound in the current frame, sorted.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.table))
	for name := range e.table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EvalError is a located evaluation failure for one statement.
type EvalError struct {
	Loc Location
	Msg string
}

func (e *EvalError) Error() string { return fmt.Sprintf("%s: %s", e.Loc, e.Msg) }

// Evaluate computes the value of an expression against an environment.
func Evaluate(expr Expression, env *Env) (Multivector, error) {
	switch node := expr.(type) {
	case *NameExpr:
		v, ok := env.Get(node.Name)
		if !ok {
			return Multivector{}, &EvalError{
				Loc: node.Loc,
				Msg: fmt.Sprintf("Unknown variable '%s'", node.Name),
			}
		}
		return v, nil

	case *NumberExpr:
		return Scalar(node.Number), nil

	case *UnaryExpr:
		operand, err := Evaluate(node.Operand, env)
		if err != nil {
			return Multivector{}, err
		}
		switch node.Op {
		case UnaryNegate:
			return operand.Neg(), nil
		case UnaryDual:
			return operand.Dual(), nil
		case UnaryReverse:
			return operand.Reverse(), nil
		case UnaryNormalize:
			return operand.Normalized(), nil
		case UnaryMagnitude:
			return Scalar(operand.Magnitude()), nil
		// The transcendental functions apply to the scalar component only;
		// any non-scalar part of the operand is discarded.
		case UnarySin:
			return Scalar(float32(math.Sin(float64(operand.S)))), nil
		case UnaryCos:
			return Scalar(float32(math.Cos(float64(operand.S)))), nil
		case UnaryASin:
			return Scalar(float32(math.Asin(float64(operand.S)))), nil
		case UnaryACos:
			return Scalar(float32(math.Acos(float64(operand.S)))), nil
		default:
			return Multivector{}, &EvalError{Loc: node.Loc, Msg: "Unknown unary operator"}
		}

	case *BinaryExpr:
		left, err := Evaluate(node.Left, env)
		if err != nil {
			return Multivector{}, err
		}
		right, err := Evaluate(node.Right, env)
		if err != nil {
			return Multivector{}, err
		}
		switch node.Op {
		case BinaryAdd:
			return left.Add(right), nil
		case BinarySubtract:
			return left.Sub(right), nil
		case BinaryMultiply:
			return left.Mul(right), nil
		case BinaryDivide:
			// Accepted by the grammar, never evaluated. The error carries
			// the operator location so hosts can point at the '/'.
			return Multivector{}, &EvalError{Loc: node.Loc, Msg: "Divide unimplemented"}
		case BinaryWedge:
			return left.Wedge(right), nil
		case BinaryInner:
			return left.Inner(right), nil
		case BinaryRegressive:
			return left.Regressive(right), nil
		default:
			return Multivector{}, &EvalError{Loc: node.Loc, Msg: "Unknown binary operator"}
		}

	default:
		return Multivector{}, &EvalError{Loc: expr.Location(), Msg: "Unknown expression"}
	}
}

// Run executes statements in source order against env. Later statements see
// the bindings of earlier ones. A statement whose evaluation fails is
// skipped — its target keeps whatever binding it had — and its error string
// is collected; execution continues with the next statement.
func Run(statements []Statement, env *Env) []string {
	var errs []string
	for _, stmt := range statements {
		assign := stmt.(*AssignStatement)
		value, err := Evaluate(assign.Value, env)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		env.Define(assign.Name, value)
	}
	return errs
}

// RunScript parses and executes a whole script against env. A parse error
// yields exactly one error string and no statement executes, leaving env
// untouched.
func RunScript(source string, env *Env) []string {
	statements, err := Parse(source)
	if err != nil {
		return []string{err.Error()}
	}
	return Run(statements, env)
}
