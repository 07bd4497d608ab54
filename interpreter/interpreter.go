// Package interpreter is the Luth tree-walking evaluator.
//
// An Interpreter owns one Environment and executes a parsed program against
// it, statement by statement. The first runtime error stops the run and is
// returned to the caller; output already printed stays printed.
//
// Evaluation recurses over the AST, so pathologically deep nesting is bounded
// only by the goroutine stack. A while loop whose condition never turns falsy
// does not terminate.
package interpreter

import (
	"fmt"
	"io"
	"os"

	"fortio.org/log"

	"github.com/luth-lang/luth/ast"
)

// Interpreter executes Luth statements.
type Interpreter struct {
	env *Environment
	out io.Writer
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput sets the writer print statements write to. The default is
// os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) { in.out = w }
}

// New returns an Interpreter with a fresh, empty Environment.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{env: NewEnvironment(), out: os.Stdout}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Environment exposes the interpreter's variable table for inspection.
func (in *Interpreter) Environment() *Environment {
	return in.env
}

// Interpret executes the program's statements in order and stops at the
// first error.
func (in *Interpreter) Interpret(prog *ast.Program) error {
	log.Debugf("interpreting %d statements", len(prog.Statements))
	for _, s := range prog.Statements {
		if err := in.Execute(s); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs a single statement.
func (in *Interpreter) Execute(stmt ast.Statement) error {
	if log.Log(log.Verbose) {
		log.LogVf("exec %s", stmt)
	}

	switch s := stmt.(type) {
	case *ast.VarStmt:
		v, err := in.Evaluate(s.Value)
		if err != nil {
			return err
		}
		in.env.Define(s.Name, v, s.ValueType)

	case *ast.AssignStmt:
		v, err := in.Evaluate(s.Value)
		if err != nil {
			return err
		}
		return in.env.Assign(s.Name, v)

	case *ast.PrintStmt:
		v, err := in.Evaluate(s.Value)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(in.out, v); err != nil {
			return fmt.Errorf("print: %w", err)
		}

	case *ast.BlockStmt:
		for _, inner := range s.Stmts {
			if err := in.Execute(inner); err != nil {
				return err
			}
		}

	case *ast.IfStmt:
		cond, err := in.Evaluate(s.Condition)
		if err != nil {
			return err
		}
		if Truthy(cond) {
			return in.Execute(s.Then)
		}
		if s.Else != nil {
			return in.Execute(s.Else)
		}

	case *ast.WhileStmt:
		for {
			cond, err := in.Evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !Truthy(cond) {
				return nil
			}
			if err := in.Execute(s.Body); err != nil {
				return err
			}
		}

	default:
		return fmt.Errorf("unsupported statement %T", stmt)
	}
	return nil
}

// Evaluate computes the value of an expression. Reading an unbound variable
// fails with ErrUndefinedVariable and ordering non-numbers fails with
// ErrInvalidComparison; arithmetic on non-numbers yields Nil.
func (in *Interpreter) Evaluate(expr ast.Expression) (Value, error) {
	switch e := expr.(type) {
	case *ast.StringLiteral:
		return String(e.Value), nil
	case *ast.NumberLiteral:
		return Number(e.Value), nil
	case *ast.BooleanLiteral:
		return Boolean(e.Value), nil
	case *ast.NilLiteral:
		return Nil{}, nil

	case *ast.Identifier:
		return in.env.Get(e.Name)

	case *ast.BinaryExpr:
		left, err := in.Evaluate(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := in.Evaluate(e.Right)
		if err != nil {
			return nil, err
		}
		switch {
		case e.Operator.IsArithmetic():
			return applyArithmetic(e.Operator, left, right), nil
		case e.Operator.IsLogical():
			return applyLogical(e.Operator, left, right), nil
		case e.Operator.IsComparison():
			return applyComparison(e.Operator, left, right)
		}
		return nil, fmt.Errorf("unsupported binary operator %s", e.Operator)

	case *ast.UnaryExpr:
		right, err := in.Evaluate(e.Right)
		if err != nil {
			return nil, err
		}
		if e.Operator != ast.OpNot {
			return nil, fmt.Errorf("unsupported unary operator %s", e.Operator)
		}
		return Boolean(!Truthy(right)), nil

	case *ast.IncrementExpr:
		return in.step(e.Target, 1)
	case *ast.DecrementExpr:
		return in.step(e.Target, -1)

	case *ast.InlineIfExpr:
		cond, err := in.Evaluate(e.Condition)
		if err != nil {
			return nil, err
		}
		if Truthy(cond) {
			return in.Evaluate(e.Then)
		}
		for _, b := range e.Elifs {
			c, err := in.Evaluate(b.Condition)
			if err != nil {
				return nil, err
			}
			if Truthy(c) {
				return in.Evaluate(b.Value)
			}
		}
		if e.Else == nil {
			return Nil{}, nil
		}
		return in.Evaluate(e.Else)
	}
	return nil, fmt.Errorf("unsupported expression %T", expr)
}

// step adds delta to a numeric variable, stores the result and returns it.
// A target that is not an identifier holding a Number yields Nil.
func (in *Interpreter) step(target ast.Expression, delta float64) (Value, error) {
	id, ok := target.(*ast.Identifier)
	if !ok {
		return Nil{}, nil
	}
	v, err := in.env.Get(id.Name)
	if err != nil {
		return nil, err
	}
	n, ok := v.(Number)
	if !ok {
		return Nil{}, nil
	}
	n += Number(delta)
	if err := in.env.Assign(id.Name, n); err != nil {
		return nil, err
	}
	return n, nil
}
