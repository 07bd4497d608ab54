package interpreter

import (
	"errors"
	"fmt"

	"github.com/luth-lang/luth/ast"
)

var (
	// ErrUndeclaredVariable indicates an assignment to a name with no binding.
	ErrUndeclaredVariable = errors.New("undeclared variable")

	// ErrUndefinedVariable indicates a read of a name with no binding.
	ErrUndefinedVariable = errors.New("undefined variable")

	// ErrTypeMismatch indicates a value rejected by a binding's declared type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidComparison indicates an ordering comparison between non-numbers.
	ErrInvalidComparison = errors.New("invalid comparison")
)

// RuntimeError is an evaluation failure. It aborts the rest of the run.
type RuntimeError struct {
	Name string // variable involved, if any
	Msg  string
	Err  error // one of the sentinel errors above
}

func (e *RuntimeError) Error() string { return e.Msg }

// Unwrap lets errors.Is match the sentinel.
func (e *RuntimeError) Unwrap() error { return e.Err }

func undeclared(name string) error {
	return &RuntimeError{
		Name: name,
		Msg:  fmt.Sprintf("variable '%s' not declared", name),
		Err:  ErrUndeclaredVariable,
	}
}

func undefined(name string) error {
	return &RuntimeError{
		Name: name,
		Msg:  fmt.Sprintf("undefined variable '%s'", name),
		Err:  ErrUndefinedVariable,
	}
}

func mismatch(name string, want ast.Type, got Value) error {
	return &RuntimeError{
		Name: name,
		Msg:  fmt.Sprintf("type mismatch for variable '%s': declared %s, got %s", name, want, got.Kind()),
		Err:  ErrTypeMismatch,
	}
}

func badComparison(op ast.Operator, left, right Value) error {
	return &RuntimeError{
		Msg: fmt.Sprintf("cannot compare %s %s %s", left.Kind(), op, right.Kind()),
		Err: ErrInvalidComparison,
	}
}
