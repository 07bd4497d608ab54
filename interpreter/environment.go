package interpreter

import "github.com/luth-lang/luth/ast"

type binding struct {
	value Value
	typ   ast.Type
}

// Environment is the single flat variable table of one interpreter run.
// There is no scoping: blocks, if and while share it.
type Environment struct {
	vars map[string]binding
}

// NewEnvironment returns an empty environment.
func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]binding)}
}

// Define binds name to v with declared type t, replacing any earlier binding
// together with its type.
func (e *Environment) Define(name string, v Value, t ast.Type) {
	e.vars[name] = binding{value: v, typ: t}
}

// Assign overwrites the value of an existing binding, keeping its declared
// type. It fails with ErrUndeclaredVariable if name is unbound and with
// ErrTypeMismatch if the declared type rejects v.
func (e *Environment) Assign(name string, v Value) error {
	b, ok := e.vars[name]
	if !ok {
		return undeclared(name)
	}
	if !Matches(b.typ, v) {
		return mismatch(name, b.typ, v)
	}
	b.value = v
	e.vars[name] = b
	return nil
}

// Get returns the value bound to name, or ErrUndefinedVariable.
func (e *Environment) Get(name string) (Value, error) {
	b, ok := e.vars[name]
	if !ok {
		return nil, undefined(name)
	}
	return b.value, nil
}

// TypeOf returns the declared type of name and whether it is bound.
func (e *Environment) TypeOf(name string) (ast.Type, bool) {
	b, ok := e.vars[name]
	return b.typ, ok
}
