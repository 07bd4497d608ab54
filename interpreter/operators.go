package interpreter

import (
	"math"

	"github.com/luth-lang/luth/ast"
)

// applyArithmetic combines two numbers. Any operand that is not a Number
// makes the result Nil; division and remainder by zero follow IEEE 754.
func applyArithmetic(op ast.Operator, left, right Value) Value {
	l, lok := left.(Number)
	r, rok := right.(Number)
	if !lok || !rok {
		return Nil{}
	}
	switch op {
	case ast.OpAdd:
		return l + r
	case ast.OpSub:
		return l - r
	case ast.OpMul:
		return l * r
	case ast.OpDiv:
		return l / r
	case ast.OpMod:
		return Number(math.Mod(float64(l), float64(r)))
	case ast.OpPow:
		return Number(math.Pow(float64(l), float64(r)))
	}
	return Nil{}
}

// applyLogical combines the truthiness of both (already evaluated) operands.
func applyLogical(op ast.Operator, left, right Value) Value {
	if op == ast.OpAnd {
		return Boolean(Truthy(left) && Truthy(right))
	}
	return Boolean(Truthy(left) || Truthy(right))
}

// applyComparison implements == and != for every variant and the ordering
// operators for numbers only.
func applyComparison(op ast.Operator, left, right Value) (Value, error) {
	switch op {
	case ast.OpEq:
		return Boolean(Equal(left, right)), nil
	case ast.OpNotEq:
		return Boolean(!Equal(left, right)), nil
	}

	l, lok := left.(Number)
	r, rok := right.(Number)
	if !lok || !rok {
		return nil, badComparison(op, left, right)
	}
	switch op {
	case ast.OpLess:
		return Boolean(l < r), nil
	case ast.OpLessEq:
		return Boolean(l <= r), nil
	case ast.OpGreater:
		return Boolean(l > r), nil
	default:
		return Boolean(l >= r), nil
	}
}
