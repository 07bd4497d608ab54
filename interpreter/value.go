package interpreter

import (
	"math"
	"strconv"

	"github.com/luth-lang/luth/ast"
)

// Value is the result of evaluating an expression. Every variant is a plain
// comparable scalar, so values are copied freely and compared with ==.
type Value interface {
	Kind() Kind
	String() string
}

// Kind names a Value variant.
type Kind int

const (
	KindNil Kind = iota
	KindString
	KindNumber
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindNumber:
		return "Number"
	case KindBoolean:
		return "Boolean"
	}
	return "Nil"
}

type (
	// String is a string value.
	String string
	// Number is a 64-bit float value. Luth has no separate integer type.
	Number float64
	// Boolean is true or false.
	Boolean bool
	// Nil is the absent value.
	Nil struct{}
)

func (String) Kind() Kind  { return KindString }
func (Number) Kind() Kind  { return KindNumber }
func (Boolean) Kind() Kind { return KindBoolean }
func (Nil) Kind() Kind     { return KindNil }

func (s String) String() string  { return string(s) }
func (n Number) String() string  { return formatNumber(float64(n)) }
func (b Boolean) String() string { return strconv.FormatBool(bool(b)) }
func (Nil) String() string       { return "nil" }

// formatNumber renders n in its shortest decimal form: 3, 0.5, 1e21 as
// 1000000000000000000000.
func formatNumber(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	case math.IsNaN(n):
		return "NaN"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Truthy coerces v to a boolean: nonzero numbers, nonempty strings and true
// are truthy; 0, "", false and nil are not.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case Number:
		return v != 0
	case String:
		return v != ""
	case Boolean:
		return bool(v)
	}
	return false
}

// Equal reports value equality: same variant and same content. Nil equals
// Nil; NaN equals nothing.
func Equal(a, b Value) bool {
	return a == b
}

// Matches reports whether v may be stored in a binding declared as t.
// Untyped accepts every value; Nil matches no declared type.
func Matches(t ast.Type, v Value) bool {
	switch t {
	case ast.Untyped:
		return true
	case ast.TypeString:
		return v.Kind() == KindString
	case ast.TypeInt:
		return v.Kind() == KindNumber
	case ast.TypeBoolean:
		return v.Kind() == KindBoolean
	}
	return false
}
