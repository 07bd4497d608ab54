// Package ast defines the Abstract Syntax Tree (AST) node types for the Luth language.
//
// Every source construct has a corresponding node type. The hierarchy is:
//
//	Node (interface)
//	  Statement (interface)
//	    VarStmt, AssignStmt, PrintStmt, IfStmt, WhileStmt, BlockStmt
//	  Expression (interface)
//	    Identifier, NumberLiteral, StringLiteral, BooleanLiteral, NilLiteral
//	    BinaryExpr, UnaryExpr, IncrementExpr, DecrementExpr, InlineIfExpr
//
// Nodes are pure data. String renders a node back to Luth source that the
// parser accepts and that parses to a structurally equal tree.
package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// ── Interfaces ────────────────────────────────────────────────────────────────

// Node is the root interface for every element in the Luth AST.
type Node interface {
	// TokenLiteral returns the literal string of the token that began this node.
	TokenLiteral() string
	// String renders the node as Luth source.
	String() string
}

// Statement is a Node executed for its effect.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that evaluates to a value.
type Expression interface {
	Node
	expressionNode()
}

// ── Top-level program ─────────────────────────────────────────────────────────

// Program is the root AST node produced by the parser: the ordered list of
// top-level statements.
type Program struct {
	Statements []Statement
}

// TokenLiteral returns the literal of the first statement's starting token,
// or "" for an empty program.
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// String renders one statement per line.
func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ── Support types ─────────────────────────────────────────────────────────────

// Type is a declared variable type. The zero value Untyped means the binding
// is dynamically typed for its lifetime.
type Type int

const (
	Untyped Type = iota
	TypeString
	TypeInt
	TypeBoolean
)

// String returns the annotation spelling of the type.
func (t Type) String() string {
	switch t {
	case TypeString:
		return "String"
	case TypeInt:
		return "Int"
	case TypeBoolean:
		return "Bool"
	}
	return ""
}

// Operator is a binary or unary operator.
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow

	OpAnd
	OpOr
	OpNot

	OpEq
	OpNotEq
	OpLess
	OpLessEq
	OpGreater
	OpGreaterEq
)

var operatorText = [...]string{
	OpAdd:       "+",
	OpSub:       "-",
	OpMul:       "*",
	OpDiv:       "/",
	OpMod:       "%",
	OpPow:       "**",
	OpAnd:       "&&",
	OpOr:        "||",
	OpNot:       "!",
	OpEq:        "==",
	OpNotEq:     "!=",
	OpLess:      "<",
	OpLessEq:    "<=",
	OpGreater:   ">",
	OpGreaterEq: ">=",
}

// String returns the source spelling of the operator.
func (op Operator) String() string {
	if int(op) >= 0 && int(op) < len(operatorText) {
		return operatorText[op]
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// IsArithmetic reports whether op is one of + - * / % **.
func (op Operator) IsArithmetic() bool { return op >= OpAdd && op <= OpPow }

// IsLogical reports whether op is && or ||.
func (op Operator) IsLogical() bool { return op == OpAnd || op == OpOr }

// IsComparison reports whether op is one of == != < <= > >=.
func (op Operator) IsComparison() bool { return op >= OpEq && op <= OpGreaterEq }

// ElifBranch is one `elif condition: value` arm of an inline-if.
type ElifBranch struct {
	Condition Expression
	Value     Expression
}

// ── Statements ────────────────────────────────────────────────────────────────

// VarStmt declares (or re-declares) a binding.
//
//	var x = 5;
//	var name: String = "Tao";
type VarStmt struct {
	Token     Token // the 'var' token
	Name      string
	Value     Expression
	ValueType Type // Untyped when no annotation was written
}

func (s *VarStmt) statementNode()       {}
func (s *VarStmt) TokenLiteral() string { return s.Token.Literal }
func (s *VarStmt) String() string {
	if s.ValueType != Untyped {
		return fmt.Sprintf("var %s: %s = %s;", s.Name, s.ValueType, s.Value)
	}
	return fmt.Sprintf("var %s = %s;", s.Name, s.Value)
}

// AssignStmt assigns to an existing binding. `x++;` and `x--;` are parsed as
// an AssignStmt whose Value is an IncrementExpr/DecrementExpr on x.
//
//	count = count + 1;
//	count++;
type AssignStmt struct {
	Token Token // the identifier token
	Name  string
	Value Expression
}

func (s *AssignStmt) statementNode()       {}
func (s *AssignStmt) TokenLiteral() string { return s.Token.Literal }
func (s *AssignStmt) String() string {
	switch v := s.Value.(type) {
	case *IncrementExpr:
		if id, ok := v.Target.(*Identifier); ok && id.Name == s.Name {
			return s.Name + "++;"
		}
	case *DecrementExpr:
		if id, ok := v.Target.(*Identifier); ok && id.Name == s.Name {
			return s.Name + "--;"
		}
	}
	return fmt.Sprintf("%s = %s;", s.Name, s.Value)
}

// PrintStmt writes the rendered value of an expression to the output.
//
//	print(x);
type PrintStmt struct {
	Token Token // the 'print' token
	Value Expression
}

func (s *PrintStmt) statementNode()       {}
func (s *PrintStmt) TokenLiteral() string { return s.Token.Literal }
func (s *PrintStmt) String() string       { return fmt.Sprintf("print(%s);", s.Value) }

// IfStmt is a statement-level conditional. Else is nil when absent.
//
//	if x > 0 { print(x); } else { print(0); }
type IfStmt struct {
	Token     Token // the 'if' token
	Condition Expression
	Then      *BlockStmt
	Else      *BlockStmt
}

func (s *IfStmt) statementNode()       {}
func (s *IfStmt) TokenLiteral() string { return s.Token.Literal }
func (s *IfStmt) String() string {
	out := fmt.Sprintf("if %s %s", s.Condition, s.Then)
	if s.Else != nil {
		out += " else " + s.Else.String()
	}
	return out
}

// WhileStmt is a conditional loop.
//
//	while i < 10 { print(i); i++; }
type WhileStmt struct {
	Token     Token // the 'while' token
	Condition Expression
	Body      *BlockStmt
}

func (s *WhileStmt) statementNode()       {}
func (s *WhileStmt) TokenLiteral() string { return s.Token.Literal }
func (s *WhileStmt) String() string {
	return fmt.Sprintf("while %s %s", s.Condition, s.Body)
}

// BlockStmt is a brace-delimited sequence of statements. Blocks do not open a
// scope: Luth has a single global environment.
type BlockStmt struct {
	Token Token // the '{' token
	Stmts []Statement
}

func (s *BlockStmt) statementNode()       {}
func (s *BlockStmt) TokenLiteral() string { return s.Token.Literal }
func (s *BlockStmt) String() string {
	if len(s.Stmts) == 0 {
		return "{ }"
	}
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, st := range s.Stmts {
		sb.WriteString(st.String())
		sb.WriteByte(' ')
	}
	sb.WriteString("}")
	return sb.String()
}

// ── Expressions ───────────────────────────────────────────────────────────────

// Identifier is a reference to a variable.
type Identifier struct {
	Token Token
	Name  string
}

func (e *Identifier) expressionNode()      {}
func (e *Identifier) TokenLiteral() string { return e.Token.Literal }
func (e *Identifier) String() string       { return e.Name }

// NumberLiteral is a 64-bit float literal.
type NumberLiteral struct {
	Token Token
	Value float64
}

func (e *NumberLiteral) expressionNode()      {}
func (e *NumberLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *NumberLiteral) String() string {
	return strconv.FormatFloat(e.Value, 'f', -1, 64)
}

// StringLiteral is a string literal with escape sequences already processed.
type StringLiteral struct {
	Token Token
	Value string
}

func (e *StringLiteral) expressionNode()      {}
func (e *StringLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *StringLiteral) String() string       { return Quote(e.Value) }

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	Token Token
	Value bool
}

func (e *BooleanLiteral) expressionNode()      {}
func (e *BooleanLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *BooleanLiteral) String() string       { return strconv.FormatBool(e.Value) }

// NilLiteral is the implicit absent value. The parser produces it only as the
// default else arm of an inline-if.
type NilLiteral struct {
	Token Token
}

func (e *NilLiteral) expressionNode()      {}
func (e *NilLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *NilLiteral) String() string       { return "nil" }

// BinaryExpr is `left op right`. Both sides are always evaluated.
type BinaryExpr struct {
	Token    Token // the operator token
	Left     Expression
	Operator Operator
	Right    Expression
}

func (e *BinaryExpr) expressionNode()      {}
func (e *BinaryExpr) TokenLiteral() string { return e.Token.Literal }
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Operator, e.Right)
}

// UnaryExpr is a prefix operator applied to an operand. Only OpNot is produced
// by the grammar.
type UnaryExpr struct {
	Token    Token // the operator token
	Operator Operator
	Right    Expression
}

func (e *UnaryExpr) expressionNode()      {}
func (e *UnaryExpr) TokenLiteral() string { return e.Token.Literal }
func (e *UnaryExpr) String() string       { return e.Operator.String() + e.Right.String() }

// IncrementExpr adds one to a numeric variable and yields the new value.
type IncrementExpr struct {
	Token  Token // the '++' token
	Target Expression
}

func (e *IncrementExpr) expressionNode()      {}
func (e *IncrementExpr) TokenLiteral() string { return e.Token.Literal }
func (e *IncrementExpr) String() string       { return e.Target.String() + "++" }

// DecrementExpr subtracts one from a numeric variable and yields the new value.
type DecrementExpr struct {
	Token  Token // the '--' token
	Target Expression
}

func (e *DecrementExpr) expressionNode()      {}
func (e *DecrementExpr) TokenLiteral() string { return e.Token.Literal }
func (e *DecrementExpr) String() string       { return e.Target.String() + "--" }

// InlineIfExpr is the expression-level conditional chain. Else is a
// *NilLiteral when no else arm was written.
//
//	if a: 1 elif b: 2 else: 3
type InlineIfExpr struct {
	Token     Token // the 'if' token
	Condition Expression
	Then      Expression
	Elifs     []ElifBranch
	Else      Expression
}

func (e *InlineIfExpr) expressionNode()      {}
func (e *InlineIfExpr) TokenLiteral() string { return e.Token.Literal }

// String wraps the chain in parentheses so it stays one operand wherever it is
// embedded.
func (e *InlineIfExpr) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "(if %s: %s", e.Condition, e.Then)
	for _, b := range e.Elifs {
		fmt.Fprintf(&sb, " elif %s: %s", b.Condition, b.Value)
	}
	if _, implicit := e.Else.(*NilLiteral); e.Else != nil && !implicit {
		fmt.Fprintf(&sb, " else: %s", e.Else)
	}
	sb.WriteByte(')')
	return sb.String()
}

// Quote renders s as a Luth string literal, escaping the sequences the lexer
// understands.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
