package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/luth-lang/luth/ast"
)

var formatFlag = cli.StringFlag{
	Name:  "format",
	Usage: "Output format: source, json or yaml",
	Value: "source",
}

var astCommand = cli.Command{
	Action:    dumpAST,
	Name:      "ast",
	Usage:     "Print the parsed syntax tree of a script",
	ArgsUsage: "<file.luth>",
	Flags:     []cli.Flag{formatFlag},
	Category:  "DEBUGGING COMMANDS",
	Description: `
With --format source the tree is printed back as canonical Luth source, which
parses to the same tree. json and yaml print the node structure.`,
}

// astNode is the serialisable view of an AST node.
type astNode struct {
	Node     string     `json:"node" yaml:"node"`
	Name     string     `json:"name,omitempty" yaml:"name,omitempty"`
	Type     string     `json:"type,omitempty" yaml:"type,omitempty"`
	Operator string     `json:"operator,omitempty" yaml:"operator,omitempty"`
	Value    any        `json:"value,omitempty" yaml:"value,omitempty"`
	Line     int        `json:"line" yaml:"line"`
	Children []*astNode `json:"children,omitempty" yaml:"children,omitempty"`
}

func at(tok ast.Token, kind string) *astNode {
	return &astNode{Node: kind, Line: tok.Line}
}

// toNode converts n and its subtree.
func toNode(n ast.Node) *astNode {
	switch n := n.(type) {
	case *ast.Program:
		out := &astNode{Node: "Program", Line: 1}
		for _, s := range n.Statements {
			out.Children = append(out.Children, toNode(s))
		}
		return out

	case *ast.VarStmt:
		out := at(n.Token, "Var")
		out.Name = n.Name
		if n.ValueType != ast.Untyped {
			out.Type = n.ValueType.String()
		}
		out.Children = []*astNode{toNode(n.Value)}
		return out
	case *ast.AssignStmt:
		out := at(n.Token, "Assign")
		out.Name = n.Name
		out.Children = []*astNode{toNode(n.Value)}
		return out
	case *ast.PrintStmt:
		out := at(n.Token, "Print")
		out.Children = []*astNode{toNode(n.Value)}
		return out
	case *ast.IfStmt:
		out := at(n.Token, "If")
		out.Children = []*astNode{toNode(n.Condition), toNode(n.Then)}
		if n.Else != nil {
			out.Children = append(out.Children, toNode(n.Else))
		}
		return out
	case *ast.WhileStmt:
		out := at(n.Token, "While")
		out.Children = []*astNode{toNode(n.Condition), toNode(n.Body)}
		return out
	case *ast.BlockStmt:
		out := at(n.Token, "Block")
		for _, s := range n.Stmts {
			out.Children = append(out.Children, toNode(s))
		}
		return out

	case *ast.Identifier:
		out := at(n.Token, "Identifier")
		out.Name = n.Name
		return out
	case *ast.NumberLiteral:
		out := at(n.Token, "Number")
		out.Value = n.Value
		return out
	case *ast.StringLiteral:
		out := at(n.Token, "String")
		out.Value = n.Value
		return out
	case *ast.BooleanLiteral:
		out := at(n.Token, "Boolean")
		out.Value = n.Value
		return out
	case *ast.NilLiteral:
		return at(n.Token, "Nil")
	case *ast.BinaryExpr:
		out := at(n.Token, "Binary")
		out.Operator = n.Operator.String()
		out.Children = []*astNode{toNode(n.Left), toNode(n.Right)}
		return out
	case *ast.UnaryExpr:
		out := at(n.Token, "Unary")
		out.Operator = n.Operator.String()
		out.Children = []*astNode{toNode(n.Right)}
		return out
	case *ast.IncrementExpr:
		out := at(n.Token, "Increment")
		out.Children = []*astNode{toNode(n.Target)}
		return out
	case *ast.DecrementExpr:
		out := at(n.Token, "Decrement")
		out.Children = []*astNode{toNode(n.Target)}
		return out
	case *ast.InlineIfExpr:
		out := at(n.Token, "InlineIf")
		out.Children = []*astNode{toNode(n.Condition), toNode(n.Then)}
		for _, b := range n.Elifs {
			elif := at(n.Token, "Elif")
			elif.Children = []*astNode{toNode(b.Condition), toNode(b.Value)}
			out.Children = append(out.Children, elif)
		}
		if n.Else != nil {
			out.Children = append(out.Children, toNode(n.Else))
		}
		return out
	}
	return &astNode{Node: fmt.Sprintf("%T", n)}
}

// writeAST prints prog to w in the given format.
func writeAST(w io.Writer, prog *ast.Program, format string) error {
	switch format {
	case "source", "":
		_, err := io.WriteString(w, prog.String())
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(toNode(prog))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toNode(prog)); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q (want source, json or yaml)", format)
}

// dumpAST is the ast command.
func dumpAST(ctx *cli.Context) error {
	path, src, err := readSource(ctx)
	if err != nil {
		return fail(err, exitNoInput)
	}
	prog, err := parseProgram(path, src)
	if err != nil {
		return fail(err, exitSyntax)
	}
	return writeAST(os.Stdout, prog, ctx.String(formatFlag.Name))
}
