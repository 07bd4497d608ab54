package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"fortio.org/log"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"gopkg.in/urfave/cli.v1"

	"github.com/luth-lang/luth/ast"
	"github.com/luth-lang/luth/interpreter"
	"github.com/luth-lang/luth/lexer"
	"github.com/luth-lang/luth/parser"
)

var runCommand = cli.Command{
	Action:    runScript,
	Name:      "run",
	Usage:     "Execute a Luth script",
	ArgsUsage: "<file.luth>",
	Description: `
The run command parses the whole script before executing it. A script with
lexical or syntax errors is not executed; every diagnostic is reported.
Execution stops at the first runtime error.`,
}

var errLabel = color.New(color.FgRed, color.Bold)

// stderr is the colour-aware diagnostic stream.
func stderr() io.Writer {
	return colorable.NewColorableStderr()
}

// report writes each line of err to w as an error diagnostic.
func report(w io.Writer, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		errLabel.Fprint(w, "error: ")
		fmt.Fprintln(w, line)
	}
}

// exitCode maps a pipeline failure to the process exit status.
func exitCode(err error) int {
	if errors.Is(err, lexer.ErrLex) || errors.Is(err, parser.ErrSyntax) {
		return exitSyntax
	}
	return exitRuntime
}

// fail reports err and converts it into a cli exit error with the matching
// status. The message itself has already been written.
func fail(err error, code int) error {
	report(stderr(), err)
	return cli.NewExitError("", code)
}

// readSource reads the script named by the first command argument.
func readSource(ctx *cli.Context) (string, string, error) {
	if ctx.NArg() != 1 {
		return "", "", fmt.Errorf("%s: expected exactly one script argument", ctx.Command.Name)
	}
	path := ctx.Args().First()
	src, err := os.ReadFile(path)
	if err != nil {
		return path, "", err
	}
	return path, string(src), nil
}

// parseProgram parses src, logging where the program came from.
func parseProgram(name, src string) (*ast.Program, error) {
	prog, err := parser.ParseSource(src)
	if err != nil {
		return nil, err
	}
	log.Debugf("parsed %d statements from %s", len(prog.Statements), name)
	return prog, nil
}

// runSource parses and executes src; print statements write to out.
func runSource(name, src string, out io.Writer) error {
	prog, err := parseProgram(name, src)
	if err != nil {
		return err
	}
	return interpreter.New(interpreter.WithOutput(out)).Interpret(prog)
}

// runScript is the run command.
func runScript(ctx *cli.Context) error {
	path, src, err := readSource(ctx)
	if err != nil {
		return fail(err, exitNoInput)
	}
	if err := runSource(path, src, os.Stdout); err != nil {
		return fail(err, exitCode(err))
	}
	return nil
}
