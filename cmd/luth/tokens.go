package main

import (
	"io"
	"os"
	"strconv"

	"fortio.org/log"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/urfave/cli.v1"

	"github.com/luth-lang/luth/ast"
	"github.com/luth-lang/luth/lexer"
)

var tokensCommand = cli.Command{
	Action:    dumpTokens,
	Name:      "tokens",
	Usage:     "Print the token stream of a script",
	ArgsUsage: "<file.luth>",
	Category:  "DEBUGGING COMMANDS",
}

// writeTokens renders toks as a table with one row per token.
func writeTokens(w io.Writer, toks []ast.Token) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Line", "Col", "Type", "Literal"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, tok := range toks {
		lit := tok.Literal
		if tok.Type == ast.STRING {
			lit = ast.Quote(lit)
		}
		table.Append([]string{
			strconv.Itoa(tok.Line),
			strconv.Itoa(tok.Col),
			tok.Type.String(),
			lit,
		})
	}
	table.Render()
}

// dumpTokens is the tokens command. The table shows what the parser would
// see; dropped input is logged as warnings and makes the command fail.
func dumpTokens(ctx *cli.Context) error {
	path, src, err := readSource(ctx)
	if err != nil {
		return fail(err, exitNoInput)
	}
	toks, errs := lexer.Tokenize(src)
	writeTokens(os.Stdout, toks)
	for _, err := range errs {
		log.Warnf("%s: %v", path, err)
	}
	if len(errs) > 0 {
		return cli.NewExitError("", exitSyntax)
	}
	return nil
}
