package main

import (
	"errors"
	"io"
	"os"
	"strings"

	"fortio.org/log"
	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"github.com/luth-lang/luth/ast"
	"github.com/luth-lang/luth/interpreter"
	"github.com/luth-lang/luth/lexer"
	"github.com/luth-lang/luth/parser"
)

var replCommand = cli.Command{
	Action: startREPL,
	Name:   "repl",
	Usage:  "Start an interactive session",
	Description: `
The repl command reads statements line by line and executes them against one
environment, so variables persist between inputs. Input with unclosed braces
continues on the next line. Ctrl-D exits.`,
}

// session accumulates input until it forms complete statements, then runs
// them against a persistent interpreter.
type session struct {
	interp *interpreter.Interpreter
	buf    strings.Builder
}

func newSession(out io.Writer) *session {
	return &session{interp: interpreter.New(interpreter.WithOutput(out))}
}

// pending reports whether buffered input is waiting for more lines.
func (s *session) pending() bool { return s.buf.Len() > 0 }

func (s *session) reset() { s.buf.Reset() }

// feed adds one line of input. It returns more=true while braces are still
// open; otherwise the buffer is parsed, executed and cleared. Errors from
// either step are returned and leave the environment as execution left it.
func (s *session) feed(line string) (more bool, err error) {
	s.buf.WriteString(line)
	s.buf.WriteByte('\n')

	src := s.buf.String()
	if openBraces(src) > 0 {
		return true, nil
	}
	s.reset()

	prog, err := parser.ParseSource(src)
	if err != nil {
		return false, err
	}
	return false, s.interp.Interpret(prog)
}

// openBraces counts '{' tokens not yet matched by '}'.
func openBraces(src string) int {
	toks, _ := lexer.Tokenize(src)
	depth := 0
	for _, tok := range toks {
		switch tok.Type {
		case ast.LBRACE:
			depth++
		case ast.RBRACE:
			depth--
		}
	}
	return depth
}

// startREPL is the repl command.
func startREPL(ctx *cli.Context) error {
	cfg := configFrom(ctx).REPL

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			if _, err := line.ReadHistory(f); err != nil {
				log.Warnf("reading history %s: %v", cfg.HistoryFile, err)
			}
			f.Close()
		}
		defer saveHistory(line, cfg.HistoryFile)
	}

	sess := newSession(os.Stdout)
	errOut := stderr()
	prompt := cfg.Prompt
	for {
		input, err := line.Prompt(prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			if !sess.pending() {
				return nil
			}
			sess.reset()
			prompt = cfg.Prompt
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		if strings.TrimSpace(input) == "" && !sess.pending() {
			continue
		}
		line.AppendHistory(input)

		more, err := sess.feed(input)
		if err != nil {
			report(errOut, err)
		}
		if more {
			prompt = cfg.ContinuationPrompt
		} else {
			prompt = cfg.Prompt
		}
	}
}

func saveHistory(line *liner.State, path string) {
	f, err := os.Create(path)
	if err != nil {
		log.Warnf("writing history %s: %v", path, err)
		return
	}
	defer f.Close()
	if _, err := line.WriteHistory(f); err != nil {
		log.Warnf("writing history %s: %v", path, err)
	}
}
