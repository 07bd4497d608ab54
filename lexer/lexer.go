// Package lexer implements the Luth language lexer (tokeniser).
//
// The lexer converts a Luth source string into a flat stream of [ast.Token] values.
// Call [New] to create a lexer and then call [Lexer.NextToken] repeatedly until
// you receive a token with Type == [ast.EOF].
//
// Design notes:
//   - Single-pass, character-by-character scanning using a read position cursor.
//   - No global state; every [Lexer] is independent.
//   - Line and column numbers are tracked for every token (1-based).
//   - Comments (# … and #* … *#) and whitespace are consumed silently.
//   - Characters that start no token are dropped from the stream and reported
//     through [Lexer.Errors]; the parser never sees an ILLEGAL token.
//   - A '-' directly followed by a digit is scanned as part of a number literal
//     unless the previous token ends an operand, so `a-1` is a subtraction while
//     `x = -1` binds a negative literal.
package lexer

import (
	"errors"
	"fmt"

	"github.com/luth-lang/luth/ast"
)

// ErrLex is wrapped by every diagnostic the lexer records.
var ErrLex = errors.New("lex error")

// Error is a lexical diagnostic with its source position.
type Error struct {
	Line int
	Col  int
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("line %d:%d: %s", e.Line, e.Col, e.Msg) }

// Unwrap lets errors.Is match ErrLex.
func (e *Error) Unwrap() error { return ErrLex }

// Lexer holds all state required to tokenise a single Luth source string.
// Create one with [New]; never copy a Lexer after first use.
type Lexer struct {
	input   string // the full source text
	pos     int    // current read position (index of ch)
	readPos int    // next read position (pos + 1)
	ch      byte   // current character under examination

	line int // 1-based line of ch
	col  int // 1-based column of ch

	prev   ast.TokenType // type of the last token returned
	errors []error
}

// New creates a [Lexer] that tokenises the given input string.
func New(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		prev:  ast.ILLEGAL,
	}
	l.readChar() // prime: set l.ch = input[0]
	return l
}

// Tokenize scans src to completion. The returned slice always ends with an
// EOF token; the error slice holds every lexical diagnostic in source order.
func Tokenize(src string) ([]ast.Token, []error) {
	l := New(src)
	var toks []ast.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == ast.EOF {
			return toks, l.Errors()
		}
	}
}

// Errors returns the diagnostics recorded so far.
func (l *Lexer) Errors() []error {
	return l.errors
}

// NextToken returns the next token from the input. When the input is
// exhausted it returns EOF on every subsequent call.
func (l *Lexer) NextToken() ast.Token {
	for {
		tok, ok := l.scan()
		if ok {
			l.prev = tok.Type
			return tok
		}
	}
}

// scan produces one token, or ok=false when it consumed something that yields
// no token (an unrecognised character or an unterminated construct).
func (l *Lexer) scan() (ast.Token, bool) {
	if !l.skipWhitespaceAndComments() {
		return ast.Token{}, false
	}

	line, col := l.line, l.col
	single := func(tt ast.TokenType) (ast.Token, bool) {
		lit := string(l.ch)
		l.readChar()
		return ast.Token{Type: tt, Literal: lit, Line: line, Col: col}, true
	}
	double := func(tt ast.TokenType) (ast.Token, bool) {
		lit := l.input[l.pos : l.pos+2]
		l.readChar()
		l.readChar()
		return ast.Token{Type: tt, Literal: lit, Line: line, Col: col}, true
	}

	if l.atEOF() {
		return ast.Token{Type: ast.EOF, Line: line, Col: col}, true
	}

	switch l.ch {
	case '"':
		return l.readString()

	case '{':
		return single(ast.LBRACE)
	case '}':
		return single(ast.RBRACE)
	case '(':
		return single(ast.LPAREN)
	case ')':
		return single(ast.RPAREN)
	case ';':
		return single(ast.SEMICOLON)
	case ':':
		return single(ast.COLON)
	case '/':
		return single(ast.SLASH)
	case '%':
		return single(ast.PERCENT)

	case '+':
		if l.peekChar() == '+' {
			return double(ast.INCREMENT)
		}
		return single(ast.PLUS)
	case '-':
		if l.peekChar() == '-' {
			return double(ast.DECREMENT)
		}
		if isDigit(l.peekChar()) && !endsOperand(l.prev) {
			return l.readNumber()
		}
		return single(ast.MINUS)
	case '*':
		if l.peekChar() == '*' {
			return double(ast.POW)
		}
		return single(ast.ASTERISK)
	case '=':
		if l.peekChar() == '=' {
			return double(ast.EQ)
		}
		return single(ast.ASSIGN)
	case '!':
		if l.peekChar() == '=' {
			return double(ast.NEQ)
		}
		return single(ast.NOT)
	case '<':
		if l.peekChar() == '=' {
			return double(ast.LTE)
		}
		return single(ast.LT)
	case '>':
		if l.peekChar() == '=' {
			return double(ast.GTE)
		}
		return single(ast.GT)
	case '&':
		if l.peekChar() == '&' {
			return double(ast.AND)
		}
	case '|':
		if l.peekChar() == '|' {
			return double(ast.OR)
		}

	default:
		if isLetter(l.ch) {
			return l.readIdentifier(), true
		}
		if isDigit(l.ch) {
			return l.readNumber()
		}
	}

	l.errorf(line, col, "unexpected character %q", l.ch)
	l.readChar()
	return ast.Token{}, false
}

// ── Internal helpers ──────────────────────────────────────────────────────────

// readChar advances the lexer by one character. Past the end of input l.ch is 0.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	if l.pos <= len(l.input) {
		l.readPos++
		l.col++
	}
}

// peekChar returns the next character without consuming it, or 0 at the end.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) atEOF() bool { return l.pos >= len(l.input) }

func (l *Lexer) errorf(line, col int, format string, args ...any) {
	l.errors = append(l.errors, &Error{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)})
}

// skipWhitespaceAndComments advances past whitespace, `# …` line comments and
// `#* … *#` block comments. It returns false if a block comment is left open.
func (l *Lexer) skipWhitespaceAndComments() bool {
	for !l.atEOF() {
		switch l.ch {
		case ' ', '\t', '\r', '\n', '\f':
			l.readChar()
		case '#':
			if l.peekChar() == '*' {
				if !l.skipBlockComment() {
					return false
				}
				continue
			}
			for l.ch != '\n' && !l.atEOF() {
				l.readChar()
			}
		default:
			return true
		}
	}
	return true
}

func (l *Lexer) skipBlockComment() bool {
	line, col := l.line, l.col
	l.readChar() // '#'
	l.readChar() // '*'
	for !l.atEOF() {
		if l.ch == '*' && l.peekChar() == '#' {
			l.readChar()
			l.readChar()
			return true
		}
		l.readChar()
	}
	l.errorf(line, col, "unterminated block comment")
	return false
}

// readIdentifier scans an identifier or keyword starting at the current position.
func (l *Lexer) readIdentifier() ast.Token {
	line, col := l.line, l.col
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	literal := l.input[start:l.pos]
	return ast.Token{Type: ast.LookupIdent(literal), Literal: literal, Line: line, Col: col}
}

// readNumber scans `-?\d+(\.\d+)?`. A '.' not followed by a digit is left for
// the next token.
func (l *Lexer) readNumber() (ast.Token, bool) {
	line, col := l.line, l.col
	start := l.pos
	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // consume '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return ast.Token{Type: ast.NUMBER, Literal: l.input[start:l.pos], Line: line, Col: col}, true
}

// readString scans a double-quoted string literal. The token literal holds
// the unescaped contents.
//
// Recognised escape sequences: \n  \t  \\  \"
// Any other backslash sequence is kept as-is (backslash + character).
// A string left open at a newline or the end of input is reported and dropped.
func (l *Lexer) readString() (ast.Token, bool) {
	line, col := l.line, l.col
	l.readChar() // skip opening '"'

	var buf []byte
	for {
		if l.atEOF() || l.ch == '\n' {
			l.errorf(line, col, "unterminated string literal")
			return ast.Token{}, false
		}
		switch l.ch {
		case '"':
			l.readChar()
			return ast.Token{Type: ast.STRING, Literal: string(buf), Line: line, Col: col}, true
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				buf = append(buf, '\n')
			case 't':
				buf = append(buf, '\t')
			case '\\':
				buf = append(buf, '\\')
			case '"':
				buf = append(buf, '"')
			default:
				if l.atEOF() || l.ch == '\n' {
					continue
				}
				buf = append(buf, '\\', l.ch)
			}
			l.readChar()
		default:
			buf = append(buf, l.ch)
			l.readChar()
		}
	}
}

// endsOperand reports whether a token of type tt can end an operand, in which
// case a following '-' is the subtraction operator.
func endsOperand(tt ast.TokenType) bool {
	switch tt {
	case ast.IDENT, ast.NUMBER, ast.STRING, ast.TRUE, ast.FALSE, ast.RPAREN:
		return true
	}
	return false
}

// isLetter reports whether b is an ASCII letter. Luth identifiers follow
// [a-zA-Z][a-zA-Z0-9_]*.
func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// isDigit reports whether b is an ASCII decimal digit (0–9).
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
