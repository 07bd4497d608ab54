// Package parser implements the Luth recursive-descent parser.
//
// The parser reads a token stream from a [TokenSource] (normally a
// [lexer.Lexer]) and builds an [ast.Program]. Binary expressions are parsed
// with a small Pratt loop over a precedence table; the levels, lowest first,
// are comparison, additive, multiplicative, logical, then prefix `!`. Logical
// operators binding tighter than arithmetic is part of the language.
//
// Usage:
//
//	l := lexer.New(source)
//	p := parser.New(l)
//	prog, err := p.Parse()
//
// Error recovery: a statement that fails to parse is recorded and the parser
// skips to the next `;` or `}` at brace depth zero before continuing, so
// several problems can be reported in one pass. A program whose Parse returned
// an error must not be executed.
package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/luth-lang/luth/ast"
	"github.com/luth-lang/luth/lexer"
)

// ── Operator precedence ───────────────────────────────────────────────────────

const (
	precLowest     = iota
	precComparison // == != < <= > >=
	precSum        // + -
	precProduct    // * / % **
	precLogical    // && || and or AND OR
)

var tokenPrecedence = map[ast.TokenType]int{
	ast.EQ:       precComparison,
	ast.NEQ:      precComparison,
	ast.LT:       precComparison,
	ast.LTE:      precComparison,
	ast.GT:       precComparison,
	ast.GTE:      precComparison,
	ast.PLUS:     precSum,
	ast.MINUS:    precSum,
	ast.ASTERISK: precProduct,
	ast.SLASH:    precProduct,
	ast.PERCENT:  precProduct,
	ast.POW:      precProduct,
	ast.AND:      precLogical,
	ast.OR:       precLogical,
}

var tokenOperator = map[ast.TokenType]ast.Operator{
	ast.EQ:       ast.OpEq,
	ast.NEQ:      ast.OpNotEq,
	ast.LT:       ast.OpLess,
	ast.LTE:      ast.OpLessEq,
	ast.GT:       ast.OpGreater,
	ast.GTE:      ast.OpGreaterEq,
	ast.PLUS:     ast.OpAdd,
	ast.MINUS:    ast.OpSub,
	ast.ASTERISK: ast.OpMul,
	ast.SLASH:    ast.OpDiv,
	ast.PERCENT:  ast.OpMod,
	ast.POW:      ast.OpPow,
	ast.AND:      ast.OpAnd,
	ast.OR:       ast.OpOr,
}

// ── Errors ────────────────────────────────────────────────────────────────────

// ErrSyntax is wrapped by every SyntaxError.
var ErrSyntax = errors.New("syntax error")

// SyntaxError describes a structural mismatch at a token.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("line %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Unwrap lets errors.Is match ErrSyntax.
func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// ── Token sources ─────────────────────────────────────────────────────────────

// TokenSource yields tokens one at a time. After the end of input it must
// keep returning an EOF token.
type TokenSource interface {
	NextToken() ast.Token
}

type sliceSource struct {
	toks []ast.Token
	i    int
}

func (s *sliceSource) NextToken() ast.Token {
	if s.i >= len(s.toks) {
		if n := len(s.toks); n > 0 && s.toks[n-1].Type == ast.EOF {
			return s.toks[n-1]
		}
		return ast.Token{Type: ast.EOF}
	}
	tok := s.toks[s.i]
	s.i++
	return tok
}

// ── Parser ────────────────────────────────────────────────────────────────────

// Parser holds all state needed to parse a Luth token stream.
// Create one with [New] or [NewFromTokens] and call [Parser.Parse] once.
type Parser struct {
	src    TokenSource
	cur    ast.Token // current token (the one being examined)
	peek   ast.Token // next token
	errors []error

	depth int // '{' consumed by parseBlock whose '}' has not been
}

// New creates a Parser that reads tokens from src.
func New(src TokenSource) *Parser {
	p := &Parser{src: src}
	// Prime the lookahead: after two advances, cur = first token, peek = second.
	p.advance()
	p.advance()
	return p
}

// NewFromTokens creates a Parser over an already scanned token slice.
func NewFromTokens(toks []ast.Token) *Parser {
	return New(&sliceSource{toks: toks})
}

// ParseSource lexes and parses src in one step. The returned error joins the
// lexical diagnostics and the syntax errors.
func ParseSource(src string) (*ast.Program, error) {
	l := lexer.New(src)
	prog, err := New(l).Parse()
	return prog, errors.Join(append(l.Errors(), err)...)
}

// Errors returns the syntax errors collected by Parse, in source order.
func (p *Parser) Errors() []error {
	return p.errors
}

// Parse consumes the whole token stream. Statements that parsed are returned
// even when err is non-nil; err joins every SyntaxError.
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.curIs(ast.EOF) {
		s, err := p.parseStatement()
		if err != nil {
			p.errors = append(p.errors, err)
			p.synchronize()
		} else {
			prog.Statements = append(prog.Statements, s)
		}
		p.advance()
	}
	return prog, errors.Join(p.errors...)
}

// ── Internal token management ─────────────────────────────────────────────────

// advance shifts peek into cur and reads a new peek token.
func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.src.NextToken()
}

// expect advances if the peek token has type tt and fails otherwise.
func (p *Parser) expect(tt ast.TokenType) error {
	if p.peek.Type == tt {
		p.advance()
		return nil
	}
	return p.errorAt(p.peek, "expected %s, got %s", expected(tt), describe(p.peek))
}

func (p *Parser) curIs(tt ast.TokenType) bool  { return p.cur.Type == tt }
func (p *Parser) peekIs(tt ast.TokenType) bool { return p.peek.Type == tt }

func (p *Parser) peekPrec() int {
	if prec, ok := tokenPrecedence[p.peek.Type]; ok {
		return prec
	}
	return precLowest
}

func (p *Parser) errorAt(tok ast.Token, format string, args ...any) error {
	return &SyntaxError{Line: tok.Line, Col: tok.Col, Msg: fmt.Sprintf(format, args...)}
}

// synchronize skips to the `;` or `}` that ends the failed statement at brace
// depth zero, leaving it as the current token, or stops at EOF.
func (p *Parser) synchronize() {
	for !p.curIs(ast.EOF) {
		switch p.cur.Type {
		case ast.LBRACE:
			p.depth++
		case ast.RBRACE:
			p.depth--
			if p.depth <= 0 {
				p.depth = 0
				return
			}
		case ast.SEMICOLON:
			if p.depth == 0 {
				return
			}
		}
		p.advance()
	}
	p.depth = 0
}

// ── Statement parsing ─────────────────────────────────────────────────────────

// parseStatement dispatches on the current token. On success cur is the last
// token of the statement (`;` or `}`).
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur.Type {
	case ast.VAR:
		return p.parseVarStatement()
	case ast.IDENT:
		return p.parseAssignStatement()
	case ast.PRINT:
		return p.parsePrintStatement()
	case ast.IF:
		return p.parseIfStatement()
	case ast.WHILE:
		return p.parseWhileStatement()
	default:
		return nil, p.errorAt(p.cur, "unexpected %s at start of statement", describe(p.cur))
	}
}

// parseVarStatement parses `var name [: Type] = expr ;`.
func (p *Parser) parseVarStatement() (ast.Statement, error) {
	tok := p.cur // 'var'
	if err := p.expect(ast.IDENT); err != nil {
		return nil, err
	}
	name := p.cur.Literal

	typ := ast.Untyped
	if p.peekIs(ast.COLON) {
		p.advance() // consume ':'
		p.advance() // move to type
		var err error
		if typ, err = p.parseType(); err != nil {
			return nil, err
		}
	}

	if err := p.expect(ast.ASSIGN); err != nil {
		return nil, err
	}
	p.advance() // move past '='

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(ast.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.VarStmt{Token: tok, Name: name, Value: value, ValueType: typ}, nil
}

// parseType maps the current type marker to an ast.Type.
func (p *Parser) parseType() (ast.Type, error) {
	switch p.cur.Type {
	case ast.TYPE_STRING:
		return ast.TypeString, nil
	case ast.TYPE_INT:
		return ast.TypeInt, nil
	case ast.TYPE_BOOL:
		return ast.TypeBoolean, nil
	}
	return ast.Untyped, p.errorAt(p.cur, "expected type String, Int or Bool, got %s", describe(p.cur))
}

// parseAssignStatement parses `name = expr ;`, `name++ ;` and `name-- ;`.
func (p *Parser) parseAssignStatement() (ast.Statement, error) {
	tok := p.cur
	target := &ast.Identifier{Token: tok, Name: tok.Literal}

	var value ast.Expression
	switch p.peek.Type {
	case ast.INCREMENT:
		p.advance()
		value = &ast.IncrementExpr{Token: p.cur, Target: target}
	case ast.DECREMENT:
		p.advance()
		value = &ast.DecrementExpr{Token: p.cur, Target: target}
	case ast.ASSIGN:
		p.advance() // consume '='
		p.advance() // move to value
		var err error
		if value, err = p.parseExpression(); err != nil {
			return nil, err
		}
	default:
		return nil, p.errorAt(p.peek, "expected '=', '++' or '--' after %q, got %s", tok.Literal, describe(p.peek))
	}

	if err := p.expect(ast.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.AssignStmt{Token: tok, Name: tok.Literal, Value: value}, nil
}

// parsePrintStatement parses `print ( expr ) ;`.
func (p *Parser) parsePrintStatement() (ast.Statement, error) {
	tok := p.cur
	if err := p.expect(ast.LPAREN); err != nil {
		return nil, err
	}
	p.advance()
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(ast.RPAREN); err != nil {
		return nil, err
	}
	if err := p.expect(ast.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.PrintStmt{Token: tok, Value: value}, nil
}

// parseIfStatement parses `if cond { … } [else { … }]`.
func (p *Parser) parseIfStatement() (ast.Statement, error) {
	tok := p.cur
	p.advance() // move to condition

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(ast.LBRACE); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	stmt := &ast.IfStmt{Token: tok, Condition: cond, Then: then}
	if p.peekIs(ast.ELSE) {
		p.advance() // consume 'else'
		if err := p.expect(ast.LBRACE); err != nil {
			return nil, err
		}
		if stmt.Else, err = p.parseBlock(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

// parseWhileStatement parses `while cond { … }`.
func (p *Parser) parseWhileStatement() (ast.Statement, error) {
	tok := p.cur
	p.advance() // move to condition

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(ast.LBRACE); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Token: tok, Condition: cond, Body: body}, nil
}

// parseBlock parses `{ stmts… }`. cur is '{' on entry and '}' on return.
func (p *Parser) parseBlock() (*ast.BlockStmt, error) {
	tok := p.cur
	p.depth++
	p.advance()

	block := &ast.BlockStmt{Token: tok}
	for !p.curIs(ast.RBRACE) {
		if p.curIs(ast.EOF) {
			return nil, p.errorAt(p.cur, "expected '}' to close block opened at line %d:%d, got end of input", tok.Line, tok.Col)
		}
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, s)
		p.advance()
	}
	p.depth--
	return block, nil
}

// ── Expression parsing ────────────────────────────────────────────────────────

// parseExpression parses `inline-if | comparison`. On return cur is the last
// token of the expression.
func (p *Parser) parseExpression() (ast.Expression, error) {
	if p.curIs(ast.IF) {
		return p.parseInlineIf()
	}
	return p.parseBinary(precLowest)
}

// parseInlineIf parses `if c : e (elif c : e)* (else : e)?`.
func (p *Parser) parseInlineIf() (ast.Expression, error) {
	tok := p.cur
	p.advance()

	cond, then, err := p.parseArm("if")
	if err != nil {
		return nil, err
	}
	expr := &ast.InlineIfExpr{Token: tok, Condition: cond, Then: then}

	for p.peekIs(ast.ELIF) {
		p.advance() // consume 'elif'
		p.advance() // move to condition
		c, v, err := p.parseArm("elif")
		if err != nil {
			return nil, err
		}
		expr.Elifs = append(expr.Elifs, ast.ElifBranch{Condition: c, Value: v})
	}

	if p.peekIs(ast.ELSE) {
		p.advance() // consume 'else'
		if err := p.expect(ast.COLON); err != nil {
			return nil, err
		}
		p.advance()
		if expr.Else, err = p.parseExpression(); err != nil {
			return nil, err
		}
	} else {
		expr.Else = &ast.NilLiteral{Token: tok}
	}
	return expr, nil
}

// parseArm parses `cond : value` with cur on the first token of cond.
func (p *Parser) parseArm(keyword string) (ast.Expression, ast.Expression, error) {
	cond, err := p.parseExpression()
	if err != nil {
		return nil, nil, err
	}
	if !p.peekIs(ast.COLON) {
		return nil, nil, p.errorAt(p.peek, "expected ':' after %s condition, got %s", keyword, describe(p.peek))
	}
	p.advance() // consume ':'
	p.advance() // move to value
	value, err := p.parseExpression()
	if err != nil {
		return nil, nil, err
	}
	return cond, value, nil
}

// parseBinary is the Pratt loop. prec is the minimum binding power of
// operators the caller will accept; equal precedence folds to the left.
func (p *Parser) parseBinary(prec int) (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for prec < p.peekPrec() {
		p.advance()
		tok := p.cur
		opPrec := tokenPrecedence[tok.Type]
		p.advance()
		right, err := p.parseBinary(opPrec)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Token: tok, Left: left, Operator: tokenOperator[tok.Type], Right: right}
	}
	return left, nil
}

// parseUnary parses `'!' unary | primary`.
func (p *Parser) parseUnary() (ast.Expression, error) {
	if !p.curIs(ast.NOT) {
		return p.parsePrimary()
	}
	tok := p.cur
	p.advance()
	right, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{Token: tok, Operator: ast.OpNot, Right: right}, nil
}

// parsePrimary parses literals, identifiers and parenthesised expressions.
func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.cur
	switch tok.Type {
	case ast.NUMBER:
		val, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, p.errorAt(tok, "cannot parse %q as number: %v", tok.Literal, err)
		}
		return &ast.NumberLiteral{Token: tok, Value: val}, nil
	case ast.STRING:
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}, nil
	case ast.TRUE, ast.FALSE:
		return &ast.BooleanLiteral{Token: tok, Value: tok.Type == ast.TRUE}, nil
	case ast.IDENT:
		return &ast.Identifier{Token: tok, Name: tok.Literal}, nil
	case ast.LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if !p.peekIs(ast.RPAREN) {
			return nil, p.errorAt(p.peek, "expected ')' after expression, got %s", describe(p.peek))
		}
		p.advance()
		return expr, nil
	}
	return nil, p.errorAt(tok, "expected expression, got %s", describe(tok))
}

// ── Messages ──────────────────────────────────────────────────────────────────

// expected names a token type the way error messages quote it.
func expected(tt ast.TokenType) string {
	switch tt {
	case ast.IDENT, ast.NUMBER, ast.STRING, ast.EOF:
		return tt.String()
	}
	return "'" + tt.String() + "'"
}

// describe names the token actually found.
func describe(tok ast.Token) string {
	switch tok.Type {
	case ast.EOF:
		return "end of input"
	case ast.IDENT:
		return fmt.Sprintf("identifier %q", tok.Literal)
	case ast.NUMBER:
		return "number " + tok.Literal
	case ast.STRING:
		return "string " + ast.Quote(tok.Literal)
	}
	return "'" + tok.Type.String() + "'"
}
