// Package ast defines the token types and the Token struct used by the Luth lexer and parser.
//
// Tokens are the smallest meaningful units of a Luth source file. Every token carries its
// type, the literal text it was scanned from, and its source position (line + column).
// Position is 1-based: the first character of a file is Line 1, Col 1.
package ast

// TokenType identifies the category of a scanned token.
type TokenType int

const (
	// ── Special ────────────────────────────────────────────────────────────────

	// ILLEGAL represents a character or sequence the lexer could not recognise.
	// The lexer reports it on its error channel and never hands it to the parser.
	ILLEGAL TokenType = iota
	// EOF marks the end of the input stream. The parser stops when it sees EOF.
	EOF

	// ── Literals ───────────────────────────────────────────────────────────────

	// IDENT is an identifier: [a-zA-Z][a-zA-Z0-9_]*
	IDENT
	// NUMBER is a decimal literal, optionally signed and fractional: 3, -2, 0.5.
	// Every Luth number is a 64-bit float.
	NUMBER
	// STRING is a double-quoted string literal. Literal holds the unescaped text.
	STRING
	// TRUE is the boolean literal true.
	TRUE
	// FALSE is the boolean literal false.
	FALSE

	// ── Keywords ───────────────────────────────────────────────────────────────

	// VAR introduces a declaration: var x: Int = 1;
	VAR
	// PRINT is the print primitive: print(x);
	PRINT
	// IF begins an if statement or an inline-if expression.
	IF
	// ELSE is the else branch of either if form.
	ELSE
	// ELIF chains further conditions inside an inline-if expression.
	ELIF
	// WHILE begins a conditional loop: while i < 10 { ... }
	WHILE

	// ── Type markers ───────────────────────────────────────────────────────────

	// TYPE_STRING is the String annotation.
	TYPE_STRING
	// TYPE_INT is the Int annotation.
	TYPE_INT
	// TYPE_BOOL is the Bool annotation.
	TYPE_BOOL

	// ── Arithmetic operators ────────────────────────────────────────────────────

	PLUS     // +
	MINUS    // -
	ASTERISK // *
	SLASH    // /
	PERCENT  // %
	POW      // **

	// ── Logical operators ──────────────────────────────────────────────────────

	// AND is && as well as the words and / AND.
	AND
	// OR is || as well as the words or / OR.
	OR
	// NOT is the prefix !.
	NOT

	// ── Comparison operators ────────────────────────────────────────────────────

	EQ  // ==
	NEQ // !=
	LT  // <
	LTE // <=
	GT  // >
	GTE // >=

	// ── Other operators ─────────────────────────────────────────────────────────

	ASSIGN    // =
	INCREMENT // ++
	DECREMENT // --

	// ── Delimiters ──────────────────────────────────────────────────────────────

	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	SEMICOLON // ;
	COLON     // :
)

var tokenNames = map[TokenType]string{
	ILLEGAL:     "ILLEGAL",
	EOF:         "end of input",
	IDENT:       "identifier",
	NUMBER:      "number",
	STRING:      "string",
	TRUE:        "true",
	FALSE:       "false",
	VAR:         "var",
	PRINT:       "print",
	IF:          "if",
	ELSE:        "else",
	ELIF:        "elif",
	WHILE:       "while",
	TYPE_STRING: "String",
	TYPE_INT:    "Int",
	TYPE_BOOL:   "Bool",
	PLUS:        "+",
	MINUS:       "-",
	ASTERISK:    "*",
	SLASH:       "/",
	PERCENT:     "%",
	POW:         "**",
	AND:         "&&",
	OR:          "||",
	NOT:         "!",
	EQ:          "==",
	NEQ:         "!=",
	LT:          "<",
	LTE:         "<=",
	GT:          ">",
	GTE:         ">=",
	ASSIGN:      "=",
	INCREMENT:   "++",
	DECREMENT:   "--",
	LPAREN:      "(",
	RPAREN:      ")",
	LBRACE:      "{",
	RBRACE:      "}",
	SEMICOLON:   ";",
	COLON:       ":",
}

// String returns the name used for the token type in error messages.
func (tt TokenType) String() string {
	if s, ok := tokenNames[tt]; ok {
		return s
	}
	return "UNKNOWN"
}

// keywords maps the literal text of every Luth keyword to its TokenType.
// The lexer consults this map when it finishes scanning an identifier.
var keywords = map[string]TokenType{
	"var":    VAR,
	"print":  PRINT,
	"if":     IF,
	"else":   ELSE,
	"elif":   ELIF,
	"while":  WHILE,
	"String": TYPE_STRING,
	"Int":    TYPE_INT,
	"Bool":   TYPE_BOOL,
	"true":   TRUE,
	"false":  FALSE,
	"and":    AND,
	"AND":    AND,
	"or":     OR,
	"OR":     OR,
}

// LookupIdent checks whether ident is a reserved keyword and returns the
// corresponding TokenType. If ident is not a keyword, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}

// Token is a single lexical unit produced by the Luth lexer.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Col     int
}

// String returns the literal text of the token.
func (t Token) String() string {
	if t.Type == EOF {
		return t.Type.String()
	}
	return t.Literal
}
