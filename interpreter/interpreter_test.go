package interpreter_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luth-lang/luth/ast"
	"github.com/luth-lang/luth/interpreter"
	"github.com/luth-lang/luth/parser"
)

// run parses and executes src and returns the printed lines, the interpreter
// for inspection and the runtime error, if any.
func run(t *testing.T, src string) ([]string, *interpreter.Interpreter, error) {
	t.Helper()
	prog, err := parser.ParseSource(src)
	require.NoError(t, err, "parse %q", src)

	var out bytes.Buffer
	in := interpreter.New(interpreter.WithOutput(&out))
	err = in.Interpret(prog)

	text := strings.TrimSuffix(out.String(), "\n")
	if text == "" {
		return nil, in, err
	}
	return strings.Split(text, "\n"), in, err
}

// get reads a variable the program left behind.
func get(t *testing.T, in *interpreter.Interpreter, name string) interpreter.Value {
	t.Helper()
	v, err := in.Environment().Get(name)
	require.NoError(t, err)
	return v
}

// eval evaluates a single expression in a fresh interpreter.
func eval(t *testing.T, expr string) interpreter.Value {
	t.Helper()
	_, in, err := run(t, "var result = "+expr+";")
	require.NoError(t, err)
	return get(t, in, "result")
}

func TestTypedAssignmentMismatch(t *testing.T) {
	_, in, err := run(t, `var x: Int = 5; x = "s";`)
	require.Error(t, err)
	assert.ErrorIs(t, err, interpreter.ErrTypeMismatch)
	assert.EqualError(t, err, "type mismatch for variable 'x': declared Int, got String")

	var rerr *interpreter.RuntimeError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "x", rerr.Name)

	// the failed assignment leaves the binding untouched
	assert.Equal(t, interpreter.Number(5), get(t, in, "x"))
}

func TestTypedAssignmentAccepted(t *testing.T) {
	_, in, err := run(t, `
var s: String = "a"; s = s;
var n: Int = 1; n = 2.5;
var b: Bool = true; b = 1 > 2;`)
	require.NoError(t, err)
	assert.Equal(t, interpreter.String("a"), get(t, in, "s"))
	assert.Equal(t, interpreter.Number(2.5), get(t, in, "n"))
	assert.Equal(t, interpreter.Boolean(false), get(t, in, "b"))
}

// Nil matches no declared type.
func TestTypedAssignmentRejectsNil(t *testing.T) {
	_, _, err := run(t, `var n: Int = 1; n = "a" + 1;`)
	assert.ErrorIs(t, err, interpreter.ErrTypeMismatch)
	assert.EqualError(t, err, "type mismatch for variable 'n': declared Int, got Nil")
}

func TestDynamicAssignment(t *testing.T) {
	_, in, err := run(t, `var x = 5; x = "s"; x = true;`)
	require.NoError(t, err)
	assert.Equal(t, interpreter.Boolean(true), get(t, in, "x"))
}

// A declaration's initialiser is not checked against its annotation.
func TestDeclarationNotChecked(t *testing.T) {
	_, in, err := run(t, `var x: Int = "five";`)
	require.NoError(t, err)
	assert.Equal(t, interpreter.String("five"), get(t, in, "x"))

	typ, ok := in.Environment().TypeOf("x")
	require.True(t, ok)
	assert.Equal(t, ast.TypeInt, typ)
}

// Redeclaring replaces the binding and its type.
func TestRedeclarationDropsType(t *testing.T) {
	_, in, err := run(t, `var x: Int = 1; var x = 2; x = "now a string";`)
	require.NoError(t, err)
	assert.Equal(t, interpreter.String("now a string"), get(t, in, "x"))
}

func TestUndeclaredAssignment(t *testing.T) {
	lines, _, err := run(t, `print(1); y = 3; print(2);`)
	assert.ErrorIs(t, err, interpreter.ErrUndeclaredVariable)
	assert.EqualError(t, err, "variable 'y' not declared")
	// execution stops at the failing statement
	assert.Equal(t, []string{"1"}, lines)
}

func TestUndefinedVariable(t *testing.T) {
	_, _, err := run(t, `print(missing);`)
	assert.ErrorIs(t, err, interpreter.ErrUndefinedVariable)
	assert.EqualError(t, err, "undefined variable 'missing'")
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"1 + 2", 3},
		{"0.1 + 0.2", 0.30000000000000004},
		{"-5 + 12.5", 7.5},
		{"10 - 4", 6},
		{"6 * 7", 42},
		{"7 / 2", 3.5},
		{"7 % 3", 1},
		{"-7 % 3", -1},
		{"2 ** 10", 1024},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, interpreter.Number(tt.want), eval(t, tt.expr))
		})
	}
}

// Arithmetic with a non-number operand degrades to nil instead of failing.
func TestArithmeticNonNumbers(t *testing.T) {
	for _, expr := range []string{`"a" + "b"`, `"a" + 1`, `true * 2`, `1 - false`} {
		assert.Equal(t, interpreter.Nil{}, eval(t, expr), expr)
	}
}

func TestDivisionByZero(t *testing.T) {
	lines, _, err := run(t, `print(1 / 0); print(-1 / 0); print(0 / 0);`)
	require.NoError(t, err)
	assert.Equal(t, []string{"inf", "-inf", "NaN"}, lines)
}

func TestTruthiness(t *testing.T) {
	tests := []struct {
		expr string
		want bool
	}{
		{"0", false},
		{`""`, false},
		{"false", false},
		{"if false: 1", false}, // nil
		{"1", true},
		{"-1", true},
		{"0.5", true},
		{`"0"`, true},
		{"true", true},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			lines, _, err := run(t, "var v = "+tt.expr+"; if v { print(1); } else { print(0); } print(!v);")
			require.NoError(t, err)
			want := []string{"0", "true"}
			if tt.want {
				want = []string{"1", "false"}
			}
			assert.Equal(t, want, lines)
		})
	}
}

func TestLogical(t *testing.T) {
	assert.Equal(t, interpreter.Boolean(true), eval(t, "true && false || true"))
	assert.Equal(t, interpreter.Boolean(false), eval(t, `"" or 0`))
	assert.Equal(t, interpreter.Boolean(true), eval(t, `"x" and 3`))
	// logical binds tighter than arithmetic: 1 + (0 && 1)
	assert.Equal(t, interpreter.Nil{}, eval(t, "1 + 0 && 1"))
}

// Both sides of a logical operator are evaluated, so an error on the right
// surfaces even when the left side decides the result.
func TestLogicalEvaluatesBothSides(t *testing.T) {
	_, _, err := run(t, `var r = false && missing;`)
	assert.ErrorIs(t, err, interpreter.ErrUndefinedVariable)

	_, _, err = run(t, `var r = true || missing;`)
	assert.ErrorIs(t, err, interpreter.ErrUndefinedVariable)
}

func TestComparison(t *testing.T) {
	tests := []struct {
		expr string
		want bool
	}{
		{"1 < 2", true},
		{"2 <= 2", true},
		{"3 > 4", false},
		{"4 >= 5", false},
		{"1 == 1.0", true},
		{`"a" == "a"`, true},
		{`"a" != "b"`, true},
		{"true == true", true},
		{`1 == "1"`, false},
		{`0 == false`, false},
		{"(if false: 1) == (if false: 2)", true},
		{"(0 / 0) == (0 / 0)", false},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, interpreter.Boolean(tt.want), eval(t, tt.expr))
		})
	}
}

func TestOrderingNonNumbers(t *testing.T) {
	_, _, err := run(t, `var r = "a" < "b";`)
	assert.ErrorIs(t, err, interpreter.ErrInvalidComparison)
	assert.EqualError(t, err, "cannot compare String < String")

	_, _, err = run(t, `var r = true >= 1;`)
	assert.ErrorIs(t, err, interpreter.ErrInvalidComparison)
}

func TestWhileLoop(t *testing.T) {
	lines, in, err := run(t, `
var i = 0;
while i < 3 { print(i); i++; }`)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2"}, lines)
	assert.Equal(t, interpreter.Number(3), get(t, in, "i"))
}

func TestWhileFalseNeverRuns(t *testing.T) {
	lines, _, err := run(t, `while 0 { print("never"); }`)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestIfElse(t *testing.T) {
	lines, _, err := run(t, `
var x = 7;
if x > 5 { print("big"); } else { print("small"); }
if x > 10 { print("huge"); }
if x < 0 { print("negative"); } else { print("non-negative"); }`)
	require.NoError(t, err)
	assert.Equal(t, []string{"big", "non-negative"}, lines)
}

// Blocks share the single global environment.
func TestBlocksShareEnvironment(t *testing.T) {
	_, in, err := run(t, `if true { var inner = 1; }`)
	require.NoError(t, err)
	assert.Equal(t, interpreter.Number(1), get(t, in, "inner"))
}

func TestInlineIf(t *testing.T) {
	_, in, err := run(t, `var y = if false: 1 elif true: 2 else: 3;`)
	require.NoError(t, err)
	assert.Equal(t, interpreter.Number(2), get(t, in, "y"))

	assert.Equal(t, interpreter.Number(1), eval(t, "if 1: 1 elif true: 2 else: 3"))
	assert.Equal(t, interpreter.Number(3), eval(t, `if "": 1 elif 0: 2 else: 3`))
	assert.Equal(t, interpreter.Nil{}, eval(t, "if false: 1 elif false: 2"))
}

func TestIncrementDecrement(t *testing.T) {
	_, in, err := run(t, `var a = 1; a++; a++; var b: Int = 0; b--;`)
	require.NoError(t, err)
	assert.Equal(t, interpreter.Number(3), get(t, in, "a"))
	assert.Equal(t, interpreter.Number(-1), get(t, in, "b"))
}

// Incrementing a non-number yields nil, which the assignment then stores.
func TestIncrementNonNumber(t *testing.T) {
	_, in, err := run(t, `var s = "a"; s++;`)
	require.NoError(t, err)
	assert.Equal(t, interpreter.Nil{}, get(t, in, "s"))

	_, _, err = run(t, `var t: String = "a"; t++;`)
	assert.ErrorIs(t, err, interpreter.ErrTypeMismatch)

	_, _, err = run(t, `ghost++;`)
	assert.ErrorIs(t, err, interpreter.ErrUndefinedVariable)
}

func TestPrintRendering(t *testing.T) {
	lines, _, err := run(t, `
print("text");
print(3);
print(2.5);
print(-0.125);
print(1 / 3);
print(true);
print(if false: 1);
print(1000000 * 1000000);`)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"text", "3", "2.5", "-0.125", "0.3333333333333333", "true", "nil", "1000000000000",
	}, lines)
}

// Output written before a runtime error stays written.
func TestRuntimeErrorStopsRun(t *testing.T) {
	lines, _, err := run(t, `
var i = 0;
while true {
	print(i);
	i++;
	if i == 2 { print(undefinedName); }
}`)
	assert.ErrorIs(t, err, interpreter.ErrUndefinedVariable)
	assert.Equal(t, []string{"0", "1"}, lines)
}

// The interpreter keeps its environment between runs.
func TestInterpreterIsReusable(t *testing.T) {
	var out bytes.Buffer
	in := interpreter.New(interpreter.WithOutput(&out))
	for _, src := range []string{`var n = 1;`, `n = n + 1;`, `print(n);`} {
		prog, err := parser.ParseSource(src)
		require.NoError(t, err)
		require.NoError(t, in.Interpret(prog))
	}
	assert.Equal(t, "2\n", out.String())
}

func TestExecuteAndEvaluate(t *testing.T) {
	in := interpreter.New(interpreter.WithOutput(&bytes.Buffer{}))
	require.NoError(t, in.Execute(&ast.VarStmt{
		Name:  "x",
		Value: &ast.NumberLiteral{Value: 4},
	}))

	v, err := in.Evaluate(&ast.BinaryExpr{
		Left:     &ast.Identifier{Name: "x"},
		Operator: ast.OpMul,
		Right:    &ast.NumberLiteral{Value: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, interpreter.Number(8), v)

	// increment of something other than a variable yields nil
	v, err = in.Evaluate(&ast.IncrementExpr{Target: &ast.NumberLiteral{Value: 1}})
	require.NoError(t, err)
	assert.Equal(t, interpreter.Nil{}, v)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestPrintWriteError(t *testing.T) {
	prog, err := parser.ParseSource(`print(1);`)
	require.NoError(t, err)
	err = interpreter.New(interpreter.WithOutput(failingWriter{})).Interpret(prog)
	assert.EqualError(t, err, "print: disk full")
}
