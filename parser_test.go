// parser_test.go
package gascript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, src string) *AssignStatement {
	t.Helper()
	statements, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, statements, 1)
	return statements[0].(*AssignStatement)
}

func asBinary(t *testing.T, e Expression, op BinaryOp) *BinaryExpr {
	t.Helper()
	b, ok := e.(*BinaryExpr)
	require.True(t, ok, "expected *BinaryExpr, got %T", e)
	require.Equal(t, op, b.Op)
	return b
}

func asUnary(t *testing.T, e Expression, op UnaryOp) *UnaryExpr {
	t.Helper()
	u, ok := e.(*UnaryExpr)
	require.True(t, ok, "expected *UnaryExpr, got %T", e)
	require.Equal(t, op, u.Op)
	return u
}

func asName(t *testing.T, e Expression, name string) *NameExpr {
	t.Helper()
	n, ok := e.(*NameExpr)
	require.True(t, ok, "expected *NameExpr, got %T", e)
	require.Equal(t, name, n.Name)
	return n
}

func asNumber(t *testing.T, e Expression, value float32) *NumberExpr {
	t.Helper()
	n, ok := e.(*NumberExpr)
	require.True(t, ok, "expected *NumberExpr, got %T", e)
	require.Equal(t, value, n.Number)
	return n
}

func Test_Parser_EmptySource(t *testing.T) {
	statements, err := Parse("")
	require.NoError(t, err)
	require.Empty(t, statements)

	statements, err = Parse("  \n\t ")
	require.NoError(t, err)
	require.Empty(t, statements)
}

func Test_Parser_SimpleAssignment(t *testing.T) {
	stmt := parseOne(t, "x = 1;")
	require.Equal(t, "x", stmt.Name)
	require.Equal(t, 1, stmt.NameLoc.Col)
	require.Equal(t, 3, stmt.Loc.Col) // the '='
	asNumber(t, stmt.Value, 1)
}

func Test_Parser_Precedence_MulBindsTighter(t *testing.T) {
	stmt := parseOne(t, "x = 1 + 2 * 3;")
	add := asBinary(t, stmt.Value, BinaryAdd)
	asNumber(t, add.Left, 1)
	mul := asBinary(t, add.Right, BinaryMultiply)
	asNumber(t, mul.Left, 2)
	asNumber(t, mul.Right, 3)
}

func Test_Parser_LeftAssociativeChain(t *testing.T) {
	stmt := parseOne(t, "x = 1 - 2 + 3;")
	add := asBinary(t, stmt.Value, BinaryAdd)
	sub := asBinary(t, add.Left, BinarySubtract)
	asNumber(t, sub.Left, 1)
	asNumber(t, sub.Right, 2)
	asNumber(t, add.Right, 3)
}

func Test_Parser_ParensOverridePrecedence(t *testing.T) {
	stmt := parseOne(t, "x = (1 + 2) * 3;")
	mul := asBinary(t, stmt.Value, BinaryMultiply)
	add := asBinary(t, mul.Left, BinaryAdd)
	asNumber(t, add.Left, 1)
	asNumber(t, add.Right, 2)
	asNumber(t, mul.Right, 3)
}

func Test_Parser_UnaryBindsPrimaryOnly(t *testing.T) {
	// -e1 ^ e2 must parse as (-e1) ^ e2, not -(e1 ^ e2).
	stmt := parseOne(t, "x = -e1 ^ e2;")
	wedge := asBinary(t, stmt.Value, BinaryWedge)
	neg := asUnary(t, wedge.Left, UnaryNegate)
	asName(t, neg.Operand, "e1")
	asName(t, wedge.Right, "e2")
}

func Test_Parser_UnaryOperators(t *testing.T) {
	cases := []struct {
		src string
		op  UnaryOp
	}{
		{"x = -a;", UnaryNegate},
		{"x = !a;", UnaryDual},
		{"x = ~a;", UnaryReverse},
		{"x = normalize a;", UnaryNormalize},
		{"x = magnitude a;", UnaryMagnitude},
		{"x = sin a;", UnarySin},
		{"x = cos a;", UnaryCos},
		{"x = asin a;", UnaryASin},
		{"x = acos a;", UnaryACos},
	}
	for _, c := range cases {
		stmt := parseOne(t, c.src)
		u := asUnary(t, stmt.Value, c.op)
		asName(t, u.Operand, "a")
	}
}

func Test_Parser_KeywordUnaryBindsPrimaryOnly(t *testing.T) {
	// magnitude a + 1 is (magnitude a) + 1.
	stmt := parseOne(t, "x = magnitude a + 1;")
	add := asBinary(t, stmt.Value, BinaryAdd)
	mag := asUnary(t, add.Left, UnaryMagnitude)
	asName(t, mag.Operand, "a")
	asNumber(t, add.Right, 1)
}

func Test_Parser_NestedUnary(t *testing.T) {
	stmt := parseOne(t, "x = -~a;")
	neg := asUnary(t, stmt.Value, UnaryNegate)
	rev := asUnary(t, neg.Operand, UnaryReverse)
	asName(t, rev.Operand, "a")
}

func Test_Parser_UnaryOverParens(t *testing.T) {
	stmt := parseOne(t, "x = normalize (a & b);")
	norm := asUnary(t, stmt.Value, UnaryNormalize)
	reg := asBinary(t, norm.Operand, BinaryRegressive)
	asName(t, reg.Left, "a")
	asName(t, reg.Right, "b")
}

func Test_Parser_AllBinaryOperators(t *testing.T) {
	cases := []struct {
		src string
		op  BinaryOp
	}{
		{"x = a + b;", BinaryAdd},
		{"x = a - b;", BinarySubtract},
		{"x = a * b;", BinaryMultiply},
		{"x = a / b;", BinaryDivide},
		{"x = a ^ b;", BinaryWedge},
		{"x = a | b;", BinaryInner},
		{"x = a & b;", BinaryRegressive},
	}
	for _, c := range cases {
		stmt := parseOne(t, c.src)
		b := asBinary(t, stmt.Value, c.op)
		asName(t, b.Left, "a")
		asName(t, b.Right, "b")
	}
}

func Test_Parser_OperatorLocation(t *testing.T) {
	stmt := parseOne(t, "x = 1 / 2;")
	div := asBinary(t, stmt.Value, BinaryDivide)
	require.Equal(t, 1, div.Loc.Line)
	require.Equal(t, 7, div.Loc.Col)
}

func Test_Parser_MultipleStatements(t *testing.T) {
	statements, err := Parse("a = 2; b = a + 1;\nc = a * b;")
	require.NoError(t, err)
	require.Len(t, statements, 3)
	require.Equal(t, "a", statements[0].(*AssignStatement).Name)
	require.Equal(t, "b", statements[1].(*AssignStatement).Name)
	require.Equal(t, "c", statements[2].(*AssignStatement).Name)
	require.Equal(t, 2, statements[2].Location().Line)
}

func Test_Parser_UnexpectedToken(t *testing.T) {
	_, err := Parse("x = ;")
	require.EqualError(t, err, "1:5: Unexpected token ';'")

	_, err = Parse("= 1;")
	require.EqualError(t, err, "1:1: Unexpected token '='")

	_, err = Parse("x = 1 2;")
	require.EqualError(t, err, "1:7: Unexpected token '2'")
}

func Test_Parser_ReservedWordAsVariable(t *testing.T) {
	// Keywords cannot be assignment targets.
	_, err := Parse("sin = 1;")
	require.EqualError(t, err, "1:1: Unexpected token 'sin'")
}

func Test_Parser_UnexpectedEndOfInput(t *testing.T) {
	for _, src := range []string{"x", "x =", "x = 1", "x = (1 + 2", "x = -"} {
		_, err := Parse(src)
		require.Error(t, err, "source %q", src)
		perr, ok := err.(*ParseError)
		require.True(t, ok, "source %q: got %T", src, err)
		require.Equal(t, "Unexpected end of input", perr.Msg, "source %q", src)
	}
}

func Test_Parser_LexerErrorSurfacesAsParseError(t *testing.T) {
	_, err := Parse("x = @;")
	require.EqualError(t, err, "1:5: Unexpected character '@'")
	_, ok := err.(*ParseError)
	require.True(t, ok)
}

func Test_Parser_NoPartialStatements(t *testing.T) {
	statements, err := Parse("a = 1; b = ;")
	require.Error(t, err)
	require.Nil(t, statements)
}

func Test_Parser_ParseExpression(t *testing.T) {
	expr, err := ParseExpression("1 + 2 * 3")
	require.NoError(t, err)
	add := asBinary(t, expr, BinaryAdd)
	asNumber(t, add.Left, 1)

	_, err = ParseExpression("1 + 2;")
	require.EqualError(t, err, "1:6: Unexpected token ';'")

	_, err = ParseExpression("")
	require.Error(t, err)
}
