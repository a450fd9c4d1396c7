// parser.go — precedence-climbing parser for assignment scripts.
//
// OVERVIEW
// --------
// The grammar is a flat sequence of assignment statements over a single
// expression language:
//
//	statement := NAME '=' expression ';'
//	expression parses by precedence climbing:
//	    level 1:  +  -
//	    level 2:  *  /  ^  |  &
//	prefix unary (binds to the next primary only):
//	    -  !  ~  normalize  magnitude  sin  cos  asin  acos
//	primary   := NAME | NUMBER | '(' expression ')'
//
// Binary chains are left-associative within a level: the right-hand side is
// parsed with the operator's own precedence as the new lower bound, so an
// equal-precedence operator to the right terminates the recursion and is
// picked up by the caller's loop instead.
//
// Every AST node carries the Location of its defining token so that
// evaluation errors can point back into the source. Nodes own their
// children exclusively; the tree is rebuilt from scratch on every parse.
//
// There is no error recovery. The first unexpected token or end of input
// aborts the parse, and lexer errors surface as parse errors at the same
// location.
package gascript

import "fmt"

// ParseError is a located parse failure, including wrapped lexer failures.
type ParseError struct {
	Loc Location
	Msg string
}

func (e *ParseError) Error() string { return fmt.Sprintf("%s: %s", e.Loc, e.Msg) }

// UnaryOp identifies a prefix operator.
type UnaryOp int

const (
	UnaryNegate UnaryOp = iota
	UnaryDual
	UnaryReverse
	UnaryNormalize
	UnaryMagnitude
	UnarySin
	UnaryCos
	UnaryASin
	UnaryACos
)

// BinaryOp identifies an infix operator.
type BinaryOp int

const (
	BinaryAdd BinaryOp = iota
	BinarySubtract
	BinaryMultiply
	BinaryDivide
	BinaryWedge
	BinaryInner
	BinaryRegressive
)

// Statement is a top-level script statement. Assignment is currently the
// only form.
type Statement interface {
	Location() Location
	statementNode()
}

// AssignStatement binds the value of an expression to a name. Loc is the
// location of the '=' token.
type AssignStatement struct {
	Loc     Location
	Name    string
	NameLoc Location
	Value   Expression
}

func (s *AssignStatement) Location() Location { return s.Loc }
func (s *AssignStatement) statementNode()     {}

// Expression is a node of the expression tree.
type Expression interface {
	Location() Location
	expressionNode()
}

// NameExpr references a variable by name.
type NameExpr struct {
	Loc  Location
	Name string
}

// NumberExpr is a numeric literal.
type NumberExpr struct {
	Loc    Location
	Number float32
}

// UnaryExpr applies a prefix operator to its operand. Loc is the operator
// token's location.
type UnaryExpr struct {
	Loc     Location
	Op      UnaryOp
	Operand Expression
}

// BinaryExpr applies an infix operator. Loc is the operator token's
// location.
type BinaryExpr struct {
	Loc   Location
	Op    BinaryOp
	Left  Expression
	Right Expression
}

func (e *NameExpr) Location() Location   { return e.Loc }
func (e *NumberExpr) Location() Location { return e.Loc }
func (e *UnaryExpr) Location() Location  { return e.Loc }
func (e *BinaryExpr) Location() Location { return e.Loc }

func (e *NameExpr) expressionNode()   {}
func (e *NumberExpr) expressionNode() {}
func (e *UnaryExpr) expressionNode()  {}
func (e *BinaryExpr) expressionNode() {}

// Parse lexes and parses a whole source string into statements. A failure
// anywhere aborts the parse; no partial statement list is returned.
func Parse(source string) ([]Statement, error) {
	p := &parser{lexer: NewLexer(source)}

	var statements []Statement
	for {
		tok, err := p.lexer.PeekToken()
		if err != nil {
			return nil, wrapLexError(err)
		}
		if tok == nil {
			return statements, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
}

// ParseExpression parses a single expression (no assignment, no ';'). It
// errors if anything other than end of input follows the expression. Hosts
// use this for inspecting values without binding them.
func ParseExpression(source string) (Expression, error) {
	p := &parser{lexer: NewLexer(source)}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	tok, err := p.lexer.PeekToken()
	if err != nil {
		return nil, wrapLexError(err)
	}
	if tok != nil {
		return nil, unexpectedToken(tok)
	}
	return expr, nil
}

type parser struct {
	lexer *Lexer
}

// expect consumes the next token and checks its kind. want < 0 accepts any
// token. End of input and lexer failures become parse errors here.
func (p *parser) expect(want TokenKind) (*Token, error) {
	tok, err := p.lexer.NextToken()
	if err != nil {
		return nil, wrapLexError(err)
	}
	if tok == nil {
		return nil, &ParseError{Loc: p.lexer.Location(), Msg: "Unexpected end of input"}
	}
	if want >= 0 && tok.Kind != want {
		return nil, unexpectedToken(tok)
	}
	return tok, nil
}

const anyToken = TokenKind(-1)

func (p *parser) parseStatement() (Statement, error) {
	nameTok, err := p.expect(TokenName)
	if err != nil {
		return nil, err
	}
	equalsTok, err := p.expect(TokenEqual)
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &AssignStatement{
		Loc:     equalsTok.Loc,
		Name:    nameTok.Name,
		NameLoc: nameTok.Loc,
		Value:   value,
	}, nil
}

func (p *parser) parseExpression() (Expression, error) {
	return p.parseBinaryExpression(0)
}

// maxPrecedence is used as the bound for unary operands so that a prefix
// operator never captures a following binary chain.
const maxPrecedence = int(^uint(0) >> 1)

// prefixOps maps token kinds usable in prefix position onto unary operators.
var prefixOps = map[TokenKind]UnaryOp{
	TokenMinus:           UnaryNegate,
	TokenExclamationMark: UnaryDual,
	TokenTilde:           UnaryReverse,
	TokenNormalize:       UnaryNormalize,
	TokenMagnitude:       UnaryMagnitude,
	TokenSin:             UnarySin,
	TokenCos:             UnaryCos,
	TokenASin:            UnaryASin,
	TokenACos:            UnaryACos,
}

func binaryOpFor(kind TokenKind) (int, BinaryOp, bool) {
	switch kind {
	case TokenPlus:
		return 1, BinaryAdd, true
	case TokenMinus:
		return 1, BinarySubtract, true
	case TokenAsterisk:
		return 2, BinaryMultiply, true
	case TokenSlash:
		return 2, BinaryDivide, true
	case TokenCaret:
		return 2, BinaryWedge, true
	case TokenPipe:
		return 2, BinaryInner, true
	case TokenAmpersand:
		return 2, BinaryRegressive, true
	default:
		return 0, 0, false
	}
}

func (p *parser) parseBinaryExpression(parentPrecedence int) (Expression, error) {
	tok, err := p.lexer.PeekToken()
	if err != nil {
		return nil, wrapLexError(err)
	}

	var left Expression
	if tok != nil {
		if op, ok := prefixOps[tok.Kind]; ok {
			opTok, err := p.expect(anyToken)
			if err != nil {
				return nil, err
			}
			operand, err := p.parseBinaryExpression(maxPrecedence)
			if err != nil {
				return nil, err
			}
			left = &UnaryExpr{Loc: opTok.Loc, Op: op, Operand: operand}
		}
	}
	if left == nil {
		left, err = p.parsePrimaryExpression()
		if err != nil {
			return nil, err
		}
	}

	for {
		tok, err := p.lexer.PeekToken()
		if err != nil {
			return nil, wrapLexError(err)
		}
		if tok == nil {
			return left, nil
		}
		precedence, op, ok := binaryOpFor(tok.Kind)
		if !ok || precedence <= parentPrecedence {
			return left, nil
		}
		opTok, err := p.expect(anyToken)
		if err != nil {
			return nil, err
		}
		right, err := p.parseBinaryExpression(precedence)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Loc: opTok.Loc, Op: op, Left: left, Right: right}
	}
}

func (p *parser) parsePrimaryExpression() (Expression, error) {
	tok, err := p.expect(anyToken)
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenName:
		return &NameExpr{Loc: tok.Loc, Name: tok.Name}, nil
	case TokenNumber:
		return &NumberExpr{Loc: tok.Loc, Number: tok.Number}, nil
	case TokenOpenParen:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenCloseParen); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, unexpectedToken(tok)
	}
}

func unexpectedToken(tok *Token) *ParseError {
	return &ParseError{Loc: tok.Loc, Msg: fmt.Sprintf("Unexpected token '%s'", tok)}
}

// wrapLexError re-surfaces a lexer error as a parse error at the same
// location, matching the "parse errors are fatal" contract.
func wrapLexError(err error) error {
	if le, ok := err.(*LexError); ok {
		return &ParseError{Loc: le.Loc, Msg: le.Msg}
	}
	return err
}
