// lexer.go — single-pass scanner for assignment scripts.
package gascript

import (
	"fmt"
	"strconv"
)

// TokenKind represents the kind of token.
type TokenKind int

const (
	// Literals & identifiers
	TokenName TokenKind = iota
	TokenNumber

	// Keywords (reserved identifier spellings)
	TokenNormalize
	TokenMagnitude
	TokenSin
	TokenCos
	TokenASin
	TokenACos

	// Punctuation & operators
	TokenOpenParen
	TokenCloseParen
	TokenSemicolon
	TokenPlus
	TokenMinus
	TokenAsterisk
	TokenSlash
	TokenCaret
	TokenPipe
	TokenAmpersand
	TokenExclamationMark
	TokenTilde
	TokenEqual
)

// keywords maps reserved identifier spellings onto their token kinds. These
// names cannot be used as variables.
var keywords = map[string]TokenKind{
	"normalize": TokenNormalize,
	"magnitude": TokenMagnitude,
	"sin":       TokenSin,
	"cos":       TokenCos,
	"asin":      TokenASin,
	"acos":      TokenACos,
}

var symbolNames = map[TokenKind]string{
	TokenNormalize:       "normalize",
	TokenMagnitude:       "magnitude",
	TokenSin:             "sin",
	TokenCos:             "cos",
	TokenASin:            "asin",
	TokenACos:            "acos",
	TokenOpenParen:       "(",
	TokenCloseParen:      ")",
	TokenSemicolon:       ";",
	TokenPlus:            "+",
	TokenMinus:           "-",
	TokenAsterisk:        "*",
	TokenSlash:           "/",
	TokenCaret:           "^",
	TokenPipe:            "|",
	TokenAmpersand:       "&",
	TokenExclamationMark: "!",
	TokenTilde:           "~",
	TokenEqual:           "=",
}

// Location points at a byte in the source. Line and Col are 1-based.
type Location struct {
	Pos  int
	Line int
	Col  int
}

func (l Location) String() string { return fmt.Sprintf("%d:%d", l.Line, l.Col) }

// Token is a lexical unit plus the Location it started at. Name is set for
// TokenName, Number for TokenNumber.
type Token struct {
	Loc    Location
	Kind   TokenKind
	Name   string
	Number float32
}

// String renders the token the way it was spelled, for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case TokenName:
		return t.Name
	case TokenNumber:
		return strconv.FormatFloat(float64(t.Number), 'g', -1, 32)
	default:
		return symbolNames[t.Kind]
	}
}

// LexError is a located scanning failure. It is always fatal to the current
// parse; no resynchronization is attempted.
type LexError struct {
	Loc Location
	Msg string
}

func (e *LexError) Error() string { return fmt.Sprintf("%s: %s", e.Loc, e.Msg) }

// Lexer scans a source string into tokens, one at a time. All of its state
// is in plain value fields, so copying the struct snapshots the scan
// position; that is what makes PeekToken a pure lookahead.
type Lexer struct {
	src string
	loc Location
}

// NewLexer creates a lexer positioned at the start of src.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src: src,
		loc: Location{Pos: 0, Line: 1, Col: 1},
	}
}

// Location reports the current scan position (used to locate an unexpected
// end of input).
func (l *Lexer) Location() Location { return l.loc }

func (l *Lexer) isAtEnd() bool { return l.loc.Pos >= len(l.src) }

func (l *Lexer) peekByte() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.loc.Pos], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.loc.Pos]
	l.loc.Pos++
	if ch == '\n' {
		l.loc.Line++
		l.loc.Col = 1
	} else {
		l.loc.Col++
	}
	return ch, true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

// NextToken scans and consumes the next token. It returns nil at end of
// input; end of input never produces a token.
func (l *Lexer) NextToken() (*Token, error) {
	for {
		start := l.loc
		ch, ok := l.advance()
		if !ok {
			return nil, nil
		}

		switch ch {
		case '(':
			return &Token{Loc: start, Kind: TokenOpenParen}, nil
		case ')':
			return &Token{Loc: start, Kind: TokenCloseParen}, nil
		case ';':
			return &Token{Loc: start, Kind: TokenSemicolon}, nil
		case '+':
			return &Token{Loc: start, Kind: TokenPlus}, nil
		case '-':
			return &Token{Loc: start, Kind: TokenMinus}, nil
		case '*':
			return &Token{Loc: start, Kind: TokenAsterisk}, nil
		case '/':
			return &Token{Loc: start, Kind: TokenSlash}, nil
		case '^':
			return &Token{Loc: start, Kind: TokenCaret}, nil
		case '|':
			return &Token{Loc: start, Kind: TokenPipe}, nil
		case '&':
			return &Token{Loc: start, Kind: TokenAmpersand}, nil
		case '!':
			return &Token{Loc: start, Kind: TokenExclamationMark}, nil
		case '~':
			return &Token{Loc: start, Kind: TokenTilde}, nil
		case '=':
			return &Token{Loc: start, Kind: TokenEqual}, nil
		case ' ', '\t', '\r', '\n':
			continue
		}

		if isAlpha(ch) {
			for {
				b, ok := l.peekByte()
				if !ok || !isAlphaNum(b) {
					break
				}
				l.advance()
			}
			name := l.src[start.Pos:l.loc.Pos]
			if kind, ok := keywords[name]; ok {
				return &Token{Loc: start, Kind: kind}, nil
			}
			return &Token{Loc: start, Kind: TokenName, Name: name}, nil
		}

		if isDigit(ch) {
			for {
				b, ok := l.peekByte()
				if !ok || (!isDigit(b) && b != '.') {
					break
				}
				l.advance()
			}
			lexeme := l.src[start.Pos:l.loc.Pos]
			value, err := strconv.ParseFloat(lexeme, 32)
			if err != nil {
				return nil, &LexError{Loc: start, Msg: "Invalid number"}
			}
			return &Token{Loc: start, Kind: TokenNumber, Number: float32(value)}, nil
		}

		return nil, &LexError{Loc: start, Msg: fmt.Sprintf("Unexpected character '%c'", ch)}
	}
}

// PeekToken performs a non-consuming lookahead by re-scanning from the
// current position on a copy of the lexer.
func (l *Lexer) PeekToken() (*Token, error) {
	cp := *l
	return cp.NextToken()
}
