// Package lexer defines lexical analyzer.
package lexer

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/ava12/gram"
	"github.com/ava12/gram/source"
)

const (
	// ErrorTokenType is the type for fake tokens capturing broken lexemes (e.g. unterminated strings).
	// The purpose of these tokens is to generate more informative error messages.
	// Lexer will never return a token of this type, an error with message containing token text will be returned instead.
	ErrorTokenType = LowestTokenType - 1

	// ErrorTokenName is the type name for ErrorTokenType.
	ErrorTokenName = "-error-"
)

// Error codes used by lexer:
const (
	// WrongCharError indicates that lexer cannot fetch any token at current position.
	// Error message contains the rune at current source position.
	WrongCharError = gram.LexicalErrors + iota

	// BadTokenError indicates that lexer has fetched a token of ErrorTokenType.
	BadTokenError
)

// TokenType describes token type for specific capturing group of regular expression.
type TokenType struct {
	// Type contains token type, must be non-negative. ErrorTokenType is treated specially.
	Type int

	// TypeName contains token type name, may be any value.
	TypeName string
}

// Lexer performs lexical analysis of a source using regexp.Regexp.
// Lexer itself is immutable, stateless, and safe for concurrent use;
// the state of a single pass lives in Scanner.
// Each token type that may be returned by lexer maps to its own regexp capturing group index.
// A match containing no captured groups is treated as insignificant lexeme (e.g. whitespace),
// in this case lexer tries to fetch a token again at new position.
// Every byte of source must belong to some lexeme.
type Lexer struct {
	types []TokenType
	re    *regexp.Regexp
}

// New creates new Lexer.
// Each n-th element of types describes token type for (n+1)-th regexp capturing group.
// A group that has no description or that has negative token type is treated as ErrorTokenType.
func New(re *regexp.Regexp, types []TokenType) *Lexer {
	ts := make([]TokenType, len(types))
	for i, t := range types {
		ts[i].TypeName = t.TypeName
		if t.Type >= 0 {
			ts[i].Type = t.Type
		} else {
			ts[i].Type = ErrorTokenType
		}
	}
	return &Lexer{types: ts, re: re}
}

// Scan starts new lazy pass over s. Each call returns independent Scanner.
func (l *Lexer) Scan(s *source.Source) *Scanner {
	return &Scanner{lexer: l, src: s}
}

// Tokens fetches all tokens of s up to (and including) EoF token.
func (l *Lexer) Tokens(s *source.Source) ([]*Token, error) {
	var res []*Token
	sc := l.Scan(s)
	for {
		t, e := sc.Next()
		if e != nil {
			return nil, e
		}

		res = append(res, t)
		if t.IsEof() {
			return res, nil
		}
	}
}

func wrongCharError(s *source.Source, pos int) *gram.Error {
	r, _ := utf8.DecodeRune(s.Content()[pos:])
	msg := fmt.Sprintf("wrong char %q (u+%x)", r, r)
	line, col := s.LineCol(pos)
	return gram.NewError(WrongCharError, msg, s.Name(), line, col).WithToken(string(r))
}

func badTokenError(t *Token) *gram.Error {
	return gram.FormatErrorPos(t, BadTokenError, "bad token %q", t.Text()).WithToken(t.Text())
}

func (l *Lexer) matchToken(src *source.Source, pos int) (*Token, int, error) {
	content := src.Content()[pos:]
	match := l.re.FindSubmatchIndex(content)
	if len(match) == 0 || match[0] != 0 || match[1] <= match[0] {
		return nil, 0, wrongCharError(src, pos)
	}

	for i := 2; i < len(match); i += 2 {
		if match[i] < 0 || match[i+1] < 0 {
			continue
		}

		tokenType := ErrorTokenType
		typeName := ErrorTokenName
		if len(l.types) >= (i >> 1) {
			tokenType = l.types[(i>>1)-1].Type
			typeName = l.types[(i>>1)-1].TypeName
		}
		token := NewToken(tokenType, typeName, string(content[match[i]:match[i+1]]), source.NewPos(src, pos+match[i]))
		if tokenType == ErrorTokenType {
			return nil, 0, badTokenError(token)
		}

		return token, match[1], nil
	}

	return nil, match[1], nil
}

// Scanner is a single restartable pass of Lexer over a source.
type Scanner struct {
	lexer *Lexer
	src   *source.Source
	pos   int
}

// Next fetches token starting at current source position and advances current position.
// Returns nil token and gram.Error and does not make any changes if there is a lexical error.
// Returns EoF token if current position is beyond the end of source.
func (s *Scanner) Next() (*Token, error) {
	for {
		if s.pos >= s.src.Len() {
			return EofToken(s.src), nil
		}

		t, advance, e := s.lexer.matchToken(s.src, s.pos)
		if e != nil {
			return nil, e
		}

		s.pos += advance
		if t != nil {
			return t, nil
		}
	}
}

// Source returns scanned source.
func (s *Scanner) Source() *source.Source {
	return s.src
}
