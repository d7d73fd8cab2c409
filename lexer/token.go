package lexer

import (
	"github.com/ava12/gram/source"
)

// Token is a lexeme fetched by Lexer.
type Token struct {
	tokenType int
	typeName  string
	text      string
	pos       source.Pos
}

// NewToken creates Token located at pos.
func NewToken(tokenType int, typeName, text string, pos source.Pos) *Token {
	return &Token{tokenType, typeName, text, pos}
}

func (t *Token) Type() int {
	return t.tokenType
}

func (t *Token) TypeName() string {
	return t.typeName
}

func (t *Token) Text() string {
	return t.text
}

func (t *Token) Pos() source.Pos {
	return t.pos
}

func (t *Token) Source() *source.Source {
	return t.pos.Source()
}

func (t *Token) SourceName() string {
	return t.pos.SourceName()
}

func (t *Token) Line() int {
	return t.pos.Line()
}

func (t *Token) Col() int {
	return t.pos.Col()
}

// IsEof reports whether t marks the end of source.
func (t *Token) IsEof() bool {
	return t.tokenType == EofTokenType
}

// String returns token text or type name for EoF tokens.
func (t *Token) String() string {
	if t.tokenType == EofTokenType {
		return t.typeName
	}
	return t.text
}

const (
	EofTokenType    = -2
	LowestTokenType = -2
	EofTokenName    = "end of input"
)

// EofToken creates end-of-source token for s.
func EofToken(s *source.Source) *Token {
	return &Token{tokenType: EofTokenType, typeName: EofTokenName, pos: source.NewPos(s, s.Len())}
}
