/*
Package gram compiles grammars written in a compact rule notation into executable parsers
producing abstract syntax trees.

Consists of subpackages:
  - cmd/gramc: console utility checking grammars, printing FIRST sets and parse trees;
  - grammar: grammar model, lexical profiles, FIRST/nullable analysis and validation;
  - langdef: converts grammar description (rule notation) to validated grammar model;
  - lexer: regexp-driven lexical analyzer used both for grammar text and for parsed sources;
  - parser: compiles grammar model into parsing procedures and runs them;
  - ast: syntax tree nodes, node builders, traversal and printing;
  - grammars: embedded reference grammars;
  - source: source text with line and column index.

Rule notation in short:

	// comment
	stmt_seq -> stmt_seq stmt $       // ordered sequence production
	stmt_seq |> stmt e $              // single-symbol alternatives, e is epsilon
	binary_op+ |> + - $               // operator rule: literal terminals only

Identifiers that are not declared as rules are keywords (if, else, while, ...) or
token classes: id (identifier), ii (integer), fi (float), si (string), bi (boolean).

Typical usage is:

	p, e := parser.Compile("c.gram", grammars.C)
	node, e := p.ParseString("input", "a = b + c * 2;", "")
*/
package gram

import (
	"errors"
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	GrammarSyntaxErrors   = 1   // used by langdef
	LexicalErrors         = 101 // used by lexer
	GrammarSemanticErrors = 201 // used by grammar
	ParseErrors           = 301 // used by parser
)

const classSize = 100

// Error is the error type used by gram subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int

	// Rule contains the name of the offending rule or empty string.
	Rule string

	// Token contains the text of the offending token or empty string.
	Token string
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos and lexer.Token implement this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if line != 0 && col != 0 {
		if name == "" {
			msg += fmt.Sprintf(" at line %d col %d", line, col)
		} else {
			msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
		}
	}
	return &Error{Code: code, Message: msg, SourceName: name, Line: line, Col: col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// Class returns error class of e.Code, e.g. LexicalErrors.
func (e *Error) Class() int {
	return Class(e.Code)
}

// WithRule sets the offending rule name and returns e.
func (e *Error) WithRule(name string) *Error {
	e.Rule = name
	return e
}

// WithToken sets the offending token text and returns e.
func (e *Error) WithToken(text string) *Error {
	e.Token = text
	return e
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// Class returns error class for given error code or 0 for unknown codes.
func Class(code int) int {
	if code <= 0 {
		return 0
	}
	return (code-1)/classSize*classSize + 1
}

// IsClass reports whether e (or any error it wraps) is an *Error of given class.
func IsClass(e error, class int) bool {
	var ge *Error
	return errors.As(e, &ge) && ge.Class() == class
}

// Code returns the code of *Error found in e's chain or 0.
func Code(e error) int {
	var ge *Error
	if errors.As(e, &ge) {
		return ge.Code
	}
	return 0
}
