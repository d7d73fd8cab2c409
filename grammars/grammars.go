// Package grammars holds embedded reference grammars.
package grammars

import (
	_ "embed"
)

// C is a grammar of a small C-like language: expression and compound statements,
// while loops, if statements with matched/open split, and the full C operator precedence ladder.
//
//go:embed c.gram
var C string

// CName is the source name used for C.
const CName = "c.gram"
