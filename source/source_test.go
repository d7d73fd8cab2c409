package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type result struct {
	pos, line, col int
}

func TestSourceLineCol(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 1, 1},
			{100, 1, 1},
			{-1, 1, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 2, 1},
			{100, 2, 1},
		},
		"0\n2\n4\n6789abcde\ng\ni\n": {
			{4, 3, 1},
			{5, 3, 2},
			{6, 4, 1},
			{7, 4, 2},
			{14, 4, 9},
			{19, 6, 2},
			{20, 7, 1},
			{9, 4, 4},
			{5, 3, 2},
		},
		"ab\nпривет\nc": {
			{3, 2, 1},
			{7, 2, 3},
			{16, 3, 1},
		},
	}

	for text, results := range samples {
		src := NewString("", text)
		for _, res := range results {
			l, c := src.LineCol(res.pos)
			assert.Equal(t, res.line, l, "sample %q, pos %d: line", text, res.pos)
			assert.Equal(t, res.col, c, "sample %q, pos %d: col", text, res.pos)
		}
	}
}

func TestSourcePos(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{0, 1, 2},
			{0, 2, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 1, 2},
			{1, 2, 1},
			{1, 3, 1},
		},
		"ab\ncd\n": {
			{4, 2, 2},
			{6, 3, 1},
			{6, 2, 10},
		},
	}

	for text, results := range samples {
		src := NewString("", text)
		for _, res := range results {
			assert.Equal(t, res.pos, src.Pos(res.line, res.col), "sample %q, line %d col %d", text, res.line, res.col)
		}
	}
}

func TestNewPos(t *testing.T) {
	src := NewString("name", "foo\nbar")
	p := NewPos(src, 5)
	assert.Equal(t, "name", p.SourceName())
	assert.Equal(t, 2, p.Line())
	assert.Equal(t, 2, p.Col())
	assert.Equal(t, 5, p.Pos())
	assert.True(t, p.IsValid())
	assert.Equal(t, 2, src.Lines())
	assert.False(t, Pos{}.IsValid())
	assert.Equal(t, "", Pos{}.SourceName())
}
