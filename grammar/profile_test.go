package grammar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfile(t *testing.T) {
	p, e := ParseProfile([]byte(`
keywords: [loop, until]
expression_root: expression
`))
	require.NoError(t, e)
	assert.Equal(t, []string{"loop", "until"}, p.Keywords)
	assert.Equal(t, "expression", p.ExpressionRoot)
	assert.Equal(t, DefaultRoot, p.Root)
	assert.Contains(t, p.Punctuators, "**=")
	assert.True(t, p.IsKeyword("until"))
	assert.False(t, p.IsKeyword("if"))
}

func TestProfileErrors(t *testing.T) {
	_, e := ParseProfile([]byte("keywords: [1x]"))
	assert.ErrorIs(t, e, ErrBadKeyword)

	_, e = ParseProfile([]byte("punctuators: ['']"))
	assert.ErrorIs(t, e, ErrEmptyPunctuator)

	_, e = ParseProfile([]byte("keywords: {"))
	assert.Error(t, e)

	_, e = LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, e)
}

func TestProfileRoundTrip(t *testing.T) {
	data, e := DefaultProfile().Marshal()
	require.NoError(t, e)

	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	p, e := LoadProfile(path)
	require.NoError(t, e)
	assert.Equal(t, DefaultProfile(), p)
}

func TestSortedPunctuators(t *testing.T) {
	p := &Profile{Punctuators: []string{"<", "<<=", "<<"}}
	assert.Equal(t, []string{"<<=", "<<", "<"}, p.SortedPunctuators())
	assert.Equal(t, []string{"<", "<<=", "<<"}, p.Punctuators)
}

func TestTerminalIsWord(t *testing.T) {
	assert.True(t, Terminal{LiteralTerminal, "while"}.IsWord())
	assert.True(t, Terminal{LiteralTerminal, "_x1"}.IsWord())
	assert.False(t, Terminal{LiteralTerminal, "1x"}.IsWord())
	assert.False(t, Terminal{LiteralTerminal, "<<"}.IsWord())
	assert.False(t, Terminal{ClassTerminal, "id"}.IsWord())
}
