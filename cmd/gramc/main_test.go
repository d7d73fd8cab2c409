package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ava12/gram/grammars"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	config := writeTemp(t, "gramc.yaml", "log_level: error\n")
	cmd := newRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", config, "--no-color"}, args...))
	e := cmd.Execute()
	return out.String(), e
}

func TestCheckBuiltin(t *testing.T) {
	out, e := run(t, "", "check")
	require.NoError(t, e)
	assert.Contains(t, out, grammars.CName)
	assert.Contains(t, out, "precedence chain: ")
	assert.Contains(t, out, "dangling pair: if_matched_stmt / if_open_stmt")
	assert.True(t, strings.HasSuffix(out, "OK\n"))
}

func TestCheckGrammarFile(t *testing.T) {
	g := writeTemp(t, "list.gram", "list -> list item $ list |> item $ item |> id ii $")
	out, e := run(t, "", "-g", g, "check")
	require.NoError(t, e)
	assert.Contains(t, out, "list")
	assert.NotContains(t, out, "precedence chain")

	bad := writeTemp(t, "bad.gram", "list -> list item $")
	_, e = run(t, "", "-g", bad, "check")
	assert.Error(t, e)
}

func TestFirst(t *testing.T) {
	out, e := run(t, "", "first", "stmt_seq", "parent_expr")
	require.NoError(t, e)
	assert.Contains(t, out, "stmt_seq")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "parent_expr")

	_, e = run(t, "", "first", "no_such_rule")
	assert.Error(t, e)
}

func TestParse(t *testing.T) {
	out, e := run(t, "a = b + 1; if (a) x;", "parse")
	require.NoError(t, e)
	assert.Equal(t, "(seq (expr (= a (+ b 1))) (if a (expr x)))\n", out)

	src := writeTemp(t, "src.c", "while (a) a = a - 1;")
	out, e = run(t, "", "parse", "--stats", src)
	require.NoError(t, e)
	assert.Contains(t, out, "(while a (expr (= a (- a 1))))\n")
	assert.Contains(t, out, "nodes, depth")

	_, e = run(t, "a = ;", "parse")
	assert.Error(t, e)
}

func TestParseExpect(t *testing.T) {
	src := writeTemp(t, "src.c", "a; b;")
	good := writeTemp(t, "good.txt", "(seq (expr a) (expr b))\n")
	bad := writeTemp(t, "bad.txt", "(seq (expr a) (expr c))\n")

	out, e := run(t, "", "parse", "-e", good, src)
	require.NoError(t, e)
	assert.Equal(t, "(seq (expr a) (expr b))\n", out)

	out, e = run(t, "", "parse", "-e", bad, src)
	assert.ErrorIs(t, e, ErrMismatch)
	assert.Contains(t, out, "- (seq (expr a) (expr c))")
	assert.Contains(t, out, "+ (seq (expr a) (expr b))")

	_, e = run(t, "", "parse", "-e", good, src, src)
	assert.Error(t, e)
}

func TestParseRootFromEnv(t *testing.T) {
	t.Setenv("GRAMC_ROOT", "expr")
	out, e := run(t, "a + 1 * c", "parse")
	require.NoError(t, e)
	assert.Equal(t, "(+ a (* 1 c))\n", out)
}

func TestInvalidConfig(t *testing.T) {
	_, e := run(t, "", "--max-depth=-1", "check")
	assert.ErrorIs(t, e, ErrInvalidMaxDepth)

	_, e = run(t, "", "--log-level", "loud", "check")
	assert.ErrorIs(t, e, ErrInvalidLogLevel)
}

func TestDumpGrammar(t *testing.T) {
	out, e := run(t, "", "dump")
	require.NoError(t, e)

	var d dumpGrammar
	require.NoError(t, yaml.Unmarshal([]byte(out), &d))
	assert.Equal(t, grammars.CName, d.Name)
	assert.Equal(t, "root_unit", d.Root)
	assert.NotEmpty(t, d.Chain)
	require.Len(t, d.Dangling, 1)
	assert.Equal(t, "else", d.Dangling[0].Terminator)

	names := make([]string, 0, len(d.Rules))
	for _, r := range d.Rules {
		names = append(names, r.Name)
		assert.NotEmpty(t, r.Productions, r.Name)
	}
	assert.Contains(t, names, "stmt")
	assert.Contains(t, names, "while_stmt")
}

func TestDumpProfileToFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "profile.yaml")
	out, e := run(t, "", "dump", "profile", "-o", target)
	require.NoError(t, e)
	assert.Empty(t, out)

	data, e := os.ReadFile(target)
	require.NoError(t, e)
	assert.Contains(t, string(data), "while")

	_, e = run(t, "", "dump", "everything")
	assert.Error(t, e)
}

func TestWatchFiles(t *testing.T) {
	path := writeTemp(t, "watched.gram", "")
	other := filepath.Join(filepath.Dir(path), "other.txt")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- watchFiles(ctx, []string{path}, func(name string) {
			select {
			case changes <- name:
			default:
			}
		})
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
wait:
	for {
		select {
		case name := <-changes:
			assert.Equal(t, filepath.Base(path), filepath.Base(name))
			break wait
		case <-tick.C:
			require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
			require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		case <-deadline:
			t.Fatal("no change reported")
		}
	}

	cancel()
	select {
	case e := <-done:
		assert.NoError(t, e)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
