package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/ava12/gram/ast"
	"github.com/ava12/gram/parser"
	"github.com/ava12/gram/source"
)

// ErrMismatch is returned when parse result differs from expected one.
var ErrMismatch = errors.New("parse result differs from expected")

type parseFlags struct {
	tree   bool
	stats  bool
	expect string
}

func newParseCommand(a *app) *cobra.Command {
	f := &parseFlags{}
	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Parse source files (standard input if none) and print syntax trees",
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.expect != "" && len(args) > 1 {
				return errors.New("--expect requires a single input")
			}

			p, _, e := a.compile()
			if e != nil {
				return e
			}

			sources, e := readSources(cmd.InOrStdin(), args)
			if e != nil {
				return e
			}

			for _, src := range sources {
				if e := parseSource(cmd.OutOrStdout(), p, src, a.cfg.Root, f); e != nil {
					return e
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&f.tree, "tree", "t", false, "print indented tree instead of S-expression")
	cmd.Flags().BoolVar(&f.stats, "stats", false, "print source size and node count")
	cmd.Flags().StringVarP(&f.expect, "expect", "e", "", "file with expected output, differences are reported")
	return cmd
}

func readSources(stdin io.Reader, names []string) ([]*source.Source, error) {
	if len(names) == 0 {
		data, e := io.ReadAll(stdin)
		if e != nil {
			return nil, fmt.Errorf("reading input: %w", e)
		}
		return []*source.Source{source.New("stdin", data)}, nil
	}

	res := make([]*source.Source, 0, len(names))
	for _, name := range names {
		data, e := os.ReadFile(name)
		if e != nil {
			return nil, fmt.Errorf("reading input: %w", e)
		}
		res = append(res, source.New(name, data))
	}
	return res, nil
}

func parseSource(w io.Writer, p *parser.Parser, src *source.Source, root string, f *parseFlags) error {
	n, e := p.Parse(src, root)
	if e != nil {
		return e
	}

	var out string
	if f.tree {
		out = ast.Render(n)
	} else {
		out = n.String()
	}

	if f.expect != "" {
		data, e := os.ReadFile(f.expect)
		if e != nil {
			return fmt.Errorf("reading expected output: %w", e)
		}

		expected := strings.TrimRight(string(data), "\n")
		if expected != out {
			fmt.Fprint(w, lineDiff(expected, out))
			return fmt.Errorf("%s: %w", src.Name(), ErrMismatch)
		}
	}

	fmt.Fprintln(w, out)
	if f.stats {
		fmt.Fprintf(w, "%s: %s, %s nodes, depth %d\n", src.Name(),
			humanize.Bytes(uint64(src.Len())), humanize.Comma(int64(ast.Count(n))), ast.Depth(n))
	}
	return nil
}

// lineDiff returns line diff of two texts, removed lines are prefixed with "-", added ones with "+".
func lineDiff(expected, actual string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(expected+"\n", actual+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	removed := color.New(color.FgRed)
	added := color.New(color.FgGreen)
	sb := &strings.Builder{}
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}

			switch d.Type {
			case diffmatchpatch.DiffDelete:
				removed.Fprint(sb, "- "+line)
			case diffmatchpatch.DiffInsert:
				added.Fprint(sb, "+ "+line)
			default:
				sb.WriteString("  " + line)
			}
		}
	}
	return sb.String()
}
