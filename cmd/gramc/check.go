package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ava12/gram/parser"
)

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate grammar and print its summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, size, e := a.compile()
			if e != nil {
				return e
			}

			writeSummary(cmd.OutOrStdout(), p, size)
			return nil
		},
	}
}

func writeSummary(w io.Writer, p *parser.Parser, size int) {
	g := p.Grammar()

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false
	tbl.AppendRows([]table.Row{
		{"grammar", fmt.Sprintf("%s (%s)", g.Name, humanize.Bytes(uint64(size)))},
		{"root", g.Root},
		{"rules", humanize.Comma(int64(len(g.Rules())))},
		{"productions", humanize.Comma(int64(len(g.Productions())))},
		{"terminals", humanize.Comma(int64(len(g.Terminals())))},
	})
	tbl.Render()

	if g.Chain != nil {
		fmt.Fprintf(w, "precedence chain: %s\n", strings.Join(g.Chain.Names(), " > "))
	}

	for _, d := range g.DanglingPairs {
		fmt.Fprintf(w, "dangling pair: %s / %s, %q binds to the nearest %q\n",
			d.Matched.Name, d.Open.Name, d.Terminator.Text, d.Prefix[0].String())
	}

	warn := color.New(color.FgYellow)
	for _, c := range g.Conflicts {
		warn.Fprintf(w, "conflict in %s: %q preferred over %q on %s\n",
			c.Rule, c.Preferred.String(), c.Shadowed.String(), strings.Join(c.Terminals, ", "))
	}
	for _, c := range p.Conflicts() {
		warn.Fprintf(w, "shadowed seed in %s: %q preferred over %q on %s\n",
			c.Rule, c.Preferred.String(), c.Shadowed.String(), strings.Join(c.Terminals, ", "))
	}

	color.New(color.FgGreen).Fprintln(w, "OK")
}
