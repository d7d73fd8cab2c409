package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ava12/gram/grammar"
)

func newFirstCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "first [rule...]",
		Short: "Print nullable flags and FIRST sets of rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, e := a.compile()
			if e != nil {
				return e
			}

			g := p.Grammar()
			rules := g.Rules()
			if len(args) > 0 {
				rules = make([]*grammar.Rule, 0, len(args))
				for _, name := range args {
					r := g.Rule(name)
					if r == nil {
						return fmt.Errorf("unknown rule %q", name)
					}
					rules = append(rules, r)
				}
			}

			tbl := table.NewWriter()
			tbl.SetOutputMirror(cmd.OutOrStdout())
			tbl.SetStyle(table.StyleLight)
			tbl.AppendHeader(table.Row{"rule", "nullable", "first"})
			for _, r := range rules {
				nullable := ""
				if g.Nullable(r.Name) {
					nullable = "yes"
				}
				tbl.AppendRow(table.Row{r.Name, nullable, strings.Join(g.TerminalNames(g.First(r.Name)), " ")})
			}
			tbl.Render()
			return nil
		},
	}
}
