package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ava12/gram/grammar"
	"github.com/ava12/gram/parser"
)

type dumpGrammar struct {
	Name      string         `yaml:"name"`
	Root      string         `yaml:"root"`
	Chain     []string       `yaml:"precedence_chain,omitempty,flow"`
	Dangling  []dumpDangling `yaml:"dangling_pairs,omitempty"`
	Rules     []dumpRule     `yaml:"rules"`
	Conflicts []dumpConflict `yaml:"conflicts,omitempty"`
}

type dumpRule struct {
	Name        string           `yaml:"name"`
	Nullable    bool             `yaml:"nullable,omitempty"`
	Operator    bool             `yaml:"operator,omitempty"`
	First       []string         `yaml:"first,flow"`
	Productions []dumpProduction `yaml:"productions"`
}

type dumpProduction struct {
	Text    string `yaml:"text"`
	Builder string `yaml:"builder"`
}

type dumpDangling struct {
	Matched    string `yaml:"matched"`
	Open       string `yaml:"open"`
	Branch     string `yaml:"branch"`
	Terminator string `yaml:"terminator"`
}

type dumpConflict struct {
	Rule      string   `yaml:"rule"`
	Preferred string   `yaml:"preferred"`
	Shadowed  string   `yaml:"shadowed"`
	Terminals []string `yaml:"terminals,flow"`
}

func newDumpCommand(a *app) *cobra.Command {
	var outFileName string
	cmd := &cobra.Command{
		Use:       "dump [grammar|profile]",
		Short:     "Print grammar model (default) or effective lexical profile as YAML",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"grammar", "profile"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				content []byte
				e       error
			)
			if len(args) > 0 && args[0] == "profile" {
				content, e = dumpProfile(a)
			} else {
				var p *parser.Parser
				p, _, e = a.compile()
				if e == nil {
					content, e = yaml.Marshal(makeDump(p))
				}
			}
			if e != nil {
				return e
			}

			if outFileName == "" {
				_, e = cmd.OutOrStdout().Write(content)
				return e
			}
			return writeFile(outFileName, content)
		},
	}

	cmd.Flags().StringVarP(&outFileName, "output", "o", "", "output file name, default is standard output")
	return cmd
}

func dumpProfile(a *app) ([]byte, error) {
	prof, e := a.profile()
	if e != nil {
		return nil, e
	}
	if prof == nil {
		prof = grammar.DefaultProfile()
	}
	return prof.Marshal()
}

func makeDump(p *parser.Parser) *dumpGrammar {
	g := p.Grammar()
	d := &dumpGrammar{Name: g.Name, Root: g.Root}
	if g.Chain != nil {
		d.Chain = g.Chain.Names()
	}

	for _, pair := range g.DanglingPairs {
		d.Dangling = append(d.Dangling, dumpDangling{
			Matched:    pair.Matched.Name,
			Open:       pair.Open.Name,
			Branch:     pair.Branch.Name,
			Terminator: pair.Terminator.Text,
		})
	}

	for _, r := range g.Rules() {
		dr := dumpRule{
			Name:     r.Name,
			Nullable: g.Nullable(r.Name),
			Operator: r.IsOperator(),
			First:    g.TerminalNames(g.First(r.Name)),
		}
		for _, prod := range r.Productions {
			dr.Productions = append(dr.Productions, dumpProduction{Text: prod.String(), Builder: p.Kind(prod).String()})
		}
		d.Rules = append(d.Rules, dr)
	}

	conflicts := append(append([]grammar.Conflict{}, g.Conflicts...), p.Conflicts()...)
	for _, c := range conflicts {
		d.Conflicts = append(d.Conflicts, dumpConflict{
			Rule:      c.Rule,
			Preferred: c.Preferred.String(),
			Shadowed:  c.Shadowed.String(),
			Terminals: c.Terminals,
		})
	}
	return d
}

func writeFile(name string, content []byte) error {
	if e := os.WriteFile(name, content, 0o644); e != nil {
		return fmt.Errorf("writing output: %w", e)
	}
	return nil
}
