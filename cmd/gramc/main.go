/*
gramc is a console utility for grammars written in gram rule notation.
Usage is

	gramc [flags] <command> [args]

Commands are

	check   validate grammar, print its summary, precedence chain, and conflicts;
	first   print nullable flags and FIRST sets of grammar rules;
	parse   parse source files (or standard input) and print syntax trees;
	dump    print grammar model or lexical profile as YAML;
	watch   re-check grammar and re-parse sources whenever files change.

-g <file> sets grammar file, default is the embedded C-like grammar;

--profile <file> sets YAML lexical profile (keywords, punctuators, expression root);

--root <name> sets root rule used for parsing.

Settings are also read from .gramc.yaml (current or home directory) and GRAMC_* environment variables,
flags take precedence.
*/
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ava12/gram/grammar"
	"github.com/ava12/gram/grammars"
	"github.com/ava12/gram/internal/logging"
	"github.com/ava12/gram/parser"
)

func main() {
	if e := newRootCommand().Execute(); e != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", e)
		os.Exit(1)
	}
}

type app struct {
	v          *viper.Viper
	configPath string
	cfg        *Config
	log        *slog.Logger
}

var flagKeys = map[string]string{
	"grammar":   "grammar",
	"profile":   "profile",
	"root":      "root",
	"max_depth": "max-depth",
	"log_level": "log-level",
	"no_color":  "no-color",
}

func newRootCommand() *cobra.Command {
	a := &app{v: viper.New()}
	root := &cobra.Command{
		Use:   "gramc",
		Short: "Grammar checker and parser driver for gram rule notation",
		Long: `gramc compiles grammars written in gram rule notation, reports their structure
and parses sources with the compiled parser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default .gramc.yaml)")
	flags.StringP("grammar", "g", "", "grammar file, default is the embedded C-like grammar")
	flags.String("profile", "", "YAML lexical profile file")
	flags.String("root", "", "root rule used for parsing")
	flags.Int("max-depth", 0, "rule nesting limit")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.Bool("no-color", false, "disable colored output")
	for key, name := range flagKeys {
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(
		newCheckCommand(a),
		newFirstCommand(a),
		newParseCommand(a),
		newDumpCommand(a),
		newWatchCommand(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, e := loadConfig(a.v, a.configPath)
	if e != nil {
		return e
	}

	a.cfg = cfg
	if cfg.NoColor {
		color.NoColor = true
	}
	a.log = logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	return nil
}

// grammarText returns configured grammar file name and content.
func (a *app) grammarText() (string, []byte, error) {
	if a.cfg.Grammar == "" || a.cfg.Grammar == builtinGrammar {
		return grammars.CName, []byte(grammars.C), nil
	}

	data, e := os.ReadFile(a.cfg.Grammar)
	if e != nil {
		return "", nil, fmt.Errorf("reading grammar: %w", e)
	}
	return a.cfg.Grammar, data, nil
}

// profile returns configured lexical profile or nil for the default one.
func (a *app) profile() (*grammar.Profile, error) {
	if a.cfg.Profile == "" {
		return nil, nil
	}
	return grammar.LoadProfile(a.cfg.Profile)
}

// compile reads and compiles configured grammar, size is the grammar text length.
func (a *app) compile() (p *parser.Parser, size int, e error) {
	name, text, e := a.grammarText()
	if e != nil {
		return nil, 0, e
	}

	prof, e := a.profile()
	if e != nil {
		return nil, 0, e
	}

	opts := []parser.Option{parser.WithLogger(a.log), parser.WithMaxDepth(a.cfg.MaxDepth)}
	if prof != nil {
		opts = append(opts, parser.WithProfile(prof))
	}

	p, e = parser.Compile(name, string(text), opts...)
	if e != nil {
		return nil, 0, fmt.Errorf("compiling %s: %w", name, e)
	}
	return p, len(text), nil
}
