package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newWatchCommand(a *app) *cobra.Command {
	f := &parseFlags{}
	cmd := &cobra.Command{
		Use:   "watch [file...]",
		Short: "Re-check grammar and re-parse sources whenever files change",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := cmd.OutOrStdout()
			files := append([]string{}, args...)
			if a.cfg.Grammar != "" && a.cfg.Grammar != builtinGrammar {
				files = append(files, a.cfg.Grammar)
			}
			if a.cfg.Profile != "" {
				files = append(files, a.cfg.Profile)
			}
			if len(files) == 0 {
				return fmt.Errorf("nothing to watch")
			}

			rebuild := func(string) { a.recheck(w, args, f) }
			rebuild("")
			return watchFiles(ctx, files, func(name string) {
				fmt.Fprintf(w, "file changed: %s\n", name)
				rebuild(name)
			})
		},
	}

	cmd.Flags().BoolVarP(&f.tree, "tree", "t", false, "print indented tree instead of S-expression")
	return cmd
}

// recheck compiles grammar and parses all sources, reporting errors without stopping.
func (a *app) recheck(w io.Writer, sources []string, f *parseFlags) {
	fail := color.New(color.FgRed)
	p, size, e := a.compile()
	if e != nil {
		fail.Fprintf(w, "grammar failed: %v\n", e)
		return
	}

	writeSummary(w, p, size)
	if len(sources) == 0 {
		return
	}

	srcs, e := readSources(nil, sources)
	if e != nil {
		fail.Fprintf(w, "%v\n", e)
		return
	}

	for _, src := range srcs {
		if e := parseSource(w, p, src, a.cfg.Root, f); e != nil {
			fail.Fprintf(w, "parse failed: %v\n", e)
		}
	}
}

// watchFiles calls onChange for every write to or creation of one of files until ctx is done.
// Parent directories are watched, events are filtered by file name.
func watchFiles(ctx context.Context, files []string, onChange func(name string)) error {
	watcher, e := fsnotify.NewWatcher()
	if e != nil {
		return e
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, name := range files {
		abs, e := filepath.Abs(name)
		if e != nil {
			return e
		}

		watched[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}

		if e := watcher.Add(dir); e != nil {
			return fmt.Errorf("watching %s: %w", dir, e)
		}
		dirs[dir] = true
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if abs, e := filepath.Abs(event.Name); e == nil && watched[abs] {
				onChange(event.Name)
			}
		case e, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher: %w", e)
		}
	}
}
