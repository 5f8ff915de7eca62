package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jsfront/js/workspace"
)

var errSyntax = errors.New("syntax errors found")

func newCheckCmd() *cobra.Command {
	var sourceType string
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "check <file or directory>...",
		Short: "Report syntax errors in files and directories",
		Long: "Parse every given file, and every .js, .jsx, .ts and .tsx file below the\n" +
			"given directories, and print the diagnostics. The command fails when any\n" +
			"error was found. With --watch, a single directory is polled for changes\n" +
			"until interrupted.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				if len(args) != 1 {
					return fmt.Errorf("--watch takes exactly one directory")
				}
				return runWatch(cmd.Context(), cmd.ErrOrStderr(), args[0], interval)
			}

			var failed bool
			for _, arg := range args {
				info, err := os.Stat(arg)
				if err != nil && arg != "-" {
					return err
				}
				if arg != "-" && info.IsDir() {
					ws := workspace.New(arg)
					if err := ws.ScanAll(); err != nil {
						return err
					}
					for _, f := range ws.Files() {
						failed = reportFile(cmd.ErrOrStderr(), f) || failed
					}
					continue
				}
				in, err := readInput(arg, sourceType)
				if err != nil {
					return err
				}
				t, err := in.parse()
				if err != nil {
					return err
				}
				if err := printDiagnostics(cmd.ErrOrStderr(), in.name, in.source, t.Diagnostics); err != nil {
					return err
				}
				failed = t.HasErrors() || failed
			}
			if failed {
				return errSyntax
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceType, "source-type", "t", "", "source type for file arguments (js, script, jsx, ts, tsx, d.ts)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep watching the directory and report changed files")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "polling interval for --watch")

	return cmd
}

// reportFile prints the diagnostics of f and reports whether it has errors.
func reportFile(w io.Writer, f *workspace.File) bool {
	if f.ParseErr != nil {
		fmt.Fprintf(w, "%s: %s\n", f.Path, f.ParseErr)
		return true
	}
	printDiagnostics(w, f.Path, f.Content, f.Diagnostics())
	return f.Tree.HasErrors()
}

func runWatch(ctx context.Context, w io.Writer, dir string, interval time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	watcher := workspace.NewWatcher(workspace.New(dir), interval)
	watcher.OnChange = func(f *workspace.File) {
		if !reportFile(w, f) {
			fmt.Fprintf(w, "%s: ok\n", f.Path)
		}
	}
	watcher.OnRemove = func(path string) {
		fmt.Fprintf(w, "%s: removed\n", path)
	}
	if err := watcher.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
