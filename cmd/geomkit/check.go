package main

import (
	"context"
	"fmt"
	"path/filepath"

	"geomkit/internal/scene"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "check <fixture>...",
		Short: "Evaluate fixture queries and compare them with their expectations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed, err := a.checkFiles(args)
			if watch {
				if err != nil {
					a.log.Error("check failed", "err", err)
				}
				return a.watch(cmd.Context(), args)
			}
			if err != nil {
				return err
			}
			if failed > 0 {
				return errChecksFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run when a fixture file changes")
	return cmd
}

// checkFiles runs every fixture and prints one row per query. It returns
// the number of failed expectations.
func (a *app) checkFiles(paths []string) (int, error) {
	failed := 0
	for _, path := range paths {
		a.log.Debug("loading fixture", "path", path)
		sc, err := scene.Load(path)
		if err != nil {
			return failed, fmt.Errorf("failed to load %s: %w", path, err)
		}
		results, err := sc.Run()
		a.printResults(path, results)
		if err != nil {
			return failed, fmt.Errorf("failed to run %s: %w", path, err)
		}
		for _, r := range results {
			if r.Checked && !r.Pass {
				failed++
			}
		}
		a.log.Debug("fixture done", "path", path, "shapes", len(sc.Shapes), "queries", len(results))
	}
	return failed, nil
}

func (a *app) printResults(path string, results []scene.Result) {
	fmt.Fprintln(a.out, a.out.String(path).Bold())
	pass, fail := 0, 0
	for _, r := range results {
		status := a.out.String(" ---").Faint()
		switch {
		case r.Checked && r.Pass:
			status = a.out.String("PASS").Foreground(a.out.Color("2"))
			pass++
		case r.Checked:
			status = a.out.String("FAIL").Foreground(a.out.Color("1"))
			fail++
		}
		line := fmt.Sprintf("  %s  %-32s %s", status, r.Label, r.Value)
		if r.Detail != "" {
			line += "  (" + r.Detail + ")"
		}
		fmt.Fprintln(a.out, line)
	}
	fmt.Fprintf(a.out, "  %d passed, %d failed, %d unchecked\n", pass, fail, len(results)-pass-fail)
}

// watch re-runs the fixtures whenever one of them is written, until ctx is
// done. Directories are watched so editors that replace files still
// trigger a run.
func (a *app) watch(ctx context.Context, paths []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()

	targets := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			return fmt.Errorf("failed to watch %s: %w", d, err)
		}
	}
	a.log.Info("watching fixtures", "files", len(targets))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(ev.Name)] || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			a.log.Debug("fixture changed", "path", ev.Name, "op", ev.Op.String())
			if _, err := a.checkFiles(paths); err != nil {
				a.log.Error("check failed", "err", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("watcher error", "err", err)
		}
	}
}
