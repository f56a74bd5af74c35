// Command geomkit drives the geometry kernel from shape fixture files:
// regression checks, bounding spheres and a collision stress benchmark.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// errChecksFailed makes the process exit non-zero without printing usage.
var errChecksFailed = errors.New("one or more checks failed")

// app carries what every subcommand shares.
type app struct {
	out     *termenv.Output
	log     *slog.Logger
	verbose bool
}

func (a *app) setupLogging(stderr io.Writer) {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{out: termenv.NewOutput(stdout)}
	a.setupLogging(stderr)

	root := &cobra.Command{
		Use:           "geomkit",
		Short:         "Run geometry fixtures, bounding spheres and collision benchmarks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.setupLogging(stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newCheckCmd(a), newBoundCmd(a), newBenchCmd(a))
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintf(os.Stderr, "geomkit: %v\n", err)
		}
		os.Exit(1)
	}
}
