package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scopeviz/scopetree/internal/cli"
	apperrors "github.com/scopeviz/scopetree/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx))
}

func run(ctx context.Context) int {
	err := newRoot().ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130 // interrupted, shell convention
	default:
		fmt.Fprintln(os.Stderr, err)
		return exitStatus(err)
	}
}

// exitStatus distinguishes bad input from runtime failure so scripts can
// tell a fixable invocation apart from a broken environment.
func exitStatus(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidGraph,
		apperrors.ErrCodeInvalidDirection, apperrors.ErrCodeInvalidExpansion,
		apperrors.ErrCodeUnsupported:
		return 2
	default:
		return 1
	}
}

// newRoot builds the command tree and hooks the --verbose flag into the
// logger before any command runs. Errors are printed once, by run.
func newRoot() *cobra.Command {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true

	verbose := root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging")

	chained := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if chained != nil {
			return chained(cmd, args)
		}
		return nil
	}
	return root
}
