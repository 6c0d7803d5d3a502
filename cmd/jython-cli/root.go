// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/jython/jbang-catalog/pkg/types"
)

// newRootCommand builds the jython-cli command. Flag parsing is disabled so
// --help and every interpreter option reach Jython untouched.
func newRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "jython-cli [--cli-debug] [jython options] [script.py] [args...]",
		Short: "Run Jython scripts through JBang",
		Long: `jython-cli runs a Jython script with JBang. A "# /// jbang" comment block
at the top of the script selects the Jython and Java versions, extra Maven
dependencies and JVM options:

  # /// jbang
  # requires-jython = "2.7.4"
  # requires-java = "21"
  # dependencies = ["io.leego:banana:2.1.0"]
  # ///`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), args)
		},
	}
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)
	return root
}

// Execute runs jython-cli with the process arguments and exits with the
// resulting status. This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	slog.SetDefault(slog.New(app.Logger))
	os.Exit(int(execute(context.Background(), app, os.Args[1:])))
}

// execute runs the root command through fang and maps the outcome to an
// exit code.
func execute(ctx context.Context, app *App, args []string) types.ExitCode {
	root := newRootCommand(app)
	root.SetArgs(args)

	err := fang.Execute(
		ctx,
		root,
		fang.WithoutVersion(),
		fang.WithoutManpage(),
		fang.WithoutCompletions(),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			app.handleError(w, err)
		}),
	)
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return types.ExitLaunchFailure
}
