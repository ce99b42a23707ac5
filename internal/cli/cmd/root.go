// Package cmd provides Cobra CLI commands for dockpane.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/dockpane/internal/cli"
)

// BuildInfo is set from main via ldflags.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

// NewRootCmd builds the command tree.
func NewRootCmd(info BuildInfo) *cobra.Command {
	var (
		app  *cli.App
		opts cli.Options
	)

	root := &cobra.Command{
		Use:   "dockpane",
		Short: "A dockable panel layout engine for the terminal",
		Long: `Dockpane - tabbed, split and stacked panels you can dock anywhere.

The layout file (layout.toml in $XDG_CONFIG_HOME/dockpane) declares the
initial panel tree. One-shot commands apply a single operation to it and
print the result; 'dockpane tui' opens the interactive view.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", info.Version, info.Commit, info.BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need a layout
			switch cmd.Name() {
			case "help", "completion", "schema", "classify", "init":
				return nil
			}

			opts.Quiet = cmd.Name() == "tui"
			var err error
			app, err = cli.NewApp(opts)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.ConfigFile, "config", "c", "", "layout file (default $XDG_CONFIG_HOME/dockpane/layout.toml)")
	flags.StringVar(&opts.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error, disabled")
	flags.StringVar(&opts.LogFile, "log-file", "", "append logs to this file instead of stderr")

	getApp := func() *cli.App { return app }
	root.AddCommand(
		newRenderCmd(getApp),
		newDockCmd(getApp),
		newCloseCmd(getApp),
		newActivateCmd(getApp),
		newClassifyCmd(),
		newSchemaCmd(),
		newInitCmd(&opts),
		newTUICmd(getApp),
	)
	return root
}

// Execute runs the root command.
func Execute(info BuildInfo) {
	if err := NewRootCmd(info).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
