package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dockpane/internal/cli"
	"github.com/bnema/dockpane/internal/infrastructure/config"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the layout file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := config.GenerateSchema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(schema))
			return err
		},
	}
}

func newInitCmd(opts *cli.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default layout file and its schema",
		Long: `Write the default layout file to --config, or to the XDG config directory,
next to its JSON schema. An existing layout file is left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, err := config.NewManager(opts.ConfigFile)
			if err != nil {
				return err
			}
			written, err := mgr.WriteDefault(opts.ConfigFile)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), written)
			return err
		},
	}
}
