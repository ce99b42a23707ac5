package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dockpane/internal/application/usecase"
	"github.com/bnema/dockpane/internal/cli"
	"github.com/bnema/dockpane/internal/domain/entity"
	"github.com/bnema/dockpane/internal/ui/tui"
)

func newRenderCmd(getApp func() *cli.App) *cobra.Command {
	var view viewFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the layout once",
		Long:  `Build the panel tree of the layout file and print one frame, or the arranged tree with --output yaml|json.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withHeadless(cmd, getApp(), &view, nil)
		},
	}
	view.register(cmd)
	return cmd
}

func newDockCmd(getApp func() *cli.App) *cobra.Command {
	var (
		view   viewFlags
		module string
		id     string
		active bool
		index  int
	)
	cmd := &cobra.Command{
		Use:   "dock <path> <direction> <name>",
		Short: "Dock a new panel and print the result",
		Long: `Dock a new panel relative to the node at path.

Paths use the canonical form (panels[0].panels[1]) or the shorthand 0.1;
an empty path addresses the root. Directions: stack, row-left, row-right,
column-top, column-bottom.

Examples:
  dockpane dock 0.1 stack logs          # add a tab to the stack at 0.1
  dockpane dock 0 row-right editor -o yaml`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := entity.ParseDirection(args[1])
			if err != nil {
				return err
			}
			return withHeadless(cmd, getApp(), &view, func(ctx context.Context, h *cli.Headless) error {
				p := entity.NewPanel(args[2], module)
				if id != "" {
					p.ID = id
				}
				p.Active = active
				added, err := h.Docker.AddPanel(ctx, args[0], dir, p, index)
				if err != nil {
					return err
				}
				if !added {
					return fmt.Errorf("dock: no node at %q", args[0])
				}
				return nil
			})
		},
	}
	view.register(cmd)
	cmd.Flags().StringVar(&module, "module", tui.TextModule, "module rendering the panel")
	cmd.Flags().StringVar(&id, "id", "", "panel ID (default: a new UUID)")
	cmd.Flags().BoolVar(&active, "active", false, "make the new panel the visible one of its stack")
	cmd.Flags().IntVar(&index, "index", usecase.NoIndex, "insert position when docking into a split along its own axis")
	return cmd
}

func newCloseCmd(getApp func() *cli.App) *cobra.Command {
	var view viewFlags
	cmd := &cobra.Command{
		Use:   "close <path>",
		Short: "Close the panel at path and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHeadless(cmd, getApp(), &view, func(ctx context.Context, h *cli.Headless) error {
				return h.Docker.ClosePanel(ctx, args[0])
			})
		},
	}
	view.register(cmd)
	return cmd
}

func newActivateCmd(getApp func() *cli.App) *cobra.Command {
	var (
		view  viewFlags
		index int
	)
	cmd := &cobra.Command{
		Use:   "activate <path>",
		Short: "Show the panel at path",
		Long: `Make the panel at path the visible one of its stack. With --index the
path addresses a stack and the index-th panel of it is shown.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHeadless(cmd, getApp(), &view, func(ctx context.Context, h *cli.Headless) error {
				if cmd.Flags().Changed("index") {
					return h.Docker.ChangeActiveStackPanel(ctx, args[0], index)
				}
				return h.Docker.ActivePanel(ctx, args[0])
			})
		},
	}
	view.register(cmd)
	cmd.Flags().IntVar(&index, "index", 0, "panel index inside the stack at path")
	return cmd
}
