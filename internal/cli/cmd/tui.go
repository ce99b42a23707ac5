package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/dockpane/internal/cli"
	"github.com/bnema/dockpane/internal/infrastructure/config"
	"github.com/bnema/dockpane/internal/logging"
	"github.com/bnema/dockpane/internal/ui/tui"
)

func newTUICmd(getApp func() *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive panel view",
		Long: `Open the layout in an interactive terminal view.

Drag tabs with the mouse to dock them, drag splitters to resize, click a
tab to show it. Press ? for the key bindings. The view reloads when the
layout file changes. Logs are discarded unless --log-file is given.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			app := getApp()
			if app == nil {
				return fmt.Errorf("app not initialized")
			}
			return runTUI(app)
		},
	}
}

func runTUI(app *cli.App) error {
	ctx, stop := signal.NotifyContext(app.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log := logging.FromContext(ctx)

	ui, err := tui.NewApp(ctx, app.Config)
	if err != nil {
		return err
	}
	defer func() { _ = ui.Close(context.WithoutCancel(ctx)) }()

	reloads := make(chan *config.Config, 1)
	if app.Manager.GetConfigFile() != "" {
		app.Manager.OnConfigChange(func(c *config.Config) {
			select {
			case <-reloads:
			default:
			}
			reloads <- c
		})
		if err := app.Manager.Watch(ctx); err != nil {
			log.Warn().Err(err).Msg("layout file will not be reloaded")
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		defer cancel()
		err := ui.Run(gctx)
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case c := <-reloads:
				if err := ui.Reload(gctx, c); err != nil {
					log.Warn().Err(err).Msg("reload layout")
					continue
				}
				log.Info().Int("panels", len(c.Panels)).Msg("layout reloaded")
			}
		}
	})

	return g.Wait()
}
