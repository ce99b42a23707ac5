// Package cli holds what every dockpane command shares: the loaded layout
// file, the logger and a headless docker.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bnema/dockpane/internal/application/usecase"
	"github.com/bnema/dockpane/internal/infrastructure/config"
	"github.com/bnema/dockpane/internal/infrastructure/render"
	"github.com/bnema/dockpane/internal/logging"
	"github.com/bnema/dockpane/internal/ui/mainloop"
	"github.com/bnema/dockpane/internal/ui/tui"
)

// Options are the root command flags.
type Options struct {
	ConfigFile string
	LogLevel   string
	LogFile    string
	// Quiet discards logs unless LogFile is set; the TUI owns the terminal.
	Quiet bool
}

// App holds CLI dependencies.
type App struct {
	Config  *config.Config
	Manager *config.Manager

	ctx     context.Context
	logFile *os.File
}

// NewApp loads the layout file and builds the logger.
func NewApp(opts Options) (*App, error) {
	mgr, err := config.NewManager(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if err := mgr.Load(); err != nil {
		return nil, err
	}
	cfg := mgr.Get()

	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}

	var out io.Writer = os.Stderr
	var logFile *os.File
	switch {
	case opts.LogFile != "":
		logFile, err = os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = logFile
	case opts.Quiet:
		out = io.Discard
	}

	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(level),
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
		Output:     out,
	})
	ctx := logging.WithContext(context.Background(), logger)
	logger.Debug().Str("config_file", mgr.GetConfigFile()).Msg("configuration loaded")

	return &App{
		Config:  cfg,
		Manager: mgr,
		ctx:     ctx,
		logFile: logFile,
	}, nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Close releases all resources.
func (a *App) Close() error {
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}

// Headless is a docker drawing into an off-screen renderer, used by the
// one-shot commands.
type Headless struct {
	Docker   *usecase.Docker
	Renderer *render.Renderer
}

// OpenHeadless builds the layout's tree at the given size. Tabs are
// realigned after every redraw.
func (a *App) OpenHeadless(width, height int) (*Headless, error) {
	cfg := a.Config
	renderer := render.New(render.Options{
		Width:  width,
		Height: height,
		Theme:  cfg.Theme,
		Icons:  render.Icons{Close: cfg.Icons.Close, More: cfg.Icons.More},
	})
	loop := mainloop.New(a.ctx)
	docker, err := usecase.NewDocker(a.ctx, usecase.Config{
		Target:  renderer,
		Loop:    loop,
		Panels:  cfg.Panels,
		Theme:   cfg.Theme,
		Modules: tui.Modules(),
	})
	if err != nil {
		loop.Close()
		return nil, err
	}
	return &Headless{Docker: docker, Renderer: renderer}, nil
}

// Frame waits for posted work and returns the latest frame.
func (h *Headless) Frame(ctx context.Context) (string, error) {
	if err := h.Docker.Flush(ctx); err != nil {
		return "", err
	}
	frame, _ := h.Renderer.Frame()
	return frame, nil
}

// Close stops the docker.
func (h *Headless) Close(ctx context.Context) error {
	return h.Docker.Close(ctx)
}
