package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/dockpane/internal/application/usecase"
	"github.com/bnema/dockpane/internal/infrastructure/config"
	"github.com/bnema/dockpane/internal/infrastructure/render"
	"github.com/bnema/dockpane/internal/logging"
	"github.com/bnema/dockpane/internal/ui/mainloop"
)

// App wires a docker, its terminal renderer and the bubbletea model.
type App struct {
	Docker   *usecase.Docker
	Renderer *render.Renderer

	bridge *Bridge
	model  Model
}

// NewApp builds the docker from cfg. Panels of cfg are the initial tree.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	bridge := NewBridge()
	renderer := render.New(render.Options{
		Theme: cfg.Theme,
		Icons: render.Icons{Close: cfg.Icons.Close, More: cfg.Icons.More},
		OnFrame: func(string, *render.Layout) {
			bridge.Frame()
		},
	})

	loop := mainloop.New(ctx)
	realign := mainloop.NewCoalescer(cfg.AnimateTime, mainloop.AfterFunc, func(fn func()) {
		loop.Post(func(context.Context) { fn() })
	})

	var control usecase.Control
	if cfg.ConfirmClose {
		control = CloseConfirmation(bridge)
	}

	docker, err := usecase.NewDocker(ctx, usecase.Config{
		Target:  renderer,
		Loop:    loop,
		Realign: realign,
		Menu:    NewMenu(bridge),
		Panels:  cfg.Panels,
		Theme:   cfg.Theme,
		Control: control,
		Modules: Modules(),
		OnLoad: func(ctx context.Context) {
			logging.FromContext(ctx).Debug().Msg("layout loaded")
		},
	})
	if err != nil {
		realign.Destroy()
		loop.Close()
		bridge.Close()
		return nil, fmt.Errorf("create docker: %w", err)
	}

	return &App{
		Docker:   docker,
		Renderer: renderer,
		bridge:   bridge,
		model: NewModel(ctx, ModelConfig{
			Docker:   docker,
			Renderer: renderer,
			Bridge:   bridge,
		}),
	}, nil
}

// Model returns the bubbletea model.
func (a *App) Model() Model { return a.model }

// Reload replaces the tree with the panels of cfg.
func (a *App) Reload(ctx context.Context, cfg *config.Config) error {
	return a.Docker.SetPanels(ctx, cfg.Panels)
}

// Run shows the program until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}, opts...)
	_, err := tea.NewProgram(a.model, opts...).Run()
	return err
}

// Close stops the docker and releases pending program events.
func (a *App) Close(ctx context.Context) error {
	err := a.Docker.Close(ctx)
	a.bridge.Close()
	return err
}
