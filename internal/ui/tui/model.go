// Package tui is the terminal front end: a bubbletea program that shows the
// rendered panel tree and turns mouse and keyboard input into docker
// operations.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dockpane/internal/application/port"
	"github.com/bnema/dockpane/internal/application/usecase"
	"github.com/bnema/dockpane/internal/domain/entity"
	"github.com/bnema/dockpane/internal/infrastructure/render"
	"github.com/bnema/dockpane/internal/logging"
	"github.com/bnema/dockpane/internal/ui/mainloop"
)

// Model is the bubbletea model of the docker view.
type Model struct {
	ctx      context.Context
	docker   *usecase.Docker
	renderer *render.Renderer
	bridge   *Bridge
	theme    *render.Theme
	keys     keyMap
	help     help.Model

	width  int
	height int
	frame  string
	layout *render.Layout
	focus  string
	status string
	err    error
	spawn  int

	press    *pressState
	drag     *usecase.Drag
	resize   *usecase.Resize
	resizing bool
	menu     *menuState
	confirm  *confirmMsg
}

type pressState struct {
	x, y    int
	tab     render.TabBox
	started bool
}

type menuState struct {
	items    []port.MenuItem
	selected int
	onSelect func(port.MenuItem)
}

type frameMsg struct{}

type opDoneMsg struct {
	op    string
	focus string
	err   error
}

type dragStartedMsg struct {
	drag *usecase.Drag
	err  error
}

type resizeStartedMsg struct {
	resize *usecase.Resize
	err    error
}

// ModelConfig holds the collaborators of a Model.
type ModelConfig struct {
	Docker   *usecase.Docker
	Renderer *render.Renderer
	Bridge   *Bridge
}

// NewModel creates the docker view.
func NewModel(ctx context.Context, cfg ModelConfig) Model {
	theme, _ := render.NewTheme(cfg.Docker.Theme())
	return Model{
		ctx:      ctx,
		docker:   cfg.Docker,
		renderer: cfg.Renderer,
		bridge:   cfg.Bridge,
		theme:    theme,
		keys:     defaultKeyMap(),
		help:     help.New(),
		layout:   &render.Layout{},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.bridge.Wait()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.renderer.Resize(msg.Width, m.treeHeight())
		return m, m.do("repaint", m.docker.Repaint)

	case frameMsg:
		m.bridge.frameTaken()
		m.frame, m.layout = m.renderer.Frame()
		m.refocus()
		return m, m.bridge.Wait()

	case confirmMsg:
		m.confirm = &msg
		return m, m.bridge.Wait()

	case menuMsg:
		m.menu = &menuState{items: msg.items, onSelect: msg.onSelect}
		for i, item := range msg.items {
			if item.Index == m.activeIndexOf(item.StackPath) {
				m.menu.selected = i
			}
		}
		return m, m.bridge.Wait()

	case opDoneMsg:
		return m.handleOpDone(msg)

	case dragStartedMsg:
		if msg.err != nil || msg.drag == nil {
			return m.handleOpDone(opDoneMsg{op: "drag", err: msg.err})
		}
		if m.press == nil {
			msg.drag.Cancel()
			return m, nil
		}
		m.drag = msg.drag
		return m, nil

	case resizeStartedMsg:
		if msg.err != nil {
			m.resizing = false
			return m.handleOpDone(opDoneMsg{op: "resize", err: msg.err})
		}
		if !m.resizing {
			return m, nil
		}
		m.resize = msg.resize
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		switch {
		case m.confirm != nil:
			return m.handleConfirmKey(msg)
		case m.menu != nil:
			return m.handleMenuKey(msg)
		}
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handleOpDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	if msg.focus != "" {
		m.focus = msg.focus
	}
	if msg.err == nil {
		m.err = nil
		return m, nil
	}
	if errors.Is(msg.err, usecase.ErrClosed) || errors.Is(msg.err, mainloop.ErrLoopClosed) {
		return m, tea.Quit
	}
	logging.FromContext(m.ctx).Warn().Err(msg.err).Str("op", msg.op).Msg("docker operation failed")
	m.err = fmt.Errorf("%s: %w", msg.op, msg.err)
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		return m.cancelGesture()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.renderer.Resize(m.width, m.treeHeight())
		return m, m.do("repaint", m.docker.Repaint)

	case key.Matches(msg, m.keys.Repaint):
		return m, m.do("repaint", m.docker.Repaint)

	case key.Matches(msg, m.keys.SplitRight):
		return m.dock(entity.DockRowRight)

	case key.Matches(msg, m.keys.SplitDown):
		return m.dock(entity.DockColumnBottom)

	case key.Matches(msg, m.keys.NewTab):
		return m.dock(entity.DockStack)

	case key.Matches(msg, m.keys.Close):
		box, ok := m.focusedBox()
		if !ok {
			return m, nil
		}
		path := box.Path.String()
		return m, m.do("close", func(ctx context.Context) error {
			return m.docker.ClosePanel(ctx, path)
		})

	case key.Matches(msg, m.keys.NextTab):
		return m.cycleTab(1)

	case key.Matches(msg, m.keys.PrevTab):
		return m.cycleTab(-1)

	case key.Matches(msg, m.keys.More):
		stack, ok := m.layout.StackOf(m.focus)
		if !ok {
			return m, nil
		}
		path := stack.Path.String()
		return m, m.do("more", func(ctx context.Context) error {
			return m.docker.OpenStackMore(ctx, path)
		})
	}

	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes), key.Matches(msg, m.keys.Select):
		m.confirm.gate.Proceed()
	case key.Matches(msg, m.keys.No), key.Matches(msg, m.keys.Cancel):
		m.confirm.gate.Decline()
	default:
		return m, nil
	}
	m.confirm = nil
	return m, nil
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.menu.selected > 0 {
			m.menu.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.menu.selected < len(m.menu.items)-1 {
			m.menu.selected++
		}
	case key.Matches(msg, m.keys.Select):
		item := m.menu.items[m.menu.selected]
		m.menu.onSelect(item)
		if stack, ok := m.layout.StackOf(m.focus); ok && stack.Path.Equal(item.StackPath) {
			m.focus = stack.TabID(item.Index)
		}
		m.menu = nil
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
		m.menu = nil
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.confirm != nil || m.menu != nil {
		return m, nil
	}
	pt := render.Cell(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.mouseDown(msg.X, msg.Y, pt)

	case tea.MouseActionMotion:
		switch {
		case m.resize != nil:
			prev, next := m.resize.Move(pt)
			m.status = fmt.Sprintf("resize %.2f / %.2f", prev, next)
		case m.drag != nil:
			if target, ok := m.layout.DropTargetAt(pt); ok {
				if dir, ok := m.drag.Over(target, pt); ok {
					m.status = fmt.Sprintf("drop %s %s", dir, target.Path)
				}
			}
		case m.press != nil && !m.press.started && (msg.X != m.press.x || msg.Y != m.press.y):
			m.press.started = true
			path := m.press.tab.PanelPath.String()
			return m, func() tea.Msg {
				drag, err := m.docker.BeginDrag(m.ctx, path)
				return dragStartedMsg{drag: drag, err: err}
			}
		}
		return m, nil

	case tea.MouseActionRelease:
		return m.mouseUp()
	}
	return m, nil
}

func (m Model) mouseDown(x, y int, pt entity.Point) (tea.Model, tea.Cmd) {
	if tab, ok := m.layout.CloseAt(pt); ok {
		path := tab.PanelPath.String()
		return m, m.do("close", func(ctx context.Context) error {
			return m.docker.ClosePanel(ctx, path)
		})
	}
	if more, ok := m.layout.MoreAt(pt); ok {
		path := more.StackPath.String()
		return m, m.do("more", func(ctx context.Context) error {
			return m.docker.OpenStackMore(ctx, path)
		})
	}
	if tab, ok := m.layout.TabAt(pt); ok {
		m.press = &pressState{x: x, y: y, tab: tab}
		return m, nil
	}
	if h, ok := m.layout.HandleAt(pt); ok {
		m.resizing = true
		handle := h.Handle.String()
		extents := h.Extents
		return m, func() tea.Msg {
			r, err := m.docker.BeginResize(m.ctx, handle, pt, extents)
			return resizeStartedMsg{resize: r, err: err}
		}
	}
	if box, ok := m.layout.PanelAt(pt); ok {
		m.focus = box.PanelID
	}
	return m, nil
}

func (m Model) mouseUp() (tea.Model, tea.Cmd) {
	switch {
	case m.resize != nil:
		r := m.resize
		m.resize, m.resizing = nil, false
		m.status = ""
		return m, m.do("resize", r.End)

	case m.drag != nil:
		drag := m.drag
		m.drag, m.press = nil, nil
		m.status = ""
		return m, m.do("drop", func(ctx context.Context) error {
			_, err := drag.Drop(ctx)
			return err
		})

	case m.press != nil:
		press := m.press
		m.press = nil
		if press.started {
			return m, nil
		}
		path := press.tab.PanelPath.String()
		focus := press.tab.PanelID
		return m, func() tea.Msg {
			return opDoneMsg{op: "click", focus: focus, err: m.docker.ClickTab(m.ctx, path)}
		}
	}
	m.resizing = false
	return m, nil
}

func (m Model) cancelGesture() (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case m.resize != nil:
		r := m.resize
		m.resize, m.resizing = nil, false
		return m, m.do("resize", r.Cancel)
	case m.drag != nil:
		m.drag.Cancel()
		m.drag, m.press = nil, nil
	}
	m.press = nil
	m.resizing = false
	return m, nil
}

// dock adds a new text panel next to the focused one, or as the root of an
// empty tree.
func (m Model) dock(dir entity.Direction) (tea.Model, tea.Cmd) {
	path := "undefined"
	if box, ok := m.focusedBox(); ok {
		path = box.Path.String()
	}
	m.spawn++
	p := entity.NewPanel(fmt.Sprintf("panel %d", m.spawn), TextModule)
	p.Active = true
	return m, func() tea.Msg {
		added, err := m.docker.AddPanel(m.ctx, path, dir, p, usecase.NoIndex)
		if err != nil || !added {
			return opDoneMsg{op: "dock", err: err}
		}
		return opDoneMsg{op: "dock", focus: p.ID}
	}
}

func (m Model) cycleTab(step int) (tea.Model, tea.Cmd) {
	stack, ok := m.layout.StackOf(m.focus)
	if !ok || stack.TabCount() < 2 {
		return m, nil
	}
	n := stack.TabCount()
	next := ((stack.ActiveTab()+step)%n + n) % n
	path := stack.Path.String()
	m.focus = stack.TabID(next)
	return m, m.do("activate", func(ctx context.Context) error {
		return m.docker.ChangeActiveStackPanel(ctx, path, next)
	})
}

func (m Model) do(op string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

func (m *Model) refocus() {
	if _, ok := m.layout.PanelBox(m.focus); ok {
		return
	}
	m.focus = ""
	if box, ok := m.layout.FirstPanel(); ok {
		m.focus = box.PanelID
	}
}

func (m Model) focusedBox() (*render.Box, bool) {
	return m.layout.PanelBox(m.focus)
}

func (m Model) activeIndexOf(stackPath entity.Path) int {
	var idx = -1
	m.layout.Walk(func(b *render.Box) bool {
		if b.Kind == entity.KindStack && b.Path.Equal(stackPath) {
			idx = b.ActiveTab()
			return false
		}
		return true
	})
	return idx
}

// treeHeight is the number of rows left for the tree under the status line.
func (m Model) treeHeight() int {
	footer := 1
	if m.help.ShowAll {
		footer = lipgloss.Height(m.help.View(m.keys))
	}
	return max(m.height-footer, 0)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.confirm != nil {
		return m.overlay(m.confirmView())
	}
	if m.menu != nil {
		return m.overlay(m.menuView())
	}

	var b strings.Builder
	b.WriteString(m.frame)
	b.WriteString("\n")
	b.WriteString(m.footerView())
	return b.String()
}

func (m Model) footerView() string {
	switch {
	case m.err != nil:
		return m.theme.Error.MaxWidth(m.width).Render(m.err.Error())
	case m.status != "":
		return m.theme.Status.MaxWidth(m.width).Render(m.status)
	}
	return m.help.View(m.keys)
}

func (m Model) confirmView() string {
	name := m.confirm.transition.Panel.Name
	if name == "" {
		name = m.confirm.transition.Panel.ID
	}
	return fmt.Sprintf("Close %s?\n\n%s", name, m.theme.Status.Render("y yes • n no"))
}

func (m Model) menuView() string {
	var b strings.Builder
	for i, item := range m.menu.items {
		if i > 0 {
			b.WriteString("\n")
		}
		if i == m.menu.selected {
			b.WriteString(m.theme.Selected.Render("> " + item.Label))
			continue
		}
		b.WriteString("  " + item.Label)
	}
	return b.String()
}

func (m Model) overlay(body string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.theme.Dialog.Render(body))
}
