package tui

import (
	"context"

	"github.com/bnema/dockpane/internal/application/port"
	"github.com/bnema/dockpane/internal/application/usecase"
)

type confirmMsg struct {
	transition usecase.Transition
	gate       usecase.Gate
}

type menuMsg struct {
	items    []port.MenuItem
	onSelect func(port.MenuItem)
}

// CloseConfirmation returns lifecycle hooks that ask the user before a panel
// is destroyed. Every other transition proceeds at once.
func CloseConfirmation(b *Bridge) usecase.Control {
	return usecase.Control{
		Before: func(_ context.Context, t usecase.Transition, g usecase.Gate) {
			if t.Phase != port.PhaseDestroy {
				g.Proceed()
				return
			}
			b.Send(confirmMsg{transition: t, gate: g})
		},
	}
}

// Menu is the in-terminal overflow menu.
type Menu struct {
	bridge *Bridge
}

var _ port.OverflowMenu = (*Menu)(nil)

// NewMenu creates a menu that pops up inside the program fed by b.
func NewMenu(b *Bridge) *Menu {
	return &Menu{bridge: b}
}

// Popup shows items; onSelect runs on the program goroutine.
func (m *Menu) Popup(_ context.Context, items []port.MenuItem, onSelect func(port.MenuItem)) {
	if len(items) == 0 {
		return
	}
	m.bridge.Send(menuMsg{items: items, onSelect: onSelect})
}
