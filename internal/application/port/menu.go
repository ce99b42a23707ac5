package port

import (
	"context"

	"github.com/bnema/dockpane/internal/domain/entity"
)

// MenuItem is one entry of a stack's overflow menu.
type MenuItem struct {
	Label     string
	Index     int
	StackPath entity.Path
}

// OverflowMenu is the popup widget listing the panels of a stack whose tab
// bar overflows.
type OverflowMenu interface {
	Popup(ctx context.Context, items []MenuItem, onSelect func(MenuItem))
}
