// Package port defines application-layer interfaces for external collaborators.
// Ports keep the panel-tree core independent of how panels are drawn and of
// the content modules hosted inside them.
package port

import (
	"context"

	"github.com/bnema/dockpane/internal/domain/entity"
)

//go:generate mockgen -destination=mocks/mock_renderer.go -package=mocks github.com/bnema/dockpane/internal/application/port Renderer,Surface,OverflowMenu

// Renderer draws the panel tree. Paths on every node are current when Render
// is called and stay valid until the next call.
type Renderer interface {
	Render(ctx context.Context, tree *entity.Tree) error
	// Surface returns the mounted content area of a rendered panel, or nil if
	// the panel is not mounted.
	Surface(panel *entity.Panel) Surface
}

// Surface is the content area a module draws into.
type Surface interface {
	SetContent(content string)
}

// TabAligner is implemented by renderers whose stack tab bars can overflow.
// AlignTabs is called debounced after redraws.
type TabAligner interface {
	AlignTabs(ctx context.Context)
}
