package usecase

import "github.com/bnema/dockpane/internal/domain/entity"

// HitZone is a cell of the 3x3 partition of a drop target.
type HitZone struct {
	Row, Col int // 0..2, top to bottom and left to right
}

// Direction maps the zone to a dock direction. The centre cell stacks, edge
// cells dock on their side, and corners dock on the row axis.
func (z HitZone) Direction() entity.Direction {
	switch {
	case z.Col == 0:
		return entity.DockRowLeft
	case z.Col == 2:
		return entity.DockRowRight
	case z.Row == 0:
		return entity.DockColumnTop
	case z.Row == 2:
		return entity.DockColumnBottom
	default:
		return entity.DockStack
	}
}

// ClassifyHitZone places pt in the 3x3 grid over rect. A ratio of exactly
// 1/3 or 2/3 belongs to the lower band. Points outside rect, or a degenerate
// rect, yield false.
func ClassifyHitZone(rect entity.Rect, pt entity.Point) (HitZone, bool) {
	if rect.W <= 0 || rect.H <= 0 || !rect.Contains(pt) {
		return HitZone{}, false
	}
	return HitZone{
		Row: third((pt.Y - rect.Y) / rect.H),
		Col: third((pt.X - rect.X) / rect.W),
	}, true
}

func third(ratio float64) int {
	switch {
	case ratio <= 1.0/3:
		return 0
	case ratio <= 2.0/3:
		return 1
	default:
		return 2
	}
}

// DropTarget is what the renderer reports under the pointer during a drag.
type DropTarget struct {
	Path entity.Path
	Rect entity.Rect
	// OverTab is set when the pointer is over a stack's tab label; such a
	// drop always stacks.
	OverTab bool
}

// DragSession tracks one panel drag between pointer events.
type DragSession struct {
	Panel *entity.Panel

	target    entity.Path
	direction entity.Direction
	hasTarget bool
	ended     bool
}

// NewDragSession starts dragging p.
func NewDragSession(p *entity.Panel) *DragSession {
	return &DragSession{Panel: p}
}

// Over classifies the pointer against t. It reports the resulting direction
// and whether the target or direction differs from the previous event, so
// renderers only redraw drop indicators on change. A pointer outside the
// target clears the current target.
func (s *DragSession) Over(t DropTarget, pt entity.Point) (entity.Direction, bool) {
	if s.ended {
		return "", false
	}

	var dir entity.Direction
	switch {
	case t.OverTab && t.Rect.Contains(pt):
		dir = entity.DockStack
	default:
		zone, ok := ClassifyHitZone(t.Rect, pt)
		if !ok {
			changed := s.hasTarget
			s.hasTarget = false
			s.target, s.direction = nil, ""
			return "", changed
		}
		dir = zone.Direction()
	}

	changed := !s.hasTarget || !s.target.Equal(t.Path) || s.direction != dir
	s.hasTarget = true
	s.target = t.Path
	s.direction = dir
	return dir, changed
}

// Target returns the current drop target, if any.
func (s *DragSession) Target() (entity.Path, entity.Direction, bool) {
	return s.target, s.direction, s.hasTarget
}

// Ended reports whether the drag finished.
func (s *DragSession) Ended() bool { return s.ended }

// Cancel ends the session without moving anything.
func (s *DragSession) Cancel() {
	s.ended = true
	s.hasTarget = false
}

// MovePanel moves p to dir of the node at target: a copy keeping p's ID,
// state and built flag is docked, then the original is marked removed and
// the tree arranged. Dropping p onto itself, or stacking it onto its own
// stack, does nothing. The moved copy is returned.
func MovePanel(tree *entity.Tree, p *entity.Panel, target entity.Path, dir entity.Direction) (*entity.Panel, error) {
	node, ok := tree.Resolve(target)
	if !ok || p == nil || p.Removed() {
		return nil, nil
	}
	if panel, isPanel := node.(*entity.Panel); isPanel && panel == p {
		return nil, nil
	}
	if stack, isStack := node.(*entity.Stack); isStack && dir == entity.DockStack && stack.IndexOf(p) >= 0 {
		return nil, nil
	}
	if parent, hasParent := tree.ParentOf(target); hasParent && dir == entity.DockStack {
		if stack, isStack := parent.(*entity.Stack); isStack && stack.IndexOf(p) >= 0 {
			return nil, nil
		}
	}

	moved := p.Clone()
	moved.Active = false
	ok, err := dock(tree, target, dir, moved, NoIndex)
	if err != nil || !ok {
		return nil, err
	}
	p.MarkRemoved()
	ArrangeTree(tree)
	return moved, nil
}
