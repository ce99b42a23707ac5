package usecase

import "github.com/bnema/dockpane/internal/domain/entity"

// Arrange compacts a subtree bottom-up. Nil slots and removed panels vanish,
// a composite with no surviving children collapses to nil, and a composite
// with exactly one survivor is replaced by it. The survivor takes over the
// composite's flex weight so the slot keeps its size.
func Arrange(n entity.Node) entity.Node {
	switch v := n.(type) {
	case *entity.Panel:
		if v == nil || v.Removed() {
			return nil
		}
		return v
	case *entity.Stack:
		if v == nil {
			return nil
		}
		kept := make([]*entity.Panel, 0, len(v.Panels))
		for _, p := range v.Panels {
			if p != nil && !p.Removed() {
				kept = append(kept, p)
			}
		}
		switch len(kept) {
		case 0:
			return nil
		case 1:
			kept[0].FlexGrow = v.FlexGrow
			return kept[0]
		}
		v.Panels = kept
		return v
	case *entity.Split:
		if v == nil {
			return nil
		}
		kept := make([]entity.Node, 0, len(v.Children))
		for _, child := range v.Children {
			if arranged := Arrange(child); arranged != nil {
				kept = append(kept, arranged)
			}
		}
		switch len(kept) {
		case 0:
			return nil
		case 1:
			setRawGrow(kept[0], v.FlexGrow)
			return kept[0]
		}
		v.Children = kept
		return v
	default:
		return nil
	}
}

// ArrangeTree compacts the whole tree and reindexes it.
func ArrangeTree(t *entity.Tree) {
	t.Root = Arrange(t.Root)
	Reindex(t)
}

// Reindex recomputes every node path and re-derives stack activity: the
// first active panel wins, otherwise the first panel. Extra active flags are
// cleared, and so is the flag of panels outside stacks, which are always
// visible.
func Reindex(t *entity.Tree) {
	if t.IsEmpty() {
		t.Root = nil
		return
	}
	reindex(t.Root, entity.RootPath)
}

func reindex(n entity.Node, at entity.Path) {
	switch v := n.(type) {
	case *entity.Panel:
		v.Path = at
		v.Active = false
	case *entity.Stack:
		v.Path = at
		active := v.ActiveIndex()
		if active < 0 {
			active = 0
		}
		for i, p := range v.Panels {
			if p == nil {
				continue
			}
			p.Active = i == active
			p.Path = at.Child(i)
		}
	case *entity.Split:
		v.Path = at
		for i, child := range v.Children {
			reindex(child, at.Child(i))
		}
	}
}

// VisiblePanels returns the panels a redraw shows: every panel outside a
// stack and the active panel of each stack.
func VisiblePanels(t *entity.Tree) []*entity.Panel {
	if t.IsEmpty() {
		return nil
	}
	var visible []*entity.Panel
	entity.Walk(t.Root, func(n entity.Node) bool {
		switch v := n.(type) {
		case *entity.Panel:
			visible = append(visible, v)
		case *entity.Stack:
			if p := v.ActivePanel(); p != nil {
				visible = append(visible, p)
			}
			return false
		}
		return true
	})
	return visible
}

func rawGrow(n entity.Node) float64 {
	switch v := n.(type) {
	case *entity.Panel:
		return v.FlexGrow
	case *entity.Stack:
		return v.FlexGrow
	case *entity.Split:
		return v.FlexGrow
	}
	return 0
}

func setRawGrow(n entity.Node, w float64) {
	switch v := n.(type) {
	case *entity.Panel:
		v.FlexGrow = w
	case *entity.Stack:
		v.FlexGrow = w
	case *entity.Split:
		v.FlexGrow = w
	}
}
