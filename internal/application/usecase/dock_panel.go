package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/dockpane/internal/domain/entity"
	"github.com/bnema/dockpane/internal/logging"
)

// ErrInvalidDirection is returned for a dock direction outside the five
// known values.
var ErrInvalidDirection = errors.New("invalid dock direction")

// NoIndex marks an absent explicit index in DockPanel.
const NoIndex = -1

// DockPanel inserts panel relative to the node at target and arranges the
// tree. index only matters when target is a split docked on its own axis;
// pass NoIndex to prepend or append. It returns false when target does not
// resolve, leaving the tree untouched.
func DockPanel(
	ctx context.Context,
	tree *entity.Tree,
	target entity.Path,
	dir entity.Direction,
	panel *entity.Panel,
	index int,
) (bool, error) {
	log := logging.FromContext(ctx)

	if _, err := entity.ParseDirection(string(dir)); err != nil {
		return false, fmt.Errorf("%q: %w", dir, ErrInvalidDirection)
	}
	if panel == nil {
		return false, fmt.Errorf("dock at %s: panel is required", target)
	}
	if panel.ID == "" {
		panel.ID = entity.NewPanelID()
	}

	if tree.IsEmpty() {
		if !target.IsRoot() {
			log.Debug().Str("path", target.String()).Msg("dock target missing in empty tree")
			return false, nil
		}
		tree.Root = panel
		ArrangeTree(tree)
		return true, nil
	}

	log.Debug().
		Str("path", target.String()).
		Str("direction", string(dir)).
		Str("panel_id", panel.ID).
		Msg("docking panel")

	ok, err := dock(tree, target, dir, panel, index)
	if err != nil || !ok {
		return ok, err
	}
	ArrangeTree(tree)
	return true, nil
}

func dock(tree *entity.Tree, at entity.Path, dir entity.Direction, panel *entity.Panel, index int) (bool, error) {
	node, ok := tree.Resolve(at)
	if !ok {
		return false, nil
	}

	switch v := node.(type) {
	case *entity.Panel:
		// Nothing nests inside a stack, so a panel in a stack docks through
		// its stack.
		if parent, _ := tree.ParentOf(at); isStack(parent) {
			return dock(tree, at.Parent(), dir, panel, NoIndex)
		}
		if dir == entity.DockStack {
			stack := &entity.Stack{FlexGrow: v.FlexGrow, Panels: []*entity.Panel{v, panel}}
			v.FlexGrow = 1
			panel.FlexGrow = 1
			if _, err := tree.Assign(at, stack); err != nil {
				return false, err
			}
			return true, nil
		}
		return wrapOrDelegate(tree, at, v, dir, panel)

	case *entity.Stack:
		if dir == entity.DockStack {
			v.Panels = append(v.Panels, panel)
			return true, nil
		}
		return wrapOrDelegate(tree, at, v, dir, panel)

	case *entity.Split:
		if dir == entity.DockStack {
			if len(v.Children) == 0 {
				return false, nil
			}
			return dock(tree, at.Child(0), dir, panel, NoIndex)
		}
		if dir.Axis() == v.Axis {
			pos := len(v.Children)
			switch {
			case index < 0 && dir.Before():
				pos = 0
			case index >= 0 && dir.Before():
				pos = index
			case index >= 0:
				pos = index + 1
			}
			v.Children = insertAt(v.Children, pos, panel)
			return true, nil
		}
		return wrapOrDelegate(tree, at, v, dir, panel)
	}

	return false, fmt.Errorf("dock at %s: %w", at, entity.ErrUnknownNodeType)
}

// wrapOrDelegate splices panel next to the node at `at` when its parent is a
// split on the direction's axis, and otherwise replaces the node with a new
// two-child split of that axis.
func wrapOrDelegate(tree *entity.Tree, at entity.Path, node entity.Node, dir entity.Direction, panel *entity.Panel) (bool, error) {
	if parent, ok := tree.ParentOf(at); ok {
		if split, isSplit := parent.(*entity.Split); isSplit && split.Axis == dir.Axis() {
			pos := at.Index()
			if !dir.Before() {
				pos++
			}
			split.Children = insertAt(split.Children, pos, panel)
			return true, nil
		}
	}

	wrap := &entity.Split{Axis: dir.Axis(), FlexGrow: rawGrow(node)}
	setRawGrow(node, 1)
	panel.FlexGrow = 1
	if dir.Before() {
		wrap.Children = []entity.Node{panel, node}
	} else {
		wrap.Children = []entity.Node{node, panel}
	}
	if _, err := tree.Assign(at, wrap); err != nil {
		setRawGrow(node, wrap.FlexGrow)
		return false, err
	}
	return true, nil
}

func insertAt(children []entity.Node, pos int, n entity.Node) []entity.Node {
	if pos < 0 {
		pos = 0
	}
	if pos > len(children) {
		pos = len(children)
	}
	children = append(children, nil)
	copy(children[pos+1:], children[pos:])
	children[pos] = n
	return children
}

func isStack(n entity.Node) bool {
	s, ok := n.(*entity.Stack)
	return ok && s != nil
}
