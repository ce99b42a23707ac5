package entity

import "fmt"

// Tree holds the root of a panel tree. A nil Root is an empty layout.
type Tree struct {
	Root Node
}

// NewTree creates a tree around root.
func NewTree(root Node) *Tree {
	return &Tree{Root: root}
}

// IsEmpty reports whether the tree has no root.
func (t *Tree) IsEmpty() bool {
	return t == nil || isNil(t.Root)
}

// PanelCount returns the number of panels in the tree.
func (t *Tree) PanelCount() int {
	if t.IsEmpty() {
		return 0
	}
	return len(Panels(t.Root))
}

// FindPanel searches for a panel by ID.
func (t *Tree) FindPanel(id string) *Panel {
	if t.IsEmpty() {
		return nil
	}
	return FindPanel(t.Root, id)
}

// AllPanels returns every panel in document order.
func (t *Tree) AllPanels() []*Panel {
	if t.IsEmpty() {
		return nil
	}
	return Panels(t.Root)
}

// Resolve walks path from the root. A malformed or dangling path returns
// false; it never panics.
func (t *Tree) Resolve(path Path) (Node, bool) {
	if t.IsEmpty() {
		return nil, false
	}
	current := t.Root
	for _, idx := range path {
		next, ok := childAt(current, idx)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Assign overwrites the slot at path with node and returns node. A nil node
// clears the slot so the next arrange pass prunes it. Writing anything but a
// panel into a stack slot fails with ErrStructure and leaves the tree
// unchanged.
func (t *Tree) Assign(path Path, node Node) (Node, error) {
	if path.IsRoot() {
		t.Root = node
		return node, nil
	}

	parent, ok := t.Resolve(path.Parent())
	if !ok {
		return nil, fmt.Errorf("assign %s: %w", path, ErrPathNotFound)
	}
	idx := path.Index()

	switch p := parent.(type) {
	case *Stack:
		if idx < 0 || idx >= len(p.Panels) {
			return nil, fmt.Errorf("assign %s: %w", path, ErrPathNotFound)
		}
		if isNil(node) {
			p.Panels[idx] = nil
			return nil, nil
		}
		panel, isPanel := node.(*Panel)
		if !isPanel {
			return nil, fmt.Errorf("assign %s: %s under stack: %w", path, node.Kind(), ErrStructure)
		}
		p.Panels[idx] = panel
		return panel, nil
	case *Split:
		if idx < 0 || idx >= len(p.Children) {
			return nil, fmt.Errorf("assign %s: %w", path, ErrPathNotFound)
		}
		if isNil(node) {
			p.Children[idx] = nil
			return nil, nil
		}
		p.Children[idx] = node
		return node, nil
	default:
		return nil, fmt.Errorf("assign %s: parent is a panel: %w", path, ErrPathNotFound)
	}
}

// ParentOf resolves the parent of the node at path. The root has no parent.
func (t *Tree) ParentOf(path Path) (Node, bool) {
	if path.IsRoot() {
		return nil, false
	}
	return t.Resolve(path.Parent())
}

func childAt(n Node, idx int) (Node, bool) {
	switch v := n.(type) {
	case *Stack:
		if v == nil || idx < 0 || idx >= len(v.Panels) || v.Panels[idx] == nil {
			return nil, false
		}
		return v.Panels[idx], true
	case *Split:
		if v == nil || idx < 0 || idx >= len(v.Children) || isNil(v.Children[idx]) {
			return nil, false
		}
		return v.Children[idx], true
	default:
		return nil, false
	}
}
