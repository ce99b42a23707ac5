// Package entity contains the panel-tree domain model.
// These entities are pure Go types with no infrastructure dependencies.
package entity

import "github.com/google/uuid"

// NodeKind discriminates the panel-tree tagged union.
type NodeKind int

const (
	KindPanel  NodeKind = iota // Leaf hosting a module
	KindStack                  // Tabbed group of panels
	KindRow                    // Horizontal split
	KindColumn                 // Vertical split
)

// String returns the wire name of the kind.
func (k NodeKind) String() string {
	switch k {
	case KindPanel:
		return "panel"
	case KindStack:
		return "stack"
	case KindRow:
		return "row"
	case KindColumn:
		return "column"
	default:
		return "unknown"
	}
}

// Axis is the layout axis of a split container.
type Axis int

const (
	AxisRow    Axis = iota // Children laid out left to right
	AxisColumn             // Children laid out top to bottom
)

// String returns "row" or "column".
func (a Axis) String() string {
	if a == AxisColumn {
		return "column"
	}
	return "row"
}

// Kind returns the node kind of a split on this axis.
func (a Axis) Kind() NodeKind {
	if a == AxisColumn {
		return KindColumn
	}
	return KindRow
}

// Node is a node in the panel tree. It is implemented by *Panel, *Stack and
// *Split only.
type Node interface {
	Kind() NodeKind
	Weight() float64
	SetWeight(w float64)
	NodePath() Path
	setPath(p Path)
	isNode()
}

// Grow returns the effective flex weight of a node. Unset weights read as 1.
func Grow(n Node) float64 {
	if n == nil {
		return 0
	}
	return n.Weight()
}

// NewPanelID returns a fresh panel identifier.
func NewPanelID() string {
	return uuid.NewString()
}

// Panel is a leaf content unit hosting a module.
type Panel struct {
	ID          string
	Name        string
	ModuleName  string
	ModuleState map[string]any
	Active      bool
	Built       bool
	FlexGrow    float64
	Path        Path

	shown   bool
	removed bool
}

// NewPanel creates a panel with a fresh ID.
func NewPanel(name, moduleName string) *Panel {
	return &Panel{
		ID:         NewPanelID(),
		Name:       name,
		ModuleName: moduleName,
	}
}

func (p *Panel) Kind() NodeKind { return KindPanel }
func (p *Panel) NodePath() Path { return p.Path }
func (p *Panel) setPath(path Path) {
	p.Path = path
}
func (*Panel) isNode() {}

// Weight returns the flex weight, defaulting to 1.
func (p *Panel) Weight() float64 { return weightOr1(p.FlexGrow) }

// SetWeight sets the flex weight.
func (p *Panel) SetWeight(w float64) { p.FlexGrow = w }

// Shown reports whether the module's active hook has run since the last
// deactivation.
func (p *Panel) Shown() bool { return p.shown }

// SetShown records module visibility. Used by the lifecycle controller.
func (p *Panel) SetShown(v bool) { p.shown = v }

// Removed reports whether the panel has been marked for removal.
func (p *Panel) Removed() bool { return p.removed }

// MarkRemoved flags the panel so the next arrange pass drops it.
func (p *Panel) MarkRemoved() { p.removed = true }

// Clone returns a shallow copy suitable for moving the panel elsewhere in the
// tree. Module state is shared; the removal flag is reset.
func (p *Panel) Clone() *Panel {
	c := *p
	c.removed = false
	c.Path = nil
	return &c
}

// Stack is a tabbed group of panels. Exactly one child is active once the
// tree has been arranged.
type Stack struct {
	Panels   []*Panel
	FlexGrow float64
	Path     Path
}

func (s *Stack) Kind() NodeKind { return KindStack }
func (s *Stack) NodePath() Path { return s.Path }
func (s *Stack) setPath(path Path) {
	s.Path = path
}
func (*Stack) isNode() {}

// Weight returns the flex weight, defaulting to 1.
func (s *Stack) Weight() float64 { return weightOr1(s.FlexGrow) }

// SetWeight sets the flex weight.
func (s *Stack) SetWeight(w float64) { s.FlexGrow = w }

// ActiveIndex returns the index of the first active panel, or -1.
func (s *Stack) ActiveIndex() int {
	for i, p := range s.Panels {
		if p != nil && p.Active {
			return i
		}
	}
	return -1
}

// ActivePanel returns the visible panel of the stack.
func (s *Stack) ActivePanel() *Panel {
	if i := s.ActiveIndex(); i >= 0 {
		return s.Panels[i]
	}
	return nil
}

// IndexOf returns the index of p in the stack, or -1.
func (s *Stack) IndexOf(p *Panel) int {
	for i, child := range s.Panels {
		if child == p {
			return i
		}
	}
	return -1
}

// Split is a row or column container.
type Split struct {
	Axis     Axis
	Children []Node
	FlexGrow float64
	Path     Path
}

// NewRow creates a row split.
func NewRow(children ...Node) *Split {
	return &Split{Axis: AxisRow, Children: children}
}

// NewColumn creates a column split.
func NewColumn(children ...Node) *Split {
	return &Split{Axis: AxisColumn, Children: children}
}

func (s *Split) Kind() NodeKind { return s.Axis.Kind() }
func (s *Split) NodePath() Path { return s.Path }
func (s *Split) setPath(path Path) {
	s.Path = path
}
func (*Split) isNode() {}

// Weight returns the flex weight, defaulting to 1.
func (s *Split) Weight() float64 { return weightOr1(s.FlexGrow) }

// SetWeight sets the flex weight.
func (s *Split) SetWeight(w float64) { s.FlexGrow = w }

// IndexOf returns the index of n among the split's children, or -1.
func (s *Split) IndexOf(n Node) int {
	for i, child := range s.Children {
		if child == n {
			return i
		}
	}
	return -1
}

func weightOr1(w float64) float64 {
	if w <= 0 {
		return 1
	}
	return w
}

// Walk traverses the tree calling fn for each node. Returns early if fn
// returns false for a node (its children are skipped).
func Walk(n Node, fn func(Node) bool) {
	if isNil(n) {
		return
	}
	if !fn(n) {
		return
	}
	switch v := n.(type) {
	case *Stack:
		for _, p := range v.Panels {
			if p != nil {
				Walk(p, fn)
			}
		}
	case *Split:
		for _, child := range v.Children {
			Walk(child, fn)
		}
	}
}

// Panels returns all panels of the subtree in document order.
func Panels(n Node) []*Panel {
	var panels []*Panel
	Walk(n, func(node Node) bool {
		if p, ok := node.(*Panel); ok {
			panels = append(panels, p)
		}
		return true
	})
	return panels
}

// FindPanel searches the subtree for a panel with the given ID.
func FindPanel(n Node, id string) *Panel {
	var found *Panel
	Walk(n, func(node Node) bool {
		if found != nil {
			return false
		}
		if p, ok := node.(*Panel); ok && p.ID == id {
			found = p
			return false
		}
		return true
	})
	return found
}

// isNil reports whether n is nil or a typed nil pointer.
func isNil(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Panel:
		return v == nil
	case *Stack:
		return v == nil
	case *Split:
		return v == nil
	}
	return false
}

// IsNil reports whether n is nil or a typed nil pointer.
func IsNil(n Node) bool { return isNil(n) }
