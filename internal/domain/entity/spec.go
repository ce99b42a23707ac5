package entity

import (
	"fmt"
	"maps"
)

// NodeSpec is the declarative form of a panel tree, as written in layout
// files and passed to SetPanels.
type NodeSpec struct {
	Type        string         `json:"type" yaml:"type" mapstructure:"type" jsonschema:"enum=panel,enum=stack,enum=row,enum=column"`
	ID          string         `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
	Name        string         `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	ModuleName  string         `json:"module_name,omitempty" yaml:"module_name,omitempty" mapstructure:"module_name"`
	ModuleState map[string]any `json:"module_state,omitempty" yaml:"module_state,omitempty" mapstructure:"module_state"`
	Active      bool           `json:"active,omitempty" yaml:"active,omitempty" mapstructure:"active"`
	FlexGrow    float64        `json:"flex_grow,omitempty" yaml:"flex_grow,omitempty" mapstructure:"flex_grow"`
	Panels      []NodeSpec     `json:"panels,omitempty" yaml:"panels,omitempty" mapstructure:"panels"`
}

// BuildNode converts a spec into a node. Panels without an ID get a fresh
// one. A stack holding anything but panels fails with ErrStructure.
func BuildNode(spec NodeSpec) (Node, error) {
	return buildNode(spec, nil)
}

func buildNode(spec NodeSpec, at Path) (Node, error) {
	switch spec.Type {
	case "panel":
		if len(spec.Panels) > 0 {
			return nil, fmt.Errorf("%s: panel with children: %w", at, ErrStructure)
		}
		id := spec.ID
		if id == "" {
			id = NewPanelID()
		}
		return &Panel{
			ID:          id,
			Name:        spec.Name,
			ModuleName:  spec.ModuleName,
			ModuleState: maps.Clone(spec.ModuleState),
			Active:      spec.Active,
			FlexGrow:    spec.FlexGrow,
		}, nil
	case "stack":
		stack := &Stack{FlexGrow: spec.FlexGrow, Panels: make([]*Panel, 0, len(spec.Panels))}
		for i, child := range spec.Panels {
			if child.Type != "panel" {
				return nil, fmt.Errorf("%s: %q under stack: %w", at.Child(i), child.Type, ErrStructure)
			}
			n, err := buildNode(child, at.Child(i))
			if err != nil {
				return nil, err
			}
			stack.Panels = append(stack.Panels, n.(*Panel))
		}
		return stack, nil
	case "row", "column":
		split := &Split{Axis: AxisRow, FlexGrow: spec.FlexGrow, Children: make([]Node, 0, len(spec.Panels))}
		if spec.Type == "column" {
			split.Axis = AxisColumn
		}
		for i, child := range spec.Panels {
			n, err := buildNode(child, at.Child(i))
			if err != nil {
				return nil, err
			}
			split.Children = append(split.Children, n)
		}
		return split, nil
	default:
		return nil, fmt.Errorf("%s: %q: %w", at, spec.Type, ErrUnknownNodeType)
	}
}

// BuildTree builds a tree from the historical one-element root list. Only
// the first element is used; an empty list yields an empty tree.
func BuildTree(specs []NodeSpec) (*Tree, error) {
	if len(specs) == 0 {
		return NewTree(nil), nil
	}
	root, err := BuildNode(specs[0])
	if err != nil {
		return nil, err
	}
	return NewTree(root), nil
}

// SnapshotNode converts a node back to its declarative form.
func SnapshotNode(n Node) *NodeSpec {
	switch v := n.(type) {
	case *Panel:
		if v == nil {
			return nil
		}
		return &NodeSpec{
			Type:        "panel",
			ID:          v.ID,
			Name:        v.Name,
			ModuleName:  v.ModuleName,
			ModuleState: maps.Clone(v.ModuleState),
			Active:      v.Active,
			FlexGrow:    v.FlexGrow,
		}
	case *Stack:
		if v == nil {
			return nil
		}
		spec := &NodeSpec{Type: "stack", FlexGrow: v.FlexGrow}
		for _, p := range v.Panels {
			if child := SnapshotNode(p); child != nil {
				spec.Panels = append(spec.Panels, *child)
			}
		}
		return spec
	case *Split:
		if v == nil {
			return nil
		}
		spec := &NodeSpec{Type: v.Axis.String(), FlexGrow: v.FlexGrow}
		for _, c := range v.Children {
			if child := SnapshotNode(c); child != nil {
				spec.Panels = append(spec.Panels, *child)
			}
		}
		return spec
	default:
		return nil
	}
}

// SnapshotTree returns the historical one-element root list.
func SnapshotTree(t *Tree) []NodeSpec {
	if t.IsEmpty() {
		return []NodeSpec{}
	}
	return []NodeSpec{*SnapshotNode(t.Root)}
}
