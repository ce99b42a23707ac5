package usecase

import (
	"strings"

	"github.com/bnema/dockpane/internal/domain/entity"
)

// pn builds a panel whose ID and name are both name, so shapes stay readable.
func pn(name string) *entity.Panel {
	return &entity.Panel{ID: name, Name: name, ModuleName: "content"}
}

func stack(panels ...*entity.Panel) *entity.Stack {
	return &entity.Stack{Panels: panels}
}

// shape renders a subtree as row[column[A,B],stack[C,D]].
func shape(n entity.Node) string {
	var b strings.Builder
	writeShape(&b, n)
	return b.String()
}

func writeShape(b *strings.Builder, n entity.Node) {
	switch v := n.(type) {
	case nil:
		b.WriteString("<nil>")
	case *entity.Panel:
		if v == nil {
			b.WriteString("<nil>")
			return
		}
		b.WriteString(v.Name)
	case *entity.Stack:
		b.WriteString("stack[")
		for i, p := range v.Panels {
			if i > 0 {
				b.WriteByte(',')
			}
			writeShape(b, p)
		}
		b.WriteByte(']')
	case *entity.Split:
		b.WriteString(v.Axis.String())
		b.WriteByte('[')
		for i, c := range v.Children {
			if i > 0 {
				b.WriteByte(',')
			}
			writeShape(b, c)
		}
		b.WriteByte(']')
	}
}

func treeShape(t *entity.Tree) string {
	if t.IsEmpty() {
		return "<empty>"
	}
	return shape(t.Root)
}

// badStacks returns the paths of stacks that do not have exactly one
// active panel.
func badStacks(t *entity.Tree) []string {
	var bad []string
	if t.IsEmpty() {
		return nil
	}
	entity.Walk(t.Root, func(n entity.Node) bool {
		s, ok := n.(*entity.Stack)
		if !ok {
			return true
		}
		active := 0
		for _, p := range s.Panels {
			if p.Active {
				active++
			}
		}
		if active != 1 {
			bad = append(bad, s.Path.String())
		}
		return false
	})
	return bad
}
