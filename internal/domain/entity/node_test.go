package entity

import "testing"

func panel(name string) *Panel {
	return &Panel{ID: name, Name: name}
}

func TestWeightDefaultsToOne(t *testing.T) {
	p := panel("p")
	if got := p.Weight(); got != 1 {
		t.Fatalf("Weight() = %v, want 1", got)
	}
	p.SetWeight(2.5)
	if got := Grow(p); got != 2.5 {
		t.Fatalf("Grow() = %v, want 2.5", got)
	}
	if got := Grow(nil); got != 0 {
		t.Fatalf("Grow(nil) = %v, want 0", got)
	}
}

func TestSplitKindFollowsAxis(t *testing.T) {
	if k := NewRow().Kind(); k != KindRow {
		t.Fatalf("row kind = %s", k)
	}
	if k := NewColumn().Kind(); k != KindColumn {
		t.Fatalf("column kind = %s", k)
	}
}

func TestFindPanelAndPanels(t *testing.T) {
	root := NewRow(
		NewColumn(panel("A"), panel("B")),
		&Stack{Panels: []*Panel{panel("C")}},
	)

	got := Panels(root)
	if len(got) != 3 || got[0].ID != "A" || got[2].ID != "C" {
		t.Fatalf("Panels() returned %v", got)
	}
	if p := FindPanel(root, "B"); p == nil || p.Name != "B" {
		t.Fatalf("FindPanel(B) = %v", p)
	}
	if p := FindPanel(root, "missing"); p != nil {
		t.Fatalf("FindPanel(missing) = %v, want nil", p)
	}
}

func TestPanelCloneResetsRemoval(t *testing.T) {
	p := panel("A")
	p.Built = true
	p.MarkRemoved()

	c := p.Clone()
	if c.Removed() {
		t.Fatalf("clone should not carry the removal flag")
	}
	if !c.Built || c.ID != "A" {
		t.Fatalf("clone lost identity: %+v", c)
	}
}
