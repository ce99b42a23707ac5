package usecase

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockpane/internal/domain/entity"
)

func removed(p *entity.Panel) *entity.Panel {
	p.MarkRemoved()
	return p
}

func TestArrange_CollapseLaw(t *testing.T) {
	tests := []struct {
		name string
		root entity.Node
		want string
	}{
		{
			name: "panel stays",
			root: pn("A"),
			want: "A",
		},
		{
			name: "removed panel vanishes",
			root: removed(pn("A")),
			want: "<nil>",
		},
		{
			name: "row with one survivor becomes the survivor",
			root: entity.NewRow(pn("A"), removed(pn("B"))),
			want: "A",
		},
		{
			name: "nil children are dropped",
			root: entity.NewRow(nil, pn("A"), nil, pn("B")),
			want: "row[A,B]",
		},
		{
			name: "single panel stack becomes the panel",
			root: stack(pn("A")),
			want: "A",
		},
		{
			name: "empty composites vanish entirely",
			root: entity.NewRow(entity.NewColumn(), stack(), pn("A"), pn("B")),
			want: "row[A,B]",
		},
		{
			name: "collapse cascades upward",
			root: entity.NewRow(entity.NewColumn(removed(pn("A"))), stack(pn("B"), pn("C"))),
			want: "stack[B,C]",
		},
		{
			name: "flattening is replacement not merge",
			root: entity.NewRow(entity.NewColumn(entity.NewRow(pn("A"), pn("B")))),
			want: "row[A,B]",
		},
		{
			name: "everything removed",
			root: entity.NewColumn(removed(pn("A")), stack(removed(pn("B")))),
			want: "<nil>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shape(Arrange(tt.root)))
		})
	}
}

func TestArrange_Idempotent(t *testing.T) {
	build := func() *entity.Tree {
		return entity.NewTree(entity.NewRow(
			entity.NewColumn(pn("A"), removed(pn("B")), stack(pn("C"), pn("D"))),
			stack(pn("E"), nil),
			entity.NewColumn(),
		))
	}

	once := build()
	ArrangeTree(once)
	first := entity.SnapshotTree(once)

	ArrangeTree(once)
	second := entity.SnapshotTree(once)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("arrange is not idempotent (-first +second):\n%s", diff)
	}
	assert.Equal(t, "row[column[A,stack[C,D]],E]", treeShape(once))
}

func TestArrange_SurvivorInheritsWeight(t *testing.T) {
	a := pn("A")
	a.FlexGrow = 3
	col := entity.NewColumn(a, removed(pn("B")))
	col.FlexGrow = 2
	other := pn("C")

	root := Arrange(entity.NewRow(col, other))

	split, ok := root.(*entity.Split)
	require.True(t, ok)
	assert.Same(t, a, split.Children[0])
	assert.Equal(t, 2.0, a.FlexGrow)
	assert.Equal(t, 1.0, other.Weight())
}

func TestArrange_CompositeWeightsSurvive(t *testing.T) {
	col := entity.NewColumn(pn("A"), pn("B"))
	col.FlexGrow = 1.4
	st := stack(pn("C"), pn("D"))
	st.FlexGrow = 0.6

	root := Arrange(entity.NewRow(col, nil, st))

	split := root.(*entity.Split)
	assert.Equal(t, 1.4, split.Children[0].Weight())
	assert.Equal(t, 0.6, split.Children[1].Weight())
}

func TestReindex_PathsAndSingleActive(t *testing.T) {
	b := pn("B")
	b.Active = true
	c := pn("C")
	c.Active = true
	loose := pn("L")
	loose.Active = true

	tree := entity.NewTree(entity.NewRow(
		stack(pn("A"), b, c),
		stack(pn("D"), pn("E")),
		loose,
	))
	ArrangeTree(tree)

	assert.Empty(t, badStacks(tree))

	first := tree.Root.(*entity.Split).Children[0].(*entity.Stack)
	assert.Same(t, b, first.ActivePanel(), "first active child wins")
	assert.False(t, c.Active, "extra active flags are cleared")

	second := tree.Root.(*entity.Split).Children[1].(*entity.Stack)
	assert.Equal(t, 0, second.ActiveIndex(), "defaults to the first child")

	assert.False(t, loose.Active, "panels outside stacks carry no active flag")

	assert.Equal(t, entity.Path{0, 1}, b.Path)
	assert.Equal(t, entity.Path{1}, second.Path)
	assert.Equal(t, entity.Path{2}, loose.Path)
	for _, p := range tree.AllPanels() {
		n, ok := tree.Resolve(p.Path)
		require.True(t, ok)
		assert.Same(t, p, n)
	}
}

func TestVisiblePanels(t *testing.T) {
	tree := entity.NewTree(entity.NewRow(
		entity.NewColumn(pn("A"), pn("B")),
		stack(pn("C"), pn("D")),
	))
	ArrangeTree(tree)

	var names []string
	for _, p := range VisiblePanels(tree) {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)
	assert.Empty(t, VisiblePanels(entity.NewTree(nil)))
}
