package render

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockpane/internal/application/usecase"
	"github.com/bnema/dockpane/internal/domain/entity"
)

func panel(name string) *entity.Panel {
	return &entity.Panel{ID: name, Name: name}
}

func newStack(panels ...*entity.Panel) *entity.Stack {
	return &entity.Stack{Panels: panels}
}

func arranged(root entity.Node) *entity.Tree {
	tree := entity.NewTree(root)
	usecase.ArrangeTree(tree)
	return tree
}

func frameLines(t *testing.T, frame string, width, height int) []string {
	t.Helper()
	lines := strings.Split(frame, "\n")
	require.Len(t, lines, height)
	for i, line := range lines {
		assert.Equal(t, width, lipgloss.Width(line), "line %d: %q", i, line)
	}
	return lines
}

func TestDistribute(t *testing.T) {
	tests := []struct {
		total   int
		weights []float64
		want    []int
	}{
		{total: 20, weights: []float64{1, 1}, want: []int{10, 10}},
		{total: 9, weights: []float64{1, 1}, want: []int{5, 4}},
		{total: 10, weights: []float64{2, 1, 1}, want: []int{5, 3, 2}},
		{total: 10, weights: []float64{1.2, 0.8}, want: []int{6, 4}},
		{total: 3, weights: []float64{0, 0, 0}, want: []int{1, 1, 1}},
		{total: 0, weights: []float64{1, 1}, want: []int{0, 0}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.total, tt.weights), func(t *testing.T) {
			got := distribute(tt.total, tt.weights)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_RowGeometry(t *testing.T) {
	r := New(Options{Width: 21, Height: 5})
	tree := arranged(entity.NewRow(panel("A"), panel("B")))
	require.NoError(t, r.Render(context.Background(), tree))

	frame, layout := r.Frame()
	frameLines(t, frame, 21, 5)

	a, ok := layout.PanelBox("A")
	require.True(t, ok)
	assert.Equal(t, entity.Rect{X: 0, Y: 0, W: 10, H: 5}, a.Rect)
	b, ok := layout.PanelBox("B")
	require.True(t, ok)
	assert.Equal(t, entity.Rect{X: 11, Y: 0, W: 10, H: 5}, b.Rect)

	h, ok := layout.HandleAt(Cell(10, 2))
	require.True(t, ok)
	assert.Equal(t, "row/panels[0]/1", h.Handle.String())
	assert.Equal(t, usecase.Extents{Prev: 10, Next: 10, Handle: 1}, h.Extents)
}

func TestRender_ColumnUsesWeights(t *testing.T) {
	top, bottom := panel("top"), panel("bottom")
	top.FlexGrow = 3
	r := New(Options{Width: 10, Height: 9})
	require.NoError(t, r.Render(context.Background(), arranged(entity.NewColumn(top, bottom))))

	frame, layout := r.Frame()
	lines := frameLines(t, frame, 10, 9)
	assert.Equal(t, strings.Repeat("─", 10), lines[6])

	box, _ := layout.PanelBox("top")
	assert.Equal(t, 6.0, box.Rect.H)
	box, _ = layout.PanelBox("bottom")
	assert.Equal(t, 2.0, box.Rect.H)
}

func TestRender_StackTabs(t *testing.T) {
	r := New(Options{Width: 21, Height: 6})
	tree := arranged(entity.NewRow(panel("A"), newStack(panel("B"), panel("C"))))
	require.NoError(t, r.Render(context.Background(), tree))

	frame, layout := r.Frame()
	lines := frameLines(t, frame, 21, 6)
	assert.Contains(t, lines[0], " B X  C X ")

	tab, ok := layout.TabAt(Cell(12, 0))
	require.True(t, ok)
	assert.Equal(t, "B", tab.PanelID)
	assert.True(t, tab.Active)
	assert.Equal(t, entity.Path{1, 0}, tab.PanelPath)

	_, ok = layout.CloseAt(Cell(12, 0))
	assert.False(t, ok, "the name is not the close icon")
	closed, ok := layout.CloseAt(Cell(14, 0))
	require.True(t, ok)
	assert.Equal(t, "B", closed.PanelID)

	_, ok = layout.PanelBox("C")
	assert.False(t, ok, "inactive tabs are not mounted")
	b, ok := layout.PanelBox("B")
	require.True(t, ok)
	assert.Equal(t, entity.Rect{X: 11, Y: 1, W: 10, H: 5}, b.Rect)
}

func TestLayout_DropTargetAt(t *testing.T) {
	r := New(Options{Width: 21, Height: 6})
	tree := arranged(entity.NewRow(panel("A"), newStack(panel("B"), panel("C"))))
	require.NoError(t, r.Render(context.Background(), tree))
	_, layout := r.Frame()

	target, ok := layout.DropTargetAt(Cell(15, 0))
	require.True(t, ok)
	assert.True(t, target.OverTab)
	assert.Equal(t, entity.Path{1}, target.Path)

	target, ok = layout.DropTargetAt(Cell(15, 3))
	require.True(t, ok)
	assert.False(t, target.OverTab)
	assert.Equal(t, entity.Path{1}, target.Path)
	assert.Equal(t, entity.Rect{X: 11, Y: 0, W: 10, H: 6}, target.Rect)

	target, ok = layout.DropTargetAt(Cell(3, 3))
	require.True(t, ok)
	assert.Equal(t, entity.Path{0}, target.Path)

	_, ok = layout.DropTargetAt(Cell(10, 3))
	assert.False(t, ok, "splitters are not drop targets")
	_, ok = layout.DropTargetAt(Cell(30, 3))
	assert.False(t, ok)
}

func TestAlignTabs_ScrollsToActive(t *testing.T) {
	var frames int
	r := New(Options{Width: 25, Height: 4, OnFrame: func(string, *Layout) { frames++ }})

	panels := make([]*entity.Panel, 5)
	for i := range panels {
		panels[i] = panel(fmt.Sprintf("Panel%d", i+1))
	}
	panels[4].Active = true
	tree := arranged(newStack(panels...))
	require.NoError(t, r.Render(context.Background(), tree))

	_, layout := r.Frame()
	require.NotNil(t, layout.Root.More)
	assert.Equal(t, []int{0, 1}, tabIndices(layout))

	_, ok := layout.MoreAt(Cell(22, 0))
	assert.True(t, ok)

	r.AlignTabs(context.Background())
	frame, layout := r.Frame()
	assert.Equal(t, []int{3, 4}, tabIndices(layout))
	assert.Contains(t, frame, "Panel5")
	assert.Equal(t, 2, frames)

	require.NoError(t, r.Render(context.Background(), tree))
	_, layout = r.Frame()
	assert.Equal(t, []int{3, 4}, tabIndices(layout), "the offset survives redraws")

	r.AlignTabs(context.Background())
	assert.Equal(t, 3, frames, "nothing to realign")
}

func tabIndices(l *Layout) []int {
	var out []int
	for _, tab := range l.Root.Tabs {
		out = append(out, tab.Index)
	}
	return out
}

func TestSurface_SetContentRedraws(t *testing.T) {
	var last string
	r := New(Options{Width: 20, Height: 4, OnFrame: func(frame string, _ *Layout) { last = frame }})
	b, c := panel("B"), panel("C")
	tree := arranged(entity.NewRow(panel("A"), newStack(b, c)))
	require.NoError(t, r.Render(context.Background(), tree))

	r.Surface(tree.Root.(*entity.Split).Children[0].(*entity.Panel)).SetContent("hello")
	assert.Contains(t, last, "hello")

	before := last
	r.Surface(c).SetContent("hidden")
	assert.Equal(t, before, last, "content of an unmounted panel waits for its turn")
	assert.Equal(t, "hidden", r.Content("C"))

	c.MarkRemoved()
	usecase.ArrangeTree(tree)
	require.NoError(t, r.Render(context.Background(), tree))
	assert.Empty(t, r.Content("C"), "content of removed panels is dropped")
	assert.Equal(t, "hello", r.Content("A"))
}

func TestRender_EmptyAndZeroSize(t *testing.T) {
	r := New(Options{Width: 30, Height: 5})
	require.NoError(t, r.Render(context.Background(), entity.NewTree(nil)))
	frame, layout := r.Frame()
	assert.Contains(t, frame, emptyMessage)
	assert.Nil(t, layout.Root)

	r.Resize(0, 0)
	require.NoError(t, r.Render(context.Background(), arranged(panel("A"))))
	frame, _ = r.Frame()
	assert.Empty(t, frame)
}

func TestNewTheme(t *testing.T) {
	th, ok := NewTheme("light")
	assert.True(t, ok)
	assert.Equal(t, "light", th.Name)

	th, ok = NewTheme("Dark")
	assert.True(t, ok)
	assert.Equal(t, "default", th.Name)

	th, ok = NewTheme("neon")
	assert.False(t, ok)
	assert.Equal(t, "default", th.Name)
}
