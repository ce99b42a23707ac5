package render

import (
	"cmp"
	"math"
	"slices"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dockpane/internal/application/usecase"
	"github.com/bnema/dockpane/internal/domain/entity"
)

// Layout is the geometry of one rendered frame in terminal cells. It is
// immutable once published.
type Layout struct {
	Width, Height int
	Root          *Box
}

// Box is the placement of one node. A stack box holds its tab bar and, as
// its only child, the box of its active panel.
type Box struct {
	Path     entity.Path
	Kind     entity.NodeKind
	PanelID  string
	Rect     entity.Rect
	Children []*Box
	Tabs     []TabBox
	More     *MoreBox
	Handles  []HandleBox

	cells  cellRect
	labels []tabLabel
	offset int
	stack  *entity.Stack // identity key for tab offsets, never dereferenced
}

// TabBox is one visible tab label.
type TabBox struct {
	StackPath entity.Path
	PanelPath entity.Path
	PanelID   string
	Index     int
	Label     string
	Active    bool
	Rect      entity.Rect
	// Close is the close icon inside the label; zero when clipped away.
	Close   entity.Rect
	Clipped bool
}

// MoreBox is the overflow button of a stack whose tabs do not fit.
type MoreBox struct {
	StackPath entity.Path
	Rect      entity.Rect

	label string
}

// HandleBox is a splitter between two split children.
type HandleBox struct {
	Handle  usecase.ResizeHandle
	Rect    entity.Rect
	Extents usecase.Extents
}

type tabLabel struct {
	path       entity.Path
	id         string
	text       string
	width      int
	closeAt    int
	closeWidth int
	active     bool
}

type cellRect struct {
	x, y, w, h int
}

func (c cellRect) rect() entity.Rect {
	return entity.Rect{X: float64(c.x), Y: float64(c.y), W: float64(c.w), H: float64(c.h)}
}

// Cell returns the point at the centre of terminal cell (x, y).
func Cell(x, y int) entity.Point {
	return entity.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}

type layoutBuilder struct {
	icons   Icons
	offsets map[*entity.Stack]int
}

func buildLayout(tree *entity.Tree, width, height int, icons Icons, offsets map[*entity.Stack]int) *Layout {
	l := &Layout{Width: max(width, 0), Height: max(height, 0)}
	if tree == nil || tree.IsEmpty() {
		return l
	}
	b := layoutBuilder{icons: icons, offsets: offsets}
	l.Root = b.place(tree.Root, cellRect{w: l.Width, h: l.Height})
	return l
}

func (b layoutBuilder) place(n entity.Node, r cellRect) *Box {
	box := &Box{Path: n.NodePath(), Kind: n.Kind(), cells: r, Rect: r.rect()}

	switch v := n.(type) {
	case *entity.Panel:
		box.PanelID = v.ID
	case *entity.Stack:
		box.stack = v
		box.offset = b.offsets[v]
		for _, p := range v.Panels {
			box.labels = append(box.labels, newTabLabel(p, b.icons.Close))
		}
		box.layoutTabs(b.icons.More)
		if p := v.ActivePanel(); p != nil && r.h > 1 {
			box.Children = []*Box{b.place(p, cellRect{x: r.x, y: r.y + 1, w: r.w, h: r.h - 1})}
		}
	case *entity.Split:
		b.placeSplit(box, v, r)
	}
	return box
}

func (b layoutBuilder) placeSplit(box *Box, split *entity.Split, r cellRect) {
	n := len(split.Children)
	if n == 0 {
		return
	}
	along, pos := r.w, r.x
	if split.Axis == entity.AxisColumn {
		along, pos = r.h, r.y
	}
	handles := min(n-1, along)
	weights := make([]float64, n)
	for i, c := range split.Children {
		weights[i] = entity.Grow(c)
	}
	sizes := distribute(along-handles, weights)

	slot := func(at, size int) cellRect {
		if split.Axis == entity.AxisColumn {
			return cellRect{x: r.x, y: at, w: r.w, h: size}
		}
		return cellRect{x: at, y: r.y, w: size, h: r.h}
	}

	for i, c := range split.Children {
		if i > 0 {
			hsize := 0
			if i <= handles {
				hsize = 1
			}
			box.Handles = append(box.Handles, HandleBox{
				Handle: usecase.ResizeHandle{Axis: split.Axis, Parent: split.Path, Index: i},
				Rect:   slot(pos, hsize).rect(),
				Extents: usecase.Extents{
					Prev:   float64(sizes[i-1]),
					Next:   float64(sizes[i]),
					Handle: float64(hsize),
				},
			})
			pos += hsize
		}
		box.Children = append(box.Children, b.place(c, slot(pos, sizes[i])))
		pos += sizes[i]
	}
}

// distribute splits total cells proportionally to weights, handing the
// remainder to the largest fractional parts.
func distribute(total int, weights []float64) []int {
	sizes := make([]int, len(weights))
	if total <= 0 || len(weights) == 0 {
		return sizes
	}

	var sum float64
	for _, w := range weights {
		sum += max(w, 0)
	}
	type share struct {
		i    int
		frac float64
	}
	shares := make([]share, len(weights))
	rest := total
	for i, w := range weights {
		exact := float64(total) / float64(len(weights))
		if sum > 0 {
			exact = float64(total) * max(w, 0) / sum
		}
		sizes[i] = int(math.Floor(exact))
		rest -= sizes[i]
		shares[i] = share{i: i, frac: exact - float64(sizes[i])}
	}
	slices.SortStableFunc(shares, func(a, b share) int { return cmp.Compare(b.frac, a.frac) })
	for k := 0; k < rest; k++ {
		sizes[shares[k%len(shares)].i]++
	}
	return sizes
}

func newTabLabel(p *entity.Panel, closeIcon string) tabLabel {
	name := p.Name
	if name == "" {
		name = p.ID
	}
	text := " " + name + " " + closeIcon + " "
	return tabLabel{
		path:       p.Path,
		id:         p.ID,
		text:       text,
		width:      lipgloss.Width(text),
		closeAt:    lipgloss.Width(" " + name + " "),
		closeWidth: lipgloss.Width(closeIcon),
		active:     p.Active,
	}
}

// layoutTabs places the tab labels from the current offset. When they do
// not all fit, the right end of the bar holds the overflow button.
func (box *Box) layoutTabs(moreIcon string) {
	box.Tabs = nil
	box.More = nil
	bar := cellRect{x: box.cells.x, y: box.cells.y, w: box.cells.w, h: 1}
	if box.cells.h < 1 || len(box.labels) == 0 {
		return
	}

	total := 0
	for _, t := range box.labels {
		total += t.width
	}
	end := bar.x + bar.w
	if total > bar.w {
		label := " " + moreIcon + " "
		mw := min(lipgloss.Width(label), bar.w)
		end -= mw
		box.More = &MoreBox{
			StackPath: box.Path,
			Rect:      cellRect{x: end, y: bar.y, w: mw, h: 1}.rect(),
			label:     label,
		}
		box.offset = min(max(box.offset, 0), len(box.labels)-1)
	} else {
		box.offset = 0
	}

	x := bar.x
	for i := box.offset; i < len(box.labels) && x < end; i++ {
		t := box.labels[i]
		w, clipped := t.width, false
		if x+w > end {
			w, clipped = end-x, true
		}
		var closeRect entity.Rect
		if t.closeAt+t.closeWidth <= w {
			closeRect = cellRect{x: x + t.closeAt, y: bar.y, w: t.closeWidth, h: 1}.rect()
		}
		box.Tabs = append(box.Tabs, TabBox{
			StackPath: box.Path,
			PanelPath: t.path,
			PanelID:   t.id,
			Index:     i,
			Label:     t.text,
			Active:    t.active,
			Rect:      cellRect{x: x, y: bar.y, w: w, h: 1}.rect(),
			Close:     closeRect,
			Clipped:   clipped,
		})
		x += w
	}
}

// alignActiveTab scrolls the tab bar until the active tab is fully visible,
// or as far as it can. It reports whether the offset moved.
func (box *Box) alignActiveTab(moreIcon string) bool {
	active := slices.IndexFunc(box.labels, func(t tabLabel) bool { return t.active })
	if active < 0 {
		return false
	}

	moved := false
	for !box.tabFullyVisible(active) {
		switch {
		case active < box.offset:
			box.offset = active
		case box.offset < active:
			box.offset++
		default:
			return moved
		}
		moved = true
		box.layoutTabs(moreIcon)
	}
	return moved
}

func (box *Box) tabFullyVisible(index int) bool {
	for _, t := range box.Tabs {
		if t.Index == index {
			return !t.Clipped
		}
	}
	return false
}

func (box *Box) clone() *Box {
	c := *box
	c.Tabs = slices.Clone(box.Tabs)
	c.Handles = slices.Clone(box.Handles)
	if box.More != nil {
		more := *box.More
		c.More = &more
	}
	c.Children = make([]*Box, len(box.Children))
	for i, child := range box.Children {
		c.Children[i] = child.clone()
	}
	return &c
}

func (l *Layout) clone() *Layout {
	c := *l
	if l.Root != nil {
		c.Root = l.Root.clone()
	}
	return &c
}

// Walk visits boxes depth first until fn returns false.
func (l *Layout) Walk(fn func(*Box) bool) {
	if l == nil || l.Root == nil {
		return
	}
	var visit func(*Box) bool
	visit = func(b *Box) bool {
		if !fn(b) {
			return false
		}
		for _, c := range b.Children {
			if !visit(c) {
				return false
			}
		}
		return true
	}
	visit(l.Root)
}

func (l *Layout) offsets() map[*entity.Stack]int {
	out := make(map[*entity.Stack]int)
	l.Walk(func(b *Box) bool {
		if b.stack != nil {
			out[b.stack] = b.offset
		}
		return true
	})
	return out
}

// PanelBox returns the box of a visible panel.
func (l *Layout) PanelBox(panelID string) (*Box, bool) {
	var found *Box
	l.Walk(func(b *Box) bool {
		if b.Kind == entity.KindPanel && b.PanelID == panelID {
			found = b
			return false
		}
		return true
	})
	return found, found != nil
}

// TabAt returns the tab label under pt.
func (l *Layout) TabAt(pt entity.Point) (TabBox, bool) {
	var found TabBox
	var ok bool
	l.Walk(func(b *Box) bool {
		for _, t := range b.Tabs {
			if t.Rect.W > 0 && contains(t.Rect, pt) {
				found, ok = t, true
				return false
			}
		}
		return true
	})
	return found, ok
}

// CloseAt returns the tab whose close icon is under pt.
func (l *Layout) CloseAt(pt entity.Point) (TabBox, bool) {
	t, ok := l.TabAt(pt)
	if !ok || t.Close.W == 0 || !contains(t.Close, pt) {
		return TabBox{}, false
	}
	return t, true
}

// MoreAt returns the overflow button under pt.
func (l *Layout) MoreAt(pt entity.Point) (MoreBox, bool) {
	var found MoreBox
	var ok bool
	l.Walk(func(b *Box) bool {
		if b.More != nil && contains(b.More.Rect, pt) {
			found, ok = *b.More, true
			return false
		}
		return true
	})
	return found, ok
}

// HandleAt returns the splitter under pt.
func (l *Layout) HandleAt(pt entity.Point) (HandleBox, bool) {
	var found HandleBox
	var ok bool
	l.Walk(func(b *Box) bool {
		for _, h := range b.Handles {
			if h.Rect.W > 0 && h.Rect.H > 0 && contains(h.Rect, pt) {
				found, ok = h, true
				return false
			}
		}
		return true
	})
	return found, ok
}

// DropTargetAt returns what a dragged panel would be dropped on at pt. A
// stack's tab bar stacks; its content area targets the whole stack.
func (l *Layout) DropTargetAt(pt entity.Point) (usecase.DropTarget, bool) {
	if l == nil || l.Root == nil {
		return usecase.DropTarget{}, false
	}
	b := l.Root
	for {
		if !contains(b.Rect, pt) {
			return usecase.DropTarget{}, false
		}
		switch b.Kind {
		case entity.KindPanel:
			return usecase.DropTarget{Path: b.Path, Rect: b.Rect}, true
		case entity.KindStack:
			bar := cellRect{x: b.cells.x, y: b.cells.y, w: b.cells.w, h: 1}.rect()
			if contains(bar, pt) {
				return usecase.DropTarget{Path: b.Path, Rect: bar, OverTab: true}, true
			}
			return usecase.DropTarget{Path: b.Path, Rect: b.Rect}, true
		}

		var next *Box
		for _, c := range b.Children {
			if contains(c.Rect, pt) {
				next = c
				break
			}
		}
		if next == nil {
			return usecase.DropTarget{}, false
		}
		b = next
	}
}

// contains tests cell centres against a half-open cell rectangle.
func contains(r entity.Rect, pt entity.Point) bool {
	return pt.X >= r.X && pt.X < r.X+r.W && pt.Y >= r.Y && pt.Y < r.Y+r.H
}

// StackOf returns the stack box whose visible panel is panelID.
func (l *Layout) StackOf(panelID string) (*Box, bool) {
	var found *Box
	l.Walk(func(b *Box) bool {
		if b.Kind == entity.KindStack && len(b.Children) == 1 && b.Children[0].PanelID == panelID {
			found = b
			return false
		}
		return true
	})
	return found, found != nil
}

// TabCount is the number of panels in a stack box, visible tabs or not.
func (box *Box) TabCount() int { return len(box.labels) }

// ActiveTab returns the index of the stack's active panel, or -1.
func (box *Box) ActiveTab() int {
	for i, lb := range box.labels {
		if lb.active {
			return i
		}
	}
	return -1
}

// TabID returns the panel ID of the i-th panel of a stack box.
func (box *Box) TabID(i int) string {
	if i < 0 || i >= len(box.labels) {
		return ""
	}
	return box.labels[i].id
}

// PanelAt returns the visible panel box under pt.
func (l *Layout) PanelAt(pt entity.Point) (*Box, bool) {
	if l == nil || l.Root == nil {
		return nil, false
	}
	b := l.Root
	for b != nil && contains(b.Rect, pt) {
		if b.Kind == entity.KindPanel {
			return b, true
		}
		var next *Box
		for _, c := range b.Children {
			if contains(c.Rect, pt) {
				next = c
				break
			}
		}
		b = next
	}
	return nil, false
}

// FirstPanel returns the first visible panel box in tree order.
func (l *Layout) FirstPanel() (*Box, bool) {
	var found *Box
	l.Walk(func(b *Box) bool {
		if b.Kind == entity.KindPanel {
			found = b
			return false
		}
		return true
	})
	return found, found != nil
}
