package usecase

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bnema/dockpane/internal/domain/entity"
)

// ErrNoGesture is returned when a gesture operation has nothing to act on:
// the handle does not address two siblings, or the gesture already ended.
var ErrNoGesture = errors.New("no resize gesture")

const weightPrecision = 1e6

// minWeight is the smallest weight a resize leaves on either sibling.
const minWeight = 1 / weightPrecision

// roundWeight rounds to six decimal places.
func roundWeight(w float64) float64 {
	return math.Round(w*weightPrecision) / weightPrecision
}

// ResizeHandle identifies the splitter between Children[Index-1] and
// Children[Index] of the split at Parent.
type ResizeHandle struct {
	Axis   entity.Axis
	Parent entity.Path
	Index  int
}

// String encodes the handle as "axis/path/index", e.g. "row/panels[0]/1".
func (h ResizeHandle) String() string {
	return h.Axis.String() + "/" + h.Parent.String() + "/" + strconv.Itoa(h.Index)
}

// ParseResizeHandle decodes the descriptor a renderer attaches to its
// splitters.
func ParseResizeHandle(s string) (ResizeHandle, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return ResizeHandle{}, fmt.Errorf("resize handle %q: want axis/path/index", s)
	}

	var h ResizeHandle
	switch parts[0] {
	case "row":
		h.Axis = entity.AxisRow
	case "column":
		h.Axis = entity.AxisColumn
	default:
		return ResizeHandle{}, fmt.Errorf("resize handle %q: unknown axis %q", s, parts[0])
	}

	path, ok := entity.ParsePath(parts[1])
	if !ok {
		return ResizeHandle{}, fmt.Errorf("resize handle %q: malformed path", s)
	}
	h.Parent = path

	idx, err := strconv.Atoi(parts[2])
	if err != nil || idx < 1 {
		return ResizeHandle{}, fmt.Errorf("resize handle %q: bad index", s)
	}
	h.Index = idx
	return h, nil
}

// Extents are the on-screen sizes along the split axis of the two siblings
// and of the splitter between them.
type Extents struct {
	Prev, Next, Handle float64
}

// Total is the full extent a pointer can travel across.
func (e Extents) Total() float64 {
	return e.Prev + e.Next + e.Handle
}

// ResizeGesture is the state of one splitter drag. Intermediate weights are
// visual only; nothing is written to the tree before Commit.
type ResizeGesture struct {
	Handle ResizeHandle

	prevPath, nextPath entity.Path
	prevNode, nextNode entity.Node
	prev0, next0       float64
	prev, next         float64
	origin             entity.Point
	total              float64
	done               bool
}

// StartResize records the two siblings around handle. It fails with
// ErrNoGesture when the handle does not address a split with both
// neighbours or the extents are empty.
func StartResize(tree *entity.Tree, handle ResizeHandle, origin entity.Point, extents Extents) (*ResizeGesture, error) {
	node, ok := tree.Resolve(handle.Parent)
	if !ok {
		return nil, fmt.Errorf("handle %s: %w", handle, ErrNoGesture)
	}
	split, ok := node.(*entity.Split)
	if !ok || split.Axis != handle.Axis || handle.Index < 1 || handle.Index >= len(split.Children) {
		return nil, fmt.Errorf("handle %s: %w", handle, ErrNoGesture)
	}
	total := extents.Total()
	if total <= 0 {
		return nil, fmt.Errorf("handle %s: empty extent: %w", handle, ErrNoGesture)
	}

	prev := split.Children[handle.Index-1]
	next := split.Children[handle.Index]
	g := &ResizeGesture{
		Handle:   handle,
		prevPath: handle.Parent.Child(handle.Index - 1),
		nextPath: handle.Parent.Child(handle.Index),
		prevNode: prev,
		nextNode: next,
		prev0:    prev.Weight(),
		next0:    next.Weight(),
		origin:   origin,
		total:    total,
	}
	g.prev, g.next = g.prev0, g.next0
	return g, nil
}

// Move recomputes the pair's weights for pointer position pt and returns
// them. The combined weight of the pair never changes and neither weight
// drops below minWeight.
func (g *ResizeGesture) Move(pt entity.Point) (prev, next float64) {
	if g.done {
		return g.prev, g.next
	}
	px := pt.X - g.origin.X
	if g.Handle.Axis == entity.AxisColumn {
		px = pt.Y - g.origin.Y
	}
	delta := roundWeight(2 * px / g.total)
	delta = max(delta, minWeight-g.prev0)
	delta = min(delta, g.next0-minWeight)
	g.prev = roundWeight(g.prev0 + delta)
	g.next = roundWeight(g.next0 - delta)
	return g.prev, g.next
}

// Weights returns the current visual weights.
func (g *ResizeGesture) Weights() (prev, next float64) {
	return g.prev, g.next
}

// Done reports whether the gesture was committed or rolled back.
func (g *ResizeGesture) Done() bool { return g.done }

// Commit writes the current weights into the tree. The siblings are looked
// up again by path and must still be the nodes the gesture started on; a
// tree that changed shape mid-gesture fails with ErrNoGesture.
func (g *ResizeGesture) Commit(tree *entity.Tree) error {
	return g.write(tree, g.prev, g.next)
}

// Rollback writes the initial weights back.
func (g *ResizeGesture) Rollback(tree *entity.Tree) error {
	return g.write(tree, g.prev0, g.next0)
}

func (g *ResizeGesture) write(tree *entity.Tree, prev, next float64) error {
	if g.done {
		return ErrNoGesture
	}
	g.done = true

	prevNode, okPrev := tree.Resolve(g.prevPath)
	nextNode, okNext := tree.Resolve(g.nextPath)
	if !okPrev || !okNext || prevNode != g.prevNode || nextNode != g.nextNode {
		return fmt.Errorf("handle %s: siblings moved: %w", g.Handle, ErrNoGesture)
	}
	prevNode.SetWeight(prev)
	nextNode.SetWeight(next)
	return nil
}
