package entity

import "fmt"

// Direction is where a panel is docked relative to a target.
type Direction string

const (
	DockStack        Direction = "stack"
	DockRowLeft      Direction = "row-left"
	DockRowRight     Direction = "row-right"
	DockColumnTop    Direction = "column-top"
	DockColumnBottom Direction = "column-bottom"
)

// ParseDirection validates a direction string.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	switch d {
	case DockStack, DockRowLeft, DockRowRight, DockColumnTop, DockColumnBottom:
		return d, nil
	}
	return "", fmt.Errorf("unknown dock direction %q", s)
}

// Axis returns the split axis an edge direction needs.
func (d Direction) Axis() Axis {
	if d == DockColumnTop || d == DockColumnBottom {
		return AxisColumn
	}
	return AxisRow
}

// Before reports whether the docked panel goes before the target
// (left or top).
func (d Direction) Before() bool {
	return d == DockRowLeft || d == DockColumnTop
}
