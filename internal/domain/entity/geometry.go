package entity

// Point is a pointer position in the render surface's coordinate space.
type Point struct {
	X, Y float64
}

// Rect is a node's on-screen bounding box, reported by the renderer.
// Used for drop-zone classification.
type Rect struct {
	X, Y float64 // Top-left position relative to the render surface
	W, H float64 // Width and height
}

// Contains reports whether pt lies inside the rectangle, edges included.
func (r Rect) Contains(pt Point) bool {
	return pt.X >= r.X && pt.X <= r.X+r.W && pt.Y >= r.Y && pt.Y <= r.Y+r.H
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}
