// Package physics provides axis-aligned collision detection.
package physics

// Rect is an axis-aligned rectangle in logical screen units.
// X grows to the right, Y grows downward.
type Rect struct {
	X, Y int // Top-left corner
	W, H int // Width and height
}

// NewRect creates a rectangle with the given position and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Left returns the x-coordinate of the left edge.
func (r Rect) Left() int {
	return r.X
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Top returns the y-coordinate of the top edge.
func (r Rect) Top() int {
	return r.Y
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// CenterX returns the horizontal center.
func (r Rect) CenterX() int {
	return r.X + r.W/2
}

// Overlaps reports whether two rectangles share a non-zero area.
// Touching edges do not overlap.
func Overlaps(a, b Rect) bool {
	return a.Left() < b.Right() && a.Right() > b.Left() &&
		a.Top() < b.Bottom() && a.Bottom() > b.Top()
}

// Overlaps reports whether r shares a non-zero area with other.
func (r Rect) Overlaps(other Rect) bool {
	return Overlaps(r, other)
}

// Contains reports whether the point (x, y) lies inside r.
// The left and top edges are inclusive, right and bottom exclusive.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}
