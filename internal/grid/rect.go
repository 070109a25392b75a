package grid

// Rect is an axis-aligned rectangle in grid coordinates.
type Rect struct {
	X, Y          int // Top-left corner position
	Width, Height int
}

// Center returns the center coordinates of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains returns true if the given point is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersects returns true if this rectangle overlaps another.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Within returns true if the rectangle lies entirely inside a width by height area
// anchored at the origin.
func (r Rect) Within(width, height int) bool {
	return r.Width > 0 && r.Height > 0 &&
		r.X >= 0 && r.Y >= 0 &&
		r.X+r.Width <= width && r.Y+r.Height <= height
}

// OnEdge returns true if the point lies on the rectangle's perimeter.
func (r Rect) OnEdge(x, y int) bool {
	if !r.Contains(x, y) {
		return false
	}
	return x == r.X || x == r.X+r.Width-1 || y == r.Y || y == r.Y+r.Height-1
}
