package ripple

// Bounds represents the screen-space bounding box of a widget.
// Rectangles are half-open on both axes: a point on the right or
// bottom edge is outside, so adjacent widgets sharing an edge never
// both claim the same pixel.
type Bounds struct {
	X, Y          float32 // Top-left corner in screen coordinates
	Width, Height float32
}

// Contains checks if a point is within the bounds.
func (b Bounds) Contains(x, y float32) bool {
	return x >= b.X && x < b.X+b.Width &&
		y >= b.Y && y < b.Y+b.Height
}

// Intersects reports whether two bounds overlap. Edge-adjacent
// rectangles do not intersect.
func (b Bounds) Intersects(other Bounds) bool {
	return b.X < other.X+other.Width && other.X < b.X+b.Width &&
		b.Y < other.Y+other.Height && other.Y < b.Y+b.Height
}

// Empty reports whether the bounds enclose no area. An empty rectangle
// contains no point and intersects nothing.
func (b Bounds) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// LocalPoint converts screen coordinates to local coordinates relative to bounds.
func (b Bounds) LocalPoint(screenX, screenY float32) (localX, localY float32) {
	return screenX - b.X, screenY - b.Y
}
