package world

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned room footprint in grid units.
type Rect struct {
	X, Y int // Lowest-coordinate corner
	W, H int // Dimensions in tiles
}

// Center returns the room's center of mass, rounded down.
func (r Rect) Center() Point {
	return Point{
		X: (r.X + (r.X + r.W)) / 2,
		Y: (r.Y + (r.Y + r.H)) / 2,
	}
}

// Contains returns true if the given point is inside the room.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersects returns true if this room overlaps or touches another room.
// Shared edges count as intersecting, so accepted rooms always keep a gap.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W &&
		r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H &&
		r.Y+r.H >= other.Y
}
