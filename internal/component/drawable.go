package component

// Vec2 is a point in normalised device coordinates, [-1, 1] on both axes
// with +Y pointing up.
type Vec2 struct {
	X float64
	Y float64
}

// Drawable is the component the render system draws each frame.
// Pure data; rasterisation lives in the render package.
type Drawable struct {
	Shape    string // catalog name it was built from
	Glyph    rune
	Color    string
	Vertices []Vec2
	Indices  []uint16 // triangle list; empty = triangle fan over Vertices
	Offset   Vec2
}
