package mandel

// Display is the drawing surface a render pass paints on.
// Coordinates passed to FillDot are plane coordinates under the last SetScale.
type Display interface {
	Clear()
	SetScale(xmin, xmax, ymin, ymax float64)
	// SetColor takes channels in 0-255.
	SetColor(r, g, b int)
	FillDot(x, y, radius float64)
	// Present flushes the finished frame.
	Present() error
}

// Pointer converts a position on the drawing surface, in pixels, into plane
// coordinates under the current scale.
type Pointer interface {
	ToPlane(px, py float64) (x, y float64)
}
