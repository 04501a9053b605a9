package scene

// Viewport maps scene coordinates to screen coordinates:
// screen = scene*Zoom + (X, Y).
type Viewport struct {
	Zoom float64
	X, Y float64
}

var identity = Viewport{Zoom: 1}

func (v Viewport) ToScreen(p Point) Point {
	return Point{
		X: float32(float64(p.X)*v.Zoom + v.X),
		Y: float32(float64(p.Y)*v.Zoom + v.Y),
	}
}

func (v Viewport) ToScene(p Point) Point {
	return Point{
		X: float32((float64(p.X) - v.X) / v.Zoom),
		Y: float32((float64(p.Y) - v.Y) / v.Zoom),
	}
}

// ZoomAt returns the viewport scaled to zoom with the screen point p left
// where it was.
func (v Viewport) ZoomAt(p Point, zoom float64) Viewport {
	before := v.ToScene(p)
	return Viewport{
		Zoom: zoom,
		X:    float64(p.X) - float64(before.X)*zoom,
		Y:    float64(p.Y) - float64(before.Y)*zoom,
	}
}

// ScaleLen converts a scene length to screen pixels.
func (v Viewport) ScaleLen(l float32) float32 {
	return float32(float64(l) * v.Zoom)
}
