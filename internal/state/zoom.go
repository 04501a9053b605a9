package state

import "math"

const (
	ZoomBase = 0.999
	MinZoom  = 0.01
	MaxZoom  = 20.0
)

// NextZoom maps a wheel delta onto a new zoom factor:
// current * 0.999^deltaY, clamped to [MinZoom, MaxZoom].
// Positive deltas (scrolling down) zoom out.
func NextZoom(current, deltaY float64) float64 {
	zoom := current * math.Pow(ZoomBase, deltaY)
	if zoom > MaxZoom {
		zoom = MaxZoom
	}
	if zoom < MinZoom {
		zoom = MinZoom
	}
	return zoom
}
