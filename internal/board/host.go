package board

import (
	"MyWhiteboard/internal/scene"
)

// Host is the window-level event source the board listens to while mounted.
// Every registration returns the function that undoes it.
type Host interface {
	ViewportSize() (width, height float32)
	OnResize(fn func(width, height float32)) (remove func())
	OnWheel(fn func(*WheelEvent)) (remove func())
}

// WheelEvent is a mouse-wheel tick over the board. DeltaY follows the
// browser convention: positive when scrolling down, in pixels.
type WheelEvent struct {
	DeltaY   float64
	Position scene.Point

	defaultPrevented bool
}

// PreventDefault tells the host not to scroll anything else with this event.
func (e *WheelEvent) PreventDefault() { e.defaultPrevented = true }

func (e *WheelEvent) DefaultPrevented() bool { return e.defaultPrevented }
