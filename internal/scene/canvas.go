package scene

import (
	"image/color"
	"log"
	"sync"
)

// Surface is what a Canvas paints onto. Render asks it to redraw.
type Surface interface {
	Refresh()
}

// Brush is the free-drawing pen.
type Brush struct {
	Color color.NRGBA
	Width float32
}

// Snapshot is a consistent copy of what the renderer needs.
type Snapshot struct {
	Objects    []*Object
	Active     *Object
	Background color.NRGBA
	Width      float32
	Height     float32
	Viewport   Viewport
	Brush      Brush
	Stroke     []Point
	Drawing    bool
}

// Canvas is an ordered scene of drawable objects with a selection, a
// viewport transform and a free-drawing brush. Once disposed it ignores
// every mutation.
type Canvas struct {
	mu          sync.RWMutex
	surface     Surface
	objects     []*Object
	active      *Object
	background  color.NRGBA
	width       float32
	height      float32
	drawingMode bool
	brush       Brush
	vp          Viewport
	stroke      []Point
	disposed    bool
}

func New(surface Surface) *Canvas {
	return &Canvas{
		surface:    surface,
		objects:    make([]*Object, 0),
		background: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		brush:      Brush{Color: color.NRGBA{A: 255}, Width: 1},
		vp:         identity,
	}
}

// Dispose drops every object and detaches the surface.
func (c *Canvas) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.disposed = true
	c.objects = nil
	c.active = nil
	c.stroke = nil
	c.surface = nil
	log.Println("[SCENE] Disposed")
}

func (c *Canvas) Disposed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.disposed
}

// update runs fn under the write lock and renders afterwards unless the
// canvas is disposed.
func (c *Canvas) update(fn func()) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	fn()
	c.mu.Unlock()
	c.Render()
}

func (c *Canvas) Render() {
	c.mu.RLock()
	s := c.surface
	c.mu.RUnlock()
	if s != nil {
		s.Refresh()
	}
}

func (c *Canvas) SetBackground(bg color.NRGBA) {
	c.update(func() { c.background = bg })
}

func (c *Canvas) Background() color.NRGBA {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.background
}

// SetSize records the backing-store size. It does not render; callers do
// that once they are done configuring.
func (c *Canvas) SetSize(width, height float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.width, c.height = width, height
}

func (c *Canvas) Size() (width, height float32) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.width, c.height
}

// SetDrawingMode switches free drawing on or off. Turning it off abandons
// any stroke in progress.
func (c *Canvas) SetDrawingMode(enabled bool) {
	c.update(func() {
		c.drawingMode = enabled
		if !enabled {
			c.stroke = nil
		}
	})
}

func (c *Canvas) DrawingMode() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.drawingMode
}

func (c *Canvas) SetBrushColor(col color.NRGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.disposed {
		c.brush.Color = col
	}
}

func (c *Canvas) SetBrushWidth(width float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.disposed {
		c.brush.Width = width
	}
}

func (c *Canvas) Brush() Brush {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.brush
}

func (c *Canvas) Add(obj *Object) {
	if obj == nil {
		return
	}
	c.update(func() { c.objects = append(c.objects, obj) })
}

// Remove reports whether obj was part of the scene.
func (c *Canvas) Remove(obj *Object) bool {
	removed := false
	c.update(func() {
		for i, o := range c.objects {
			if o == obj {
				c.objects = append(c.objects[:i], c.objects[i+1:]...)
				removed = true
				break
			}
		}
		if c.active == obj {
			c.active = nil
		}
	})
	return removed
}

func (c *Canvas) Objects() []*Object {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Object, len(c.objects))
	copy(out, c.objects)
	return out
}

func (c *Canvas) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.objects)
}

func (c *Canvas) ActiveObject() *Object {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// SetActiveObject selects obj. Nil clears the selection; objects not in the
// scene are ignored.
func (c *Canvas) SetActiveObject(obj *Object) {
	c.update(func() {
		if obj == nil || c.indexOf(obj) >= 0 {
			c.active = obj
		}
	})
}

func (c *Canvas) indexOf(obj *Object) int {
	for i, o := range c.objects {
		if o == obj {
			return i
		}
	}
	return -1
}

// Find returns the object with the given ID, or nil.
func (c *Canvas) Find(id string) *Object {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, o := range c.objects {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// ObjectAt returns the topmost object under p (scene coordinates).
func (c *Canvas) ObjectAt(p Point) *Object {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := len(c.objects) - 1; i >= 0; i-- {
		if c.objects[i].Contains(p) {
			return c.objects[i]
		}
	}
	return nil
}

// Move shifts obj by (dx, dy) scene units.
func (c *Canvas) Move(obj *Object, dx, dy float32) {
	if obj == nil {
		return
	}
	c.update(func() {
		obj.Left += dx
		obj.Top += dy
	})
}

func (c *Canvas) SetText(obj *Object, text string) {
	if obj == nil || obj.Kind != KindText {
		return
	}
	c.update(func() { obj.Text = text })
}

func (c *Canvas) Zoom() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vp.Zoom
}

// ZoomToPoint scales the view to zoom around the screen point p.
func (c *Canvas) ZoomToPoint(p Point, zoom float64) {
	if zoom <= 0 {
		return
	}
	c.update(func() { c.vp = c.vp.ZoomAt(p, zoom) })
}

// RelativePan moves the view by (dx, dy) screen pixels.
func (c *Canvas) RelativePan(dx, dy float32) {
	c.update(func() {
		c.vp.X += float64(dx)
		c.vp.Y += float64(dy)
	})
}

func (c *Canvas) Viewport() Viewport {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vp
}

func (c *Canvas) ToScene(p Point) Point { return c.Viewport().ToScene(p) }
func (c *Canvas) ToScreen(p Point) Point { return c.Viewport().ToScreen(p) }

// BeginStroke starts a brush stroke at p (scene coordinates). It is ignored
// outside drawing mode.
func (c *Canvas) BeginStroke(p Point) {
	c.update(func() {
		if c.drawingMode {
			c.stroke = []Point{p}
		}
	})
}

func (c *Canvas) ExtendStroke(p Point) {
	c.update(func() {
		if c.stroke != nil {
			c.stroke = append(c.stroke, p)
		}
	})
}

// EndStroke commits the stroke in progress as a path object painted with
// the current brush. A stroke shorter than two points is discarded.
func (c *Canvas) EndStroke() *Object {
	var path *Object
	c.update(func() {
		pts := c.stroke
		c.stroke = nil
		if len(pts) < 2 {
			return
		}
		path = NewPath(pts, Style{Stroke: c.brush.Color, StrokeWidth: c.brush.Width})
		c.objects = append(c.objects, path)
	})
	return path
}

func (c *Canvas) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	objs := make([]*Object, len(c.objects))
	copy(objs, c.objects)
	var stroke []Point
	if c.stroke != nil {
		stroke = make([]Point, len(c.stroke))
		copy(stroke, c.stroke)
	}
	return Snapshot{
		Objects:    objs,
		Active:     c.active,
		Background: c.background,
		Width:      c.width,
		Height:     c.height,
		Viewport:   c.vp,
		Brush:      c.brush,
		Stroke:     stroke,
		Drawing:    c.drawingMode,
	}
}
