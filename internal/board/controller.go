package board

import (
	"image/color"
	"log"
	"sync"

	"MyWhiteboard/internal/scene"
	"MyWhiteboard/internal/state"
)

// Scene is the scene graph the controller drives. *scene.Canvas implements it.
type Scene interface {
	SetBackground(bg color.NRGBA)
	SetSize(width, height float32)
	Render()
	Dispose()

	SetDrawingMode(enabled bool)
	DrawingMode() bool
	SetBrushColor(c color.NRGBA)
	SetBrushWidth(width float32)
	Brush() scene.Brush

	Add(obj *scene.Object)
	Remove(obj *scene.Object) bool
	Len() int
	ActiveObject() *scene.Object
	SetActiveObject(obj *scene.Object)
	ObjectAt(p scene.Point) *scene.Object
	Find(id string) *scene.Object
	Move(obj *scene.Object, dx, dy float32)
	SetText(obj *scene.Object, text string)

	Zoom() float64
	ZoomToPoint(p scene.Point, zoom float64)
	RelativePan(dx, dy float32)
	ToScene(p scene.Point) scene.Point

	BeginStroke(p scene.Point)
	ExtendStroke(p scene.Point)
	EndStroke() *scene.Object

	Snapshot() scene.Snapshot
}

// Options configures a Controller. Zero fields take the defaults below.
type Options struct {
	Background  color.NRGBA
	Color       color.NRGBA
	BrushWidth  int
	TextContent string
	FontSize    float32

	// Dispatch runs fn on the UI goroutine. When set, image decoding runs
	// on a background goroutine and hands insertion back through it. When
	// nil, images are decoded on the calling goroutine.
	Dispatch func(fn func())

	// NewScene creates the scene on mount.
	NewScene func(surface scene.Surface) Scene
}

const (
	DefaultText     = "Type something"
	DefaultFontSize = 20
)

func (o Options) withDefaults() Options {
	if o.Background == (color.NRGBA{}) {
		o.Background = state.White
	}
	if o.Color == (color.NRGBA{}) {
		o.Color = state.Black
	}
	if o.BrushWidth == 0 {
		o.BrushWidth = state.DefaultBrushWidth
	}
	if o.TextContent == "" {
		o.TextContent = DefaultText
	}
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	if o.NewScene == nil {
		o.NewScene = func(s scene.Surface) Scene { return scene.New(s) }
	}
	return o
}

// Controller owns the tool state and turns toolbar and pointer input into
// scene mutations. Every method is a no-op on the scene while unmounted.
// It is meant to be driven from a single UI goroutine.
type Controller struct {
	opts  Options
	state state.ToolState
	scene Scene

	dragging *scene.Object

	OnStateChanged func(state.ToolState)
}

func New(opts Options) *Controller {
	opts = opts.withDefaults()
	return &Controller{
		opts:  opts,
		state: state.NewToolState(opts.Color, opts.BrushWidth),
	}
}

func (c *Controller) State() state.ToolState { return c.state }

// Scene is nil while unmounted.
func (c *Controller) Scene() Scene { return c.scene }

func (c *Controller) setState(s state.ToolState) {
	c.state = s
	if c.OnStateChanged != nil {
		c.OnStateChanged(s)
	}
}

// Mount creates the scene on surface, configures it from the tool state and
// subscribes to host resize and wheel events. The returned function undoes
// all of that; it is safe to call more than once. Mounting again first
// requires unmounting.
func (c *Controller) Mount(surface scene.Surface, host Host) (unmount func()) {
	if c.scene != nil {
		log.Println("[BOARD] Mount called while mounted; keeping the existing scene")
		return func() {}
	}

	sc := c.opts.NewScene(surface)
	var removers []func()
	teardown := func() {
		for i := len(removers) - 1; i >= 0; i-- {
			removers[i]()
		}
		sc.Dispose()
		if c.scene == sc {
			c.scene = nil
			c.dragging = nil
		}
		log.Println("[BOARD] Unmounted")
	}

	mounted := false
	defer func() {
		if !mounted {
			teardown()
		}
	}()

	c.scene = sc
	sc.SetBackground(c.opts.Background)
	c.applyBrush()

	removers = append(removers, host.OnResize(c.Resize))
	removers = append(removers, host.OnWheel(c.Wheel))
	c.Resize(host.ViewportSize())

	mounted = true
	log.Printf("[BOARD] Mounted (mode %s)", c.state.Mode)

	var once sync.Once
	return func() { once.Do(teardown) }
}

// applyBrush pushes the tool state into the scene's live brush.
func (c *Controller) applyBrush() {
	if c.scene == nil {
		return
	}
	c.scene.SetDrawingMode(c.state.FreeDrawing())
	c.scene.SetBrushColor(c.state.BrushColor(c.opts.Background))
	c.scene.SetBrushWidth(float32(c.state.BrushWidth))
}

// ToggleDraw flips free drawing. Turning it on switches the eraser off.
func (c *Controller) ToggleDraw() {
	if c.scene == nil {
		return
	}
	c.setState(c.state.ToggleDraw())
	c.applyBrush()
}

// ToggleErase flips the eraser. The eraser is a brush in the background
// colour: it paints over earlier strokes, it does not delete them.
func (c *Controller) ToggleErase() {
	if c.scene == nil {
		return
	}
	c.setState(c.state.ToggleErase())
	c.applyBrush()
}

func (c *Controller) SetColor(col color.NRGBA) {
	c.setState(c.state.WithColor(col))
	c.applyBrush()
}

func (c *Controller) SetBrushWidth(width int) {
	c.setState(c.state.WithBrushWidth(width))
	c.applyBrush()
}

func (c *Controller) ToggleImagePanel() {
	c.setState(c.state.ToggleImagePanel())
}

// insert leaves free drawing, adds obj and selects it.
func (c *Controller) insert(obj *scene.Object) *scene.Object {
	c.setState(c.state.ExitDrawing())
	c.applyBrush()
	c.scene.Add(obj)
	c.scene.SetActiveObject(obj)
	log.Printf("[BOARD] Inserted %s %s", obj.Kind, obj.ID)
	return obj
}

func (c *Controller) fill() scene.Style {
	return scene.Style{Fill: c.state.ActiveColor}
}

func (c *Controller) AddText() *scene.Object {
	if c.scene == nil {
		return nil
	}
	return c.insert(scene.NewText(c.opts.TextContent, scene.Point{X: 100, Y: 400}, c.state.ActiveColor, c.opts.FontSize))
}

func (c *Controller) AddRectangle() *scene.Object {
	if c.scene == nil {
		return nil
	}
	return c.insert(scene.NewRect(scene.Point{X: 50, Y: 50}, 100, 100, c.fill()))
}

func (c *Controller) AddCircle() *scene.Object {
	if c.scene == nil {
		return nil
	}
	return c.insert(scene.NewCircle(scene.Point{X: 50, Y: 50}, 50, c.fill()))
}

func (c *Controller) AddTriangle() *scene.Object {
	if c.scene == nil {
		return nil
	}
	return c.insert(scene.NewTriangle(scene.Point{X: 50, Y: 50}, 100, 100, c.fill()))
}

// AddLine draws with the stroke colour and the current brush width.
func (c *Controller) AddLine() *scene.Object {
	if c.scene == nil {
		return nil
	}
	style := scene.Style{Stroke: c.state.ActiveColor, StrokeWidth: float32(c.state.BrushWidth)}
	return c.insert(scene.NewLine(scene.Point{X: 50, Y: 50}, scene.Point{X: 200, Y: 200}, style))
}

var diamond = []scene.Point{{X: 50, Y: 0}, {X: 100, Y: 50}, {X: 50, Y: 100}, {X: 0, Y: 50}}

func (c *Controller) AddPolygon() *scene.Object {
	if c.scene == nil {
		return nil
	}
	return c.insert(scene.NewPolygon(diamond, scene.Point{X: 50, Y: 50}, c.fill()))
}

// DeleteSelected removes the active object, if there is one.
func (c *Controller) DeleteSelected() {
	if c.scene == nil {
		return
	}
	obj := c.scene.ActiveObject()
	if obj == nil {
		return
	}
	if c.scene.Remove(obj) {
		log.Printf("[BOARD] Deleted %s %s", obj.Kind, obj.ID)
	}
	if c.dragging == obj {
		c.dragging = nil
	}
}

// EditText replaces the content of a text object. Objects deleted since the
// edit started are left alone.
func (c *Controller) EditText(obj *scene.Object, text string) {
	if c.scene == nil || obj == nil || obj.Kind != scene.KindText {
		return
	}
	if c.scene.Find(obj.ID) != obj {
		log.Printf("[BOARD] Text %s is no longer on the board", obj.ID)
		return
	}
	c.scene.SetText(obj, text)
}

// TextAt returns the text object under the screen point p, if any.
func (c *Controller) TextAt(p scene.Point) *scene.Object {
	if c.scene == nil {
		return nil
	}
	obj := c.scene.ObjectAt(c.scene.ToScene(p))
	if obj == nil || obj.Kind != scene.KindText {
		return nil
	}
	return obj
}

// Wheel zooms around the cursor: zoom = current * 0.999^deltaY within
// [0.01, 20]. The event is consumed.
func (c *Controller) Wheel(ev *WheelEvent) {
	if c.scene == nil || ev == nil {
		return
	}
	zoom := state.NextZoom(c.scene.Zoom(), ev.DeltaY)
	c.scene.ZoomToPoint(ev.Position, zoom)
	ev.PreventDefault()
}

// Resize matches the scene to the viewport. Objects keep their
// coordinates, so shrinking the window can leave some of them off screen.
func (c *Controller) Resize(width, height float32) {
	if c.scene == nil {
		return
	}
	c.scene.SetSize(width, height)
	c.scene.Render()
}

// PointerDown starts a stroke in free-drawing mode and otherwise selects
// whatever is under p (screen coordinates).
func (c *Controller) PointerDown(p scene.Point) {
	if c.scene == nil {
		return
	}
	at := c.scene.ToScene(p)
	if c.scene.DrawingMode() {
		c.scene.BeginStroke(at)
		return
	}
	obj := c.scene.ObjectAt(at)
	c.scene.SetActiveObject(obj)
	c.dragging = obj
}

// PointerDrag extends the stroke, moves the grabbed object or pans the view.
// delta is in screen pixels.
func (c *Controller) PointerDrag(p, delta scene.Point) {
	if c.scene == nil {
		return
	}
	if c.scene.DrawingMode() {
		c.scene.ExtendStroke(c.scene.ToScene(p))
		return
	}
	if c.dragging != nil {
		zoom := float32(c.scene.Zoom())
		c.scene.Move(c.dragging, delta.X/zoom, delta.Y/zoom)
		return
	}
	c.scene.RelativePan(delta.X, delta.Y)
}

func (c *Controller) PointerUp() {
	if c.scene == nil {
		return
	}
	c.dragging = nil
	if c.scene.DrawingMode() {
		c.scene.EndStroke()
	}
}

// Snapshot returns what the renderer should draw. ok is false while unmounted.
func (c *Controller) Snapshot() (snap scene.Snapshot, ok bool) {
	if c.scene == nil {
		return scene.Snapshot{}, false
	}
	return c.scene.Snapshot(), true
}
