package ui

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"MyWhiteboard/internal/board"
	"MyWhiteboard/internal/scene"
)

// wheelPixelsPerUnit converts Fyne scroll units to browser-style wheel
// pixels, so one notch is roughly 100.
const wheelPixelsPerUnit = 10

// BoardWidget is the full-window drawing surface. It paints the scene the
// controller owns and acts as the controller's host: resize and wheel
// events reach the controller through listeners registered on it.
type BoardWidget struct {
	widget.BaseWidget
	ctrl *board.Controller

	mu         sync.Mutex
	nextID     int
	onResize   map[int]func(width, height float32)
	onWheel    map[int]func(*board.WheelEvent)
	OnEditText func(obj *scene.Object)
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Scrollable = (*BoardWidget)(nil)
var _ fyne.DoubleTappable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Cursorable = (*BoardWidget)(nil)
var _ board.Host = (*BoardWidget)(nil)
var _ scene.Surface = (*BoardWidget)(nil)

func NewBoardWidget(ctrl *board.Controller) *BoardWidget {
	b := &BoardWidget{
		ctrl:     ctrl,
		onResize: make(map[int]func(float32, float32)),
		onWheel:  make(map[int]func(*board.WheelEvent)),
	}
	b.ExtendBaseWidget(b)
	return b
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return newBoardRenderer(b)
}

func (b *BoardWidget) ViewportSize() (float32, float32) {
	s := b.Size()
	return s.Width, s.Height
}

func (b *BoardWidget) OnResize(fn func(width, height float32)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.onResize[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.onResize, id)
	}
}

func (b *BoardWidget) OnWheel(fn func(*board.WheelEvent)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.onWheel[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.onWheel, id)
	}
}

// listenerCount is the number of registered resize and wheel listeners.
func (b *BoardWidget) listenerCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.onResize) + len(b.onWheel)
}

func (b *BoardWidget) Resize(size fyne.Size) {
	b.BaseWidget.Resize(size)

	b.mu.Lock()
	fns := make([]func(float32, float32), 0, len(b.onResize))
	for _, fn := range b.onResize {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(size.Width, size.Height)
	}
}

// Scrolled forwards the wheel to the listeners. Fyne hands a scroll to the
// topmost Scrollable under the pointer only, so the event never reaches the
// containers behind the board and PreventDefault needs no action here.
func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	ev := &board.WheelEvent{
		DeltaY:   -float64(e.Scrolled.DY) * wheelPixelsPerUnit,
		Position: toPoint(e.Position),
	}

	b.mu.Lock()
	fns := make([]func(*board.WheelEvent), 0, len(b.onWheel))
	for _, fn := range b.onWheel {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.ctrl.PointerDown(toPoint(e.Position))
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.ctrl.PointerUp()
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.ctrl.PointerDrag(toPoint(e.Position), scene.Point{X: e.Dragged.DX, Y: e.Dragged.DY})
}

// DragEnd also ends the gesture; PointerUp is harmless when repeated.
func (b *BoardWidget) DragEnd() {
	b.ctrl.PointerUp()
}

func (b *BoardWidget) DoubleTapped(e *fyne.PointEvent) {
	obj := b.ctrl.TextAt(toPoint(e.Position))
	if obj != nil && b.OnEditText != nil {
		b.OnEditText(obj)
	}
}

func (b *BoardWidget) Cursor() desktop.Cursor {
	if b.ctrl.State().FreeDrawing() {
		return desktop.CrosshairCursor
	}
	return desktop.DefaultCursor
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseOut()                      {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

func toPoint(p fyne.Position) scene.Point {
	return scene.Point{X: p.X, Y: p.Y}
}
