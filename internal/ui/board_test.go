package ui

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MyWhiteboard/internal/board"
	"MyWhiteboard/internal/scene"
	"MyWhiteboard/internal/state"
)

func mountedBoard(t *testing.T) (*BoardWidget, *board.Controller, *scene.Canvas) {
	t.Helper()
	test.NewTempApp(t)

	ctrl := board.New(board.Options{})
	b := NewBoardWidget(ctrl)
	unmount := ctrl.Mount(b, b)
	t.Cleanup(unmount)

	sc, ok := ctrl.Scene().(*scene.Canvas)
	require.True(t, ok)
	return b, ctrl, sc
}

func TestBoardResizeReachesScene(t *testing.T) {
	b, _, sc := mountedBoard(t)

	b.Resize(fyne.NewSize(640, 480))

	w, h := sc.Size()
	assert.Equal(t, float32(640), w)
	assert.Equal(t, float32(480), h)
}

func TestBoardScrollZooms(t *testing.T) {
	b, _, sc := mountedBoard(t)

	b.Scrolled(&fyne.ScrollEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(100, 100)},
		Scrolled:   fyne.NewDelta(0, -10),
	})

	assert.InDelta(t, 0.9048, sc.Zoom(), 1e-4)
	p := sc.ToScreen(scene.Point{X: 100, Y: 100})
	assert.InDelta(t, 100, p.X, 1e-3)
	assert.InDelta(t, 100, p.Y, 1e-3)
}

func TestBoardScrollIsConsumed(t *testing.T) {
	b, _, _ := mountedBoard(t)
	var seen *board.WheelEvent
	remove := b.OnWheel(func(ev *board.WheelEvent) { seen = ev })
	defer remove()

	b.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, 3)})

	require.NotNil(t, seen)
	assert.Equal(t, float64(-30), seen.DeltaY)
	assert.True(t, seen.DefaultPrevented())
}

func TestUnmountRemovesListeners(t *testing.T) {
	test.NewTempApp(t)
	ctrl := board.New(board.Options{})
	b := NewBoardWidget(ctrl)

	unmount := ctrl.Mount(b, b)
	assert.Equal(t, 2, b.listenerCount())

	unmount()
	assert.Equal(t, 0, b.listenerCount())

	b.Resize(fyne.NewSize(10, 10))
	b.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, 5)})
	assert.Nil(t, ctrl.Scene())
}

func TestBoardFreehandStroke(t *testing.T) {
	b, _, sc := mountedBoard(t)

	b.MouseDown(&desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(10, 10)},
		Button:     desktop.MouseButtonPrimary,
	})
	b.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(40, 30)},
		Dragged:    fyne.NewDelta(30, 20),
	})
	b.MouseUp(&desktop.MouseEvent{Button: desktop.MouseButtonPrimary})
	b.DragEnd()

	require.Equal(t, 1, sc.Len())
	assert.Equal(t, scene.KindPath, sc.Objects()[0].Kind)
	assert.Equal(t, desktop.CrosshairCursor, b.Cursor())
}

func TestRendererDrawsRectangleAndSelection(t *testing.T) {
	b, ctrl, _ := mountedBoard(t)
	b.Resize(fyne.NewSize(400, 300))
	red := color.NRGBA{R: 255, A: 255}
	ctrl.SetColor(red)

	ctrl.AddRectangle()
	objects := test.WidgetRenderer(b).Objects()

	// background, rectangle, selection frame, four handles
	require.Len(t, objects, 7)
	rect, ok := objects[1].(*canvas.Rectangle)
	require.True(t, ok)
	assert.Equal(t, color.Color(red), rect.FillColor)
	assert.Equal(t, fyne.NewPos(50, 50), rect.Position())
	assert.Equal(t, fyne.NewSize(100, 100), rect.Size())
	assert.Equal(t, desktop.DefaultCursor, b.Cursor())
}

func TestRendererDrawsEveryKind(t *testing.T) {
	b, ctrl, sc := mountedBoard(t)
	b.Resize(fyne.NewSize(400, 300))

	ctrl.AddText()
	ctrl.AddCircle()
	ctrl.AddTriangle()
	ctrl.AddPolygon()
	ctrl.AddLine()
	sc.SetActiveObject(nil)

	objects := test.WidgetRenderer(b).Objects()
	require.Len(t, objects, 6)
	assert.IsType(t, &canvas.Text{}, objects[1])
	assert.IsType(t, &canvas.Circle{}, objects[2])
	assert.IsType(t, &canvas.Image{}, objects[3])
	assert.IsType(t, &canvas.Image{}, objects[4])
	assert.IsType(t, &canvas.Line{}, objects[5])
}

func TestRendererFollowsZoom(t *testing.T) {
	b, ctrl, sc := mountedBoard(t)
	ctrl.AddRectangle()
	sc.SetActiveObject(nil)

	sc.ZoomToPoint(scene.Point{}, 2)
	objects := test.WidgetRenderer(b).Objects()

	require.Len(t, objects, 2)
	assert.Equal(t, fyne.NewPos(100, 100), objects[1].Position())
	assert.Equal(t, fyne.NewSize(200, 200), objects[1].Size())
}

func TestRendererCachesRastersByID(t *testing.T) {
	b, ctrl, sc := mountedBoard(t)
	tri := ctrl.AddTriangle()
	sc.SetActiveObject(nil)

	r, ok := test.WidgetRenderer(b).(*boardRenderer)
	require.True(t, ok)
	first := r.Objects()[1]
	require.Contains(t, r.rasters, tri.ID)

	sc.RelativePan(5, 5)
	assert.Same(t, first, r.Objects()[1], "panning reuses the raster")

	sc.ZoomToPoint(scene.Point{}, 2)
	assert.NotSame(t, first, r.Objects()[1], "zooming redraws the raster")

	sc.SetActiveObject(tri)
	ctrl.DeleteSelected()
	assert.NotContains(t, r.rasters, tri.ID)
}

func TestRasterPolygon(t *testing.T) {
	img := rasterPolygon([]scene.Point{{X: 50}, {X: 100, Y: 100}, {Y: 100}}, color.NRGBA{B: 255, A: 255}, 0.5)

	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
	_, _, blue, alpha := img.At(25, 40).RGBA()
	assert.NotZero(t, alpha)
	assert.NotZero(t, blue)
	_, _, _, corner := img.At(1, 1).RGBA()
	assert.Zero(t, corner, "outside the triangle stays transparent")
}

func TestDoubleTapEditsText(t *testing.T) {
	b, ctrl, _ := mountedBoard(t)
	text := ctrl.AddText()

	var edited *scene.Object
	b.OnEditText = func(obj *scene.Object) { edited = obj }
	b.DoubleTapped(&fyne.PointEvent{Position: fyne.NewPos(105, 405)})

	assert.Same(t, text, edited)
	assert.Equal(t, state.ModeSelect, ctrl.State().Mode)
}
