package ui

import (
	"image"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/fogleman/gg"

	"MyWhiteboard/internal/scene"
)

var (
	selectionColor = color.NRGBA{R: 0x1e, G: 0x90, B: 0xff, A: 255}
	handleSize     = float32(8)
	selectionPad   = float32(2)
)

// maxRaster caps the side of a rasterised polygon at high zoom.
const maxRaster = 4096

type rasterKey struct {
	zoom           float64
	fill           color.NRGBA
	width, height  float32
	scaleX, scaleY float32
}

type raster struct {
	key rasterKey
	img *canvas.Image
}

type boardRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	objects    []fyne.CanvasObject

	// Rasterised fills and decoded bitmaps are kept between refreshes, keyed
	// by object ID, so a stroke in progress does not re-upload every image.
	rasters map[string]*raster
	bitmaps map[string]*canvas.Image
}

func newBoardRenderer(b *BoardWidget) *boardRenderer {
	r := &boardRenderer{
		board:      b,
		background: canvas.NewRectangle(color.White),
		rasters:    make(map[string]*raster),
		bitmaps:    make(map[string]*canvas.Image),
	}
	r.rebuild()
	return r
}

func (r *boardRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *boardRenderer) Layout(size fyne.Size) { r.background.Resize(size) }

func (r *boardRenderer) MinSize() fyne.Size { return fyne.NewSize(300, 300) }

func (r *boardRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.board)
}

func (r *boardRenderer) Destroy() {
	r.rasters = make(map[string]*raster)
	r.bitmaps = make(map[string]*canvas.Image)
}

func (r *boardRenderer) rebuild() {
	objects := []fyne.CanvasObject{r.background}
	snap, ok := r.board.ctrl.Snapshot()
	if !ok {
		r.objects = objects
		return
	}
	r.background.FillColor = snap.Background
	r.background.Resize(r.board.Size())

	vp := snap.Viewport
	live := make(map[string]bool, len(snap.Objects))
	for _, o := range snap.Objects {
		live[o.ID] = true
		objects = append(objects, r.draw(o, vp)...)
	}
	if len(snap.Stroke) > 1 {
		objects = append(objects, polyline(snap.Stroke, snap.Brush.Color, snap.Brush.Width, vp)...)
	}
	if snap.Active != nil {
		objects = append(objects, selection(snap.Active.Bounds(), vp)...)
	}

	for id := range r.rasters {
		if !live[id] {
			delete(r.rasters, id)
		}
	}
	for id := range r.bitmaps {
		if !live[id] {
			delete(r.bitmaps, id)
		}
	}
	r.objects = objects
}

func (r *boardRenderer) draw(o *scene.Object, vp scene.Viewport) []fyne.CanvasObject {
	b := o.Bounds()
	pos := vp.ToScreen(scene.Point{X: b.X, Y: b.Y})
	size := fyne.NewSize(vp.ScaleLen(b.Width), vp.ScaleLen(b.Height))

	switch o.Kind {
	case scene.KindRect:
		rect := canvas.NewRectangle(o.Style.Fill)
		place(rect, pos, size)
		return []fyne.CanvasObject{rect}
	case scene.KindCircle:
		circle := canvas.NewCircle(o.Style.Fill)
		place(circle, pos, size)
		return []fyne.CanvasObject{circle}
	case scene.KindTriangle, scene.KindPolygon:
		img := r.polygon(o, vp.Zoom)
		place(img, pos, size)
		return []fyne.CanvasObject{img}
	case scene.KindLine, scene.KindPath:
		return polyline(o.AbsPoints(), o.Style.Stroke, o.Style.StrokeWidth, vp)
	case scene.KindText:
		text := canvas.NewText(o.Text, o.Style.Fill)
		text.TextSize = vp.ScaleLen(o.FontSize * o.ScaleY)
		text.Move(fyne.NewPos(pos.X, pos.Y))
		return []fyne.CanvasObject{text}
	case scene.KindImage:
		if o.Image == nil {
			return nil
		}
		img, ok := r.bitmaps[o.ID]
		if !ok {
			img = canvas.NewImageFromImage(o.Image)
			img.FillMode = canvas.ImageFillStretch
			r.bitmaps[o.ID] = img
		}
		place(img, pos, size)
		return []fyne.CanvasObject{img}
	}
	return nil
}

func (r *boardRenderer) polygon(o *scene.Object, zoom float64) *canvas.Image {
	key := rasterKey{
		zoom:   zoom,
		fill:   o.Style.Fill,
		width:  o.Width,
		height: o.Height,
		scaleX: o.ScaleX,
		scaleY: o.ScaleY,
	}
	if cached, ok := r.rasters[o.ID]; ok && cached.key == key {
		return cached.img
	}
	img := canvas.NewImageFromImage(rasterPolygon(o.Outline(), o.Style.Fill, zoom))
	img.FillMode = canvas.ImageFillStretch
	r.rasters[o.ID] = &raster{key: key, img: img}
	return img
}

// rasterPolygon fills outline (scene units, origin at the object's corner)
// into an image sized for the current zoom.
func rasterPolygon(outline []scene.Point, fill color.NRGBA, zoom float64) image.Image {
	var w, h float64
	for _, p := range outline {
		w = math.Max(w, float64(p.X))
		h = math.Max(h, float64(p.Y))
	}
	scale := zoom
	if side := math.Max(w, h) * scale; side > maxRaster {
		scale = maxRaster / math.Max(w, h)
	}
	pw := int(math.Max(1, math.Ceil(w*scale)))
	ph := int(math.Max(1, math.Ceil(h*scale)))

	dc := gg.NewContext(pw, ph)
	dc.Scale(scale, scale)
	for i, p := range outline {
		if i == 0 {
			dc.MoveTo(float64(p.X), float64(p.Y))
		} else {
			dc.LineTo(float64(p.X), float64(p.Y))
		}
	}
	dc.ClosePath()
	dc.SetColor(fill)
	dc.Fill()
	return dc.Image()
}

func polyline(points []scene.Point, stroke color.NRGBA, width float32, vp scene.Viewport) []fyne.CanvasObject {
	if len(points) < 2 {
		return nil
	}
	segments := make([]fyne.CanvasObject, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		a := vp.ToScreen(points[i-1])
		b := vp.ToScreen(points[i])
		line := canvas.NewLine(stroke)
		line.StrokeWidth = vp.ScaleLen(width)
		line.Position1 = fyne.NewPos(a.X, a.Y)
		line.Position2 = fyne.NewPos(b.X, b.Y)
		segments = append(segments, line)
	}
	return segments
}

// selection draws a frame and corner handles around the active object.
func selection(b scene.Rect, vp scene.Viewport) []fyne.CanvasObject {
	tl := vp.ToScreen(scene.Point{X: b.X, Y: b.Y})
	w, h := vp.ScaleLen(b.Width), vp.ScaleLen(b.Height)

	frame := canvas.NewRectangle(color.Transparent)
	frame.StrokeColor = selectionColor
	frame.StrokeWidth = 1
	place(frame,
		scene.Point{X: tl.X - selectionPad, Y: tl.Y - selectionPad},
		fyne.NewSize(w+2*selectionPad, h+2*selectionPad))

	objects := []fyne.CanvasObject{frame}
	for _, c := range []scene.Point{
		{X: tl.X, Y: tl.Y},
		{X: tl.X + w, Y: tl.Y},
		{X: tl.X, Y: tl.Y + h},
		{X: tl.X + w, Y: tl.Y + h},
	} {
		handle := canvas.NewRectangle(color.White)
		handle.StrokeColor = selectionColor
		handle.StrokeWidth = 1
		place(handle,
			scene.Point{X: c.X - handleSize/2, Y: c.Y - handleSize/2},
			fyne.NewSize(handleSize, handleSize))
		objects = append(objects, handle)
	}
	return objects
}

func place(o fyne.CanvasObject, pos scene.Point, size fyne.Size) {
	o.Move(fyne.NewPos(pos.X, pos.Y))
	o.Resize(size)
}
