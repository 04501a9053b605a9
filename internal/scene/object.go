package scene

import (
	"image"
	"image/color"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Kind tags the geometry an Object carries.
type Kind int

const (
	KindPath Kind = iota
	KindText
	KindRect
	KindCircle
	KindTriangle
	KindLine
	KindPolygon
	KindImage
)

var kindNames = [...]string{
	KindPath:     "path",
	KindText:     "text",
	KindRect:     "rect",
	KindCircle:   "circle",
	KindTriangle: "triangle",
	KindLine:     "line",
	KindPolygon:  "polygon",
	KindImage:    "image",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

type Point struct{ X, Y float32 }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Rect is an axis-aligned box in scene coordinates.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Grow returns r expanded by d on every side.
func (r Rect) Grow(d float32) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

type Style struct {
	Fill        color.NRGBA
	Stroke      color.NRGBA
	StrokeWidth float32
}

// Object is a drawable scene item. Kind selects which geometry fields are
// meaningful:
//
//	KindRect, KindTriangle  Width, Height
//	KindCircle              Radius
//	KindPath, KindLine,
//	KindPolygon             Points, relative to (Left, Top)
//	KindText                Text, FontSize
//	KindImage               Image
type Object struct {
	ID     string
	Kind   Kind
	Left   float32
	Top    float32
	ScaleX float32
	ScaleY float32
	Style  Style

	Width    float32
	Height   float32
	Radius   float32
	Points   []Point
	Text     string
	FontSize float32
	Image    image.Image
}

// MeasureText reports the rendered size of a text run. The UI swaps in the
// toolkit's font metrics; the default is a monospace estimate.
var MeasureText = func(text string, size float32) (width, height float32) {
	return float32(utf8.RuneCountInString(text)) * size * 0.6, size * 1.2
}

// hitSlop widens thin objects so they stay clickable.
const hitSlop = 4

func newObject(kind Kind, pos Point, style Style) *Object {
	return &Object{
		ID:     uuid.NewString(),
		Kind:   kind,
		Left:   pos.X,
		Top:    pos.Y,
		ScaleX: 1,
		ScaleY: 1,
		Style:  style,
	}
}

func NewText(content string, pos Point, fill color.NRGBA, fontSize float32) *Object {
	o := newObject(KindText, pos, Style{Fill: fill})
	o.Text = content
	o.FontSize = fontSize
	return o
}

func NewRect(pos Point, width, height float32, style Style) *Object {
	o := newObject(KindRect, pos, style)
	o.Width, o.Height = width, height
	return o
}

func NewCircle(pos Point, radius float32, style Style) *Object {
	o := newObject(KindCircle, pos, style)
	o.Radius = radius
	return o
}

// NewTriangle builds an isosceles triangle with its apex at the top centre
// of the width x height box.
func NewTriangle(pos Point, width, height float32, style Style) *Object {
	o := newObject(KindTriangle, pos, style)
	o.Width, o.Height = width, height
	return o
}

// NewLine places the segment from a to b with its bounding box at the
// top-left of the two endpoints.
func NewLine(a, b Point, style Style) *Object {
	origin, pts := normalize([]Point{a, b})
	o := newObject(KindLine, origin, style)
	o.Points = pts
	return o
}

// NewPolygon keeps the shape of points and moves its bounding box to pos.
func NewPolygon(points []Point, pos Point, style Style) *Object {
	_, pts := normalize(points)
	o := newObject(KindPolygon, pos, style)
	o.Points = pts
	return o
}

// NewPath builds a freehand stroke from absolute scene points.
func NewPath(points []Point, style Style) *Object {
	origin, pts := normalize(points)
	o := newObject(KindPath, origin, style)
	o.Points = pts
	return o
}

func NewImage(img image.Image, pos Point, scale float32) *Object {
	o := newObject(KindImage, pos, Style{})
	o.Image = img
	o.ScaleX, o.ScaleY = scale, scale
	return o
}

// normalize shifts points so their bounding box starts at (0,0) and returns
// the old top-left corner.
func normalize(points []Point) (Point, []Point) {
	if len(points) == 0 {
		return Point{}, nil
	}
	lo := points[0]
	for _, p := range points[1:] {
		if p.X < lo.X {
			lo.X = p.X
		}
		if p.Y < lo.Y {
			lo.Y = p.Y
		}
	}
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = p.Sub(lo)
	}
	return lo, out
}

// size is the unscaled extent of the object's geometry.
func (o *Object) size() (w, h float32) {
	switch o.Kind {
	case KindRect, KindTriangle:
		return o.Width, o.Height
	case KindCircle:
		return 2 * o.Radius, 2 * o.Radius
	case KindPath, KindLine, KindPolygon:
		for _, p := range o.Points {
			if p.X > w {
				w = p.X
			}
			if p.Y > h {
				h = p.Y
			}
		}
		return w, h
	case KindText:
		return MeasureText(o.Text, o.FontSize)
	case KindImage:
		if o.Image == nil {
			return 0, 0
		}
		b := o.Image.Bounds()
		return float32(b.Dx()), float32(b.Dy())
	}
	return 0, 0
}

// Bounds is the object's box in scene coordinates, scale applied.
func (o *Object) Bounds() Rect {
	w, h := o.size()
	return Rect{X: o.Left, Y: o.Top, Width: w * o.ScaleX, Height: h * o.ScaleY}
}

// Contains is the hit test used for selection.
func (o *Object) Contains(p Point) bool {
	b := o.Bounds()
	switch o.Kind {
	case KindLine, KindPath:
		slop := o.Style.StrokeWidth / 2
		if slop < hitSlop {
			slop = hitSlop
		}
		return b.Grow(slop).Contains(p)
	case KindCircle:
		r := b.Width / 2
		dx, dy := p.X-(b.X+r), p.Y-(b.Y+r)
		return dx*dx+dy*dy <= r*r
	}
	return b.Contains(p)
}

// Outline returns the vertices of a filled polygonal object relative to
// (Left, Top), scale applied. It is nil for other kinds.
func (o *Object) Outline() []Point {
	switch o.Kind {
	case KindTriangle:
		w, h := o.Width*o.ScaleX, o.Height*o.ScaleY
		return []Point{{w / 2, 0}, {w, h}, {0, h}}
	case KindPolygon:
		out := make([]Point, len(o.Points))
		for i, p := range o.Points {
			out[i] = Point{p.X * o.ScaleX, p.Y * o.ScaleY}
		}
		return out
	}
	return nil
}

// AbsPoints returns Points in scene coordinates for point-based kinds.
func (o *Object) AbsPoints() []Point {
	out := make([]Point, len(o.Points))
	for i, p := range o.Points {
		out[i] = Point{o.Left + p.X*o.ScaleX, o.Top + p.Y*o.ScaleY}
	}
	return out
}
