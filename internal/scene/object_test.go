package scene

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundsPerKind(t *testing.T) {
	tests := []struct {
		name string
		obj  *Object
		want Rect
	}{
		{"rect", NewRect(Point{50, 50}, 100, 100, Style{}), Rect{50, 50, 100, 100}},
		{"circle", NewCircle(Point{50, 50}, 50, Style{}), Rect{50, 50, 100, 100}},
		{"triangle", NewTriangle(Point{50, 50}, 100, 80, Style{}), Rect{50, 50, 100, 80}},
		{"line", NewLine(Point{200, 200}, Point{50, 50}, Style{}), Rect{50, 50, 150, 150}},
		{
			"polygon",
			NewPolygon([]Point{{50, 0}, {100, 50}, {50, 100}, {0, 50}}, Point{50, 50}, Style{}),
			Rect{50, 50, 100, 100},
		},
		{"image", NewImage(image.NewRGBA(image.Rect(0, 0, 200, 100)), Point{50, 50}, 0.5), Rect{50, 50, 100, 50}},
		{"empty image", NewImage(nil, Point{1, 2}, 1), Rect{1, 2, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.obj.Bounds())
		})
	}
}

func TestTextBoundsUseMeasure(t *testing.T) {
	old := MeasureText
	defer func() { MeasureText = old }()
	MeasureText = func(text string, size float32) (float32, float32) {
		return float32(len(text)) * 10, size
	}

	text := NewText("abcd", Point{100, 400}, red, 20)
	assert.Equal(t, Rect{100, 400, 40, 20}, text.Bounds())
}

func TestObjectsGetDistinctIDs(t *testing.T) {
	a := NewRect(Point{}, 1, 1, Style{})
	b := NewRect(Point{}, 1, 1, Style{})

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, float32(1), a.ScaleX)
}

func TestContains(t *testing.T) {
	circle := NewCircle(Point{0, 0}, 50, Style{})
	assert.True(t, circle.Contains(Point{50, 50}))
	assert.False(t, circle.Contains(Point{2, 2}), "box corner is outside the circle")

	line := NewLine(Point{0, 10}, Point{100, 10}, Style{StrokeWidth: 2})
	assert.True(t, line.Contains(Point{50, 13}), "thin lines get slop")
	assert.False(t, line.Contains(Point{50, 30}))
}

func TestOutline(t *testing.T) {
	tri := NewTriangle(Point{50, 50}, 100, 100, Style{})
	assert.Equal(t, []Point{{50, 0}, {100, 100}, {0, 100}}, tri.Outline())

	poly := NewPolygon([]Point{{10, 10}, {20, 10}, {15, 20}}, Point{0, 0}, Style{})
	poly.ScaleX = 2
	assert.Equal(t, []Point{{0, 0}, {20, 0}, {10, 10}}, poly.Outline())

	assert.Nil(t, NewRect(Point{}, 1, 1, Style{}).Outline())
}

func TestAbsPoints(t *testing.T) {
	line := NewLine(Point{50, 50}, Point{200, 200}, Style{})
	assert.Equal(t, []Point{{50, 50}, {200, 200}}, line.AbsPoints())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "rect", KindRect.String())
	assert.Equal(t, "image", KindImage.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
