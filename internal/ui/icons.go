package ui

import (
	"bytes"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/fogleman/gg"
)

const iconSize = 64

// Toolbar glyphs for the shapes the theme has no icon for.
var (
	rectIcon = shapeIcon("rect", func(dc *gg.Context) {
		dc.DrawRectangle(12, 12, 40, 40)
		dc.Fill()
	})
	circleIcon = shapeIcon("circle", func(dc *gg.Context) {
		dc.DrawCircle(32, 32, 21)
		dc.Fill()
	})
	triangleIcon = shapeIcon("triangle", func(dc *gg.Context) {
		dc.MoveTo(32, 10)
		dc.LineTo(54, 52)
		dc.LineTo(10, 52)
		dc.ClosePath()
		dc.Fill()
	})
	lineIcon = shapeIcon("line", func(dc *gg.Context) {
		dc.SetLineWidth(5)
		dc.DrawLine(12, 52, 52, 12)
		dc.Stroke()
	})
	polygonIcon = shapeIcon("polygon", func(dc *gg.Context) {
		dc.MoveTo(32, 8)
		dc.LineTo(56, 32)
		dc.LineTo(32, 56)
		dc.LineTo(8, 32)
		dc.ClosePath()
		dc.Fill()
	})
	eraserIcon = shapeIcon("eraser", func(dc *gg.Context) {
		dc.RotateAbout(gg.Radians(-45), 32, 32)
		dc.SetLineWidth(4)
		dc.DrawRoundedRectangle(12, 22, 40, 20, 4)
		dc.Stroke()
		dc.DrawRectangle(12, 22, 14, 20)
		dc.Fill()
	})
)

func shapeIcon(name string, draw func(dc *gg.Context)) fyne.Resource {
	dc := gg.NewContext(iconSize, iconSize)
	dc.SetRGB(0.3, 0.3, 0.3)
	draw(dc)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		log.Printf("[UI] Could not draw %s icon: %v", name, err)
		return theme.QuestionIcon()
	}
	return fyne.NewStaticResource(name+".png", buf.Bytes())
}
