package ui

import (
	"fmt"
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"MyWhiteboard/internal/board"
	"MyWhiteboard/internal/state"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

var paletteColors = []color.NRGBA{
	state.Black,
	{R: 255, A: 255},
	{G: 160, A: 255},
	{B: 255, A: 255},
	{R: 255, G: 200, A: 255},
	{R: 160, B: 200, A: 255},
}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// toolbar is the floating panel on the left of the board. It only issues
// controller commands and mirrors the tool state it is given.
type toolbar struct {
	ctrl *board.Controller
	win  fyne.Window

	current    *canvas.Rectangle
	colorLabel *widget.Label
	widthLabel *widget.Label
	slider     *widget.Slider
	drawBtn    *widget.Button
	eraseBtn   *widget.Button
	imageBtn   *widget.Button
	uploadBtn  *widget.Button
	deleteBtn  *widget.Button

	content fyne.CanvasObject
}

func newToolbar(ctrl *board.Controller, win fyne.Window) *toolbar {
	t := &toolbar{ctrl: ctrl, win: win}

	// --- Colour ---
	onColorTapped := func(c color.Color) {
		ctrl.SetColor(state.ToNRGBA(c))
	}
	swatches := make([]fyne.CanvasObject, 0, len(paletteColors))
	for _, c := range paletteColors {
		swatches = append(swatches, newColorSwatch(c, onColorTapped))
	}
	t.current = canvas.NewRectangle(ctrl.State().ActiveColor)
	t.current.SetMinSize(fyne.NewSize(24, 24))
	t.colorLabel = widget.NewLabel("")
	pickBtn := widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), t.pickColor)

	// --- Brush width ---
	t.widthLabel = widget.NewLabel("")
	t.slider = widget.NewSlider(state.MinBrushWidth, state.MaxBrushWidth)
	t.slider.Step = 1
	t.slider.SetValue(float64(ctrl.State().BrushWidth))
	t.slider.OnChanged = func(v float64) {
		ctrl.SetBrushWidth(int(v))
	}

	// --- Modes and commands ---
	t.drawBtn = widget.NewButtonWithIcon("Draw", theme.DocumentCreateIcon(), ctrl.ToggleDraw)
	t.eraseBtn = widget.NewButtonWithIcon("Erase", eraserIcon, ctrl.ToggleErase)
	textBtn := widget.NewButton("Text", func() { ctrl.AddText() })
	rectBtn := widget.NewButtonWithIcon("", rectIcon, func() { ctrl.AddRectangle() })
	circleBtn := widget.NewButtonWithIcon("", circleIcon, func() { ctrl.AddCircle() })
	triangleBtn := widget.NewButtonWithIcon("", triangleIcon, func() { ctrl.AddTriangle() })
	lineBtn := widget.NewButtonWithIcon("", lineIcon, func() { ctrl.AddLine() })
	polygonBtn := widget.NewButtonWithIcon("", polygonIcon, func() { ctrl.AddPolygon() })
	t.imageBtn = widget.NewButtonWithIcon("Image", theme.FileImageIcon(), ctrl.ToggleImagePanel)
	t.uploadBtn = widget.NewButtonWithIcon("Choose file", theme.FolderOpenIcon(), t.chooseImage)
	t.deleteBtn = widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), ctrl.DeleteSelected)
	t.deleteBtn.Importance = widget.DangerImportance

	bg := canvas.NewRectangle(theme.Color(theme.ColorNameOverlayBackground))
	bg.CornerRadius = theme.InputRadiusSize()
	t.content = container.NewStack(bg, container.NewPadded(container.NewVBox(
		container.NewBorder(nil, nil, t.current, pickBtn, t.colorLabel),
		container.NewGridWithColumns(3, swatches...),
		t.widthLabel,
		t.slider,
		widget.NewSeparator(),
		t.drawBtn,
		t.eraseBtn,
		widget.NewSeparator(),
		textBtn,
		container.NewGridWithColumns(3, rectBtn, circleBtn, triangleBtn),
		container.NewGridWithColumns(2, lineBtn, polygonBtn),
		t.imageBtn,
		t.uploadBtn,
		widget.NewSeparator(),
		t.deleteBtn,
	)))

	t.update(ctrl.State())
	return t
}

// update mirrors s in the toolbar: active modes are highlighted and the
// file picker only shows while the image panel is open.
func (t *toolbar) update(s state.ToolState) {
	highlight(t.drawBtn, s.Drawing())
	highlight(t.eraseBtn, s.Erasing())
	highlight(t.imageBtn, s.ImagePanelOpen)
	if s.ImagePanelOpen {
		t.uploadBtn.Show()
	} else {
		t.uploadBtn.Hide()
	}

	t.current.FillColor = s.ActiveColor
	t.current.Refresh()
	t.colorLabel.SetText(state.ColorHex(s.ActiveColor))
	t.widthLabel.SetText(fmt.Sprintf("Width: %d", s.BrushWidth))
	if int(t.slider.Value) != s.BrushWidth {
		t.slider.SetValue(float64(s.BrushWidth))
	}
}

func highlight(b *widget.Button, on bool) {
	want := widget.MediumImportance
	if on {
		want = widget.HighImportance
	}
	if b.Importance != want {
		b.Importance = want
		b.Refresh()
	}
}

func (t *toolbar) pickColor() {
	picker := dialog.NewColorPicker("Color", "Pick a colour for strokes and new shapes", func(c color.Color) {
		t.ctrl.SetColor(state.ToNRGBA(c))
	}, t.win)
	picker.Advanced = true
	picker.SetColor(t.ctrl.State().ActiveColor)
	picker.Show()
}

func (t *toolbar) chooseImage() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			log.Printf("[UI] Image picker failed: %v", err)
			dialog.ShowError(err, t.win)
			return
		}
		if rc == nil {
			return
		}
		log.Printf("[UI] Inserting image %s", rc.URI().Name())
		t.ctrl.InsertImage(rc)
	}, t.win)
	d.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	d.Show()
}
