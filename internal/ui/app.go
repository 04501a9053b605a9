package ui

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"MyWhiteboard/internal/board"
	"MyWhiteboard/internal/config"
	"MyWhiteboard/internal/scene"
	"MyWhiteboard/internal/state"
)

// RunApp opens the whiteboard window and blocks until it is closed.
func RunApp(cfg config.Config) {
	myApp := app.New()
	myWindow, unmount := newBoardWindow(myApp, cfg)
	defer unmount()
	myWindow.ShowAndRun()
}

// newBoardWindow builds the window, mounts the board and returns the
// unmount function. Closing the window unmounts too.
func newBoardWindow(a fyne.App, cfg config.Config) (fyne.Window, func()) {
	scene.MeasureText = measureText

	bg, fg, err := cfg.Colors()
	if err != nil {
		log.Printf("[UI] %v, falling back to default colours", err)
		bg, fg = state.White, state.Black
	}
	ctrl := board.New(board.Options{
		Background:  bg,
		Color:       fg,
		BrushWidth:  cfg.BrushWidth,
		TextContent: cfg.Text,
		FontSize:    cfg.FontSize,
		Dispatch:    fyne.Do,
	})

	myWindow := a.NewWindow(cfg.Title)
	myWindow.Resize(fyne.NewSize(cfg.Width, cfg.Height))

	boardWidget := NewBoardWidget(ctrl)
	tools := newToolbar(ctrl, myWindow)
	ctrl.OnStateChanged = tools.update

	boardWidget.OnEditText = func(obj *scene.Object) {
		entry := widget.NewEntry()
		entry.SetText(obj.Text)
		dialog.ShowForm("Edit text", "Save", "Cancel",
			[]*widget.FormItem{widget.NewFormItem("Text", entry)},
			func(ok bool) {
				if ok {
					ctrl.EditText(obj, entry.Text)
				}
			}, myWindow)
	}

	// The toolbar floats over the top-left corner of the full-window board.
	overlay := container.NewHBox(container.NewVBox(tools.content), layout.NewSpacer())
	myWindow.SetContent(container.NewStack(boardWidget, overlay))

	myWindow.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDelete, fyne.KeyBackspace:
			ctrl.DeleteSelected()
		}
	})

	unmount := ctrl.Mount(boardWidget, boardWidget)
	myWindow.SetOnClosed(func() {
		myWindow.Canvas().SetOnTypedKey(nil)
		unmount()
	})
	return myWindow, unmount
}

func measureText(text string, size float32) (float32, float32) {
	s := fyne.MeasureText(text, size, fyne.TextStyle{})
	return s.Width, s.Height
}
