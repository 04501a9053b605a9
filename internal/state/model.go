package state

import "image/color"

// Mode is the pointer interaction mode selected in the toolbar.
type Mode int

const (
	ModeSelect Mode = iota
	ModeDraw
	ModeErase
)

func (m Mode) String() string {
	switch m {
	case ModeSelect:
		return "select"
	case ModeDraw:
		return "draw"
	case ModeErase:
		return "erase"
	}
	return "unknown"
}

const (
	MinBrushWidth     = 1
	MaxBrushWidth     = 10
	DefaultBrushWidth = 5
)

// ToolState is the toolbar state. It is a value type: every transition
// returns a new ToolState and leaves the receiver untouched.
type ToolState struct {
	ActiveColor    color.NRGBA
	BrushWidth     int
	Mode           Mode
	ImagePanelOpen bool
}

// NewToolState starts in draw mode with the given colour and width.
func NewToolState(c color.NRGBA, width int) ToolState {
	return ToolState{
		ActiveColor: c,
		BrushWidth:  clampWidth(width),
		Mode:        ModeDraw,
	}
}

func (s ToolState) Drawing() bool { return s.Mode == ModeDraw }
func (s ToolState) Erasing() bool { return s.Mode == ModeErase }

// FreeDrawing reports whether pointer drags should lay down brush strokes.
// The eraser is a brush too.
func (s ToolState) FreeDrawing() bool { return s.Mode != ModeSelect }

func (s ToolState) ToggleDraw() ToolState {
	if s.Mode == ModeDraw {
		s.Mode = ModeSelect
	} else {
		s.Mode = ModeDraw
	}
	return s
}

func (s ToolState) ToggleErase() ToolState {
	if s.Mode == ModeErase {
		s.Mode = ModeSelect
	} else {
		s.Mode = ModeErase
	}
	return s
}

// ExitDrawing drops back to select mode. Object insertion uses it.
func (s ToolState) ExitDrawing() ToolState {
	s.Mode = ModeSelect
	return s
}

func (s ToolState) WithColor(c color.NRGBA) ToolState {
	s.ActiveColor = c
	return s
}

func (s ToolState) WithBrushWidth(width int) ToolState {
	s.BrushWidth = clampWidth(width)
	return s
}

func (s ToolState) ToggleImagePanel() ToolState {
	s.ImagePanelOpen = !s.ImagePanelOpen
	return s
}

// BrushColor is the colour the live brush paints with. The eraser paints
// with the background colour, so it covers strokes rather than removing them.
func (s ToolState) BrushColor(background color.NRGBA) color.NRGBA {
	if s.Mode == ModeErase {
		return background
	}
	return s.ActiveColor
}

func clampWidth(w int) int {
	if w < MinBrushWidth {
		return MinBrushWidth
	}
	if w > MaxBrushWidth {
		return MaxBrushWidth
	}
	return w
}
