package state

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewToolState(t *testing.T) {
	s := NewToolState(Black, DefaultBrushWidth)

	assert.Equal(t, ModeDraw, s.Mode)
	assert.Equal(t, 5, s.BrushWidth)
	assert.Equal(t, Black, s.ActiveColor)
	assert.False(t, s.ImagePanelOpen)
}

func TestToggleDrawAndErase(t *testing.T) {
	tests := []struct {
		name  string
		start Mode
		apply func(ToolState) ToolState
		want  Mode
	}{
		{"draw off", ModeDraw, ToolState.ToggleDraw, ModeSelect},
		{"draw on from select", ModeSelect, ToolState.ToggleDraw, ModeDraw},
		{"draw on turns erase off", ModeErase, ToolState.ToggleDraw, ModeDraw},
		{"erase on from select", ModeSelect, ToolState.ToggleErase, ModeErase},
		{"erase on turns draw off", ModeDraw, ToolState.ToggleErase, ModeErase},
		{"erase off", ModeErase, ToolState.ToggleErase, ModeSelect},
		{"exit drawing from draw", ModeDraw, ToolState.ExitDrawing, ModeSelect},
		{"exit drawing from erase", ModeErase, ToolState.ExitDrawing, ModeSelect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ToolState{Mode: tt.start}
			got := tt.apply(s)

			assert.Equal(t, tt.want, got.Mode)
			assert.False(t, got.Drawing() && got.Erasing())
			assert.Equal(t, tt.start, s.Mode, "receiver must not change")
		})
	}
}

func TestWithBrushWidthClamps(t *testing.T) {
	s := NewToolState(Black, 5)

	assert.Equal(t, 1, s.WithBrushWidth(0).BrushWidth)
	assert.Equal(t, 1, s.WithBrushWidth(-4).BrushWidth)
	assert.Equal(t, 7, s.WithBrushWidth(7).BrushWidth)
	assert.Equal(t, 10, s.WithBrushWidth(25).BrushWidth)
	assert.Equal(t, 10, NewToolState(Black, 99).BrushWidth)
}

func TestBrushColor(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	s := NewToolState(red, 3)

	assert.Equal(t, red, s.BrushColor(White))
	assert.Equal(t, White, s.ToggleErase().BrushColor(White))
	assert.Equal(t, red, s.ToggleDraw().BrushColor(White))
}

func TestToggleImagePanel(t *testing.T) {
	s := NewToolState(Black, 5)

	assert.True(t, s.ToggleImagePanel().ImagePanelOpen)
	assert.False(t, s.ToggleImagePanel().ToggleImagePanel().ImagePanelOpen)
	assert.Equal(t, ModeDraw, s.ToggleImagePanel().Mode)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "select", ModeSelect.String())
	assert.Equal(t, "draw", ModeDraw.String())
	assert.Equal(t, "erase", ModeErase.String())
	assert.Equal(t, "unknown", Mode(42).String())
}
