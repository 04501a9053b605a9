package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"MyWhiteboard/internal/state"
)

// EnvPath overrides the default config file location.
const EnvPath = "MYWHITEBOARD_CONFIG"

// Config holds the board's start-up settings.
type Config struct {
	Title      string  `toml:"title"`
	Width      float32 `toml:"width"`
	Height     float32 `toml:"height"`
	Background string  `toml:"background"`
	Color      string  `toml:"color"`
	BrushWidth int     `toml:"brush_width"`
	Text       string  `toml:"text"`
	FontSize   float32 `toml:"font_size"`
}

func Default() Config {
	return Config{
		Title:      "Whiteboard",
		Width:      1024,
		Height:     768,
		Background: "white",
		Color:      "black",
		BrushWidth: state.DefaultBrushWidth,
		Text:       "Type something",
		FontSize:   20,
	}
}

// DefaultPath is $MYWHITEBOARD_CONFIG or <user config dir>/mywhiteboard/config.toml.
func DefaultPath() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "mywhiteboard", "config.toml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("[CONFIG] No config at %s, using defaults", path)
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		log.Printf("[CONFIG] Ignoring unknown key %q in %s", key.String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	log.Printf("[CONFIG] Loaded %s", path)
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size %vx%v must be positive", c.Width, c.Height)
	}
	if c.BrushWidth < state.MinBrushWidth || c.BrushWidth > state.MaxBrushWidth {
		return fmt.Errorf("brush_width %d outside %d..%d", c.BrushWidth, state.MinBrushWidth, state.MaxBrushWidth)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("font_size %v must be positive", c.FontSize)
	}
	if _, err := state.ParseColor(c.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if _, err := state.ParseColor(c.Color); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	return nil
}

// Colors returns the parsed background and initial brush colours.
func (c Config) Colors() (background, brush color.NRGBA, err error) {
	if background, err = state.ParseColor(c.Background); err != nil {
		return
	}
	brush, err = state.ParseColor(c.Color)
	return
}
