// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/sciviz/internal/engine/colour"
	"github.com/Faultbox/sciviz/internal/engine/text"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window" toml:"window"`
	Render  RenderConfig  `yaml:"render" toml:"render"`
	Mesh    MeshConfig    `yaml:"mesh" toml:"mesh"`
	Shaders ShaderConfig  `yaml:"shaders" toml:"shaders"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
	Export  ExportConfig  `yaml:"export" toml:"export"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool   `yaml:"vsync" toml:"vsync"`
}

// RenderConfig holds camera, colour and label settings.
type RenderConfig struct {
	Background string  `yaml:"background" toml:"background"` // hex colour
	FOV        float32 `yaml:"fov" toml:"fov"`               // vertical, degrees
	Near       float32 `yaml:"near" toml:"near"`
	Far        float32 `yaml:"far" toml:"far"`
	ColourMap  string  `yaml:"colour_map" toml:"colour_map"`
	Font       string  `yaml:"font" toml:"font"`
	FontSize   float32 `yaml:"font_size" toml:"font_size"` // model units
	FontRes    int     `yaml:"font_res" toml:"font_res"`   // pixels
}

// MeshConfig holds tessellation settings for generated models.
type MeshConfig struct {
	Rings     int     `yaml:"rings" toml:"rings"`
	Segments  int     `yaml:"segments" toml:"segments"`
	LineWidth float32 `yaml:"line_width" toml:"line_width"`
	Seed      uint64  `yaml:"seed" toml:"seed"` // 0 picks a seed per run
}

// ShaderConfig points at shader sources on disk.
type ShaderConfig struct {
	Dir   string `yaml:"dir" toml:"dir"` // empty uses compiled-in sources
	Watch bool   `yaml:"watch" toml:"watch"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// ExportConfig controls glTF export of the scene.
type ExportConfig struct {
	Path string `yaml:"path" toml:"path"` // .gltf or .glb; empty disables
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "sciviz",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Render: RenderConfig{
			Background: "#ffffff",
			FOV:        30,
			Near:       0.001,
			Far:        100,
			ColourMap:  colour.Jet.String(),
			Font:       text.GoRegular.String(),
			FontSize:   0.05,
			FontRes:    24,
		},
		Mesh: MeshConfig{
			Rings:     10,
			Segments:  12,
			LineWidth: 0.02,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks ranges and parses the named enums and colours.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Render.Near <= 0 || c.Render.Far <= c.Render.Near:
		return fmt.Errorf("%w: clip planes near=%g far=%g", ErrInvalid, c.Render.Near, c.Render.Far)
	case c.Render.FOV <= 0 || c.Render.FOV >= 180:
		return fmt.Errorf("%w: fov %g", ErrInvalid, c.Render.FOV)
	case c.Render.FontRes <= 0 || c.Render.FontSize <= 0:
		return fmt.Errorf("%w: font size %g at %d px", ErrInvalid, c.Render.FontSize, c.Render.FontRes)
	case c.Mesh.Rings < 2 || c.Mesh.Segments < 3:
		return fmt.Errorf("%w: mesh rings=%d segments=%d", ErrInvalid, c.Mesh.Rings, c.Mesh.Segments)
	}
	if _, err := colour.FromHex(c.Render.Background); err != nil {
		return fmt.Errorf("%w: background: %v", ErrInvalid, err)
	}
	if _, err := colour.ParseMapType(c.Render.ColourMap); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := text.ParseFont(c.Render.Font); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Features returns the label features described by the render settings.
// The config must have passed Validate.
func (c *Config) Features() text.Features {
	f := text.DefaultFeatures()
	f.FontSize = c.Render.FontSize
	f.FontRes = c.Render.FontRes
	if font, err := text.ParseFont(c.Render.Font); err == nil {
		f.Font = font
	}
	return f
}

// ColourMap returns the configured colour map. The config must have passed
// Validate.
func (c *Config) ColourMap() *colour.Map {
	t, _ := colour.ParseMapType(c.Render.ColourMap)
	return colour.NewMap(t)
}
