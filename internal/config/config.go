package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gravitas-games/hexgrid/pkg/models"
)

// Config holds all editor configuration
type Config struct {
	Map       MapConfig       `yaml:"map"`
	Render    RenderConfig    `yaml:"render"`
	Workspace WorkspaceConfig `yaml:"workspace"`
}

// MapConfig holds the settings used for `new`
type MapConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Radius int    `yaml:"radius"` // pixels, centre to corner
	Name   string `yaml:"name"`
}

// RenderConfig holds rasterizer settings
type RenderConfig struct {
	ScaleDown       bool   `yaml:"scale_down"` // halve the output image unless --raw
	Background      string `yaml:"background"`
	LineColor       string `yaml:"line_color"`
	FontSize        int    `yaml:"font_size"`
	ItemTextColor   string `yaml:"item_text_color"`
	PlayerTextColor string `yaml:"player_text_color"`
	ItemAlpha       int    `yaml:"item_alpha"`   // 0-255
	PlayerAlpha     int    `yaml:"player_alpha"` // 0-255
}

// WorkspaceConfig holds recent-file storage settings
type WorkspaceConfig struct {
	AppName   string `yaml:"app_name"`
	MaxRecent int    `yaml:"max_recent"`
}

// seeded holds the defaults for fields whose zero value is a valid setting.
// They are set before unmarshalling so an explicit false or 0 survives.
func seeded() Config {
	return Config{
		Render: RenderConfig{
			ScaleDown:   true,
			ItemAlpha:   0x7d,
			PlayerAlpha: 0xff,
		},
	}
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := seeded()
	cfg.applyDefaults()
	return &cfg
}

// Load reads configuration from a YAML file. An empty path or a missing
// file yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := seeded()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Set defaults if not provided
func (cfg *Config) applyDefaults() {
	if cfg.Map.Width == 0 {
		cfg.Map.Width = models.DefaultWidth
	}
	if cfg.Map.Height == 0 {
		cfg.Map.Height = models.DefaultHeight
	}
	if cfg.Map.Radius == 0 {
		cfg.Map.Radius = models.DefaultRadius
	}
	if cfg.Map.Name == "" {
		cfg.Map.Name = models.DefaultName
	}
	if cfg.Render.Background == "" {
		cfg.Render.Background = "#FFFFFF"
	}
	if cfg.Render.LineColor == "" {
		cfg.Render.LineColor = "#000000"
	}
	if cfg.Render.FontSize == 0 {
		cfg.Render.FontSize = 24
	}
	if cfg.Render.ItemTextColor == "" {
		cfg.Render.ItemTextColor = "#7D0000"
	}
	if cfg.Render.PlayerTextColor == "" {
		cfg.Render.PlayerTextColor = "#00007D"
	}
	if cfg.Workspace.AppName == "" {
		cfg.Workspace.AppName = "hexgrid"
	}
	if cfg.Workspace.MaxRecent == 0 {
		cfg.Workspace.MaxRecent = 10
	}
}

// Validate rejects values the editor cannot work with.
func (cfg *Config) Validate() error {
	if cfg.Map.Width < 0 || cfg.Map.Height < 0 || cfg.Map.Radius < 0 {
		return fmt.Errorf("config: map size must not be negative (%dx%d r=%d)", cfg.Map.Width, cfg.Map.Height, cfg.Map.Radius)
	}
	for name, c := range map[string]string{
		"background":        cfg.Render.Background,
		"line_color":        cfg.Render.LineColor,
		"item_text_color":   cfg.Render.ItemTextColor,
		"player_text_color": cfg.Render.PlayerTextColor,
	} {
		if !models.IsColorString(c) {
			return fmt.Errorf("config: render.%s %q is not a #RRGGBB color", name, c)
		}
	}
	if cfg.Render.ItemAlpha < 0 || cfg.Render.ItemAlpha > 255 || cfg.Render.PlayerAlpha < 0 || cfg.Render.PlayerAlpha > 255 {
		return errors.New("config: render alpha values must be within 0-255")
	}
	return nil
}

// MapSettings converts the `new` defaults to map settings.
func (cfg *Config) MapSettings() models.MapSettings {
	return models.MapSettings{
		Width:  cfg.Map.Width,
		Height: cfg.Map.Height,
		Radius: cfg.Map.Radius,
		Name:   cfg.Map.Name,
	}
}
