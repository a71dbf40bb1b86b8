package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aims-dev/sectorburst/internal/palette"
	"github.com/aims-dev/sectorburst/internal/render"
)

// FileName is the default config file name.
const FileName = "sectorburst.yaml"

// Config represents the top-level sectorburst.yaml configuration.
type Config struct {
	Reference ReferenceConfig `yaml:"reference"`
	Layout    LayoutConfig    `yaml:"layout"`
	Palette   PaletteConfig   `yaml:"palette"`
	Render    RenderConfig    `yaml:"render"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
}

// ReferenceConfig selects the sector reference table.
type ReferenceConfig struct {
	Path string `yaml:"path"` // empty = bundled DAC-5 table
}

// LayoutConfig controls the angular layout.
type LayoutConfig struct {
	IncludeUnallocated bool `yaml:"include_unallocated"`
}

// PaletteConfig controls color assignment.
type PaletteConfig struct {
	Colors        []string `yaml:"colors"`
	CategoryTint  float64  `yaml:"category_tint"`
	SubsectorTint float64  `yaml:"subsector_tint"`
	ShadeSpread   float64  `yaml:"shade_spread"`
}

// RenderConfig controls SVG output.
type RenderConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	InnerRadius float64 `yaml:"inner_radius"`
	RingWidth   float64 `yaml:"ring_width"`
	Background  string  `yaml:"background"`
	Title       string  `yaml:"title,omitempty"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Load reads a sectorburst.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault reads path, falling back to defaults when the file is missing.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	scheme := palette.DefaultScheme()
	opts := render.DefaultOptions()
	return &Config{
		Palette: PaletteConfig{
			Colors:        scheme.Colors,
			CategoryTint:  scheme.CategoryTint,
			SubsectorTint: scheme.SubsectorTint,
			ShadeSpread:   scheme.ShadeSpread,
		},
		Render: RenderConfig{
			Width:       opts.Width,
			Height:      opts.Height,
			InnerRadius: opts.InnerRadius,
			RingWidth:   opts.RingWidth,
			Background:  opts.Background,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}

// Environment overrides.
const (
	EnvLogLevel  = "SECTORBURST_LOG_LEVEL"
	EnvAddr      = "SECTORBURST_ADDR"
	EnvReference = "SECTORBURST_REFERENCE"
)

// ApplyEnv loads .env files (if present) and applies environment overrides.
func (c *Config) ApplyEnv(files ...string) {
	_ = godotenv.Load(files...)

	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvReference); v != "" {
		c.Reference.Path = v
	}
}

// Validate checks the config for values the pipeline cannot use.
func (c *Config) Validate() error {
	if len(c.Palette.Colors) == 0 {
		return errors.New("palette.colors must not be empty")
	}
	for name, v := range map[string]float64{
		"palette.category_tint":  c.Palette.CategoryTint,
		"palette.subsector_tint": c.Palette.SubsectorTint,
		"palette.shade_spread":   c.Palette.ShadeSpread,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %g", name, v)
		}
	}
	if c.Palette.CategoryTint <= 0 {
		return fmt.Errorf("palette.category_tint must be above 0, got %g", c.Palette.CategoryTint)
	}
	if c.Palette.CategoryTint+c.Palette.ShadeSpread > c.Palette.SubsectorTint {
		return fmt.Errorf("palette.subsector_tint must be at least category_tint + shade_spread (%g), got %g",
			c.Palette.CategoryTint+c.Palette.ShadeSpread, c.Palette.SubsectorTint)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Render.RingWidth <= 0 || c.Render.InnerRadius < 0 {
		return errors.New("render.ring_width must be positive and render.inner_radius not negative")
	}
	return nil
}

// Scheme returns the palette scheme.
func (c *Config) Scheme() palette.Scheme {
	colors := make([]string, len(c.Palette.Colors))
	copy(colors, c.Palette.Colors)
	return palette.Scheme{
		Colors:        colors,
		CategoryTint:  c.Palette.CategoryTint,
		SubsectorTint: c.Palette.SubsectorTint,
		ShadeSpread:   c.Palette.ShadeSpread,
	}
}

// RenderOptions returns the SVG options.
func (c *Config) RenderOptions() render.Options {
	opts := render.DefaultOptions()
	opts.Width = c.Render.Width
	opts.Height = c.Render.Height
	opts.InnerRadius = c.Render.InnerRadius
	opts.RingWidth = c.Render.RingWidth
	opts.Background = c.Render.Background
	opts.Title = c.Render.Title
	return opts
}
