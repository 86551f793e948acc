// Package config loads peony's tool settings with viper: built-in defaults,
// an optional config file, then PEONY_ environment variables.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the settings shared by the CLI and the viewer.
type Config struct {
	LogLevel      string  `mapstructure:"log_level"`
	Debug         bool    `mapstructure:"debug"`
	WindowWidth   int     `mapstructure:"window_width"`
	WindowHeight  int     `mapstructure:"window_height"`
	WindowTitle   string  `mapstructure:"window_title"`
	ZoomStep      float64 `mapstructure:"zoom_step"`
	MinZoom       float64 `mapstructure:"min_zoom"`
	FocusSeconds  float64 `mapstructure:"focus_seconds"`
	Background    string  `mapstructure:"background"`
	ScreenshotDir string  `mapstructure:"screenshot_dir"`
}

// EnvPrefix prefixes every environment override, e.g. PEONY_LOG_LEVEL.
const EnvPrefix = "PEONY"

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:      "info",
		WindowWidth:   1280,
		WindowHeight:  720,
		WindowTitle:   "peony",
		ZoomStep:      1.1,
		MinZoom:       0.05,
		FocusSeconds:  0.4,
		Background:    "#f0f0f0",
		ScreenshotDir: "screenshots",
	}
}

// Load reads settings from path (skipped when empty) and the environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("debug", def.Debug)
	v.SetDefault("window_width", def.WindowWidth)
	v.SetDefault("window_height", def.WindowHeight)
	v.SetDefault("window_title", def.WindowTitle)
	v.SetDefault("zoom_step", def.ZoomStep)
	v.SetDefault("min_zoom", def.MinZoom)
	v.SetDefault("focus_seconds", def.FocusSeconds)
	v.SetDefault("background", def.Background)
	v.SetDefault("screenshot_dir", def.ScreenshotDir)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges that would make the viewer unusable.
func (c *Config) Validate() error {
	var errs []error
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.WindowWidth, c.WindowHeight))
	}
	if c.ZoomStep <= 1 {
		errs = append(errs, fmt.Errorf("zoom_step %g must be greater than 1", c.ZoomStep))
	}
	if c.MinZoom <= 0 {
		errs = append(errs, fmt.Errorf("min_zoom %g must be positive", c.MinZoom))
	}
	if c.FocusSeconds < 0 {
		errs = append(errs, fmt.Errorf("focus_seconds %g must not be negative", c.FocusSeconds))
	}
	if c.ScreenshotDir == "" {
		errs = append(errs, errors.New("screenshot_dir must not be empty"))
	}
	if _, err := ParseColour(c.Background); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// BackgroundColour returns the parsed background colour.
func (c *Config) BackgroundColour() color.RGBA {
	col, _ := ParseColour(c.Background)
	return col
}

// ParseColour parses "#rrggbb" or "#rrggbbaa".
func ParseColour(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("colour %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
