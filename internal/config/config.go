// Package config loads the notefield YAML configuration. Values resolve as
// defaults, then the file, then NOTEFIELD_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// WindowConfig sizes the game window.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
}

// CanvasConfig holds the zoom limits and the text box sizing constants.
type CanvasConfig struct {
	MinScale         float64 `yaml:"min_scale"`
	MaxScale         float64 `yaml:"max_scale"`
	ScaleStep        float64 `yaml:"scale_step"`
	BaseFontSize     float64 `yaml:"base_font_size"`
	FontFile         string  `yaml:"font_file"` // TTF/OTF path; empty selects Go Regular
	WidthSlack       float64 `yaml:"width_slack"`
	MinWidthChars    int     `yaml:"min_width_chars"`
	SampleText       string  `yaml:"sample_text"`
	MinVisibleHeight float64 `yaml:"min_visible_height"`
}

// LoggingConfig mirrors internal/log.Options.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// DebugConfig controls developer aids.
type DebugConfig struct {
	HUD           bool   `yaml:"hud"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// AppConfig is the user-editable configuration.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Window        WindowConfig  `yaml:"window"`
	Canvas        CanvasConfig  `yaml:"canvas"`
	Logging       LoggingConfig `yaml:"logging"`
	Debug         DebugConfig   `yaml:"debug"`
}

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Window:        WindowConfig{Title: "notefield", Width: 1280, Height: 800, Resizable: true},
		Canvas: CanvasConfig{
			MinScale:         0.25,
			MaxScale:         3,
			ScaleStep:        0.1,
			BaseFontSize:     16,
			WidthSlack:       2,
			MinWidthChars:    10,
			SampleText:       "M",
			MinVisibleHeight: 20,
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Debug:   DebugConfig{ScreenshotDir: "screenshots"},
	}
}

// Environment overrides.
const (
	EnvMinScale      = "NOTEFIELD_MIN_SCALE"
	EnvMaxScale      = "NOTEFIELD_MAX_SCALE"
	EnvFontFile      = "NOTEFIELD_FONT_FILE"
	EnvHUD           = "NOTEFIELD_HUD"
	EnvScreenshotDir = "NOTEFIELD_SCREENSHOT_DIR"
	EnvLogLevel      = "NOTEFIELD_LOG_LEVEL"
	EnvLogFormat     = "NOTEFIELD_LOG_FORMAT"
	EnvLogSource     = "NOTEFIELD_LOG_SOURCE"
	EnvLogFile       = "NOTEFIELD_LOG_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "notefield")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "notefield")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "notefield")
		} else if home := os.Getenv("HOME"); home != "" {
			base = filepath.Join(home, ".config", "notefield")
		}
	}
	if base == "" {
		return "", errors.New("config: cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the file at path (the per-user path when empty). A missing
// file is not an error; a malformed one is.
func Load(path string) (AppConfig, error) {
	cfg := Defaults()
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	default:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	}

	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg as YAML to path, creating parent directories.
func Save(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: mkdir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings the board cannot run with.
func (c AppConfig) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Canvas.MinScale <= 0 {
		errs = append(errs, fmt.Errorf("canvas.min_scale must be positive, got %v", c.Canvas.MinScale))
	}
	if c.Canvas.MaxScale < c.Canvas.MinScale {
		errs = append(errs, fmt.Errorf("canvas.max_scale %v is below min_scale %v", c.Canvas.MaxScale, c.Canvas.MinScale))
	}
	if c.Canvas.ScaleStep <= 0 {
		errs = append(errs, fmt.Errorf("canvas.scale_step must be positive, got %v", c.Canvas.ScaleStep))
	}
	if c.Canvas.BaseFontSize <= 0 {
		errs = append(errs, fmt.Errorf("canvas.base_font_size must be positive, got %v", c.Canvas.BaseFontSize))
	}
	if c.Canvas.WidthSlack < 0 {
		errs = append(errs, fmt.Errorf("canvas.width_slack must not be negative, got %v", c.Canvas.WidthSlack))
	}
	if c.Canvas.MinWidthChars < 0 {
		errs = append(errs, fmt.Errorf("canvas.min_width_chars must not be negative, got %d", c.Canvas.MinWidthChars))
	}
	if c.Canvas.MinWidthChars > 0 && c.Canvas.SampleText == "" {
		errs = append(errs, errors.New("canvas.sample_text must be set when min_width_chars is positive"))
	}
	if c.Canvas.MinVisibleHeight < 0 {
		errs = append(errs, fmt.Errorf("canvas.min_visible_height must not be negative, got %v", c.Canvas.MinVisibleHeight))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func mergeInto(dst, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}

	if s := strings.TrimSpace(src.Window.Title); s != "" {
		dst.Window.Title = s
	}
	if src.Window.Width != 0 {
		dst.Window.Width = src.Window.Width
	}
	if src.Window.Height != 0 {
		dst.Window.Height = src.Window.Height
	}
	dst.Window.Resizable = src.Window.Resizable

	if src.Canvas.MinScale != 0 {
		dst.Canvas.MinScale = src.Canvas.MinScale
	}
	if src.Canvas.MaxScale != 0 {
		dst.Canvas.MaxScale = src.Canvas.MaxScale
	}
	if src.Canvas.ScaleStep != 0 {
		dst.Canvas.ScaleStep = src.Canvas.ScaleStep
	}
	if src.Canvas.BaseFontSize != 0 {
		dst.Canvas.BaseFontSize = src.Canvas.BaseFontSize
	}
	if s := strings.TrimSpace(src.Canvas.FontFile); s != "" {
		dst.Canvas.FontFile = s
	}
	if src.Canvas.WidthSlack != 0 {
		dst.Canvas.WidthSlack = src.Canvas.WidthSlack
	}
	if src.Canvas.MinWidthChars != 0 {
		dst.Canvas.MinWidthChars = src.Canvas.MinWidthChars
	}
	if src.Canvas.SampleText != "" {
		dst.Canvas.SampleText = src.Canvas.SampleText
	}
	if src.Canvas.MinVisibleHeight != 0 {
		dst.Canvas.MinVisibleHeight = src.Canvas.MinVisibleHeight
	}

	if s := strings.TrimSpace(src.Logging.Level); s != "" {
		dst.Logging.Level = strings.ToLower(s)
	}
	if s := strings.TrimSpace(src.Logging.Format); s != "" {
		dst.Logging.Format = strings.ToLower(s)
	}
	dst.Logging.Source = src.Logging.Source
	if s := strings.TrimSpace(src.Logging.File); s != "" {
		dst.Logging.File = s
	}

	dst.Debug.HUD = src.Debug.HUD
	if s := strings.TrimSpace(src.Debug.ScreenshotDir); s != "" {
		dst.Debug.ScreenshotDir = s
	}
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvMinScale)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Canvas.MinScale = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvMaxScale)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Canvas.MaxScale = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvFontFile)); v != "" {
		cfg.Canvas.FontFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvHUD)); v != "" {
		cfg.Debug.HUD = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvScreenshotDir)); v != "" {
		cfg.Debug.ScreenshotDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor reports the environment variable overriding a dotted key
// such as "canvas.min_scale", if one is set.
func EnvOverrideFor(key string) (string, bool) {
	env, ok := map[string]string{
		"canvas.min_scale":     EnvMinScale,
		"canvas.max_scale":     EnvMaxScale,
		"canvas.font_file":     EnvFontFile,
		"debug.hud":            EnvHUD,
		"debug.screenshot_dir": EnvScreenshotDir,
		"logging.level":        EnvLogLevel,
		"logging.format":       EnvLogFormat,
		"logging.source":       EnvLogSource,
		"logging.file":         EnvLogFile,
	}[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}
