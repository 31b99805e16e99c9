// Package config loads the optional gridpanel.yaml file.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "gridpanel.yaml"

// SchemaMajor is the supported schema major version.
const SchemaMajor = "v1"

const (
	defaultCount    = 1_000_000
	defaultLabel    = "Item %d"
	defaultItemSize = 100
	defaultWidth    = 800
	defaultHeight   = 600
	defaultTUISize  = 12
	defaultTUIGap   = 1
)

var (
	// ErrUnsupportedVersion is returned for a version field outside SchemaMajor.
	ErrUnsupportedVersion = errors.New("unsupported config version")
	// ErrInvalidConfig is returned when a value is out of range.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config represents the optional gridpanel.yaml configuration.
type Config struct {
	Version  string         `yaml:"version,omitempty"`
	Items    ItemsConfig    `yaml:"items"`
	Panel    PanelConfig    `yaml:"panel"`
	Viewport ViewportConfig `yaml:"viewport"`
	TUI      TUIConfig      `yaml:"tui"`
}

// ItemsConfig describes the demo item source.
type ItemsConfig struct {
	Count *int   `yaml:"count,omitempty"`
	Label string `yaml:"label,omitempty"`
}

// PanelConfig contains panel settings for pixel layouts.
type PanelConfig struct {
	ItemSize float64 `yaml:"itemSize,omitempty"`
	Spacing  float64 `yaml:"spacing,omitempty"`
}

// ViewportConfig is the viewport used by the layout command.
type ViewportConfig struct {
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
}

// TUIConfig contains panel settings for the terminal host, in cells.
type TUIConfig struct {
	ItemSize float64  `yaml:"itemSize,omitempty"`
	Spacing  *float64 `yaml:"spacing,omitempty"`
	Label    string   `yaml:"label,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Path     string
	Count    int
	Label    string
	ItemSize float64
	Spacing  float64
	Width    float64
	Height   float64
	ScrollY  float64

	TUIItemSize float64
	TUISpacing  float64
	TUILabel    string
}

// LoadOptional reads path if it exists. An empty path looks for FileName
// in dir.
func LoadOptional(dir, path string) (*Config, string, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, FileName)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return &Config{}, "", nil
		}
		return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, path, nil
}

// Parse decodes and validates configuration data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the schema version and value ranges.
func (c *Config) Validate() error {
	if err := checkVersion(c.Version); err != nil {
		return err
	}
	if c.Items.Count != nil && (*c.Items.Count < 0 || *c.Items.Count > math.MaxInt32) {
		return fmt.Errorf("%w: items.count must be between 0 and %d (got %d)", ErrInvalidConfig, math.MaxInt32, *c.Items.Count)
	}
	for name, v := range map[string]float64{
		"panel.spacing":   c.Panel.Spacing,
		"viewport.width":  c.Viewport.Width,
		"viewport.height": c.Viewport.Height,
		"viewport.y":      c.Viewport.Y,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative (got %v)", ErrInvalidConfig, name, v)
		}
	}
	if c.TUI.Spacing != nil && *c.TUI.Spacing < 0 {
		return fmt.Errorf("%w: tui.spacing must not be negative (got %v)", ErrInvalidConfig, *c.TUI.Spacing)
	}
	for _, label := range []string{c.Items.Label, c.TUI.Label} {
		if label != "" && strings.Count(label, "%d") != 1 {
			return fmt.Errorf("%w: label %q must contain exactly one %%d", ErrInvalidConfig, label)
		}
	}
	return nil
}

func checkVersion(version string) error {
	version = strings.TrimSpace(version)
	if version == "" {
		return nil
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, version)
	}
	if semver.Major(version) != SchemaMajor {
		return fmt.Errorf("%w: %s (supported: %s.x)", ErrUnsupportedVersion, version, SchemaMajor)
	}
	return nil
}

// Resolve loads the configuration (if present) and resolves defaults.
func Resolve(dir, path string) (*Resolved, error) {
	cfg, found, err := LoadOptional(dir, path)
	if err != nil {
		return nil, err
	}
	r := cfg.Resolve()
	r.Path = found
	return r, nil
}

// Resolve fills defaults for every unset value.
func (c *Config) Resolve() *Resolved {
	r := &Resolved{
		Count:       defaultCount,
		Label:       firstNonEmpty(c.Items.Label, defaultLabel),
		ItemSize:    positiveOr(c.Panel.ItemSize, defaultItemSize),
		Spacing:     c.Panel.Spacing,
		Width:       positiveOr(c.Viewport.Width, defaultWidth),
		Height:      positiveOr(c.Viewport.Height, defaultHeight),
		ScrollY:     c.Viewport.Y,
		TUIItemSize: positiveOr(c.TUI.ItemSize, defaultTUISize),
		TUISpacing:  defaultTUIGap,
	}
	if c.Items.Count != nil {
		r.Count = *c.Items.Count
	}
	if c.TUI.Spacing != nil {
		r.TUISpacing = *c.TUI.Spacing
	}
	r.TUILabel = firstNonEmpty(c.TUI.Label, r.Label)
	return r
}

func positiveOr(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
