// Package config handles application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all application settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Assets   AssetsConfig   `yaml:"assets"`
	Scene    SceneConfig    `yaml:"scene"`
	Controls ControlsConfig `yaml:"controls"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// AssetsConfig describes where catalog meshes live and how they load.
type AssetsConfig struct {
	Root         string         `yaml:"root"`          // base locator, a directory or an http(s) URL
	Workers      int            `yaml:"workers"`       // concurrent catalog entries
	FetchTimeout time.Duration  `yaml:"fetch_timeout"` // per request, http only
	Catalog      []CatalogEntry `yaml:"catalog"`
}

// CatalogEntry is one spawnable asset.
type CatalogEntry struct {
	Name   string        `yaml:"name"`
	Mesh   string        `yaml:"mesh"` // relative to AssetsConfig.Root
	Region Region        `yaml:"region"`
	Menu   MenuPlacement `yaml:"menu"`
}

// Region is a click rectangle in window pixels, exclusive on every edge.
type Region struct {
	MinX float32 `yaml:"min_x"`
	MaxX float32 `yaml:"max_x"`
	MinY float32 `yaml:"min_y"`
	MaxY float32 `yaml:"max_y"`
}

// MenuPlacement positions the asset's thumbnail in the menu pass.
type MenuPlacement struct {
	Position [3]float32 `yaml:"position"`
	Rotation [3]float32 `yaml:"rotation"` // factors of π radians
	Scale    float32    `yaml:"scale"`
}

// SceneConfig holds camera, lighting and snapshot settings.
type SceneConfig struct {
	SnapshotPath   string     `yaml:"snapshot_path"` // default file for save/load dialogs
	CameraFactor   float32    `yaml:"camera_factor"` // camera distance per unit of asset extent
	MenuFactor     float32    `yaml:"menu_factor"`
	LightDirection [3]float32 `yaml:"light_direction"`
	AmbientLight   [3]float32 `yaml:"ambient_light"`
	ClearColor     [4]float32 `yaml:"clear_color"`
}

// ControlsConfig holds the slider ranges.
type ControlsConfig struct {
	Position SliderRange `yaml:"position"`
	Rotation SliderRange `yaml:"rotation"`
	Scale    SliderRange `yaml:"scale"`
}

// SliderRange bounds one slider and sets its keyboard step.
type SliderRange struct {
	Min  float32 `yaml:"min"`
	Max  float32 `yaml:"max"`
	Step float32 `yaml:"step"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "City Blocks",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Assets: AssetsConfig{
			Root:         "assets",
			Workers:      4,
			FetchTimeout: 15 * time.Second,
			Catalog:      DefaultCatalog(),
		},
		Scene: SceneConfig{
			SnapshotPath:   "scene_state.json",
			CameraFactor:   14,
			MenuFactor:     5,
			LightDirection: [3]float32{-1, 3, 5},
			AmbientLight:   [3]float32{0, 0, 0},
			ClearColor:     [4]float32{0.53, 0.75, 0.92, 1},
		},
		Controls: ControlsConfig{
			Position: SliderRange{Min: -100, Max: 100, Step: 1},
			Rotation: SliderRange{Min: -1, Max: 1, Step: 0.05},
			Scale:    SliderRange{Min: 0.1, Max: 5, Step: 0.1},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports configuration errors that would break asset loading or
// the menu.
func (c *Config) Validate() error {
	if c.Assets.Workers < 1 {
		return fmt.Errorf("assets.workers must be positive, got %d", c.Assets.Workers)
	}
	if len(c.Assets.Catalog) == 0 {
		return errors.New("assets.catalog is empty")
	}

	seen := make(map[string]bool, len(c.Assets.Catalog))
	for i, e := range c.Assets.Catalog {
		if e.Name == "" || e.Mesh == "" {
			return fmt.Errorf("catalog entry %d: name and mesh are required", i)
		}
		if seen[e.Name] {
			return fmt.Errorf("catalog entry %d: duplicate name %q", i, e.Name)
		}
		seen[e.Name] = true
		if e.Region.MinX >= e.Region.MaxX || e.Region.MinY >= e.Region.MaxY {
			return fmt.Errorf("catalog entry %q: empty region", e.Name)
		}
	}

	for name, r := range map[string]SliderRange{
		"position": c.Controls.Position,
		"rotation": c.Controls.Rotation,
		"scale":    c.Controls.Scale,
	} {
		if r.Min >= r.Max || r.Step <= 0 {
			return fmt.Errorf("controls.%s: invalid range [%g, %g] step %g", name, r.Min, r.Max, r.Step)
		}
	}
	return nil
}
