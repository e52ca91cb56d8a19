// Package config handles runtime configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all runtime settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Scene    SceneConfig    `yaml:"scene"`
	Player   PlayerConfig   `yaml:"player"`
	Camera   CameraConfig   `yaml:"camera"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	Samples    int  `yaml:"samples"` // MSAA samples, 0 disables

	ScreenshotDir string `yaml:"screenshot_dir"` // F12 captures land here
}

// TerrainConfig describes the single terrain patch.
type TerrainConfig struct {
	Heightmap  string  `yaml:"heightmap"`   // Path to the raster image
	GridX      int     `yaml:"grid_x"`      // Tile coordinate, origin = grid_x * world_size
	GridZ      int     `yaml:"grid_z"`      // Tile coordinate, origin = grid_z * world_size
	WorldSize  float32 `yaml:"world_size"`  // Side length in world units
	MaxHeight  float32 `yaml:"max_height"`  // Height of a full-range sample
	Channel    string  `yaml:"channel"`     // packed, gray or red
	EdgePolicy string  `yaml:"edge_policy"` // zero or clamp (normals at the border)
}

// SceneConfig points at the scene description.
type SceneConfig struct {
	File string `yaml:"file"` // Empty uses the built-in demo scene
}

// PlayerConfig holds movement tuning.
type PlayerConfig struct {
	RunSpeed  float32 `yaml:"run_speed"`
	TurnSpeed float32 `yaml:"turn_speed"`
	Gravity   float32 `yaml:"gravity"`
	JumpPower float32 `yaml:"jump_power"`
}

// CameraConfig holds follow camera and projection settings.
type CameraConfig struct {
	Distance float32 `yaml:"distance"`
	Pitch    float32 `yaml:"pitch"` // degrees
	FOV      float32 `yaml:"fov"`   // degrees
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // Empty disables the endpoint
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      false,
			FPSLimit:   60,
			Samples:    8,

			ScreenshotDir: "screenshots",
		},
		Terrain: TerrainConfig{
			Heightmap:  "res/heightmap.png",
			GridX:      -1,
			GridZ:      -1,
			WorldSize:  800,
			MaxHeight:  45,
			Channel:    "packed",
			EdgePolicy: "zero",
		},
		Player: PlayerConfig{
			RunSpeed:  40,
			TurnSpeed: 160,
			Gravity:   -70,
			JumpPower: 30,
		},
		Camera: CameraConfig{
			Distance: 70,
			Pitch:    15,
			FOV:      70,
			Near:     0.1,
			Far:      1000,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings that cannot produce a working scene.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: window size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Terrain.Heightmap == "" {
		errs = append(errs, errors.New("terrain: heightmap path is empty"))
	}
	if c.Terrain.WorldSize <= 0 {
		errs = append(errs, fmt.Errorf("terrain: world_size %v must be positive", c.Terrain.WorldSize))
	}
	if c.Terrain.MaxHeight <= 0 {
		errs = append(errs, fmt.Errorf("terrain: max_height %v must be positive", c.Terrain.MaxHeight))
	}
	switch c.Terrain.Channel {
	case "packed", "gray", "red":
	default:
		errs = append(errs, fmt.Errorf("terrain: unknown channel %q", c.Terrain.Channel))
	}
	switch c.Terrain.EdgePolicy {
	case "zero", "clamp":
	default:
		errs = append(errs, fmt.Errorf("terrain: unknown edge_policy %q", c.Terrain.EdgePolicy))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera: invalid clip planes near=%v far=%v", c.Camera.Near, c.Camera.Far))
	}
	return errors.Join(errs...)
}
