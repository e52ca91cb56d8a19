package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.FPSLimit != 60 {
		t.Errorf("expected fps limit 60, got %d", cfg.Graphics.FPSLimit)
	}

	if cfg.Terrain.WorldSize != 800 {
		t.Errorf("expected world size 800, got %v", cfg.Terrain.WorldSize)
	}
	if cfg.Terrain.MaxHeight != 45 {
		t.Errorf("expected max height 45, got %v", cfg.Terrain.MaxHeight)
	}
	if cfg.Terrain.GridX != -1 || cfg.Terrain.GridZ != -1 {
		t.Errorf("expected terrain tile (-1,-1), got (%d,%d)", cfg.Terrain.GridX, cfg.Terrain.GridZ)
	}
	if cfg.Terrain.EdgePolicy != "zero" {
		t.Errorf("expected edge policy 'zero', got %s", cfg.Terrain.EdgePolicy)
	}

	if cfg.Player.RunSpeed != 40 || cfg.Player.TurnSpeed != 160 {
		t.Errorf("unexpected player speeds %+v", cfg.Player)
	}
	if cfg.Player.Gravity != -70 || cfg.Player.JumpPower != 30 {
		t.Errorf("unexpected player jump settings %+v", cfg.Player)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Metrics.Addr != "" {
		t.Errorf("expected metrics disabled by default, got %s", cfg.Metrics.Addr)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  fps_limit: 144

terrain:
  heightmap: "maps/valley.png"
  grid_x: 0
  grid_z: 2
  world_size: 1600
  max_height: 80
  channel: "gray"
  edge_policy: "clamp"

scene:
  file: "scenes/valley.yaml"

player:
  run_speed: 55

logging:
  level: "debug"
  log_file: "dreaming.log"

metrics:
  addr: ":2112"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Terrain.Heightmap != "maps/valley.png" {
		t.Errorf("expected heightmap maps/valley.png, got %s", cfg.Terrain.Heightmap)
	}
	if cfg.Terrain.GridX != 0 || cfg.Terrain.GridZ != 2 {
		t.Errorf("expected tile (0,2), got (%d,%d)", cfg.Terrain.GridX, cfg.Terrain.GridZ)
	}
	if cfg.Terrain.WorldSize != 1600 || cfg.Terrain.MaxHeight != 80 {
		t.Errorf("unexpected terrain size %+v", cfg.Terrain)
	}
	if cfg.Terrain.Channel != "gray" || cfg.Terrain.EdgePolicy != "clamp" {
		t.Errorf("unexpected terrain decode settings %+v", cfg.Terrain)
	}
	if cfg.Scene.File != "scenes/valley.yaml" {
		t.Errorf("expected scene file, got %s", cfg.Scene.File)
	}

	// Unset keys keep their defaults
	if cfg.Player.RunSpeed != 55 {
		t.Errorf("expected run speed 55, got %v", cfg.Player.RunSpeed)
	}
	if cfg.Player.TurnSpeed != 160 {
		t.Errorf("expected default turn speed 160, got %v", cfg.Player.TurnSpeed)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "dreaming.log" {
		t.Errorf("unexpected logging settings %+v", cfg.Logging)
	}
	if cfg.Metrics.Addr != ":2112" {
		t.Errorf("expected metrics addr :2112, got %s", cfg.Metrics.Addr)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
terrain:
  world_size: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Fatal("expected error loading invalid YAML, got nil")
	}
	if !strings.Contains(err.Error(), "invalid.yaml") {
		t.Errorf("expected file name in error, got %v", err)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero world size", func(c *Config) { c.Terrain.WorldSize = 0 }, "world_size"},
		{"negative max height", func(c *Config) { c.Terrain.MaxHeight = -1 }, "max_height"},
		{"empty heightmap", func(c *Config) { c.Terrain.Heightmap = "" }, "heightmap"},
		{"unknown channel", func(c *Config) { c.Terrain.Channel = "alpha" }, "channel"},
		{"unknown edge policy", func(c *Config) { c.Terrain.EdgePolicy = "wrap" }, "edge_policy"},
		{"zero window", func(c *Config) { c.Graphics.Width = 0 }, "window size"},
		{"inverted clip planes", func(c *Config) { c.Camera.Far = 0.01 }, "clip planes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Terrain.Heightmap = "maps/dunes.tiff"
	cfg.Metrics.Addr = "127.0.0.1:9100"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Terrain.Heightmap != "maps/dunes.tiff" {
		t.Errorf("expected heightmap to survive save, got %s", loaded.Terrain.Heightmap)
	}
	if loaded.Metrics.Addr != "127.0.0.1:9100" {
		t.Errorf("expected metrics addr to survive save, got %s", loaded.Metrics.Addr)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "heightmap and scene flags",
			setup: func() { *flagHeightmap = "alt.png"; *flagScene = "alt.yaml" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.Heightmap != "alt.png" {
					t.Errorf("expected heightmap alt.png, got %s", cfg.Terrain.Heightmap)
				}
				if cfg.Scene.File != "alt.yaml" {
					t.Errorf("expected scene alt.yaml, got %s", cfg.Scene.File)
				}
			},
			teardown: func() { *flagHeightmap = ""; *flagScene = "" },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name:  "width and height flags",
			setup: func() { *flagWidth = 2560; *flagHeight = 1440 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() { *flagWidth = 0; *flagHeight = 0 },
		},
		{
			name:  "metrics flag",
			setup: func() { *flagMetricsAddr = ":9090" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Metrics.Addr != ":9090" {
					t.Errorf("expected metrics addr :9090, got %s", cfg.Metrics.Addr)
				}
			},
			teardown: func() { *flagMetricsAddr = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("terrain:\n  world_size: -5\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected Load to reject a negative world size")
	}
}
