package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/dreaming/internal/config"
	"github.com/Faultbox/dreaming/internal/engine/camera"
	"github.com/Faultbox/dreaming/internal/engine/renderer"
	"github.com/Faultbox/dreaming/internal/engine/terrain"
	"github.com/Faultbox/dreaming/internal/game/movement"
	"github.com/Faultbox/dreaming/internal/game/scene"
	"github.com/Faultbox/dreaming/internal/logger"
)

// LoadWorld reads the heightmap and scene named by cfg.
func LoadWorld(cfg *config.Config) (*World, error) {
	opts, err := terrainOptions(cfg.Terrain)
	if err != nil {
		return nil, err
	}

	hf, err := terrain.LoadHeightmap(cfg.Terrain.Heightmap, opts)
	if err != nil {
		return nil, err
	}

	sc := scene.Default()
	if cfg.Scene.File != "" {
		if sc, err = scene.Load(cfg.Scene.File); err != nil {
			return nil, err
		}
	}

	layout, err := scene.Build(sc, hf)
	if err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}

	if p := layout.Player.Transform.Position; !hf.Contains(p.X, p.Z) {
		logger.Warn("player starts outside the terrain",
			zap.Float32("x", p.X),
			zap.Float32("z", p.Z))
	}

	lo, hi := hf.MinMax()
	logger.Info("world loaded",
		zap.String("heightmap", cfg.Terrain.Heightmap),
		zap.Int("size", hf.Size()),
		zap.Float32("minHeight", lo),
		zap.Float32("maxHeight", hi),
		zap.Int("entities", len(layout.Entities)),
	)

	return NewWorld(hf, layout, followCamera(cfg.Camera), movement.Params{
		RunSpeed:  cfg.Player.RunSpeed,
		TurnSpeed: cfg.Player.TurnSpeed,
		Gravity:   cfg.Player.Gravity,
		JumpPower: cfg.Player.JumpPower,
	}), nil
}

func terrainOptions(cfg config.TerrainConfig) (terrain.Options, error) {
	channel, err := terrain.ParseChannel(cfg.Channel)
	if err != nil {
		return terrain.Options{}, err
	}
	opts := terrain.Options{
		WorldSize: cfg.WorldSize,
		MaxHeight: cfg.MaxHeight,
		Channel:   channel,
	}
	opts.OriginX, opts.OriginZ = terrain.TileOrigin(cfg.GridX, cfg.GridZ, cfg.WorldSize)
	return opts, nil
}

func followCamera(cfg config.CameraConfig) *camera.FollowCamera {
	cam := camera.NewFollowCamera()
	cam.Distance = cfg.Distance
	cam.Pitch = cfg.Pitch
	cam.FOV = cfg.FOV
	cam.Near = cfg.Near
	cam.Far = cfg.Far
	return cam
}

// renderResources converts registered scene resources for upload.
func renderResources(reg *scene.Registry) []renderer.Resource {
	out := make([]renderer.Resource, 0, reg.Len())
	for _, r := range reg.Resources() {
		out = append(out, renderer.Resource{
			Key:          r.Key,
			Name:         r.Name,
			Primitive:    r.Primitive,
			Colour:       r.Material.Colour,
			ShineDamper:  r.Material.ShineDamper,
			Reflectivity: r.Material.Reflectivity,
			FakeLighting: r.Material.FakeLighting,
		})
	}
	return out
}

func renderLights(lights []scene.Light) []renderer.Light {
	out := make([]renderer.Light, len(lights))
	for i, l := range lights {
		out[i] = renderer.Light(l)
	}
	return out
}
