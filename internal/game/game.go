// Package game implements the main loop that steps the world and draws it.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/dreaming/internal/config"
	"github.com/Faultbox/dreaming/internal/engine/debug"
	"github.com/Faultbox/dreaming/internal/engine/frame"
	"github.com/Faultbox/dreaming/internal/engine/input"
	"github.com/Faultbox/dreaming/internal/engine/renderer"
	"github.com/Faultbox/dreaming/internal/engine/terrain"
	"github.com/Faultbox/dreaming/internal/engine/window"
	"github.com/Faultbox/dreaming/internal/game/movement"
	"github.com/Faultbox/dreaming/internal/logger"
	"github.com/Faultbox/dreaming/internal/metrics"
	"github.com/Faultbox/dreaming/pkg/math"
)

// Title is the window title.
const Title = "Dreaming"

// skyColour is the clear colour and the fog colour.
var skyColour = math.Vec3{X: 0.5444, Y: 0.62, Z: 0.69}

// Game is the main game instance.
type Game struct {
	config   *config.Config
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	world    *World
	lights   []renderer.Light

	screenshots *debug.Screenshots

	clock   *frame.Clock
	limiter *frame.Limiter

	registry *prometheus.Registry
	metrics  *metrics.Frame
}

// New loads the world and opens the window.
func New(cfg *config.Config) (*Game, error) {
	logger.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Bool("fullscreen", cfg.Graphics.Fullscreen),
	)

	// Load data before opening a window so bad input fails fast
	world, err := LoadWorld(cfg)
	if err != nil {
		return nil, err
	}

	edge, err := terrain.ParseEdge(cfg.Terrain.EdgePolicy)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	mesh := terrain.BuildMesh(world.Terrain, terrain.MeshOptions{Edge: edge})
	logger.Debug("terrain mesh built", zap.Duration("took", time.Since(start)))

	g := &Game{
		config:   cfg,
		world:    world,
		lights:   renderLights(world.Layout.Lights),
		clock:    frame.NewClock(),
		limiter:  frame.NewLimiter(cfg.Graphics.FPSLimit),
		registry: prometheus.NewRegistry(),

		screenshots: debug.NewScreenshots(cfg.Graphics.ScreenshotDir, "dreaming"),
	}
	if g.metrics, err = metrics.New(g.registry); err != nil {
		return nil, err
	}

	// Create window (this also creates OpenGL context)
	g.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    cfg.Graphics.Samples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := g.window.Size()
	g.renderer, err = renderer.New(renderer.Config{
		Width:     width,
		Height:    height,
		SkyColour: skyColour,
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	originX, originZ := world.Terrain.Origin()
	g.renderer.LoadTerrain(mesh, originX, originZ)
	if err := g.renderer.LoadResources(renderResources(world.Layout.Registry)); err != nil {
		g.Close()
		return nil, err
	}

	g.input = input.New()

	logger.Info("game initialized successfully")
	return g, nil
}

// Run runs the frame loop until the window closes, ESC is pressed or ctx is
// cancelled.
func (g *Game) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g.startMetrics(ctx)

	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting game loop")

	for ctx.Err() == nil {
		dt := g.clock.Tick(time.Now())

		in := g.input.Update()
		if in.Quit {
			break
		}
		if in.Resized {
			g.renderer.Resize(g.window.Size())
		}

		g.world.Update(dt, g.controls(in))
		g.render(dt)
		if in.Screenshot {
			g.screenshot()
		}
		g.window.SwapBuffers()
		g.limiter.Wait()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.window.SetTitle(fmt.Sprintf("%s - %d FPS", Title, frameCount))
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Float32("dt", dt),
				zap.Int("drawCalls", g.renderer.DrawCalls()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	logger.Info("game loop stopped", zap.Uint64("frames", g.clock.Frames()))
	return nil
}

func (g *Game) render(dt float32) {
	b := g.world.Submit()
	cam := g.world.Camera

	g.renderer.Begin()
	g.renderer.DrawScene(b, g.lights, renderer.View{
		View:       cam.ViewMatrix(),
		Projection: cam.Projection(g.renderer.Aspect()),
		CameraPos:  cam.Position,
	})

	g.metrics.Observe(dt, b.Stats(), g.renderer.DrawCalls())
}

// screenshot saves the frame just drawn, before it is presented.
func (g *Game) screenshot() {
	pixels, width, height := g.renderer.ReadPixels()
	path, err := g.screenshots.Save(pixels, width, height)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// controls maps held keys and mouse motion to world input.
func (g *Game) controls(in input.Frame) Controls {
	return Controls{
		Move: movement.Controls{
			Forward:   g.input.Held(sdl.SCANCODE_W),
			Backward:  g.input.Held(sdl.SCANCODE_S),
			TurnLeft:  g.input.Held(sdl.SCANCODE_A),
			TurnRight: g.input.Held(sdl.SCANCODE_D),
			Jump:      g.input.Held(sdl.SCANCODE_SPACE),
		},
		Zoom:  in.Wheel,
		DragX: in.DragX,
		DragY: in.DragY,
	}
}

// startMetrics serves the registry when an address is configured. Both
// goroutines stop with ctx.
func (g *Game) startMetrics(ctx context.Context) {
	addr := g.config.Metrics.Addr
	if addr == "" {
		return
	}
	go func() {
		if err := metrics.ListenAndServe(ctx, addr, g.registry); err != nil {
			logger.Error("metrics endpoint failed", zap.Error(err))
		}
	}()
	go func() {
		if err := g.metrics.SampleProcess(ctx, time.Second); err != nil {
			logger.Warn("process sampling disabled", zap.Error(err))
		}
	}()
}

// Close cleans up game resources.
func (g *Game) Close() {
	logger.Info("closing game")

	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
