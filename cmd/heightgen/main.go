// heightgen writes a Perlin-noise heightmap PNG for the scene viewer.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/dreaming/internal/heightgen"
	"github.com/Faultbox/dreaming/internal/logger"
)

func main() {
	def := heightgen.DefaultParams()

	out := flag.String("out", "heightmap.png", "Output PNG path")
	size := flag.Int("size", def.Size, "Image width and height in pixels")
	seed := flag.Int64("seed", def.Seed, "Noise seed")
	octaves := flag.Int("octaves", int(def.Octaves), "Noise octaves")
	scale := flag.Float64("scale", def.Scale, "Noise periods across the image")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := "info"
	if *debug {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	p := def
	p.Size = *size
	p.Seed = *seed
	p.Octaves = int32(*octaves)
	p.Scale = *scale

	img, err := heightgen.Generate(p)
	if err != nil {
		logger.Error("generating heightmap", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	if err := heightgen.WritePNG(*out, img); err != nil {
		logger.Error("writing heightmap", zap.String("path", *out), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("heightmap written",
		zap.String("path", *out),
		zap.Int("size", p.Size),
		zap.Int64("seed", p.Seed),
	)
}
