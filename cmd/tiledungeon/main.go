// Package main is the entry point for tiledungeon.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/tiledungeon/internal/config"
	"github.com/samdwyer/tiledungeon/internal/preview"
	"github.com/samdwyer/tiledungeon/internal/render"
	"github.com/samdwyer/tiledungeon/internal/telemetry"
	"github.com/samdwyer/tiledungeon/internal/world"
)

func main() {
	configPath := flag.String("config", "config.yaml", "YAML config file; empty uses the built-in defaults")
	outPath := flag.String("out", "output.png", "where to write the rendered map")
	seed := flag.Int64("seed", 0, "random seed; 0 uses the config seed, or the clock if that is 0 too")
	ascii := flag.Bool("ascii", false, "also print the map to stdout as text")
	showPreview := flag.Bool("preview", false, "open an interactive terminal preview after rendering")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <atlas image>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	atlasPath := flag.Arg(0)

	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	ctx := context.Background()

	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	} else {
		telemetry.Disable()
	}

	if err := run(ctx, *configPath, atlasPath, *outPath, *seed, *ascii, *showPreview); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, atlasPath, outPath string, seedFlag int64, ascii, showPreview bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	seed := pickSeed(seedFlag, cfg.Seed)
	d, err := world.Generate(ctx, cfg.Params(seed), rand.New(rand.NewSource(seed)))
	if err != nil {
		return fmt.Errorf("generate dungeon: %w", err)
	}
	log.Printf("Generated %dx%d map: %d rooms, %d corridors, %d attempts (seed %d)",
		d.Grid.Width, d.Grid.Height, len(d.Rooms), len(d.Corridors), d.Attempts, seed)

	atlas, err := render.LoadAtlas(atlasPath)
	if err != nil {
		return err
	}
	img, err := render.Compose(ctx, d.Grid, atlas, render.NewSprites(cfg), cfg.TileSize, cfg.Width, cfg.Height)
	if err != nil {
		return fmt.Errorf("compose image: %w", err)
	}
	if err := render.SavePNG(outPath, img); err != nil {
		return err
	}
	log.Printf("Wrote %s", outPath)

	if ascii {
		if err := render.WriteASCII(os.Stdout, d, true); err != nil {
			return fmt.Errorf("write ascii: %w", err)
		}
	}

	if showPreview {
		p, err := preview.New(cfg, d)
		if err != nil {
			return fmt.Errorf("open preview: %w", err)
		}
		return p.Run(ctx)
	}
	return nil
}

// loadConfig reads the config file, falling back to the built-in defaults
// only when the default path is absent.
func loadConfig(path string) (*config.Config, error) {
	if path == "config.yaml" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Printf("Note: %s not found, using built-in defaults", path)
			path = ""
		}
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func pickSeed(flagSeed, configSeed int64) int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	if configSeed != 0 {
		return configSeed
	}
	return time.Now().UnixNano()
}
