// Command chunkdump generates chunks, meshes them on the worker pool and
// prints a per-chunk report. With -save the chunks are written to disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gamecraft/internal/config"
	"gamecraft/internal/logging"
	"gamecraft/internal/meshing"
	"gamecraft/internal/world"

	"github.com/fatih/color"
)

func main() {
	cfg := config.DefaultConfig()

	configPath := flag.String("config", "", "YAML config file (default $"+config.EnvConfigPath+")")
	flag.StringVar(&cfg.World.Generator, "generator", cfg.World.Generator, "terrain generator: flat or noise")
	flag.Int64Var(&cfg.World.Seed, "seed", cfg.World.Seed, "noise generator seed")
	flag.IntVar(&cfg.World.Radius, "radius", cfg.World.Radius, "chunk columns around the origin")
	flag.StringVar(&cfg.World.SaveDir, "save", cfg.World.SaveDir, "write chunks to this directory")
	flag.IntVar(&cfg.Meshing.Workers, "workers", cfg.Meshing.Workers, "mesh worker goroutines")
	flag.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "debug, info, warn or error")
	flag.Parse()

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	fromFile, err := config.Load(*configPath)
	if err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
	config.Merge(cfg, fromFile, explicit)

	log := logging.NewWithWriter(os.Stderr, cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log, os.Stdout); err != nil {
		log.Error("chunkdump", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger, out io.Writer) error {
	gen, err := world.NewGenerator(cfg.World.Generator, cfg.World.Seed)
	if err != nil {
		return err
	}
	manager := world.NewChunkManager(gen, world.WithRadius(cfg.World.Radius), world.WithLogger(log))
	manager.EnsureChunks()

	pool := meshing.NewWorkerPool(cfg.Meshing.Workers, cfg.Meshing.Queue)
	defer pool.Shutdown()

	start := time.Now()
	results, err := meshing.MeshAll(ctx, pool, manager.Chunks())
	if err != nil {
		return fmt.Errorf("mesh chunks: %w", err)
	}
	elapsed := time.Since(start)

	if err := writeReport(out, manager.Chunks(), results); err != nil {
		return err
	}
	fmt.Fprintf(out, "meshed %d chunks with %d workers in %s\n", len(results), cfg.Meshing.Workers, elapsed.Round(time.Microsecond))

	if cfg.World.SaveDir != "" {
		store, err := world.NewChunkStore(cfg.World.SaveDir)
		if err != nil {
			return err
		}
		if err := manager.SaveTo(store); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(out, "saved %d chunks to %s\n", manager.Len(), cfg.World.SaveDir)
	}
	return nil
}
