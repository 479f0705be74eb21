package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"gamecraft/internal/config"
	"gamecraft/internal/game"
	"gamecraft/internal/graphics/renderables/blocks"
	renderer "gamecraft/internal/graphics/renderer"
	"gamecraft/internal/logging"
	"gamecraft/internal/meshing"
	"gamecraft/internal/profiling"
	"gamecraft/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	cfg := config.DefaultConfig()

	configPath := flag.String("config", "", "YAML config file (default $"+config.EnvConfigPath+")")
	flag.StringVar(&cfg.World.Generator, "generator", cfg.World.Generator, "terrain generator: flat or noise")
	flag.Int64Var(&cfg.World.Seed, "seed", cfg.World.Seed, "noise generator seed")
	flag.IntVar(&cfg.World.Radius, "radius", cfg.World.Radius, "chunk columns around the origin")
	flag.StringVar(&cfg.World.SaveDir, "save", cfg.World.SaveDir, "load chunks from and save them to this directory")
	flag.IntVar(&cfg.Meshing.Workers, "workers", cfg.Meshing.Workers, "mesh worker goroutines")
	flag.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "debug, info, warn or error")
	flag.StringVar(&cfg.MetricsAddr, "metrics", cfg.MetricsAddr, "serve Prometheus metrics on this address")
	flag.Parse()

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	fromFile, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	config.Merge(cfg, fromFile, explicit)

	log := logging.New(cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Error("gamecraft", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.MetricsAddr != "" {
		serveMetrics(ctx, cfg.MetricsAddr, log)
	}

	manager, store, err := buildWorld(cfg, log)
	if err != nil {
		return err
	}

	pool := meshing.NewWorkerPool(cfg.Meshing.Workers, cfg.Meshing.Queue)
	defer pool.Shutdown()

	start := time.Now()
	results, err := meshing.MeshAll(ctx, pool, manager.Chunks())
	if err != nil {
		return fmt.Errorf("mesh chunks: %w", err)
	}
	log.Info("meshed chunks", "count", len(results), "took", time.Since(start))

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Debug("opengl context", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	blocksRenderer := blocks.NewBlocks()
	fbw, fbh := window.GetFramebufferSize()
	r, err := renderer.NewRenderer(fbw, fbh, blocksRenderer)
	if err != nil {
		return err
	}
	defer r.Dispose()
	r.UpdateViewport(fbw, fbh)

	for _, res := range results {
		if res.Error != nil {
			return fmt.Errorf("mesh chunk %s: %w", res.Coord, res.Error)
		}
		blocksRenderer.Upload(res.Coord, res.Mesh)
	}
	r.GetCamera().Frame(manager.Bounds())

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		r.UpdateViewport(w, h)
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	// vsync already paces presentation
	fpsLimit := cfg.Window.FPSLimit
	if cfg.Window.VSync {
		fpsLimit = 0
	}
	loop := newRenderLoop(window, r, blocksRenderer, game.NewFPSLimiter(fpsLimit), log)
	loop.Run(ctx)

	if store != nil {
		return manager.SaveTo(store)
	}
	return nil
}

// buildWorld loads chunks from the save directory if one is configured and
// generates them otherwise.
func buildWorld(cfg *config.Config, log *slog.Logger) (*world.ChunkManager, *world.ChunkStore, error) {
	gen, err := world.NewGenerator(cfg.World.Generator, cfg.World.Seed)
	if err != nil {
		return nil, nil, err
	}
	manager := world.NewChunkManager(gen, world.WithRadius(cfg.World.Radius), world.WithLogger(log))

	var store *world.ChunkStore
	if cfg.World.SaveDir != "" {
		store, err = world.NewChunkStore(cfg.World.SaveDir)
		if err != nil {
			return nil, nil, err
		}
		if _, err := manager.LoadFrom(store); err != nil {
			return nil, nil, err
		}
	}
	manager.EnsureChunks()
	return manager, store, nil
}

func setupWindow(wc config.WindowConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(wc.Width, wc.Height, wc.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if wc.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	return window, nil
}

func serveMetrics(ctx context.Context, addr string, log *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(profiling.Registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
