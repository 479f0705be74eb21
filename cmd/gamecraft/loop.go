package main

import (
	"context"
	"log/slog"
	"time"

	"gamecraft/internal/game"
	"gamecraft/internal/graphics/renderables/blocks"
	renderer "gamecraft/internal/graphics/renderer"
	"gamecraft/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// renderLoop draws the static world until the window closes or ctx is done.
type renderLoop struct {
	window   *glfw.Window
	renderer *renderer.Renderer
	blocks   *blocks.Blocks
	log      *slog.Logger
	limiter  *game.FPSLimiter

	// Timing
	frames           int
	lastFPSCheckTime time.Time
	lastTime         time.Time
}

func newRenderLoop(window *glfw.Window, r *renderer.Renderer, b *blocks.Blocks, limiter *game.FPSLimiter, log *slog.Logger) *renderLoop {
	return &renderLoop{
		window:           window,
		renderer:         r,
		blocks:           b,
		log:              log,
		limiter:          limiter,
		lastFPSCheckTime: time.Now(),
		lastTime:         time.Now(),
	}
}

// Run blocks on the main thread.
func (l *renderLoop) Run(ctx context.Context) {
	for !l.window.ShouldClose() {
		if ctx.Err() != nil {
			return
		}
		l.tick()
	}
}

func (l *renderLoop) tick() {
	profiling.ResetFrame()
	now := time.Now()
	dt := now.Sub(l.lastTime).Seconds()
	l.lastTime = now

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	l.renderer.Render(dt)

	func() { defer profiling.Track("glfw.SwapBuffers")(); l.window.SwapBuffers() }()

	l.frames++
	if since := time.Since(l.lastFPSCheckTime); since >= time.Second {
		l.log.Debug("frame stats",
			"fps", float64(l.frames)/since.Seconds(),
			"drawn", l.blocks.Drawn,
			"culled", l.blocks.Culled,
			"render", profiling.SumWithPrefix("renderer."),
			"top", profiling.TopN(3),
		)
		l.frames = 0
		l.lastFPSCheckTime = time.Now()
	}

	l.limiter.Wait()
}
