package renderer

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/DCha2001/blackhole/pkg/core"
	"github.com/DCha2001/blackhole/pkg/lens"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains rendering configuration
type Config struct {
	TileSize   int              // Size of each tile (64x64 recommended)
	NumWorkers int              // Number of parallel workers (0 = use CPU count)
	March      lens.MarchConfig // Per-ray march tuning and bending policy
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   64,
		NumWorkers: 0,
		March:      lens.DefaultMarchConfig(),
	}
}

// Renderer shades full frames of the lensing pipeline using a pool of tile
// workers. A Renderer is reusable across frames; the per-frame camera state
// arrives in the FrameContext.
type Renderer struct {
	width, height int
	config        Config
	tiles         []*Tile
	workerPool    *WorkerPool
	logger        core.Logger
	started       bool
}

// NewRenderer creates a renderer for a fixed output resolution
func NewRenderer(width, height int, config Config, logger core.Logger) *Renderer {
	return &Renderer{
		width:      width,
		height:     height,
		config:     config,
		tiles:      NewTileGrid(width, height, config.TileSize),
		workerPool: NewWorkerPool(width, height, config),
		logger:     logger,
	}
}

// RenderFrame shades every pixel of one frame in parallel and returns the
// image together with frame statistics. The frame context must not be
// mutated while rendering is in flight.
func (r *Renderer) RenderFrame(frame lens.FrameContext) (*image.RGBA, RenderStats) {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))

	if !r.started {
		r.workerPool.Start()
		r.started = true
		r.logger.Printf("Rendering %dx%d with %d workers...\n",
			r.width, r.height, r.workerPool.GetNumWorkers())
	}

	start := time.Now()

	for i, tile := range r.tiles {
		r.workerPool.SubmitTask(TileTask{
			Tile:   tile,
			TaskID: i,
			Frame:  frame,
			Img:    img,
		})
	}

	var stats RenderStats
	for range r.tiles {
		result, ok := r.workerPool.GetResult()
		if !ok {
			break
		}
		stats.merge(result.Stats)
	}
	stats.finalize()

	r.logger.Printf("Frame completed in %v (%d captured, %d escaped, %.1f steps/pixel)\n",
		time.Since(start), stats.CapturedPixels, stats.EscapedPixels, stats.AverageSteps)

	return img, stats
}

// Close stops the worker pool. The renderer cannot be reused afterwards.
func (r *Renderer) Close() {
	if r.started {
		r.workerPool.Stop()
		r.started = false
	}
}

// renderBounds shades the pixels within bounds directly into the shared
// output image. Tiles have non-overlapping bounds, so this is safe to run
// concurrently for different tiles.
func renderBounds(frame lens.FrameContext, bounds image.Rectangle, img *image.RGBA, cfg lens.MarchConfig) RenderStats {
	var stats RenderStats

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			colorVec, result := lens.ShadePixel(frame, float64(x), float64(y), cfg)
			img.SetRGBA(x, y, vec3ToColor(colorVec))

			stats.TotalPixels++
			stats.TotalSteps += result.Steps
			if result.Outcome == lens.OutcomeCaptured {
				stats.CapturedPixels++
			} else {
				stats.EscapedPixels++
			}
		}
	}

	return stats
}

// vec3ToColor converts a Vec3 color to RGBA with proper clamping and gamma
// correction. Alpha is always fully opaque.
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	// Apply gamma correction (gamma = 2.0)
	colorVec = colorVec.GammaCorrect(2.0)

	// Clamp to valid color range
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
