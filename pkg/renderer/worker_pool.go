package renderer

import (
	"image"
	"runtime"
	"sync"

	"github.com/DCha2001/blackhole/pkg/lens"
)

// TileTask represents a tile shading task for the worker pool
type TileTask struct {
	Tile   *Tile
	TaskID int
	Frame  lens.FrameContext
	Img    *image.RGBA // Shared output image; tiles have disjoint bounds
}

// TileResult contains the result from shading a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
}

// WorkerPool manages parallel tile shading. Pixel evaluations are pure
// functions of the frame context, so workers share nothing but the read-only
// frame and disjoint regions of the output image.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	numWorkers  int
	config      Config
	wg          sync.WaitGroup
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(width, height int, config Config) *WorkerPool {
	numWorkers := config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	// Buffer for every possible tile, assuming a worst case of 8x8 tiles
	maxTiles := ((width + 7) / 8) * ((height + 7) / 8)

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, maxTiles),
		resultQueue: make(chan TileResult, maxTiles),
		numWorkers:  numWorkers,
		config:      config,
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		stats := renderBounds(task.Frame, task.Tile.Bounds, task.Img, wp.config.March)
		wp.resultQueue <- TileResult{TaskID: task.TaskID, Stats: stats}
	}
}
