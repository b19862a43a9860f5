package renderer

import (
	"context"
	"image"
	"runtime"
	"sync"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DefaultTileSize is the edge length of a square render tile
const DefaultTileSize = 32

// Tile represents a rectangular region of the image to be rendered. Bounds
// are in image coordinates: row 0 is the top of the image.
type Tile struct {
	ID     int
	Bounds image.Rectangle
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}

	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize
	tiles := make([]*Tile, 0, tilesX*tilesY)

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{
				ID:     len(tiles),
				Bounds: image.Rect(x0, y0, x1, y1),
			})
		}
	}

	return tiles
}

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile *Tile
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TileID int
	Pixels int   // Pixels written
	Err    error // Set when the tile was skipped because the render was cancelled
}

// WorkerPool renders tiles in parallel into a shared framebuffer. Tiles do
// not overlap, so workers never write the same pixel.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual tile rendering tasks
type Worker struct {
	ID          int
	ctx         context.Context
	raytracer   *Raytracer
	framebuffer *Framebuffer
	taskQueue   chan TileTask
	resultQueue chan TileResult
}

// NewWorkerPool creates a worker pool sized for maxTiles queued tiles.
// numWorkers <= 0 uses one worker per CPU.
func NewWorkerPool(ctx context.Context, rt *Raytracer, fb *Framebuffer, maxTiles, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, maxTiles),
		resultQueue: make(chan TileResult, maxTiles),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			ctx:         ctx,
			raytracer:   rt,
			framebuffer: fb,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop closes the task queue, waits for the workers to drain it and closes
// the result queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
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

// run is the main worker loop. Cancellation is checked between tiles; a
// tile that has started always completes.
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if err := w.ctx.Err(); err != nil {
			w.resultQueue <- TileResult{TileID: task.Tile.ID, Err: err}
			continue
		}

		w.resultQueue <- TileResult{
			TileID: task.Tile.ID,
			Pixels: w.renderTile(task.Tile),
		}
	}
}

func (w *Worker) renderTile(tile *Tile) int {
	rt := w.raytracer
	for row := tile.Bounds.Min.Y; row < tile.Bounds.Max.Y; row++ {
		y := rt.height - 1 - row
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			w.framebuffer.Set(x, y, rt.RenderPixel(x, y))
		}
	}
	return tile.Bounds.Dx() * tile.Bounds.Dy()
}

// RenderOptions configures RenderImage
type RenderOptions struct {
	NumWorkers int         // 0 = runtime.NumCPU()
	TileSize   int         // 0 = DefaultTileSize
	Logger     core.Logger // nil = no logging
}

// RenderImage renders every pixel of the snapshot with a worker pool. If ctx
// is cancelled the partially rendered framebuffer is returned together with
// ctx.Err(); unrendered pixels stay black.
func RenderImage(ctx context.Context, rt *Raytracer, opts RenderOptions) (*Framebuffer, RenderStats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = core.NopLogger{}
	}

	start := time.Now()
	fb := NewFramebuffer(rt.width, rt.height)
	tiles := NewTileGrid(rt.width, rt.height, opts.TileSize)

	pool := NewWorkerPool(ctx, rt, fb, len(tiles), opts.NumWorkers)
	pool.Start()
	for _, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile})
	}
	pool.Stop()

	stats := RenderStats{
		TotalPixels: rt.width * rt.height,
		TotalTiles:  len(tiles),
		NumWorkers:  pool.GetNumWorkers(),
	}
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Err == nil {
			stats.RenderedTiles++
			stats.RenderedPixels += result.Pixels
		}
	}
	stats.Duration = time.Since(start)

	if err := ctx.Err(); err != nil && stats.RenderedTiles < stats.TotalTiles {
		logger.Printf("Render cancelled after %d/%d tiles\n", stats.RenderedTiles, stats.TotalTiles)
		return fb, stats, err
	}

	logger.Printf("Rendered %dx%d in mode %s (depth %d) in %v using %d workers\n",
		rt.width, rt.height, rt.config.Mode, rt.config.MaxDepth, stats.Duration, stats.NumWorkers)
	return fb, stats, nil
}
