package renderer

import (
	"context"
	"sync"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile   *Tile
	TaskID int // Index into the tile list
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  TileStats
	Error  error // Set when the tile was skipped because the render was cancelled
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker renders tiles with its own path tracer, so it owns its sampler,
// hit-chain scratch and diagnostics
type Worker struct {
	ID          int
	tracer      *pathTracer
	frame       *Frame
	taskQueue   chan TileTask
	resultQueue chan TileResult
}

// NewWorkerPool creates a worker pool writing into frame. The queues hold
// every task at once so submission never blocks.
func NewWorkerPool(job *RenderJob, frame *Frame, numTasks, numWorkers int) *WorkerPool {
	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, numTasks),
		resultQueue: make(chan TileResult, numTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			tracer:      newPathTracer(job),
			frame:       frame,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers. ctx is checked before each tile.
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
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

// Diagnostics merges what every worker recorded; call after Stop
func (wp *WorkerPool) Diagnostics() *core.Diagnostics {
	merged := core.NewDiagnostics()
	for _, worker := range wp.workers {
		merged.Merge(worker.tracer.diagnostics)
	}
	return merged
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if err := ctx.Err(); err != nil {
			w.resultQueue <- TileResult{TaskID: task.TaskID, Error: err}
			continue
		}

		stats := w.tracer.renderTile(task.Tile.Bounds, w.frame)
		w.resultQueue <- TileResult{TaskID: task.TaskID, Stats: stats}
	}
}
