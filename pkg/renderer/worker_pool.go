package renderer

import (
	"context"
	"image"
	"runtime"
	"sync"

	"github.com/avern/go-cubemap/pkg/cubemap"
)

// scanTask is one scanline of one face. Tasks carry their target buffer
// so workers write directly into disjoint rows without coordination.
type scanTask struct {
	face cubemap.Face
	img  *image.RGBA
	y    int
}

// scanResult reports completion of a single scanline.
type scanResult struct {
	face cubemap.Face
	err  error
}

// workerPool runs scanline tasks across a fixed set of goroutines.
type workerPool struct {
	renderer    *Renderer
	taskQueue   chan scanTask
	resultQueue chan scanResult
	numWorkers  int
	wg          sync.WaitGroup
}

func newWorkerPool(r *Renderer, numWorkers int) *workerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	queueDepth := len(cubemap.Faces) * r.opts.Size
	return &workerPool{
		renderer:    r,
		taskQueue:   make(chan scanTask, queueDepth),
		resultQueue: make(chan scanResult, queueDepth),
		numWorkers:  numWorkers,
	}
}

// start launches the workers. Each worker drains the task queue until
// it is closed, checking for cancellation between tasks.
func (wp *workerPool) start(ctx context.Context) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run(ctx)
	}
}

func (wp *workerPool) run(ctx context.Context) {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		if err := ctx.Err(); err != nil {
			wp.resultQueue <- scanResult{face: task.face, err: err}
			continue
		}

		wp.renderer.renderScanline(task.face, task.img, task.y)
		wp.resultQueue <- scanResult{face: task.face}
	}
}

func (wp *workerPool) submit(task scanTask) {
	wp.taskQueue <- task
}

func (wp *workerPool) closeTasks() {
	close(wp.taskQueue)
}

func (wp *workerPool) result() scanResult {
	return <-wp.resultQueue
}

func (wp *workerPool) wait() {
	wp.wg.Wait()
}
