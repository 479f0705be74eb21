package meshing

import (
	"context"
	"errors"
	"sync"

	"gamecraft/internal/profiling"
	"gamecraft/internal/world"
)

// ErrPoolClosed is returned for jobs that could not run because the pool shut down.
var ErrPoolClosed = errors.New("meshing: worker pool closed")

// MeshJob represents a meshing job request. Chunk must not be written while
// the job is pending; MeshAll submits snapshots for that reason.
type MeshJob struct {
	Chunk *world.Chunk
	// Result channel - will be sent the result when done
	ResultChan chan<- MeshResult
	// Seq is echoed back in the result so callers can restore ordering.
	Seq int
}

// MeshResult contains the result of a meshing operation
type MeshResult struct {
	Coord world.ChunkCoord
	Seq   int
	Mesh  *ChunkMesh
	Error error
}

// WorkerPool manages goroutines for mesh generation
type WorkerPool struct {
	jobQueue chan MeshJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	once     sync.Once
}

// NewWorkerPool creates a new mesh worker pool
func NewWorkerPool(workers int, queueSize int) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	ctx, cancel := context.WithCancel(context.Background())

	pool := &WorkerPool{
		jobQueue: make(chan MeshJob, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
	}

	// Start worker goroutines
	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	return pool
}

// SubmitJob submits a mesh generation job to the pool
// Returns true if job was submitted successfully, false if queue is full or the pool is closed
func (p *WorkerPool) SubmitJob(job MeshJob) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false // Queue is full
	}
}

// SubmitJobBlocking submits a job and blocks until it's queued, ctx is done
// or the pool shuts down.
func (p *WorkerPool) SubmitJobBlocking(ctx context.Context, job MeshJob) error {
	if p.ctx.Err() != nil {
		return ErrPoolClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case p.jobQueue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrPoolClosed
	}
}

// worker is the worker goroutine that processes mesh jobs
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			result := runJob(job)

			// Send result back
			select {
			case job.ResultChan <- result:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

func runJob(job MeshJob) (result MeshResult) {
	result.Seq = job.Seq
	if job.Chunk == nil {
		result.Error = errors.New("meshing: nil chunk")
		return result
	}
	result.Coord = job.Chunk.Position

	defer profiling.Track("meshing.GenerateMesh")()
	result.Mesh = GenerateMesh(job.Chunk)
	return result
}

// Shutdown stops the workers and waits for them to exit. Queued jobs that
// have not started are dropped. Safe to call more than once.
func (p *WorkerPool) Shutdown() {
	p.once.Do(func() {
		p.cancel()
		p.wg.Wait()
	})
}

// GetQueueLength returns the current number of jobs in the queue
func (p *WorkerPool) GetQueueLength() int {
	return len(p.jobQueue)
}

// MeshAll meshes snapshots of chunks on the pool and returns one result per
// chunk, in input order. It stops early if ctx is cancelled or the pool closes.
func MeshAll(ctx context.Context, p *WorkerPool, chunks []*world.Chunk) ([]MeshResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	results := make([]MeshResult, len(chunks))
	resultCh := make(chan MeshResult, len(chunks))

	submitted := 0
	for i, c := range chunks {
		job := MeshJob{Chunk: c.Clone(), ResultChan: resultCh, Seq: i}
		if err := p.SubmitJobBlocking(ctx, job); err != nil {
			return nil, err
		}
		submitted++
	}

	for received := 0; received < submitted; received++ {
		select {
		case r := <-resultCh:
			results[r.Seq] = r
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-p.ctx.Done():
			return nil, ErrPoolClosed
		}
	}
	return results, nil
}
