package solver

import (
	"context"
	"sync"

	"github.com/simonbw/tack-and-trim-sub009/internal/config"
	"github.com/simonbw/tack-and-trim-sub009/internal/terrain"
	"github.com/simonbw/tack-and-trim-sub009/internal/wave"
)

// Job is one wave-source solve request. Independent solves share nothing, so
// a caller blending several wave trains can submit them all and collect
// results as they finish.
type Job struct {
	Field  terrain.HeightSampler
	Source wave.Source
	Tide   float64
	Bounds *Bounds
	Config config.Solver
	// ResultChan receives the finished grid.
	ResultChan chan Result
}

// Result pairs a finished grid with the source it was solved for.
type Result struct {
	Source wave.Source
	Grid   *Grid
}

// Pool runs wave-source solves on a fixed set of worker goroutines. The
// solver itself stays single-threaded; the pool is the caller-side harness
// for running many sources at once.
type Pool struct {
	jobQueue chan Job
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewPool starts workers goroutines servicing a queue of queueSize jobs.
func NewPool(workers, queueSize int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		jobQueue: make(chan Job, queueSize),
		ctx:      ctx,
		cancel:   cancel,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Submit queues a job without blocking. Returns false if the queue is full.
func (p *Pool) Submit(job Job) bool {
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

// SubmitBlocking queues a job, waiting for room. Returns false only if the
// pool shut down first.
func (p *Pool) SubmitBlocking(job Job) bool {
	select {
	case p.jobQueue <- job:
		return true
	case <-p.ctx.Done():
		return false
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			grid := Solve(job.Field, job.Source, job.Tide, job.Bounds, job.Config)
			select {
			case job.ResultChan <- Result{Source: job.Source, Grid: grid}:
			case <-p.ctx.Done():
				return
			}
		case <-p.ctx.Done():
			return
		}
	}
}

// Shutdown stops the workers. Queued but unstarted jobs are dropped; a solve
// already running runs to completion, there is no mid-solve cancellation.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// QueueLen returns the number of jobs waiting for a worker.
func (p *Pool) QueueLen() int {
	return len(p.jobQueue)
}
