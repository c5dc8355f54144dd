// Package worker provides a bounded worker pool, batch analysis over many
// conversation files, and rate limiting for outbound LLM calls.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed by the pool.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of a job execution.
type Result interface {
	Err() error
}

// Pool runs jobs across a fixed number of workers.
type Pool struct {
	workers   int
	jobQueue  chan Job
	results   chan Result
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewPool creates a pool with the given number of workers, minimum one.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, workers*2),
		results:  make(chan Result, workers*2),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. Submissions after Shutdown are dropped.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobQueue <- job:
	}
}

// Close signals that no more jobs will be submitted. The results channel
// is closed once the workers drain the queue. Call it once, after the
// final Submit.
func (p *Pool) Close() {
	close(p.jobQueue)

	go func() {
		p.wg.Wait()
		p.closeResults()
	}()
}

// Results returns the channel results arrive on. It is closed after Close
// once all accepted jobs have finished.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Wait closes the queue, drains all results and returns them. The channels
// are bounded, so when the job count may exceed the buffers, submit from a
// separate goroutine and range over Results instead.
func (p *Pool) Wait() []Result {
	p.Close()

	var results []Result
	for result := range p.results {
		results = append(results, result)
	}
	return results
}

// Shutdown cancels in-flight jobs and stops the workers.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
