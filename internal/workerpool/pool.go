// Package workerpool provides a bounded pool of goroutines that
// execute submitted jobs, used to keep the UDP listener loop itself
// free of blocking work (all blocking lives in the upstream transport,
// invoked from inside a job).
package workerpool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

var ErrPoolClosed = errors.New("worker pool closed")

// Job is a unit of work executed by a pool worker.
type Job interface {
	Execute(ctx context.Context)
}

// JobFunc adapts a plain function to the Job interface.
type JobFunc func(ctx context.Context)

func (f JobFunc) Execute(ctx context.Context) { f(ctx) }

// Config configures a Pool.
type Config struct {
	// Workers is the number of goroutines processing the queue.
	Workers int
	// QueueSize bounds how many submitted-but-not-yet-picked-up jobs
	// may sit in the channel before Submit blocks.
	QueueSize int
	// PanicHandler, if set, is invoked with the recovered value when a
	// job panics; the worker itself survives and keeps processing.
	PanicHandler func(any)
}

// Pool is a bounded, panic-tolerant worker pool.
type Pool struct {
	queue chan Job
	wg    sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
	closed atomic.Bool

	panicHandler func(any)

	jobsSubmitted atomic.Uint64
	jobsCompleted atomic.Uint64
	jobsFailed    atomic.Uint64
}

// New starts a Pool with cfg.Workers goroutines draining a queue of
// depth cfg.QueueSize.
func New(cfg Config) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 9
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = cfg.Workers * 100
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		queue:        make(chan Job, cfg.QueueSize),
		ctx:          ctx,
		cancel:       cancel,
		panicHandler: cfg.PanicHandler,
	}

	p.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.queue:
			if !ok {
				return
			}
			p.run(job)
		}
	}
}

func (p *Pool) run(job Job) {
	defer func() {
		if r := recover(); r != nil {
			if p.panicHandler != nil {
				p.panicHandler(r)
			}
			p.jobsFailed.Add(1)
			return
		}
		p.jobsCompleted.Add(1)
	}()
	job.Execute(p.ctx)
}

// Submit enqueues job, blocking until there is room or ctx is done.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}
	p.jobsSubmitted.Add(1)

	select {
	case p.queue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrPoolClosed
	}
}

// Close stops accepting new jobs and waits for in-flight and queued
// jobs to drain before returning.
func (p *Pool) Close() error {
	if p.closed.Swap(true) {
		return ErrPoolClosed
	}
	close(p.queue)
	p.wg.Wait()
	p.cancel()
	return nil
}

// Stats is a point-in-time snapshot of pool counters.
type Stats struct {
	Submitted  uint64
	Completed  uint64
	Failed     uint64
	QueueDepth int
}

// GetStats returns current pool statistics.
func (p *Pool) GetStats() Stats {
	return Stats{
		Submitted:  p.jobsSubmitted.Load(),
		Completed:  p.jobsCompleted.Load(),
		Failed:     p.jobsFailed.Load(),
		QueueDepth: len(p.queue),
	}
}
