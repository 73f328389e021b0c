// Package worker provides the background task pool used for post-upload
// document processing. It makes the fire-and-forget pipeline an explicit,
// bounded abstraction: jobs are queued, executed by a fixed set of workers,
// and never retried: a failed job is terminal and the job's own handler is
// responsible for recording the failure state (e.g. marking a policy failed).
package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// ErrQueueFull is returned by Submit when the job queue has no free slots.
// Callers decide the fallback; the pool never blocks request handling.
var ErrQueueFull = errors.New("worker queue full")

// ErrStopped is returned by Submit after the pool has been stopped.
var ErrStopped = errors.New("worker pool stopped")

var (
	jobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_total",
			Help: "Total background jobs processed, by terminal result.",
		},
		[]string{"name", "result"},
	)
	queueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Number of background jobs waiting in the queue.",
		},
	)
)

func init() {
	prometheus.MustRegister(jobsTotal, queueDepth)
}

// Job is one unit of background work. Name labels metrics and logs; Do runs
// at most once.
type Job struct {
	Name string
	Do   func(ctx context.Context) error
}

// Pool executes jobs on a fixed number of goroutines fed by a bounded queue.
// It is safe for concurrent use.
type Pool struct {
	jobs chan Job
	wg   sync.WaitGroup

	mu      sync.Mutex
	stopped bool

	// baseCtx is the lifetime context handed to every job.
	baseCtx context.Context
	cancel  context.CancelFunc
}

// New constructs a Pool with the given worker count and queue capacity and
// starts its workers immediately.
func New(workers, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		jobs:    make(chan Job, queueSize),
		baseCtx: ctx,
		cancel:  cancel,
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.run()
	}
	return p
}

// Submit enqueues a job for execution. It never blocks: when the queue is
// full it returns ErrQueueFull, and after Stop it returns ErrStopped.
func (p *Pool) Submit(j Job) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return ErrStopped
	}
	select {
	case p.jobs <- j:
		queueDepth.Set(float64(len(p.jobs)))
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop closes the queue and waits for in-flight jobs to finish. Pending
// queued jobs still run; new submissions are rejected. The ctx bounds the
// wait: when it expires, remaining jobs are cancelled via their job context.
func (p *Pool) Stop(ctx context.Context) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		p.cancel()
		<-done
	}
}

// run drains the queue until it is closed.
func (p *Pool) run() {
	defer p.wg.Done()
	for j := range p.jobs {
		queueDepth.Set(float64(len(p.jobs)))
		p.execute(j)
	}
}

// execute runs one job exactly once, recording the terminal result. There is
// no retry path by design.
func (p *Pool) execute(j Job) {
	defer func() {
		if rec := recover(); rec != nil {
			jobsTotal.WithLabelValues(j.Name, "panic").Inc()
			log.Error().Interface("panic", rec).Str("job", j.Name).Msg("background job panicked")
		}
	}()

	if err := j.Do(p.baseCtx); err != nil {
		jobsTotal.WithLabelValues(j.Name, "failed").Inc()
		log.Error().Err(err).Str("job", j.Name).Msg("background job failed")
		return
	}
	jobsTotal.WithLabelValues(j.Name, "ok").Inc()
}
