package worker

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vytor/ladderflash/internal/logger"
)

var (
	ErrPoolClosed = errors.New("worker pool is stopped")
	ErrQueueFull  = errors.New("worker pool queue is full")
)

type Job interface {
	Run(context.Context) error
	Name() string
}

// Keyed jobs sharing a key run on the same worker in submission order.
type Keyed interface {
	Key() string
}

// Pool runs jobs on a fixed set of goroutines, each fed by its own bounded
// queue. Submit never blocks; Stop drains whatever is already queued.
type Pool struct {
	mu      sync.RWMutex
	queues  []chan Job
	next    atomic.Uint32
	wg      sync.WaitGroup
	workers int
	closed  bool
	cancel  context.CancelFunc
	log     *logger.Logger
}

// NewPool creates a pool of workers sharing queueSize slots evenly.
func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	perWorker := max(1, (queueSize+workers-1)/workers)

	log := logger.Default().WithPrefix("worker-pool")
	log.Debug("creating worker pool with %d workers and %d slots per worker", workers, perWorker)

	queues := make([]chan Job, workers)
	for i := range queues {
		queues[i] = make(chan Job, perWorker)
	}
	return &Pool{
		queues:  queues,
		workers: workers,
		log:     log,
	}
}

func (p *Pool) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.log.Debug("starting worker pool with %d workers", p.workers)

	for i, queue := range p.queues {
		p.wg.Add(1)
		go func(id int, queue <-chan Job) {
			defer p.wg.Done()
			workerLog := p.log.WithField("worker_id", id)
			workerLog.Debug("worker started")

			for job := range queue {
				if ctx.Err() != nil {
					workerLog.Debug("dropping job %s (context cancelled)", job.Name())
					continue
				}
				p.run(ctx, workerLog, job)
			}
			workerLog.Debug("worker stopped")
		}(i+1, queue)
	}
}

func (p *Pool) run(ctx context.Context, log *logger.Logger, job Job) {
	jobLog := log.WithField("job", job.Name())
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			jobLog.Error("job panicked: %v", rec)
		}
	}()

	if err := job.Run(logger.NewContext(ctx, jobLog)); err != nil {
		jobLog.Warn("job failed after %v: %v", time.Since(start), err)
		return
	}
	jobLog.Debug("job completed in %v", time.Since(start))
}

// Stop closes the queues, waits for queued jobs to finish and releases the
// workers' context.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	for _, queue := range p.queues {
		close(queue)
	}
	p.mu.Unlock()

	p.log.Debug("stopping worker pool, draining %d queued jobs", p.QueueSize())
	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
	p.log.Debug("worker pool stopped")
}

// Submit enqueues job without waiting for room. Keyed jobs always land on
// the worker their key hashes to; others are spread round-robin.
func (p *Pool) Submit(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.queues[p.shard(job)] <- job:
		p.log.Debug("submitted job: %s", job.Name())
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *Pool) shard(job Job) int {
	if k, ok := job.(Keyed); ok {
		h := fnv.New32a()
		_, _ = h.Write([]byte(k.Key()))
		return int(h.Sum32() % uint32(p.workers))
	}
	return int(p.next.Add(1) % uint32(p.workers))
}

// QueueSize returns the current number of pending jobs.
func (p *Pool) QueueSize() int {
	n := 0
	for _, queue := range p.queues {
		n += len(queue)
	}
	return n
}
