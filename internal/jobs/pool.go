package jobs

import (
	"sync"

	"go.uber.org/zap"
)

// Pool schedules generation passes on a fixed set of workers, separate
// from the request path. Submission is fire-and-forget; there is no
// cross-report ordering or priority.
type Pool struct {
	exec  *Executor
	queue chan uint
	log   *zap.Logger

	workers    sync.WaitGroup
	submitters sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewPool(exec *Executor, workers, queueSize int, log *zap.Logger) *Pool {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	p := &Pool{exec: exec, queue: make(chan uint, queueSize), log: log}
	for i := 0; i < workers; i++ {
		p.workers.Add(1)
		go p.worker()
	}
	return p
}

// Submit hands a report id to the pool without blocking the caller.
// When the buffer is full the send completes from a goroutine, so the
// job still runs, just later.
func (p *Pool) Submit(reportID uint) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.log.Warn("job pool stopped, dropping report", zap.Uint("report_id", reportID))
		return
	}
	select {
	case p.queue <- reportID:
		p.mu.Unlock()
	default:
		p.submitters.Add(1)
		p.mu.Unlock()
		go func() {
			defer p.submitters.Done()
			p.queue <- reportID
		}()
	}
}

func (p *Pool) worker() {
	defer p.workers.Done()
	for id := range p.queue {
		// The failure is already recorded on the report row; the pool
		// just logs that a task failed. No retry.
		if err := p.exec.Perform(id); err != nil {
			p.log.Error("report job failed", zap.Uint("report_id", id), zap.Error(err))
		}
	}
}

// Stop waits for in-flight submissions, drains the queue and stops the
// workers.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.submitters.Wait()
	close(p.queue)
	p.workers.Wait()
}
