package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// WorkerPool runs pixel jobs (tiles, row bands) on a fixed set of goroutines.
//
// Each worker owns a queue. Jobs are dealt round-robin; an idle worker steals
// from the other queues before blocking on its own.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers []*worker
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
	helped  atomic.Uint64
}

// worker is one goroutine's queue and counters. The counters are written by
// their own goroutine on every job, so they sit on separate cache lines.
type worker struct {
	queue chan func()
	_     cpu.CacheLinePad
	ran   atomic.Uint64
	stole atomic.Uint64
	_     cpu.CacheLinePad
}

// WorkerStats reports what one worker has done since the pool started.
type WorkerStats struct {
	// Executed counts jobs run by the worker, stolen ones included.
	Executed uint64
	// Stolen counts jobs the worker took from another worker's queue.
	Stolen uint64
}

// NewWorkerPool starts a pool with n workers. If n <= 0, GOMAXPROCS is used.
func NewWorkerPool(n int) *WorkerPool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	queueSize := max(n*4, 8)

	p := &WorkerPool{
		workers: make([]*worker, n),
		done:    make(chan struct{}),
	}
	for i := range p.workers {
		p.workers[i] = &worker{queue: make(chan func(), queueSize)}
	}
	p.running.Store(true)

	p.wg.Add(n)
	for i := range p.workers {
		go p.loop(i)
	}
	return p
}

func (p *WorkerPool) loop(id int) {
	defer p.wg.Done()
	w := p.workers[id]

	for {
		select {
		case <-p.done:
			p.drain(w)
			return
		case job := <-w.queue:
			p.run(w, job)
			continue
		default:
		}

		if job := p.steal(id); job != nil {
			w.stole.Add(1)
			p.run(w, job)
			continue
		}

		select {
		case <-p.done:
			p.drain(w)
			return
		case job := <-w.queue:
			p.run(w, job)
		}
	}
}

func (p *WorkerPool) run(w *worker, job func()) {
	if job == nil {
		return
	}
	job()
	w.ran.Add(1)
}

func (p *WorkerPool) drain(w *worker) {
	for {
		select {
		case job := <-w.queue:
			p.run(w, job)
		default:
			return
		}
	}
}

func (p *WorkerPool) steal(id int) func() {
	for i, other := range p.workers {
		if i == id {
			continue
		}
		select {
		case job := <-other.queue:
			return job
		default:
		}
	}
	return nil
}

// ExecuteAll runs every job and returns when all of them have finished.
// On a closed pool the jobs run on the calling goroutine.
//
// While it waits, the caller runs queued jobs itself, so ExecuteAll may be
// called from inside a job of the same pool.
func (p *WorkerPool) ExecuteAll(jobs []func()) {
	if len(jobs) == 0 {
		return
	}
	if !p.running.Load() {
		for _, job := range jobs {
			job()
		}
		return
	}

	var pending atomic.Int64
	pending.Store(int64(len(jobs)))
	finished := make(chan struct{})
	for i, job := range jobs {
		wrapped := func() {
			job()
			if pending.Add(-1) == 0 {
				close(finished)
			}
		}
		select {
		case p.workers[i%len(p.workers)].queue <- wrapped:
		default:
			// Queue full.
			p.helped.Add(1)
			wrapped()
		}
	}
	p.help(finished)
}

// help runs queued jobs on the calling goroutine until finished is closed.
// It blocks only once every queue is empty: the caller's jobs have all been
// dequeued by then and are running elsewhere.
func (p *WorkerPool) help(finished <-chan struct{}) {
	for {
		select {
		case <-finished:
			return
		default:
		}
		job := p.steal(-1)
		if job == nil {
			<-finished
			return
		}
		p.helped.Add(1)
		job()
	}
}

// Submit queues a single job on the least loaded worker without waiting
// for it. It is a no-op on a closed pool.
func (p *WorkerPool) Submit(job func()) {
	if job == nil || !p.running.Load() {
		return
	}
	target := p.workers[0]
	for _, w := range p.workers[1:] {
		if len(w.queue) < len(target.queue) {
			target = w
		}
	}
	select {
	case target.queue <- job:
	case <-p.done:
	}
}

// Close stops accepting work, finishes everything queued and stops the
// workers. Close is idempotent.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers.
func (p *WorkerPool) Workers() int { return len(p.workers) }

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool { return p.running.Load() }

// QueuedWork returns an approximate count of queued jobs.
func (p *WorkerPool) QueuedWork() int {
	total := 0
	for _, w := range p.workers {
		total += len(w.queue)
	}
	return total
}

// Helped returns the number of jobs run by goroutines waiting in
// ExecuteAll rather than by workers.
func (p *WorkerPool) Helped() uint64 { return p.helped.Load() }

// Stats returns per-worker counters.
func (p *WorkerPool) Stats() []WorkerStats {
	out := make([]WorkerStats, len(p.workers))
	for i, w := range p.workers {
		out[i] = WorkerStats{Executed: w.ran.Load(), Stolen: w.stole.Load()}
	}
	return out
}

var (
	defaultOnce sync.Once
	defaultPool *WorkerPool
)

// Default returns a process-wide pool sized to GOMAXPROCS. It is created on
// first use and never closed.
func Default() *WorkerPool {
	defaultOnce.Do(func() { defaultPool = NewWorkerPool(0) })
	return defaultPool
}
