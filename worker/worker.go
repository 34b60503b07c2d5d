package worker

import (
	"runtime"
	"sync"

	"github.com/getsentry/sentry-go"
)

// Pool runs submitted functions on a fixed set of goroutines. A panicking function is reported to sentry
// and does not take its worker down.
type Pool struct {
	queue chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

// New starts a pool with the given amount of workers. A non-positive amount starts one worker per CPU.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := &Pool{queue: make(chan func(), workers)}
	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for f := range p.queue {
		run(f)
	}
}

func run(f func()) {
	defer sentry.Recover()
	f()
}

// Submit queues f to be run by a worker. To be used by a function that may be CPU intensive. Submit must
// not be called after Close.
func (p *Pool) Submit(f func()) {
	p.queue <- f
}

// Close stops accepting work and waits for every queued function to finish.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.queue)
	})
	p.wg.Wait()
}
