package worker

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/getsentry/sentry-go"
)

// Pool runs CPU bound jobs on a fixed number of goroutines. Jobs that panic are reported to sentry
// and surface as errors from Wait.
type Pool struct {
	queue chan func() error
	wg    sync.WaitGroup

	errMu sync.Mutex
	errs  []error
}

// NewPool starts n workers. A non-positive n uses one worker per CPU.
func NewPool(n int) *Pool {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	p := &Pool{queue: make(chan func() error, n)}
	for i := 0; i < n; i++ {
		go p.work()
	}
	return p
}

func (p *Pool) work() {
	for f := range p.queue {
		p.run(f)
	}
}

func (p *Pool) run(f func() error) {
	defer p.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			sentry.CurrentHub().Recover(r)
			p.fail(fmt.Errorf("worker: job panicked: %v", r))
		}
	}()
	if err := f(); err != nil {
		p.fail(err)
	}
}

func (p *Pool) fail(err error) {
	p.errMu.Lock()
	p.errs = append(p.errs, err)
	p.errMu.Unlock()
}

// Go queues a job. It blocks while every worker is busy and the queue is full.
func (p *Pool) Go(f func() error) {
	p.wg.Add(1)
	p.queue <- f
}

// Wait blocks until every queued job has finished, then stops the workers. The pool cannot be
// reused afterwards.
func (p *Pool) Wait() error {
	p.wg.Wait()
	close(p.queue)

	p.errMu.Lock()
	defer p.errMu.Unlock()
	return errors.Join(p.errs...)
}
