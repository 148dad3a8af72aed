package workerpool

import (
	"log"
	"sync"
)

// Task is one unit of work submitted to the pool.
type Task func() error

// WorkerPool bounds how many tasks run at once. Tasks are independent: one
// task failing never cancels another, and no ordering is guaranteed.
type WorkerPool interface {
	// submit a task for execution
	Submit(name string, task Task)
	// wait for all submitted tasks to finish
	Wait()
	// names of tasks currently running
	ActiveTasks() []string
}

type _WorkerPool struct {
	wg      sync.WaitGroup
	sem     chan struct{}
	errChan chan<- error

	mu     sync.Mutex
	active map[string]int
}

// New creates a pool running at most size tasks concurrently. Task errors are
// sent to errChan; the caller owns the channel and closes it after Wait.
func New(size int, errChan chan<- error) WorkerPool {
	if size < 1 {
		size = 1
	}
	return &_WorkerPool{
		sem:     make(chan struct{}, size),
		errChan: errChan,
		active:  make(map[string]int),
	}
}

// submit a task for execution
func (p *_WorkerPool) Submit(name string, task Task) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.sem <- struct{}{}
		defer func() { <-p.sem }()

		p.track(name, 1)
		defer p.track(name, -1)

		if err := task(); err != nil {
			log.Printf("task [%s] failed : [%v]", name, err)
			if p.errChan != nil {
				p.errChan <- err
			}
		}
	}()
}

// wait for all submitted tasks to finish
func (p *_WorkerPool) Wait() {
	p.wg.Wait()
}

// names of tasks currently running
func (p *_WorkerPool) ActiveTasks() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var names []string
	for name, count := range p.active {
		if count > 0 {
			names = append(names, name)
		}
	}
	return names
}

func (p *_WorkerPool) track(name string, delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.active[name] += delta
	if p.active[name] == 0 {
		delete(p.active, name)
	}
}
