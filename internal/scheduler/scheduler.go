// Package scheduler runs background maintenance tasks (index refreshes,
// prunes) off the request path, one at a time.
package scheduler

import (
	"context"
	"sync"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("marklink.scheduler")

// Task is one unit of background work. Name doubles as the coalescing key:
// a task whose name is already queued is dropped instead of queued twice.
type Task struct {
	Name    string
	Execute func() error
}

// Scheduler serializes background tasks on a single worker goroutine so
// index writes never race each other.
type Scheduler struct {
	queue chan Task

	mu      sync.Mutex
	pending map[string]bool
	wg      sync.WaitGroup
}

func NewScheduler(queueSize int) *Scheduler {
	return &Scheduler{
		queue:   make(chan Task, queueSize),
		pending: make(map[string]bool),
	}
}

// Run executes queued tasks until the context is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.drain()
			return
		case task := <-s.queue:
			s.mu.Lock()
			delete(s.pending, task.Name)
			s.mu.Unlock()

			if err := task.Execute(); err != nil {
				log.Errorf("task %s failed: %s", task.Name, err.Error())
			}
			s.wg.Done()
		}
	}
}

// drain discards queued tasks without executing them, releasing any Wait
// callers after cancellation.
func (s *Scheduler) drain() {
	for {
		select {
		case task := <-s.queue:
			s.mu.Lock()
			delete(s.pending, task.Name)
			s.mu.Unlock()
			s.wg.Done()
		default:
			return
		}
	}
}

// Schedule queues a task. Returns false when the task was coalesced with an
// identically-named pending one or the queue is full; a full queue is not an
// error, the next full scan converges anyway.
func (s *Scheduler) Schedule(task Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending[task.Name] {
		return false
	}

	select {
	case s.queue <- task:
		s.pending[task.Name] = true
		s.wg.Add(1)
		return true
	default:
		log.Warningf("queue full, dropped task %s", task.Name)
		return false
	}
}

// Wait blocks until every queued task has finished.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
