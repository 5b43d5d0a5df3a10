// Package queue is the ultra machine's work queue: a bounded pool of worker
// goroutines that execute tasks independently, with enqueue / collect-
// completed / cancel primitives. It is built on golang.org/x/sync's
// errgroup and semaphore, the concurrency primitives the rest of the
// retrieval pack reaches for (vrdhn-package-installer/pkg/pkgs/manager.go
// uses errgroup.WithContext the same way) rather than a hand-rolled
// fixed-size goroutine-over-channel pool.
package queue

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/blaubart69/ultradel/internal/task"
)

// completedCap bounds the buffered channel workers post finished tasks to.
// A worker blocks on send if the loop goroutine falls behind draining it,
// which is acceptable backpressure — the same kind the original's native
// thread pool exerts when its completion queue is full.
const completedCap = 65536

// Queue is a bounded worker pool. Workers are independent: no worker ever
// waits on another worker, and Queue itself imposes no ordering across
// tasks.
type Queue struct {
	execFn func(*task.Task)

	ctx      context.Context
	cancelFn context.CancelFunc
	group    *errgroup.Group
	sem      *semaphore.Weighted

	completed chan *task.Task
}

// New starts a queue capable of running up to n tasks concurrently. execFn
// is called on a worker goroutine for every enqueued task.
func New(n int, execFn func(*task.Task)) *Queue {
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	return &Queue{
		execFn:    execFn,
		ctx:       ctx,
		cancelFn:  cancel,
		group:     g,
		sem:       semaphore.NewWeighted(int64(n)),
		completed: make(chan *task.Task, completedCap),
	}
}

// Enqueue accepts ownership of t; eventually some worker calls execFn(t),
// after which t is pushed onto the completed set. A task still waiting for
// a free worker slot when Cancel runs is delivered to Cancel's out slice
// without ever being executed.
func (q *Queue) Enqueue(t *task.Task) {
	q.group.Go(func() error {
		if err := q.sem.Acquire(q.ctx, 1); err != nil {
			q.completed <- t
			return nil
		}
		defer q.sem.Release(1)
		q.execFn(t)
		q.completed <- t
		return nil
	})
}

// Collect drains every currently-completed task into out, blocking up to
// timeout for the first one to arrive. It returns the number of tasks
// appended.
func (q *Queue) Collect(out *[]*task.Task, timeout time.Duration) int {
	n := 0
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case t := <-q.completed:
		*out = append(*out, t)
		n++
	case <-timer.C:
		return 0
	}

	for {
		select {
		case t := <-q.completed:
			*out = append(*out, t)
			n++
		default:
			return n
		}
	}
}

// Cancel stops accepting new work, lets in-flight executions finish, and
// drains every pending and completed task into out. Pending tasks (still
// waiting on a worker slot) are delivered without ever running execFn.
func (q *Queue) Cancel(out *[]*task.Task) {
	q.cancelFn()
	_ = q.group.Wait()
	close(q.completed)
	for t := range q.completed {
		*out = append(*out, t)
	}
}
