package queue

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/blaubart69/ultradel/internal/task"
)

func TestEnqueueCollect(t *testing.T) {
	var executed int32
	q := New(4, func(tk *task.Task) {
		atomic.AddInt32(&executed, 1)
	})

	const n = 50
	for i := 0; i < n; i++ {
		q.Enqueue(&task.Task{Phase: task.PhaseScan})
	}

	var got []*task.Task
	deadline := time.Now().Add(2 * time.Second)
	for len(got) < n && time.Now().Before(deadline) {
		q.Collect(&got, 100*time.Millisecond)
	}

	if len(got) != n {
		t.Fatalf("collected %d tasks, want %d", len(got), n)
	}
	if atomic.LoadInt32(&executed) != n {
		t.Fatalf("executed %d tasks, want %d", executed, n)
	}
}

func TestCollectTimesOutWithNoWork(t *testing.T) {
	q := New(2, func(tk *task.Task) {})
	var got []*task.Task
	n := q.Collect(&got, 20*time.Millisecond)
	if n != 0 || len(got) != 0 {
		t.Fatalf("Collect with no enqueued work should return nothing, got %d", n)
	}
}

func TestCancelStopsPendingWork(t *testing.T) {
	block := make(chan struct{})
	var started, executed int32

	q := New(1, func(tk *task.Task) {
		atomic.AddInt32(&started, 1)
		<-block
		atomic.AddInt32(&executed, 1)
	})

	// With a single worker slot, the first task runs immediately and blocks;
	// the second never gets a worker slot before Cancel runs.
	q.Enqueue(&task.Task{Phase: task.PhaseScan})
	time.Sleep(20 * time.Millisecond)
	q.Enqueue(&task.Task{Phase: task.PhaseScan})

	var cancelled []*task.Task
	done := make(chan struct{})
	go func() {
		q.Cancel(&cancelled)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	close(block)
	<-done

	if len(cancelled) != 2 {
		t.Fatalf("Cancel should deliver both tasks, got %d", len(cancelled))
	}
	if atomic.LoadInt32(&executed) != 1 {
		t.Fatalf("only the already-running task should have executed, got %d", executed)
	}
}
