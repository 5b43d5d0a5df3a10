package machine

import (
	"path/filepath"
	"sync/atomic"

	"github.com/blaubart69/ultradel/internal/fsi"
	"github.com/blaubart69/ultradel/internal/task"
)

// execute runs t on whatever worker goroutine the queue handed it to. It
// never touches Machine's non-atomic state — only the folder's atomic
// items counter and the machine's atomic counters — so it is safe to run
// concurrently with other executions and with the loop goroutine.
func (m *Machine) execute(t *task.Task) {
	t.Path = t.Curr.Path()

	switch t.Phase {
	case task.PhaseScan:
		m.executeScan(t)
	case task.PhaseDeleteFiles:
		m.executeDeleteFiles(t)
	case task.PhaseDeleteSelf:
		m.executeDeleteSelf(t)
	default:
		panic("ultradel: task completed in an unknown phase")
	}
}

func (m *Machine) executeScan(t *task.Task) {
	curr := t.Curr
	fsi.Enumerate(t.Path, m.conf.ScannerBufSize,
		func(item fsi.Item) {
			curr.AddFile(item)
			m.counters.addFFound(1)
			m.counters.addBFound(uint64(item.Info.Size))
		},
		func(item fsi.Item) {
			curr.NewChild(item)
			m.counters.addDFound(1)
		},
		&t.Errors,
	)
}

func (m *Machine) executeDeleteFiles(t *task.Task) {
	curr := t.Curr
	files := curr.Files[t.First : t.First+t.Count]
	deleted := 0

	for i := range files {
		if atomic.LoadInt32(&m.enough) != 0 {
			break
		}
		f := files[i]
		full := filepath.Join(t.Path, f.Name)
		if fsi.UnlinkFile(full, f.Info.Attrs, m.conf.DeleterNTAPI, &t.Errors) {
			m.counters.addFDeleted(1)
			m.counters.addBDeleted(uint64(f.Info.Size))
			deleted++
		}
	}
	// Every file in the assigned slice counts against items exactly once,
	// success or failure — files we gave up on after a cancellation still
	// release their slot so a folder's count never gets stuck.
	curr.Release(int32(t.Count))
	t.Count = deleted
}

func (m *Machine) executeDeleteSelf(t *task.Task) {
	curr := t.Curr
	if fsi.RemoveEmptyDir(t.Path, curr.Self.Info.Attrs, &t.Errors) {
		m.counters.addDDeleted(1)
		t.Count = 1
	} else {
		t.Count = 0
	}
	// The parent's items counter is released regardless of success, same as
	// phase-2's rule for files — a folder we failed to remove still stops
	// counting as pending work for its parent, so the parent's own phase-3
	// (and everything above it) doesn't wait forever on an error that's
	// already been recorded in t.Errors.
	if curr.Parent != nil {
		curr.Parent.Release(1)
	}
}
