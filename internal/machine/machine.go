// Package machine is the ultra machine: the orchestrator that owns
// configuration, info counters, error aggregation, and phase accounting,
// and drives the main loop described in spec section 4.5. It is the core
// this repository exists to implement; callers reach it only through the
// ultradel package's three entry operations.
package machine

import (
	"sync/atomic"
	"time"

	"github.com/blaubart69/ultradel/internal/queue"
	"github.com/blaubart69/ultradel/internal/task"
	"github.com/blaubart69/ultradel/internal/tree"
)

// collectTimeout is how long the loop goroutine blocks in Collect waiting
// for the first completed task of a round.
const collectTimeout = 50 * time.Millisecond

// Callback is the tick contract: invoked once per completed task and once
// finally with info.Done = true. Returning false requests cancellation.
type Callback func(info *Info) bool

// Machine is held entirely by the loop goroutine except for its atomic
// fields (enough) and the counters it shares with worker goroutines via
// internal/tree and its own counters struct.
type Machine struct {
	conf Conf
	cb   Callback

	deleteMode bool // false for scan-only
	keepRoot   bool

	q    *queue.Queue
	pool task.Pool

	enough int32 // atomic bool; set once cancellation is requested

	counters    counters
	scannerErr  []ErrorRecord
	deleterErr  []ErrorRecord
	foldersTogo uint64

	ph1Work, ph2Work, ph3Work uint64
	ph1Done, ph2Done, ph3Done uint64

	doneEmitted bool
}

// New constructs a machine ready to run. deleteMode selects whether
// complete_ph1 schedules deletions after scanning (scan-and-delete /
// delete) or only walks the tree (scan-only).
func New(conf Conf, cb Callback, deleteMode bool) *Machine {
	conf = conf.normalized()
	m := &Machine{conf: conf, cb: cb, deleteMode: deleteMode, keepRoot: conf.KeepRoot}
	m.q = queue.New(conf.Threads, m.execute)
	return m
}

// keepGoing is true when cancellation hasn't been requested and any
// phase's work/done pair is uneven.
func (m *Machine) keepGoing() bool {
	if atomic.LoadInt32(&m.enough) != 0 {
		return false
	}
	return m.ph1Work != m.ph1Done || m.ph2Work != m.ph2Done || m.ph3Work != m.ph3Done
}

func (m *Machine) cancelled() bool {
	return atomic.LoadInt32(&m.enough) != 0
}

func (m *Machine) setEnough() {
	atomic.StoreInt32(&m.enough, 1)
}

// enqueuePh1 schedules a scan of folder x: one task per folder.
func (m *Machine) enqueuePh1(x *tree.Folder) {
	t := m.pool.Get(task.PhaseScan)
	t.Curr = x
	m.ph1Work++
	m.q.Enqueue(t)
}

// enqueuePh2 splits x.Files into slices of at most conf.DeleterBatch (0
// meaning unbounded, i.e. one slice covering all files) and enqueues one
// task per slice.
func (m *Machine) enqueuePh2(x *tree.Folder) {
	batch := m.conf.DeleterBatch
	if batch <= 0 {
		batch = len(x.Files)
	}
	for first := 0; first < len(x.Files); first += batch {
		count := batch
		if first+count > len(x.Files) {
			count = len(x.Files) - first
		}
		t := m.pool.Get(task.PhaseDeleteFiles)
		t.Curr = x
		t.First = first
		t.Count = count
		m.ph2Work++
		m.q.Enqueue(t)
	}
}

// enqueuePh3 schedules x's self-deletion. Precondition: x's items counter
// was zero and the caller has already won the 0→BeingDeleted transition via
// x.MarkScheduled before calling this, which is what guarantees a folder's
// phase-3 is enqueued at most once.
func (m *Machine) enqueuePh3(x *tree.Folder) {
	t := m.pool.Get(task.PhaseDeleteSelf)
	t.Curr = x
	m.ph3Work++
	m.q.Enqueue(t)
}

// maybeScheduleSelfDelete wins the 0→BeingDeleted race for x, if any, and
// enqueues x's phase-3 exactly once. root and keepRoot together implement
// the keep-root policy: the root's own phase-3 is suppressed.
func (m *Machine) maybeScheduleSelfDelete(x *tree.Folder) {
	if !x.ReadyForDelete() {
		return
	}
	if m.keepRoot && x.Parent == nil {
		return
	}
	if x.MarkScheduled() {
		x.ClearFiles()
		m.enqueuePh3(x)
	}
}
