package machine

import (
	"github.com/blaubart69/ultradel/internal/task"
)

// loop is the machine's scheduling goroutine: it blocks in Collect,
// dispatches each drained task to its completion handler, delivers a tick
// per completion, and emits one final tick once every phase's work/done
// pair is even. It returns true unless cancellation was requested.
func (m *Machine) loop() bool {
	var drained []*task.Task

	for m.keepGoing() {
		drained = drained[:0]
		m.q.Collect(&drained, collectTimeout)

		for i, t := range drained {
			if m.cancelled() {
				// Cancellation was requested by an earlier task in this
				// same batch: the rest of drained was already collected
				// from the queue but must not be run through its phase
				// completion — hand every remaining task straight back to
				// the pool, same as the discarded tasks below.
				for _, rest := range drained[i:] {
					m.pool.Put(rest)
				}
				break
			}
			m.complete(t)
			if !m.tick(false) {
				m.setEnough()
			}
		}
	}

	if m.cancelled() {
		var discarded []*task.Task
		m.q.Cancel(&discarded)
		for _, t := range discarded {
			m.pool.Put(t)
		}
		if !m.pool.Unused() {
			panic("ultradel: task leaked out of the pool")
		}
		return false
	}

	m.tick(true)
	if !m.pool.Unused() {
		panic("ultradel: task leaked out of the pool")
	}
	return true
}

// tick snapshots the current counters into an Info and invokes the
// callback. done=true marks the final, once-only tick.
func (m *Machine) tick(done bool) bool {
	if done {
		if m.doneEmitted {
			panic("ultradel: final tick emitted twice")
		}
		m.doneEmitted = true
	}

	dFound, dDeleted, fFound, fDeleted, bFound, bDeleted := m.counters.snapshot()

	info := Info{
		DFound: dFound, DDeleted: dDeleted,
		FFound: fFound, FDeleted: fDeleted,
		BFound: bFound, BDeleted: bDeleted,
		ScannerErr:  m.scannerErr,
		DeleterErr:  m.deleterErr,
		FoldersToGo: m.foldersTogo,
		Done:        done,
	}
	return m.cb(&info)
}
